package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wfunc/chaos-server/broadcast"
	"github.com/wfunc/chaos-server/logger"
	"github.com/wfunc/chaos-server/monitor"
	"github.com/wfunc/chaos-server/network"
	"github.com/wfunc/chaos-server/protocol"
	"github.com/wfunc/chaos-server/room"
	gameserver_rpc "github.com/wfunc/chaos-server/rpc"
	"github.com/wfunc/chaos-server/session"
	"github.com/wfunc/chaos-server/timer"
)

// joinAttempts bounds retries when the room picked fills up or starts first.
const joinAttempts = 3

// shutdownGrace is how long stopping rooms get to flush their last messages.
const shutdownGrace = 5 * time.Second

// Options for the game server. Zero values fall back to defaults.
type Options struct {
	HTTPAddress   string
	RPCAddress    string
	Codec         protocol.Codec
	Heartbeat     time.Duration
	OutboxSize    int
	MaxPacketSize int
	IdleTimeout   time.Duration
	ReapEvery     time.Duration
}

type GameServer struct {
	opts           Options
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	matches        gameserver_rpc.Matches
	metrics        *monitor.Metrics
	timers         *timer.TimerManager
	baseCtx        context.Context
}

func NewGameServer(opts Options, rooms *room.Manager, matches gameserver_rpc.Matches, metrics *monitor.Metrics) *GameServer {
	if opts.Codec == nil {
		opts.Codec = protocol.JSONCodec{}
	}
	if opts.MaxPacketSize <= 0 {
		opts.MaxPacketSize = network.DefaultMaxPacketSize
	}
	if opts.OutboxSize <= 0 {
		opts.OutboxSize = session.DefaultOutboxSize
	}
	if metrics == nil {
		metrics = monitor.NewMetrics("chaos", nil)
	}
	return &GameServer{
		opts:           opts,
		roomManager:    rooms,
		sessionManager: session.NewManager(),
		matches:        matches,
		metrics:        metrics,
		timers:         timer.NewTimerManager(0),
		baseCtx:        context.Background(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}
}

// Router wires the HTTP endpoints.
func (s *GameServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/rooms", s.handleRooms)
	r.Get("/rooms/{id}", s.handleRoom)
	r.Get("/schema", s.handleSchema)
	r.Handle("/metrics", s.metrics.Handler())
	return r
}

// Start serves until ctx is done, then stops every room and connection.
func (s *GameServer) Start(ctx context.Context) error {
	s.baseCtx = ctx

	rpcServer, err := gameserver_rpc.NewServer(s.opts.RPCAddress, gameserver_rpc.NewAdminService(s.roomManager, s.matches))
	if err != nil {
		return err
	}
	go rpcServer.Start()
	defer rpcServer.Stop()

	s.scheduleJobs()
	timersCtx, stopTimers := context.WithCancel(context.Background())
	defer stopTimers()
	go s.timers.Run(timersCtx)

	httpServer := &http.Server{
		Addr:              s.opts.HTTPAddress,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Game server listening on %s", s.opts.HTTPAddress)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	logger.Log.Info("Shutting down game server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	s.Shutdown(shutdownCtx)
	return httpServer.Shutdown(shutdownCtx)
}

// Shutdown stops every room, lets them broadcast their Shutdown and closes
// the remaining connections.
func (s *GameServer) Shutdown(ctx context.Context) {
	s.roomManager.CloseAll()
	for _, info := range s.roomManager.List() {
		rm, ok := s.roomManager.GetRoom(info.ID)
		if !ok {
			continue
		}
		select {
		case <-rm.Done():
		case <-ctx.Done():
		}
	}

	var unseated []*session.Session
	for _, sess := range s.sessionManager.All() {
		if roomID, _ := sess.Seat(); roomID == "" {
			unseated = append(unseated, sess)
		}
	}
	broadcast.ToSessions(unseated, s.opts.Codec, protocol.Shutdown{})

	// 给写协程一点时间把队列中的 Shutdown 发出去
	drain := time.NewTimer(100 * time.Millisecond)
	defer drain.Stop()
	select {
	case <-drain.C:
	case <-ctx.Done():
	}
	for _, sess := range s.sessionManager.All() {
		sess.Close()
	}
}

func (s *GameServer) scheduleJobs() {
	every := s.opts.ReapEvery
	if every <= 0 {
		every = 10 * time.Second
	}
	s.timers.Every("reap-rooms", every, func() {
		if n := s.roomManager.Reap(); n > 0 {
			logger.Log.Infof("reaped %d finished rooms", n)
		}
		s.metrics.SetActiveRooms(s.roomManager.Playing())
	})
	if s.opts.IdleTimeout > 0 {
		s.timers.Every("reap-sessions", every, func() {
			s.reapIdle(time.Now().Add(-s.opts.IdleTimeout))
		})
	}
}

// reapIdle closes sessions silent since cutoff. Their read loops clean up.
func (s *GameServer) reapIdle(cutoff time.Time) int {
	idle := s.sessionManager.IdleSince(cutoff)
	for _, sess := range idle {
		logger.Log.Infof("closing idle session %s", sess.GetID())
		sess.Close()
	}
	return len(idle)
}

func (s *GameServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *GameServer) handleRooms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.roomManager.List())
}

func (s *GameServer) handleRoom(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.roomManager.GetRoom(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rm.Info())
}

func (s *GameServer) handleSchema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"codec":    s.opts.Codec.Name(),
		"envelope": protocol.EnvelopeSchema(),
		"messages": protocol.Schema(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Warnf("write response: %v", err)
	}
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID != "" {
		if _, ok := s.roomManager.GetRoom(roomID); !ok {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(network.NewWSConnection(conn, s.opts.MaxPacketSize), roomID)
}

func (s *GameServer) handleConnection(conn network.Connection, roomID string) {
	sess := session.NewSession(uuid.NewString(), conn, s.opts.OutboxSize)
	if s.opts.Heartbeat > 0 {
		conn.SetHeartbeat(s.opts.Heartbeat)
	}
	s.sessionManager.Add(sess)
	s.metrics.IncOnlinePlayers()
	logger.Log.Infof("New connection from %s, session ID: %s", conn.RemoteAddr(), sess.GetID())

	ctx, cancel := context.WithCancel(s.baseCtx)
	defer func() {
		cancel()
		logger.Log.Infof("Connection closed from %s, session ID: %s", conn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.metrics.DecOnlinePlayers()
		sess.Close()
	}()

	rm, seat, err := s.joinRoom(roomID, sess)
	if err != nil {
		logger.Log.Warnf("Session %s could not join a room: %v", sess.GetID(), err)
		broadcast.ToSessions([]*session.Session{sess}, s.opts.Codec, protocol.Shutdown{})
		return
	}
	defer rm.RemovePlayer(seat)
	logger.Log.Infof("Session %s joined room %s as player %d", sess.GetID(), rm.ID, seat)

	go sess.WritePump(ctx, s.opts.Heartbeat)

	for {
		packet, err := conn.ReadPacket()
		if err != nil {
			return
		}
		sess.Touch()
		s.handlePacket(sess, rm, seat, packet)
	}
}

// joinRoom seats sess in roomID, or in any open room, or in a new one.
func (s *GameServer) joinRoom(roomID string, sess *session.Session) (*room.Room, uint32, error) {
	if roomID != "" {
		rm, ok := s.roomManager.GetRoom(roomID)
		if !ok {
			return nil, 0, errors.New("room not found")
		}
		seat, err := rm.AddPlayer(sess)
		return rm, seat, err
	}

	var err error
	for i := 0; i < joinAttempts; i++ {
		rm := s.roomManager.FindAvailableRoom()
		if rm == nil {
			rm, err = s.roomManager.CreateRoom(s.baseCtx, "room")
			if err != nil {
				return nil, 0, err
			}
		}
		var seat uint32
		seat, err = rm.AddPlayer(sess)
		if err == nil {
			return rm, seat, nil
		}
	}
	return nil, 0, err
}

func (s *GameServer) handlePacket(sess *session.Session, rm *room.Room, seat uint32, packet *network.Packet) {
	switch packet.Type {
	case network.PacketPing:
		if err := sess.Send(network.PacketPong, packet.Data); err != nil {
			logger.Log.Debugf("pong to %s: %v", sess.GetID(), err)
		}
	case network.PacketPong:
		sent, err := network.ParsePing(packet.Data)
		if err != nil {
			s.malformed(sess, err)
			return
		}
		rm.Latency(seat, time.Since(sent))
	case network.PacketClient:
		msg, err := s.opts.Codec.DecodeClient(packet.Data)
		if err != nil {
			s.malformed(sess, err)
			return
		}
		s.metrics.IncMessagesReceived()
		rm.Receive(seat, msg)
	default:
		logger.Log.Infof("Unknown packet type: %d", packet.Type)
		s.metrics.IncMalformedFrames()
	}
}

func (s *GameServer) malformed(sess *session.Session, err error) {
	logger.Log.Warnf("malformed frame from %s: %v", sess.GetID(), err)
	s.metrics.IncMalformedFrames()
}
