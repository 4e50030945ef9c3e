// room/room.go
package room

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wfunc/chaos-server/broadcast"
	"github.com/wfunc/chaos-server/game"
	"github.com/wfunc/chaos-server/logger"
	"github.com/wfunc/chaos-server/protocol"
	"github.com/wfunc/chaos-server/roster"
	"github.com/wfunc/chaos-server/rules"
	"github.com/wfunc/chaos-server/session"
	"github.com/wfunc/chaos-server/spells"
	"github.com/wfunc/chaos-server/state"
)

var (
	ErrRoomFull     = errors.New("room: full")
	ErrGameStarted  = errors.New("room: game already started")
	ErrTooManyRooms = errors.New("room: too many rooms")
)

// DefaultInboxSize buffers engine events from the network goroutines.
const DefaultInboxSize = 256

// recordTimeout bounds saving a finished game.
const recordTimeout = 5 * time.Second

// RoomStatus 房间状态
type RoomStatus int

const (
	StatusWaiting RoomStatus = iota
	StatusPlaying
	StatusFinished
)

func (s RoomStatus) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusFinished:
		return "finished"
	}
	return "waiting"
}

// Options configure a room. Zero values fall back to defaults.
type Options struct {
	Codec  protocol.Codec
	Engine game.Config
	// NewRoller gives each room its own dice. It overrides Engine.Roller,
	// which must not be shared between rooms.
	NewRoller func() rules.Roller
	Recorder  Recorder
	InboxSize int
}

// Info is a snapshot of a room for listings.
type Info struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Phase     string    `json:"phase"`
	Players   int       `json:"players"`
	CreatedAt time.Time `json:"created_at"`
}

// Room 一个房间对应一局游戏。引擎在自己的 goroutine 中运行，网络层只往 inbox 投递事件。
type Room struct {
	ID        string
	Name      string
	CreatedAt time.Time

	inbox    chan protocol.Inbound
	engine   *game.Engine
	fanout   *broadcast.Fanout
	observer game.Observer
	recorder Recorder
	log      *zap.SugaredLogger

	playerMutex sync.RWMutex
	players     map[uint32]*session.Session
	nextSeat    uint32

	statusMutex sync.RWMutex
	status      RoomStatus
	phase       string
	result      game.Result
	err         error

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRoom builds a room. Nothing runs until Start.
func NewRoom(id, name string, opts Options) *Room {
	if opts.Codec == nil {
		opts.Codec = protocol.JSONCodec{}
	}
	if opts.InboxSize <= 0 {
		opts.InboxSize = DefaultInboxSize
	}
	if opts.Engine.Log == nil {
		opts.Engine.Log = logger.Log
	}
	r := &Room{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
		inbox:     make(chan protocol.Inbound, opts.InboxSize),
		observer:  opts.Engine.Observer,
		recorder:  opts.Recorder,
		log:       opts.Engine.Log.With("room", id),
		players:   make(map[uint32]*session.Session),
		nextSeat:  1,
		phase:     state.PhaseLobby,
		done:      make(chan struct{}),
		cancel:    func() {},
	}

	cfg := opts.Engine
	cfg.Log = r.log
	if opts.NewRoller != nil {
		cfg.Roller = opts.NewRoller()
	}
	cfg.Observer = r
	r.fanout = broadcast.NewFanout(r, opts.Codec, func(seat uint32, err error) {
		r.log.Warnf("dropping seat %d: %v", seat, err)
	})
	r.engine = game.New(r.inbox, r.fanout, cfg)
	return r
}

// Start runs the game on its own goroutine until it ends or ctx is done.
func (r *Room) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	go r.run(ctx)
}

func (r *Room) run(ctx context.Context) {
	defer close(r.done)
	defer r.cancel()

	result, err := r.play(ctx)

	r.statusMutex.Lock()
	r.status = StatusFinished
	r.result, r.err = result, err
	r.statusMutex.Unlock()

	if err == nil && r.recorder != nil {
		rctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := r.recorder.RecordMatch(rctx, r.ID, result); err != nil {
			r.log.Errorf("record match: %v", err)
		}
	}
	r.log.Infof("room closed")
}

// play runs the engine. An invariant violation only takes down this room.
func (r *Room) play(ctx context.Context) (result game.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Errorf("engine panic: %v", p)
			// the engine never got to send its own Shutdown
			r.fanout.Deliver(protocol.ToAll(protocol.Shutdown{}))
			err = fmt.Errorf("room %s: engine panic: %v", r.ID, p)
		}
	}()
	return r.engine.Run(ctx)
}

// push hands an event to the engine unless the game is over.
func (r *Room) push(ev protocol.Inbound) {
	select {
	case r.inbox <- ev:
	case <-r.done:
	}
}

// AddPlayer seats s and returns its player id.
func (r *Room) AddPlayer(s *session.Session) (uint32, error) {
	if st := r.GetStatus(); st != StatusWaiting {
		return 0, ErrGameStarted
	}

	r.playerMutex.Lock()
	if len(r.players) >= roster.MaxPlayers {
		r.playerMutex.Unlock()
		return 0, ErrRoomFull
	}
	seat := r.nextSeat
	r.nextSeat++
	r.players[seat] = s
	r.playerMutex.Unlock()

	s.SetSeat(r.ID, seat)
	r.push(protocol.Connected{ID: seat})
	return seat, nil
}

// RemovePlayer 玩家离开或断线
func (r *Room) RemovePlayer(seat uint32) {
	r.playerMutex.Lock()
	s, exists := r.players[seat]
	delete(r.players, seat)
	r.playerMutex.Unlock()

	if !exists {
		return
	}
	s.SetSeat("", 0)
	r.push(protocol.Disconnected{ID: seat})
}

// Receive forwards a decoded client message from seat.
func (r *Room) Receive(seat uint32, msg protocol.Message) {
	r.push(protocol.Received{ID: seat, Msg: msg})
}

// Latency forwards a measured round trip of seat.
func (r *Room) Latency(seat uint32, rtt time.Duration) {
	r.push(protocol.Latency{ID: seat, RTT: rtt})
}

// Sessions implements broadcast.Seats.
func (r *Room) Sessions() map[uint32]*session.Session {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	players := make(map[uint32]*session.Session, len(r.players))
	for k, v := range r.players {
		players[k] = v
	}
	return players
}

func (r *Room) PlayerCount() int {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	return len(r.players)
}

func (r *Room) GetStatus() RoomStatus {
	r.statusMutex.RLock()
	defer r.statusMutex.RUnlock()
	return r.status
}

// Result returns the outcome once Done is closed.
func (r *Room) Result() (game.Result, error) {
	r.statusMutex.RLock()
	defer r.statusMutex.RUnlock()
	return r.result, r.err
}

func (r *Room) Info() Info {
	r.statusMutex.RLock()
	status, phase := r.status, r.phase
	r.statusMutex.RUnlock()
	return Info{
		ID:        r.ID,
		Name:      r.Name,
		Status:    status.String(),
		Phase:     phase,
		Players:   r.PlayerCount(),
		CreatedAt: r.CreatedAt,
	}
}

// Done is closed when the game has ended.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

// Close stops the game. The engine broadcasts Shutdown on its way out.
func (r *Room) Close() {
	r.cancel()
}

// --- game.Observer，转发给外部观察者 ---

func (r *Room) PhaseEntered(phase string) {
	r.statusMutex.Lock()
	r.phase = phase
	if phase != state.PhaseLobby && r.status == StatusWaiting {
		r.status = StatusPlaying
	}
	r.statusMutex.Unlock()
	if r.observer != nil {
		r.observer.PhaseEntered(phase)
	}
}

func (r *Room) SpellCast(id uint32, spell spells.Spell) {
	if r.observer != nil {
		r.observer.SpellCast(id, spell)
	}
}

func (r *Room) LatencyMeasured(id uint32, rtt time.Duration) {
	if r.observer != nil {
		r.observer.LatencyMeasured(id, rtt)
	}
}

func (r *Room) GameFinished(result game.Result) {
	if r.observer != nil {
		r.observer.GameFinished(result)
	}
}

// --- 房间管理器 ---

// Manager 管理所有房间
type Manager struct {
	rooms    map[string]*Room
	mutex    sync.RWMutex
	maxRooms int
	opts     Options
}

// NewRoomManager creates rooms with opts. maxRooms <= 0 means no limit.
func NewRoomManager(maxRooms int, opts Options) *Manager {
	return &Manager{
		rooms:    make(map[string]*Room),
		maxRooms: maxRooms,
		opts:     opts,
	}
}

// CreateRoom 创建并启动一个新房间
func (m *Manager) CreateRoom(ctx context.Context, name string) (*Room, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.maxRooms > 0 && len(m.rooms) >= m.maxRooms {
		return nil, ErrTooManyRooms
	}
	room := NewRoom(uuid.NewString(), name, m.opts)
	m.rooms[room.ID] = room
	room.Start(ctx)
	return room, nil
}

// RemoveRoom 从管理器中移除并关闭一个房间
func (m *Manager) RemoveRoom(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if room, exists := m.rooms[id]; exists {
		room.Close()
		delete(m.rooms, id)
	}
}

func (m *Manager) GetRoom(id string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	room, exists := m.rooms[id]
	return room, exists
}

// FindAvailableRoom returns the oldest room still in its lobby with a free
// seat, or nil.
func (m *Manager) FindAvailableRoom() *Room {
	var best *Room
	for _, room := range m.snapshot() {
		if room.GetStatus() != StatusWaiting || room.PlayerCount() >= roster.MaxPlayers {
			continue
		}
		if best == nil || room.CreatedAt.Before(best.CreatedAt) {
			best = room
		}
	}
	return best
}

// List returns every room, oldest first.
func (m *Manager) List() []Info {
	rooms := m.snapshot()
	infos := make([]Info, 0, len(rooms))
	for _, room := range rooms {
		infos = append(infos, room.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].CreatedAt.Before(infos[j].CreatedAt) })
	return infos
}

// Playing counts rooms with a game in progress.
func (m *Manager) Playing() int {
	n := 0
	for _, room := range m.snapshot() {
		if room.GetStatus() == StatusPlaying {
			n++
		}
	}
	return n
}

// Reap drops finished rooms and reports how many went.
func (m *Manager) Reap() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	n := 0
	for id, room := range m.rooms {
		select {
		case <-room.Done():
			delete(m.rooms, id)
			n++
		default:
		}
	}
	return n
}

// CloseAll stops every room.
func (m *Manager) CloseAll() {
	for _, room := range m.snapshot() {
		room.Close()
	}
}

func (m *Manager) snapshot() []*Room {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}
