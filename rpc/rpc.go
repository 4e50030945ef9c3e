package rpc

import (
	"context"
	"errors"
	"net"
	"net/rpc"
	"time"

	"github.com/wfunc/chaos-server/logger"
	"github.com/wfunc/chaos-server/models"
	"github.com/wfunc/chaos-server/room"
)

// callTimeout bounds the storage work behind a single call.
const callTimeout = 5 * time.Second

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
	rpc      *rpc.Server
}

// NewServer listens on addr and serves admin on it.
func NewServer(addr string, admin *AdminService) (*Server, error) {
	rs := rpc.NewServer()
	if err := rs.RegisterName("Admin", admin); err != nil {
		return nil, err
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  listener.Addr().String(),
		rpc:      rs,
	}, nil
}

// Addr is the address actually bound.
func (s *Server) Addr() string {
	return s.address
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go s.rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// Rooms lists the live rooms.
type Rooms interface {
	List() []room.Info
}

// Matches reads finished games.
type Matches interface {
	RecentMatches(ctx context.Context, limit int) ([]models.MatchRecord, error)
	PlayerStats(ctx context.Context, name string) (*models.PlayerStats, error)
}

// AdminService is the struct that exposes RPC methods to operators.
// Methods follow the net/rpc signature: exported arguments, a pointer reply
// and an error result.
type AdminService struct {
	rooms   Rooms
	matches Matches
}

func NewAdminService(rooms Rooms, matches Matches) *AdminService {
	return &AdminService{rooms: rooms, matches: matches}
}

// RoomsArgs filters by status ("waiting", "playing", "finished"). Empty
// lists all.
type RoomsArgs struct {
	Status string
}

type RoomsReply struct {
	Rooms []room.Info
}

// Rooms lists the rooms on this server.
func (a *AdminService) Rooms(args *RoomsArgs, reply *RoomsReply) error {
	for _, info := range a.rooms.List() {
		if args.Status == "" || info.Status == args.Status {
			reply.Rooms = append(reply.Rooms, info)
		}
	}
	return nil
}

type RecentMatchesArgs struct {
	Limit int
}

type RecentMatchesReply struct {
	Matches []models.MatchRecord
}

func (a *AdminService) RecentMatches(args *RecentMatchesArgs, reply *RecentMatchesReply) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	records, err := a.matches.RecentMatches(ctx, args.Limit)
	if err != nil {
		return err
	}
	reply.Matches = records
	return nil
}

type PlayerStatsArgs struct {
	Name string
}

type PlayerStatsReply struct {
	Stats models.PlayerStats
}

func (a *AdminService) PlayerStats(args *PlayerStatsArgs, reply *PlayerStatsReply) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	stats, err := a.matches.PlayerStats(ctx, args.Name)
	if err != nil {
		return err
	}
	reply.Stats = *stats
	return nil
}
