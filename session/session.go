// session/session.go
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wfunc/chaos-server/network"
)

var (
	ErrOutboxFull    = errors.New("session: outbox full")
	ErrSessionClosed = errors.New("session: closed")
)

// DefaultOutboxSize is used when NewSession is given no size.
const DefaultOutboxSize = 256

// Session is one websocket client. Writes go through a bounded outbox drained
// by WritePump so a slow client never blocks the game.
type Session struct {
	ID        string
	Conn      network.Connection
	CreatedAt time.Time

	mutex      sync.RWMutex
	roomID     string
	seat       uint32
	lastActive time.Time

	outbox    chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func NewSession(id string, conn network.Connection, outboxSize int) *Session {
	if outboxSize <= 0 {
		outboxSize = DefaultOutboxSize
	}
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		lastActive: now,
		outbox:     make(chan []byte, outboxSize),
		closed:     make(chan struct{}),
	}
}

func (s *Session) GetID() string {
	return s.ID
}

// Seat returns the room and the player id the session plays as.
func (s *Session) Seat() (roomID string, seat uint32) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.roomID, s.seat
}

func (s *Session) SetSeat(roomID string, seat uint32) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.roomID, s.seat = roomID, seat
}

// Touch records client activity.
func (s *Session) Touch() {
	s.mutex.Lock()
	s.lastActive = time.Now()
	s.mutex.Unlock()
}

func (s *Session) LastActive() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.lastActive
}

// Enqueue queues an encoded server message without blocking. A session that
// cannot keep up is closed.
func (s *Session) Enqueue(payload []byte) error {
	select {
	case <-s.closed:
		return ErrSessionClosed
	default:
	}
	select {
	case s.outbox <- payload:
		return nil
	default:
		s.Close()
		return ErrOutboxFull
	}
}

// Send writes a frame straight to the connection, bypassing the outbox.
func (s *Session) Send(ptype uint16, data []byte) error {
	return s.Conn.Send(ptype, data)
}

// WritePump drains the outbox and pings every heartbeat until the session or
// ctx is closed. A write error closes the session.
func (s *Session) WritePump(ctx context.Context, heartbeat time.Duration) error {
	var tick <-chan time.Time
	if heartbeat > 0 {
		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		select {
		case <-ctx.Done():
			s.Close()
			return ctx.Err()
		case <-s.closed:
			return ErrSessionClosed
		case payload := <-s.outbox:
			if err := s.Conn.Send(network.PacketServer, payload); err != nil {
				s.Close()
				return err
			}
		case now := <-tick:
			if err := s.Conn.Send(network.PacketPing, network.PingPayload(now)); err != nil {
				s.Close()
				return err
			}
		}
	}
}

// Done is closed with the session.
func (s *Session) Done() <-chan struct{} {
	return s.closed
}

func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		err = s.Conn.Close()
	})
	return err
}

// Session管理器
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

// All returns a snapshot of every session.
func (m *Manager) All() []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	result := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

// IdleSince lists sessions with no activity after cutoff.
func (m *Manager) IdleSince(cutoff time.Time) []*Session {
	var result []*Session
	for _, session := range m.All() {
		if session.LastActive().Before(cutoff) {
			result = append(result, session)
		}
	}
	return result
}
