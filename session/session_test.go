package session

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfunc/chaos-server/network"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	mu      sync.Mutex
	sent    []network.Packet
	closed  bool
	sendErr error
}

func (m *MockConnection) Send(ptype uint16, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, network.Packet{Type: ptype, Data: data})
	return nil
}

func (m *MockConnection) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func (m *MockConnection) packets(ptype uint16) [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out [][]byte
	for _, p := range m.sent {
		if p.Type == ptype {
			out = append(out, p.Data)
		}
	}
	return out
}

func (m *MockConnection) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager should not return nil")
	}
	if manager.sessions == nil {
		t.Fatal("NewManager should initialize the sessions map")
	}
}

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sessionID := "test_session_1"
	sess := NewSession(sessionID, &MockConnection{}, 4)

	manager.Add(sess)
	assert.Equal(t, 1, manager.Len())

	retrievedSess, exists := manager.Get(sessionID)
	require.True(t, exists)
	assert.Same(t, sess, retrievedSess)

	manager.Remove(sessionID)
	assert.Equal(t, 0, manager.Len())
	_, exists = manager.Get(sessionID)
	assert.False(t, exists)
}

func TestManager_IdleSince(t *testing.T) {
	manager := NewManager()
	old := NewSession("old", &MockConnection{}, 4)
	fresh := NewSession("fresh", &MockConnection{}, 4)
	manager.Add(old)
	manager.Add(fresh)

	cutoff := time.Now().Add(time.Millisecond)
	time.Sleep(2 * time.Millisecond)
	fresh.Touch()

	idle := manager.IdleSince(cutoff)
	require.Len(t, idle, 1)
	assert.Equal(t, "old", idle[0].ID)
}

func TestSession_Seat(t *testing.T) {
	sess := NewSession("s", &MockConnection{}, 4)
	sess.SetSeat("room-1", 3)
	roomID, seat := sess.Seat()
	assert.Equal(t, "room-1", roomID)
	assert.Equal(t, uint32(3), seat)
}

func TestSession_OutboxFull(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("s", conn, 2)

	require.NoError(t, sess.Enqueue([]byte("a")))
	require.NoError(t, sess.Enqueue([]byte("b")))
	assert.ErrorIs(t, sess.Enqueue([]byte("c")), ErrOutboxFull)
	assert.True(t, conn.isClosed())
	assert.ErrorIs(t, sess.Enqueue([]byte("d")), ErrSessionClosed)

	select {
	case <-sess.Done():
	default:
		t.Fatal("session should be closed")
	}
}

func TestSession_WritePump(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("s", conn, 8)
	require.NoError(t, sess.Enqueue([]byte("one")))
	require.NoError(t, sess.Enqueue([]byte("two")))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sess.WritePump(ctx, 5*time.Millisecond) }()

	require.Eventually(t, func() bool {
		return len(conn.packets(network.PacketServer)) == 2 && len(conn.packets(network.PacketPing)) > 0
	}, time.Second, time.Millisecond)
	assert.Equal(t, [][]byte{[]byte("one"), []byte("two")}, conn.packets(network.PacketServer))

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.True(t, conn.isClosed())
}

func TestSession_WritePumpSendError(t *testing.T) {
	broken := errors.New("broken pipe")
	conn := &MockConnection{sendErr: broken}
	sess := NewSession("s", conn, 8)
	require.NoError(t, sess.Enqueue([]byte("x")))

	err := sess.WritePump(context.Background(), 0)
	assert.ErrorIs(t, err, broken)
	assert.True(t, conn.isClosed())
}
