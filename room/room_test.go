package room

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wfunc/chaos-server/game"
	"github.com/wfunc/chaos-server/models"
	"github.com/wfunc/chaos-server/network"
	"github.com/wfunc/chaos-server/protocol"
	"github.com/wfunc/chaos-server/rules"
	"github.com/wfunc/chaos-server/session"
	"github.com/wfunc/chaos-server/spells"
	"github.com/wfunc/chaos-server/state"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	mu   sync.Mutex
	msgs []protocol.Message
}

func (m *MockConnection) Send(ptype uint16, data []byte) error {
	if ptype != network.PacketServer {
		return nil
	}
	_, msg, err := protocol.JSONCodec{}.DecodeServer(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
	return nil
}
func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func (m *MockConnection) received(typ protocol.Type) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.msgs {
		if msg.Type() == typ {
			n++
		}
	}
	return n
}

// MockRecorder keeps recorded results.
type MockRecorder struct {
	mu      sync.Mutex
	results []game.Result
}

func (m *MockRecorder) RecordMatch(_ context.Context, _ string, result game.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
	return nil
}

func (m *MockRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.results)
}

// panicObserver blows up once the game leaves the lobby.
type panicObserver struct{}

func (panicObserver) PhaseEntered(phase string) {
	if phase == state.PhaseSpellSelection {
		panic("boom")
	}
}
func (panicObserver) SpellCast(uint32, spells.Spell)        {}
func (panicObserver) LatencyMeasured(uint32, time.Duration) {}
func (panicObserver) GameFinished(game.Result)              {}

func testOptions(t *testing.T) Options {
	return Options{
		Codec: protocol.JSONCodec{},
		Engine: game.Config{
			Roller: rules.NewRoller(3),
			Linger: time.Second,
			Log:    zaptest.NewLogger(t).Sugar(),
		},
	}
}

// newTestSession creates a session whose outbox is drained into a mock
// connection.
func newTestSession(t *testing.T, id string) (*session.Session, *MockConnection) {
	conn := &MockConnection{}
	s := session.NewSession(id, conn, 64)
	go s.WritePump(testContext(t), 0)
	return s, conn
}

func player(name string) models.Player {
	return models.Player{Name: name, Character: models.Merlin, Color: models.WizardBrightCyan}
}

func TestRoomManager_CreateAndGetRoom(t *testing.T) {
	manager := NewRoomManager(1, testOptions(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	room, err := manager.CreateRoom(ctx, "Test Room")
	require.NoError(t, err)
	require.NotNil(t, room)

	retrievedRoom, exists := manager.GetRoom(room.ID)
	require.True(t, exists)
	assert.Same(t, room, retrievedRoom)
	assert.Same(t, room, manager.FindAvailableRoom())

	_, err = manager.CreateRoom(ctx, "Second")
	assert.ErrorIs(t, err, ErrTooManyRooms)

	infos := manager.List()
	require.Len(t, infos, 1)
	assert.Equal(t, "waiting", infos[0].Status)
	assert.Equal(t, state.PhaseLobby, infos[0].Phase)

	manager.RemoveRoom(room.ID)
	_, exists = manager.GetRoom(room.ID)
	assert.False(t, exists)
	<-room.Done()
}

func TestRoom_AddPlayer_Full(t *testing.T) {
	room := NewRoom("full", "Full Room Test", testOptions(t))
	room.Start(testContext(t))
	defer room.Close()

	for i := 0; i < 8; i++ {
		s, _ := newTestSession(t, "p")
		seat, err := room.AddPlayer(s)
		require.NoError(t, err)
		assert.Equal(t, uint32(i+1), seat)
	}
	s, _ := newTestSession(t, "late")
	_, err := room.AddPlayer(s)
	assert.ErrorIs(t, err, ErrRoomFull)
	assert.Equal(t, 8, room.PlayerCount())
}

func TestRoom_RemovePlayer(t *testing.T) {
	room := NewRoom("remove", "Remove Player Test", testOptions(t))
	room.Start(testContext(t))
	defer room.Close()

	s, _ := newTestSession(t, "player1")
	seat, err := room.AddPlayer(s)
	require.NoError(t, err)
	roomID, got := s.Seat()
	assert.Equal(t, "remove", roomID)
	assert.Equal(t, seat, got)

	room.RemovePlayer(seat)
	assert.Equal(t, 0, room.PlayerCount())
	roomID, _ = s.Seat()
	assert.Empty(t, roomID)

	// second removal is a no-op
	room.RemovePlayer(seat)
}

func TestRoom_PlaysToTheEnd(t *testing.T) {
	opts := testOptions(t)
	recorder := &MockRecorder{}
	opts.Recorder = recorder
	room := NewRoom("game", "Full Game", opts)
	room.Start(testContext(t))

	s1, c1 := newTestSession(t, "one")
	s2, c2 := newTestSession(t, "two")
	seat1, err := room.AddPlayer(s1)
	require.NoError(t, err)
	seat2, err := room.AddPlayer(s2)
	require.NoError(t, err)

	room.Receive(seat1, protocol.Join{Player: player("MERLIN")})
	room.Receive(seat1, protocol.Ready{Ready: true})
	room.Receive(seat2, protocol.Join{Player: player("GOWIN")})
	room.Receive(seat2, protocol.Ready{Ready: true})

	require.Eventually(t, func() bool {
		return c1.received(protocol.TypeChooseSpell) == 1 && c2.received(protocol.TypeChooseSpell) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, StatusPlaying, room.GetStatus())
	_, err = room.AddPlayer(&session.Session{})
	assert.ErrorIs(t, err, ErrGameStarted)

	room.RemovePlayer(seat2)
	room.Receive(seat1, protocol.ChosenSpell{})
	room.RemovePlayer(seat1)

	select {
	case <-room.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("room did not finish")
	}
	result, err := room.Result()
	require.NoError(t, err)
	require.Len(t, result.Winners, 1)
	assert.Equal(t, "MERLIN", result.Winners[0].Name)
	assert.Equal(t, StatusFinished, room.GetStatus())
	assert.Equal(t, 1, recorder.count())
	assert.Equal(t, 1, c1.received(protocol.TypeStart))
}

func TestRoom_EnginePanicIsContained(t *testing.T) {
	opts := testOptions(t)
	opts.Engine.Observer = panicObserver{}
	recorder := &MockRecorder{}
	opts.Recorder = recorder
	room := NewRoom("crash", "Crash", opts)
	room.Start(testContext(t))

	s1, c1 := newTestSession(t, "one")
	s2, _ := newTestSession(t, "two")
	seat1, _ := room.AddPlayer(s1)
	seat2, _ := room.AddPlayer(s2)
	room.Receive(seat1, protocol.Join{Player: player("A")})
	room.Receive(seat2, protocol.Join{Player: player("B")})
	room.Receive(seat1, protocol.Ready{Ready: true})
	room.Receive(seat2, protocol.Ready{Ready: true})

	select {
	case <-room.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("room did not stop")
	}
	_, err := room.Result()
	assert.ErrorContains(t, err, "engine panic")
	assert.Equal(t, 0, recorder.count())
	require.Eventually(t, func() bool {
		return c1.received(protocol.TypeShutdown) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestRoom_CloseShutsDown(t *testing.T) {
	room := NewRoom("close", "Close", testOptions(t))
	room.Start(context.Background())
	s, c := newTestSession(t, "one")
	_, err := room.AddPlayer(s)
	require.NoError(t, err)

	room.Close()
	<-room.Done()
	_, err = room.Result()
	assert.ErrorIs(t, err, game.ErrShutdown)
	require.Eventually(t, func() bool {
		return c.received(protocol.TypeShutdown) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestManager_Reap(t *testing.T) {
	manager := NewRoomManager(0, testOptions(t))
	room, err := manager.CreateRoom(context.Background(), "reap")
	require.NoError(t, err)
	assert.Equal(t, 0, manager.Reap())

	room.Close()
	<-room.Done()
	assert.Equal(t, 1, manager.Reap())
	assert.Empty(t, manager.List())
	assert.Nil(t, manager.FindAvailableRoom())
}

// testContext stands in for testing.T.Context (Go 1.24): it is cancelled when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
