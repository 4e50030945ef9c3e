// Package roster tracks who is playing: the pre-game lobby and, once a game
// starts, each wizard's liveness, connection and hand.
package roster

import (
	"sort"

	"github.com/wfunc/chaos-server/models"
)

// MaxPlayers is the number of seats in a game.
const MaxPlayers = 8

// MinPlayers is the number of ready players needed to start.
const MinPlayers = 2

// LobbyWizard is a seated player waiting for the game to start.
type LobbyWizard struct {
	ID     uint32
	Player models.Player
	Ready  bool
}

// Lobby 游戏开始前的座位表
type Lobby struct {
	players map[uint32]*LobbyWizard
}

func NewLobby() *Lobby {
	return &Lobby{players: make(map[uint32]*LobbyWizard)}
}

// Join seats id. It fails once the lobby is full. Joining again replaces the
// profile and clears the ready flag.
func (l *Lobby) Join(id uint32, p models.Player) bool {
	if _, seated := l.players[id]; !seated && len(l.players) >= MaxPlayers {
		return false
	}
	l.players[id] = &LobbyWizard{ID: id, Player: p}
	return true
}

func (l *Lobby) Leave(id uint32) (LobbyWizard, bool) {
	w, ok := l.players[id]
	if !ok {
		return LobbyWizard{}, false
	}
	delete(l.players, id)
	return *w, true
}

// SetReady records the ready flag of a seated player.
func (l *Lobby) SetReady(id uint32, ready bool) bool {
	w, ok := l.players[id]
	if !ok {
		return false
	}
	w.Ready = ready
	return true
}

// Has reports whether id holds a seat.
func (l *Lobby) Has(id uint32) bool {
	_, ok := l.players[id]
	return ok
}

// Players returns the seated players ordered by id.
func (l *Lobby) Players() []LobbyWizard {
	out := make([]LobbyWizard, 0, len(l.players))
	for _, w := range l.players {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (l *Lobby) Len() int {
	return len(l.players)
}

// IsReady reports whether the game can start.
func (l *Lobby) IsReady() bool {
	if len(l.players) < MinPlayers {
		return false
	}
	for _, w := range l.players {
		if !w.Ready {
			return false
		}
	}
	return true
}
