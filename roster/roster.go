package roster

import (
	"fmt"

	"github.com/wfunc/chaos-server/arena"
	"github.com/wfunc/chaos-server/models"
	"github.com/wfunc/chaos-server/rules"
	"github.com/wfunc/chaos-server/spells"
)

// Wizard is a player once the game has started.
type Wizard struct {
	ID           uint32             `json:"id" msgpack:"id"`
	Player       models.Player      `json:"player" msgpack:"player"`
	Alive        bool               `json:"alive" msgpack:"alive"`
	Disconnected bool               `json:"disconnected" msgpack:"disconnected"`
	Spells       []spells.Spell     `json:"spells" msgpack:"spells"`
	Stats        models.WizardStats `json:"stats" msgpack:"stats"`
}

// Active reports whether the wizard still takes turns.
func (w *Wizard) Active() bool {
	return w.Alive && !w.Disconnected
}

// startingPositions holds the opening layout per player count, 2 to 8.
var startingPositions = [][]arena.Pos{
	{{X: 1, Y: 4}, {X: 13, Y: 4}},
	{{X: 7, Y: 1}, {X: 1, Y: 8}, {X: 13, Y: 8}},
	{{X: 1, Y: 1}, {X: 13, Y: 1}, {X: 1, Y: 8}, {X: 13, Y: 8}},
	{{X: 7, Y: 0}, {X: 0, Y: 3}, {X: 14, Y: 3}, {X: 3, Y: 9}, {X: 11, Y: 9}},
	{{X: 7, Y: 0}, {X: 0, Y: 1}, {X: 14, Y: 1}, {X: 0, Y: 8}, {X: 7, Y: 9}, {X: 14, Y: 8}},
	{{X: 7, Y: 0}, {X: 1, Y: 1}, {X: 13, Y: 1}, {X: 0, Y: 6}, {X: 14, Y: 6}, {X: 4, Y: 9}, {X: 10, Y: 9}},
	{{X: 0, Y: 0}, {X: 7, Y: 0}, {X: 14, Y: 0}, {X: 0, Y: 4}, {X: 14, Y: 4}, {X: 0, Y: 9}, {X: 7, Y: 9}, {X: 14, Y: 9}},
}

// StartingPositions returns the opening tiles for n players.
func StartingPositions(n int) ([]arena.Pos, error) {
	if n < MinPlayers || n > MaxPlayers {
		return nil, fmt.Errorf("roster: no starting layout for %d players", n)
	}
	return startingPositions[n-MinPlayers], nil
}

// Roster is the in-game list of wizards, ordered by id.
type Roster struct {
	wizards []*Wizard
}

// New rolls stats and a hand for every seated player.
func New(lobby *Lobby, r rules.Roller) *Roster {
	seated := lobby.Players()
	ro := &Roster{wizards: make([]*Wizard, 0, len(seated))}
	for _, lw := range seated {
		stats := rules.NewWizardStats(r, lw.Player)
		ro.wizards = append(ro.wizards, &Wizard{
			ID:     lw.ID,
			Player: lw.Player,
			Alive:  true,
			Spells: spells.NewHand(r, stats.NumberOfSpells),
			Stats:  stats,
		})
	}
	return ro
}

// Get returns the wizard for id. Unknown ids are an invariant violation.
func (ro *Roster) Get(id uint32) *Wizard {
	for _, w := range ro.wizards {
		if w.ID == id {
			return w
		}
	}
	panic(fmt.Sprintf("roster: unknown wizard %d", id))
}

// Lookup is Get for ids that may not be playing.
func (ro *Roster) Lookup(id uint32) (*Wizard, bool) {
	for _, w := range ro.wizards {
		if w.ID == id {
			return w, true
		}
	}
	return nil, false
}

func (ro *Roster) All() []*Wizard {
	return ro.wizards
}

func (ro *Roster) Len() int {
	return len(ro.wizards)
}

// ActiveIDs returns the ids of wizards that are alive and connected.
func (ro *Roster) ActiveIDs() []uint32 {
	var ids []uint32
	for _, w := range ro.wizards {
		if w.Active() {
			ids = append(ids, w.ID)
		}
	}
	return ids
}

func (ro *Roster) IsAlive(id uint32) bool {
	return ro.Get(id).Alive
}

func (ro *Roster) HasDisconnected(id uint32) bool {
	return ro.Get(id).Disconnected
}

// MarkDisconnected flags id as gone. Ids outside the game are ignored.
func (ro *Roster) MarkDisconnected(id uint32) {
	if w, ok := ro.Lookup(id); ok {
		w.Disconnected = true
	}
}

func (ro *Roster) Kill(id uint32) {
	ro.Get(id).Alive = false
}

// WinConditionMet is true when exactly one wizard remains active.
func (ro *Roster) WinConditionMet() bool {
	return len(ro.ActiveIDs()) == 1
}

// Winners returns the profiles of every active wizard.
func (ro *Roster) Winners() []models.Player {
	out := []models.Player{}
	for _, w := range ro.wizards {
		if w.Active() {
			out = append(out, w.Player)
		}
	}
	return out
}

// AllGone reports whether every player has disconnected.
func (ro *Roster) AllGone() bool {
	for _, w := range ro.wizards {
		if !w.Disconnected {
			return false
		}
	}
	return true
}

// StartingPositions pairs each wizard with its opening tile.
func (ro *Roster) StartingPositions() ([]arena.Pos, error) {
	return StartingPositions(len(ro.wizards))
}
