package game

import (
	"context"
	"slices"
	"sort"

	"github.com/wfunc/chaos-server/protocol"
	"github.com/wfunc/chaos-server/spells"
)

// castOrder is one player's spell for the round.
type castOrder struct {
	id       uint32
	spell    spells.Spell
	illusion bool
}

// selectSpells asks every active wizard for a spell at once and waits until
// each has answered or left. Orders come back sorted by id.
func (e *Engine) selectSpells(ctx context.Context) ([]castOrder, error) {
	asked := e.roster.ActiveIDs()
	waiting := make(map[uint32]bool, len(asked))
	for _, id := range asked {
		waiting[id] = true
	}
	e.broadcast(protocol.WaitingForOtherPlayers{Count: len(waiting)})
	for _, id := range asked {
		e.tell(id, protocol.ChooseSpell{})
	}

	var orders []castOrder
	for len(waiting) > 0 {
		ev, err := e.next(ctx)
		if err != nil {
			return nil, err
		}
		switch ev := ev.(type) {
		case protocol.Disconnected:
			e.roster.MarkDisconnected(ev.ID)
			if waiting[ev.ID] {
				delete(waiting, ev.ID)
				e.broadcast(protocol.WaitingForOtherPlayers{Count: len(waiting)})
			}
		case protocol.Received:
			msg, ok := ev.Msg.(protocol.ChosenSpell)
			if !ok || !waiting[ev.ID] {
				continue
			}
			hand := e.roster.Get(ev.ID).Spells
			if c := msg.Choice; c != nil && (c.Index < 0 || c.Index >= len(hand)) {
				e.log.Debugf("wizard %d chose spell %d of %d", ev.ID, c.Index, len(hand))
				continue
			}
			delete(waiting, ev.ID)
			e.broadcast(protocol.WaitingForOtherPlayers{Count: len(waiting)})
			if msg.Choice != nil {
				orders = append(orders, e.takeSpell(ev.ID, *msg.Choice))
			}
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].id < orders[j].id })
	return orders, nil
}

// takeSpell removes the chosen spell from the hand. Disbelieve at index 0 is
// never used up.
func (e *Engine) takeSpell(id uint32, choice protocol.SpellChoice) castOrder {
	w := e.roster.Get(id)
	spell := w.Spells[choice.Index]
	if choice.Index > 0 {
		if _, piece, ok := e.arena.FindWizard(id); ok {
			piece.Stats.NumberOfSpells--
			e.announce(id, protocol.DeBuffWizard{Stats: piece.Stats})
		}
		w.Spells = slices.Delete(w.Spells, choice.Index, choice.Index+1)
	}
	return castOrder{id: id, spell: spell, illusion: choice.Illusion && spell.IsCreation()}
}
