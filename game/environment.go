package game

import (
	"github.com/wfunc/chaos-server/arena"
	"github.com/wfunc/chaos-server/models"
	"github.com/wfunc/chaos-server/protocol"
	"github.com/wfunc/chaos-server/rules"
	"github.com/wfunc/chaos-server/spells"
)

// spawnCombat is the attack strength of spreading fire and blobs.
const spawnCombat = 5

// spreadDirections maps a d10 roll of 2..9 to a neighbour, clockwise from
// north.
var spreadDirections = [8]arena.Pos{
	{X: 0, Y: -1},
	{X: 1, Y: -1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
	{X: -1, Y: -1},
}

// shelterTurn burns down combustible shelters.
func (e *Engine) shelterTurn() {
	for _, at := range e.arena.CombustibleShelters() {
		if rules.ShouldDisappear(e.rng) {
			e.broadcast(protocol.ShelterDisappears{At: at})
			e.arena.KillCreation(at, false)
		}
	}
}

// magicWoodTurn may hand a wizard sheltering in a magic wood a new spell. The
// tree is used up.
func (e *Engine) magicWoodTurn() {
	for _, at := range e.arena.WizardsInTrees() {
		if !rules.GrantsSpell(e.rng) {
			continue
		}
		w := e.arena.WizardAt(at)
		holder := e.roster.Get(w.ID)
		if len(holder.Spells) >= models.MaxSpells {
			continue
		}
		spell := spells.Random(e.rng)
		w.Stats.NumberOfSpells++
		e.announce(w.ID, protocol.DeBuffWizard{Stats: w.Stats})
		e.tell(w.ID, protocol.SendSpell{Spell: spell})
		e.announce(w.ID, protocol.NewSpell{At: at})
		holder.Spells = append(holder.Spells, spell)
		e.arena.KillCreation(at, false)
	}
}

// spreadSpawns lets every fire and blob die out or creep into a neighbour.
// Spawns created during the pass wait for the next round.
func (e *Engine) spreadSpawns() {
	for _, at := range e.arena.SpawnTiles() {
		if e.roster.WinConditionMet() {
			return
		}
		s := e.arena.Get(at).Spawn
		if s == nil {
			// 所属巫师已死
			continue
		}
		roll := rules.D10(e.rng)
		if roll < 2 {
			e.broadcast(protocol.RemoveSpawn{At: at})
			e.arena.RemoveSpawn(at)
			continue
		}
		d := spreadDirections[roll-2]
		to := arena.Pos{X: at.X + d.X, Y: at.Y + d.Y}
		if !to.InBounds() || e.arena.Get(to).Spawn != nil {
			continue
		}
		if s.IsBlob() {
			e.blobMutate(s.Creation, to)
		} else {
			e.fireAttack(s.Creation, to)
		}
	}
}

func (e *Engine) fireAttack(fire *arena.Creation, to arena.Pos) {
	spread := func() {
		e.broadcast(protocol.SpawnFire{At: to, Fire: fire.Clone()})
		e.arena.SpawnFire(to, fire.Clone())
	}
	t := e.arena.Get(to)
	switch {
	case t.Creation != nil:
		c := t.Creation
		if c.ID == fire.ID || !c.Stats.Attackable {
			return
		}
		if !rules.AttackSucceeds(e.rng, spawnCombat, c.Stats.Base.Defence) {
			e.broadcast(protocol.SpawnFire{At: to})
			return
		}
		e.arena.KillCreation(to, false)
		if t.Wizard == nil {
			spread()
		}
	case t.Wizard != nil:
		if t.Wizard.ID == fire.ID {
			return
		}
		if !rules.AttackSucceeds(e.rng, spawnCombat, t.Wizard.Stats.Defence()) {
			e.broadcast(protocol.SpawnFire{At: to})
			return
		}
		e.killWizard(t.Wizard.ID)
		spread()
	default:
		spread()
	}
}

// blobMutate spreads a blob. Creations are engulfed and stay underneath.
func (e *Engine) blobMutate(blob *arena.Creation, to arena.Pos) {
	spread := func() {
		e.broadcast(protocol.SpawnBlob{At: to, Blob: blob.Clone()})
		e.arena.SpawnBlob(to, blob.Clone())
	}
	t := e.arena.Get(to)
	switch {
	case t.Creation != nil:
		if t.Creation.ID != blob.ID {
			spread()
		}
	case t.Wizard != nil:
		if t.Wizard.ID == blob.ID {
			return
		}
		if !rules.AttackSucceeds(e.rng, spawnCombat, t.Wizard.Stats.Defence()) {
			e.broadcast(protocol.SpawnBlob{At: to})
			return
		}
		e.killWizard(t.Wizard.ID)
		spread()
	default:
		spread()
	}
}
