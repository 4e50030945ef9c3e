package game

import (
	"context"
	"fmt"

	"github.com/wfunc/chaos-server/arena"
	"github.com/wfunc/chaos-server/models"
	"github.com/wfunc/chaos-server/protocol"
	"github.com/wfunc/chaos-server/rules"
)

// shieldedByUndeath reports whether the creation on dst is undead and the
// attacker cannot hurt undead.
func (e *Engine) shieldedByUndeath(dst arena.Pos, canHitUndead bool) bool {
	c := e.arena.Get(dst).Creation
	return c != nil && c.Stats.Undead && !canHitUndead
}

func canHitUndead(w *arena.Wizard) bool {
	return w.Stats.AttackBuff != models.NoAttackBuff
}

// creationAttack resolves the creation on src attacking dst in melee. A
// winner takes the tile unless it is a shadow wood, which stays rooted.
func (e *Engine) creationAttack(ctx context.Context, id uint32, src, dst arena.Pos) error {
	attacker := e.arena.CreationAt(src)
	attacker.MovesLeft = 0
	rooted := attacker.Stats.ShadowWood
	combat := attacker.Stats.Base.Combat
	advance := func() error {
		e.announce(id, protocol.MoveCreation{From: src, To: dst})
		e.arena.MoveCreation(src, dst)
		return e.creationRangedCheck(ctx, id, dst)
	}

	t := e.arena.Get(dst)
	switch {
	case t.Spawn != nil:
		if !rules.AttackSucceeds(e.rng, combat, t.Spawn.Creation.Stats.Base.Defence) {
			break
		}
		e.announce(id, protocol.SuccessfulAttack{At: dst})
		e.arena.RemoveSpawn(dst)
		if !rooted && t.Creation == nil && t.Wizard == nil {
			return advance()
		}
		return nil
	case t.Creation != nil:
		other := t.Creation
		if !rules.AttackSucceeds(e.rng, combat, other.Stats.Base.Defence) {
			break
		}
		if other.Stats.MagicWood && t.Wizard != nil {
			e.announce(id, protocol.SuccessfulAttack{At: dst})
			e.killWizard(t.Wizard.ID)
			if e.roster.WinConditionMet() {
				return nil
			}
			if !rooted && t.Creation == nil {
				return advance()
			}
			return nil
		}
		corpse := other.HasCorpse()
		e.announce(id, protocol.SuccessfulAttack{At: dst, Corpse: corpse})
		e.arena.KillCreation(dst, corpse)
		if !rooted && t.Wizard == nil {
			return advance()
		}
		return nil
	case t.Wizard != nil:
		if !rules.AttackSucceeds(e.rng, combat, t.Wizard.Stats.Defence()) {
			break
		}
		e.announce(id, protocol.SuccessfulAttack{At: dst})
		e.killWizard(t.Wizard.ID)
		if e.roster.WinConditionMet() {
			return nil
		}
		if rooted {
			return e.creationRangedCheck(ctx, id, src)
		}
		return advance()
	default:
		panic(fmt.Sprintf("game: creation attack on empty tile %v", dst))
	}
	e.announce(id, protocol.FailedAttack{At: dst})
	return e.creationRangedCheck(ctx, id, src)
}

// wizardAttack resolves the wizard on src attacking dst in melee. Attacking
// breaks shadow form.
func (e *Engine) wizardAttack(ctx context.Context, id uint32, src, dst arena.Pos) error {
	w := e.arena.WizardAt(src)
	w.MovesLeft = 0
	w.Stats.ShadowForm = false
	combat := w.Stats.Combat()
	advance := func() error {
		e.announce(id, protocol.MoveWizard{To: dst})
		e.arena.MoveWizard(id, dst)
		return e.wizardRangedCheck(ctx, id, dst)
	}

	t := e.arena.Get(dst)
	switch {
	case t.Spawn != nil:
		if !rules.AttackSucceeds(e.rng, combat, t.Spawn.Creation.Stats.Base.Defence) {
			break
		}
		e.announce(id, protocol.SuccessfulAttack{At: dst})
		e.arena.RemoveSpawn(dst)
		if t.Creation == nil && t.Wizard == nil {
			return advance()
		}
		return nil
	case t.Creation != nil:
		other := t.Creation
		if !rules.AttackSucceeds(e.rng, combat, other.Stats.Base.Defence) {
			break
		}
		if other.Stats.MagicWood && t.Wizard != nil {
			e.announce(id, protocol.SuccessfulAttack{At: dst})
			e.killWizard(t.Wizard.ID)
			if e.roster.WinConditionMet() {
				return nil
			}
			return advance()
		}
		corpse := other.HasCorpse()
		e.announce(id, protocol.SuccessfulAttack{At: dst, Corpse: corpse})
		e.arena.KillCreation(dst, corpse)
		if t.Wizard == nil {
			return advance()
		}
		return nil
	case t.Wizard != nil:
		if !rules.AttackSucceeds(e.rng, combat, t.Wizard.Stats.Defence()) {
			break
		}
		e.announce(id, protocol.SuccessfulAttack{At: dst})
		e.killWizard(t.Wizard.ID)
		if e.roster.WinConditionMet() {
			return nil
		}
		return advance()
	default:
		panic(fmt.Sprintf("game: wizard attack on empty tile %v", dst))
	}
	e.announce(id, protocol.FailedAttack{At: dst})
	return e.wizardRangedCheck(ctx, id, src)
}

// creationEngaged forces the creation on src to fight a neighbour or stand.
func (e *Engine) creationEngaged(ctx context.Context, id uint32, src arena.Pos) error {
	c := e.arena.CreationAt(src)
	c.MovesLeft = 0
	for {
		tiles := e.arena.CombatTiles(src, id)
		e.tell(id, protocol.EngagedInCombat{Tiles: tiles})
		dst, ok, err := e.awaitTile(ctx, id, tiles)
		if err != nil {
			return err
		}
		if !ok {
			return e.creationRangedCheck(ctx, id, src)
		}
		if e.shieldedByUndeath(dst, c.Stats.Undead) {
			e.tell(id, protocol.UndeadCannotBeAttacked{})
			continue
		}
		return e.creationAttack(ctx, id, src, dst)
	}
}

func (e *Engine) wizardEngaged(ctx context.Context, id uint32, src arena.Pos) error {
	w := e.arena.WizardAt(src)
	w.MovesLeft = 0
	for {
		tiles := e.arena.CombatTiles(src, id)
		e.tell(id, protocol.EngagedInCombat{Tiles: tiles})
		dst, ok, err := e.awaitTile(ctx, id, tiles)
		if err != nil {
			return err
		}
		if !ok {
			return e.wizardRangedCheck(ctx, id, src)
		}
		if e.shieldedByUndeath(dst, canHitUndead(w)) {
			e.tell(id, protocol.UndeadCannotBeAttacked{})
			continue
		}
		return e.wizardAttack(ctx, id, src, dst)
	}
}

// shadowWoodAttack lets a shadow wood strike a neighbour. It never moves.
func (e *Engine) shadowWoodAttack(ctx context.Context, id uint32, src arena.Pos) error {
	c := e.arena.CreationAt(src)
	c.MovesLeft = 0
	for {
		tiles := e.arena.CombatTiles(src, id)
		if len(tiles) == 0 {
			e.tell(id, protocol.NoPossibleMoves{})
			return nil
		}
		e.tell(id, protocol.EngagedInCombat{Tiles: tiles})
		dst, ok, err := e.awaitTile(ctx, id, tiles)
		if err != nil || !ok {
			return err
		}
		if e.shieldedByUndeath(dst, c.Stats.Undead) {
			e.tell(id, protocol.UndeadCannotBeAttacked{})
			continue
		}
		return e.creationAttack(ctx, id, src, dst)
	}
}

// isEngaged rolls manoeuvre against every adjacent foe until one pins the
// piece.
func (e *Engine) isEngaged(at arena.Pos, id uint32, manoeuvre int) bool {
	for _, p := range e.arena.NeighbouringFoes(at, id) {
		t := e.arena.Get(p)
		var foe int
		if t.Creation != nil {
			foe = t.Creation.Stats.Base.Manoeuvre
		} else {
			foe = t.Wizard.Stats.Base.Manoeuvre
		}
		if rules.IsEngaged(e.rng, foe, manoeuvre) {
			return true
		}
	}
	return false
}

// shot is one ranged attack.
type shot struct {
	from, to arena.Pos
	combat   int
	color    models.Color
	dragon   bool
	// undead shooters are the only ones that may hit undead. Wizards ignore
	// the rule.
	checkUndead bool
	undead      bool
}

func (e *Engine) creationRangedCheck(ctx context.Context, id uint32, from arena.Pos) error {
	c := e.arena.CreationAt(from)
	if c.Stats.Base.Range <= 0 {
		return nil
	}
	return e.rangedCheck(ctx, id, from, c.Stats.Base.Range, func(to arena.Pos) {
		e.rangedAttack(id, shot{
			from:        from,
			to:          to,
			combat:      c.Stats.Base.RangedCombat,
			color:       c.ProjectileColor(),
			dragon:      c.Stats.Dragon,
			checkUndead: true,
			undead:      c.Stats.Undead,
		})
	})
}

func (e *Engine) wizardRangedCheck(ctx context.Context, id uint32, from arena.Pos) error {
	w := e.arena.WizardAt(from)
	if w.Stats.Range() <= 0 {
		return nil
	}
	return e.rangedCheck(ctx, id, from, w.Stats.Range(), func(to arena.Pos) {
		e.rangedAttack(id, shot{
			from:   from,
			to:     to,
			combat: w.Stats.RangedCombat(),
			color:  models.BrightWhite,
		})
	})
}

// rangedCheck offers a ranged attack until the player fires at a tile in
// sight or passes.
func (e *Engine) rangedCheck(ctx context.Context, id uint32, from arena.Pos, rng int, fire func(to arena.Pos)) error {
	for {
		tiles := e.arena.RangedCombatTiles(from, rng)
		e.tell(id, protocol.ChooseRangedCombat{Range: rng, Tiles: tiles})
		to, ok, err := e.awaitTile(ctx, id, tiles)
		if err != nil || !ok {
			return err
		}
		if e.arena.LineOfSight(from, to) {
			fire(to)
			return nil
		}
		e.tell(id, protocol.NoLineOfSight{})
	}
}

func (e *Engine) rangedAttack(id uint32, s shot) {
	hit := func(corpse bool) {
		if s.dragon {
			e.announce(id, protocol.SuccessfulDragonRangedAttack{From: s.from, To: s.to})
			return
		}
		e.announce(id, protocol.SuccessfulRangedAttack{From: s.from, To: s.to, Corpse: corpse, Color: s.color})
	}

	t := e.arena.Get(s.to)
	switch {
	case t.Spawn != nil && t.Spawn.IsBlob():
		if rules.AttackSucceeds(e.rng, s.combat, t.Spawn.Creation.Stats.Base.Defence) {
			hit(false)
			e.arena.RemoveSpawn(s.to)
			return
		}
	case t.Creation != nil:
		other := t.Creation
		if s.checkUndead && other.Stats.Undead && !s.undead {
			e.tell(id, protocol.UndeadCannotBeAttacked{})
			break
		}
		if !rules.AttackSucceeds(e.rng, s.combat, other.Stats.Base.Defence) {
			break
		}
		if other.Stats.MagicWood && t.Wizard != nil {
			hit(false)
			e.killWizard(t.Wizard.ID)
			return
		}
		// dragon fire leaves nothing behind
		corpse := other.HasCorpse() && !s.dragon
		hit(corpse)
		e.arena.KillCreation(s.to, corpse)
		return
	case t.Wizard != nil:
		if rules.AttackSucceeds(e.rng, s.combat, t.Wizard.Stats.Defence()) {
			hit(false)
			e.killWizard(t.Wizard.ID)
			return
		}
	}
	if s.dragon {
		e.announce(id, protocol.FailedDragonRangedAttack{From: s.from, To: s.to})
		return
	}
	e.announce(id, protocol.FailedRangedAttack{From: s.from, To: s.to, Color: s.color})
}
