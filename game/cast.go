package game

import (
	"context"
	"fmt"

	"github.com/wfunc/chaos-server/arena"
	"github.com/wfunc/chaos-server/models"
	"github.com/wfunc/chaos-server/protocol"
	"github.com/wfunc/chaos-server/rules"
	"github.com/wfunc/chaos-server/spells"
)

const (
	magicWoodTrees  = 8
	shadowWoodTrees = 8
	wallSegments    = 4
	magicBoltCombat = 3
	lightningCombat = 6
)

// casting is a spell being resolved. The world alignment and the caster's
// ability are fixed when the spell starts.
type casting struct {
	castOrder
	from    arena.Pos
	wizard  *arena.Wizard
	ability int
	world   int8
}

func (c *casting) roll(r rules.Roller) bool {
	return c.spell.Cast(r, c.world, c.ability)
}

// refusal rejects a chosen tile with the notice to send back, or nil to
// accept it.
type refusal func(at arena.Pos) protocol.Message

func (e *Engine) inSight(from arena.Pos) refusal {
	return func(at arena.Pos) protocol.Message {
		if e.arena.LineOfSight(from, at) {
			return nil
		}
		return protocol.NoLineOfSight{}
	}
}

func (e *Engine) awayFromShadowWood(at arena.Pos) protocol.Message {
	if e.arena.IsNextToShadowWood(at) {
		return protocol.ShadowWoodInfo{}
	}
	return nil
}

// pickTarget offers the tiles from list until id picks one that passes every
// refusal. ok is false when nothing was offered, or the player declined or
// left.
func (e *Engine) pickTarget(ctx context.Context, id uint32, list func() []arena.Pos, refuse ...refusal) (arena.Pos, bool, error) {
	for {
		if !e.hasTargets(id, list) {
			return arena.Pos{}, false, nil
		}
		tiles := list()
		e.tell(id, protocol.ChooseTarget{Tiles: tiles})
		at, ok, err := e.awaitTile(ctx, id, tiles)
		if err != nil || !ok {
			return at, false, err
		}
		if notice := firstRefusal(at, refuse); notice != nil {
			e.tell(id, notice)
			continue
		}
		return at, true, nil
	}
}

// hasTargets tells id there is nothing to aim at when list is empty. Spells
// checked this way neither roll nor shift the world alignment.
func (e *Engine) hasTargets(id uint32, list func() []arena.Pos) bool {
	if len(list()) > 0 {
		return true
	}
	e.tell(id, protocol.NoPossibleMoves{})
	return false
}

func firstRefusal(at arena.Pos, refuse []refusal) protocol.Message {
	for _, r := range refuse {
		if notice := r(at); notice != nil {
			return notice
		}
	}
	return nil
}

func (e *Engine) emptyTiles(c *casting) func() []arena.Pos {
	return func() []arena.Pos { return e.arena.EmptyTiles(c.from, c.spell.Range) }
}

func (e *Engine) attackableTiles(c *casting) func() []arena.Pos {
	return func() []arena.Pos { return e.arena.AttackableOpposition(c.from, c.spell.Range, c.id) }
}

// succeed shifts the world alignment and reports the spell worked.
func (e *Engine) succeed(c *casting) {
	e.arena.AdjustAlignment(c.spell.Alignment)
	e.broadcast(protocol.SpellSucceeds{Alignment: e.arena.Alignment()})
}

func (e *Engine) fail() {
	e.broadcast(protocol.SpellFails{})
}

// doSpell resolves one player's spell for the round. Spells of wizards killed
// earlier in the round fizzle silently.
func (e *Engine) doSpell(ctx context.Context, o castOrder) error {
	from, w, ok := e.arena.FindWizard(o.id)
	if !ok || !e.roster.IsAlive(o.id) {
		return nil
	}
	c := &casting{
		castOrder: o,
		from:      from,
		wizard:    w,
		ability:   w.Stats.SpellAbility,
		world:     e.arena.Alignment(),
	}
	e.obs.SpellCast(o.id, o.spell)
	e.announce(o.id, protocol.CastSpell{SpellName: o.spell.Name, Range: o.spell.DisplayRange()})

	switch o.spell.Kind {
	case spells.Disbelieve:
		return e.castDisbelieve(ctx, c)
	case spells.Creation, spells.MagicFire, spells.GooeyBlob:
		return e.castSummon(ctx, c)
	case spells.MagicWood:
		e.castMagicWood(c)
	case spells.ShadowWood:
		return e.castPlacements(ctx, c, shadowWoodTrees, e.inSight(from), e.awayFromShadowWood)
	case spells.Wall:
		return e.castPlacements(ctx, c, wallSegments, e.inSight(from))
	case spells.Shelter:
		return e.castShelter(ctx, c)
	case spells.MagicBolt:
		return e.castBolt(ctx, c, magicBoltCombat, func(at arena.Pos, success bool) protocol.Message {
			return protocol.MagicBolt{At: at, Success: success}
		})
	case spells.Lightning:
		return e.castBolt(ctx, c, lightningCombat, func(at arena.Pos, success bool) protocol.Message {
			return protocol.Lightning{At: at, Success: success}
		})
	case spells.MagicalAttack:
		return e.castMagicalAttack(ctx, c)
	case spells.WizardAttackBuff, spells.WizardDefenceBuff, spells.MagicBow, spells.MagicWings, spells.ShadowForm:
		e.castBuff(c)
	case spells.WorldAlignment:
		if c.roll(e.rng) {
			e.succeed(c)
		} else {
			e.fail()
		}
	case spells.Subversion:
		return e.castSubversion(ctx, c)
	case spells.RaiseDead:
		return e.castRaiseDead(ctx, c)
	default:
		panic(fmt.Sprintf("game: unhandled spell kind %v", o.spell.Kind))
	}
	return nil
}

// castDisbelieve only works on illusions. It never needs a roll.
func (e *Engine) castDisbelieve(ctx context.Context, c *casting) error {
	at, ok, err := e.pickTarget(ctx, c.id, e.attackableTiles(c))
	if err != nil || !ok {
		return err
	}
	if cr := e.arena.Get(at).Creation; cr != nil && cr.Illusion {
		e.announce(c.id, protocol.Disbelieve{At: at, Success: true})
		e.arena.KillCreation(at, false)
		e.succeed(c)
		return nil
	}
	e.announce(c.id, protocol.Disbelieve{At: at, Success: false})
	e.fail()
	return nil
}

func (e *Engine) newCreation(c *casting) *arena.Creation {
	return arena.NewCreation(c.id, *c.spell.Creation)
}

// castSummon places a creature or starts a fire or blob. Illusions skip the
// roll; nobody but the caster learns the creature is fake.
func (e *Engine) castSummon(ctx context.Context, c *casting) error {
	at, ok, err := e.pickTarget(ctx, c.id, e.emptyTiles(c), e.inSight(c.from))
	if err != nil || !ok {
		return err
	}
	piece := e.newCreation(c)
	switch c.spell.Kind {
	case spells.MagicFire:
		if !c.roll(e.rng) {
			e.announce(c.id, protocol.CastFire{At: at})
			e.fail()
			return nil
		}
		e.announce(c.id, protocol.CastFire{At: at, Fire: piece.Clone()})
		e.arena.SpawnFire(at, piece)
	case spells.GooeyBlob:
		if !c.roll(e.rng) {
			e.announce(c.id, protocol.CastBlob{At: at})
			e.fail()
			return nil
		}
		e.announce(c.id, protocol.CastBlob{At: at, Blob: piece.Clone()})
		e.arena.SpawnBlob(at, piece)
	default:
		if !c.illusion && !c.roll(e.rng) {
			e.announce(c.id, protocol.CreationSpell{At: at})
			e.fail()
			return nil
		}
		e.announce(c.id, protocol.CreationSpell{At: at, Creation: piece.Clone()})
		piece.Illusion = c.illusion
		e.arena.PlaceCreation(at, piece)
	}
	e.succeed(c)
	return nil
}

func (e *Engine) placeCreation(c *casting, at arena.Pos) {
	piece := e.newCreation(c)
	e.announce(c.id, protocol.CreationSpell{At: at, Creation: piece.Clone()})
	e.arena.PlaceCreation(at, piece)
}

// castMagicWood grows trees on random visible empty tiles. Only the first
// tree rolls.
func (e *Engine) castMagicWood(c *casting) {
	placed := 0
	for placed < magicWoodTrees {
		tiles := e.arena.EmptyTiles(c.from, c.spell.Range)
		rules.Shuffle(e.rng, len(tiles), func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })
		grown := 0
		for _, at := range tiles {
			if !e.arena.LineOfSight(c.from, at) {
				continue
			}
			if placed == 0 && !c.roll(e.rng) {
				e.announce(c.id, protocol.CreationSpell{At: at})
				e.fail()
				return
			}
			e.placeCreation(c, at)
			if placed == 0 {
				e.succeed(c)
			}
			placed++
			grown++
			if placed == magicWoodTrees {
				return
			}
		}
		if grown == 0 {
			// 没有可见的空格
			if placed == 0 {
				e.tell(c.id, protocol.NoPossibleMoves{})
			}
			return
		}
	}
}

// castPlacements lets the caster put up to limit pieces on chosen tiles. Only
// the first one rolls.
func (e *Engine) castPlacements(ctx context.Context, c *casting, limit int, refuse ...refusal) error {
	for placed := 0; placed < limit; placed++ {
		at, ok, err := e.pickTarget(ctx, c.id, e.emptyTiles(c), refuse...)
		if err != nil || !ok {
			return err
		}
		if placed == 0 && !c.roll(e.rng) {
			e.announce(c.id, protocol.CreationSpell{At: at})
			e.fail()
			return nil
		}
		e.placeCreation(c, at)
		if placed == 0 {
			e.succeed(c)
		}
	}
	return nil
}

func (e *Engine) castShelter(ctx context.Context, c *casting) error {
	at, ok, err := e.pickTarget(ctx, c.id, e.emptyTiles(c), e.inSight(c.from))
	if err != nil || !ok {
		return err
	}
	if !c.roll(e.rng) {
		e.announce(c.id, protocol.CreationSpell{At: at})
		e.fail()
		return nil
	}
	e.succeed(c)
	e.placeCreation(c, at)
	return nil
}

// castBolt is a single ranged strike with a fixed combat value.
func (e *Engine) castBolt(ctx context.Context, c *casting, combat int, report func(at arena.Pos, success bool) protocol.Message) error {
	if !e.hasTargets(c.id, e.attackableTiles(c)) {
		return nil
	}
	if !c.roll(e.rng) {
		e.fail()
		return nil
	}
	e.succeed(c)
	at, ok, err := e.pickTarget(ctx, c.id, e.attackableTiles(c), e.inSight(c.from))
	if err != nil || !ok {
		return err
	}
	var kill func()
	t := e.arena.Get(at)
	switch {
	case t.Spawn != nil:
		if rules.AttackSucceeds(e.rng, combat, t.Spawn.Creation.Stats.Base.Defence) {
			kill = func() { e.arena.RemoveSpawn(at) }
		}
	case t.Creation != nil:
		if rules.AttackSucceeds(e.rng, combat, t.Creation.Stats.Base.Defence) {
			kill = func() { e.arena.KillCreation(at, false) }
		}
	case t.Wizard != nil:
		victim := t.Wizard.ID
		if rules.AttackSucceeds(e.rng, combat, t.Wizard.Stats.Defence()) {
			kill = func() { e.killWizard(victim) }
		}
	}
	e.announce(c.id, report(at, kill != nil))
	if kill != nil {
		kill()
	}
	return nil
}

// castMagicalAttack makes several strikes against magical resistance. A hit
// on a wizard wipes out their creations but leaves the wizard standing.
func (e *Engine) castMagicalAttack(ctx context.Context, c *casting) error {
	if !e.hasTargets(c.id, e.attackableTiles(c)) {
		return nil
	}
	if !c.roll(e.rng) {
		e.fail()
		return nil
	}
	e.succeed(c)
	for i, n := 0, c.spell.Attempts; i < n; i++ {
		at, ok, err := e.pickTarget(ctx, c.id, e.attackableTiles(c))
		if err != nil || !ok {
			return err
		}
		var hit func()
		t := e.arena.Get(at)
		switch {
		case t.Spawn != nil:
			if e.overpowers(c, t.Spawn.Creation.Stats.Base) {
				hit = func() { e.arena.RemoveSpawn(at) }
			}
		case t.Creation != nil:
			if e.overpowers(c, t.Creation.Stats.Base) {
				hit = func() { e.arena.KillCreation(at, false) }
			}
		case t.Wizard != nil:
			victim := t.Wizard.ID
			if e.overpowers(c, t.Wizard.Stats.Base) {
				hit = func() { e.arena.DestroyAllWizardCreations(victim) }
			}
		}
		e.announce(c.id, protocol.MagicalAttack{At: at, Success: hit != nil})
		if hit != nil {
			hit()
		}
	}
	return nil
}

// overpowers reports whether the caster's ability beats the target's magical
// resistance.
func (e *Engine) overpowers(c *casting, target models.BaseStats) bool {
	return rules.MagicalAttackSucceeds(e.rng, c.ability, target.MagicalResistance)
}

func (e *Engine) castBuff(c *casting) {
	if !c.roll(e.rng) {
		e.fail()
		return
	}
	stats := &c.wizard.Stats
	switch c.spell.Kind {
	case spells.WizardAttackBuff:
		stats.ApplyAttackBuff(c.spell.AttackBuff)
	case spells.WizardDefenceBuff:
		stats.ApplyDefenceBuff(c.spell.DefenceBuff)
	case spells.MagicBow:
		stats.ApplyMagicBow()
	case spells.MagicWings:
		stats.ApplyMagicWings()
	case spells.ShadowForm:
		stats.ShadowForm = true
	}
	e.announce(c.id, protocol.BuffWizard{Stats: *stats})
	e.succeed(c)
}

func (e *Engine) castSubversion(ctx context.Context, c *casting) error {
	list := func() []arena.Pos { return e.arena.SubvertableOpposition(c.from, c.spell.Range, c.id) }
	at, ok, err := e.pickTarget(ctx, c.id, list, e.inSight(c.from))
	if err != nil || !ok {
		return err
	}
	target := e.arena.CreationAt(at)
	if c.roll(e.rng) && !target.Illusion && e.overpowers(c, target.Stats.Base) {
		e.succeed(c)
		e.announce(c.id, protocol.Subversion{At: at, Success: true})
		e.arena.Subvert(at, c.id)
		return nil
	}
	e.fail()
	return nil
}

func (e *Engine) castRaiseDead(ctx context.Context, c *casting) error {
	list := func() []arena.Pos { return e.arena.VisibleCorpses(c.from, c.spell.Range) }
	at, ok, err := e.pickTarget(ctx, c.id, list, e.inSight(c.from))
	if err != nil || !ok {
		return err
	}
	if c.roll(e.rng) && e.overpowers(c, e.arena.CorpseAt(at).Stats.Base) {
		e.announce(c.id, protocol.RaiseDead{At: at, Success: true})
		e.arena.RaiseDead(at, c.id)
		e.succeed(c)
		return nil
	}
	e.announce(c.id, protocol.RaiseDead{At: at, Success: false})
	e.fail()
	return nil
}

// killWizard removes the wizard and everything they own.
func (e *Engine) killWizard(id uint32) {
	e.log.Infof("wizard %d killed", id)
	e.arena.KillWizardAndCreations(id)
	e.roster.Kill(id)
}
