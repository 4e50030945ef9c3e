package game

import (
	"context"

	"github.com/wfunc/chaos-server/arena"
	"github.com/wfunc/chaos-server/protocol"
)

// wingsMovement is the flying range magic wings give a wizard.
const wingsMovement = 6

// movementLoop lets id move each piece in turn until they pass or run out of
// pieces with moves left.
func (e *Engine) movementLoop(ctx context.Context, id uint32) error {
	e.arena.ResetMoves(id)
	for {
		if !e.roster.IsAlive(id) || e.roster.WinConditionMet() {
			return nil
		}
		tiles := e.arena.TilesWithMovesLeft(id)
		if len(tiles) == 0 {
			return nil
		}
		e.tell(id, protocol.ChoosePiece{Tiles: tiles})
		at, ok, err := e.awaitTile(ctx, id, tiles)
		if err != nil || !ok {
			return err
		}
		if err := e.movePiece(ctx, id, at); err != nil {
			return err
		}
	}
}

// movePiece runs the move of the piece chosen on at.
func (e *Engine) movePiece(ctx context.Context, id uint32, at arena.Pos) error {
	t := e.arena.Get(at)
	if c := t.Creation; c != nil && !c.Stats.Shelter {
		if c.Stats.ShadowWood {
			return e.shadowWoodAttack(ctx, id, at)
		}
		if e.isEngaged(at, id, c.Stats.Base.Manoeuvre) {
			return e.creationEngaged(ctx, id, at)
		}
		if t.Wizard != nil {
			e.tell(id, protocol.AskForDismount{})
			choice, err := e.awaitDismount(ctx, id)
			if err != nil || choice == nil {
				return err
			}
			if *choice {
				c.MovesLeft = 0
				return e.walkWizard(ctx, id, at)
			}
			t.Wizard.MovesLeft = 0
		}
		if c.Stats.Flying {
			return e.flyCreation(ctx, id, at)
		}
		return e.walkCreation(ctx, id, at)
	}

	w := e.arena.WizardAt(at)
	if !w.Stats.ShadowForm && e.isEngaged(at, id, w.Stats.Base.Manoeuvre) {
		return e.wizardEngaged(ctx, id, at)
	}
	if w.Stats.MagicWings {
		return e.flyWizard(ctx, id, at)
	}
	return e.walkWizard(ctx, id, at)
}

// walkWizard moves a wizard one tile at a time. Stepping onto a mount ends
// the move.
func (e *Engine) walkWizard(ctx context.Context, id uint32, from arena.Pos) error {
	for {
		tiles := e.arena.WizardMovementTiles(from, id)
		if len(tiles) == 0 {
			return nil
		}
		w := e.arena.WizardAt(from)
		shadowForm := w.Stats.ShadowForm
		if w.MovesLeft == w.Stats.Movement() {
			e.tell(id, protocol.MovementRange{Range: w.Stats.Base.Movement, Tiles: tiles})
		} else {
			e.tell(id, protocol.MovementPoints{Points: w.MovesLeft, Tiles: tiles})
		}
		dst, ok, err := e.awaitTile(ctx, id, tiles)
		if err != nil {
			return err
		}
		if !ok {
			w.MovesLeft = 0
			return e.wizardRangedCheck(ctx, id, from)
		}

		t := e.arena.Get(dst)
		if t.Spawn != nil {
			return e.wizardAttack(ctx, id, from, dst)
		}
		if e.shieldedByUndeath(dst, canHitUndead(w)) {
			e.tell(id, protocol.UndeadCannotBeAttacked{})
			continue
		}
		if t.Wizard != nil || (t.Creation != nil && t.Creation.ID != id && !t.Creation.Stats.MagicWood) {
			return e.wizardAttack(ctx, id, from, dst)
		}

		e.announce(id, protocol.MoveWizard{To: dst})
		e.arena.MoveWizard(id, dst)
		if !shadowForm && e.arena.HasNeighbouringFoes(dst, id) {
			return e.wizardEngaged(ctx, id, dst)
		}
		if c := t.Creation; c != nil && c.Stats.Mount {
			c.MovesLeft = 0
			w.MovesLeft = 0
			return nil
		}
		w.MovesLeft--
		if w.MovesLeft <= 0 {
			return e.wizardRangedCheck(ctx, id, dst)
		}
		from = dst
	}
}

// flyWizard is a single hop of up to wingsMovement.
func (e *Engine) flyWizard(ctx context.Context, id uint32, from arena.Pos) error {
	w := e.arena.WizardAt(from)
	shadowForm := w.Stats.ShadowForm
	w.MovesLeft = 0
	for {
		tiles := e.arena.WizardFlyingTiles(from, wingsMovement, id)
		if len(tiles) == 0 {
			return nil
		}
		e.tell(id, protocol.MovementRange{Range: wingsMovement, Flying: true, Tiles: tiles})
		dst, ok, err := e.awaitTile(ctx, id, tiles)
		if err != nil {
			return err
		}
		if !ok {
			return e.wizardRangedCheck(ctx, id, from)
		}

		t := e.arena.Get(dst)
		if t.Spawn == nil && e.shieldedByUndeath(dst, canHitUndead(w)) {
			e.tell(id, protocol.UndeadCannotBeAttacked{})
			continue
		}
		if t.Spawn != nil || t.Wizard != nil || (t.Creation != nil && t.Creation.ID != id) {
			return e.wizardAttack(ctx, id, from, dst)
		}

		e.announce(id, protocol.MoveWizard{To: dst})
		e.arena.MoveWizard(id, dst)
		if c := t.Creation; c != nil {
			// 进入自己的坐骑或庇护所
			c.MovesLeft = 0
			return nil
		}
		if !shadowForm && e.arena.HasNeighbouringFoes(dst, id) {
			return e.wizardEngaged(ctx, id, dst)
		}
		return e.wizardRangedCheck(ctx, id, dst)
	}
}

func (e *Engine) walkCreation(ctx context.Context, id uint32, from arena.Pos) error {
	for {
		tiles := e.arena.CreationMovementTiles(from, id)
		if len(tiles) == 0 {
			return nil
		}
		c := e.arena.CreationAt(from)
		if c.MovesLeft == c.Stats.Base.Movement {
			e.tell(id, protocol.MovementRange{Range: c.Stats.Base.Movement, Tiles: tiles})
		} else {
			e.tell(id, protocol.MovementPoints{Points: c.MovesLeft, Tiles: tiles})
		}
		dst, ok, err := e.awaitTile(ctx, id, tiles)
		if err != nil {
			return err
		}
		if !ok {
			c.MovesLeft = 0
			return e.creationRangedCheck(ctx, id, from)
		}

		t := e.arena.Get(dst)
		if t.Spawn != nil {
			return e.creationAttack(ctx, id, from, dst)
		}
		if e.shieldedByUndeath(dst, c.Stats.Undead) {
			e.tell(id, protocol.UndeadCannotBeAttacked{})
			continue
		}
		if t.Wizard != nil || t.Creation != nil {
			return e.creationAttack(ctx, id, from, dst)
		}

		e.announce(id, protocol.MoveCreation{From: from, To: dst})
		e.arena.MoveCreation(from, dst)
		if e.arena.HasNeighbouringFoes(dst, id) {
			return e.creationEngaged(ctx, id, dst)
		}
		c.MovesLeft--
		if c.MovesLeft <= 0 {
			return e.creationRangedCheck(ctx, id, dst)
		}
		from = dst
	}
}

func (e *Engine) flyCreation(ctx context.Context, id uint32, from arena.Pos) error {
	c := e.arena.CreationAt(from)
	c.MovesLeft = 0
	for {
		tiles := e.arena.CreationFlyingTiles(from, c.Stats.Base.Movement, id)
		if len(tiles) == 0 {
			return nil
		}
		e.tell(id, protocol.MovementRange{Range: c.Stats.Base.Movement, Flying: true, Tiles: tiles})
		dst, ok, err := e.awaitTile(ctx, id, tiles)
		if err != nil {
			return err
		}
		if !ok {
			return e.creationRangedCheck(ctx, id, from)
		}

		t := e.arena.Get(dst)
		if t.Spawn == nil && e.shieldedByUndeath(dst, c.Stats.Undead) {
			e.tell(id, protocol.UndeadCannotBeAttacked{})
			continue
		}
		if t.Spawn != nil || t.Wizard != nil || t.Creation != nil {
			return e.creationAttack(ctx, id, from, dst)
		}

		e.announce(id, protocol.MoveCreation{From: from, To: dst})
		e.arena.MoveCreation(from, dst)
		if e.arena.HasNeighbouringFoes(dst, id) {
			return e.creationEngaged(ctx, id, dst)
		}
		return e.creationRangedCheck(ctx, id, dst)
	}
}
