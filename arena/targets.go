package arena

// 相邻格子的平方距离上限
const adjacentRange = 3

func (a *Arena) inSpellRange(from Pos, rng int, keep func(p Pos, t *Tile) bool) []Pos {
	return a.collect(func(p Pos, t *Tile) bool {
		return InSpellRange(from, p, rng) && keep(p, t)
	})
}

func (a *Arena) inFlyingRange(from Pos, movement int, keep func(p Pos, t *Tile) bool) []Pos {
	return a.collect(func(p Pos, t *Tile) bool {
		return InFlyingRange(from, p, movement) && keep(p, t)
	})
}

func attackableOpposition(t *Tile, id uint32) bool {
	if t.Spawn != nil {
		return t.Spawn.IsBlob() && t.Spawn.ID() != id
	}
	if t.Wizard != nil {
		return t.Wizard.ID != id
	}
	if t.Creation != nil {
		return t.Creation.ID != id && t.Creation.Stats.Attackable
	}
	return false
}

// AttackableOpposition lists targets for hostile spells cast by id.
func (a *Arena) AttackableOpposition(from Pos, rng int, id uint32) []Pos {
	return a.inSpellRange(from, rng, func(_ Pos, t *Tile) bool {
		return attackableOpposition(t, id)
	})
}

// SubvertableOpposition lists enemy creations that can change allegiance.
func (a *Arena) SubvertableOpposition(from Pos, rng int, id uint32) []Pos {
	return a.inSpellRange(from, rng, func(_ Pos, t *Tile) bool {
		return attackableOpposition(t, id) &&
			t.Spawn == nil && t.Wizard == nil &&
			t.Creation != nil && t.Creation.Stats.Subvertable
	})
}

// EmptyTiles lists tiles a creation may be summoned onto. Corpses don't count
// as occupants.
func (a *Arena) EmptyTiles(from Pos, rng int) []Pos {
	return a.inSpellRange(from, rng, func(_ Pos, t *Tile) bool {
		return t.IsEmpty()
	})
}

// RangedCombatTiles lists every tile inside a ranged attack radius.
func (a *Arena) RangedCombatTiles(from Pos, rng int) []Pos {
	return a.collect(func(p Pos, _ *Tile) bool {
		return InCombatRange(from, p, rng)
	})
}

// VisibleCorpses lists corpses with nothing standing on them.
func (a *Arena) VisibleCorpses(from Pos, rng int) []Pos {
	return a.inSpellRange(from, rng, func(_ Pos, t *Tile) bool {
		return t.IsEmpty() && t.Corpse != nil
	})
}

func (a *Arena) allowMovementWithAttack(t *Tile, id uint32) bool {
	switch {
	case t.Spawn != nil:
		return t.Spawn.IsBlob() && t.Spawn.ID() != id
	case t.Creation != nil:
		c := t.Creation
		enemyWizard := t.Wizard != nil && t.Wizard.ID != id
		return (c.ID != id && c.Stats.Attackable) || (c.Stats.MagicWood && enemyWizard)
	case t.Wizard != nil:
		return t.Wizard.ID != id
	}
	return true
}

func (a *Arena) allowWizardMovementWithAttack(t *Tile, id uint32) bool {
	switch {
	case t.Spawn != nil:
		return t.Spawn.IsBlob() && t.Spawn.ID() != id
	case t.Creation != nil:
		c := t.Creation
		if c.ID != id {
			return c.Stats.Attackable || c.Stats.MagicWood
		}
		return c.Stats.Mount || c.Stats.Shelter || c.Stats.MagicWood
	case t.Wizard != nil:
		return t.Wizard.ID != id
	}
	return true
}

func (a *Arena) allowAttack(t *Tile, id uint32) bool {
	if t.Creation != nil {
		c := t.Creation
		enemyWizard := t.Wizard != nil && t.Wizard.ID != id
		return (c.ID != id && c.Stats.Attackable) || (c.Stats.MagicWood && enemyWizard)
	}
	return t.Wizard != nil && t.Wizard.ID != id
}

// WizardMovementTiles lists adjacent tiles a walking wizard may enter or attack.
func (a *Arena) WizardMovementTiles(from Pos, id uint32) []Pos {
	return a.inSpellRange(from, adjacentRange, func(_ Pos, t *Tile) bool {
		return a.allowWizardMovementWithAttack(t, id)
	})
}

func (a *Arena) WizardFlyingTiles(from Pos, movement int, id uint32) []Pos {
	return a.inFlyingRange(from, movement, func(_ Pos, t *Tile) bool {
		return a.allowWizardMovementWithAttack(t, id)
	})
}

func (a *Arena) CreationMovementTiles(from Pos, id uint32) []Pos {
	return a.inSpellRange(from, adjacentRange, func(_ Pos, t *Tile) bool {
		return a.allowMovementWithAttack(t, id)
	})
}

func (a *Arena) CreationFlyingTiles(from Pos, movement int, id uint32) []Pos {
	return a.inFlyingRange(from, movement, func(_ Pos, t *Tile) bool {
		return a.allowMovementWithAttack(t, id)
	})
}

// CombatTiles lists adjacent tiles an engaged piece may attack. Blobs are not
// melee targets.
func (a *Arena) CombatTiles(from Pos, id uint32) []Pos {
	return a.inSpellRange(from, adjacentRange, func(_ Pos, t *Tile) bool {
		return a.allowAttack(t, id)
	})
}

// NeighbouringFoes lists adjacent enemies that can hold a piece in combat.
func (a *Arena) NeighbouringFoes(from Pos, id uint32) []Pos {
	return a.inSpellRange(from, adjacentRange, func(_ Pos, t *Tile) bool {
		return t.Spawn == nil && a.allowAttack(t, id)
	})
}

func (a *Arena) HasNeighbouringFoes(from Pos, id uint32) bool {
	return len(a.NeighbouringFoes(from, id)) > 0
}

// ResetMoves refills the movement of every piece owned by id. Pieces under a
// spawn are stuck.
func (a *Arena) ResetMoves(id uint32) {
	a.each(func(_ Pos, t *Tile) {
		stuck := t.Spawn != nil
		if w := t.Wizard; w != nil && w.ID == id {
			w.MovesLeft = w.Stats.Movement()
			if stuck {
				w.MovesLeft = 0
			}
		}
		if c := t.Creation; c != nil && c.ID == id {
			switch {
			case stuck:
				c.MovesLeft = 0
			case c.Stats.ShadowWood:
				c.MovesLeft = 1
			default:
				c.MovesLeft = c.Stats.Base.Movement
			}
		}
	})
}

// TilesWithMovesLeft lists the pieces id may still select. A wizard inside a
// non-shelter creation is reached through that creation.
func (a *Arena) TilesWithMovesLeft(id uint32) []Pos {
	return a.collect(func(_ Pos, t *Tile) bool {
		if c := t.Creation; c != nil && !c.Stats.Shelter {
			return c.ID == id && c.MovesLeft > 0
		}
		return t.Wizard != nil && t.Wizard.ID == id && t.Wizard.MovesLeft > 0
	})
}

func (a *Arena) SpawnTiles() []Pos {
	return a.collect(func(_ Pos, t *Tile) bool { return t.Spawn != nil })
}

// CombustibleShelters lists shelters that may vanish at the end of a round.
func (a *Arena) CombustibleShelters() []Pos {
	return a.collect(func(_ Pos, t *Tile) bool {
		return t.Creation != nil && t.Creation.Stats.Shelter && !t.Creation.Stats.MagicWood
	})
}

// WizardsInTrees lists magic wood tiles with a wizard inside.
func (a *Arena) WizardsInTrees() []Pos {
	return a.collect(func(_ Pos, t *Tile) bool {
		return t.Creation != nil && t.Creation.Stats.MagicWood && t.Wizard != nil
	})
}

func (a *Arena) IsNextToShadowWood(p Pos) bool {
	return len(a.inSpellRange(p, adjacentRange, func(_ Pos, t *Tile) bool {
		return t.Creation != nil && t.Creation.Stats.ShadowWood
	})) > 0
}
