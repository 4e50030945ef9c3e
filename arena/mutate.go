package arena

// SpawnFire sets fire on p. Fire burns away any corpse.
func (a *Arena) SpawnFire(p Pos, fire *Creation) {
	t := a.Get(p)
	t.Corpse = nil
	t.Spawn = &Spawn{Kind: SpawnFire, Creation: fire}
}

// SpawnBlob covers p with a blob. Whatever was there stays underneath.
func (a *Arena) SpawnBlob(p Pos, blob *Creation) {
	a.Get(p).Spawn = &Spawn{Kind: SpawnBlob, Creation: blob}
}

func (a *Arena) RemoveSpawn(p Pos) {
	a.Get(p).Spawn = nil
}

func (a *Arena) PlaceCreation(p Pos, c *Creation) {
	a.Get(p).Creation = c
}

func (a *Arena) PlaceWizard(p Pos, w *Wizard) {
	a.Get(p).Wizard = w
}

// MoveWizard moves the wizard with id to dst.
func (a *Arena) MoveWizard(id uint32, dst Pos) {
	src := a.WizardPos(id)
	w := a.Get(src).Wizard
	a.Get(src).Wizard = nil
	a.Get(dst).Wizard = w
}

// MoveCreation moves the creation at src to dst, carrying its rider.
func (a *Arena) MoveCreation(src, dst Pos) {
	from, to := a.Get(src), a.Get(dst)
	if from.Wizard != nil {
		to.Wizard, from.Wizard = from.Wizard, nil
	}
	to.Creation, from.Creation = from.Creation, nil
}

// KillCreation removes the creation at p, leaving its body when corpse is set.
func (a *Arena) KillCreation(p Pos, corpse bool) {
	t := a.Get(p)
	c := t.Creation
	t.Creation = nil
	if corpse {
		t.Corpse = c
	}
}

// KillWizardAndCreations clears every trace of id from the board.
func (a *Arena) KillWizardAndCreations(id uint32) {
	a.each(func(_ Pos, t *Tile) {
		if t.Wizard != nil && t.Wizard.ID == id {
			t.Wizard = nil
		}
	})
	a.DestroyAllWizardCreations(id)
}

// DestroyAllWizardCreations removes everything id owns except the wizard.
func (a *Arena) DestroyAllWizardCreations(id uint32) {
	a.each(func(_ Pos, t *Tile) {
		if t.Spawn != nil && t.Spawn.ID() == id {
			t.Spawn = nil
		}
		if t.Creation != nil && t.Creation.ID == id {
			t.Creation = nil
		}
		if t.Corpse != nil && t.Corpse.ID == id {
			t.Corpse = nil
		}
	})
}

// Subvert hands the creation at p to id.
func (a *Arena) Subvert(p Pos, id uint32) {
	a.CreationAt(p).ID = id
}

// RaiseDead turns the corpse at p into an undead creation owned by id.
func (a *Arena) RaiseDead(p Pos, id uint32) {
	t := a.Get(p)
	c := a.CorpseAt(p)
	t.Corpse = nil
	c.ID = id
	c.MovesLeft = 0
	c.Stats.Undead = true
	t.Creation = c
}
