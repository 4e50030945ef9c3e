// Package arena models the battlefield: a fixed grid of tiles, the pieces on
// them and every spatial query the turn engine asks.
package arena

import (
	"fmt"
)

const (
	Width  = 15
	Height = 10
)

// Pos is a tile coordinate, 0-based.
type Pos struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func (p Pos) InBounds() bool {
	return p.X >= 0 && p.X < Width && p.Y >= 0 && p.Y < Height
}

// DistanceSq is the squared euclidean distance between two tiles.
func (p Pos) DistanceSq(o Pos) int {
	dx, dy := p.X-o.X, p.Y-o.Y
	return dx*dx + dy*dy
}

// Tile holds at most one of each kind of occupant. The visible piece is the
// first present of spawn, creation, wizard, corpse.
type Tile struct {
	Spawn    *Spawn
	Creation *Creation
	Wizard   *Wizard
	Corpse   *Creation
}

func (t *Tile) IsEmpty() bool {
	return t.Spawn == nil && t.Creation == nil && t.Wizard == nil
}

// Arena is the grid plus the world alignment.
type Arena struct {
	alignment int8
	tiles     []Tile
}

func New() *Arena {
	return &Arena{tiles: make([]Tile, Width*Height)}
}

func (a *Arena) Alignment() int8 {
	return a.alignment
}

// AdjustAlignment shifts the world alignment, saturating at the int8 bounds.
func (a *Arena) AdjustAlignment(delta int8) {
	v := int(a.alignment) + int(delta)
	switch {
	case v > 127:
		v = 127
	case v < -128:
		v = -128
	}
	a.alignment = int8(v)
}

// Get returns the tile at p. Out of range coordinates panic.
func (a *Arena) Get(p Pos) *Tile {
	if !p.InBounds() {
		panic(fmt.Sprintf("arena: tile %s out of range", p))
	}
	return &a.tiles[p.Y*Width+p.X]
}

// Clone copies the grid. Pieces are shared, so the clone may drop occupants
// but must not mutate them.
func (a *Arena) Clone() *Arena {
	tiles := make([]Tile, len(a.tiles))
	copy(tiles, a.tiles)
	return &Arena{alignment: a.alignment, tiles: tiles}
}

func (a *Arena) each(fn func(p Pos, t *Tile)) {
	for i := range a.tiles {
		fn(Pos{X: i % Width, Y: i / Width}, &a.tiles[i])
	}
}

func (a *Arena) collect(keep func(p Pos, t *Tile) bool) []Pos {
	var out []Pos
	a.each(func(p Pos, t *Tile) {
		if keep(p, t) {
			out = append(out, p)
		}
	})
	return out
}

// CreationAt returns the creation at p and panics when there is none.
func (a *Arena) CreationAt(p Pos) *Creation {
	c := a.Get(p).Creation
	if c == nil {
		panic(fmt.Sprintf("arena: no creation at %s", p))
	}
	return c
}

// WizardAt returns the wizard at p and panics when there is none.
func (a *Arena) WizardAt(p Pos) *Wizard {
	w := a.Get(p).Wizard
	if w == nil {
		panic(fmt.Sprintf("arena: no wizard at %s", p))
	}
	return w
}

// CorpseAt returns the corpse at p and panics when there is none.
func (a *Arena) CorpseAt(p Pos) *Creation {
	c := a.Get(p).Corpse
	if c == nil {
		panic(fmt.Sprintf("arena: no corpse at %s", p))
	}
	return c
}

// SpawnAt returns the spawn at p and panics when there is none.
func (a *Arena) SpawnAt(p Pos) *Spawn {
	s := a.Get(p).Spawn
	if s == nil {
		panic(fmt.Sprintf("arena: no spawn at %s", p))
	}
	return s
}

// FindWizard locates the wizard with id.
func (a *Arena) FindWizard(id uint32) (Pos, *Wizard, bool) {
	for i := range a.tiles {
		if w := a.tiles[i].Wizard; w != nil && w.ID == id {
			return Pos{X: i % Width, Y: i / Width}, w, true
		}
	}
	return Pos{}, nil, false
}

// WizardPos is FindWizard for callers that know the wizard is on the board.
func (a *Arena) WizardPos(id uint32) Pos {
	p, _, ok := a.FindWizard(id)
	if !ok {
		panic(fmt.Sprintf("arena: wizard %d not on the board", id))
	}
	return p
}

func (a *Arena) NumberOfWizards() int {
	n := 0
	for i := range a.tiles {
		if a.tiles[i].Wizard != nil {
			n++
		}
	}
	return n
}

// InSpellRange: squared distance within rng, excluding the origin.
func InSpellRange(from, to Pos, rng int) bool {
	d := from.DistanceSq(to)
	return d <= rng && d > 0
}

// InCombatRange: squared distance within rng squared, excluding the origin.
func InCombatRange(from, to Pos, rng int) bool {
	d := from.DistanceSq(to)
	return d <= rng*rng && d > 0
}

// InFlyingRange allows landing anywhere within the movement radius but not
// staying put.
func InFlyingRange(from, to Pos, movement int) bool {
	d := from.DistanceSq(to) - 1
	return d <= movement*movement && d >= 0
}
