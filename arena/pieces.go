package arena

import "github.com/wfunc/chaos-server/models"

// Creation is any non-wizard unit standing on a tile, including the body a
// corpse keeps.
type Creation struct {
	ID        uint32               `json:"id" msgpack:"id"`
	MovesLeft int                  `json:"moves_left" msgpack:"moves_left"`
	Stats     models.CreationStats `json:"stats" msgpack:"stats"`
	Illusion  bool                 `json:"illusion" msgpack:"illusion"`
	Frame     int                  `json:"frame" msgpack:"frame"`
}

func NewCreation(id uint32, stats models.CreationStats) *Creation {
	return &Creation{ID: id, Stats: stats}
}

// HasCorpse reports whether the creation leaves a body when killed.
func (c *Creation) HasCorpse() bool {
	return !(c.Illusion || c.Stats.Undead || c.Stats.MagicWood || c.Stats.ShadowWood)
}

func (c *Creation) CurrentFrame() models.Frame {
	return c.Stats.Gfx.Frames[c.Frame%len(c.Stats.Gfx.Frames)]
}

func (c *Creation) corpseFrame() (models.Frame, bool) {
	if c.Stats.Gfx.Corpse == nil {
		return models.Frame{}, false
	}
	return *c.Stats.Gfx.Corpse, true
}

// ProjectileColor is the colour of ranged attacks fired by the creation.
func (c *Creation) ProjectileColor() models.Color {
	return c.Stats.Gfx.Frames[0].FG
}

func (c *Creation) Clone() *Creation {
	clone := *c
	return &clone
}

type SpawnKind uint8

const (
	SpawnFire SpawnKind = iota
	SpawnBlob
)

func (k SpawnKind) String() string {
	if k == SpawnBlob {
		return "blob"
	}
	return "fire"
}

// Spawn is a spreading hazard. It sits above whatever else occupies the tile.
type Spawn struct {
	Kind     SpawnKind `json:"kind" msgpack:"kind"`
	Creation *Creation `json:"creation" msgpack:"creation"`
}

func (s *Spawn) ID() uint32 {
	return s.Creation.ID
}

func (s *Spawn) IsBlob() bool {
	return s.Kind == SpawnBlob
}

// Wizard is the board piece of a player.
type Wizard struct {
	ID        uint32             `json:"id" msgpack:"id"`
	Name      string             `json:"name" msgpack:"name"`
	MovesLeft int                `json:"moves_left" msgpack:"moves_left"`
	Stats     models.WizardStats `json:"stats" msgpack:"stats"`
}

func NewWizard(id uint32, stats models.WizardStats) *Wizard {
	return &Wizard{ID: id, Name: stats.Base.Name, Stats: stats}
}

func (w *Wizard) CurrentFrame() models.Frame {
	return w.Stats.Gfx.Frames[0]
}

func (w *Wizard) Clone() *Wizard {
	clone := *w
	return &clone
}
