// Package spells defines the spell catalog and the casting rules.
package spells

import (
	"fmt"

	"github.com/wfunc/chaos-server/models"
	"github.com/wfunc/chaos-server/rules"
)

// MaxChance is the ceiling of every cast chance.
const MaxChance = 9

// Kind is the effect a spell has when it resolves.
type Kind uint8

const (
	Disbelieve Kind = iota
	Creation
	MagicFire
	GooeyBlob
	MagicWood
	ShadowWood
	Shelter
	Wall
	MagicBolt
	Lightning
	MagicalAttack
	WizardAttackBuff
	WizardDefenceBuff
	MagicBow
	MagicWings
	WorldAlignment
	ShadowForm
	Subversion
	RaiseDead
)

var kindNames = map[Kind]string{
	Disbelieve:        "disbelieve",
	Creation:          "creation",
	MagicFire:         "magic_fire",
	GooeyBlob:         "gooey_blob",
	MagicWood:         "magic_wood",
	ShadowWood:        "shadow_wood",
	Shelter:           "shelter",
	Wall:              "wall",
	MagicBolt:         "magic_bolt",
	Lightning:         "lightning",
	MagicalAttack:     "magical_attack",
	WizardAttackBuff:  "attack_buff",
	WizardDefenceBuff: "defence_buff",
	MagicBow:          "magic_bow",
	MagicWings:        "magic_wings",
	WorldAlignment:    "world_alignment",
	ShadowForm:        "shadow_form",
	Subversion:        "subversion",
	RaiseDead:         "raise_dead",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Spell is one entry of a wizard's hand.
//
// Range is expressed in squared tile distance. Creation carries the stats of
// whatever the spell summons for Creation, MagicFire, GooeyBlob, MagicWood,
// ShadowWood, Shelter and Wall. Attempts is the number of strikes a
// MagicalAttack makes.
type Spell struct {
	Name        string                `json:"name" msgpack:"name"`
	Chance      int                   `json:"chance" msgpack:"chance"`
	Range       int                   `json:"range" msgpack:"range"`
	Alignment   int8                  `json:"alignment" msgpack:"alignment"`
	Kind        Kind                  `json:"kind" msgpack:"kind"`
	Creation    *models.CreationStats `json:"creation,omitempty" msgpack:"creation,omitempty"`
	Attempts    int                   `json:"attempts,omitempty" msgpack:"attempts,omitempty"`
	AttackBuff  models.AttackBuff     `json:"attack_buff,omitempty" msgpack:"attack_buff,omitempty"`
	DefenceBuff models.DefenceBuff    `json:"defence_buff,omitempty" msgpack:"defence_buff,omitempty"`
}

// IsCreation reports whether the spell may be cast as an illusion.
func (s Spell) IsCreation() bool {
	return s.Kind == Creation
}

// CastChance adds a quarter of the world alignment when it leans the same way
// as the spell, then the caster's ability, capped at MaxChance.
func (s Spell) CastChance(worldAlignment int8, spellAbility int) int {
	chance := s.Chance
	if (s.Alignment > 0 && worldAlignment > 0) || (s.Alignment < 0 && worldAlignment < 0) {
		chance += abs8(worldAlignment) / 4
	}
	return min(chance+spellAbility, MaxChance)
}

// Cast rolls a d10 against the cast chance.
func (s Spell) Cast(r rules.Roller, worldAlignment int8, spellAbility int) bool {
	return rules.D10(r) <= s.CastChance(worldAlignment, spellAbility)
}

// DisplayRange is the range a client shows, 20 meaning anywhere.
func (s Spell) DisplayRange() int {
	if r := s.Range / 2; r <= 10 {
		return r
	}
	return 20
}

func abs8(v int8) int {
	if v < 0 {
		return -int(v)
	}
	return int(v)
}
