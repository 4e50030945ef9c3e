// models/stats.go
package models

// MaxStat caps buffed combat and defence.
const MaxStat = 9

// MaxSpells 手中法术数量上限
const MaxSpells = 20

// BaseStats 生物与巫师共有的基础属性
type BaseStats struct {
	Name              string `json:"name" msgpack:"name"`
	Combat            int    `json:"combat" msgpack:"combat"`
	RangedCombat      int    `json:"ranged_combat" msgpack:"ranged_combat"`
	Range             int    `json:"range" msgpack:"range"`
	Defence           int    `json:"defence" msgpack:"defence"`
	Movement          int    `json:"movement" msgpack:"movement"`
	Manoeuvre         int    `json:"manoeuvre" msgpack:"manoeuvre"`
	MagicalResistance int    `json:"magical_resistance" msgpack:"magical_resistance"`
}

// CreationStats 召唤物属性
type CreationStats struct {
	Base          BaseStats `json:"base" msgpack:"base"`
	CastingChance int       `json:"casting_chance" msgpack:"casting_chance"`
	Alignment     int8      `json:"alignment" msgpack:"alignment"`
	Mount         bool      `json:"mount" msgpack:"mount"`
	Flying        bool      `json:"flying" msgpack:"flying"`
	Undead        bool      `json:"undead" msgpack:"undead"`
	Transparent   bool      `json:"transparent" msgpack:"transparent"`
	Subvertable   bool      `json:"subvertable" msgpack:"subvertable"`
	Attackable    bool      `json:"attackable" msgpack:"attackable"`
	Dragon        bool      `json:"dragon" msgpack:"dragon"`
	Shelter       bool      `json:"shelter" msgpack:"shelter"`
	MagicWood     bool      `json:"magic_wood" msgpack:"magic_wood"`
	ShadowWood    bool      `json:"shadow_wood" msgpack:"shadow_wood"`
	Gfx           Gfx       `json:"gfx" msgpack:"gfx"`
}

type AttackBuff uint8

const (
	NoAttackBuff AttackBuff = iota
	MagicKnife
	MagicSword
)

type DefenceBuff uint8

const (
	NoDefenceBuff DefenceBuff = iota
	MagicShield
	MagicArmour
)

// WizardStats 巫师属性，包含法术能力与增益
type WizardStats struct {
	Base           BaseStats   `json:"base" msgpack:"base"`
	NumberOfSpells int         `json:"number_of_spells" msgpack:"number_of_spells"`
	SpellAbility   int         `json:"spell_ability" msgpack:"spell_ability"`
	AttackBuff     AttackBuff  `json:"attack_buff" msgpack:"attack_buff"`
	DefenceBuff    DefenceBuff `json:"defence_buff" msgpack:"defence_buff"`
	MagicWings     bool        `json:"magic_wings" msgpack:"magic_wings"`
	MagicBow       bool        `json:"magic_bow" msgpack:"magic_bow"`
	ShadowForm     bool        `json:"shadow_form" msgpack:"shadow_form"`
	Gfx            Gfx         `json:"gfx" msgpack:"gfx"`
}

// Combat 含武器增益的近战值
func (s WizardStats) Combat() int {
	combat := s.Base.Combat
	switch s.AttackBuff {
	case MagicKnife:
		combat += 2
	case MagicSword:
		combat += 4
	}
	return min(combat, MaxStat)
}

// Defence 含护具与暗影形态增益的防御值
func (s WizardStats) Defence() int {
	defence := s.Base.Defence
	switch s.DefenceBuff {
	case MagicShield:
		defence += 2
	case MagicArmour:
		defence += 4
	}
	if s.ShadowForm {
		defence += 3
	}
	return min(defence, MaxStat)
}

func (s WizardStats) RangedCombat() int {
	if s.MagicBow {
		return 3
	}
	return 0
}

func (s WizardStats) Range() int {
	if s.MagicBow {
		return 6
	}
	return 0
}

func (s WizardStats) Movement() int {
	if s.ShadowForm {
		return s.Base.Movement + 2
	}
	return s.Base.Movement
}

func (s *WizardStats) ApplyAttackBuff(b AttackBuff) {
	s.AttackBuff = b
	switch b {
	case MagicKnife:
		s.Gfx.SetGlyph(GlyphMagicKnife)
	case MagicSword:
		s.Gfx.SetGlyph(GlyphMagicSword)
	}
}

func (s *WizardStats) ApplyDefenceBuff(b DefenceBuff) {
	s.DefenceBuff = b
	switch b {
	case MagicShield:
		s.Gfx.SetGlyph(GlyphMagicShield)
	case MagicArmour:
		s.Gfx.SetGlyph(GlyphMagicArmour)
	}
}

func (s *WizardStats) ApplyMagicWings() {
	s.MagicWings = true
	s.Gfx.SetGlyph(GlyphMagicWings)
}

func (s *WizardStats) ApplyMagicBow() {
	s.MagicBow = true
	s.Gfx.SetGlyph(GlyphMagicBow)
}
