package spells

import (
	"github.com/wfunc/chaos-server/models"
	"github.com/wfunc/chaos-server/rules"
)

// AnywhereRange lets a spell reach every tile of the arena.
const AnywhereRange = 255

type trait uint16

const (
	mount trait = 1 << iota
	flying
	undead
	transparent
	dragon
)

type creature struct {
	name                      string
	combat, rangedCombat, rng int
	defence, movement         int
	manoeuvre, resistance     int
	chance                    int
	alignment                 int8
	glyph                     models.Glyph
	fg                        models.Color
	traits                    trait
}

var creatures = []creature{
	{"KING COBRA", 4, 0, 0, 1, 1, 6, 1, 8, 1, models.GlyphSerpent, models.BrightGreen, 0},
	{"DIRE WOLF", 3, 0, 0, 2, 3, 7, 2, 8, -1, models.GlyphBeast, models.White, 0},
	{"GOBLIN", 2, 0, 0, 4, 1, 4, 4, 8, -1, models.GlyphHumanoid, models.BrightGreen, 0},
	{"CROCODILE", 5, 0, 0, 6, 1, 2, 2, 8, 0, models.GlyphSerpent, models.Green, 0},
	{"FAUN", 3, 0, 0, 2, 1, 7, 8, 7, -1, models.GlyphHumanoid, models.Yellow, 0},
	{"LION", 6, 0, 0, 4, 4, 8, 3, 5, 1, models.GlyphBeast, models.BrightYellow, 0},
	{"ELF", 1, 2, 6, 2, 1, 5, 7, 6, 2, models.GlyphHumanoid, models.BrightGreen, 0},
	{"ORC", 2, 0, 0, 1, 1, 4, 4, 8, -1, models.GlyphHumanoid, models.Green, 0},
	{"BEAR", 6, 0, 0, 7, 2, 6, 2, 7, 1, models.GlyphBeast, models.Yellow, 0},
	{"GORILLA", 6, 0, 0, 5, 1, 4, 2, 6, 0, models.GlyphGiant, models.BrightBlack, 0},
	{"OGRE", 4, 0, 0, 7, 1, 3, 6, 6, -1, models.GlyphGiant, models.Magenta, 0},
	{"HYDRA", 7, 0, 0, 8, 1, 4, 6, 5, -1, models.GlyphSerpent, models.Green, 0},
	{"GIANT RAT", 1, 0, 0, 1, 3, 8, 2, 9, 0, models.GlyphBeast, models.BrightBlack, 0},
	{"GIANT", 9, 0, 0, 7, 2, 6, 5, 4, 1, models.GlyphGiant, models.BrightCyan, 0},
	{"HORSE", 1, 0, 0, 3, 4, 8, 1, 8, 1, models.GlyphHorse, models.Yellow, mount},
	{"UNICORN", 5, 0, 0, 4, 4, 9, 7, 6, 2, models.GlyphHorse, models.BrightWhite, mount},
	{"CENTAUR", 1, 2, 4, 3, 4, 5, 5, 6, 1, models.GlyphHorse, models.BrightYellow, mount},
	{"PEGASUS", 2, 0, 0, 4, 5, 6, 7, 6, 2, models.GlyphHorse, models.BrightWhite, mount | flying},
	{"GRYPHON", 3, 0, 0, 5, 5, 6, 5, 6, 1, models.GlyphBird, models.BrightYellow, mount | flying},
	{"MANTICORE", 3, 1, 3, 6, 5, 6, 8, 5, -1, models.GlyphBeast, models.BrightRed, mount | flying},
	{"BAT", 1, 0, 0, 1, 5, 9, 4, 8, -1, models.GlyphFlyer, models.BrightBlack, flying},
	{"GREEN DRAGON", 5, 4, 6, 8, 3, 4, 4, 1, -1, models.GlyphDragon, models.BrightGreen, flying | dragon},
	{"RED DRAGON", 7, 3, 5, 9, 3, 4, 5, 0, -2, models.GlyphDragon, models.BrightRed, flying | dragon},
	{"GOLDEN DRAGON", 9, 5, 4, 9, 3, 5, 5, 0, 2, models.GlyphDragon, models.BrightYellow, flying | dragon},
	{"HARPY", 4, 0, 0, 2, 5, 8, 5, 6, -1, models.GlyphBird, models.BrightMagenta, flying},
	{"EAGLE", 3, 0, 0, 3, 6, 8, 2, 6, 1, models.GlyphBird, models.Yellow, flying},
	{"VAMPIRE", 6, 0, 0, 8, 4, 6, 5, 2, -2, models.GlyphFlyer, models.BrightRed, undead | flying},
	{"GHOST", 1, 0, 0, 3, 2, 9, 6, 4, -1, models.GlyphGhost, models.BrightWhite, undead | flying | transparent},
	{"SPECTRE", 4, 0, 0, 2, 1, 6, 4, 5, -1, models.GlyphGhost, models.BrightCyan, undead},
	{"WRAITH", 5, 0, 0, 5, 2, 4, 5, 4, -1, models.GlyphUndead, models.BrightBlack, undead},
	{"SKELETON", 3, 0, 0, 2, 1, 3, 4, 6, -1, models.GlyphUndead, models.BrightWhite, undead},
	{"ZOMBIE", 1, 0, 0, 1, 1, 2, 3, 7, -1, models.GlyphUndead, models.Green, undead},
}

func (c creature) stats() models.CreationStats {
	stats := models.CreationStats{
		Base: models.BaseStats{
			Name:              c.name,
			Combat:            c.combat,
			RangedCombat:      c.rangedCombat,
			Range:             c.rng,
			Defence:           c.defence,
			Movement:          c.movement,
			Manoeuvre:         c.manoeuvre,
			MagicalResistance: c.resistance,
		},
		CastingChance: c.chance,
		Alignment:     c.alignment,
		Mount:         c.traits&mount != 0,
		Flying:        c.traits&flying != 0,
		Undead:        c.traits&undead != 0,
		Transparent:   c.traits&transparent != 0,
		Dragon:        c.traits&dragon != 0,
		Subvertable:   true,
		Attackable:    true,
	}
	var corpse *models.Frame
	if !stats.Undead {
		f := models.NewFrame(models.GlyphCorpse, c.fg, nil)
		corpse = &f
	}
	stats.Gfx = models.StillGfx(models.NewFrame(c.glyph, c.fg, nil), corpse)
	return stats
}

func terrain(name string, combat, defence, manoeuvre, resistance int, glyph models.Glyph, fg models.Color, bg *models.Color) models.CreationStats {
	return models.CreationStats{
		Base: models.BaseStats{
			Name:              name,
			Combat:            combat,
			Defence:           defence,
			Manoeuvre:         manoeuvre,
			MagicalResistance: resistance,
		},
		Gfx: models.StillGfx(models.NewFrame(glyph, fg, bg), nil),
	}
}

func withFlags(s models.CreationStats, apply func(*models.CreationStats)) *models.CreationStats {
	apply(&s)
	return &s
}

var disbelieve = Spell{
	Name:   "DISBELIEVE",
	Chance: MaxChance,
	Range:  AnywhereRange,
	Kind:   Disbelieve,
}

var catalog = buildCatalog()

func buildCatalog() []Spell {
	list := make([]Spell, 0, len(creatures)+32)
	for _, c := range creatures {
		stats := c.stats()
		list = append(list, Spell{
			Name:      c.name,
			Chance:    c.chance,
			Range:     2,
			Alignment: c.alignment,
			Kind:      Creation,
			Creation:  &stats,
		})
	}

	fire := terrain("MAGIC FIRE", 5, 0, 0, 0, models.GlyphFire, models.BrightRed, nil)
	blob := terrain("GOOEY BLOB", 0, 1, 1, 0, models.GlyphBlob, models.BrightGreen, nil)
	wood := withFlags(terrain("MAGIC WOOD", 0, 5, 0, 0, models.GlyphTree, models.BrightGreen, nil), func(s *models.CreationStats) {
		s.Shelter = true
		s.MagicWood = true
	})
	shadow := withFlags(terrain("SHADOW WOOD", 2, 4, 1, 3, models.GlyphTree, models.BrightBlack, models.ColorPtr(models.Green)), func(s *models.CreationStats) {
		s.Attackable = true
		s.ShadowWood = true
	})
	castle := withFlags(terrain("MAGIC CASTLE", 0, 9, 0, 9, models.GlyphCastle, models.BrightYellow, nil), func(s *models.CreationStats) {
		s.Shelter = true
	})
	citadel := withFlags(terrain("DARK CITADEL", 0, 9, 0, 9, models.GlyphCastle, models.BrightMagenta, nil), func(s *models.CreationStats) {
		s.Shelter = true
	})
	wall := terrain("WALL", 0, 9, 0, 9, models.GlyphWall, models.White, models.ColorPtr(models.Red))

	list = append(list,
		Spell{Name: "MAGIC FIRE", Chance: 7, Range: 12, Alignment: -1, Kind: MagicFire, Creation: &fire},
		Spell{Name: "GOOEY BLOB", Chance: 7, Range: 12, Alignment: -1, Kind: GooeyBlob, Creation: &blob},
		Spell{Name: "MAGIC WOOD", Chance: 7, Range: 16, Alignment: 1, Kind: MagicWood, Creation: wood},
		Spell{Name: "SHADOW WOOD", Chance: 4, Range: 16, Alignment: -1, Kind: ShadowWood, Creation: shadow},
		Spell{Name: "MAGIC CASTLE", Chance: 4, Range: 8, Alignment: 1, Kind: Shelter, Creation: castle},
		Spell{Name: "DARK CITADEL", Chance: 4, Range: 8, Alignment: -1, Kind: Shelter, Creation: citadel},
		Spell{Name: "WALL", Chance: 7, Range: 12, Kind: Wall, Creation: &wall},
		Spell{Name: "MAGIC BOLT", Chance: 9, Range: 12, Kind: MagicBolt},
		Spell{Name: "LIGHTNING", Chance: 9, Range: 8, Kind: Lightning},
		Spell{Name: "VENGEANCE", Chance: 7, Range: AnywhereRange, Alignment: -1, Kind: MagicalAttack, Attempts: 1},
		Spell{Name: "DECREE", Chance: 7, Range: AnywhereRange, Alignment: 1, Kind: MagicalAttack, Attempts: 1},
		Spell{Name: "DARK POWER", Chance: 4, Range: AnywhereRange, Alignment: -2, Kind: MagicalAttack, Attempts: 3},
		Spell{Name: "JUSTICE", Chance: 4, Range: AnywhereRange, Alignment: 2, Kind: MagicalAttack, Attempts: 3},
		Spell{Name: "MAGIC KNIFE", Chance: 7, Alignment: 1, Kind: WizardAttackBuff, AttackBuff: models.MagicKnife},
		Spell{Name: "MAGIC SWORD", Chance: 4, Alignment: 1, Kind: WizardAttackBuff, AttackBuff: models.MagicSword},
		Spell{Name: "MAGIC SHIELD", Chance: 7, Alignment: 1, Kind: WizardDefenceBuff, DefenceBuff: models.MagicShield},
		Spell{Name: "MAGIC ARMOUR", Chance: 4, Alignment: 1, Kind: WizardDefenceBuff, DefenceBuff: models.MagicArmour},
		Spell{Name: "MAGIC BOW", Chance: 5, Alignment: 1, Kind: MagicBow},
		Spell{Name: "MAGIC WINGS", Chance: 5, Kind: MagicWings},
		Spell{Name: "SHADOW FORM", Chance: 6, Kind: ShadowForm},
		Spell{Name: "LAW-1", Chance: 7, Alignment: 2, Kind: WorldAlignment},
		Spell{Name: "LAW-2", Chance: 5, Alignment: 4, Kind: WorldAlignment},
		Spell{Name: "CHAOS-1", Chance: 7, Alignment: -2, Kind: WorldAlignment},
		Spell{Name: "CHAOS-2", Chance: 5, Alignment: -4, Kind: WorldAlignment},
		Spell{Name: "SUBVERSION", Chance: 9, Range: 14, Kind: Subversion},
		Spell{Name: "RAISE DEAD", Chance: 5, Range: 8, Alignment: -1, Kind: RaiseDead},
	)
	return list
}

// NewDisbelieve returns the spell every hand starts with.
func NewDisbelieve() Spell {
	return disbelieve
}

// Catalog returns a copy of every castable spell, disbelieve excluded.
func Catalog() []Spell {
	out := make([]Spell, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog spell by name.
func Lookup(name string) (Spell, bool) {
	if name == disbelieve.Name {
		return disbelieve, true
	}
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Spell{}, false
}

// Random draws one catalog spell.
func Random(r rules.Roller) Spell {
	return catalog[r.Intn(len(catalog))]
}

// NewHand deals disbelieve followed by n-1 random spells.
func NewHand(r rules.Roller, n int) []Spell {
	n = max(1, min(n, models.MaxSpells))
	hand := make([]Spell, 0, n)
	hand = append(hand, disbelieve)
	for i := 1; i < n; i++ {
		hand = append(hand, Random(r))
	}
	return hand
}
