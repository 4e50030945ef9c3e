package spells

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfunc/chaos-server/rules"
)

func TestCastChance(t *testing.T) {
	law := Spell{Name: "LAW", Chance: 3, Alignment: 2}
	chaos := Spell{Name: "CHAOS", Chance: 3, Alignment: -2}
	neutral := Spell{Name: "NEUTRAL", Chance: 3}

	tests := []struct {
		name     string
		spell    Spell
		world    int8
		ability  int
		expected int
	}{
		{"no alignment", law, 0, 0, 3},
		{"lawful world boosts law", law, 8, 0, 5},
		{"chaotic world ignores law", law, -8, 0, 3},
		{"chaotic world boosts chaos", chaos, -12, 1, 7},
		{"neutral never boosted", neutral, 40, 0, 3},
		{"ability adds", neutral, 0, 2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.spell.CastChance(tt.world, tt.ability))
		})
	}
}

func TestCastChance_ClampsToNine(t *testing.T) {
	s := Spell{Chance: 9, Alignment: 1}
	assert.Equal(t, MaxChance, s.CastChance(40, 9))
	assert.Equal(t, MaxChance, s.CastChance(127, 9))
	assert.Equal(t, MaxChance, Spell{Chance: 9, Alignment: -1}.CastChance(-128, 9))
}

func TestCast(t *testing.T) {
	s := Spell{Chance: 4}
	assert.True(t, s.Cast(rules.NewSequence(4), 0, 0))
	assert.False(t, s.Cast(rules.NewSequence(5), 0, 0))
	assert.True(t, NewDisbelieve().Cast(rules.NewSequence(9), 0, 0))
}

func TestNewHand(t *testing.T) {
	hand := NewHand(rules.NewSequence(0, 1, 2, 3), 5)
	require.Len(t, hand, 5)
	assert.Equal(t, Disbelieve, hand[0].Kind)
	for _, s := range hand[1:] {
		assert.NotEqual(t, Disbelieve, s.Kind)
	}

	assert.Len(t, NewHand(rules.NewSequence(0), 30), 20)
}

func TestCatalog_CreationSpellsCarryStats(t *testing.T) {
	for _, s := range Catalog() {
		switch s.Kind {
		case Creation, MagicFire, GooeyBlob, MagicWood, ShadowWood, Shelter, Wall:
			require.NotNil(t, s.Creation, s.Name)
			assert.Equal(t, s.Name, s.Creation.Base.Name)
		case MagicalAttack:
			assert.Positive(t, s.Attempts, s.Name)
		}
		assert.LessOrEqual(t, s.Chance, MaxChance, s.Name)
	}
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("GOLDEN DRAGON")
	require.True(t, ok)
	assert.True(t, s.Creation.Dragon)
	assert.True(t, s.Creation.Flying)
	assert.Equal(t, 4, s.Creation.Base.Range)
	assert.Equal(t, 1, s.DisplayRange())

	_, ok = Lookup("TURMOIL")
	assert.False(t, ok)

	d, ok := Lookup("DISBELIEVE")
	require.True(t, ok)
	assert.Equal(t, 20, d.DisplayRange())
}

func TestCatalog_OnlyCreaturesCanBeSubverted(t *testing.T) {
	for _, s := range Catalog() {
		switch s.Kind {
		case Creation:
			assert.True(t, s.Creation.Subvertable, s.Name)
		case MagicFire, GooeyBlob, MagicWood, ShadowWood, Shelter, Wall:
			assert.False(t, s.Creation.Subvertable, s.Name)
		}
	}
}
