package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfunc/chaos-server/models"
)

func TestSequence_WrapsAndReduces(t *testing.T) {
	seq := NewSequence(3, 12, 9)
	assert.Equal(t, 3, seq.Intn(10))
	assert.Equal(t, 2, seq.Intn(10))
	assert.Equal(t, 9, seq.Intn(10))
	assert.Equal(t, 3, seq.Intn(10))
	assert.Equal(t, 4, seq.Drawn())
}

func TestAttackSucceeds_TieGoesToAttacker(t *testing.T) {
	assert.True(t, AttackSucceeds(NewSequence(5, 5), 3, 3))
	assert.False(t, AttackSucceeds(NewSequence(0, 9), 9, 1))
	assert.True(t, AttackSucceeds(NewSequence(9, 0), 0, 9))
}

func TestMagicalAttackSucceeds(t *testing.T) {
	assert.True(t, MagicalAttackSucceeds(NewSequence(4, 0), 2, 6))
	assert.False(t, MagicalAttackSucceeds(NewSequence(3, 0), 2, 6))
}

func TestIsEngaged(t *testing.T) {
	// foe 5+2 <= mover 3+4
	assert.True(t, IsEngaged(NewSequence(2, 4), 5, 3))
	assert.False(t, IsEngaged(NewSequence(3, 4), 5, 3))
}

func TestShouldDisappear(t *testing.T) {
	assert.False(t, ShouldDisappear(NewSequence(8)))
	assert.True(t, ShouldDisappear(NewSequence(9)))
	assert.False(t, GrantsSpell(NewSequence(0)))
	assert.True(t, GrantsSpell(NewSequence(19)))
}

func TestNewWizardStats(t *testing.T) {
	p := models.Player{Name: "MERLIN", Character: models.Merlin, Color: models.WizardBrightCyan}

	stats := NewWizardStats(NewSequence(9, 9, 9, 9, 9, 9), p)
	assert.Equal(t, "MERLIN", stats.Base.Name)
	assert.Equal(t, 5, stats.Base.Combat)
	assert.Equal(t, 5, stats.Base.Defence)
	assert.Equal(t, 7, stats.Base.Manoeuvre)
	assert.Equal(t, 8, stats.Base.MagicalResistance)
	assert.Equal(t, 13, stats.NumberOfSpells)
	assert.Equal(t, 2, stats.SpellAbility)
	assert.Equal(t, 1, stats.Base.Movement)
	require.Equal(t, models.BrightCyan, stats.Gfx.Frames[0].FG)

	weak := NewWizardStats(NewSequence(0, 0, 0, 0, 0, 4), p)
	assert.Equal(t, 1, weak.Base.Combat)
	assert.Equal(t, 11, weak.NumberOfSpells)
	assert.Equal(t, 0, weak.SpellAbility)
}
