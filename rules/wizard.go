package rules

import "github.com/wfunc/chaos-server/models"

// NewWizardStats rolls a fresh level 0 wizard for a player profile.
func NewWizardStats(r Roller, p models.Player) models.WizardStats {
	combat := 1 + D10(r)/2
	defence := 1 + D10(r)/2
	manoeuvre := 3 + D10(r)/2
	resistance := 6 + D10(r)/4
	spells := min(11+D10(r)/4, models.MaxSpells)
	ability := 0
	if roll := D10(r); roll >= 5 {
		ability = roll / 4
	}
	return models.WizardStats{
		Base: models.BaseStats{
			Name:              p.Name,
			Combat:            combat,
			Defence:           defence,
			Movement:          1,
			Manoeuvre:         manoeuvre,
			MagicalResistance: resistance,
		},
		NumberOfSpells: spells,
		SpellAbility:   ability,
		Gfx:            models.StillGfx(p.Frame(), nil),
	}
}
