package rules

// AttackSucceeds resolves a physical attack. Ties go to the attacker.
func AttackSucceeds(r Roller, combat, defence int) bool {
	return combat+D10(r) >= defence+D10(r)
}

// MagicalAttackSucceeds resolves a spell against magical resistance. Ties go
// to the caster.
func MagicalAttackSucceeds(r Roller, ability, resistance int) bool {
	return ability+D10(r) >= resistance+D10(r)
}

// IsEngaged decides whether a foe with foeManoeuvre pins a piece with
// manoeuvre in melee.
func IsEngaged(r Roller, foeManoeuvre, manoeuvre int) bool {
	return foeManoeuvre+D10(r) <= manoeuvre+D10(r)
}

// ShouldDisappear is the one in ten roll a combustible shelter makes at the
// end of each round.
func ShouldDisappear(r Roller) bool {
	return D10(r) >= 9
}

// GrantsSpell is the one in ten roll a wizard hiding in a magic wood makes for
// a new spell.
func GrantsSpell(r Roller) bool {
	return D10(r) >= 9
}
