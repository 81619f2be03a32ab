package rules

import "fmt"

// CompileTactics generates the complete rule set for a tactical posture.
// All conditions are built via fmt.Sprintf with interpolated values, so
// the compiler never generates invalid expr.
//
// Unit rules share the non-exclusive "role" category: a unit with several
// combat parts runs every matching behavior, highest priority first, and the
// last one to write its intent wins. Tower rules are exclusive so each tower
// takes exactly one action.
func CompileTactics(t Tactics) []*Rule {
	t.Validate()
	var rules []*Rule

	// --- Role behaviors ---

	rules = append(rules, &Rule{
		Name:         "melee",
		Priority:     300,
		Scope:        ScopeUnit,
		Category:     "role",
		ConditionSrc: `HasRole("melee")`,
		Action:       ActionMelee,
	})

	rules = append(rules, &Rule{
		Name:         "ranged",
		Priority:     200,
		Scope:        ScopeUnit,
		Category:     "role",
		ConditionSrc: `HasRole("ranged")`,
		Action:       ActionRanged,
	})

	if t.RangedEvasion {
		rules = append(rules, &Rule{
			Name:         "ranged-evade",
			Priority:     190,
			Scope:        ScopeUnit,
			Category:     "role",
			ConditionSrc: fmt.Sprintf(`HasRole("ranged") && EnemiesWithin(%d) > 0`, t.RangedEvasionRadius),
			Action:       EvadeWithin(t.RangedEvasionRadius),
		})
	}

	rules = append(rules, &Rule{
		Name:         "healer",
		Priority:     100,
		Scope:        ScopeUnit,
		Category:     "role",
		ConditionSrc: `HasRole("healer")`,
		Action:       ActionHealer,
	})

	if t.HealerEvasion {
		rules = append(rules, &Rule{
			Name:         "healer-evade",
			Priority:     90,
			Scope:        ScopeUnit,
			Category:     "role",
			ConditionSrc: fmt.Sprintf(`HasRole("healer") && EnemiesWithin(%d) > 0`, t.HealerEvasionRadius),
			Action:       EvadeWithin(t.HealerEvasionRadius),
		})
	}

	// --- Tower point defense ---

	rules = append(rules, &Rule{
		Name:         "tower-finish-critical",
		Priority:     300,
		Scope:        ScopeTower,
		Category:     "tower",
		Exclusive:    true,
		ConditionSrc: `len(CriticalEnemies()) > 0`,
		Action:       ActionTowerFinishCritical,
	})

	rules = append(rules, &Rule{
		Name:         "tower-triage",
		Priority:     200,
		Scope:        ScopeTower,
		Category:     "tower",
		Exclusive:    true,
		ConditionSrc: `len(InjuredAllies()) > 0`,
		Action:       ActionTowerTriage,
	})

	rules = append(rules, &Rule{
		Name:         "tower-engage",
		Priority:     100,
		Scope:        ScopeTower,
		Category:     "tower",
		Exclusive:    true,
		ConditionSrc: `len(EnemiesInTowerRange()) > 0`,
		Action:       ActionTowerEngage,
	})

	return rules
}
