package rules

import (
	"slices"

	"go.uber.org/zap"

	"github.com/nstehr/vimy/arena-core/model"
	"github.com/nstehr/vimy/arena-core/pathing"
)

// PathFinder is the flee search the evasion maneuver delegates to.
type PathFinder interface {
	Flee(origin model.Position, goals []pathing.Goal) []model.Position
}

// RuleEnv wraps one actor's view of the tick and exposes helper methods
// callable from expr expressions. Exactly one of Self or Tower is set,
// depending on the rule scope.
type RuleEnv struct {
	Snapshot *Snapshot
	State    *MatchState
	Tactics  Tactics
	Finder   PathFinder
	Logger   *zap.Logger

	Self  model.Unit
	Roles []Role
	Team  Team

	Tower model.Tower
}

func (e RuleEnv) Tick() int { return e.Snapshot.Tick }

func (e RuleEnv) HasRole(r string) bool {
	return slices.Contains(e.Roles, Role(r))
}

func (e RuleEnv) TeamName() string { return string(e.Team) }

// EnemiesWithin counts enemy units strictly closer than r to the actor.
func (e RuleEnv) EnemiesWithin(r int) int {
	return countWithin(e.Snapshot.EnemyUnits, e.Self.Pos(), r)
}

func (e RuleEnv) EnemiesVisible() bool { return len(e.Snapshot.EnemyUnits) > 0 }

func (e RuleEnv) HasEnemyFlag() bool { return e.Snapshot.EnemyFlag != nil }

// PickupsWithin counts pickups strictly closer than r to the actor.
func (e RuleEnv) PickupsWithin(r int) int {
	return countWithin(e.Snapshot.Pickups, e.Self.Pos(), r)
}

// IsScout reports whether the actor is its team's current scout.
func (e RuleEnv) IsScout() bool {
	id, ok := e.State.Scouts.Scout(e.Team)
	return ok && id == e.Self.ID
}

// Advanced reports whether the actor has latched its rendezvous.
func (e RuleEnv) Advanced() bool {
	return e.State.Rendezvous.Arrived(e.Team, e.Self.ID)
}

// CriticalEnemies are enemy units below the tower's kill threshold, in
// snapshot order.
func (e RuleEnv) CriticalEnemies() []model.Unit {
	var out []model.Unit
	for _, u := range e.Snapshot.EnemyUnits {
		if u.Hits < e.Tactics.TowerCriticalHits {
			out = append(out, u)
		}
	}
	return out
}

// InjuredAllies are my units within the tower's triage radius that are
// below max hits.
func (e RuleEnv) InjuredAllies() []model.Unit {
	var out []model.Unit
	for _, u := range withinRadius(e.Snapshot.MyUnits, e.Tower.Pos(), e.Tactics.TowerTriageRadius) {
		if u.Injured() {
			out = append(out, u)
		}
	}
	return out
}

// EnemiesInTowerRange are enemy units the tower can reach, nearest first.
func (e RuleEnv) EnemiesInTowerRange() []model.Unit {
	return sortByRange(withinRadius(e.Snapshot.EnemyUnits, e.Tower.Pos(), e.Tower.Range), e.Tower.Pos())
}

// teammates are my other live units on the actor's team. Units without a
// team have no teammates.
func (e RuleEnv) teammates() []model.Unit {
	if e.Team == TeamNone {
		return nil
	}
	var out []model.Unit
	for _, u := range e.Snapshot.MyUnits {
		if u.ID != e.Self.ID && e.State.Ledger.TeamOf(u.ID) == e.Team {
			out = append(out, u)
		}
	}
	return out
}
