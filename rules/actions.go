package rules

import (
	"go.uber.org/zap"

	"github.com/nstehr/vimy/arena-core/ipc"
	"github.com/nstehr/vimy/arena-core/model"
)

func (e RuleEnv) log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// moveToRendezvous sets the regroup-then-advance movement. With no enemy
// flag visible an advanced unit gets no movement from here.
func moveToRendezvous(env RuleEnv, in *Intent) {
	self := env.Self
	target, ok, arrived := env.State.Rendezvous.Target(
		env.Team, self.ID, self.Pos(),
		env.Tactics.Staging(env.Team), env.Tactics.RendezvousRadius,
		env.Snapshot.EnemyFlag,
	)
	if arrived {
		env.log().Info("unit reached staging point",
			zap.String("unit", self.ID),
			zap.String("team", string(env.Team)),
			zap.Int("progress", env.State.Rendezvous.Progress(env.Team)),
		)
	}
	if !ok {
		return
	}
	reason := "advance"
	if env.Team != TeamNone && !env.State.Rendezvous.Arrived(env.Team, self.ID) {
		reason = "regroup"
	}
	in.MoveTo(target, reason)
}

// ActionMelee charges the nearest enemy within engage range of the unit and
// regroups otherwise.
func ActionMelee(env RuleEnv, in *Intent) {
	self := env.Self
	if env.Tactics.HitsLabel {
		in.ShowHits(self)
	}
	targets := sortByRange(withinRange(env.Snapshot.EnemyUnits, self.Pos(), env.Tactics.MeleeEngageRange), self.Pos())
	if len(targets) > 0 {
		in.MoveTo(targets[0].Pos(), "engage")
		in.Perform(ipc.TypeAttack, targets[0].ID)
		env.log().Debug("melee engaging", zap.String("unit", self.ID), zap.String("target", targets[0].ID))
		return
	}
	moveToRendezvous(env, in)
}

// ActionRanged fires at the nearest enemy in range without chasing; movement
// always follows the rendezvous plan. The range filter runs over the full
// range-sorted list, so nothing is fired at when every enemy is out of range.
func ActionRanged(env RuleEnv, in *Intent) {
	self := env.Self
	sorted := sortByRange(env.Snapshot.EnemyUnits, self.Pos())
	targets := withinRange(sorted, self.Pos(), env.Tactics.RangedEngageRange)
	if len(targets) > 0 {
		in.Perform(ipc.TypeRangedAttack, targets[0].ID)
	}
	moveToRendezvous(env, in)
}

// ActionHealer runs triage movement, the scout pickup override and the heal
// itself, in that order. Later movement overrides earlier movement.
func ActionHealer(env RuleEnv, in *Intent) {
	self := env.Self

	var wounded []model.Unit
	for _, u := range env.teammates() {
		if u.Injured() {
			wounded = append(wounded, u)
		}
	}
	if len(wounded) > 0 {
		in.MoveTo(sortByHits(wounded)[0].Pos(), "triage")
	} else {
		moveToRendezvous(env, in)
	}

	isScout, replaced := env.State.Scouts.Claim(env.Team, self.ID, env.Snapshot.Alive)
	if replaced {
		env.log().Info("scout designated", zap.String("unit", self.ID), zap.String("team", string(env.Team)))
	}
	if isScout {
		pickups := sortByRange(withinRange(env.Snapshot.Pickups, self.Pos(), env.Tactics.ScoutPickupRadius), self.Pos())
		if len(pickups) > 0 {
			in.MoveTo(pickups[0].Pos(), "pickup")
			env.log().Debug("scout collecting", zap.String("unit", self.ID), zap.String("pickup", pickups[0].ID), zap.String("type", pickups[0].Type))
		}
	}

	patients := withinRadius(env.Snapshot.MyUnits, self.Pos(), env.Tactics.HealRange)
	if len(patients) == 0 {
		return
	}
	patient := sortByHits(patients)[0]
	if model.Range(patient.Pos(), self.Pos()) == 1 {
		in.Perform(ipc.TypeHeal, patient.ID)
	} else {
		in.Perform(ipc.TypeRangedHeal, patient.ID)
	}
}

// EvadeWithin builds a flee action for enemies strictly closer than radius.
func EvadeWithin(radius int) ActionFunc {
	return func(env RuleEnv, in *Intent) {
		threats := withinRange(env.Snapshot.EnemyUnits, env.Self.Pos(), radius)
		if len(threats) == 0 {
			return
		}
		Flee(env, in, threats, radius)
	}
}

// --- Tower actions ---

// ActionTowerFinishCritical shoots the first enemy, in snapshot order, that
// is below the critical threshold.
func ActionTowerFinishCritical(env RuleEnv, in *Intent) {
	critical := env.CriticalEnemies()
	if len(critical) == 0 {
		return
	}
	in.Perform(ipc.TypeTowerAttack, critical[0].ID)
}

// ActionTowerTriage heals the most injured friendly unit nearby.
func ActionTowerTriage(env RuleEnv, in *Intent) {
	injured := env.InjuredAllies()
	if len(injured) == 0 {
		return
	}
	in.Perform(ipc.TypeTowerHeal, sortByHits(injured)[0].ID)
}

// ActionTowerEngage shoots the nearest enemy in range.
func ActionTowerEngage(env RuleEnv, in *Intent) {
	targets := env.EnemiesInTowerRange()
	if len(targets) == 0 {
		return
	}
	in.Perform(ipc.TypeTowerAttack, targets[0].ID)
}
