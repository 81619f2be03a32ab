package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nstehr/vimy/arena-core/ipc"
	"github.com/nstehr/vimy/arena-core/model"
)

// redState returns a state with every given unit already on Red.
func redState(ids ...string) *MatchState {
	s := NewMatchState()
	caps := Capacities{Melee: 50, Ranged: 50, Healer: 50}
	for _, id := range ids {
		s.Ledger.Assign(id, RoleMelee, caps)
	}
	s.Init = Initialized
	return s
}

func TestActionMeleeEngagesNearest(t *testing.T) {
	gs := model.GameState{
		Units: []model.Unit{
			mine("m1", 50, 50, 100, model.PartAttack),
			enemy("far", 58, 50, 100),
			enemy("near", 45, 50, 100),
			enemy("out", 70, 50, 100),
		},
	}
	env := envFor(t, gs, redState("m1"), "m1")
	in := NewIntent("m1")
	ActionMelee(env, in)

	require.True(t, in.HasAction())
	assert.Equal(t, ipc.TypeAttack, in.Act.Kind)
	assert.Equal(t, "near", in.Act.TargetID)
	assert.Equal(t, model.Position{X: 45, Y: 50}, in.Move.Target)
	assert.NotNil(t, in.label, "hit point label is drawn every tick")
}

func TestActionMeleeRegroupsWhenNothingInRange(t *testing.T) {
	gs := model.GameState{
		Units: []model.Unit{
			mine("m1", 50, 50, 100, model.PartAttack),
			enemy("e1", 60, 50, 100), // range 10 is not inside 10
		},
	}
	env := envFor(t, gs, redState("m1"), "m1")
	in := NewIntent("m1")
	ActionMelee(env, in)

	assert.False(t, in.HasAction())
	require.True(t, in.HasMove())
	assert.Equal(t, env.Tactics.StagingRed, in.Move.Target)
	assert.Equal(t, "regroup", in.Move.Reason)
}

func TestActionRangedKeepsRendezvousMovement(t *testing.T) {
	gs := model.GameState{
		Units: []model.Unit{
			mine("r1", 50, 50, 100, model.PartRangedAttack),
			enemy("e9", 59, 50, 100),
			enemy("e4", 50, 54, 100),
		},
	}
	env := envFor(t, gs, redState("r1"), "r1")
	in := NewIntent("r1")
	ActionRanged(env, in)

	assert.Equal(t, ipc.TypeRangedAttack, in.Act.Kind)
	assert.Equal(t, "e4", in.Act.TargetID)
	assert.Equal(t, env.Tactics.StagingRed, in.Move.Target, "ranged units never chase")
}

func TestActionRangedNoTargetOutsideRange(t *testing.T) {
	gs := model.GameState{
		Units: []model.Unit{
			mine("r1", 50, 50, 100, model.PartRangedAttack),
			enemy("e12", 62, 50, 100),
			enemy("e15", 50, 65, 100),
		},
	}
	env := envFor(t, gs, redState("r1"), "r1")
	in := NewIntent("r1")
	ActionRanged(env, in)

	assert.False(t, in.HasAction())
	assert.True(t, in.HasMove())
}

func TestActionHealerTriageLowestTeammate(t *testing.T) {
	gs := model.GameState{
		Units: []model.Unit{
			mine("h1", 50, 50, 100, model.PartHeal),
			mine("a30", 20, 20, 30, model.PartAttack),
			mine("b80", 30, 30, 80, model.PartRangedAttack),
			mine("c100", 40, 40, 100, model.PartRangedAttack),
		},
	}
	env := envFor(t, gs, redState("h1", "a30", "b80", "c100"), "h1")
	in := NewIntent("h1")
	ActionHealer(env, in)

	require.True(t, in.HasMove())
	assert.Equal(t, "triage", in.Move.Reason)
	assert.Equal(t, model.Position{X: 20, Y: 20}, in.Move.Target)
}

func TestActionHealerTriageIgnoresOtherTeam(t *testing.T) {
	gs := model.GameState{
		Units: []model.Unit{
			mine("h1", 50, 50, 100, model.PartHeal),
			mine("blue", 20, 20, 10, model.PartAttack),
		},
	}
	state := redState("h1")
	state.Ledger.Assign("blue", RoleMelee, Capacities{})
	require.Equal(t, TeamBlue, state.Ledger.TeamOf("blue"))

	env := envFor(t, gs, state, "h1")
	in := NewIntent("h1")
	ActionHealer(env, in)

	assert.Equal(t, "regroup", in.Move.Reason)
}

func TestActionHealerScoutOverride(t *testing.T) {
	gs := model.GameState{
		Units: []model.Unit{
			mine("h1", 50, 50, 100, model.PartHeal),
			mine("a30", 20, 20, 30, model.PartAttack),
		},
		Pickups: []model.Pickup{
			{ID: "p-far", X: 54, Y: 50, Type: model.PartMove},
			{ID: "p2", X: 52, Y: 51, Type: model.PartHeal},
			{ID: "p1", X: 51, Y: 50, Type: model.PartAttack},
		},
	}
	env := envFor(t, gs, redState("h1", "a30"), "h1")
	in := NewIntent("h1")
	ActionHealer(env, in)

	assert.True(t, env.IsScout())
	assert.Equal(t, "pickup", in.Move.Reason)
	assert.Equal(t, model.Position{X: 51, Y: 50}, in.Move.Target)
}

func TestActionHealerNonScoutIgnoresPickups(t *testing.T) {
	gs := model.GameState{
		Units: []model.Unit{
			mine("h1", 50, 50, 100, model.PartHeal),
			mine("h2", 10, 10, 100, model.PartHeal),
		},
		Pickups: []model.Pickup{{ID: "p1", X: 11, Y: 10}},
	}
	state := redState("h1", "h2")
	ActionHealer(envFor(t, gs, state, "h1"), NewIntent("h1"))

	in := NewIntent("h2")
	ActionHealer(envFor(t, gs, state, "h2"), in)
	assert.NotEqual(t, "pickup", in.Move.Reason)
}

func TestActionHealerHealKind(t *testing.T) {
	tests := []struct {
		name     string
		patient  model.Unit
		wantKind string
		wantID   string
	}{
		{"adjacent", mine("p", 51, 51, 20, model.PartAttack), ipc.TypeHeal, "p"},
		{"ranged", mine("p", 53, 50, 20, model.PartAttack), ipc.TypeRangedHeal, "p"},
		// Nobody else nearby: the healer is its own lowest patient at range 0.
		{"self", mine("p", 54, 50, 20, model.PartAttack), ipc.TypeRangedHeal, "h1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs := model.GameState{
				Units: []model.Unit{
					mine("h1", 50, 50, 90, model.PartHeal),
					tc.patient,
				},
			}
			in := NewIntent("h1")
			ActionHealer(envFor(t, gs, redState("h1", "p"), "h1"), in)
			assert.Equal(t, tc.wantKind, in.Act.Kind)
			assert.Equal(t, tc.wantID, in.Act.TargetID)
		})
	}
}

func TestFleeNoopWhenAlreadySafe(t *testing.T) {
	gs := model.GameState{
		Units: []model.Unit{
			mine("r1", 50, 50, 100, model.PartRangedAttack),
			enemy("e1", 53, 50, 100),
			enemy("e2", 50, 45, 100),
		},
	}
	env := envFor(t, gs, redState("r1"), "r1")
	finder := &stubFinder{path: []model.Position{{X: 49, Y: 50}}}
	env.Finder = finder

	in := NewIntent("r1")
	Flee(env, in, env.Snapshot.EnemyUnits, 3)

	assert.False(t, in.HasMove())
	assert.Equal(t, 0, finder.calls)
}

func TestFleeStepsAlongFirstPathCell(t *testing.T) {
	gs := model.GameState{
		Units: []model.Unit{
			mine("r1", 50, 50, 100, model.PartRangedAttack),
			enemy("e1", 51, 50, 100),
		},
	}
	env := envFor(t, gs, redState("r1"), "r1")
	env.Finder = &stubFinder{path: []model.Position{{X: 49, Y: 49}, {X: 48, Y: 48}}}

	in := NewIntent("r1")
	Flee(env, in, env.Snapshot.EnemyUnits, 3)

	require.True(t, in.IsStep())
	assert.Equal(t, model.TopLeft, in.Move.Direction)
}

func TestFleeNoPathHolds(t *testing.T) {
	gs := model.GameState{
		Units: []model.Unit{
			mine("r1", 50, 50, 100, model.PartRangedAttack),
			enemy("e1", 51, 50, 100),
		},
	}
	env := envFor(t, gs, redState("r1"), "r1")
	env.Finder = &stubFinder{}

	in := NewIntent("r1")
	in.MoveTo(model.Position{X: 1, Y: 1}, "regroup")
	Flee(env, in, env.Snapshot.EnemyUnits, 3)

	assert.False(t, in.IsStep())
	assert.Equal(t, "regroup", in.Move.Reason, "earlier movement is left untouched")
}

func towerEnv(t *testing.T, gs model.GameState) RuleEnv {
	t.Helper()
	snap := BuildSnapshot(gs)
	require.NotEmpty(t, snap.MyTowers)
	return RuleEnv{
		Snapshot: snap,
		State:    NewMatchState(),
		Tactics:  DefaultTactics(),
		Tower:    snap.MyTowers[0],
	}
}

func TestTowerQueries(t *testing.T) {
	gs := model.GameState{
		Units: []model.Unit{
			enemy("e-healthy", 12, 12, 400),
			enemy("e-critical-far", 80, 80, 149),
			mine("f-hurt", 14, 14, 40),
			mine("f-hurt-far", 16, 16, 10),
			mine("f-full", 11, 11, 100),
		},
		Towers: []model.Tower{{ID: "t1", X: 10, Y: 10, My: true, Range: 50}},
	}
	env := towerEnv(t, gs)

	critical := env.CriticalEnemies()
	require.Len(t, critical, 1)
	assert.Equal(t, "e-critical-far", critical[0].ID)

	injured := env.InjuredAllies()
	require.Len(t, injured, 1, "only injured allies within radius 5 count")
	assert.Equal(t, "f-hurt", injured[0].ID)

	inRange := env.EnemiesInTowerRange()
	require.Len(t, inRange, 1)
	assert.Equal(t, "e-healthy", inRange[0].ID)
}

func TestTowerFinishCriticalIsFirstFound(t *testing.T) {
	gs := model.GameState{
		Units: []model.Unit{
			enemy("e-first", 90, 90, 140),
			enemy("e-closer", 11, 11, 20),
		},
		Towers: []model.Tower{{ID: "t1", X: 10, Y: 10, My: true, Range: 50}},
	}
	in := NewIntent("t1")
	ActionTowerFinishCritical(towerEnv(t, gs), in)
	assert.Equal(t, ipc.TypeTowerAttack, in.Act.Kind)
	assert.Equal(t, "e-first", in.Act.TargetID)
}
