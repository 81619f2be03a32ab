package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"

	"github.com/nstehr/vimy/arena-core/model"
)

// Engine runs compiled rules against each tick's snapshot.
// Rules fire in priority order; exclusive rules block lower-priority rules
// in the same category, which is how towers end up with a single action.
type Engine struct {
	unitRules  []*Rule
	towerRules []*Rule
	tactics    Tactics
	finder     PathFinder
	logger     *zap.Logger

	lastMilitaryDiagTick int
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
//
// Precondition: logger must not be nil.
func NewEngine(rules []*Rule, t Tactics, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		panic("rules.NewEngine: logger must not be nil")
	}
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	t.Validate()
	e := &Engine{tactics: t, logger: logger, lastMilitaryDiagTick: -militaryDiagInterval}
	for _, r := range compiled {
		switch r.Scope {
		case ScopeUnit:
			e.unitRules = append(e.unitRules, r)
		case ScopeTower:
			e.towerRules = append(e.towerRules, r)
		default:
			return nil, fmt.Errorf("rule %q: unknown scope %q", r.Name, r.Scope)
		}
	}
	return e, nil
}

// SetFinder installs the flee search used by evasion. Without one, units
// that would evade hold position instead.
func (e *Engine) SetFinder(f PathFinder) {
	e.finder = f
}

func (e *Engine) Tactics() Tactics { return e.tactics }

// Evaluate runs one decision pass: partition the snapshot, assign teams on
// the first pass of the match, then decide and emit one intent per unit and
// per tower.
func (e *Engine) Evaluate(gs model.GameState, state *MatchState, out Sender) error {
	if state == nil {
		return errors.New("evaluate: nil match state")
	}
	snap := BuildSnapshot(gs)

	if state.Init == Uninitialized {
		counts := assignTeams(state.Ledger, snap.MyUnits, e.tactics.Capacities)
		state.Init = Initialized
		e.logger.Info("teams assigned",
			zap.Int("tick", snap.Tick),
			zap.Int("red", counts[TeamRed]),
			zap.Int("blue", counts[TeamBlue]),
		)
	}

	e.logTickDiagnostics(snap)
	e.logMilitaryDiagnostics(snap, state)

	base := RuleEnv{
		Snapshot: snap,
		State:    state,
		Tactics:  e.tactics,
		Finder:   e.finder,
		Logger:   e.logger,
	}

	for _, u := range snap.MyUnits {
		env := base
		env.Self = u
		env.Roles = Classify(u.Body)
		env.Team = state.Ledger.TeamOf(u.ID)

		in := NewIntent(u.ID)
		e.run(e.unitRules, env, in)
		if err := in.Emit(out); err != nil {
			e.logger.Error("emit unit intent", zap.String("unit", u.ID), zap.Error(err))
		}
	}

	for _, t := range snap.MyTowers {
		env := base
		env.Tower = t

		in := NewIntent(t.ID)
		e.run(e.towerRules, env, in)
		if err := in.Emit(out); err != nil {
			e.logger.Error("emit tower intent", zap.String("tower", t.ID), zap.Error(err))
		}
	}

	return nil
}

func (e *Engine) run(rules []*Rule, env RuleEnv, in *Intent) {
	fired := make(map[string]bool) // category → exclusive rule already fired

	for _, r := range rules {
		if fired[r.Category] {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			e.logger.Warn("rule condition error", zap.String("rule", r.Name), zap.Error(err))
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		e.logger.Debug("rule fired",
			zap.String("rule", r.Name),
			zap.Int("priority", r.Priority),
			zap.String("actor", in.ActorID),
		)
		r.Action(env, in)

		if r.Exclusive {
			fired[r.Category] = true
		}
	}
}

// logTickDiagnostics is the side channel the host operator watches: a unit
// count every few ticks and the pickup list every tick.
func (e *Engine) logTickDiagnostics(snap *Snapshot) {
	if snap.Tick%e.tactics.UnitCountInterval == 0 {
		e.logger.Info("unit count", zap.Int("tick", snap.Tick), zap.Int("units", len(snap.MyUnits)))
	}
	if ce := e.logger.Check(zap.DebugLevel, "pickups"); ce != nil {
		ce.Write(zap.Int("tick", snap.Tick), zap.Any("pickups", snap.Pickups))
	}
}

const militaryDiagInterval = 100

// logMilitaryDiagnostics helps debug "why isn't the push happening?".
// It fires every 100 ticks regardless of rule activity.
func (e *Engine) logMilitaryDiagnostics(snap *Snapshot, state *MatchState) {
	if snap.Tick-e.lastMilitaryDiagTick < militaryDiagInterval {
		return
	}
	e.lastMilitaryDiagTick = snap.Tick

	alive := make(map[Team]int)
	for _, u := range snap.MyUnits {
		alive[state.Ledger.TeamOf(u.ID)]++
	}
	redScout, _ := state.Scouts.Scout(TeamRed)
	blueScout, _ := state.Scouts.Scout(TeamBlue)

	e.logger.Info("military diagnostics",
		zap.Int("tick", snap.Tick),
		zap.Int("redAlive", alive[TeamRed]),
		zap.Int("blueAlive", alive[TeamBlue]),
		zap.Int("unassigned", alive[TeamNone]),
		zap.Int("redRoster", state.Ledger.Members(TeamRed)),
		zap.Int("blueRoster", state.Ledger.Members(TeamBlue)),
		zap.Int("redAdvanced", state.Rendezvous.Progress(TeamRed)),
		zap.Int("blueAdvanced", state.Rendezvous.Progress(TeamBlue)),
		zap.String("redScout", redScout),
		zap.String("blueScout", blueScout),
		zap.Int("enemiesVisible", len(snap.EnemyUnits)),
		zap.Bool("enemyFlagVisible", snap.EnemyFlag != nil),
	)
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
