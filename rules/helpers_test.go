package rules

import (
	"testing"

	"go.uber.org/zap"

	"github.com/nstehr/vimy/arena-core/ipc"
	"github.com/nstehr/vimy/arena-core/model"
	"github.com/nstehr/vimy/arena-core/pathing"
)

type sentCommand struct {
	Type string
	Data any
}

// recorder is a Sender that keeps every command in order.
type recorder struct {
	cmds []sentCommand
}

func (r *recorder) Send(msgType string, data any) error {
	r.cmds = append(r.cmds, sentCommand{Type: msgType, Data: data})
	return nil
}

func actorOf(c sentCommand) string {
	switch d := c.Data.(type) {
	case ipc.MoveToCommand:
		return d.ActorID
	case ipc.MoveCommand:
		return d.ActorID
	case ipc.TargetCommand:
		return d.ActorID
	}
	return ""
}

func (r *recorder) forActor(id string) []sentCommand {
	var out []sentCommand
	for _, c := range r.cmds {
		if actorOf(c) == id {
			out = append(out, c)
		}
	}
	return out
}

func (r *recorder) ofType(id, msgType string) []sentCommand {
	var out []sentCommand
	for _, c := range r.forActor(id) {
		if c.Type == msgType {
			out = append(out, c)
		}
	}
	return out
}

func isMove(t string) bool { return t == ipc.TypeMoveTo || t == ipc.TypeMove }

func isAction(t string) bool {
	switch t {
	case ipc.TypeAttack, ipc.TypeRangedAttack, ipc.TypeHeal, ipc.TypeRangedHeal, ipc.TypeTowerAttack, ipc.TypeTowerHeal:
		return true
	}
	return false
}

func mine(id string, x, y, hits int, parts ...string) model.Unit {
	return newUnit(id, x, y, true, hits, parts...)
}

func enemy(id string, x, y, hits int, parts ...string) model.Unit {
	return newUnit(id, x, y, false, hits, parts...)
}

func newUnit(id string, x, y int, my bool, hits int, parts ...string) model.Unit {
	body := make([]model.BodyPart, 0, len(parts)+1)
	for _, p := range parts {
		body = append(body, model.BodyPart{Type: p, Hits: 100})
	}
	body = append(body, model.BodyPart{Type: model.PartMove, Hits: 100})
	return model.Unit{ID: id, X: x, Y: y, My: my, Body: body, Hits: hits, HitsMax: 100}
}

// envFor builds the env the engine would build for unit id.
func envFor(t *testing.T, gs model.GameState, state *MatchState, id string) RuleEnv {
	t.Helper()
	snap := BuildSnapshot(gs)
	for _, u := range snap.MyUnits {
		if u.ID == id {
			return RuleEnv{
				Snapshot: snap,
				State:    state,
				Tactics:  DefaultTactics(),
				Logger:   zap.NewNop(),
				Self:     u,
				Roles:    Classify(u.Body),
				Team:     state.Ledger.TeamOf(u.ID),
			}
		}
	}
	t.Fatalf("unit %q not in snapshot", id)
	return RuleEnv{}
}

// stubFinder returns a fixed path and counts calls.
type stubFinder struct {
	path  []model.Position
	calls int
}

func (f *stubFinder) Flee(origin model.Position, goals []pathing.Goal) []model.Position {
	f.calls++
	return f.path
}

func newTestEngine(t *testing.T, tac Tactics) *Engine {
	t.Helper()
	e, err := NewEngine(CompileTactics(tac), tac, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}
