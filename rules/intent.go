package rules

import (
	"fmt"
	"strconv"

	"github.com/nstehr/vimy/arena-core/ipc"
	"github.com/nstehr/vimy/arena-core/model"
)

// Sender delivers commands to the host. *ipc.Connection and *ipc.Batch both
// satisfy it.
type Sender interface {
	Send(msgType string, data any) error
}

type moveKind int

const (
	moveNone moveKind = iota
	moveTo
	moveStep
)

// Movement is the single movement decision for an actor this tick.
type Movement struct {
	kind      moveKind
	Target    model.Position
	Direction model.Direction
	Reason    string
}

// Action is the single attack or heal decision for an actor this tick.
// Kind is one of the ipc command types.
type Action struct {
	Kind     string
	TargetID string
}

// Intent holds at most one movement and one action per actor. Behaviors set
// fields rather than appending, so the last behavior to write wins and the
// engine emits exactly what is left at the end of the actor's pass.
type Intent struct {
	ActorID string
	Move    Movement
	Act     Action
	label   *ipc.VisualTextCommand
}

func NewIntent(actorID string) *Intent {
	return &Intent{ActorID: actorID}
}

func (in *Intent) MoveTo(pos model.Position, reason string) {
	in.Move = Movement{kind: moveTo, Target: pos, Reason: reason}
}

func (in *Intent) Step(d model.Direction, reason string) {
	if d == model.DirectionNone {
		return
	}
	in.Move = Movement{kind: moveStep, Direction: d, Reason: reason}
}

// Perform sets the action. An empty target is ignored so a command can
// never be built without one.
func (in *Intent) Perform(kind, targetID string) {
	if targetID == "" {
		return
	}
	in.Act = Action{Kind: kind, TargetID: targetID}
}

func (in *Intent) HasMove() bool   { return in.Move.kind != moveNone }
func (in *Intent) HasAction() bool { return in.Act.TargetID != "" }

// IsStep reports whether the movement is a single directional step.
func (in *Intent) IsStep() bool { return in.Move.kind == moveStep }

// ShowHits attaches the hit point label drawn above a unit.
func (in *Intent) ShowHits(u model.Unit) {
	in.label = &ipc.VisualTextCommand{
		Text:    strconv.Itoa(u.Hits),
		X:       float64(u.X),
		Y:       float64(u.Y) - 0.5,
		Font:    "0.5",
		Opacity: 0.7,
		Color:   "#808080",
	}
}

// Emit sends the intent: debug label, then movement, then action.
func (in *Intent) Emit(out Sender) error {
	if in.label != nil {
		if err := out.Send(ipc.TypeVisualText, *in.label); err != nil {
			return fmt.Errorf("send label for %s: %w", in.ActorID, err)
		}
	}
	switch in.Move.kind {
	case moveTo:
		if err := out.Send(ipc.TypeMoveTo, ipc.MoveToCommand{ActorID: in.ActorID, X: in.Move.Target.X, Y: in.Move.Target.Y}); err != nil {
			return fmt.Errorf("send move_to for %s: %w", in.ActorID, err)
		}
	case moveStep:
		if err := out.Send(ipc.TypeMove, ipc.MoveCommand{ActorID: in.ActorID, Direction: in.Move.Direction}); err != nil {
			return fmt.Errorf("send move for %s: %w", in.ActorID, err)
		}
	}
	if in.HasAction() {
		if err := out.Send(in.Act.Kind, ipc.TargetCommand{ActorID: in.ActorID, TargetID: in.Act.TargetID}); err != nil {
			return fmt.Errorf("send %s for %s: %w", in.Act.Kind, in.ActorID, err)
		}
	}
	return nil
}
