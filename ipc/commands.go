package ipc

import (
	"sync"

	"github.com/nstehr/vimy/arena-core/model"
)

// Command type constants. These must stay in sync with the host's command executor.
const (
	TypeMoveTo       = "move_to"
	TypeMove         = "move"
	TypeAttack       = "attack"
	TypeRangedAttack = "ranged_attack"
	TypeHeal         = "heal"
	TypeRangedHeal   = "ranged_heal"
	TypeTowerAttack  = "tower_attack"
	TypeTowerHeal    = "tower_heal"
	TypeVisualText   = "visual_text"
)

type MoveToCommand struct {
	ActorID string `json:"actor_id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

type MoveCommand struct {
	ActorID   string          `json:"actor_id"`
	Direction model.Direction `json:"direction"`
}

// TargetCommand covers every actor-on-target order: attacks, heals and
// their tower variants.
type TargetCommand struct {
	ActorID  string `json:"actor_id"`
	TargetID string `json:"target_id"`
}

type VisualTextCommand struct {
	Text    string  `json:"text"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Font    string  `json:"font,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
	Color   string  `json:"background_color,omitempty"`
}

// Batch collects commands for one tick so they can be returned in a single
// reply instead of being written to the socket one by one.
type Batch struct {
	mu       sync.Mutex
	commands []Envelope
}

func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.commands = append(b.commands, env)
	b.mu.Unlock()
	return nil
}

// Commands returns a copy of everything sent so far.
func (b *Batch) Commands() []Envelope {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Envelope, len(b.commands))
	copy(out, b.commands)
	return out
}

func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.commands)
}
