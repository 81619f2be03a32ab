package rules

import (
	"github.com/expr-lang/expr/vm"
)

// ActionFunc writes a decision into the actor's intent when a rule's
// condition is true. Actions never send commands themselves; the engine
// emits each intent once after every rule for the actor has run.
type ActionFunc func(env RuleEnv, in *Intent)

// Scope says which kind of actor a rule is evaluated for.
type Scope string

const (
	ScopeUnit  Scope = "unit"
	ScopeTower Scope = "tower"
)

// Rule is the atomic unit of AI behavior: a condition → action pair.
// The engine evaluates rules by priority and uses Category + Exclusive
// to stop lower-priority rules in the same category once one has fired.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Scope        Scope       // unit or tower
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source (preserved for serialization)
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
