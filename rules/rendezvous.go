package rules

import "github.com/nstehr/vimy/arena-core/model"

// Rendezvous tracks, per team, which units have reached the staging point.
// Arrival is a one-way latch: an ID added is never removed.
type Rendezvous struct {
	arrived map[Team]map[string]struct{}
}

func NewRendezvous() *Rendezvous {
	r := &Rendezvous{arrived: make(map[Team]map[string]struct{})}
	for _, t := range teams {
		r.arrived[t] = make(map[string]struct{})
	}
	return r
}

func (r *Rendezvous) Arrived(team Team, id string) bool {
	_, ok := r.arrived[team][id]
	return ok
}

// Progress is the number of units latched on a team.
func (r *Rendezvous) Progress(team Team) int {
	return len(r.arrived[team])
}

// latch records arrival and reports whether it was new.
func (r *Rendezvous) latch(team Team, id string) bool {
	set, ok := r.arrived[team]
	if !ok {
		return false
	}
	if _, seen := set[id]; seen {
		return false
	}
	set[id] = struct{}{}
	return true
}

// Target returns where the unit should be heading. A unit still regrouping
// goes to its staging point; once it has come within radius it is latched
// and heads for the enemy flag from the same tick on. ok is false when the
// unit has advanced but no enemy flag is visible. Units without a team skip
// the regroup entirely.
func (r *Rendezvous) Target(team Team, id string, pos, staging model.Position, radius int, flag *model.Flag) (target model.Position, ok, arrivedNow bool) {
	if team != TeamNone && !r.Arrived(team, id) {
		if model.Range(pos, staging) >= radius {
			return staging, true, false
		}
		arrivedNow = r.latch(team, id)
	}
	if flag == nil {
		return model.Position{}, false, arrivedNow
	}
	return flag.Pos(), true, arrivedNow
}
