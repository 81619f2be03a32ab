package rules

import "github.com/nstehr/vimy/arena-core/model"

// Snapshot is the read-only, per-tick partition of everything visible.
// It is rebuilt every tick and never stored in MatchState.
type Snapshot struct {
	Tick       int
	MyUnits    []model.Unit
	EnemyUnits []model.Unit
	Pickups    []model.Pickup
	EnemyFlag  *model.Flag // nil when no enemy flag is visible
	MyTowers   []model.Tower
	live       map[string]bool
}

// BuildSnapshot partitions a game state. Only the first enemy flag is
// tracked; enemy towers are ignored because nothing targets them.
func BuildSnapshot(gs model.GameState) *Snapshot {
	s := &Snapshot{
		Tick:    gs.Tick,
		Pickups: gs.Pickups,
		live:    make(map[string]bool, len(gs.Units)),
	}
	for _, u := range gs.Units {
		if u.My {
			s.MyUnits = append(s.MyUnits, u)
			s.live[u.ID] = true
		} else {
			s.EnemyUnits = append(s.EnemyUnits, u)
		}
	}
	for i := range gs.Flags {
		if !gs.Flags[i].My {
			f := gs.Flags[i]
			s.EnemyFlag = &f
			break
		}
	}
	for _, t := range gs.Towers {
		if t.My {
			s.MyTowers = append(s.MyTowers, t)
		}
	}
	return s
}

// Alive reports whether one of my units with this ID is in the snapshot.
func (s *Snapshot) Alive(id string) bool {
	return s.live[id]
}
