package rules

import "github.com/nstehr/vimy/arena-core/model"

// Team gives units persistent squad identity across ticks. Without it every
// unit would pick its own staging point and the army would never regroup.
type Team string

const (
	TeamNone Team = ""
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

var teams = []Team{TeamRed, TeamBlue}

// Capacities is how many units of each role go to Red before the rest
// overflow to Blue.
type Capacities struct {
	Melee  int `yaml:"melee"`
	Ranged int `yaml:"ranged"`
	Healer int `yaml:"healer"`
}

func (c Capacities) For(r Role) int {
	switch r {
	case RoleMelee:
		return c.Melee
	case RoleRanged:
		return c.Ranged
	case RoleHealer:
		return c.Healer
	}
	return 0
}

// Ledger maps unit IDs to teams. Entries are written once and never changed
// or purged; an entry for a dead unit just stops matching anything.
type Ledger struct {
	teams  map[string]Team
	placed map[Role]int // running count per role during the assignment pass
}

func NewLedger() *Ledger {
	return &Ledger{
		teams:  make(map[string]Team),
		placed: make(map[Role]int),
	}
}

// Assign places an unassigned unit on Red while its role is under capacity
// and on Blue otherwise. A unit that already has a team keeps it.
func (l *Ledger) Assign(id string, role Role, caps Capacities) Team {
	if t, ok := l.teams[id]; ok {
		return t
	}
	team := TeamBlue
	if l.placed[role] < caps.For(role) {
		team = TeamRed
	}
	l.placed[role]++
	l.teams[id] = team
	return team
}

// TeamOf returns the unit's team, or TeamNone if it was never assigned.
func (l *Ledger) TeamOf(id string) Team {
	return l.teams[id]
}

// Members counts ledger entries on a team, dead or alive.
func (l *Ledger) Members(t Team) int {
	n := 0
	for _, team := range l.teams {
		if team == t {
			n++
		}
	}
	return n
}

func (l *Ledger) Len() int { return len(l.teams) }

// assignTeams runs the single assignment pass over my units in snapshot
// order. Unclassified units have no quota and stay unassigned.
func assignTeams(l *Ledger, units []model.Unit, caps Capacities) map[Team]int {
	counts := make(map[Team]int)
	for _, u := range units {
		role := PrimaryRole(u.Body)
		if role == RoleUnclassified {
			continue
		}
		counts[l.Assign(u.ID, role, caps)]++
	}
	return counts
}

// Scouts holds at most one designated scout healer per team.
type Scouts struct {
	byTeam map[Team]string
}

func NewScouts() *Scouts {
	return &Scouts{byTeam: make(map[Team]string)}
}

// Claim makes id the team's scout if the current scout is not alive, and
// reports whether id is the scout afterwards. First caller wins.
func (s *Scouts) Claim(team Team, id string, alive func(string) bool) (isScout, replaced bool) {
	if team == TeamNone {
		return false, false
	}
	cur, ok := s.byTeam[team]
	if !ok || !alive(cur) {
		s.byTeam[team] = id
		return true, true
	}
	return cur == id, false
}

// Scout returns the designated scout for a team, if any.
func (s *Scouts) Scout(team Team) (string, bool) {
	id, ok := s.byTeam[team]
	return id, ok
}
