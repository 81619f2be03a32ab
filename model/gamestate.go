package model

// GameState is the snapshot the arena host pushes every tick. Objects in it
// are only meaningful for the tick that produced them; anything that must
// outlive the tick is keyed by ID.
type GameState struct {
	Tick    int      `json:"tick"`
	Units   []Unit   `json:"units"`
	Pickups []Pickup `json:"pickups"`
	Flags   []Flag   `json:"flags"`
	Towers  []Tower  `json:"towers"`
}

// Body part kinds as reported by the arena.
const (
	PartMove         = "move"
	PartWork         = "work"
	PartCarry        = "carry"
	PartAttack       = "attack"
	PartRangedAttack = "ranged_attack"
	PartHeal         = "heal"
	PartTough        = "tough"
)

type BodyPart struct {
	Type string `json:"type"`
	Hits int    `json:"hits"`
}

type Unit struct {
	ID      string     `json:"id"`
	X       int        `json:"x"`
	Y       int        `json:"y"`
	My      bool       `json:"my"`
	Body    []BodyPart `json:"body"`
	Hits    int        `json:"hits"`
	HitsMax int        `json:"hitsMax"`
}

func (u Unit) Pos() Position { return Position{X: u.X, Y: u.Y} }

// Injured reports whether the unit is below its maximum hit points.
func (u Unit) Injured() bool { return u.Hits < u.HitsMax }

// HasPart returns true if any body part is of kind t.
func (u Unit) HasPart(t string) bool {
	for _, p := range u.Body {
		if p.Type == t {
			return true
		}
	}
	return false
}

// Pickup is a body part lying on the ground. It decays and may disappear
// between ticks without notice.
type Pickup struct {
	ID           string `json:"id"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	TicksToDecay int    `json:"ticksToDecay"`
	Type         string `json:"type"`
}

func (p Pickup) Pos() Position { return Position{X: p.X, Y: p.Y} }

type Flag struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
	My bool   `json:"my"`
}

func (f Flag) Pos() Position { return Position{X: f.X, Y: f.Y} }

// Tower is a point-defense structure. Range is the farthest it can attack.
type Tower struct {
	ID    string `json:"id"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	My    bool   `json:"my"`
	Range int    `json:"range"`
}

func (t Tower) Pos() Position { return Position{X: t.X, Y: t.Y} }
