package model

import "math"

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Range is the arena's grid distance: the number of 8-connected steps
// between two cells, i.e. Chebyshev distance.
func Range(a, b Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}

// Direction is one of the eight compass moves. Values match the arena's
// numbering so they can go over the wire unchanged.
type Direction int

const (
	DirectionNone Direction = iota
	Top
	TopRight
	Right
	BottomRight
	Bottom
	BottomLeft
	Left
	TopLeft
)

var directionNames = [...]string{"none", "top", "top_right", "right", "bottom_right", "bottom", "bottom_left", "left", "top_left"}

func (d Direction) String() string {
	if d < DirectionNone || d > TopLeft {
		return "invalid"
	}
	return directionNames[d]
}

// sectors is indexed by octant counted clockwise from +x. The y axis grows
// downward, so positive dy is Bottom.
var sectors = [8]Direction{Right, BottomRight, Bottom, BottomLeft, Left, TopLeft, Top, TopRight}

// DirectionTo maps a relative offset to the nearest compass direction.
// A zero offset has no direction.
func DirectionTo(dx, dy int) Direction {
	if dx == 0 && dy == 0 {
		return DirectionNone
	}
	angle := math.Atan2(float64(dy), float64(dx))
	octant := int(math.Round(angle / (math.Pi / 4)))
	return sectors[(octant+8)%8]
}

// Offset is the unit step a direction moves by.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case Top:
		return 0, -1
	case TopRight:
		return 1, -1
	case Right:
		return 1, 0
	case BottomRight:
		return 1, 1
	case Bottom:
		return 0, 1
	case BottomLeft:
		return -1, 1
	case Left:
		return -1, 0
	case TopLeft:
		return -1, -1
	}
	return 0, 0
}
