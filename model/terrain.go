package model

// TerrainType classifies a single arena cell. Values follow the arena's
// terrain mask so the host can send them verbatim.
type TerrainType byte

const (
	Plain TerrainType = 0 // walkable, normal cost
	Wall  TerrainType = 1 // impassable
	Swamp TerrainType = 2 // walkable, slow
)

// Movement costs used by the local flee search.
const (
	PlainCost = 1
	SwampCost = 5
)

// TerrainGrid is the full-resolution arena map sent once during the hello
// handshake.
type TerrainGrid struct {
	Width  int
	Height int
	Cells  []TerrainType // row-major: Cells[y*Width + x]
}

// At returns the terrain at (x, y). Cells outside the map are Wall so that
// searches never leave it.
func (g *TerrainGrid) At(x, y int) TerrainType {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return Wall
	}
	i := y*g.Width + x
	if i >= len(g.Cells) {
		return Wall
	}
	return g.Cells[i]
}

func (g *TerrainGrid) Passable(x, y int) bool {
	return g.At(x, y) != Wall
}

// Cost returns the step cost of entering (x, y), or 0 for impassable cells.
func (g *TerrainGrid) Cost(x, y int) int {
	switch g.At(x, y) {
	case Plain:
		return PlainCost
	case Swamp:
		return SwampCost
	}
	return 0
}

// NewOpenGrid returns a grid of the given size with no obstacles.
func NewOpenGrid(width, height int) *TerrainGrid {
	return &TerrainGrid{
		Width:  width,
		Height: height,
		Cells:  make([]TerrainType, width*height),
	}
}
