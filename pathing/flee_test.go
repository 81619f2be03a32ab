package pathing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/nstehr/vimy/arena-core/model"
)

func TestFleeAlreadySafe(t *testing.T) {
	s := NewSearcher(model.NewOpenGrid(20, 20))
	path := s.Flee(model.Position{X: 10, Y: 10}, []Goal{{Pos: model.Position{X: 2, Y: 2}, Range: 3}})
	assert.Nil(t, path)
}

func TestFleeStepsAway(t *testing.T) {
	s := NewSearcher(model.NewOpenGrid(20, 20))
	origin := model.Position{X: 10, Y: 10}
	threat := model.Position{X: 9, Y: 10}

	path := s.Flee(origin, []Goal{{Pos: threat, Range: 3}})
	require.NotEmpty(t, path)

	end := path[len(path)-1]
	assert.GreaterOrEqual(t, model.Range(end, threat), 3)
	// First step must be adjacent to the origin.
	assert.Equal(t, 1, model.Range(path[0], origin))
	assert.Greater(t, path[0].X, threat.X, "first step should lead away from the threat")
}

func TestFleeBlockedByWalls(t *testing.T) {
	// A single open cell boxed in by walls: nowhere to go.
	grid := &model.TerrainGrid{
		Width:  3,
		Height: 3,
		Cells: []model.TerrainType{
			model.Wall, model.Wall, model.Wall,
			model.Wall, model.Plain, model.Wall,
			model.Wall, model.Wall, model.Wall,
		},
	}
	s := NewSearcher(grid)
	path := s.Flee(model.Position{X: 1, Y: 1}, []Goal{{Pos: model.Position{X: 1, Y: 1}, Range: 2}})
	assert.Nil(t, path)
}

func TestFleeAvoidsSwamp(t *testing.T) {
	// Threat on the left. The cells to the right are swamp except the row above.
	grid := model.NewOpenGrid(10, 3)
	for x := 5; x < 10; x++ {
		grid.Cells[1*grid.Width+x] = model.Swamp
	}
	s := NewSearcher(grid)
	origin := model.Position{X: 4, Y: 1}
	threat := model.Position{X: 3, Y: 1}

	path := s.Flee(origin, []Goal{{Pos: threat, Range: 3}})
	require.NotEmpty(t, path)
	for _, p := range path {
		assert.NotEqual(t, model.Swamp, grid.At(p.X, p.Y), "path should prefer plain cells, went through %v", p)
	}
}

func TestFleePathIsContiguous(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewSearcher(model.NewOpenGrid(30, 30))
		origin := model.Position{X: rapid.IntRange(5, 24).Draw(t, "ox"), Y: rapid.IntRange(5, 24).Draw(t, "oy")}
		threat := model.Position{
			X: origin.X + rapid.IntRange(-2, 2).Draw(t, "tdx"),
			Y: origin.Y + rapid.IntRange(-2, 2).Draw(t, "tdy"),
		}
		r := rapid.IntRange(1, 4).Draw(t, "range")
		goals := []Goal{{Pos: threat, Range: r}}

		path := s.Flee(origin, goals)
		if model.Range(origin, threat) >= r {
			if path != nil {
				t.Fatalf("origin already safe but got path %v", path)
			}
			return
		}
		if len(path) == 0 {
			t.Fatalf("expected a path on an open grid")
		}
		prev := origin
		for _, p := range path {
			if model.Range(prev, p) != 1 {
				t.Fatalf("non-adjacent step %v -> %v", prev, p)
			}
			prev = p
		}
		if !safe(prev, goals) {
			t.Fatalf("path ends inside threat range at %v", prev)
		}
	})
}
