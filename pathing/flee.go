// Package pathing answers flee searches locally when the host shares its
// terrain, so evasion does not need a round trip per unit.
package pathing

import (
	"container/heap"

	"github.com/nstehr/vimy/arena-core/model"
)

// Goal is one threat to keep away from: the searcher looks for a cell at
// least Range from Pos.
type Goal struct {
	Pos   model.Position
	Range int
}

// Defaults mirror the arena's own search limits closely enough for a single
// step of evasion.
const (
	DefaultMaxOps   = 200
	DefaultMaxDepth = 8
)

// Searcher runs bounded uniform-cost flee searches over a terrain grid.
type Searcher struct {
	grid     *model.TerrainGrid
	MaxOps   int // cells expanded before giving up
	MaxDepth int // steps of look-ahead
}

func NewSearcher(grid *model.TerrainGrid) *Searcher {
	return &Searcher{grid: grid, MaxOps: DefaultMaxOps, MaxDepth: DefaultMaxDepth}
}

// neighbors is in compass order so ties resolve the same way every time.
var neighbors = []model.Direction{
	model.Top, model.TopRight, model.Right, model.BottomRight,
	model.Bottom, model.BottomLeft, model.Left, model.TopLeft,
}

// Flee returns the cheapest path from origin to the nearest cell that is
// outside every goal's range, excluding origin itself. It returns nil when
// origin is already safe or no safe cell is reachable within the limits.
func (s *Searcher) Flee(origin model.Position, goals []Goal) []model.Position {
	if safe(origin, goals) {
		return nil
	}

	start := node{pos: origin}
	cost := map[model.Position]int{origin: 0}
	parent := make(map[model.Position]model.Position)
	depth := map[model.Position]int{origin: 0}

	open := &frontier{start}
	seq := 0
	ops := 0
	for open.Len() > 0 && ops < s.MaxOps {
		cur := heap.Pop(open).(node)
		if cur.cost > cost[cur.pos] {
			continue
		}
		ops++
		if cur.pos != origin && safe(cur.pos, goals) {
			return unwind(parent, origin, cur.pos)
		}
		if depth[cur.pos] >= s.MaxDepth {
			continue
		}
		for _, d := range neighbors {
			dx, dy := d.Offset()
			next := model.Position{X: cur.pos.X + dx, Y: cur.pos.Y + dy}
			step := s.grid.Cost(next.X, next.Y)
			if step == 0 {
				continue
			}
			c := cur.cost + step
			if old, seen := cost[next]; seen && old <= c {
				continue
			}
			cost[next] = c
			parent[next] = cur.pos
			depth[next] = depth[cur.pos] + 1
			seq++
			heap.Push(open, node{pos: next, cost: c, seq: seq})
		}
	}
	return nil
}

func safe(p model.Position, goals []Goal) bool {
	for _, g := range goals {
		if model.Range(p, g.Pos) < g.Range {
			return false
		}
	}
	return true
}

func unwind(parent map[model.Position]model.Position, origin, end model.Position) []model.Position {
	var rev []model.Position
	for p := end; p != origin; p = parent[p] {
		rev = append(rev, p)
	}
	path := make([]model.Position, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}

type node struct {
	pos  model.Position
	cost int
	seq  int // insertion order, breaks cost ties
}

type frontier []node

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(node)) }
func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	*f = old[:len(old)-1]
	return n
}
