package generator

import (
	"slices"

	"github.com/beka-birhanu/mazelab/maze"
)

// GrowingTree keeps a bag of active cells and, every step, works on one
// picked by a strategy drawn from a weighted mixture. Always picking the
// newest cell behaves like the backtracker, always picking a random one
// like Prim's.
type GrowingTree struct {
	grid    *maze.Grid
	rng     maze.Rand
	bag     []int
	styles  []PickingStyle
	weights []float64
	total   float64
	last    int
}

// NewGrowingTree starts the bag with one random cell.
func NewGrowingTree(grid *maze.Grid, weights map[PickingStyle]float64, rng maze.Rand) (*GrowingTree, error) {
	if err := validatePickingStyle(weights); err != nil {
		return nil, err
	}

	g := &GrowingTree{grid: grid, rng: rng}
	for _, style := range pickingStyles {
		if w := weights[style]; w > 0 {
			g.styles = append(g.styles, style)
			g.weights = append(g.weights, w)
			g.total += w
		}
	}

	start := rng.Intn(grid.Len())
	grid.Cell(start).Open = true
	g.bag = []int{start}
	g.last = start
	return g, nil
}

// pick draws a strategy from the mixture and returns the bag position it selects.
func (g *GrowingTree) pick() int {
	style := g.styles[len(g.styles)-1]
	r := g.rng.Float64() * g.total
	for i, w := range g.weights {
		if r < w {
			style = g.styles[i]
			break
		}
		r -= w
	}

	switch style {
	case Oldest:
		return 0
	case Random:
		return g.rng.Intn(len(g.bag))
	case Middle:
		return len(g.bag) / 2
	default:
		return len(g.bag) - 1
	}
}

// Step carves from one bag cell, or evicts it when it has no unopened neighbor.
func (g *GrowingTree) Step() {
	if g.IsComplete() {
		return
	}

	k := g.pick()
	cell := g.bag[k]
	g.last = cell

	dirs := unopenedNeighbors(g.grid, cell)
	if len(dirs) == 0 {
		g.bag = slices.Delete(g.bag, k, k+1)
		return
	}
	n, _ := g.grid.Carve(cell, pickDirection(g.rng, dirs))
	g.bag = append(g.bag, n)
}

// IsComplete reports whether the bag is empty.
func (g *GrowingTree) IsComplete() bool {
	return len(g.bag) == 0
}

// Snapshot implements Generator.
func (g *GrowingTree) Snapshot() Snapshot {
	if g.IsComplete() {
		return Snapshot{}
	}
	return Snapshot{Heads: []int{g.last}, Frontier: cloneInts(g.bag)}
}
