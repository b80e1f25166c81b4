/*
Package generator provides step-driven maze generation algorithms.

Every algorithm implements Generator: Step advances it by one atomic unit of
work (one carve, one chamber split, one row, ...) and is a no-op once
IsComplete reports true. Algorithms mutate the walls and open flags of the
maze.Grid they were built with and draw every random choice from the injected
maze.Rand, so a seed reproduces a run exactly.
*/
package generator

import (
	"fmt"
	"slices"
	"sort"

	"github.com/beka-birhanu/mazelab/maze"
)

// Generator is the capability every maze generation algorithm exposes.
type Generator interface {
	// Step advances the algorithm by one unit of work.
	Step()

	// IsComplete reports whether the maze is finished. It never reverts to false.
	IsComplete() bool

	// Snapshot returns the indices a renderer needs to draw the current state.
	Snapshot() Snapshot
}

// Snapshot is a read-only view of a generator's working state.
type Snapshot struct {
	Heads    []int `json:"heads"`              // Cells currently being worked on.
	Frontier []int `json:"frontier,omitempty"` // Candidate cells awaiting processing.
	Stack    []int `json:"stack,omitempty"`    // Stack, walk or run contents.
	Phase    int   `json:"phase"`              // Algorithm specific phase.
}

// Algorithm keys accepted by New.
const (
	KeyAldousBroder       = "aldous-broder"
	KeyWilson             = "wilson"
	KeyAldousBroderWilson = "aldous-broder-wilson"
	KeyRecursiveBacktrack = "recursive-backtracking"
	KeyRecursiveDivision  = "recursive-division"
	KeyBinaryTree         = "binary-tree"
	KeyKruskal            = "kruskal"
	KeyPrim               = "prim"
	KeySidewinder         = "sidewinder"
	KeyHuntAndKill        = "hunt-and-kill"
	KeyGrowingTree        = "growing-tree"
	KeyClusterDivision    = "cluster-division"
	KeyEller              = "eller"
)

type factory func(grid *maze.Grid, opts Options, rng maze.Rand) (Generator, error)

var registry = map[string]factory{
	KeyAldousBroder: func(g *maze.Grid, _ Options, rng maze.Rand) (Generator, error) {
		return NewAldousBroder(g, rng), nil
	},
	KeyWilson: func(g *maze.Grid, _ Options, rng maze.Rand) (Generator, error) {
		return NewWilson(g, rng), nil
	},
	KeyAldousBroderWilson: func(g *maze.Grid, o Options, rng maze.Rand) (Generator, error) {
		return NewAldousBroderWilson(g, o.HybridThreshold, rng)
	},
	KeyRecursiveBacktrack: func(g *maze.Grid, _ Options, rng maze.Rand) (Generator, error) {
		return NewRecursiveBacktracking(g, rng), nil
	},
	KeyRecursiveDivision: func(g *maze.Grid, o Options, rng maze.Rand) (Generator, error) {
		return NewRecursiveDivision(g, o.GraphTraversal, rng)
	},
	KeyBinaryTree: func(g *maze.Grid, o Options, rng maze.Rand) (Generator, error) {
		return NewBinaryTree(g, *o.HorizontalCarve, *o.VerticalCarve, rng)
	},
	KeyKruskal: func(g *maze.Grid, _ Options, rng maze.Rand) (Generator, error) {
		return NewKruskal(g, rng), nil
	},
	KeyPrim: func(g *maze.Grid, _ Options, rng maze.Rand) (Generator, error) {
		return NewPrim(g, rng), nil
	},
	KeySidewinder: func(g *maze.Grid, _ Options, rng maze.Rand) (Generator, error) {
		return NewSidewinder(g, rng), nil
	},
	KeyHuntAndKill: func(g *maze.Grid, _ Options, rng maze.Rand) (Generator, error) {
		return NewHuntAndKill(g, rng), nil
	},
	KeyGrowingTree: func(g *maze.Grid, o Options, rng maze.Rand) (Generator, error) {
		return NewGrowingTree(g, o.PickingStyle, rng)
	},
	KeyClusterDivision: func(g *maze.Grid, o Options, rng maze.Rand) (Generator, error) {
		return NewClusterDivision(g, o.GraphTraversal, o.MaximumRoomSize, rng)
	},
	KeyEller: func(g *maze.Grid, _ Options, rng maze.Rand) (Generator, error) {
		return NewEller(g, rng), nil
	},
}

// Keys returns the registered algorithm keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// New resets grid and returns the generator registered under key. Zero valued
// options fall back to DefaultOptions.
// Unknown keys and invalid options yield an error wrapping maze.ErrConfiguration.
func New(key string, grid *maze.Grid, opts Options, rng maze.Rand) (Generator, error) {
	build, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown generator %q", maze.ErrConfiguration, key)
	}
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	grid.Reset()
	return build(grid, opts, rng)
}

// validDirections returns the directions leading to an in-bound neighbor.
func validDirections(g *maze.Grid, index int) []maze.Direction {
	result := make([]maze.Direction, 0, 4)
	for _, d := range maze.Directions {
		if _, ok := g.NeighborIndex(index, d); ok {
			result = append(result, d)
		}
	}
	return result
}

// unopenedNeighbors returns the directions leading to a neighbor not yet in the maze.
func unopenedNeighbors(g *maze.Grid, index int) []maze.Direction {
	result := make([]maze.Direction, 0, 4)
	for _, d := range maze.Directions {
		if n, ok := g.NeighborIndex(index, d); ok && !g.Cell(n).Open {
			result = append(result, d)
		}
	}
	return result
}

// openedNeighbors returns the directions leading to a neighbor already in the maze.
func openedNeighbors(g *maze.Grid, index int) []maze.Direction {
	result := make([]maze.Direction, 0, 4)
	for _, d := range maze.Directions {
		if n, ok := g.NeighborIndex(index, d); ok && g.Cell(n).Open {
			result = append(result, d)
		}
	}
	return result
}

func pickDirection(rng maze.Rand, dirs []maze.Direction) maze.Direction {
	return dirs[rng.Intn(len(dirs))]
}

// openAll clears every interior wall and opens every cell, the starting
// state of the division algorithms.
func openAll(g *maze.Grid) {
	for i := 0; i < g.Len(); i++ {
		g.Cell(i).Open = true
		g.Carve(i, maze.East)
		g.Carve(i, maze.South)
	}
}

func rowIndices(g *maze.Grid, y int) []int {
	result := make([]int, g.ColCnt)
	for x := range result {
		result[x] = g.Index(x, y)
	}
	return result
}

func cloneInts(s []int) []int {
	return slices.Clone(s)
}
