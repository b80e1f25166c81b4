/*
Package solver provides step-driven maze solving algorithms.

Every solver implements Solver. A solver is built over a finished maze.Grid
with a start and a destination cell and never mutates the grid. Step does
one unit of search work; once IsComplete reports true, Path holds the route
from start to destination, or Err explains why there is none.
*/
package solver

import (
	"fmt"
	"sort"

	"github.com/beka-birhanu/mazelab/maze"
)

// Solver is the capability every maze solving algorithm exposes.
type Solver interface {
	// Step advances the search by one unit of work.
	Step()

	// IsComplete reports whether the search ended, with or without a path.
	IsComplete() bool

	// Path returns the cells from start to destination once complete, nil otherwise.
	Path() []int

	// Err returns the error that ended the search, if any.
	Err() error

	// Snapshot returns the indices a renderer needs to draw the current state.
	Snapshot() Snapshot
}

// Snapshot is a read-only view of a solver's working state.
type Snapshot struct {
	Heads    []int `json:"heads"`              // Cells currently being expanded.
	Frontier []int `json:"frontier,omitempty"` // Cells waiting to be expanded.
	Filled   []int `json:"filled,omitempty"`   // Cells ruled out of the route.
	Path     []int `json:"path,omitempty"`     // Route found so far or at completion.
	Phase    int   `json:"phase"`              // Algorithm specific phase.
}

// Algorithm keys accepted by New.
const (
	KeyGraphSearch       = "graph-search"
	KeyRandomWalk        = "random-walk"
	KeyAStar             = "a-star"
	KeyDeadEndFilling    = "dead-end-filling"
	KeyRoomDecomposition = "room-decomposition"
)

type factory func(grid *maze.Grid, start, dest int, opts Options, rng maze.Rand) (Solver, error)

var registry = map[string]factory{
	KeyGraphSearch: func(g *maze.Grid, start, dest int, o Options, _ maze.Rand) (Solver, error) {
		return NewGraphSearch(g, start, dest, o.GraphTraversal)
	},
	KeyRandomWalk: func(g *maze.Grid, start, dest int, _ Options, rng maze.Rand) (Solver, error) {
		return NewRandomWalk(g, start, dest, rng), nil
	},
	KeyAStar: func(g *maze.Grid, start, dest int, o Options, _ maze.Rand) (Solver, error) {
		return NewAStar(g, start, dest, o.HeuristicDistance)
	},
	KeyDeadEndFilling: func(g *maze.Grid, start, dest int, _ Options, _ maze.Rand) (Solver, error) {
		return NewDeadEndFilling(g, start, dest), nil
	},
	KeyRoomDecomposition: func(g *maze.Grid, start, dest int, _ Options, _ maze.Rand) (Solver, error) {
		return NewRoomDecomposition(g, start, dest)
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

// New returns the solver registered under key, searching grid from start to dest.
func New(key string, grid *maze.Grid, start, dest int, opts Options, rng maze.Rand) (Solver, error) {
	build, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown solver %q", maze.ErrConfiguration, key)
	}
	if err := grid.CheckIndex(start); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if err := grid.CheckIndex(dest); err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return build(grid, start, dest, opts, rng)
}

// base carries the state shared by every solver.
type base struct {
	grid  *maze.Grid
	start int
	dest  int
	done  bool
	path  []int
	err   error
}

func newBase(grid *maze.Grid, start, dest int) base {
	b := base{grid: grid, start: start, dest: dest}
	if start == dest {
		b.finish([]int{start})
	}
	return b
}

func (b *base) finish(path []int) {
	b.done = true
	b.path = path
}

func (b *base) fail(format string, args ...any) {
	b.done = true
	b.path = nil
	b.err = fmt.Errorf("%w: %s", maze.ErrUnsolvable, fmt.Sprintf(format, args...))
}

// IsComplete implements Solver.
func (b *base) IsComplete() bool { return b.done }

// Path implements Solver.
func (b *base) Path() []int { return b.path }

// Err implements Solver.
func (b *base) Err() error { return b.err }

// newParents returns a parent table with every entry unset.
func newParents(n int) []int {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	return parent
}

// tracePath walks parent links back from dest to start and returns the
// route in start-to-dest order.
func tracePath(parent []int, start, dest int) []int {
	path := []int{dest}
	for cell := dest; cell != start; {
		cell = parent[cell]
		maze.Assert(cell >= 0, "broken parent chain from %d to %d", dest, start)
		path = append(path, cell)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
