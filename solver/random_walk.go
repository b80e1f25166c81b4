package solver

import "github.com/beka-birhanu/mazelab/maze"

// RandomWalk wanders to a random passage neighbor every step until it lands
// on the destination. It has no cycle protection and no step bound: on a
// maze where the destination is unreachable it walks forever, and the host
// decides when to give up.
type RandomWalk struct {
	base
	rng     maze.Rand
	parent  []int // first-visit tree
	current int
	steps   int
}

// NewRandomWalk places the walker on start.
func NewRandomWalk(grid *maze.Grid, start, dest int, rng maze.Rand) *RandomWalk {
	return &RandomWalk{
		base:    newBase(grid, start, dest),
		rng:     rng,
		parent:  newParents(grid.Len()),
		current: start,
	}
}

// Step moves the walker once.
func (w *RandomWalk) Step() {
	if w.done {
		return
	}

	next := w.grid.Passages(w.current)
	if len(next) == 0 {
		w.fail("cell %d has no passage", w.current)
		return
	}

	n := next[w.rng.Intn(len(next))]
	if n != w.start && w.parent[n] < 0 {
		w.parent[n] = w.current
	}
	w.current = n
	w.steps++

	if n == w.dest {
		w.finish(tracePath(w.parent, w.start, w.dest))
	}
}

// Moves returns the number of moves made so far.
func (w *RandomWalk) Moves() int {
	return w.steps
}

// Snapshot implements Solver.
func (w *RandomWalk) Snapshot() Snapshot {
	return Snapshot{Heads: []int{w.current}, Path: w.path}
}
