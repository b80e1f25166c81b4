package solver

import "github.com/beka-birhanu/mazelab/maze"

const (
	phaseScan = iota
	phaseChain
	phaseWalk
)

// DeadEndFilling fills dead ends until only the route is left, then walks it.
//
// The scan phase inspects one cell per step. Filling a dead end can only turn
// its single live neighbor into a new dead end, so the chain phase follows
// that neighbor until the chain stops, after which the scan resumes. One full
// scan therefore leaves no dead end behind. The walk phase then moves from
// start through cells that are neither filled nor already walked.
type DeadEndFilling struct {
	base
	phase   int
	cursor  int
	chain   int
	filled  []bool
	walked  []bool
	route   []int
	current int
}

// NewDeadEndFilling creates a dead-end filling solver from start to dest.
func NewDeadEndFilling(grid *maze.Grid, start, dest int) *DeadEndFilling {
	return &DeadEndFilling{
		base:    newBase(grid, start, dest),
		filled:  make([]bool, grid.Len()),
		walked:  make([]bool, grid.Len()),
		current: start,
	}
}

// live returns the passage neighbors of index that are not filled.
func (f *DeadEndFilling) live(index int) []int {
	result := f.grid.Passages(index)
	n := 0
	for _, c := range result {
		if !f.filled[c] {
			result[n] = c
			n++
		}
	}
	return result[:n]
}

func (f *DeadEndFilling) deadEnd(index int) bool {
	return index != f.start && index != f.dest && !f.filled[index] && len(f.live(index)) <= 1
}

// Step does one unit of work of the current phase.
func (f *DeadEndFilling) Step() {
	if f.done {
		return
	}

	switch f.phase {
	case phaseScan:
		f.scan()
	case phaseChain:
		f.follow()
	default:
		f.walk()
	}
}

func (f *DeadEndFilling) scan() {
	if f.cursor >= f.grid.Len() {
		f.phase = phaseWalk
		f.current = f.start
		f.walked[f.start] = true
		f.route = []int{f.start}
		return
	}

	index := f.cursor
	f.cursor++
	f.current = index
	if f.deadEnd(index) {
		f.filled[index] = true
		f.chain = index
		f.phase = phaseChain
	}
}

func (f *DeadEndFilling) follow() {
	next := f.live(f.chain)
	if len(next) == 1 && f.deadEnd(next[0]) {
		f.chain = next[0]
		f.current = f.chain
		f.filled[f.chain] = true
		return
	}
	f.phase = phaseScan
}

func (f *DeadEndFilling) walk() {
	if f.current == f.dest {
		f.finish(f.route)
		return
	}

	for _, n := range f.live(f.current) {
		if !f.walked[n] {
			f.walked[n] = true
			f.current = n
			f.route = append(f.route, n)
			if n == f.dest {
				f.finish(f.route)
			}
			return
		}
	}
	f.fail("walk stuck at cell %d", f.current)
}

// Snapshot implements Solver.
func (f *DeadEndFilling) Snapshot() Snapshot {
	snap := Snapshot{Heads: []int{f.current}, Phase: f.phase}
	for i, ok := range f.filled {
		if ok {
			snap.Filled = append(snap.Filled, i)
		}
	}
	if f.phase == phaseWalk {
		snap.Path = f.route
	}
	return snap
}
