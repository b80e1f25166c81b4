package solver

import (
	"container/heap"
	"math"

	"github.com/beka-birhanu/mazelab/maze"
)

// AStar expands the frontier cell with the lowest distance plus heuristic
// estimate. Every passage costs one move, so with any of the provided
// heuristics it returns a shortest route.
type AStar struct {
	base
	distance  []int
	estimated []float64
	parent    []int
	closed    []bool
	open      openSet
	seq       int
	current   int
}

// NewAStar creates an A* search from start to dest.
func NewAStar(grid *maze.Grid, start, dest int, heuristic Heuristic) (*AStar, error) {
	dist, err := distanceFunc(heuristic)
	if err != nil {
		return nil, err
	}

	a := &AStar{
		base:      newBase(grid, start, dest),
		distance:  make([]int, grid.Len()),
		estimated: make([]float64, grid.Len()),
		parent:    newParents(grid.Len()),
		closed:    make([]bool, grid.Len()),
		current:   start,
	}

	goal := grid.Cell(dest)
	for i := range a.distance {
		a.distance[i] = math.MaxInt
		c := grid.Cell(i)
		a.estimated[i] = dist(math.Abs(float64(c.X-goal.X)), math.Abs(float64(c.Y-goal.Y)))
	}

	heap.Init(&a.open)
	a.distance[start] = 0
	a.push(start)
	return a, nil
}

func (a *AStar) push(index int) {
	heap.Push(&a.open, &openItem{
		index:    index,
		priority: float64(a.distance[index]) + a.estimated[index],
		seq:      a.seq,
	})
	a.seq++
}

// Step closes the best open cell and relaxes its passage neighbors.
func (a *AStar) Step() {
	if a.done {
		return
	}

	// Entries superseded by a shorter distance stay in the heap and are skipped here.
	for a.open.Len() > 0 && a.closed[a.open[0].index] {
		heap.Pop(&a.open)
	}
	if a.open.Len() == 0 {
		a.fail("no route from %d to %d", a.start, a.dest)
		return
	}

	cell := heap.Pop(&a.open).(*openItem).index
	a.closed[cell] = true
	a.current = cell

	if cell == a.dest {
		a.finish(tracePath(a.parent, a.start, a.dest))
		return
	}

	for _, n := range a.grid.Passages(cell) {
		if a.closed[n] {
			continue
		}
		if d := a.distance[cell] + 1; d < a.distance[n] {
			a.distance[n] = d
			a.parent[n] = cell
			a.push(n)
		}
	}
}

// Snapshot implements Solver.
func (a *AStar) Snapshot() Snapshot {
	snap := Snapshot{Heads: []int{a.current}, Path: a.path}
	for _, item := range a.open {
		if !a.closed[item.index] {
			snap.Frontier = append(snap.Frontier, item.index)
		}
	}
	if !a.done {
		snap.Path = tracePath(a.parent, a.start, a.current)
	}
	return snap
}

type openItem struct {
	index    int
	priority float64
	seq      int
}

// openSet is a min-heap on priority; ties go to the earlier push.
type openSet []*openItem

func (s openSet) Len() int { return len(s) }
func (s openSet) Less(i, j int) bool {
	if s[i].priority != s[j].priority {
		return s[i].priority < s[j].priority
	}
	return s[i].seq < s[j].seq
}
func (s openSet) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s *openSet) Push(x any) {
	*s = append(*s, x.(*openItem))
}

func (s *openSet) Pop() any {
	old := *s
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*s = old[:n-1]
	return item
}
