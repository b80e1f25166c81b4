package generator

import "github.com/beka-birhanu/mazelab/maze"

// Wilson grows a uniform spanning tree with loop-erased random walks.
//
// A walk starts at a random unopened cell and records, for every cell it
// leaves, the direction it left in. Revisiting a cell overwrites that record,
// which erases the loop implicitly. Once the walk touches the maze, following
// the records from the walk's start traces the loop-free path, which is
// carved in one step.
type Wilson struct {
	grid      *maze.Grid
	rng       maze.Rand
	unvisited []int // unopened cells
	position  []int // position of a cell in unvisited, -1 once opened
	next      []maze.Direction
	walking   bool
	walkStart int
	current   int
}

// NewWilson creates a Wilson's generator. Cells already open in grid count
// as part of the maze; on an untouched grid a random cell becomes the root.
func NewWilson(grid *maze.Grid, rng maze.Rand) *Wilson {
	w := &Wilson{
		grid:     grid,
		rng:      rng,
		position: make([]int, grid.Len()),
		next:     make([]maze.Direction, grid.Len()),
	}
	for i := 0; i < grid.Len(); i++ {
		w.position[i] = -1
		if !grid.Cell(i).Open {
			w.position[i] = len(w.unvisited)
			w.unvisited = append(w.unvisited, i)
		}
	}

	if len(w.unvisited) == grid.Len() {
		root := w.unvisited[rng.Intn(len(w.unvisited))]
		grid.Cell(root).Open = true
		w.remove(root)
	}
	return w
}

// remove drops an opened cell from the unvisited list.
func (w *Wilson) remove(index int) {
	pos := w.position[index]
	if pos < 0 {
		return
	}
	last := w.unvisited[len(w.unvisited)-1]
	w.unvisited[pos] = last
	w.position[last] = pos
	w.unvisited = w.unvisited[:len(w.unvisited)-1]
	w.position[index] = -1
}

// Step extends the current walk by one cell, starting a new walk when none
// is active. A walk that reaches the maze is carved into it.
func (w *Wilson) Step() {
	if w.IsComplete() {
		return
	}

	if !w.walking {
		w.walkStart = w.unvisited[w.rng.Intn(len(w.unvisited))]
		w.current = w.walkStart
		w.walking = true
	}

	d := pickDirection(w.rng, validDirections(w.grid, w.current))
	w.next[w.current] = d
	w.current, _ = w.grid.NeighborIndex(w.current, d)

	if w.grid.Cell(w.current).Open {
		for _, cell := range w.walk() {
			w.grid.Carve(cell, w.next[cell])
			w.remove(cell)
		}
		w.walking = false
	}
}

// walk follows the recorded directions from the walk's start up to the
// current cell or the first opened cell, whichever comes first.
func (w *Wilson) walk() []int {
	var path []int
	cell := w.walkStart
	for steps := 0; steps < w.grid.Len(); steps++ {
		if cell == w.current || w.grid.Cell(cell).Open {
			break
		}
		path = append(path, cell)
		cell, _ = w.grid.NeighborIndex(cell, w.next[cell])
	}
	return path
}

// IsComplete reports whether every cell joined the maze.
func (w *Wilson) IsComplete() bool {
	return len(w.unvisited) == 0
}

// Snapshot implements Generator.
func (w *Wilson) Snapshot() Snapshot {
	if !w.walking {
		return Snapshot{}
	}
	return Snapshot{
		Heads: []int{w.current},
		Stack: w.walk(),
	}
}
