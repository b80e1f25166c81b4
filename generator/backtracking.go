package generator

import "github.com/beka-birhanu/mazelab/maze"

// frame is one cell on the backtracking stack with the directions it has
// not tried yet, shuffled once when the frame is pushed.
type frame struct {
	index int
	dirs  []maze.Direction
}

// RecursiveBacktracking carves a depth-first random walk, backing up when a
// cell has no unopened neighbor left.
type RecursiveBacktracking struct {
	grid  *maze.Grid
	rng   maze.Rand
	stack []frame
}

// NewRecursiveBacktracking starts the walk on a random cell.
func NewRecursiveBacktracking(grid *maze.Grid, rng maze.Rand) *RecursiveBacktracking {
	b := &RecursiveBacktracking{grid: grid, rng: rng}
	start := rng.Intn(grid.Len())
	grid.Cell(start).Open = true
	b.push(start)
	return b
}

func (b *RecursiveBacktracking) push(index int) {
	dirs := []maze.Direction{maze.North, maze.East, maze.South, maze.West}
	b.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
	b.stack = append(b.stack, frame{index: index, dirs: dirs})
}

// Step consumes one untried direction of the top cell, carving and pushing
// when it leads to an unopened cell. A cell with no direction left is popped.
func (b *RecursiveBacktracking) Step() {
	if b.IsComplete() {
		return
	}

	top := &b.stack[len(b.stack)-1]
	if len(top.dirs) == 0 {
		b.stack = b.stack[:len(b.stack)-1]
		return
	}

	d := top.dirs[len(top.dirs)-1]
	top.dirs = top.dirs[:len(top.dirs)-1]

	n, ok := b.grid.NeighborIndex(top.index, d)
	if !ok || b.grid.Cell(n).Open {
		return
	}
	b.grid.Carve(top.index, d)
	b.push(n)
}

// IsComplete reports whether the stack is empty.
func (b *RecursiveBacktracking) IsComplete() bool {
	return len(b.stack) == 0
}

// Snapshot implements Generator.
func (b *RecursiveBacktracking) Snapshot() Snapshot {
	s := Snapshot{Stack: make([]int, len(b.stack))}
	for i, f := range b.stack {
		s.Stack[i] = f.index
	}
	if len(b.stack) > 0 {
		s.Heads = []int{b.stack[len(b.stack)-1].index}
	}
	return s
}
