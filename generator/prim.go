package generator

import "github.com/beka-birhanu/mazelab/maze"

// Prim grows the maze from a random cell by attaching random frontier cells
// to a random opened neighbor.
type Prim struct {
	grid       *maze.Grid
	rng        maze.Rand
	frontier   []int
	inFrontier []bool
	last       int
}

// NewPrim opens a random cell and seeds the frontier with its neighbors.
func NewPrim(grid *maze.Grid, rng maze.Rand) *Prim {
	p := &Prim{
		grid:       grid,
		rng:        rng,
		inFrontier: make([]bool, grid.Len()),
	}
	start := rng.Intn(grid.Len())
	grid.Cell(start).Open = true
	p.last = start
	p.expand(start)
	return p
}

// expand adds the unopened neighbors of index to the frontier, skipping
// cells already on it.
func (p *Prim) expand(index int) {
	for _, n := range p.grid.Neighbors(index) {
		if !p.grid.Cell(n).Open && !p.inFrontier[n] {
			p.inFrontier[n] = true
			p.frontier = append(p.frontier, n)
		}
	}
}

// Step carves one random frontier cell into the maze.
func (p *Prim) Step() {
	if p.IsComplete() {
		return
	}

	k := p.rng.Intn(len(p.frontier))
	cell := p.frontier[k]
	p.frontier[k] = p.frontier[len(p.frontier)-1]
	p.frontier = p.frontier[:len(p.frontier)-1]
	p.inFrontier[cell] = false

	p.grid.Carve(cell, pickDirection(p.rng, openedNeighbors(p.grid, cell)))
	p.last = cell
	p.expand(cell)
}

// IsComplete reports whether the frontier is empty.
func (p *Prim) IsComplete() bool {
	return len(p.frontier) == 0
}

// Snapshot implements Generator.
func (p *Prim) Snapshot() Snapshot {
	return Snapshot{
		Heads:    []int{p.last},
		Frontier: cloneInts(p.frontier),
	}
}
