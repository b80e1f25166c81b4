package generator

import "github.com/beka-birhanu/mazelab/maze"

// AldousBroder random-walks the grid and carves into every cell it enters for
// the first time. It yields a uniform spanning tree, slowly.
type AldousBroder struct {
	grid    *maze.Grid
	rng     maze.Rand
	current int
	opened  int
}

// NewAldousBroder starts a walker on a random cell of grid.
func NewAldousBroder(grid *maze.Grid, rng maze.Rand) *AldousBroder {
	start := rng.Intn(grid.Len())
	grid.Cell(start).Open = true
	return &AldousBroder{
		grid:    grid,
		rng:     rng,
		current: start,
		opened:  grid.OpenCount(),
	}
}

// Step moves the walker to a random neighbor, carving if it was unopened.
func (a *AldousBroder) Step() {
	if a.IsComplete() {
		return
	}

	d := pickDirection(a.rng, validDirections(a.grid, a.current))
	n, _ := a.grid.NeighborIndex(a.current, d)
	if !a.grid.Cell(n).Open {
		a.grid.Carve(a.current, d)
		a.opened++
	}
	a.current = n
}

// IsComplete reports whether every cell has been opened.
func (a *AldousBroder) IsComplete() bool {
	return a.opened >= a.grid.Len()
}

// OpenFraction returns the share of cells opened so far.
func (a *AldousBroder) OpenFraction() float64 {
	return float64(a.opened) / float64(a.grid.Len())
}

// Snapshot implements Generator.
func (a *AldousBroder) Snapshot() Snapshot {
	return Snapshot{Heads: []int{a.current}}
}
