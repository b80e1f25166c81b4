package generator

import (
	"fmt"

	"github.com/beka-birhanu/mazelab/maze"
)

// BinaryTree visits cells in raster order and carves each one toward one of
// two fixed directions. The result is biased toward those directions.
type BinaryTree struct {
	grid       *maze.Grid
	rng        maze.Rand
	horizontal maze.Direction
	vertical   maze.Direction
	cursor     int
}

// NewBinaryTree carves toward horizontal (East or West) or vertical (North or South).
func NewBinaryTree(grid *maze.Grid, horizontal, vertical maze.Direction, rng maze.Rand) (*BinaryTree, error) {
	if horizontal != maze.East && horizontal != maze.West {
		return nil, fmt.Errorf("%w: horizontal carve must be East or West, got %v", maze.ErrConfiguration, horizontal)
	}
	if vertical != maze.North && vertical != maze.South {
		return nil, fmt.Errorf("%w: vertical carve must be North or South, got %v", maze.ErrConfiguration, vertical)
	}
	return &BinaryTree{
		grid:       grid,
		rng:        rng,
		horizontal: horizontal,
		vertical:   vertical,
	}, nil
}

// Step processes the next cell of the raster scan.
func (b *BinaryTree) Step() {
	if b.IsComplete() {
		return
	}

	index := b.cursor
	b.cursor++
	b.grid.Cell(index).Open = true

	candidates := make([]maze.Direction, 0, 2)
	for _, d := range [2]maze.Direction{b.horizontal, b.vertical} {
		if _, ok := b.grid.NeighborIndex(index, d); ok {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) > 0 {
		b.grid.Carve(index, pickDirection(b.rng, candidates))
	}
}

// IsComplete reports whether the raster scan is exhausted.
func (b *BinaryTree) IsComplete() bool {
	return b.cursor >= b.grid.Len()
}

// Snapshot implements Generator.
func (b *BinaryTree) Snapshot() Snapshot {
	if b.IsComplete() {
		return Snapshot{}
	}
	return Snapshot{Heads: []int{b.cursor}}
}
