package generator

import (
	"fmt"

	"github.com/beka-birhanu/mazelab/maze"
)

// AldousBroderWilson runs Aldous-Broder while the maze is sparse, where its
// walk finds new cells quickly, then hands over to Wilson's for the rest.
// The hand-over happens once and is never reversed.
type AldousBroderWilson struct {
	grid      *maze.Grid
	rng       maze.Rand
	threshold float64
	walker    *AldousBroder
	wilson    *Wilson
}

// NewAldousBroderWilson switches to Wilson's once threshold of the cells are open.
func NewAldousBroderWilson(grid *maze.Grid, threshold float64, rng maze.Rand) (*AldousBroderWilson, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: hybrid threshold must be in (0, 1], got %v", maze.ErrConfiguration, threshold)
	}
	return &AldousBroderWilson{
		grid:      grid,
		rng:       rng,
		threshold: threshold,
		walker:    NewAldousBroder(grid, rng),
	}, nil
}

// Step advances whichever algorithm is active.
func (h *AldousBroderWilson) Step() {
	if h.wilson != nil {
		h.wilson.Step()
		return
	}

	h.walker.Step()
	if h.walker.IsComplete() || h.walker.OpenFraction() >= h.threshold {
		h.wilson = NewWilson(h.grid, h.rng)
	}
}

// IsComplete reports whether the Wilson phase finished.
func (h *AldousBroderWilson) IsComplete() bool {
	return h.wilson != nil && h.wilson.IsComplete()
}

// Snapshot implements Generator.
func (h *AldousBroderWilson) Snapshot() Snapshot {
	if h.wilson != nil {
		s := h.wilson.Snapshot()
		s.Phase = 1
		return s
	}
	return h.walker.Snapshot()
}
