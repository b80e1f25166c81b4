package generator

import (
	"fmt"

	"github.com/beka-birhanu/mazelab/maze"
)

// Traversal selects the chamber order of the division algorithms.
type Traversal string

const (
	BFS Traversal = "bfs" // Split chambers first-in first-out.
	DFS Traversal = "dfs" // Split chambers last-in first-out.
)

// PickingStyle selects which bag cell the growing tree works on.
type PickingStyle string

const (
	Newest PickingStyle = "newest"
	Oldest PickingStyle = "oldest"
	Random PickingStyle = "random"
	Middle PickingStyle = "middle"
)

// pickingStyles fixes the iteration order of a weight mixture so a seed
// always resolves to the same style.
var pickingStyles = []PickingStyle{Newest, Oldest, Random, Middle}

// Options holds the named options of every algorithm. Each algorithm reads
// only the fields it needs.
type Options struct {
	GraphTraversal  Traversal                // Recursive/Cluster Division chamber order.
	MaximumRoomSize int                      // Cluster Division stops splitting regions at or below this size.
	HorizontalCarve *maze.Direction          // Binary Tree east/west bias.
	VerticalCarve   *maze.Direction          // Binary Tree north/south bias.
	PickingStyle    map[PickingStyle]float64 // Growing Tree strategy weights.
	HybridThreshold float64                  // Open fraction at which Aldous-Broder hands over to Wilson's.
	CarveChance     float64                  // Reserved.
}

// DefaultOptions returns the options used when a caller does not override them.
func DefaultOptions() Options {
	east, south := maze.East, maze.South
	return Options{
		GraphTraversal:  DFS,
		MaximumRoomSize: 1,
		HorizontalCarve: &east,
		VerticalCarve:   &south,
		PickingStyle:    map[PickingStyle]float64{Newest: 1},
		HybridThreshold: 0.5,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.GraphTraversal == "" {
		o.GraphTraversal = def.GraphTraversal
	}
	if o.MaximumRoomSize == 0 {
		o.MaximumRoomSize = def.MaximumRoomSize
	}
	if o.HorizontalCarve == nil {
		o.HorizontalCarve = def.HorizontalCarve
	}
	if o.VerticalCarve == nil {
		o.VerticalCarve = def.VerticalCarve
	}
	if o.PickingStyle == nil {
		o.PickingStyle = def.PickingStyle
	}
	if o.HybridThreshold == 0 {
		o.HybridThreshold = def.HybridThreshold
	}
	return o
}

// Validate checks the options for values no algorithm can run with.
func (o Options) Validate() error {
	switch o.GraphTraversal {
	case BFS, DFS:
	default:
		return fmt.Errorf("%w: unknown graph traversal %q", maze.ErrConfiguration, o.GraphTraversal)
	}

	if o.MaximumRoomSize < 1 {
		return fmt.Errorf("%w: maximum room size must be positive, got %d", maze.ErrConfiguration, o.MaximumRoomSize)
	}

	if o.HybridThreshold <= 0 || o.HybridThreshold > 1 {
		return fmt.Errorf("%w: hybrid threshold must be in (0, 1], got %v", maze.ErrConfiguration, o.HybridThreshold)
	}

	if o.CarveChance < 0 || o.CarveChance > 1 {
		return fmt.Errorf("%w: carve chance must be in [0, 1], got %v", maze.ErrConfiguration, o.CarveChance)
	}

	return validatePickingStyle(o.PickingStyle)
}

func validatePickingStyle(weights map[PickingStyle]float64) error {
	total := 0.0
	for style, w := range weights {
		known := false
		for _, s := range pickingStyles {
			if s == style {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: unknown picking style %q", maze.ErrConfiguration, style)
		}
		if w < 0 {
			return fmt.Errorf("%w: picking style %q has negative weight", maze.ErrConfiguration, style)
		}
		total += w
	}

	if total <= 0 {
		return fmt.Errorf("%w: picking style weights must sum above zero", maze.ErrConfiguration)
	}
	return nil
}
