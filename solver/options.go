package solver

import (
	"fmt"
	"math"

	"github.com/beka-birhanu/mazelab/generator"
	"github.com/beka-birhanu/mazelab/maze"
)

// Heuristic names the distance estimate A* uses toward the destination.
type Heuristic string

const (
	Taxicab   Heuristic = "taxicab"
	Euclidean Heuristic = "euclidean"
	Chebyshev Heuristic = "chebyshev"
)

// Options holds the named options of every solver.
type Options struct {
	GraphTraversal    generator.Traversal // GraphSearch frontier order.
	HeuristicDistance Heuristic           // A* distance estimate.
}

// DefaultOptions returns breadth-first search and the taxicab heuristic.
func DefaultOptions() Options {
	return Options{
		GraphTraversal:    generator.BFS,
		HeuristicDistance: Taxicab,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.GraphTraversal == "" {
		o.GraphTraversal = def.GraphTraversal
	}
	if o.HeuristicDistance == "" {
		o.HeuristicDistance = def.HeuristicDistance
	}
	return o
}

// Validate checks the options for unknown names.
func (o Options) Validate() error {
	if err := validateTraversal(o.GraphTraversal); err != nil {
		return err
	}
	_, err := distanceFunc(o.HeuristicDistance)
	return err
}

func validateTraversal(t generator.Traversal) error {
	if t != generator.BFS && t != generator.DFS {
		return fmt.Errorf("%w: unknown graph traversal %q", maze.ErrConfiguration, t)
	}
	return nil
}

func distanceFunc(h Heuristic) (func(dx, dy float64) float64, error) {
	switch h {
	case Taxicab:
		return func(dx, dy float64) float64 { return dx + dy }, nil
	case Euclidean:
		return func(dx, dy float64) float64 { return math.Hypot(dx, dy) }, nil
	case Chebyshev:
		return func(dx, dy float64) float64 { return math.Max(dx, dy) }, nil
	}
	return nil, fmt.Errorf("%w: unknown heuristic %q", maze.ErrConfiguration, h)
}
