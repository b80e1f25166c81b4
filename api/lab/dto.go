// Package labapi exposes maze generation and solve runs over HTTP.
package labapi

import (
	dmn "github.com/beka-birhanu/mazelab/domain"
	"github.com/beka-birhanu/mazelab/generator"
	"github.com/beka-birhanu/mazelab/maze"
	"github.com/beka-birhanu/mazelab/solver"
	"github.com/google/uuid"
)

// GeneratorOptions carries the named generator options. Empty fields use the defaults.
type GeneratorOptions struct {
	GraphTraversal  string             `json:"graphTraversal"`
	MaximumRoomSize int                `json:"maximumRoomSize"`
	HorizontalCarve string             `json:"horizontalCarve"`
	VerticalCarve   string             `json:"verticalCarve"`
	PickingStyle    map[string]float64 `json:"pickingStyle"`
	HybridThreshold float64            `json:"hybridThreshold"`
	CarveChance     float64            `json:"carveChance"`
}

// CreateMazeRequest represents a request to start a generation run.
type CreateMazeRequest struct {
	Cols      int              `json:"cols" binding:"required,min=1"`
	Rows      int              `json:"rows" binding:"required,min=1"`
	Algorithm string           `json:"algorithm" binding:"required"`
	Seed      int64            `json:"seed"`
	Options   GeneratorOptions `json:"options"`
}

// SolveRequest represents a request to start a solve run.
type SolveRequest struct {
	Algorithm         string `json:"algorithm" binding:"required"`
	Start             *int   `json:"start" binding:"required,min=0"`
	Dest              *int   `json:"dest" binding:"required,min=0"`
	Seed              int64  `json:"seed"`
	GraphTraversal    string `json:"graphTraversal"`
	HeuristicDistance string `json:"heuristicDistance"`
}

// StepRequest represents a request to advance a run.
type StepRequest struct {
	Steps int `json:"steps" binding:"min=0"`
}

// SaveResponse names the saved maze a run was stored as.
type SaveResponse struct {
	SavedID uuid.UUID `json:"savedId"`
}

// Spec converts the request into a generation spec.
func (r *CreateMazeRequest) Spec() (dmn.MazeSpec, error) {
	opts, err := r.Options.options()
	if err != nil {
		return dmn.MazeSpec{}, err
	}
	return dmn.MazeSpec{
		Cols:      r.Cols,
		Rows:      r.Rows,
		Algorithm: r.Algorithm,
		Seed:      r.Seed,
		Options:   opts,
	}, nil
}

func (o GeneratorOptions) options() (generator.Options, error) {
	opts := generator.Options{
		GraphTraversal:  generator.Traversal(o.GraphTraversal),
		MaximumRoomSize: o.MaximumRoomSize,
		HybridThreshold: o.HybridThreshold,
		CarveChance:     o.CarveChance,
	}

	var err error
	if opts.HorizontalCarve, err = parseCarve(o.HorizontalCarve); err != nil {
		return generator.Options{}, err
	}
	if opts.VerticalCarve, err = parseCarve(o.VerticalCarve); err != nil {
		return generator.Options{}, err
	}

	if len(o.PickingStyle) > 0 {
		opts.PickingStyle = make(map[generator.PickingStyle]float64, len(o.PickingStyle))
		for style, w := range o.PickingStyle {
			opts.PickingStyle[generator.PickingStyle(style)] = w
		}
	}
	return opts, nil
}

// parseCarve returns nil for an empty name so the generator default applies.
func parseCarve(name string) (*maze.Direction, error) {
	if name == "" {
		return nil, nil
	}
	d, err := maze.ParseDirection(name)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Spec converts the request into a solve spec.
func (r *SolveRequest) Spec() dmn.SolveSpec {
	return dmn.SolveSpec{
		Algorithm: r.Algorithm,
		Start:     *r.Start,
		Dest:      *r.Dest,
		Seed:      r.Seed,
		Options: solver.Options{
			GraphTraversal:    generator.Traversal(r.GraphTraversal),
			HeuristicDistance: solver.Heuristic(r.HeuristicDistance),
		},
	}
}
