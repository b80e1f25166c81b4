package i

import (
	"context"

	dmn "github.com/beka-birhanu/mazelab/domain"
	"github.com/google/uuid"
)

// Lab owns generation and solve runs and advances them on request.
type Lab interface {
	// CreateMaze starts a generation run and returns its state with a run token.
	CreateMaze(spec dmn.MazeSpec) (*dmn.RunState, error)

	// Solve starts a solve run over the finished maze of run mazeID.
	Solve(mazeID uuid.UUID, spec dmn.SolveSpec) (*dmn.RunState, error)

	// Load starts a finished maze run from a saved maze.
	Load(ctx context.Context, savedID uuid.UUID) (*dmn.RunState, error)

	// Step advances run id by up to n steps.
	Step(ctx context.Context, id uuid.UUID, n int) (*dmn.RunState, error)

	// State returns the current state of run id.
	State(id uuid.UUID) (*dmn.RunState, error)

	// Discard drops run id.
	Discard(id uuid.UUID) error

	// Export serializes a finished run.
	Export(id uuid.UUID) (*dmn.Export, error)

	// Save stores the finished maze of run id and returns the saved maze ID.
	// A maze with the same walls is stored once.
	Save(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	// Leaderboard returns the best solves of the maze of run id.
	Leaderboard(ctx context.Context, id uuid.UUID, n int64) ([]dmn.Score, error)

	// Algorithms lists the generator and solver keys.
	Algorithms() dmn.Algorithms
}
