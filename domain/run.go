// Package domain holds the records exchanged between the lab service, its
// storage and its HTTP surface.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/mazelab/export"
	"github.com/beka-birhanu/mazelab/generator"
	"github.com/beka-birhanu/mazelab/solver"
	"github.com/google/uuid"
)

// ErrMazeNotFound is returned by maze storage when no maze matches a lookup.
var ErrMazeNotFound = errors.New("maze not found")

// ErrMazeExists is returned by maze storage when a maze with the same wall
// layout is already stored.
var ErrMazeExists = errors.New("maze already saved")

// RunKind tells generation runs from solve runs.
type RunKind string

const (
	KindMaze  RunKind = "maze"
	KindSolve RunKind = "solve"
)

// MazeSpec describes a generation run.
type MazeSpec struct {
	Cols      int
	Rows      int
	Algorithm string
	Seed      int64 // Zero picks a seed; the chosen one is reported back.
	Options   generator.Options
}

// SolveSpec describes a solve run over a finished maze.
type SolveSpec struct {
	Algorithm string
	Start     int
	Dest      int
	Seed      int64
	Options   solver.Options
}

// RunState is the observable state of a run.
type RunState struct {
	ID        uuid.UUID `json:"id"`
	Kind      RunKind   `json:"kind"`
	MazeID    uuid.UUID `json:"mazeId"` // Maze a solve run works on; the run itself for maze runs.
	Algorithm string    `json:"algorithm"`
	Seed      int64     `json:"seed"`
	Cols      int       `json:"cols"`
	Rows      int       `json:"rows"`
	Steps     int       `json:"steps"`
	Complete  bool      `json:"complete"`
	Snapshot  any       `json:"snapshot,omitempty"`
	Path      []int     `json:"path,omitempty"`
	Error     string    `json:"error,omitempty"`
	Token     string    `json:"token,omitempty"` // Set only when the run is created.
}

// Export bundles the serializations of a finished run.
type Export struct {
	Maze  export.Maze   `json:"maze"`
	Graph *export.Graph `json:"graph,omitempty"` // Room graph of a room-decomposition solve.
}

// SavedMaze is a finished maze kept in storage.
type SavedMaze struct {
	ID        uuid.UUID   `bson:"_id"`
	Algorithm string      `bson:"algorithm"`
	Seed      int64       `bson:"seed"`
	Maze      export.Maze `bson:"maze"`
	CreatedAt time.Time   `bson:"createdAt"`
}

// Score is one leaderboard entry: the fewest steps a solver needed.
type Score struct {
	Member string `json:"member"`
	Steps  int    `json:"steps"`
}

// Algorithms lists the registered algorithm keys.
type Algorithms struct {
	Generators []string `json:"generators"`
	Solvers    []string `json:"solvers"`
}
