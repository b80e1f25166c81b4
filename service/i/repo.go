package i

import (
	"context"

	dmn "github.com/beka-birhanu/mazelab/domain"
	"github.com/google/uuid"
)

// MazeRepo defines the interface for saved maze persistence operations.
type MazeRepo interface {
	// Save inserts or updates a maze in the repository.
	// If the maze already exists, it updates the record. Otherwise, it creates a new one.
	Save(ctx context.Context, m *dmn.SavedMaze) error

	// ByID retrieves a maze by its unique ID.
	// Returns dmn.ErrMazeNotFound if there is none.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.SavedMaze, error)

	// ByFingerprint retrieves the maze with the given wall layout fingerprint.
	// Returns dmn.ErrMazeNotFound if there is none.
	ByFingerprint(ctx context.Context, fingerprint string) (*dmn.SavedMaze, error)
}
