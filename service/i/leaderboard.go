package i

import (
	"context"

	dmn "github.com/beka-birhanu/mazelab/domain"
)

// Leaderboard keeps the best step count per member of a board.
type Leaderboard interface {
	// Record stores steps for member unless the member already has an equal or better score.
	// It reports whether the score was stored.
	Record(ctx context.Context, board, member string, steps int) (bool, error)

	// Top returns up to n entries of board, fewest steps first.
	Top(ctx context.Context, board string, n int64) ([]dmn.Score, error)
}
