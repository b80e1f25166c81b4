package maze

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the generator and solver engines.
var (
	// ErrConfiguration reports an unknown algorithm key or an invalid option.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnsolvable reports a solver that ran out of work before reaching its destination.
	ErrUnsolvable = errors.New("unsolvable maze")

	// ErrStructural reports a broken internal invariant.
	ErrStructural = errors.New("structural assertion failed")

	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrOutOfBounds       = errors.New("cell index out of bounds")
)

// Assert panics with an ErrStructural error when cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("%w: %s", ErrStructural, fmt.Sprintf(format, args...)))
	}
}
