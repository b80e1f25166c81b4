package solver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/beka-birhanu/mazelab/generator"
	"github.com/beka-birhanu/mazelab/maze"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stepLimit = 1_000_000

func generate(t *testing.T, key string, cols, rows int, opts generator.Options, seed int64) *maze.Grid {
	t.Helper()
	g, err := maze.NewGrid(cols, rows)
	require.NoError(t, err)
	gen, err := generator.New(key, g, opts, maze.NewRand(seed))
	require.NoError(t, err)
	for !gen.IsComplete() {
		gen.Step()
	}
	return g
}

func solve(t *testing.T, s Solver) {
	t.Helper()
	for steps := 0; !s.IsComplete(); steps++ {
		require.Less(t, steps, stepLimit, "solver did not complete")
		s.Step()
	}
	s.Step()
	require.True(t, s.IsComplete(), "completion reverted")
}

func requireValidPath(t *testing.T, g *maze.Grid, path []int, start, dest int) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0])
	assert.Equal(t, dest, path[len(path)-1])

	seen := make(map[int]bool)
	for i, cell := range path {
		require.False(t, seen[cell], "cell %d repeated", cell)
		seen[cell] = true
		if i > 0 {
			require.Contains(t, g.Passages(path[i-1]), cell, "no passage %d -> %d", path[i-1], cell)
		}
	}
}

func bfsPath(t *testing.T, g *maze.Grid, start, dest int) []int {
	t.Helper()
	s, err := NewGraphSearch(g, start, dest, generator.BFS)
	require.NoError(t, err)
	solve(t, s)
	require.NoError(t, s.Err())
	return s.Path()
}

func TestSolversOnPerfectMazes(t *testing.T) {
	opts := []Options{
		{GraphTraversal: generator.BFS},
		{GraphTraversal: generator.DFS},
		{HeuristicDistance: Euclidean},
		{HeuristicDistance: Chebyshev},
	}

	for _, key := range Keys() {
		for seed := int64(1); seed <= 4; seed++ {
			t.Run(fmt.Sprintf("%s/seed%d", key, seed), func(t *testing.T) {
				g := generate(t, generator.KeyRecursiveBacktrack, 9, 7, generator.Options{}, seed)
				start, dest := 0, g.Len()-1-int(seed)
				want := bfsPath(t, g, start, dest)

				for _, o := range opts {
					s, err := New(key, g, start, dest, o, maze.NewRand(seed))
					require.NoError(t, err)
					solve(t, s)
					require.NoError(t, s.Err())

					// A perfect maze holds exactly one simple path.
					requireValidPath(t, g, s.Path(), start, dest)
					if key != KeyRandomWalk {
						if diff := cmp.Diff(want, s.Path()); diff != "" {
							t.Errorf("%+v path mismatch (-bfs +got):\n%s", o, diff)
						}
					}
				}
			})
		}
	}
}

func TestSolversOnMazesWithLoops(t *testing.T) {
	keys := []string{KeyGraphSearch, KeyAStar, KeyRoomDecomposition}

	for _, key := range keys {
		for seed := int64(1); seed <= 5; seed++ {
			t.Run(fmt.Sprintf("%s/seed%d", key, seed), func(t *testing.T) {
				g := generate(t, generator.KeyClusterDivision, 10, 10, generator.Options{MaximumRoomSize: 8}, seed)
				start, dest := int(seed)*3, g.Len()-1
				want := bfsPath(t, g, start, dest)

				s, err := New(key, g, start, dest, Options{}, nil)
				require.NoError(t, err)
				solve(t, s)
				require.NoError(t, s.Err())
				requireValidPath(t, g, s.Path(), start, dest)

				if key == KeyAStar {
					assert.Len(t, s.Path(), len(want), "A* and BFS must agree on length")
				}
			})
		}
	}
}

func TestBackTrackingScenario(t *testing.T) {
	want := "" +
		"+---+---+---+---+---+\n" +
		"|           |       |\n" +
		"+   +---+   +---+   +\n" +
		"|   |   |       |   |\n" +
		"+---+   +---+   +   +\n" +
		"|   |           |   |\n" +
		"+   +   +---+---+   +\n" +
		"|   |   |       |   |\n" +
		"+   +   +   +   +   +\n" +
		"|           |       |\n" +
		"+---+---+---+---+---+\n"

	g := generate(t, generator.KeyRecursiveBacktrack, 5, 5, generator.Options{}, 42)
	require.Equal(t, want, g.String(), "seed 42 must reproduce the wall layout")
	require.True(t, g.Perfect())

	route := []int{0, 1, 2, 7, 8, 13, 12, 11, 16, 21, 22, 17, 18, 23, 24}
	assert.Equal(t, route, bfsPath(t, g, 0, 24))

	star, err := NewAStar(g, 0, 24, Taxicab)
	require.NoError(t, err)
	solve(t, star)
	assert.Equal(t, route, star.Path())
}

// disconnected returns a 3x3 maze whose right column is walled off.
func disconnected(t *testing.T) *maze.Grid {
	t.Helper()
	g, err := maze.NewGrid(3, 3)
	require.NoError(t, err)
	for _, c := range []int{0, 3} {
		g.Carve(c, maze.East)
		g.Carve(c, maze.South)
	}
	g.Carve(4, maze.South)
	g.Carve(6, maze.East)
	g.Carve(2, maze.South)
	g.Carve(5, maze.South)
	return g
}

func TestUnsolvable(t *testing.T) {
	for _, key := range []string{KeyGraphSearch, KeyAStar, KeyDeadEndFilling, KeyRoomDecomposition} {
		t.Run(key, func(t *testing.T) {
			g := disconnected(t)
			s, err := New(key, g, 0, 8, Options{}, nil)
			require.NoError(t, err)
			solve(t, s)

			assert.Nil(t, s.Path())
			assert.True(t, errors.Is(s.Err(), maze.ErrUnsolvable), "got %v", s.Err())
		})
	}
}

func TestRandomWalkWithoutPassages(t *testing.T) {
	g, err := maze.NewGrid(2, 2)
	require.NoError(t, err)

	s := NewRandomWalk(g, 0, 3, maze.NewRand(1))
	s.Step()
	assert.True(t, s.IsComplete())
	assert.True(t, errors.Is(s.Err(), maze.ErrUnsolvable))
}

func TestRandomWalkCountsMoves(t *testing.T) {
	g := generate(t, generator.KeyPrim, 4, 4, generator.Options{}, 3)
	s := NewRandomWalk(g, 0, 15, maze.NewRand(3))
	solve(t, s)

	require.NoError(t, s.Err())
	assert.GreaterOrEqual(t, s.Moves(), len(s.Path())-1)
}

func TestStartIsDestination(t *testing.T) {
	g := generate(t, generator.KeyKruskal, 3, 3, generator.Options{}, 1)
	for _, key := range Keys() {
		s, err := New(key, g, 4, 4, Options{}, maze.NewRand(1))
		require.NoError(t, err)
		assert.True(t, s.IsComplete(), key)
		assert.Equal(t, []int{4}, s.Path(), key)
	}
}

func TestNewRejectsBadConfiguration(t *testing.T) {
	g := generate(t, generator.KeyKruskal, 3, 3, generator.Options{}, 1)

	_, err := New("teleport", g, 0, 8, Options{}, nil)
	assert.True(t, errors.Is(err, maze.ErrConfiguration))

	_, err = New(KeyAStar, g, 0, 8, Options{HeuristicDistance: "manhattan"}, nil)
	assert.True(t, errors.Is(err, maze.ErrConfiguration))

	_, err = New(KeyGraphSearch, g, 0, 8, Options{GraphTraversal: "sideways"}, nil)
	assert.True(t, errors.Is(err, maze.ErrConfiguration))

	_, err = New(KeyGraphSearch, g, 0, 9, Options{}, nil)
	assert.True(t, errors.Is(err, maze.ErrOutOfBounds))

	_, err = New(KeyGraphSearch, g, -1, 8, Options{}, nil)
	assert.True(t, errors.Is(err, maze.ErrOutOfBounds))
}

func TestDeadEndFillingPhases(t *testing.T) {
	g := generate(t, generator.KeyWilson, 6, 6, generator.Options{}, 8)
	s := NewDeadEndFilling(g, 0, 35)

	last := phaseScan
	for !s.IsComplete() {
		s.Step()
		phase := s.Snapshot().Phase
		if last == phaseWalk {
			require.Equal(t, phaseWalk, phase, "the walk phase is final")
		}
		last = phase
	}
	assert.Equal(t, phaseWalk, last)

	// Everything off the route ends up filled.
	snap := s.Snapshot()
	assert.Len(t, snap.Filled, g.Len()-len(s.Path()))
}

func TestRoomDecompositionPhases(t *testing.T) {
	g := generate(t, generator.KeyClusterDivision, 8, 8, generator.Options{MaximumRoomSize: 6}, 4)
	s, err := NewRoomDecomposition(g, 0, 63)
	require.NoError(t, err)

	seen := map[int]bool{}
	last := phaseRooms
	for !s.IsComplete() {
		s.Step()
		phase := s.Snapshot().Phase
		require.GreaterOrEqual(t, phase, last, "phases only move forward")
		seen[phase] = true
		last = phase
	}

	require.NoError(t, s.Err())
	assert.True(t, seen[phaseFill])
	assert.True(t, seen[phaseTrace])
	require.NotNil(t, s.Graph())
	assert.NoError(t, s.Graph().Validate(g, 0))
	requireValidPath(t, g, s.Path(), 0, 63)
}

func TestRoomDecompositionFillsDeadRooms(t *testing.T) {
	// A corridor along the top row with a pocket {8, 9} hanging below cell 2.
	// The pocket room has a single edge, so it is filled.
	g, err := maze.NewGrid(6, 2)
	require.NoError(t, err)
	for x := 0; x < 5; x++ {
		g.Carve(x, maze.East)
	}
	g.Carve(2, maze.South)
	g.Carve(8, maze.East)

	s, err := NewRoomDecomposition(g, 0, 5)
	require.NoError(t, err)
	solve(t, s)
	require.NoError(t, s.Err())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, s.Path())

	room := s.Graph().IndexToRoom[8]
	assert.True(t, s.filledRoom[room])
}

func TestSnapshotsAreSafeThroughout(t *testing.T) {
	g := generate(t, generator.KeyGrowingTree, 7, 7, generator.Options{}, 6)
	for _, key := range Keys() {
		t.Run(key, func(t *testing.T) {
			s, err := New(key, g, 0, 48, Options{}, maze.NewRand(6))
			require.NoError(t, err)
			for steps := 0; !s.IsComplete(); steps++ {
				require.Less(t, steps, stepLimit)
				assert.NotPanics(t, func() { s.Snapshot() })
				s.Step()
			}
			assert.Equal(t, s.Path(), s.Snapshot().Path)
		})
	}
}
