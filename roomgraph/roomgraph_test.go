package roomgraph

import (
	"fmt"
	"testing"

	"github.com/beka-birhanu/mazelab/generator"
	"github.com/beka-birhanu/mazelab/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openBlock carves every passage inside the rectangle at (x, y) of size w*h.
func openBlock(g *maze.Grid, x, y, w, h int) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			index := g.Index(i, j)
			g.Cell(index).Open = true
			if i+1 < x+w {
				g.Carve(index, maze.East)
			}
			if j+1 < y+h {
				g.Carve(index, maze.South)
			}
		}
	}
}

func TestOpenGridIsOneRoom(t *testing.T) {
	g, err := maze.NewGrid(3, 3)
	require.NoError(t, err)
	openBlock(g, 0, 0, 3, 3)

	graph, err := Build(g, 4)
	require.NoError(t, err)

	require.Len(t, graph.Rooms, 1)
	assert.Equal(t, 9, graph.Rooms[0].Area.Size())
	assert.Empty(t, graph.Rooms[0].Neighbors)
	assert.NoError(t, graph.Validate(g, 4))
}

func TestTwoRoomsJoinedByDoor(t *testing.T) {
	g, err := maze.NewGrid(4, 2)
	require.NoError(t, err)
	openBlock(g, 0, 0, 2, 2)
	openBlock(g, 2, 0, 2, 2)
	g.Carve(g.Index(1, 0), maze.East)

	graph, err := Build(g, 0)
	require.NoError(t, err)
	require.NoError(t, graph.Validate(g, 0))
	require.Len(t, graph.Rooms, 2)

	left, right := graph.Rooms[0], graph.Rooms[1]
	for _, index := range []int{0, 1, 4, 5} {
		assert.True(t, left.Area.Has(index), "cell %d", index)
	}
	for _, index := range []int{2, 3, 6, 7} {
		assert.True(t, right.Area.Has(index), "cell %d", index)
	}

	assert.Equal(t, []Edge{{From: 1, To: 2, Room: 1}}, left.Neighbors)
	assert.Equal(t, []Edge{{From: 2, To: 1, Room: 0}}, right.Neighbors)
	assert.Same(t, right, graph.RoomOf(7))
}

func TestCorridorCellsAreRooms(t *testing.T) {
	g, err := maze.NewGrid(1, 4)
	require.NoError(t, err)
	openBlock(g, 0, 0, 1, 4)

	graph, err := Build(g, 0)
	require.NoError(t, err)

	require.Len(t, graph.Rooms, 4)
	for i, r := range graph.Rooms {
		assert.Equal(t, 1, r.Area.Size())
		assert.Equal(t, i, graph.IndexToRoom[i])
	}
	assert.Len(t, graph.Rooms[1].Neighbors, 2)
}

func TestUnreachableCellsHaveNoRoom(t *testing.T) {
	g, err := maze.NewGrid(3, 1)
	require.NoError(t, err)
	g.Carve(0, maze.East)

	graph, err := Build(g, 0)
	require.NoError(t, err)

	assert.Equal(t, NoRoom, graph.IndexToRoom[2])
	assert.Nil(t, graph.RoomOf(2))
	assert.NoError(t, graph.Validate(g, 0))
}

func TestBuildRejectsOutOfBoundsStart(t *testing.T) {
	g, err := maze.NewGrid(2, 2)
	require.NoError(t, err)

	_, err = Build(g, 4)
	assert.ErrorIs(t, err, maze.ErrOutOfBounds)
}

func TestIncrementalMatchesOneShot(t *testing.T) {
	g, err := maze.NewGrid(8, 8)
	require.NoError(t, err)
	gen, err := generator.New(generator.KeyClusterDivision, g, generator.Options{MaximumRoomSize: 5}, maze.NewRand(9))
	require.NoError(t, err)
	for !gen.IsComplete() {
		gen.Step()
	}

	b, err := NewBuilder(g, 0)
	require.NoError(t, err)
	steps := 0
	for !b.IsComplete() {
		b.Step()
		steps++
	}
	assert.Equal(t, g.Len(), steps, "one pop per reachable cell")

	oneShot, err := Build(g, 0)
	require.NoError(t, err)
	assert.Equal(t, oneShot.IndexToRoom, b.Graph().IndexToRoom)
}

func TestPartitionOverGeneratedMazes(t *testing.T) {
	keys := []string{
		generator.KeyRecursiveBacktrack,
		generator.KeyKruskal,
		generator.KeyRecursiveDivision,
		generator.KeyClusterDivision,
		generator.KeyGrowingTree,
	}

	for _, key := range keys {
		for seed := int64(1); seed <= 3; seed++ {
			t.Run(fmt.Sprintf("%s/seed%d", key, seed), func(t *testing.T) {
				g, err := maze.NewGrid(9, 7)
				require.NoError(t, err)
				opts := generator.Options{MaximumRoomSize: 6}
				gen, err := generator.New(key, g, opts, maze.NewRand(seed))
				require.NoError(t, err)
				for !gen.IsComplete() {
					gen.Step()
				}

				start := int(seed) * 5
				graph, err := Build(g, start)
				require.NoError(t, err)
				require.NoError(t, graph.Validate(g, start))

				for _, r := range graph.Rooms {
					for _, e := range r.Neighbors {
						assert.True(t, r.Area.Has(e.From))
						assert.True(t, graph.Rooms[e.Room].Area.Has(e.To))
						assert.Contains(t, g.Passages(e.From), e.To, "edge must follow a passage")
					}
				}
			})
		}
	}
}

func TestPinched(t *testing.T) {
	g, err := maze.NewGrid(3, 2)
	require.NoError(t, err)
	openBlock(g, 0, 0, 3, 1)
	g.Carve(1, maze.South)

	assert.True(t, Pinched(g, 1, maze.South), "side cells are walled to the south")
	assert.True(t, Pinched(g, 0, maze.East), "nothing above the top row and no passage east below it")
	assert.False(t, Pinched(g, 3, maze.North), "the cell to the east opens north too")

	g.Carve(0, maze.South)
	assert.False(t, Pinched(g, 1, maze.South), "the west side now opens south too")
}
