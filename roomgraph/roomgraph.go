/*
Package roomgraph decomposes a finished maze into rooms.

A room is a set of open cells joined by passages that are not pinched. A
passage from cell c in direction d is pinched when both cells beside c,
across d's lateral directions, are walled off in direction d (or lie outside
the grid): the passage is then a one-cell-wide opening and the cell beyond
it starts a new room.

The Builder floods the grid from a start cell with a LIFO stack, one pop
per Step, so the decomposition can be animated.
*/
package roomgraph

import (
	"fmt"

	"github.com/beka-birhanu/mazelab/maze"
	"github.com/zyedidia/generic/mapset"
)

// NoRoom marks a cell that is not reachable from the start cell.
const NoRoom = -1

// Edge is a directed link from a boundary cell of one room to the adjacent
// boundary cell of the neighboring room.
type Edge struct {
	From int `json:"from"` // Cell inside the owning room.
	To   int `json:"to"`   // Cell inside Room.
	Room int `json:"room"` // Neighbor room id.
}

// Room is a maximal group of cells reachable from each other without
// crossing a pinch point.
type Room struct {
	ID        int
	Area      mapset.Set[int]
	Neighbors []Edge // In discovery order; one entry per passage.
}

// Graph is the result of a decomposition.
type Graph struct {
	Rooms       []*Room
	IndexToRoom []int // Room id per cell, NoRoom for unreachable cells.
}

// RoomOf returns the room holding cell index, or nil if it is unreachable.
func (g *Graph) RoomOf(index int) *Room {
	if index < 0 || index >= len(g.IndexToRoom) || g.IndexToRoom[index] == NoRoom {
		return nil
	}
	return g.Rooms[g.IndexToRoom[index]]
}

// Builder runs the decomposition incrementally.
type Builder struct {
	grid   *maze.Grid
	graph  *Graph
	stack  []int
	linked map[[2]int]bool // passages already recorded as edges
	last   int
}

// NewBuilder seeds the flood at start, which becomes room 0.
func NewBuilder(grid *maze.Grid, start int) (*Builder, error) {
	if err := grid.CheckIndex(start); err != nil {
		return nil, err
	}

	b := &Builder{
		grid:   grid,
		graph:  &Graph{IndexToRoom: make([]int, grid.Len())},
		linked: make(map[[2]int]bool),
		last:   start,
	}
	for i := range b.graph.IndexToRoom {
		b.graph.IndexToRoom[i] = NoRoom
	}
	b.assign(start, b.newRoom())
	b.stack = []int{start}
	return b, nil
}

// Build decomposes grid in one call.
func Build(grid *maze.Grid, start int) (*Graph, error) {
	b, err := NewBuilder(grid, start)
	if err != nil {
		return nil, err
	}
	for !b.IsComplete() {
		b.Step()
	}
	return b.Graph(), nil
}

func (b *Builder) newRoom() *Room {
	r := &Room{ID: len(b.graph.Rooms), Area: mapset.New[int]()}
	b.graph.Rooms = append(b.graph.Rooms, r)
	return r
}

func (b *Builder) assign(index int, r *Room) {
	maze.Assert(b.graph.IndexToRoom[index] == NoRoom, "cell %d already belongs to room %d", index, b.graph.IndexToRoom[index])
	b.graph.IndexToRoom[index] = r.ID
	r.Area.Put(index)
}

// link records the passage between a and b on both rooms, once.
func (b *Builder) link(a, c int) {
	key := [2]int{min(a, c), max(a, c)}
	if b.linked[key] {
		return
	}
	b.linked[key] = true

	ra, rc := b.graph.RoomOf(a), b.graph.RoomOf(c)
	maze.Assert(ra != nil && rc != nil && ra != rc, "edge %d-%d does not join two rooms", a, c)
	ra.Neighbors = append(ra.Neighbors, Edge{From: a, To: c, Room: rc.ID})
	rc.Neighbors = append(rc.Neighbors, Edge{From: c, To: a, Room: ra.ID})
}

// Pinched reports whether the passage leaving index in direction d is a
// one-cell-wide opening.
func Pinched(g *maze.Grid, index int, d maze.Direction) bool {
	for _, side := range [2]maze.Direction{d.Left(), d.Right()} {
		m, ok := g.NeighborIndex(index, side)
		if ok && !g.Cell(m).Walls[d] {
			return false
		}
	}
	return true
}

// Step pops one cell and assigns its unassigned passage neighbors.
func (b *Builder) Step() {
	if b.IsComplete() {
		return
	}

	cell := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.last = cell
	room := b.graph.RoomOf(cell)

	for _, d := range maze.Directions {
		n, ok := b.grid.Passage(cell, d)
		if !ok {
			continue
		}

		switch owner := b.graph.IndexToRoom[n]; {
		case owner == NoRoom && Pinched(b.grid, cell, d):
			b.assign(n, b.newRoom())
			b.link(cell, n)
			b.stack = append(b.stack, n)
		case owner == NoRoom:
			b.assign(n, room)
			b.stack = append(b.stack, n)
		case owner != room.ID:
			b.link(cell, n)
		}
	}
}

// IsComplete reports whether the flood has run out of cells.
func (b *Builder) IsComplete() bool {
	return len(b.stack) == 0
}

// Graph returns the graph built so far.
func (b *Builder) Graph() *Graph {
	return b.graph
}

// Current returns the cell popped by the last step.
func (b *Builder) Current() int {
	return b.last
}

// Stack returns a copy of the pending cells.
func (b *Builder) Stack() []int {
	return append([]int(nil), b.stack...)
}

// Validate checks that every reachable cell belongs to exactly one room and
// that the room areas cover nothing else.
func (g *Graph) Validate(grid *maze.Grid, start int) error {
	reach := grid.Reachable(start)
	total := 0
	for _, r := range g.Rooms {
		total += r.Area.Size()
		var err error
		r.Area.Each(func(index int) {
			if err == nil && (!reach[index] || g.IndexToRoom[index] != r.ID) {
				err = fmt.Errorf("%w: cell %d misplaced in room %d", maze.ErrStructural, index, r.ID)
			}
		})
		if err != nil {
			return err
		}
	}

	for index, ok := range reach {
		if ok != (g.IndexToRoom[index] != NoRoom) {
			return fmt.Errorf("%w: cell %d reachable=%v but room=%d", maze.ErrStructural, index, ok, g.IndexToRoom[index])
		}
		if ok {
			total--
		}
	}
	if total != 0 {
		return fmt.Errorf("%w: room areas overlap", maze.ErrStructural)
	}
	return nil
}
