// Package export produces read-only serializations of finished mazes and
// room graphs for storage and for clients drawing them.
package export

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/beka-birhanu/mazelab/maze"
	"github.com/beka-birhanu/mazelab/roomgraph"
	json "github.com/goccy/go-json"
	"golang.org/x/crypto/blake2b"
)

// Cell is the exported form of a maze cell.
type Cell struct {
	Walls [4]bool `json:"walls" bson:"walls"` // North, East, South, West.
	Open  bool    `json:"open" bson:"open"`
}

// Maze is the exported form of a grid.
type Maze struct {
	ColCnt      int    `json:"colCnt" bson:"colCnt"`
	RowCnt      int    `json:"rowCnt" bson:"rowCnt"`
	Cells       []Cell `json:"cells" bson:"cells"`
	Fingerprint string `json:"fingerprint" bson:"fingerprint"`
}

// Room is the exported form of a room graph node.
type Room struct {
	ID        int   `json:"id"`
	Cells     []int `json:"cells"`
	Neighbors []int `json:"neighbors"`
}

// Graph is the exported form of a room graph.
type Graph struct {
	Rooms []Room `json:"rooms"`
}

// FromGrid exports every cell of grid.
func FromGrid(grid *maze.Grid) Maze {
	m := Maze{
		ColCnt:      grid.ColCnt,
		RowCnt:      grid.RowCnt,
		Cells:       make([]Cell, grid.Len()),
		Fingerprint: Fingerprint(grid),
	}
	for i := range m.Cells {
		c := grid.Cell(i)
		m.Cells[i] = Cell{Walls: c.Walls, Open: c.Open}
	}
	return m
}

// ToGrid rebuilds a grid from an exported maze.
func ToGrid(m Maze) (*maze.Grid, error) {
	grid, err := maze.NewGrid(m.ColCnt, m.RowCnt)
	if err != nil {
		return nil, err
	}
	if len(m.Cells) != grid.Len() {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d grid", maze.ErrInvalidDimensions, len(m.Cells), m.ColCnt, m.RowCnt)
	}

	for i, c := range m.Cells {
		cell := grid.Cell(i)
		cell.Walls = c.Walls
		cell.Open = c.Open
	}
	if !grid.Symmetric() {
		return nil, fmt.Errorf("%w: exported walls are not symmetric", maze.ErrStructural)
	}
	return grid, nil
}

// FromGraph exports the room graph as room id to sorted neighbor room ids.
func FromGraph(graph *roomgraph.Graph) Graph {
	out := Graph{Rooms: make([]Room, len(graph.Rooms))}
	for i, r := range graph.Rooms {
		room := Room{ID: r.ID, Cells: make([]int, 0, r.Area.Size()), Neighbors: []int{}}
		r.Area.Each(func(index int) {
			room.Cells = append(room.Cells, index)
		})
		slices.Sort(room.Cells)

		for _, e := range r.Neighbors {
			room.Neighbors = append(room.Neighbors, e.Room)
		}
		slices.Sort(room.Neighbors)
		room.Neighbors = slices.Compact(room.Neighbors)
		out.Rooms[i] = room
	}
	return out
}

// Fingerprint returns the hex blake2b-256 digest of the grid dimensions and
// wall layout. Two grids with the same walls share a fingerprint.
func Fingerprint(grid *maze.Grid) string {
	buf := make([]byte, 8, 8+(grid.Len()+1)/2)
	binary.BigEndian.PutUint32(buf[0:], uint32(grid.ColCnt))
	binary.BigEndian.PutUint32(buf[4:], uint32(grid.RowCnt))

	// Two cells per byte, four wall bits each.
	var b byte
	for i := 0; i < grid.Len(); i++ {
		var nibble byte
		for d, wall := range grid.Cell(i).Walls {
			if wall {
				nibble |= 1 << d
			}
		}
		if i%2 == 0 {
			b = nibble
		} else {
			buf = append(buf, b|nibble<<4)
		}
	}
	if grid.Len()%2 == 1 {
		buf = append(buf, b)
	}

	sum := blake2b.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// Encode marshals any exported value to JSON.
func Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// DecodeMaze unmarshals a maze previously produced by Encode.
func DecodeMaze(data []byte) (Maze, error) {
	var m Maze
	if err := json.Unmarshal(data, &m); err != nil {
		return Maze{}, err
	}
	return m, nil
}
