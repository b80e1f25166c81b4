/*
Package maze provides the grid graph every generator and solver operates on.

A Grid is a fixed colCnt x rowCnt array of Cells addressed by a flat index
(y*colCnt + x). Each cell carries four wall flags; a cleared wall is a passage.
Walls are always changed in pairs, so the wall between two neighbors reads the
same from both sides.

The package also holds the error taxonomy and the injected random source
shared by the algorithm packages, plus an ASCII rendering of a grid.
*/
package maze

import (
	"fmt"
	"strings"
)

// Grid is a rectangular maze made of cells with walls.
type Grid struct {
	ColCnt int    // Number of columns.
	RowCnt int    // Number of rows.
	Cells  []Cell // Cells in raster order.
}

// NewGrid creates a fully walled grid of the given dimensions.
func NewGrid(colCnt, rowCnt int) (*Grid, error) {
	if colCnt <= 0 || rowCnt <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, colCnt, rowCnt)
	}

	g := &Grid{
		ColCnt: colCnt,
		RowCnt: rowCnt,
		Cells:  make([]Cell, colCnt*rowCnt),
	}
	for i := range g.Cells {
		g.Cells[i].Index = i
		g.Cells[i].X = i % colCnt
		g.Cells[i].Y = i / colCnt
	}
	g.Reset()
	return g, nil
}

// Reset walls every cell on all four sides and closes it.
func (g *Grid) Reset() {
	for i := range g.Cells {
		g.Cells[i].reset()
	}
}

// Len returns the number of cells in the grid.
func (g *Grid) Len() int {
	return len(g.Cells)
}

// Cell returns the cell at index. The index must be in bounds.
func (g *Grid) Cell(index int) *Cell {
	return &g.Cells[index]
}

// InBound reports whether index addresses a cell of the grid.
func (g *Grid) InBound(index int) bool {
	return index >= 0 && index < len(g.Cells)
}

// CheckIndex returns ErrOutOfBounds for an index outside the grid.
func (g *Grid) CheckIndex(index int) error {
	if !g.InBound(index) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfBounds, index, len(g.Cells))
	}
	return nil
}

// Index returns the flat index of column x, row y.
func (g *Grid) Index(x, y int) int {
	return y*g.ColCnt + x
}

// Offset returns the index delta of one move in direction d.
func (g *Grid) Offset(d Direction) int {
	switch d {
	case North:
		return -g.ColCnt
	case East:
		return 1
	case South:
		return g.ColCnt
	default:
		return -1
	}
}

// NeighborIndex returns the index adjacent to index in direction d.
// The second result is false when the move leaves the grid, including
// east/west moves that would wrap around a row.
func (g *Grid) NeighborIndex(index int, d Direction) (int, bool) {
	x := index % g.ColCnt
	switch d {
	case East:
		if x == g.ColCnt-1 {
			return -1, false
		}
	case West:
		if x == 0 {
			return -1, false
		}
	}

	n := index + g.Offset(d)
	if !g.InBound(n) {
		return -1, false
	}
	return n, true
}

// Neighbors returns every in-bound neighbor of index, ignoring walls.
func (g *Grid) Neighbors(index int) []int {
	result := make([]int, 0, 4)
	for _, d := range Directions {
		if n, ok := g.NeighborIndex(index, d); ok {
			result = append(result, n)
		}
	}
	return result
}

// Passage returns the neighbor reached from index through direction d,
// if there is no wall in the way.
func (g *Grid) Passage(index int, d Direction) (int, bool) {
	if g.Cells[index].Walls[d] {
		return -1, false
	}
	return g.NeighborIndex(index, d)
}

// Passages returns every neighbor reachable from index without crossing a wall.
func (g *Grid) Passages(index int) []int {
	result := make([]int, 0, 4)
	for _, d := range Directions {
		if n, ok := g.Passage(index, d); ok {
			result = append(result, n)
		}
	}
	return result
}

// DirectionTo returns the direction leading from one cell to an adjacent one.
func (g *Grid) DirectionTo(from, to int) (Direction, bool) {
	for _, d := range Directions {
		if n, ok := g.NeighborIndex(from, d); ok && n == to {
			return d, true
		}
	}
	return 0, false
}

// Carve clears the paired walls between index and its neighbor in direction d
// and opens both cells. It returns the neighbor index.
func (g *Grid) Carve(index int, d Direction) (int, bool) {
	n, ok := g.NeighborIndex(index, d)
	if !ok {
		return -1, false
	}
	g.Cells[index].Walls[d] = false
	g.Cells[n].Walls[d.Opposite()] = false
	g.Cells[index].Open = true
	g.Cells[n].Open = true
	return n, true
}

// Build sets the paired walls between index and its neighbor in direction d.
func (g *Grid) Build(index int, d Direction) (int, bool) {
	n, ok := g.NeighborIndex(index, d)
	if !ok {
		return -1, false
	}
	g.Cells[index].Walls[d] = true
	g.Cells[n].Walls[d.Opposite()] = true
	return n, true
}

// PassageTotal counts the undirected passages carved in the grid.
func (g *Grid) PassageTotal() int {
	total := 0
	for i := range g.Cells {
		for _, d := range [2]Direction{East, South} {
			if _, ok := g.Passage(i, d); ok {
				total++
			}
		}
	}
	return total
}

// OpenCount returns the number of opened cells.
func (g *Grid) OpenCount() int {
	n := 0
	for i := range g.Cells {
		if g.Cells[i].Open {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{ColCnt: g.ColCnt, RowCnt: g.RowCnt, Cells: cells}
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+")
	for x := 0; x < g.ColCnt; x++ {
		if g.Cells[x].Walls[North] {
			output.WriteString("---+")
		} else {
			output.WriteString("   +")
		}
	}
	output.WriteString("\n")

	for y := 0; y < g.RowCnt; y++ {
		// Cell rows
		if g.Cells[g.Index(0, y)].Walls[West] {
			output.WriteString("|")
		} else {
			output.WriteString(" ")
		}
		for x := 0; x < g.ColCnt; x++ {
			cell := g.Cells[g.Index(x, y)]
			if cell.Open {
				output.WriteString("   ")
			} else {
				output.WriteString(" # ")
			}
			if cell.Walls[East] {
				output.WriteString("|")
			} else {
				output.WriteString(" ")
			}
		}
		output.WriteString("\n")

		// Wall rows
		output.WriteString("+")
		for x := 0; x < g.ColCnt; x++ {
			if g.Cells[g.Index(x, y)].Walls[South] {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
