package generator

import "github.com/beka-birhanu/mazelab/maze"

// Eller builds the maze one row per step. Cells of a row are joined east at
// random when they belong to different sets, then every set drops at least
// one passage into the next row. The last row joins every remaining set so
// the result is a single tree.
type Eller struct {
	grid *maze.Grid
	rng  maze.Rand
	sets *UnionFind
	row  int
}

// NewEller starts at the top row with every cell in its own set.
func NewEller(grid *maze.Grid, rng maze.Rand) *Eller {
	return &Eller{grid: grid, rng: rng, sets: NewUnionFind(grid.Len())}
}

// Step processes one row.
func (e *Eller) Step() {
	if e.IsComplete() {
		return
	}

	cells := rowIndices(e.grid, e.row)
	last := e.row == e.grid.RowCnt-1
	for _, index := range cells {
		e.grid.Cell(index).Open = true
	}

	for x := 0; x+1 < len(cells); x++ {
		a, b := cells[x], cells[x+1]
		if e.sets.Connected(a, b) {
			continue
		}
		if last || e.rng.Intn(2) == 0 {
			e.grid.Carve(a, maze.East)
			e.sets.Union(a, b)
		}
	}

	if !last {
		e.dropRow(cells)
	}
	e.row++
}

// dropRow carves south from a random non-empty subset of every set in the row.
func (e *Eller) dropRow(cells []int) {
	var roots []int
	groups := make(map[int][]int)
	for _, index := range cells {
		root := e.sets.Find(index)
		if _, seen := groups[root]; !seen {
			roots = append(roots, root)
		}
		groups[root] = append(groups[root], index)
	}

	for _, root := range roots {
		group := groups[root]
		e.rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
		drops := 1 + e.rng.Intn(len(group))
		for _, index := range group[:drops] {
			below, _ := e.grid.Carve(index, maze.South)
			e.sets.Union(index, below)
		}
	}
}

// IsComplete reports whether every row has been processed.
func (e *Eller) IsComplete() bool {
	return e.row >= e.grid.RowCnt
}

// Snapshot highlights the row processed next.
func (e *Eller) Snapshot() Snapshot {
	if e.IsComplete() {
		return Snapshot{}
	}
	return Snapshot{Frontier: rowIndices(e.grid, e.row), Phase: e.row}
}
