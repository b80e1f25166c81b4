package generator

import "github.com/beka-birhanu/mazelab/maze"

// Sidewinder scans rows and either extends an eastward run or closes it by
// carving north from a random cell of the run. The top row has nowhere to go
// north, so it is carved as one corridor; every later run closes with a
// north carve, which keeps each row attached to the one above.
type Sidewinder struct {
	grid     *maze.Grid
	rng      maze.Rand
	cursor   int
	runStart int
}

// NewSidewinder starts the scan at the top-left cell.
func NewSidewinder(grid *maze.Grid, rng maze.Rand) *Sidewinder {
	return &Sidewinder{grid: grid, rng: rng}
}

// Step processes the next cell of the raster scan.
func (s *Sidewinder) Step() {
	if s.IsComplete() {
		return
	}

	index := s.cursor
	s.cursor++
	cell := s.grid.Cell(index)
	cell.Open = true

	if cell.X == 0 {
		s.runStart = index
	}
	atEast := cell.X == s.grid.ColCnt-1

	if cell.Y == 0 {
		if !atEast {
			s.grid.Carve(index, maze.East)
		}
		return
	}

	if atEast || s.rng.Intn(2) == 0 {
		pick := s.runStart + s.rng.Intn(index-s.runStart+1)
		s.grid.Carve(pick, maze.North)
		s.runStart = index + 1
		return
	}
	s.grid.Carve(index, maze.East)
}

// IsComplete reports whether the raster scan is exhausted.
func (s *Sidewinder) IsComplete() bool {
	return s.cursor >= s.grid.Len()
}

// Snapshot lists the cells of the open run.
func (s *Sidewinder) Snapshot() Snapshot {
	if s.IsComplete() || s.cursor == 0 {
		return Snapshot{}
	}
	snap := Snapshot{Heads: []int{s.cursor - 1}}
	for i := s.runStart; i < s.cursor; i++ {
		snap.Stack = append(snap.Stack, i)
	}
	return snap
}
