package generator

import "github.com/beka-birhanu/mazelab/maze"

const (
	phaseWalk = iota
	phaseHunt
)

// HuntAndKill random-walks until stuck, then hunts row by row for an
// unopened cell next to the maze, carves it in and walks again.
type HuntAndKill struct {
	grid    *maze.Grid
	rng     maze.Rand
	current int
	phase   int
	scanRow int // row the hunt inspects next
	fullRow int // rows above this one hold no unopened cell
	done    bool
}

// NewHuntAndKill starts the walk on a random cell.
func NewHuntAndKill(grid *maze.Grid, rng maze.Rand) *HuntAndKill {
	start := rng.Intn(grid.Len())
	grid.Cell(start).Open = true
	return &HuntAndKill{grid: grid, rng: rng, current: start}
}

// Step carves one walk move, or hunts through one row.
func (h *HuntAndKill) Step() {
	if h.done {
		return
	}

	if h.phase == phaseWalk {
		dirs := unopenedNeighbors(h.grid, h.current)
		if len(dirs) == 0 {
			h.phase = phaseHunt
			h.scanRow = h.fullRow
			return
		}
		h.current, _ = h.grid.Carve(h.current, pickDirection(h.rng, dirs))
		return
	}

	rowHasUnopened := false
	for _, index := range rowIndices(h.grid, h.scanRow) {
		if h.grid.Cell(index).Open {
			continue
		}
		rowHasUnopened = true
		if dirs := openedNeighbors(h.grid, index); len(dirs) > 0 {
			h.grid.Carve(index, pickDirection(h.rng, dirs))
			h.current = index
			h.phase = phaseWalk
			return
		}
	}

	if !rowHasUnopened && h.scanRow == h.fullRow {
		h.fullRow++
	}
	h.scanRow++
	if h.scanRow >= h.grid.RowCnt {
		h.done = true
	}
}

// IsComplete reports whether a hunt scanned past the last row.
func (h *HuntAndKill) IsComplete() bool {
	return h.done
}

// Snapshot implements Generator.
func (h *HuntAndKill) Snapshot() Snapshot {
	if h.done {
		return Snapshot{Phase: phaseHunt}
	}
	if h.phase == phaseHunt {
		return Snapshot{Frontier: rowIndices(h.grid, h.scanRow), Phase: phaseHunt}
	}
	return Snapshot{Heads: []int{h.current}}
}
