package generator

import (
	"fmt"

	"github.com/beka-birhanu/mazelab/maze"
)

// chamber is a rectangle of cells still to be split.
type chamber struct {
	x, y, w, h int
}

// RecursiveDivision starts from an open grid and splits chambers with a wall
// holding a single opening, until no chamber can be split.
type RecursiveDivision struct {
	grid      *maze.Grid
	rng       maze.Rand
	traversal Traversal
	chambers  []chamber
}

// NewRecursiveDivision opens grid and queues it as the first chamber.
// BFS splits chambers in queue order, DFS in stack order.
func NewRecursiveDivision(grid *maze.Grid, traversal Traversal, rng maze.Rand) (*RecursiveDivision, error) {
	if traversal != BFS && traversal != DFS {
		return nil, fmt.Errorf("%w: unknown graph traversal %q", maze.ErrConfiguration, traversal)
	}

	openAll(grid)
	r := &RecursiveDivision{grid: grid, rng: rng, traversal: traversal}
	r.push(chamber{0, 0, grid.ColCnt, grid.RowCnt})
	return r, nil
}

// push queues c unless it is one cell wide or tall. Such a chamber is
// already a corridor, and splitting it would leave its only cell as the door.
func (r *RecursiveDivision) push(c chamber) {
	if c.w > 1 && c.h > 1 {
		r.chambers = append(r.chambers, c)
	}
}

func (r *RecursiveDivision) pop() chamber {
	if r.traversal == BFS {
		c := r.chambers[0]
		r.chambers = r.chambers[1:]
		return c
	}
	c := r.chambers[len(r.chambers)-1]
	r.chambers = r.chambers[:len(r.chambers)-1]
	return c
}

// Step splits one chamber in two, building at least one wall segment.
func (r *RecursiveDivision) Step() {
	if r.IsComplete() {
		return
	}

	c := r.pop()

	// The shorter side loses: a tall chamber gets a horizontal wall.
	horizontal := c.w < c.h
	if c.w == c.h {
		horizontal = r.rng.Intn(2) == 0
	}

	if horizontal {
		k := 1 + r.rng.Intn(c.h-1)
		door := c.x + r.rng.Intn(c.w)
		for x := c.x; x < c.x+c.w; x++ {
			if x != door {
				r.grid.Build(r.grid.Index(x, c.y+k-1), maze.South)
			}
		}
		r.push(chamber{c.x, c.y, c.w, k})
		r.push(chamber{c.x, c.y + k, c.w, c.h - k})
		return
	}

	k := 1 + r.rng.Intn(c.w-1)
	door := c.y + r.rng.Intn(c.h)
	for y := c.y; y < c.y+c.h; y++ {
		if y != door {
			r.grid.Build(r.grid.Index(c.x+k-1, y), maze.East)
		}
	}
	r.push(chamber{c.x, c.y, k, c.h})
	r.push(chamber{c.x + k, c.y, c.w - k, c.h})
}

// IsComplete reports whether no chamber is left to split.
func (r *RecursiveDivision) IsComplete() bool {
	return len(r.chambers) == 0
}

// Snapshot lists the top-left cell of every pending chamber.
func (r *RecursiveDivision) Snapshot() Snapshot {
	s := Snapshot{Frontier: make([]int, len(r.chambers))}
	for i, c := range r.chambers {
		s.Frontier[i] = r.grid.Index(c.x, c.y)
	}
	return s
}
