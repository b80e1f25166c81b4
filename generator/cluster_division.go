package generator

import (
	"fmt"

	"github.com/beka-birhanu/mazelab/maze"
)

type region struct {
	id    int
	cells []int
}

// ClusterDivision starts from an open grid and splits regions of arbitrary
// shape: two random seeds grow into the region through one shared bag, then
// the boundary between the two halves is walled except for one passage.
// Regions at or below the maximum room size are left open as rooms.
type ClusterDivision struct {
	grid        *maze.Grid
	rng         maze.Rand
	traversal   Traversal
	maxRoomSize int
	regions     []region
	owner       []int // region id per cell
	nextID      int
	lastSplit   []int
}

// NewClusterDivision opens grid and queues it as the first region.
func NewClusterDivision(grid *maze.Grid, traversal Traversal, maxRoomSize int, rng maze.Rand) (*ClusterDivision, error) {
	if traversal != BFS && traversal != DFS {
		return nil, fmt.Errorf("%w: unknown graph traversal %q", maze.ErrConfiguration, traversal)
	}
	if maxRoomSize < 1 {
		return nil, fmt.Errorf("%w: maximum room size must be positive, got %d", maze.ErrConfiguration, maxRoomSize)
	}

	openAll(grid)
	c := &ClusterDivision{
		grid:        grid,
		rng:         rng,
		traversal:   traversal,
		maxRoomSize: maxRoomSize,
		owner:       make([]int, grid.Len()),
		nextID:      1,
	}
	all := make([]int, grid.Len())
	for i := range all {
		all[i] = i
	}
	c.push(region{id: 0, cells: all})
	return c, nil
}

func (c *ClusterDivision) push(r region) {
	if len(r.cells) > c.maxRoomSize && len(r.cells) > 1 {
		c.regions = append(c.regions, r)
	}
}

func (c *ClusterDivision) pop() region {
	if c.traversal == BFS {
		r := c.regions[0]
		c.regions = c.regions[1:]
		return r
	}
	r := c.regions[len(c.regions)-1]
	c.regions = c.regions[:len(c.regions)-1]
	return r
}

// Step splits one region in two.
func (c *ClusterDivision) Step() {
	if c.IsComplete() {
		return
	}

	parent := c.pop()
	n := len(parent.cells)
	a := c.region(parent.cells[c.rng.Intn(n)])
	j := c.rng.Intn(n - 1)
	if parent.cells[j] == a.cells[0] {
		j = n - 1
	}
	b := c.region(parent.cells[j])

	// Grow both halves from one shared bag so they race for the cells.
	bag := []int{a.cells[0], b.cells[0]}
	for len(bag) > 0 {
		k := c.rng.Intn(len(bag))
		cell := bag[k]

		var free []int
		for _, d := range maze.Directions {
			if nb, ok := c.grid.Passage(cell, d); ok && c.owner[nb] == parent.id {
				free = append(free, nb)
			}
		}
		if len(free) == 0 {
			bag[k] = bag[len(bag)-1]
			bag = bag[:len(bag)-1]
			continue
		}

		nb := free[c.rng.Intn(len(free))]
		c.owner[nb] = c.owner[cell]
		if c.owner[nb] == a.id {
			a.cells = append(a.cells, nb)
		} else {
			b.cells = append(b.cells, nb)
		}
		bag = append(bag, nb)
	}
	maze.Assert(len(a.cells)+len(b.cells) == n, "region %d split lost cells", parent.id)

	// Wall the boundary, keeping one random passage.
	var boundary []edge
	for _, cell := range a.cells {
		for _, d := range maze.Directions {
			if nb, ok := c.grid.Passage(cell, d); ok && c.owner[nb] == b.id {
				boundary = append(boundary, edge{index: cell, dir: d})
			}
		}
	}
	maze.Assert(len(boundary) > 0, "region %d split into disconnected halves", parent.id)

	keep := c.rng.Intn(len(boundary))
	for i, e := range boundary {
		if i != keep {
			c.grid.Build(e.index, e.dir)
		}
	}

	c.lastSplit = cloneInts(b.cells)
	c.push(a)
	c.push(b)
}

// region creates a new region seeded with one cell.
func (c *ClusterDivision) region(seed int) region {
	r := region{id: c.nextID, cells: []int{seed}}
	c.nextID++
	c.owner[seed] = r.id
	return r
}

// IsComplete reports whether no region is left to split.
func (c *ClusterDivision) IsComplete() bool {
	return len(c.regions) == 0
}

// Snapshot lists the cells of the half walled off by the last split.
func (c *ClusterDivision) Snapshot() Snapshot {
	return Snapshot{Frontier: cloneInts(c.lastSplit)}
}
