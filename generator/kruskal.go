package generator

import "github.com/beka-birhanu/mazelab/maze"

type edge struct {
	index int
	dir   maze.Direction
}

// Kruskal carves edges taken from a shuffled list whenever they join two
// separate trees of the union-find forest.
type Kruskal struct {
	grid     *maze.Grid
	edges    []edge
	sets     *UnionFind
	lastRoot int
}

// NewKruskal lists and shuffles every interior edge of grid.
func NewKruskal(grid *maze.Grid, rng maze.Rand) *Kruskal {
	k := &Kruskal{
		grid:     grid,
		sets:     NewUnionFind(grid.Len()),
		lastRoot: -1,
	}
	for i := 0; i < grid.Len(); i++ {
		for _, d := range [2]maze.Direction{maze.East, maze.South} {
			if _, ok := grid.NeighborIndex(i, d); ok {
				k.edges = append(k.edges, edge{index: i, dir: d})
			}
		}
	}
	rng.Shuffle(len(k.edges), func(i, j int) { k.edges[i], k.edges[j] = k.edges[j], k.edges[i] })

	if grid.Len() == 1 {
		grid.Cell(0).Open = true
	}
	return k
}

// Step pops one edge and carves it if its endpoints are not yet connected.
func (k *Kruskal) Step() {
	if k.IsComplete() {
		return
	}

	e := k.edges[len(k.edges)-1]
	k.edges = k.edges[:len(k.edges)-1]

	n, _ := k.grid.NeighborIndex(e.index, e.dir)
	if k.sets.Connected(e.index, n) {
		return
	}
	k.grid.Carve(e.index, e.dir)
	k.lastRoot = k.sets.Union(e.index, n)
}

// IsComplete reports whether the edge list ran out or one tree spans the grid.
func (k *Kruskal) IsComplete() bool {
	return len(k.edges) == 0 || k.sets.Size(0) == k.grid.Len()
}

// Sets exposes the union-find forest built so far.
func (k *Kruskal) Sets() *UnionFind {
	return k.sets
}

// Snapshot lists the members of the tree grown by the last carve.
func (k *Kruskal) Snapshot() Snapshot {
	if k.lastRoot < 0 || k.IsComplete() {
		return Snapshot{}
	}
	return Snapshot{
		Heads:    []int{k.lastRoot},
		Frontier: k.sets.Members(k.lastRoot),
	}
}
