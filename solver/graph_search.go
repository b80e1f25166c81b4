package solver

import (
	"slices"

	"github.com/beka-birhanu/mazelab/generator"
	"github.com/beka-birhanu/mazelab/maze"
)

// GraphSearch explores passages breadth-first or depth-first. The frontier
// is popped from the front for BFS and from the back for DFS.
type GraphSearch struct {
	base
	traversal generator.Traversal
	frontier  []int
	parent    []int
	seen      []bool
	current   int
}

// NewGraphSearch creates a search from start to dest.
func NewGraphSearch(grid *maze.Grid, start, dest int, traversal generator.Traversal) (*GraphSearch, error) {
	if err := validateTraversal(traversal); err != nil {
		return nil, err
	}

	s := &GraphSearch{
		base:      newBase(grid, start, dest),
		traversal: traversal,
		frontier:  []int{start},
		parent:    newParents(grid.Len()),
		seen:      make([]bool, grid.Len()),
		current:   start,
	}
	s.seen[start] = true
	return s, nil
}

// Step pops one frontier cell and queues its unseen passage neighbors.
func (s *GraphSearch) Step() {
	if s.done {
		return
	}
	if len(s.frontier) == 0 {
		s.fail("no route from %d to %d", s.start, s.dest)
		return
	}

	var cell int
	if s.traversal == generator.BFS {
		cell = s.frontier[0]
		s.frontier = s.frontier[1:]
	} else {
		cell = s.frontier[len(s.frontier)-1]
		s.frontier = s.frontier[:len(s.frontier)-1]
	}
	s.current = cell

	if cell == s.dest {
		s.finish(tracePath(s.parent, s.start, s.dest))
		return
	}

	for _, n := range s.grid.Passages(cell) {
		if !s.seen[n] {
			s.seen[n] = true
			s.parent[n] = cell
			s.frontier = append(s.frontier, n)
		}
	}
}

// Snapshot implements Solver.
func (s *GraphSearch) Snapshot() Snapshot {
	snap := Snapshot{
		Heads:    []int{s.current},
		Frontier: slices.Clone(s.frontier),
		Path:     s.path,
	}
	if !s.done {
		snap.Path = tracePath(s.parent, s.start, s.current)
	}
	return snap
}
