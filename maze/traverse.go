package maze

// Reachable marks every cell reachable from start through passages.
func (g *Grid) Reachable(start int) []bool {
	seen := make([]bool, len(g.Cells))
	if !g.InBound(start) {
		return seen
	}

	stack := []int{start}
	seen[start] = true
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range g.Passages(cell) {
			if !seen[n] {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return seen
}

// Connected reports whether every cell of the grid is reachable from cell 0.
func (g *Grid) Connected() bool {
	for _, ok := range g.Reachable(0) {
		if !ok {
			return false
		}
	}
	return true
}

// Perfect reports whether the carved passages form a spanning tree.
func (g *Grid) Perfect() bool {
	return g.Connected() && g.PassageTotal() == len(g.Cells)-1
}

// Symmetric reports whether every wall reads the same from both of its sides.
func (g *Grid) Symmetric() bool {
	for i := range g.Cells {
		for _, d := range Directions {
			n, ok := g.NeighborIndex(i, d)
			if !ok {
				continue
			}
			if g.Cells[i].Walls[d] != g.Cells[n].Walls[d.Opposite()] {
				return false
			}
		}
	}
	return true
}
