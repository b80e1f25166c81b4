package generator

// UnionFind is a disjoint-set forest over cell indices. Nodes live in flat
// arrays: parent[i] is -1 for a root, children[i] lists the nodes attached
// directly below i, and size[i] is the number of nodes in the tree rooted at i.
//
// Union attaches the smaller tree below the larger one, which keeps the
// parent walks of Find short without path compression and lets Members walk
// a tree top-down through the children lists.
type UnionFind struct {
	parent   []int
	children [][]int
	size     []int
	merges   int
}

// NewUnionFind creates n singleton sets, one per index in [0, n).
func NewUnionFind(n int) *UnionFind {
	u := &UnionFind{
		parent:   make([]int, n),
		children: make([][]int, n),
		size:     make([]int, n),
	}
	for i := range u.parent {
		u.parent[i] = -1
		u.size[i] = 1
	}
	return u
}

// Len returns the number of nodes in the forest.
func (u *UnionFind) Len() int {
	return len(u.parent)
}

// Find returns the root of the tree containing i.
func (u *UnionFind) Find(i int) int {
	for u.parent[i] != -1 {
		i = u.parent[i]
	}
	return i
}

// Connected reports whether a and b belong to the same tree.
func (u *UnionFind) Connected(a, b int) bool {
	return u.Find(a) == u.Find(b)
}

// Union merges the trees containing a and b and returns the surviving root.
// The larger tree absorbs the smaller one; ties keep a's root.
func (u *UnionFind) Union(a, b int) int {
	ra, rb := u.Find(a), u.Find(b)
	if ra == rb {
		return ra
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}

	u.parent[rb] = ra
	u.children[ra] = append(u.children[ra], rb)
	u.size[ra] += u.size[rb]
	u.merges++
	return ra
}

// Size returns the number of nodes in the tree containing i.
func (u *UnionFind) Size(i int) int {
	return u.size[u.Find(i)]
}

// Merges returns how many successful unions happened.
func (u *UnionFind) Merges() int {
	return u.merges
}

// Members lists every node of the tree containing i, root first.
func (u *UnionFind) Members(i int) []int {
	root := u.Find(i)
	result := make([]int, 0, u.size[root])
	stack := []int{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, n)
		stack = append(stack, u.children[n]...)
	}
	return result
}
