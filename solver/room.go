package solver

import (
	"github.com/beka-birhanu/mazelab/maze"
	"github.com/beka-birhanu/mazelab/roomgraph"
)

const (
	phaseRooms = iota
	phaseFill
	phaseTrace
)

// node is a cell of the route tree. The tree is rooted at the start cell and
// alternates room entry and room exit cells; each cell appears at most once.
type node struct {
	index int
	next  []int // child node ids
}

// track is one breadth-first search confined to a single room.
type track struct {
	room    int
	entry   int // node id of the cell the room was entered through
	queue   []int
	goals   []roomgraph.Edge
	reached []bool
	left    int // goals not reached yet
	head    int
}

// RoomDecomposition solves a maze in three phases.
//
// The rooms phase decomposes the maze into rooms, one flood pop per step.
// The fill phase removes rooms that cannot lie on the route: a room other
// than the start and destination rooms with at most one edge into a live
// room is a dead end, and every step fills one wave of them. The trace phase
// runs one breadth-first track per live room, all advancing one pop per step.
// A track that has reached all of its exits spawns a track in every room
// behind them that no other track has entered; a track that runs out of
// cells is dropped. When the destination is popped, the route is read from
// the tree of entry and exit cells and the per-cell search parents.
type RoomDecomposition struct {
	base
	phase   int
	builder *roomgraph.Builder
	graph   *roomgraph.Graph

	startRoom  int
	destRoom   int
	filledRoom []bool

	nodes       []node
	indexToNode []int // node id per cell, -1 when absent
	parent      []int // search parent per cell
	seen        []bool
	roomVisited []bool
	tracks      []*track
}

// NewRoomDecomposition creates a room-decomposition solver from start to dest.
func NewRoomDecomposition(grid *maze.Grid, start, dest int) (*RoomDecomposition, error) {
	builder, err := roomgraph.NewBuilder(grid, start)
	if err != nil {
		return nil, err
	}
	return &RoomDecomposition{
		base:    newBase(grid, start, dest),
		builder: builder,
	}, nil
}

// Step does one unit of work of the current phase.
func (r *RoomDecomposition) Step() {
	if r.done {
		return
	}

	switch r.phase {
	case phaseRooms:
		r.stepRooms()
	case phaseFill:
		r.stepFill()
	default:
		r.stepTrace()
	}
}

func (r *RoomDecomposition) stepRooms() {
	r.builder.Step()
	if !r.builder.IsComplete() {
		return
	}

	r.graph = r.builder.Graph()
	r.startRoom = r.graph.IndexToRoom[r.start]
	r.destRoom = r.graph.IndexToRoom[r.dest]
	if r.destRoom == roomgraph.NoRoom {
		r.fail("destination %d is not reachable from %d", r.dest, r.start)
		return
	}
	r.filledRoom = make([]bool, len(r.graph.Rooms))
	r.phase = phaseFill
}

// liveEdges counts the edges of room leading to rooms not filled.
func (r *RoomDecomposition) liveEdges(room *roomgraph.Room) int {
	n := 0
	for _, e := range room.Neighbors {
		if !r.filledRoom[e.Room] {
			n++
		}
	}
	return n
}

func (r *RoomDecomposition) stepFill() {
	var wave []int
	for _, room := range r.graph.Rooms {
		if room.ID == r.startRoom || room.ID == r.destRoom || r.filledRoom[room.ID] {
			continue
		}
		if r.liveEdges(room) <= 1 {
			wave = append(wave, room.ID)
		}
	}

	if len(wave) > 0 {
		for _, id := range wave {
			r.filledRoom[id] = true
		}
		return
	}
	r.startTrace()
}

func (r *RoomDecomposition) startTrace() {
	n := r.grid.Len()
	r.indexToNode = newParents(n)
	r.parent = newParents(n)
	r.seen = make([]bool, n)
	r.roomVisited = make([]bool, len(r.graph.Rooms))

	root := r.newNode(r.start)
	r.spawn(r.startRoom, root)
	r.phase = phaseTrace
}

func (r *RoomDecomposition) newNode(index int) int {
	maze.Assert(r.indexToNode[index] < 0, "cell %d already in the route tree", index)
	id := len(r.nodes)
	r.nodes = append(r.nodes, node{index: index})
	r.indexToNode[index] = id
	return id
}

// spawn starts a track in room from the cell of node entry.
func (r *RoomDecomposition) spawn(room, entry int) {
	cell := r.nodes[entry].index
	r.roomVisited[room] = true
	r.seen[cell] = true

	t := &track{room: room, entry: entry, queue: []int{cell}, head: cell}
	if room != r.destRoom {
		for _, e := range r.graph.Rooms[room].Neighbors {
			if !r.filledRoom[e.Room] && !r.roomVisited[e.Room] {
				t.goals = append(t.goals, e)
			}
		}
	}
	t.reached = make([]bool, len(t.goals))
	t.left = len(t.goals)
	r.tracks = append(r.tracks, t)
}

func (r *RoomDecomposition) stepTrace() {
	active := r.tracks
	r.tracks = nil

	var keep []*track
	for _, t := range active {
		if len(t.queue) == 0 {
			continue
		}

		cell := t.queue[0]
		t.queue = t.queue[1:]
		t.head = cell

		if cell == r.dest {
			r.tracks = active
			r.finish(r.route(t, cell))
			return
		}

		for i, e := range t.goals {
			if !t.reached[i] && e.From == cell {
				t.reached[i] = true
				t.left--
			}
		}

		for _, n := range r.grid.Passages(cell) {
			if !r.seen[n] && r.graph.IndexToRoom[n] == t.room {
				r.seen[n] = true
				r.parent[n] = cell
				t.queue = append(t.queue, n)
			}
		}

		if len(t.goals) > 0 && t.left == 0 {
			r.branch(t)
			continue
		}
		if len(t.queue) > 0 {
			keep = append(keep, t)
		}
	}

	// Tracks spawned during this step were appended to r.tracks.
	r.tracks = append(keep, r.tracks...)
	if len(r.tracks) == 0 {
		r.fail("every track from %d died before reaching %d", r.start, r.dest)
	}
}

// branch links every exit of t into the route tree and starts a track behind it.
func (r *RoomDecomposition) branch(t *track) {
	for _, e := range t.goals {
		if r.roomVisited[e.Room] || r.indexToNode[e.To] >= 0 {
			continue
		}

		exit := r.indexToNode[e.From]
		if exit < 0 {
			exit = r.newNode(e.From)
			r.nodes[t.entry].next = append(r.nodes[t.entry].next, exit)
		}
		entry := r.newNode(e.To)
		r.nodes[exit].next = append(r.nodes[exit].next, entry)
		r.spawn(e.Room, entry)
	}
}

// route builds the cell path from start to dest, which t just popped.
func (r *RoomDecomposition) route(t *track, dest int) []int {
	chain := r.nodeChain(0, t.entry, nil)
	maze.Assert(chain != nil, "entry node %d not reachable in the route tree", t.entry)

	path := []int{r.nodes[chain[0]].index}
	for i := 1; i < len(chain); i++ {
		from, to := r.nodes[chain[i-1]].index, r.nodes[chain[i]].index
		if r.graph.IndexToRoom[from] == r.graph.IndexToRoom[to] {
			path = append(path, r.segment(from, to)...)
		} else {
			path = append(path, to)
		}
	}
	return append(path, r.segment(r.nodes[t.entry].index, dest)...)
}

// nodeChain returns the node ids from id down to target, depth first.
func (r *RoomDecomposition) nodeChain(id, target int, acc []int) []int {
	acc = append(acc, id)
	if id == target {
		return acc
	}
	for _, child := range r.nodes[id].next {
		if found := r.nodeChain(child, target, acc); found != nil {
			return found
		}
	}
	return nil
}

// segment returns the cells after from up to and including to, following
// the search parents of one room.
func (r *RoomDecomposition) segment(from, to int) []int {
	var rev []int
	for cell := to; cell != from; cell = r.parent[cell] {
		maze.Assert(cell >= 0, "broken search parents from %d to %d", to, from)
		rev = append(rev, cell)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// Graph returns the room graph once the rooms phase is over.
func (r *RoomDecomposition) Graph() *roomgraph.Graph {
	return r.graph
}

// Snapshot implements Solver.
func (r *RoomDecomposition) Snapshot() Snapshot {
	snap := Snapshot{Phase: r.phase, Path: r.path}
	if r.phase == phaseRooms {
		snap.Heads = []int{r.builder.Current()}
		snap.Frontier = r.builder.Stack()
		return snap
	}

	for _, room := range r.graph.Rooms {
		if r.filledRoom[room.ID] {
			room.Area.Each(func(index int) {
				snap.Filled = append(snap.Filled, index)
			})
		}
	}
	for _, t := range r.tracks {
		snap.Heads = append(snap.Heads, t.head)
		snap.Frontier = append(snap.Frontier, t.queue...)
	}
	return snap
}
