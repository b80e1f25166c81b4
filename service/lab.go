package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/mazelab/domain"
	"github.com/beka-birhanu/mazelab/export"
	"github.com/beka-birhanu/mazelab/generator"
	"github.com/beka-birhanu/mazelab/maze"
	"github.com/beka-birhanu/mazelab/roomgraph"
	"github.com/beka-birhanu/mazelab/service/i"
	"github.com/beka-birhanu/mazelab/solver"
	"github.com/google/uuid"
)

const (
	defaultMaxGridDimension   = 100
	defaultMaxStepsPerRequest = 10000
	defaultTokenTTL           = time.Hour
	leaderboardKeyFmt         = "leaderboard:%s"
	scoreMemberFmt            = "%s:%d-%d"

	// ClaimRunID is the token claim naming the run a token grants access to.
	ClaimRunID = "run_id"
)

var (
	ErrRunNotFound   = errors.New("run not found")
	ErrRunIncomplete = errors.New("run is not complete")
	ErrWrongRunKind  = errors.New("operation not supported for this kind of run")
)

// LabOptions bounds the work a single caller can request.
type LabOptions struct {
	MaxGridDimension   int
	MaxStepsPerRequest int
	TokenTTL           time.Duration
}

// run owns one grid and the generator or solver working on it.
type run struct {
	mu        sync.Mutex
	id        uuid.UUID
	kind      dmn.RunKind
	mazeID    uuid.UUID
	algorithm string
	seed      int64
	grid      *maze.Grid
	gen       generator.Generator // nil for loaded mazes and solve runs.
	sol       solver.Solver       // nil for maze runs.
	start     int
	dest      int
	steps     int
	recorded  bool
	expiresAt time.Time // The run token's expiry; the run is dropped after it.
}

func (r *run) complete() bool {
	switch {
	case r.gen != nil:
		return r.gen.IsComplete()
	case r.sol != nil:
		return r.sol.IsComplete()
	}
	return true
}

func (r *run) state() *dmn.RunState {
	s := &dmn.RunState{
		ID:        r.id,
		Kind:      r.kind,
		MazeID:    r.mazeID,
		Algorithm: r.algorithm,
		Seed:      r.seed,
		Cols:      r.grid.ColCnt,
		Rows:      r.grid.RowCnt,
		Steps:     r.steps,
		Complete:  r.complete(),
	}
	switch {
	case r.gen != nil:
		s.Snapshot = r.gen.Snapshot()
	case r.sol != nil:
		s.Snapshot = r.sol.Snapshot()
		s.Path = r.sol.Path()
		if err := r.sol.Err(); err != nil {
			s.Error = err.Error()
		}
	}
	return s
}

// Lab keeps runs in memory and steps them on request.
type Lab struct {
	mu          sync.RWMutex
	runs        map[uuid.UUID]*run
	repo        i.MazeRepo
	leaderboard i.Leaderboard
	tokenizer   i.Tokenizer
	logger      i.Logger
	opts        *LabOptions
}

// NewLab creates a Lab. Zero valued options fall back to defaults.
func NewLab(repo i.MazeRepo, leaderboard i.Leaderboard, tokenizer i.Tokenizer, logger i.Logger, opts *LabOptions) (i.Lab, error) {
	if repo == nil || leaderboard == nil || tokenizer == nil || logger == nil {
		return nil, errors.New("lab: missing dependency")
	}
	if opts == nil {
		opts = &LabOptions{}
	}
	if opts.MaxGridDimension <= 0 {
		opts.MaxGridDimension = defaultMaxGridDimension
	}
	if opts.MaxStepsPerRequest <= 0 {
		opts.MaxStepsPerRequest = defaultMaxStepsPerRequest
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}

	return &Lab{
		runs:        make(map[uuid.UUID]*run),
		repo:        repo,
		leaderboard: leaderboard,
		tokenizer:   tokenizer,
		logger:      logger,
		opts:        opts,
	}, nil
}

// CreateMaze starts a generation run.
func (l *Lab) CreateMaze(spec dmn.MazeSpec) (*dmn.RunState, error) {
	if spec.Cols > l.opts.MaxGridDimension || spec.Rows > l.opts.MaxGridDimension {
		return nil, fmt.Errorf("%w: grid larger than %d", maze.ErrInvalidDimensions, l.opts.MaxGridDimension)
	}
	grid, err := maze.NewGrid(spec.Cols, spec.Rows)
	if err != nil {
		return nil, err
	}

	seed := pickSeed(spec.Seed)
	gen, err := generator.New(spec.Algorithm, grid, spec.Options, maze.NewRand(seed))
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	r := &run{
		id:        id,
		kind:      dmn.KindMaze,
		mazeID:    id,
		algorithm: spec.Algorithm,
		seed:      seed,
		grid:      grid,
		gen:       gen,
	}
	l.logger.Info(fmt.Sprintf("Maze run created: ID=%s Algorithm=%s Size=%dx%d Seed=%d", id, spec.Algorithm, spec.Cols, spec.Rows, seed))
	return l.register(r)
}

// Solve starts a solve run over the finished maze of run mazeID. The solver
// works on its own copy of the grid.
func (l *Lab) Solve(mazeID uuid.UUID, spec dmn.SolveSpec) (*dmn.RunState, error) {
	m, err := l.get(mazeID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.kind != dmn.KindMaze {
		m.mu.Unlock()
		return nil, ErrWrongRunKind
	}
	if !m.complete() {
		m.mu.Unlock()
		return nil, ErrRunIncomplete
	}
	grid := m.grid.Clone()
	m.mu.Unlock()

	seed := pickSeed(spec.Seed)
	sol, err := solver.New(spec.Algorithm, grid, spec.Start, spec.Dest, spec.Options, maze.NewRand(seed))
	if err != nil {
		return nil, err
	}

	r := &run{
		id:        uuid.New(),
		kind:      dmn.KindSolve,
		mazeID:    mazeID,
		algorithm: spec.Algorithm,
		seed:      seed,
		grid:      grid,
		sol:       sol,
		start:     spec.Start,
		dest:      spec.Dest,
	}
	l.logger.Info(fmt.Sprintf("Solve run created: ID=%s Maze=%s Algorithm=%s Start=%d Dest=%d", r.id, mazeID, spec.Algorithm, spec.Start, spec.Dest))
	return l.register(r)
}

// Load starts a finished maze run from a saved maze.
func (l *Lab) Load(ctx context.Context, savedID uuid.UUID) (*dmn.RunState, error) {
	saved, err := l.repo.ByID(ctx, savedID)
	if err != nil {
		return nil, err
	}
	grid, err := export.ToGrid(saved.Maze)
	if err != nil {
		l.logger.Error(fmt.Sprintf("Saved maze is corrupt: ID=%s: %s", savedID, err))
		return nil, err
	}

	id := uuid.New()
	r := &run{
		id:        id,
		kind:      dmn.KindMaze,
		mazeID:    id,
		algorithm: saved.Algorithm,
		seed:      saved.Seed,
		grid:      grid,
	}
	l.logger.Info(fmt.Sprintf("Maze run loaded: ID=%s Saved=%s", id, savedID))
	return l.register(r)
}

// Step advances run id by up to n steps, stopping early on completion or
// when ctx is done. n is clamped to [1, MaxStepsPerRequest].
func (l *Lab) Step(ctx context.Context, id uuid.UUID, n int) (*dmn.RunState, error) {
	r, err := l.get(id)
	if err != nil {
		return nil, err
	}
	n = max(1, min(n, l.opts.MaxStepsPerRequest))

	r.mu.Lock()
	defer r.mu.Unlock()

	for k := 0; k < n && !r.complete(); k++ {
		if ctx.Err() != nil {
			break
		}
		if r.gen != nil {
			r.gen.Step()
		} else {
			r.sol.Step()
		}
		r.steps++
	}

	if r.kind == dmn.KindSolve && r.complete() && !r.recorded && r.sol.Err() == nil {
		l.recordScore(ctx, r)
	}
	return r.state(), nil
}

func (l *Lab) recordScore(ctx context.Context, r *run) {
	board := leaderboardKey(r.grid)
	member := fmt.Sprintf(scoreMemberFmt, r.algorithm, r.start, r.dest)
	stored, err := l.leaderboard.Record(ctx, board, member, r.steps)
	if err != nil {
		l.logger.Warning(fmt.Sprintf("Failed to record score: Run=%s: %s", r.id, err))
		return
	}
	r.recorded = true
	if stored {
		l.logger.Info(fmt.Sprintf("New best score: Board=%s Member=%s Steps=%d", board, member, r.steps))
	}
}

// State returns the current state of run id.
func (l *Lab) State(id uuid.UUID) (*dmn.RunState, error) {
	r, err := l.get(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state(), nil
}

// Discard drops run id. Solve runs over it keep their own grid copy.
func (l *Lab) Discard(id uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.runs[id]; !ok {
		return ErrRunNotFound
	}
	delete(l.runs, id)
	l.logger.Info(fmt.Sprintf("Run discarded: ID=%s", id))
	return nil
}

// Export serializes a finished run. The room graph of a room-decomposition
// solve is the solver's own; other runs get one built from their start cell.
func (l *Lab) Export(id uuid.UUID) (*dmn.Export, error) {
	r, err := l.get(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.complete() {
		return nil, ErrRunIncomplete
	}

	out := &dmn.Export{Maze: export.FromGrid(r.grid)}
	graph, err := l.roomGraph(r)
	if err != nil {
		return nil, err
	}
	g := export.FromGraph(graph)
	out.Graph = &g
	return out, nil
}

func (l *Lab) roomGraph(r *run) (*roomgraph.Graph, error) {
	if rd, ok := r.sol.(*solver.RoomDecomposition); ok {
		if g := rd.Graph(); g != nil {
			return g, nil
		}
	}
	return roomgraph.Build(r.grid, r.start)
}

// Save stores the finished maze of run id. A maze whose walls match a saved
// one is not stored again; the existing ID is returned instead.
func (l *Lab) Save(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	r, err := l.get(id)
	if err != nil {
		return uuid.Nil, err
	}

	r.mu.Lock()
	if r.kind != dmn.KindMaze {
		r.mu.Unlock()
		return uuid.Nil, ErrWrongRunKind
	}
	if !r.complete() {
		r.mu.Unlock()
		return uuid.Nil, ErrRunIncomplete
	}
	saved := &dmn.SavedMaze{
		ID:        uuid.New(),
		Algorithm: r.algorithm,
		Seed:      r.seed,
		Maze:      export.FromGrid(r.grid),
		CreatedAt: time.Now().UTC(),
	}
	r.mu.Unlock()

	existing, err := l.repo.ByFingerprint(ctx, saved.Maze.Fingerprint)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, dmn.ErrMazeNotFound) {
		l.logger.Error(fmt.Sprintf("Failed to look up maze: Run=%s: %s", id, err))
		return uuid.Nil, err
	}

	err = l.repo.Save(ctx, saved)
	if errors.Is(err, dmn.ErrMazeExists) {
		// Another save of the same layout won the race.
		existing, err := l.repo.ByFingerprint(ctx, saved.Maze.Fingerprint)
		if err != nil {
			l.logger.Error(fmt.Sprintf("Failed to look up maze after conflict: Run=%s: %s", id, err))
			return uuid.Nil, err
		}
		return existing.ID, nil
	}
	if err != nil {
		l.logger.Error(fmt.Sprintf("Failed to save maze: Run=%s: %s", id, err))
		return uuid.Nil, err
	}
	l.logger.Info(fmt.Sprintf("Maze saved: Run=%s Saved=%s", id, saved.ID))
	return saved.ID, nil
}

// Leaderboard returns the best solves of the maze of run id.
func (l *Lab) Leaderboard(ctx context.Context, id uuid.UUID, n int64) ([]dmn.Score, error) {
	r, err := l.get(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	if r.kind == dmn.KindMaze && !r.complete() {
		r.mu.Unlock()
		return nil, ErrRunIncomplete
	}
	board := leaderboardKey(r.grid)
	r.mu.Unlock()

	return l.leaderboard.Top(ctx, board, n)
}

// Algorithms lists the generator and solver keys.
func (l *Lab) Algorithms() dmn.Algorithms {
	return dmn.Algorithms{
		Generators: generator.Keys(),
		Solvers:    solver.Keys(),
	}
}

func (l *Lab) register(r *run) (*dmn.RunState, error) {
	token, err := l.tokenizer.Generate(map[string]interface{}{ClaimRunID: r.id.String()}, l.opts.TokenTTL)
	if err != nil {
		l.logger.Error(fmt.Sprintf("Failed to issue run token: %s", err))
		return nil, err
	}

	now := time.Now()
	r.expiresAt = now.Add(l.opts.TokenTTL)

	l.mu.Lock()
	l.clean(now)
	l.runs[r.id] = r
	l.mu.Unlock()

	s := r.state()
	s.Token = token
	return s, nil
}

func (l *Lab) get(id uuid.UUID) (*run, error) {
	l.mu.RLock()
	r, ok := l.runs[id]
	l.mu.RUnlock()
	if !ok {
		return nil, ErrRunNotFound
	}

	if time.Now().After(r.expiresAt) {
		l.mu.Lock()
		delete(l.runs, id)
		l.mu.Unlock()
		return nil, ErrRunNotFound
	}
	return r, nil
}

// clean drops every run whose token has expired. The caller holds l.mu.
func (l *Lab) clean(now time.Time) {
	dropped := 0
	for id, r := range l.runs {
		if now.After(r.expiresAt) {
			delete(l.runs, id)
			dropped++
		}
	}
	if dropped > 0 {
		l.logger.Info(fmt.Sprintf("Dropped expired runs: Count=%d", dropped))
	}
}

func leaderboardKey(grid *maze.Grid) string {
	return fmt.Sprintf(leaderboardKeyFmt, export.Fingerprint(grid))
}

func pickSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
