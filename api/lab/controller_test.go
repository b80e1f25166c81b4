package labapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/mazelab/api"
	"github.com/beka-birhanu/mazelab/api/auth"
	"github.com/beka-birhanu/mazelab/api/i"
	dmn "github.com/beka-birhanu/mazelab/domain"
	"github.com/beka-birhanu/mazelab/export"
	"github.com/beka-birhanu/mazelab/infrastruture/token"
	"github.com/beka-birhanu/mazelab/maze"
	"github.com/beka-birhanu/mazelab/service"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu    sync.Mutex
	mazes map[uuid.UUID]*dmn.SavedMaze
}

func (r *memRepo) Save(_ context.Context, m *dmn.SavedMaze) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mazes[m.ID] = m
	return nil
}

func (r *memRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.SavedMaze, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.mazes[id]; ok {
		return m, nil
	}
	return nil, dmn.ErrMazeNotFound
}

func (r *memRepo) ByFingerprint(_ context.Context, fp string) (*dmn.SavedMaze, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.mazes {
		if m.Maze.Fingerprint == fp {
			return m, nil
		}
	}
	return nil, dmn.ErrMazeNotFound
}

type memBoard struct {
	mu     sync.Mutex
	scores []dmn.Score
}

func (b *memBoard) Record(_ context.Context, _, member string, steps int) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scores = append(b.scores, dmn.Score{Member: member, Steps: steps})
	return true, nil
}

func (b *memBoard) Top(context.Context, string, int64) ([]dmn.Score, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dmn.Score{}, b.scores...), nil
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

func newServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokenizer := token.NewJwtService("test-secret", "mazelab")
	lab, err := service.NewLab(&memRepo{mazes: map[uuid.UUID]*dmn.SavedMaze{}}, &memBoard{}, tokenizer, nopLogger{}, &service.LabOptions{
		MaxGridDimension:   20,
		MaxStepsPerRequest: 100000,
		TokenTTL:           time.Minute,
	})
	require.NoError(t, err)

	controller, err := NewLabController(lab, nopLogger{})
	require.NoError(t, err)

	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []i.Controller{controller},
		AuthorizationMiddleware: auth.Authoriz(tokenizer),
	})
	return router.Handler()
}

func call(t *testing.T, h http.Handler, method, target, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func createFinished(t *testing.T, h http.Handler, body CreateMazeRequest) dmn.RunState {
	t.Helper()
	w := call(t, h, http.MethodPost, "/api/v1/mazes", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dmn.RunState](t, w)

	w = call(t, h, http.MethodPost, fmt.Sprintf("/api/v1/runs/%s/step", created.ID), created.Token, StepRequest{Steps: 100000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stepped := decode[dmn.RunState](t, w)
	require.True(t, stepped.Complete)
	stepped.Token = created.Token
	return stepped
}

func TestMazeLifecycle(t *testing.T) {
	h := newServer(t)
	m := createFinished(t, h, CreateMazeRequest{Cols: 5, Rows: 4, Algorithm: "kruskal", Seed: 3})

	t.Run("state", func(t *testing.T) {
		w := call(t, h, http.MethodGet, "/api/v1/runs/"+m.ID.String(), m.Token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		s := decode[dmn.RunState](t, w)
		assert.True(t, s.Complete)
		assert.Equal(t, 5, s.Cols)
		assert.Empty(t, s.Token)
	})

	t.Run("export", func(t *testing.T) {
		w := call(t, h, http.MethodGet, "/api/v1/mazes/"+m.ID.String()+"/export", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		out := decode[dmn.Export](t, w)
		grid, err := export.ToGrid(out.Maze)
		require.NoError(t, err)
		assert.True(t, grid.Perfect())
		require.NotNil(t, out.Graph)
	})

	t.Run("solve and leaderboard", func(t *testing.T) {
		start, dest := 0, 19
		w := call(t, h, http.MethodPost, "/api/v1/mazes/"+m.ID.String()+"/solves", m.Token, SolveRequest{
			Algorithm:         "a-star",
			Start:             &start,
			Dest:              &dest,
			HeuristicDistance: "chebyshev",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		s := decode[dmn.RunState](t, w)
		require.NotEmpty(t, s.Token)

		w = call(t, h, http.MethodPost, "/api/v1/runs/"+s.ID.String()+"/step", s.Token, StepRequest{Steps: 1000})
		require.Equal(t, http.StatusOK, w.Code)
		solved := decode[dmn.RunState](t, w)
		require.True(t, solved.Complete)
		assert.Equal(t, 0, solved.Path[0])
		assert.Equal(t, 19, solved.Path[len(solved.Path)-1])

		w = call(t, h, http.MethodGet, "/api/v1/leaderboard/"+m.ID.String()+"?n=5", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		board := decode[map[string][]dmn.Score](t, w)
		assert.Equal(t, []dmn.Score{{Member: "a-star:0-19", Steps: solved.Steps}}, board["scores"])
	})

	t.Run("save and load", func(t *testing.T) {
		w := call(t, h, http.MethodPost, "/api/v1/mazes/"+m.ID.String()+"/save", m.Token, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		saved := decode[SaveResponse](t, w)

		w = call(t, h, http.MethodPost, "/api/v1/saved/"+saved.SavedID.String()+"/load", "", nil)
		require.Equal(t, http.StatusCreated, w.Code)
		loaded := decode[dmn.RunState](t, w)
		assert.True(t, loaded.Complete)
		assert.Equal(t, "kruskal", loaded.Algorithm)
		assert.NotEmpty(t, loaded.Token)

		w = call(t, h, http.MethodPost, "/api/v1/saved/"+uuid.NewString()+"/load", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("discard", func(t *testing.T) {
		w := call(t, h, http.MethodDelete, "/api/v1/runs/"+m.ID.String(), m.Token, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = call(t, h, http.MethodGet, "/api/v1/runs/"+m.ID.String(), m.Token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStepWithoutBodyStepsOnce(t *testing.T) {
	h := newServer(t)
	w := call(t, h, http.MethodPost, "/api/v1/mazes", "", CreateMazeRequest{Cols: 4, Rows: 4, Algorithm: "prim", Seed: 1})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[dmn.RunState](t, w)

	w = call(t, h, http.MethodPost, "/api/v1/runs/"+created.ID.String()+"/step", created.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decode[dmn.RunState](t, w).Steps)
}

func TestErrorStatuses(t *testing.T) {
	h := newServer(t)
	w := call(t, h, http.MethodPost, "/api/v1/mazes", "", CreateMazeRequest{Cols: 4, Rows: 4, Algorithm: "prim", Seed: 1})
	require.Equal(t, http.StatusCreated, w.Code)
	unfinished := decode[dmn.RunState](t, w)
	other := createFinished(t, h, CreateMazeRequest{Cols: 3, Rows: 3, Algorithm: "eller", Seed: 2})
	start, dest := 0, 99

	tests := []struct {
		name   string
		method string
		target string
		token  string
		body   any
		want   int
	}{
		{"unknown generator", http.MethodPost, "/api/v1/mazes", "", CreateMazeRequest{Cols: 4, Rows: 4, Algorithm: "nope"}, http.StatusBadRequest},
		{"missing rows", http.MethodPost, "/api/v1/mazes", "", map[string]any{"cols": 4, "algorithm": "prim"}, http.StatusBadRequest},
		{"grid too large", http.MethodPost, "/api/v1/mazes", "", CreateMazeRequest{Cols: 21, Rows: 4, Algorithm: "prim"}, http.StatusBadRequest},
		{"bad carve direction", http.MethodPost, "/api/v1/mazes", "", CreateMazeRequest{Cols: 4, Rows: 4, Algorithm: "binary-tree", Options: GeneratorOptions{HorizontalCarve: "up"}}, http.StatusBadRequest},
		{"unknown picking style", http.MethodPost, "/api/v1/mazes", "", CreateMazeRequest{Cols: 4, Rows: 4, Algorithm: "growing-tree", Options: GeneratorOptions{PickingStyle: map[string]float64{"sideways": 1}}}, http.StatusBadRequest},
		{"no token", http.MethodGet, "/api/v1/runs/" + unfinished.ID.String(), "", nil, http.StatusUnauthorized},
		{"token of another run", http.MethodGet, "/api/v1/runs/" + unfinished.ID.String(), other.Token, nil, http.StatusForbidden},
		{"export unfinished", http.MethodGet, "/api/v1/mazes/" + unfinished.ID.String() + "/export", "", nil, http.StatusConflict},
		{"export unknown", http.MethodGet, "/api/v1/mazes/" + uuid.NewString() + "/export", "", nil, http.StatusNotFound},
		{"export bad id", http.MethodGet, "/api/v1/mazes/abc/export", "", nil, http.StatusBadRequest},
		{"solve unfinished", http.MethodPost, "/api/v1/mazes/" + unfinished.ID.String() + "/solves", unfinished.Token, SolveRequest{Algorithm: "a-star", Start: &start, Dest: &start}, http.StatusConflict},
		{"solve out of bounds", http.MethodPost, "/api/v1/mazes/" + other.ID.String() + "/solves", other.Token, SolveRequest{Algorithm: "a-star", Start: &start, Dest: &dest}, http.StatusBadRequest},
		{"solve without endpoints", http.MethodPost, "/api/v1/mazes/" + other.ID.String() + "/solves", other.Token, map[string]any{"algorithm": "a-star"}, http.StatusBadRequest},
		{"unknown heuristic", http.MethodPost, "/api/v1/mazes/" + other.ID.String() + "/solves", other.Token, SolveRequest{Algorithm: "a-star", Start: &start, Dest: &start, HeuristicDistance: "manhattan"}, http.StatusBadRequest},
		{"leaderboard bad n", http.MethodGet, "/api/v1/leaderboard/" + other.ID.String() + "?n=zero", "", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(t, h, tt.method, tt.target, tt.token, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestAlgorithmsRoute(t *testing.T) {
	h := newServer(t)
	w := call(t, h, http.MethodGet, "/api/v1/algorithms", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	a := decode[dmn.Algorithms](t, w)
	assert.Len(t, a.Generators, 13)
	assert.Len(t, a.Solvers, 5)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(fmt.Errorf("wrap: %w", service.ErrRunNotFound)))
	assert.Equal(t, http.StatusNotFound, StatusOf(dmn.ErrMazeNotFound))
	assert.Equal(t, http.StatusConflict, StatusOf(service.ErrWrongRunKind))
	assert.Equal(t, http.StatusConflict, StatusOf(fmt.Errorf("%w: fingerprint ab", dmn.ErrMazeExists)))
	assert.Equal(t, http.StatusBadRequest, StatusOf(maze.ErrOutOfBounds))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}
