package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beka-birhanu/mazelab/api"
	"github.com/beka-birhanu/mazelab/api/auth"
	"github.com/beka-birhanu/mazelab/api/i"
	dmn "github.com/beka-birhanu/mazelab/domain"
	"github.com/beka-birhanu/mazelab/generator"
	"github.com/beka-birhanu/mazelab/infrastruture/token"
	"github.com/beka-birhanu/mazelab/service"
	service_i "github.com/beka-birhanu/mazelab/service/i"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopRepo struct{}

func (nopRepo) Save(context.Context, *dmn.SavedMaze) error { return nil }
func (nopRepo) ByID(context.Context, uuid.UUID) (*dmn.SavedMaze, error) {
	return nil, dmn.ErrMazeNotFound
}
func (nopRepo) ByFingerprint(context.Context, string) (*dmn.SavedMaze, error) {
	return nil, dmn.ErrMazeNotFound
}

type nopBoard struct{}

func (nopBoard) Record(context.Context, string, string, int) (bool, error) { return true, nil }
func (nopBoard) Top(context.Context, string, int64) ([]dmn.Score, error)    { return nil, nil }

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

func setup(t *testing.T) (*httptest.Server, func(dmn.MazeSpec) *dmn.RunState) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokenizer := token.NewJwtService("test-secret", "mazelab")
	lab, err := service.NewLab(nopRepo{}, nopBoard{}, tokenizer, nopLogger{}, &service.LabOptions{MaxStepsPerRequest: 1000})
	require.NoError(t, err)

	sc, err := NewStreamController(lab, nopLogger{}, &Options{Interval: 5 * time.Millisecond})
	require.NoError(t, err)

	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []i.Controller{sc},
		AuthorizationMiddleware: auth.Authoriz(tokenizer),
	})
	srv := httptest.NewServer(router.Handler())
	t.Cleanup(srv.Close)

	create := func(spec dmn.MazeSpec) *dmn.RunState {
		s, err := lab.CreateMaze(spec)
		require.NoError(t, err)
		return s
	}
	return srv, create
}

func wsURL(srv *httptest.Server, run *dmn.RunState, query string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/runs/" + run.ID.String() + "/stream?token=" + run.Token + query
}

func readFrame(t *testing.T, conn *websocket.Conn) (dmn.RunState, error) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return dmn.RunState{}, err
	}
	var s dmn.RunState
	require.NoError(t, json.Unmarshal(data, &s))
	return s, nil
}

func TestStreamPlaysRunToCompletion(t *testing.T) {
	srv, create := setup(t)
	run := create(dmn.MazeSpec{Cols: 6, Rows: 6, Algorithm: generator.KeyRecursiveBacktrack, Seed: 4})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, run, "&batch=7"), nil)
	require.NoError(t, err)
	defer conn.Close()

	var frames []dmn.RunState
	for {
		s, err := readFrame(t, conn)
		if err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), err)
			break
		}
		frames = append(frames, s)
	}

	require.NotEmpty(t, frames)
	last := frames[len(frames)-1]
	assert.True(t, last.Complete)
	for k := 1; k < len(frames); k++ {
		assert.Greater(t, frames[k].Steps, frames[k-1].Steps)
		assert.LessOrEqual(t, frames[k].Steps-frames[k-1].Steps, 7)
	}
	for _, f := range frames[:len(frames)-1] {
		assert.False(t, f.Complete)
	}
}

func TestStreamControls(t *testing.T) {
	srv, create := setup(t)
	run := create(dmn.MazeSpec{Cols: 20, Rows: 20, Algorithm: generator.KeyPrim, Seed: 2})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, run, ""), nil)
	require.NoError(t, err)
	defer conn.Close()

	first, err := readFrame(t, conn)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Steps)

	require.NoError(t, conn.WriteJSON(Control{Action: "pause"}))
	var paused dmn.RunState
	for k := 0; ; k++ {
		require.Less(t, k, 100, "run never paused")
		a, err := readFrame(t, conn)
		require.NoError(t, err)
		b, err := readFrame(t, conn)
		require.NoError(t, err)
		if a.Steps == b.Steps {
			paused = b
			break
		}
	}
	require.False(t, paused.Complete)

	require.NoError(t, conn.WriteJSON(Control{Action: "batch", Batch: 1000}))
	require.NoError(t, conn.WriteJSON(Control{Action: "resume"}))
	var last dmn.RunState
	for {
		s, err := readFrame(t, conn)
		if err != nil {
			break
		}
		last = s
	}
	assert.True(t, last.Complete)
	assert.Greater(t, last.Steps, paused.Steps)
}

func TestStreamRejectsBadRequests(t *testing.T) {
	srv, create := setup(t)
	run := create(dmn.MazeSpec{Cols: 3, Rows: 3, Algorithm: generator.KeyPrim, Seed: 2})

	tests := []struct {
		name string
		url  string
		want int
	}{
		{"bad interval", wsURL(srv, run, "&interval=1"), http.StatusBadRequest},
		{"bad batch", wsURL(srv, run, "&batch=-3"), http.StatusBadRequest},
		{"no token", strings.SplitN(wsURL(srv, run, ""), "?", 2)[0], http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp, err := websocket.DefaultDialer.Dial(tt.url, nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

// brokenLab fails every State call with err.
type brokenLab struct {
	service_i.Lab
	err error
}

func (l brokenLab) State(uuid.UUID) (*dmn.RunState, error) { return nil, l.err }

func TestStreamStatusFollowsLabErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown run", fmt.Errorf("lookup: %w", service.ErrRunNotFound), http.StatusNotFound},
		{"unexpected failure", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := NewStreamController(brokenLab{err: tt.err}, nopLogger{}, nil)
			require.NoError(t, err)
			engine := gin.New()
			sc.RegisterProtected(engine.Group("/"))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/runs/"+uuid.NewString()+"/stream", nil)
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
