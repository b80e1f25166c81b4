// Package stream plays a run over a websocket, sending one frame per tick.
package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	labapi "github.com/beka-birhanu/mazelab/api/lab"
	dmn "github.com/beka-birhanu/mazelab/domain"
	"github.com/beka-birhanu/mazelab/export"
	"github.com/beka-birhanu/mazelab/service/i"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	defaultInterval = 50 * time.Millisecond
	minInterval     = 5 * time.Millisecond
	defaultBatch    = 1
	writeWait       = time.Second
)

// Options tune the playback cadence.
type Options struct {
	Interval time.Duration // Time between frames.
	Batch    int           // Steps per frame.
}

// Control is a message a client sends to steer playback.
type Control struct {
	Action string `json:"action"` // "pause", "resume" or "batch".
	Batch  int    `json:"batch"`
}

// StreamController upgrades run routes to websockets and plays the run.
type StreamController struct {
	lab      i.Lab
	logger   i.Logger
	upgrader websocket.Upgrader
	opts     *Options
}

// NewStreamController creates a StreamController. Zero valued options fall back to defaults.
func NewStreamController(lab i.Lab, logger i.Logger, opts *Options) (*StreamController, error) {
	if lab == nil || logger == nil {
		return nil, errors.New("stream: missing dependency")
	}
	if opts == nil {
		opts = &Options{}
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.Batch <= 0 {
		opts.Batch = defaultBatch
	}

	return &StreamController{
		lab:      lab,
		logger:   logger,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		opts:     opts,
	}, nil
}

// RegisterPublic registers public routes.
func (sc *StreamController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (sc *StreamController) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/runs/:ID/stream", sc.stream)
}

// player holds the playback settings a client can change mid stream.
type player struct {
	mu     sync.Mutex
	paused bool
	batch  int
}

func (p *player) apply(c Control) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch c.Action {
	case "pause":
		p.paused = true
	case "resume":
		p.paused = false
	case "batch":
		if c.Batch > 0 {
			p.batch = c.Batch
		}
	}
}

func (p *player) next() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.batch, !p.paused
}

// stream plays the run until it completes or the client goes away.
// The interval and batch query parameters override the defaults.
func (sc *StreamController) stream(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	interval, batch, err := sc.cadence(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := sc.lab.State(id); err != nil {
		status := labapi.StatusOf(err)
		if status == http.StatusInternalServerError {
			sc.logger.Error(fmt.Sprintf("Failed to read run: Run=%s: %s", id, err))
			ctx.JSON(status, gin.H{"error": "internal error"})
			return
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	conn, err := sc.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		sc.logger.Warning(fmt.Sprintf("Websocket upgrade failed: Run=%s: %s", id, err))
		return
	}
	defer conn.Close()

	playCtx, cancel := context.WithCancel(ctx.Request.Context())
	defer cancel()

	p := &player{batch: batch}
	go sc.readControls(conn, p, cancel)

	sc.logger.Info(fmt.Sprintf("Streaming run: ID=%s Interval=%s Batch=%d", id, interval, batch))
	if err := sc.play(playCtx, conn, id, p, interval); err != nil {
		sc.logger.Warning(fmt.Sprintf("Stream ended: Run=%s: %s", id, err))
		return
	}

	deadline := time.Now().Add(writeWait)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run complete"), deadline)
}

func (sc *StreamController) play(ctx context.Context, conn *websocket.Conn, id uuid.UUID, p *player, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		n, playing := p.next()
		var (
			state *dmn.RunState
			err   error
		)
		if playing {
			state, err = sc.lab.Step(ctx, id, n)
		} else {
			state, err = sc.lab.State(id)
		}
		if err != nil {
			return err
		}

		if err := writeFrame(conn, state); err != nil {
			return err
		}
		if state.Complete {
			return nil
		}
	}
}

// readControls applies client messages until the connection closes, then cancels playback.
func (sc *StreamController) readControls(conn *websocket.Conn, p *player, cancel context.CancelFunc) {
	defer cancel()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var c Control
		if err := json.Unmarshal(data, &c); err != nil {
			sc.logger.Warning(fmt.Sprintf("Ignoring malformed control message: %s", err))
			continue
		}
		p.apply(c)
	}
}

func (sc *StreamController) cadence(ctx *gin.Context) (time.Duration, int, error) {
	interval, batch := sc.opts.Interval, sc.opts.Batch
	if raw := ctx.Query("interval"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || time.Duration(ms)*time.Millisecond < minInterval {
			return 0, 0, fmt.Errorf("interval must be an integer of at least %d milliseconds", minInterval.Milliseconds())
		}
		interval = time.Duration(ms) * time.Millisecond
	}
	if raw := ctx.Query("batch"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return 0, 0, errors.New("batch must be a positive integer")
		}
		batch = n
	}
	return interval, batch, nil
}

func writeFrame(conn *websocket.Conn, state *dmn.RunState) error {
	data, err := export.Encode(state)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
