package labapi

import (
	"errors"
	"net/http"
	"strconv"

	dmn "github.com/beka-birhanu/mazelab/domain"
	"github.com/beka-birhanu/mazelab/maze"
	"github.com/beka-birhanu/mazelab/service"
	"github.com/beka-birhanu/mazelab/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultLeaderboardSize = 10

// LabController serves generation and solve runs.
type LabController struct {
	lab    i.Lab
	logger i.Logger
}

// NewLabController initializes a LabController.
func NewLabController(lab i.Lab, logger i.Logger) (*LabController, error) {
	if lab == nil || logger == nil {
		return nil, errors.New("lab controller: missing dependency")
	}
	return &LabController{
		lab:    lab,
		logger: logger,
	}, nil
}

// RegisterPublic registers public routes.
func (lc *LabController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/algorithms", lc.algorithms)
	route.POST("/mazes", lc.createMaze)
	route.GET("/mazes/:ID/export", lc.export)
	route.GET("/leaderboard/:ID", lc.leaderboard)
	route.POST("/saved/:ID/load", lc.load)
}

// RegisterProtected registers routes that need the run's token.
func (lc *LabController) RegisterProtected(route *gin.RouterGroup) {
	runs := route.Group("/runs")
	{
		runs.GET("/:ID", lc.state)
		runs.POST("/:ID/step", lc.step)
		runs.DELETE("/:ID", lc.discard)
	}

	mazes := route.Group("/mazes")
	{
		mazes.POST("/:ID/solves", lc.solve)
		mazes.POST("/:ID/save", lc.save)
	}
}

func (lc *LabController) algorithms(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, lc.lab.Algorithms())
}

// createMaze starts a generation run and returns it with its token.
func (lc *LabController) createMaze(ctx *gin.Context) {
	var request CreateMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	spec, err := request.Spec()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := lc.lab.CreateMaze(spec)
	if err != nil {
		lc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, state)
}

func (lc *LabController) state(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}
	state, err := lc.lab.State(id)
	if err != nil {
		lc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// step advances a run. An empty body steps once.
func (lc *LabController) step(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	request := StepRequest{Steps: 1}
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	state, err := lc.lab.Step(ctx.Request.Context(), id, request.Steps)
	if err != nil {
		lc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, state)
}

func (lc *LabController) discard(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}
	if err := lc.lab.Discard(id); err != nil {
		lc.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// solve starts a solve run over the maze of the run in the path.
func (lc *LabController) solve(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	var request SolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := lc.lab.Solve(id, request.Spec())
	if err != nil {
		lc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, state)
}

func (lc *LabController) export(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}
	out, err := lc.lab.Export(id)
	if err != nil {
		lc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, out)
}

func (lc *LabController) save(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}
	savedID, err := lc.lab.Save(ctx.Request.Context(), id)
	if err != nil {
		lc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, &SaveResponse{SavedID: savedID})
}

// load starts a run from a saved maze and returns it with its token.
func (lc *LabController) load(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}
	state, err := lc.lab.Load(ctx.Request.Context(), id)
	if err != nil {
		lc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, state)
}

func (lc *LabController) leaderboard(ctx *gin.Context) {
	id, ok := runID(ctx)
	if !ok {
		return
	}

	n := int64(defaultLeaderboardSize)
	if raw := ctx.Query("n"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		n = parsed
	}

	scores, err := lc.lab.Leaderboard(ctx.Request.Context(), id, n)
	if err != nil {
		lc.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"scores": scores})
}

// fail writes the status matching err. Unexpected errors are logged and hidden.
func (lc *LabController) fail(ctx *gin.Context, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		lc.logger.Error(err.Error())
		ctx.JSON(status, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

// StatusOf maps service and maze errors to HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrRunNotFound), errors.Is(err, dmn.ErrMazeNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrRunIncomplete),
		errors.Is(err, service.ErrWrongRunKind),
		errors.Is(err, dmn.ErrMazeExists):
		return http.StatusConflict
	case errors.Is(err, maze.ErrConfiguration),
		errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, maze.ErrOutOfBounds):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func runID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
