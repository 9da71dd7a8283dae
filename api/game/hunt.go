package gameapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mazehunt/mazehunt-api/api/identity"
	"github.com/mazehunt/mazehunt-api/service"
	"github.com/mazehunt/mazehunt-api/service/i"
)

const (
	maxMazeDimension   = 64
	runHistoryLimit    = 20
	leaderboardLimit   = 10
	leaderboardTimeout = 2 * time.Second
)

// HuntController manages hunt sessions over HTTP.
type HuntController struct {
	gameSessionManager i.GameSessionManager
	runRepo            i.RunRepo
	leaderboard        i.Leaderboard

	defaultWidth  int
	defaultHeight int
	cellSize      float64
}

// HuntControllerConfig holds the dependencies and maze defaults for a
// HuntController.
type HuntControllerConfig struct {
	GameSessionManager i.GameSessionManager
	RunRepo            i.RunRepo
	Leaderboard        i.Leaderboard
	DefaultWidth       int
	DefaultHeight      int
	CellSize           float64
}

// NewHuntController initializes a HuntController.
func NewHuntController(c HuntControllerConfig) (*HuntController, error) {
	return &HuntController{
		gameSessionManager: c.GameSessionManager,
		runRepo:            c.RunRepo,
		leaderboard:        c.Leaderboard,
		defaultWidth:       c.DefaultWidth,
		defaultHeight:      c.DefaultHeight,
		cellSize:           c.CellSize,
	}, nil
}

// RegisterPublic registers public routes.
func (hc *HuntController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard", hc.topTimes)
}

// RegisterProtected registers protected routes.
func (hc *HuntController) RegisterProtected(route *gin.RouterGroup) {
	hunts := route.Group("/hunts")
	{
		hunts.POST("/", hc.startHunt)
		hunts.GET("/session", hc.sessionInfo)
		hunts.GET("/runs", hc.runs)
	}
}

// startHunt begins a new hunt for the authenticated player and returns the
// generated maze along with the realtime socket coordinates.
func (hc *HuntController) startHunt(ctx *gin.Context) {
	playerID, err := identity.UserIDFromContext(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request StartHuntRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	width, height := request.Width, request.Height
	if width == 0 {
		width = hc.defaultWidth
	}
	if height == 0 {
		height = hc.defaultHeight
	}
	if width < 1 || height < 1 || width > maxMazeDimension || height > maxMazeDimension {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "maze dimensions out of range"})
		return
	}

	m, torches, err := hc.gameSessionManager.StartSession(playerID, width, height, hc.cellSize)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrSessionExists):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrSocketNotBound):
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while starting hunt"})
		return
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pubKey, socketAddr, err := hc.gameSessionManager.SessionInfo(playerID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while starting hunt"})
		return
	}

	response := &StartHuntResponse{
		Maze:         newMazeResponse(m, torches),
		SocketPubKey: pubKey,
		SocketAddr:   socketAddr,
	}
	ctx.JSON(http.StatusCreated, response)
}

// sessionInfo retrieves the realtime socket coordinates for the player's
// running hunt.
func (hc *HuntController) sessionInfo(ctx *gin.Context) {
	playerID, err := identity.UserIDFromContext(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	pubKey, socketAddr, err := hc.gameSessionManager.SessionInfo(playerID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No Session"})
		return
	}

	response := &SessionInfoResponse{
		SocketPubKey: pubKey,
		SocketAddr:   socketAddr,
	}
	ctx.JSON(http.StatusOK, response)
}

// runs lists the authenticated player's recent hunts, newest first.
func (hc *HuntController) runs(ctx *gin.Context) {
	playerID, err := identity.UserIDFromContext(ctx)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	runs, err := hc.runRepo.ByPlayer(playerID, runHistoryLimit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading runs"})
		return
	}

	response := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		response = append(response, RunResponse{
			ID:             run.ID.String(),
			MazeWidth:      run.MazeWidth,
			MazeHeight:     run.MazeHeight,
			Outcome:        run.Outcome,
			DurationMillis: run.DurationMillis,
			FinishedAt:     run.FinishedAt.Format(time.RFC3339),
		})
	}
	ctx.JSON(http.StatusOK, response)
}

// topTimes lists the fastest escapes.
func (hc *HuntController) topTimes(ctx *gin.Context) {
	timeoutCtx, cancel := context.WithTimeout(ctx, leaderboardTimeout)
	defer cancel()

	entries, err := hc.leaderboard.Top(timeoutCtx, leaderboardLimit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading leaderboard"})
		return
	}

	response := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, LeaderboardEntryResponse{
			PlayerID:   entry.PlayerID.String(),
			TimeMillis: entry.TimeMillis,
		})
	}
	ctx.JSON(http.StatusOK, response)
}
