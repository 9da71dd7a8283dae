package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mazehunt/mazehunt-api/api/identity"
	dmn "github.com/mazehunt/mazehunt-api/domain"
	"github.com/mazehunt/mazehunt-api/maze"
	"github.com/mazehunt/mazehunt-api/service"
	"github.com/mazehunt/mazehunt-api/service/i"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionManager struct {
	startErr   error
	sessionErr error
	started    []uuid.UUID
}

func (f *fakeSessionManager) StartSession(playerID uuid.UUID, width, height int, cellSize float64) (*maze.Maze, []maze.Torch, error) {
	if f.startErr != nil {
		return nil, nil, f.startErr
	}
	m, err := maze.New(width, height, cellSize)
	if err != nil {
		return nil, nil, err
	}
	rng := rand.New(rand.NewSource(3))
	m.Generate(rng)
	f.started = append(f.started, playerID)
	return m, m.PlaceTorches(rng, width*height), nil
}

func (f *fakeSessionManager) SessionInfo(playerID uuid.UUID) ([]byte, string, error) {
	if f.sessionErr != nil {
		return nil, "", f.sessionErr
	}
	return []byte("pub-key"), "127.0.0.1:9000", nil
}

type fakeRunRepo struct {
	runs []*dmn.Run
}

func (f *fakeRunRepo) Save(run *dmn.Run) error { return nil }

func (f *fakeRunRepo) ByPlayer(uuid.UUID, int64) ([]*dmn.Run, error) {
	return f.runs, nil
}

type fakeLeaderboard struct {
	entries []i.LeaderboardEntry
}

func (f *fakeLeaderboard) SubmitTime(context.Context, uuid.UUID, int64) (bool, error) {
	return false, nil
}

func (f *fakeLeaderboard) Top(context.Context, int64) ([]i.LeaderboardEntry, error) {
	return f.entries, nil
}

// claimsFor injects the middleware contract without real tokens.
func claimsFor(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identity.ContextUserClaims, map[string]interface{}{"userID": id.String()})
		c.Next()
	}
}

func newHuntRouter(t *testing.T, playerID uuid.UUID, gsm i.GameSessionManager, rr i.RunRepo, lb i.Leaderboard) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	controller, err := NewHuntController(HuntControllerConfig{
		GameSessionManager: gsm,
		RunRepo:            rr,
		Leaderboard:        lb,
		DefaultWidth:       8,
		DefaultHeight:      8,
		CellSize:           3.0,
	})
	require.NoError(t, err)

	router := gin.New()
	controller.RegisterPublic(router.Group("/v1"))
	protected := router.Group("/v1")
	protected.Use(claimsFor(playerID))
	controller.RegisterProtected(protected)
	return router
}

func TestHuntController_StartHunt(t *testing.T) {
	playerID := uuid.New()
	gsm := &fakeSessionManager{}
	router := newHuntRouter(t, playerID, gsm, &fakeRunRepo{}, &fakeLeaderboard{})

	body, _ := json.Marshal(StartHuntRequest{Width: 5, Height: 4})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/hunts/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, []uuid.UUID{playerID}, gsm.started)

	var response StartHuntResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 5, response.Maze.Width)
	assert.Equal(t, 4, response.Maze.Height)
	assert.Equal(t, 3.0, response.Maze.CellSize)
	assert.Len(t, response.Maze.Cells, 4)
	assert.Len(t, response.Maze.Cells[0], 5)
	assert.NotEmpty(t, response.Maze.WallRects)
	assert.Equal(t, []byte("pub-key"), response.SocketPubKey)
	assert.Equal(t, "127.0.0.1:9000", response.SocketAddr)

	// A spanning maze keeps the outer boundary closed.
	assert.True(t, response.Maze.Cells[0][0].North)
	assert.True(t, response.Maze.Cells[0][0].West)
}

func TestHuntController_StartHuntUsesDefaults(t *testing.T) {
	playerID := uuid.New()
	gsm := &fakeSessionManager{}
	router := newHuntRouter(t, playerID, gsm, &fakeRunRepo{}, &fakeLeaderboard{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/hunts/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response StartHuntResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 8, response.Maze.Width)
	assert.Equal(t, 8, response.Maze.Height)
}

func TestHuntController_StartHuntRejectsHugeMaze(t *testing.T) {
	playerID := uuid.New()
	router := newHuntRouter(t, playerID, &fakeSessionManager{}, &fakeRunRepo{}, &fakeLeaderboard{})

	body, _ := json.Marshal(StartHuntRequest{Width: 1000, Height: 1000})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/hunts/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHuntController_StartHuntErrorStatuses(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"running hunt conflicts", service.ErrSessionExists, http.StatusConflict},
		{"unbound socket is a server fault", service.ErrSocketNotBound, http.StatusInternalServerError},
		{"maze rejection is a bad request", maze.ErrInvalidDimensions, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			playerID := uuid.New()
			gsm := &fakeSessionManager{startErr: tc.err}
			router := newHuntRouter(t, playerID, gsm, &fakeRunRepo{}, &fakeLeaderboard{})

			body, _ := json.Marshal(StartHuntRequest{Width: 5, Height: 5})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/hunts/", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestHuntController_SessionInfoWithoutHunt(t *testing.T) {
	playerID := uuid.New()
	gsm := &fakeSessionManager{sessionErr: errors.New("no session")}
	router := newHuntRouter(t, playerID, gsm, &fakeRunRepo{}, &fakeLeaderboard{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/hunts/session", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHuntController_Leaderboard(t *testing.T) {
	playerID := uuid.New()
	first := uuid.New()
	lb := &fakeLeaderboard{entries: []i.LeaderboardEntry{{PlayerID: first, TimeMillis: 30500}}}
	router := newHuntRouter(t, playerID, &fakeSessionManager{}, &fakeRunRepo{}, lb)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/leaderboard", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response []LeaderboardEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, first.String(), response[0].PlayerID)
	assert.Equal(t, int64(30500), response[0].TimeMillis)
}
