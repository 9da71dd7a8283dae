package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	general_i "github.com/beka-birhanu/vinom/common/interfaces/general"
	"github.com/google/uuid"
	dmn "github.com/mazehunt/mazehunt-api/domain"
	"github.com/mazehunt/mazehunt-api/game"
	"github.com/mazehunt/mazehunt-api/maze"
	"github.com/mazehunt/mazehunt-api/service/i"
)

const (
	defaultGameDuration = 5 * time.Minute

	gameStateRecordType = 10
	gameEndedRecordType = 11

	persistTimeout = 5 * time.Second
)

var (
	ErrSessionExists  = errors.New("player already has a running hunt")
	ErrNoSession      = errors.New("player has no running hunt")
	ErrSocketNotBound = errors.New("no socket bound to the session manager")
	ErrInvalidToken   = errors.New("invalid token")
	errMissingDeps    = errors.New("session manager requires a maze factory, encoder, repos and leaderboard")
)

type session struct {
	gameServer i.GameServer
	width      int
	height     int
}

// GameSessionManager runs one hunt per player: it creates the maze and the
// game server, relays socket records to the game and persists the result
// when the hunt ends.
type GameSessionManager struct {
	socket       i.ServerSocketManager
	socketPubKey []byte
	socketAddr   string

	sessions map[uuid.UUID]*session

	mazeFactory func(width, height int, cellSize float64) (*maze.Maze, []maze.Torch, error)
	encoder     game.Encoder
	userRepo    i.UserRepo
	runRepo     i.RunRepo
	leaderboard i.Leaderboard
	logger      general_i.Logger

	sync.RWMutex
}

// Config holds the dependencies for a GameSessionManager. SocketPubKey and
// SocketAddr describe the realtime socket handed to clients; the socket
// itself is bound later with BindSocket since its construction needs the
// manager as authenticator.
type Config struct {
	SocketPubKey []byte
	SocketAddr   string
	MazeFactory  func(width, height int, cellSize float64) (*maze.Maze, []maze.Torch, error)
	Encoder      game.Encoder
	UserRepo     i.UserRepo
	RunRepo      i.RunRepo
	Leaderboard  i.Leaderboard
	Logger       general_i.Logger
}

func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c.MazeFactory == nil || c.Encoder == nil || c.UserRepo == nil || c.RunRepo == nil || c.Leaderboard == nil {
		return nil, errMissingDeps
	}

	return &GameSessionManager{
		socketPubKey: c.SocketPubKey,
		socketAddr:   c.SocketAddr,
		sessions:     make(map[uuid.UUID]*session),
		mazeFactory:  c.MazeFactory,
		encoder:      c.Encoder,
		userRepo:     c.UserRepo,
		runRepo:      c.RunRepo,
		leaderboard:  c.Leaderboard,
		logger:       c.Logger,
	}, nil
}

// BindSocket attaches the realtime socket used to broadcast hunt state.
func (g *GameSessionManager) BindSocket(s i.ServerSocketManager) {
	g.Lock()
	defer g.Unlock()
	g.socket = s
}

// StartSession begins a hunt for the player and returns the generated
// layout. A player runs one hunt at a time; the previous one must end
// before a new one starts.
func (g *GameSessionManager) StartSession(playerID uuid.UUID, width, height int, cellSize float64) (*maze.Maze, []maze.Torch, error) {
	g.Lock()
	defer g.Unlock()

	if g.socket == nil {
		return nil, nil, ErrSocketNotBound
	}
	if _, ok := g.sessions[playerID]; ok {
		return nil, nil, ErrSessionExists
	}

	m, torches, err := g.mazeFactory(width, height, cellSize)
	if err != nil {
		g.logger.Error(fmt.Sprintf("creating maze for a new hunt: %s", err))
		return nil, nil, err
	}

	gameServer, err := game.New(m, playerID, g.encoder)
	if err != nil {
		g.logger.Error(fmt.Sprintf("creating game server for a new hunt: %s", err))
		return nil, nil, err
	}

	g.sessions[playerID] = &session{
		gameServer: gameServer,
		width:      width,
		height:     height,
	}
	go gameServer.Start(defaultGameDuration)
	go g.listenGameChan(playerID)

	g.logger.Info(fmt.Sprintf("started new hunt for player: %s", playerID))
	return m, torches, nil
}

// SessionInfo returns the realtime socket public key and address for the
// player's running hunt.
func (g *GameSessionManager) SessionInfo(playerID uuid.UUID) ([]byte, string, error) {
	g.RLock()
	defer g.RUnlock()
	if _, ok := g.sessions[playerID]; !ok {
		return nil, "", ErrNoSession
	}
	return g.socketPubKey, g.socketAddr, nil
}

// Authenticate validates a socket token, which is the raw player ID bytes
// issued at session start.
func (g *GameSessionManager) Authenticate(s []byte) (uuid.UUID, error) {
	g.RLock()
	defer g.RUnlock()
	id, err := uuid.FromBytes(s)
	if err != nil {
		g.logger.Error("invalid token provided")
		return uuid.Nil, ErrInvalidToken
	}

	if _, ok := g.sessions[id]; !ok {
		g.logger.Error(fmt.Sprintf("player does not have a hunt: %s", id))
		return uuid.Nil, ErrNoSession
	}

	g.logger.Info(fmt.Sprintf("authenticated player: %s", id))
	return id, nil
}

// HandlePlayerRequest forwards a socket record from an authenticated player
// to its game server.
func (g *GameSessionManager) HandlePlayerRequest(pID uuid.UUID, actionType byte, payload []byte) {
	g.RLock()
	defer g.RUnlock()
	sess, ok := g.sessions[pID]
	if !ok {
		g.logger.Error(fmt.Sprintf("received request for player without a hunt: %s", pID))
		return
	}

	// A resolved hunt stops consuming actions while its result is being
	// persisted; drop the record rather than stall the socket handler.
	select {
	case sess.gameServer.ActionChan() <- append([]byte{actionType}, payload...):
	default:
	}
}

func (g *GameSessionManager) listenGameChan(playerID uuid.UUID) {
	g.RLock()
	sess := g.sessions[playerID]
	g.RUnlock()

	stateChan := sess.gameServer.StateChan()
	endChan := sess.gameServer.EndChan()
	for {
		select {
		case val, ok := <-stateChan:
			if !ok {
				stateChan = nil
				continue
			}
			g.socket.BroadcastToClients([]uuid.UUID{playerID}, gameStateRecordType, val)
		case val, ok := <-endChan:
			if !ok {
				return
			}
			g.socket.BroadcastToClients([]uuid.UUID{playerID}, gameEndedRecordType, val)
			g.finishSession(playerID, sess, val)
			return
		}
	}
}

// finishSession persists the result of an ended hunt and frees the session
// slot. Escapes feed the leaderboard and the player's best time.
func (g *GameSessionManager) finishSession(playerID uuid.UUID, sess *session, finalPayload []byte) {
	defer g.clean(playerID)

	state, err := g.encoder.UnmarshalState(finalPayload)
	if err != nil {
		g.logger.Error(fmt.Sprintf("decoding final hunt state: %s", err))
		return
	}

	run, err := dmn.NewRun(dmn.RunConfig{
		PlayerID:       playerID,
		MazeWidth:      sess.width,
		MazeHeight:     sess.height,
		Outcome:        state.Outcome.String(),
		DurationMillis: state.ElapsedMillis,
	})
	if err != nil {
		g.logger.Error(fmt.Sprintf("recording hunt result: %s", err))
		return
	}

	if err := g.runRepo.Save(run); err != nil {
		g.logger.Error(fmt.Sprintf("saving hunt result: %s", err))
	}

	if state.Outcome != game.OutcomeWon {
		g.logger.Info(fmt.Sprintf("hunt ended for player %s: %s", playerID, state.Outcome))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	improved, err := g.leaderboard.SubmitTime(ctx, playerID, state.ElapsedMillis)
	if err != nil {
		g.logger.Error(fmt.Sprintf("submitting escape time: %s", err))
	}
	if !improved {
		return
	}

	user, err := g.userRepo.ByID(playerID)
	if err != nil {
		g.logger.Error(fmt.Sprintf("loading player for best time update: %s", err))
		return
	}
	if user.RecordTime(state.ElapsedMillis) {
		if err := g.userRepo.Save(user); err != nil {
			g.logger.Error(fmt.Sprintf("saving player best time: %s", err))
		}
	}
	g.logger.Info(fmt.Sprintf("player %s escaped in %dms", playerID, state.ElapsedMillis))
}

func (g *GameSessionManager) clean(playerID uuid.UUID) {
	g.Lock()
	defer g.Unlock()
	delete(g.sessions, playerID)
}

// StopAll stops every running hunt.
func (g *GameSessionManager) StopAll() {
	g.RLock()
	servers := make([]i.GameServer, 0, len(g.sessions))
	for _, sess := range g.sessions {
		servers = append(servers, sess.gameServer)
	}
	g.RUnlock()

	for _, gs := range servers {
		gs.Stop()
	}
}
