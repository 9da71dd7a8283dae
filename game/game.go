package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mazehunt/mazehunt-api/maze"
)

// Game-related errors.
var (
	ErrNilMaze    = errors.New("maze is required")
	ErrNilEncoder = errors.New("encoder is required")
)

// Action types carried as the first byte of ActionChan records.
const (
	InputActionType byte = 1 << iota // movement intent follows
	StateRequestActionType           // re-broadcast the current state
)

// tickInterval is the fixed simulation step. 20 ticks per second is ample
// for corridor-scale movement.
const tickInterval = 50 * time.Millisecond

// actionBacklog buffers action records so that senders racing a resolving
// hunt never block or panic; records arriving after the loop exits sit in
// the buffer and are collected with the Game.
const actionBacklog = 16

// Game runs one authoritative hunt: a single player against PursuerCount
// pursuers inside a generated maze. It consumes action records, advances
// the simulation on a fixed tick and broadcasts encoded state snapshots.
type Game struct {
	maze     *maze.Maze
	walls    []maze.WallRect
	player   *Player
	pursuers []*Pursuer

	outcome   Outcome
	version   int64
	startedAt time.Time
	elapsed   time.Duration

	encoder Encoder

	stop         chan bool
	stopOnce     sync.Once
	stateChan    chan []byte
	actionChan   chan []byte
	endChan      chan []byte
	timeoutTimer *time.Timer
	wg           *sync.WaitGroup

	sync.RWMutex
}

// New creates a hunt over a generated maze. The player spawns at the maze
// start; pursuers start at the exit and the two far corners, the classic
// arrangement that leaves no quadrant safe.
func New(m *maze.Maze, playerID uuid.UUID, e Encoder) (*Game, error) {
	if m == nil {
		return nil, ErrNilMaze
	}
	if e == nil {
		return nil, ErrNilEncoder
	}

	walls := make([]maze.WallRect, m.MaxWallRects())
	walls = walls[:m.AppendWallRects(walls)]

	px, pz := m.CellToWorld(m.Start().X, m.Start().Y)
	player := &Player{ID: playerID, Pos: Vec2{X: px, Z: pz}}

	spawns := []maze.CellPos{
		m.Exit(),
		{X: m.Width() - 1, Y: 0},
		{X: 0, Y: m.Height() - 1},
	}
	pursuers := make([]*Pursuer, 0, PursuerCount)
	for i := 0; i < PursuerCount; i++ {
		sx, sz := m.CellToWorld(spawns[i%len(spawns)].X, spawns[i%len(spawns)].Y)
		pursuers = append(pursuers, &Pursuer{Pos: Vec2{X: sx, Z: sz}})
	}

	return &Game{
		maze:       m,
		walls:      walls,
		player:     player,
		pursuers:   pursuers,
		encoder:    e,
		startedAt:  time.Now(),
		stop:       make(chan bool, 1),
		stateChan:  make(chan []byte),
		actionChan: make(chan []byte, actionBacklog),
		endChan:    make(chan []byte),
		wg:         &sync.WaitGroup{},
	}, nil
}

// StateChan delivers encoded snapshots while the hunt runs.
func (g *Game) StateChan() <-chan []byte { return g.stateChan }

// EndChan delivers the final encoded snapshot, then closes.
func (g *Game) EndChan() <-chan []byte { return g.endChan }

// ActionChan accepts action records: the action type byte followed by the
// encoded payload.
func (g *Game) ActionChan() chan<- []byte { return g.actionChan }

// Start runs the hunt until it resolves or gameDuration passes. It blocks;
// run it on its own goroutine.
func (g *Game) Start(gameDuration time.Duration) {
	g.Lock()
	g.startedAt = time.Now()
	g.timeoutTimer = time.AfterFunc(gameDuration, g.timeOut)
	g.Unlock()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-g.stop:
			return
		case <-ticker.C:
			g.tick(tickInterval.Seconds())
		case action := <-g.actionChan:
			if len(action) < 1 {
				continue
			}
			g.handleAction(action[0], action[1:])
		}
	}
}

// Stop ends the hunt, drains in-flight broadcasts and emits the final
// state on EndChan. Safe to call more than once. The action channel stays
// open: sessions may keep relaying client records for a moment after the
// hunt resolves, and a send must never panic.
func (g *Game) Stop() {
	g.stopOnce.Do(func() {
		g.stop <- true
		g.wg.Wait()
		g.Lock()
		if g.timeoutTimer != nil {
			g.timeoutTimer.Stop()
		}
		g.Unlock()
		close(g.stateChan)
		g.wg.Add(1)
		g.broadcastState(true)
		close(g.endChan)
	})
}

func (g *Game) timeOut() {
	g.Lock()
	if g.outcome == OutcomePlaying {
		g.outcome = OutcomeTimedOut
		g.version++
		g.elapsed = time.Since(g.startedAt)
	}
	g.Unlock()
	g.Stop()
}

func (g *Game) handleAction(t byte, payload []byte) {
	switch t {
	case StateRequestActionType:
		g.wg.Add(1)
		go g.broadcastState(false)
	case InputActionType:
		in, err := g.encoder.UnmarshalInput(payload)
		if err != nil {
			return
		}
		g.Lock()
		g.player.wish = Vec2{X: in.DirX, Z: in.DirZ}.Normalized()
		g.player.running = in.Run
		g.Unlock()
	}
}

// tick advances the hunt by dt seconds: player slide-moves along its wish
// direction, pursuers chase in a straight line, then contact and the exit
// cell are checked. Standing on the exit wins even on the tick a pursuer
// makes contact.
func (g *Game) tick(dt float64) {
	g.Lock()
	if g.outcome != OutcomePlaying {
		g.Unlock()
		return
	}

	speed := PlayerSpeed
	if g.player.running {
		speed *= RunMultiplier
	}
	g.player.Pos = slideStep(g.player.Pos, g.player.wish.Scale(speed*dt), PlayerRadius, g.walls)

	outcome := OutcomePlaying
	for _, p := range g.pursuers {
		toPlayer := g.player.Pos.Sub(p.Pos)
		if toPlayer.Len() > 1e-3 {
			step := toPlayer.Normalized().Scale(PursuerSpeed * dt)
			p.Pos = slideStep(p.Pos, step, PursuerRadius, g.walls)
		}
		if circlesIntersect(g.player.Pos, PlayerRadius, p.Pos, PursuerRadius) {
			outcome = OutcomeCaught
		}
	}

	cx, cy := g.maze.WorldToCell(g.player.Pos.X, g.player.Pos.Z)
	if g.maze.IsExit(cx, cy) {
		outcome = OutcomeWon
	}

	g.version++
	g.elapsed = time.Since(g.startedAt)

	if outcome != OutcomePlaying {
		g.outcome = outcome
		g.Unlock()
		go g.Stop()
		return
	}
	g.Unlock()

	g.wg.Add(1)
	go g.broadcastState(false)
}

func (g *Game) broadcastState(ended bool) {
	defer g.wg.Done()
	payload, err := g.encoder.MarshalState(g.Snapshot())
	if err != nil {
		return
	}

	if ended {
		g.endChan <- payload
	} else {
		g.stateChan <- payload
	}
}

// Snapshot returns a copy of the current hunt state.
func (g *Game) Snapshot() *State {
	g.RLock()
	defer g.RUnlock()

	s := &State{
		Version:       g.version,
		Outcome:       g.outcome,
		ElapsedMillis: g.elapsed.Milliseconds(),
		Player:        PlayerState{ID: g.player.ID, X: g.player.Pos.X, Z: g.player.Pos.Z},
		Pursuers:      make([]PursuerState, 0, len(g.pursuers)),
	}
	for _, p := range g.pursuers {
		s.Pursuers = append(s.Pursuers, PursuerState{X: p.Pos.X, Z: p.Pos.Z})
	}
	return s
}
