package i

import (
	"github.com/google/uuid"
	"github.com/mazehunt/mazehunt-api/maze"
)

// GameSessionManager starts hunts and provides session-related information.
type GameSessionManager interface {
	// StartSession begins a hunt for the player on a maze of the given
	// dimensions and returns the generated layout. A player runs at most
	// one hunt at a time.
	StartSession(playerID uuid.UUID, width, height int, cellSize float64) (*maze.Maze, []maze.Torch, error)

	// SessionInfo returns the realtime socket public key and address for
	// the player's running hunt.
	SessionInfo(playerID uuid.UUID) ([]byte, string, error)
}
