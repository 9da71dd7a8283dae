package game

import "github.com/google/uuid"

// Tuning constants for the chase. Speeds are world units per second; the
// pursuers are slightly slower than a walking player but faster than a
// careless one expects.
const (
	PlayerRadius  = 0.30
	PlayerSpeed   = 5.0
	RunMultiplier = 1.8

	PursuerCount  = 3
	PursuerRadius = 0.35
	PursuerSpeed  = 3.5
)

// Player is the hunted. wish is the client-supplied movement direction,
// unit length or zero, applied each tick.
type Player struct {
	ID  uuid.UUID
	Pos Vec2

	wish    Vec2
	running bool
}

// Pursuer chases the player in a straight line, wall collisions aside.
type Pursuer struct {
	Pos Vec2
}
