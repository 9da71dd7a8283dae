package game

import "github.com/google/uuid"

// Outcome is the terminal (or not yet terminal) result of a hunt.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeWon
	OutcomeCaught
	OutcomeTimedOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeWon:
		return "won"
	case OutcomeCaught:
		return "caught"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// PlayerState is the player's share of a state snapshot.
type PlayerState struct {
	ID uuid.UUID `json:"id"`
	X  float64   `json:"x"`
	Z  float64   `json:"z"`
}

// PursuerState is one pursuer's share of a state snapshot.
type PursuerState struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// State is an immutable snapshot of a running hunt, versioned so clients
// can discard stale broadcasts arriving out of order.
type State struct {
	Version       int64          `json:"version"`
	Outcome       Outcome        `json:"outcome"`
	ElapsedMillis int64          `json:"elapsed_millis"`
	Player        PlayerState    `json:"player"`
	Pursuers      []PursuerState `json:"pursuers"`
}

// Input is a client movement intent: a direction to move in and whether
// the player is sprinting. The server normalizes the direction.
type Input struct {
	DirX float64 `json:"dir_x"`
	DirZ float64 `json:"dir_z"`
	Run  bool    `json:"run"`
}

// Encoder serializes game payloads crossing the wire. Implementations
// must be safe for concurrent use.
type Encoder interface {
	MarshalState(*State) ([]byte, error)
	UnmarshalState([]byte) (*State, error)
	MarshalInput(*Input) ([]byte, error)
	UnmarshalInput([]byte) (*Input, error)
}
