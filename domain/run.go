package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidRunDuration = errors.New("run duration must be positive")

// Run is one finished hunt, stored for history and leaderboard backing.
type Run struct {
	ID             uuid.UUID `bson:"_id"`
	PlayerID       uuid.UUID `bson:"playerId"`
	MazeWidth      int       `bson:"mazeWidth"`
	MazeHeight     int       `bson:"mazeHeight"`
	Outcome        string    `bson:"outcome"`
	DurationMillis int64     `bson:"durationMillis"`
	FinishedAt     time.Time `bson:"finishedAt"`
}

// RunConfig holds parameters for recording a finished hunt.
type RunConfig struct {
	PlayerID       uuid.UUID
	MazeWidth      int
	MazeHeight     int
	Outcome        string
	DurationMillis int64
}

// NewRun records a finished hunt stamped with the current time.
func NewRun(config RunConfig) (*Run, error) {
	if config.DurationMillis <= 0 {
		return nil, ErrInvalidRunDuration
	}

	return &Run{
		ID:             uuid.New(),
		PlayerID:       config.PlayerID,
		MazeWidth:      config.MazeWidth,
		MazeHeight:     config.MazeHeight,
		Outcome:        config.Outcome,
		DurationMillis: config.DurationMillis,
		FinishedAt:     time.Now().UTC(),
	}, nil
}
