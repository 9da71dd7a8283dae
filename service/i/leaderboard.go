package i

import (
	"context"

	"github.com/google/uuid"
)

// LeaderboardEntry is one ranked escape time.
type LeaderboardEntry struct {
	PlayerID   uuid.UUID
	TimeMillis int64
}

// Leaderboard ranks players by their fastest escape, lowest time first.
type Leaderboard interface {
	// SubmitTime records an escape time for a player. The entry only
	// replaces an existing one when it is faster; returns whether the
	// ranking changed.
	SubmitTime(ctx context.Context, id uuid.UUID, millis int64) (bool, error)

	// Top returns the n fastest entries in rank order.
	Top(ctx context.Context, n int64) ([]LeaderboardEntry, error)
}
