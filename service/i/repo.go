package i

import (
	"github.com/google/uuid"
	dmn "github.com/mazehunt/mazehunt-api/domain"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*dmn.User, error)
}

// RunRepo defines the interface for persisting finished hunts.
type RunRepo interface {
	// Save inserts a finished run.
	Save(run *dmn.Run) error

	// ByPlayer retrieves the most recent runs of a player, newest first.
	ByPlayer(id uuid.UUID, limit int64) ([]*dmn.Run, error)
}
