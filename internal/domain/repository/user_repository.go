package repository

import (
	"context"
	"errors"

	"adopet/internal/domain/entity"
)

// ErrUserNotFound is returned when a user profile document does not exist.
// Callers treat this as a skip, never as a failure of the triggering event.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines read-only access to user profiles.
type UserRepository interface {
	// FindByID retrieves a user profile by its document id.
	FindByID(ctx context.Context, id string) (*entity.UserProfile, error)
}
