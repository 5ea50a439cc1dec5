package repository

import (
	"context"
	"errors"
	"time"

	"adopet/internal/domain/entity"
)

// ErrIntentNotFound is returned when an adoption intent does not exist.
var ErrIntentNotFound = errors.New("adoption intent not found")

// AdoptionRepository defines adoption-intent operations.
type AdoptionRepository interface {
	// FindPendingByAnimal retrieves all intents for the animal that are still
	// PENDING.
	FindPendingByAnimal(ctx context.Context, animalID string) ([]*entity.AdoptionIntent, error)

	// FindByAnimal retrieves the animal's full intent log, the input of the
	// availability projection.
	FindByAnimal(ctx context.Context, animalID string) ([]*entity.AdoptionIntent, error)

	// DenyAll transitions the given intents to DENIED with autoDenied set, in
	// a single atomic batch: either every intent is denied or none is.
	DenyAll(ctx context.Context, intents []*entity.AdoptionIntent, reason string, at time.Time) error
}
