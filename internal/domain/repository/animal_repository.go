// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
	"time"

	"adopet/internal/domain/entity"
)

var (
	// ErrAnimalNotFound is returned when an animal document does not exist.
	ErrAnimalNotFound = errors.New("animal not found")
	// ErrAnimalAlreadyAdopted is returned by ClaimAdoption when the animal was
	// already claimed by a different adopter. The losing confirmation must
	// produce no side effects.
	ErrAnimalAlreadyAdopted = errors.New("animal already adopted")
)

// AnimalRepository defines animal-document operations.
type AnimalRepository interface {
	// FindByID retrieves an animal by its document id.
	FindByID(ctx context.Context, id string) (*entity.Animal, error)

	// ClaimAdoption transitions the animal from available to adopted exactly
	// once, transferring ownership to the adopter. The transition is a
	// compare-and-swap inside a store transaction: a repeat claim by the same
	// adopter succeeds without writing (idempotent under event redelivery),
	// while a claim by anyone else fails with ErrAnimalAlreadyAdopted.
	ClaimAdoption(ctx context.Context, animalID, adopterID string, at time.Time) error
}
