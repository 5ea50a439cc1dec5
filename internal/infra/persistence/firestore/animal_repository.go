package firestore

import (
	"context"
	"time"

	"adopet/internal/domain/entity"
	"adopet/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type animalRepository struct {
	client *firestore.Client
}

// NewAnimalRepository creates a Firestore-backed AnimalRepository.
func NewAnimalRepository(client *firestore.Client) repository.AnimalRepository {
	return &animalRepository{client: client}
}

func (r *animalRepository) doc(id string) *firestore.DocumentRef {
	return r.client.Collection(colAnimals).Doc(id)
}

func (r *animalRepository) FindByID(ctx context.Context, id string) (*entity.Animal, error) {
	snap, err := r.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrAnimalNotFound
		}

		return nil, errors.Wrap(err, "failed to get animal")
	}

	var animal entity.Animal
	if err := snap.DataTo(&animal); err != nil {
		return nil, errors.Wrap(err, "malformed animal document")
	}
	animal.ID = snap.Ref.ID

	return &animal, nil
}

// ClaimAdoption is the compare-and-swap that closes the concurrent double
// confirmation race: the transaction reads the animal and only the first
// confirmation observes available=true. Redelivered events for the winning
// adopter succeed without writing.
func (r *animalRepository) ClaimAdoption(ctx context.Context, animalID, adopterID string, at time.Time) error {
	ref := r.doc(animalID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return repository.ErrAnimalNotFound
			}

			return errors.WithStack(err)
		}

		var animal entity.Animal
		if err := snap.DataTo(&animal); err != nil {
			return errors.Wrap(err, "malformed animal document")
		}

		if !animal.Available {
			if animal.AdoptedBy == adopterID {
				// Same claim replayed; nothing to write.
				return nil
			}

			return repository.ErrAnimalAlreadyAdopted
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "available", Value: false},
			{Path: "adoptedBy", Value: adopterID},
			{Path: "adoptedAt", Value: at},
			{Path: "ownerId", Value: adopterID},
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrAnimalNotFound) || errors.Is(err, repository.ErrAnimalAlreadyAdopted) {
			return err
		}

		return errors.Wrap(err, "claim adoption transaction failed")
	}

	return nil
}
