package firestore

import (
	"context"
	"time"

	"adopet/internal/domain/entity"
	"adopet/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

type adoptionRepository struct {
	client *firestore.Client
}

// NewAdoptionRepository creates a Firestore-backed AdoptionRepository.
func NewAdoptionRepository(client *firestore.Client) repository.AdoptionRepository {
	return &adoptionRepository{client: client}
}

func (r *adoptionRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colIntents)
}

func (r *adoptionRepository) FindPendingByAnimal(ctx context.Context, animalID string) ([]*entity.AdoptionIntent, error) {
	iter := r.col().
		Where("animalId", "==", animalID).
		Where("status", "==", string(entity.IntentPending)).
		Documents(ctx)

	return collectIntents(iter)
}

func (r *adoptionRepository) FindByAnimal(ctx context.Context, animalID string) ([]*entity.AdoptionIntent, error) {
	iter := r.col().
		Where("animalId", "==", animalID).
		Documents(ctx)

	return collectIntents(iter)
}

// DenyAll commits every transition in one write batch; the store guarantees
// the batch applies all-or-nothing.
func (r *adoptionRepository) DenyAll(ctx context.Context, intents []*entity.AdoptionIntent, reason string, at time.Time) error {
	if len(intents) == 0 {
		return nil
	}
	if len(intents) > maxBatchSize {
		return errors.Errorf("deny batch exceeds store limit: %d intents", len(intents))
	}

	batch := r.client.Batch()
	for _, intent := range intents {
		batch.Update(r.col().Doc(intent.ID), []firestore.Update{
			{Path: "status", Value: string(entity.IntentDenied)},
			{Path: "autoDenied", Value: true},
			{Path: "reason", Value: reason},
			{Path: "decidedAt", Value: at},
		})
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit deny batch")
	}

	return nil
}

func collectIntents(iter *firestore.DocumentIterator) ([]*entity.AdoptionIntent, error) {
	defer iter.Stop()

	intents := make([]*entity.AdoptionIntent, 0, 4)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to query adoption intents")
		}

		var intent entity.AdoptionIntent
		if err := snap.DataTo(&intent); err != nil {
			return nil, errors.Wrap(err, "malformed adoption intent document")
		}
		intent.ID = snap.Ref.ID
		intents = append(intents, &intent)
	}

	return intents, nil
}
