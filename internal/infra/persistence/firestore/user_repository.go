package firestore

import (
	"context"

	"adopet/internal/domain/entity"
	"adopet/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userRepository struct {
	client *firestore.Client
}

// NewUserRepository creates a Firestore-backed UserRepository.
func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	snap, err := r.client.Collection(colUsers).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to get user profile")
	}

	var user entity.UserProfile
	if err := snap.DataTo(&user); err != nil {
		return nil, errors.Wrap(err, "malformed user document")
	}
	user.ID = snap.Ref.ID

	return &user, nil
}
