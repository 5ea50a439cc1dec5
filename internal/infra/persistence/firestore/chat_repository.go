package firestore

import (
	"context"

	"adopet/internal/domain/entity"
	"adopet/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type chatRepository struct {
	client *firestore.Client
}

// NewChatRepository creates a Firestore-backed ChatRepository.
func NewChatRepository(client *firestore.Client) repository.ChatRepository {
	return &chatRepository{client: client}
}

func (r *chatRepository) doc(id string) *firestore.DocumentRef {
	return r.client.Collection(colChats).Doc(id)
}

func (r *chatRepository) FindByID(ctx context.Context, id string) (*entity.ChatRoom, error) {
	snap, err := r.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrChatNotFound
		}

		return nil, errors.Wrap(err, "failed to get chat")
	}

	return chatFromSnapshot(snap)
}

func (r *chatRepository) FindByAnimal(ctx context.Context, animalID string) ([]*entity.ChatRoom, error) {
	iter := r.client.Collection(colChats).
		Where("context.animalId", "==", animalID).
		Documents(ctx)
	defer iter.Stop()

	chats := make([]*entity.ChatRoom, 0, 4)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to query chats by animal")
		}

		chat, err := chatFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}

	return chats, nil
}

// AppendMessage writes the message and the chat's last-message fields as one
// atomic batch.
func (r *chatRepository) AppendMessage(ctx context.Context, chatID string, msg *entity.Message) error {
	chatRef := r.doc(chatID)
	msgRef := chatRef.Collection(colMessages).NewDoc()
	msg.ID = msgRef.ID

	batch := r.client.Batch()
	batch.Create(msgRef, msg)
	batch.Update(chatRef, []firestore.Update{
		{Path: "lastMessage", Value: msg.Text},
		{Path: "lastMessageAt", Value: msg.CreatedAt},
	})

	if _, err := batch.Commit(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrChatNotFound
		}

		return errors.Wrap(err, "failed to append message")
	}

	return nil
}

func (r *chatRepository) IncrementUnread(ctx context.Context, chatID, userID string) error {
	_, err := r.doc(chatID).Update(ctx, []firestore.Update{
		{Path: "unread_" + userID, Value: firestore.Increment(1)},
		{Path: "lastNotificationAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrChatNotFound
		}

		return errors.Wrap(err, "failed to increment unread counter")
	}

	return nil
}

func (r *chatRepository) MarkAdoptionConfirmed(ctx context.Context, chatID string) error {
	_, err := r.doc(chatID).Update(ctx, []firestore.Update{
		{Path: "adoptionConfirmed", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrChatNotFound
		}

		return errors.Wrap(err, "failed to mark chat finalized")
	}

	return nil
}

// DeleteWithMessages removes every message and then the chat document.
// Deletes are batched under the store's batch-size limit; the chat document
// rides in the final batch so it is never left behind without its messages
// already gone.
func (r *chatRepository) DeleteWithMessages(ctx context.Context, chatID string) error {
	chatRef := r.doc(chatID)

	refs := chatRef.Collection(colMessages).DocumentRefs(ctx)
	batch := r.client.Batch()
	ops := 0
	for {
		ref, err := refs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to list chat messages")
		}

		batch.Delete(ref)
		ops++
		if ops == maxBatchSize {
			if _, err := batch.Commit(ctx); err != nil {
				return errors.Wrap(err, "failed to delete message batch")
			}
			batch = r.client.Batch()
			ops = 0
		}
	}

	batch.Delete(chatRef)
	if _, err := batch.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to delete chat")
	}

	return nil
}

func chatFromSnapshot(snap *firestore.DocumentSnapshot) (*entity.ChatRoom, error) {
	var chat entity.ChatRoom
	if err := snap.DataTo(&chat); err != nil {
		return nil, errors.Wrap(err, "malformed chat document")
	}
	chat.ID = snap.Ref.ID

	return &chat, nil
}
