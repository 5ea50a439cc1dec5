package repository

import (
	"context"
	"errors"

	"adopet/internal/domain/entity"
)

// ErrChatNotFound is returned when a chat room document does not exist.
var ErrChatNotFound = errors.New("chat not found")

// ChatRepository defines chat-room and message-subcollection operations.
type ChatRepository interface {
	// FindByID retrieves a chat room by its document id.
	FindByID(ctx context.Context, id string) (*entity.ChatRoom, error)

	// FindByAnimal retrieves every chat room opened for the given animal.
	FindByAnimal(ctx context.Context, animalID string) ([]*entity.ChatRoom, error)

	// AppendMessage adds a message to the chat's subcollection and refreshes
	// the chat's last-message fields.
	AppendMessage(ctx context.Context, chatID string, msg *entity.Message) error

	// IncrementUnread bumps the per-user unread counter on the chat.
	IncrementUnread(ctx context.Context, chatID, userID string) error

	// MarkAdoptionConfirmed flags the chat as finalized; finalized chats no
	// longer produce new-message notifications.
	MarkAdoptionConfirmed(ctx context.Context, chatID string) error

	// DeleteWithMessages removes the chat's message subcollection and then the
	// chat document itself. Messages are deleted in atomic batches and the
	// chat document goes in the final batch, so the chat never outlives its
	// messages. Deleting an absent chat is a no-op.
	DeleteWithMessages(ctx context.Context, chatID string) error
}
