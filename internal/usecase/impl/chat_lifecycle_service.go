package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "adopet/internal/delivery/context"
	"adopet/internal/domain/entity"
	"adopet/internal/domain/repository"
	"adopet/internal/usecase"
)

type chatLifecycleService struct {
	chatRepo repository.ChatRepository
	logger   *slog.Logger
}

// NewChatLifecycleService creates a new chat lifecycle service instance
func NewChatLifecycleService(
	chatRepo repository.ChatRepository,
	logger *slog.Logger,
) usecase.ChatLifecycleUsecase {
	return &chatLifecycleService{
		chatRepo: chatRepo,
		logger:   logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *chatLifecycleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// FinalizeAdoption preserves and marks the winning pair's chat and deletes
// every competing chat for the animal. Each deletion is independent: a
// failure is recorded and the remaining chats are still processed, so a
// redelivered confirmation can finish the job.
func (srv *chatLifecycleService) FinalizeAdoption(ctx context.Context, intent *entity.AdoptionIntent) (*usecase.ChatFinalization, error) {
	chats, err := srv.chatRepo.FindByAnimal(ctx, intent.AnimalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats for animal: %w", err)
	}

	fin := &usecase.ChatFinalization{}
	for _, chat := range chats {
		if chat.IsExactPair(intent.OwnerID, intent.InterestedID) {
			fin.ConfirmedChatID = chat.ID
			srv.markConfirmed(ctx, chat, intent)

			continue
		}

		if err := srv.chatRepo.DeleteWithMessages(ctx, chat.ID); err != nil {
			srv.log(ctx).Error("Failed to delete competing chat",
				slog.Any("error", err),
				slog.String("chat_id", chat.ID),
				slog.String("animal_id", intent.AnimalID),
			)
			fin.FailedChatIDs = append(fin.FailedChatIDs, chat.ID)

			continue
		}
		fin.RemovedChatIDs = append(fin.RemovedChatIDs, chat.ID)
	}

	srv.log(ctx).Info("Finalized chats for adopted animal",
		slog.String("animal_id", intent.AnimalID),
		slog.String("confirmed_chat_id", fin.ConfirmedChatID),
		slog.Int("removed", len(fin.RemovedChatIDs)),
		slog.Int("failed", len(fin.FailedChatIDs)),
	)

	return fin, nil
}

// markConfirmed flags the winning chat and announces the confirmation with a
// system message. Both writes are best-effort: a redelivered confirmation
// repeats them, and marking twice is harmless.
func (srv *chatLifecycleService) markConfirmed(ctx context.Context, chat *entity.ChatRoom, intent *entity.AdoptionIntent) {
	if chat.AdoptionConfirmed {
		return
	}

	if err := srv.chatRepo.MarkAdoptionConfirmed(ctx, chat.ID); err != nil {
		srv.log(ctx).Error("Failed to mark chat as adoption-confirmed",
			slog.Any("error", err),
			slog.String("chat_id", chat.ID),
		)

		return
	}

	animalName := intent.AnimalName
	if animalName == "" {
		animalName = chat.Context.AnimalName
	}

	msg := &entity.Message{
		Text:      fmt.Sprintf("The adoption of %s has been confirmed. Congratulations!", animalName),
		CreatedAt: time.Now(),
		Sender: entity.MessageSender{
			ID:   entity.SystemSenderID,
			Name: "System",
		},
		IsSystem: true,
	}
	if err := srv.chatRepo.AppendMessage(ctx, chat.ID, msg); err != nil {
		srv.log(ctx).Error("Failed to append confirmation message",
			slog.Any("error", err),
			slog.String("chat_id", chat.ID),
		)
	}
}
