package impl

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	deliverycontext "adopet/internal/delivery/context"
	"adopet/internal/domain/entity"
	"adopet/internal/domain/notification"
	"adopet/internal/domain/repository"
	"adopet/internal/domain/service"
	"adopet/internal/usecase"
)

// Skip reasons reported in dispatch outcomes.
const (
	reasonUnknownStream    = "unknown event stream"
	reasonMalformedEvent   = "malformed event document"
	reasonTestData         = "test-marked document"
	reasonSystemMessage    = "system message"
	reasonChatGone         = "chat no longer exists"
	reasonChatFinalized    = "chat already finalized"
	reasonSelfConversation = "owner and interested party are the same user"
	reasonSenderNotInChat  = "sender is not a chat participant"
	reasonIntentPending    = "intent awaiting owner decision"
)

type dispatcherService struct {
	chatRepo   repository.ChatRepository
	userRepo   repository.UserRepository
	adoptionUC usecase.AdoptionUsecase
	notifier   usecase.NotifierUsecase
	logger     *slog.Logger
}

// NewDispatcherService creates a new event dispatcher service instance
func NewDispatcherService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	adoptionUC usecase.AdoptionUsecase,
	notifier usecase.NotifierUsecase,
	logger *slog.Logger,
) usecase.DispatcherUsecase {
	return &dispatcherService{
		chatRepo:   chatRepo,
		userRepo:   userRepo,
		adoptionUC: adoptionUC,
		notifier:   notifier,
		logger:     logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *dispatcherService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Dispatch routes one document-created event to its handler. Every failure
// mode is absorbed into the outcome; the caller acknowledges the event either
// way and relies on idempotent reprocessing for recovery.
func (srv *dispatcherService) Dispatch(ctx context.Context, event *service.DocumentEvent) *usecase.Outcome {
	if event == nil || !event.Stream.Valid() {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonUnknownStream}
	}

	var outcome *usecase.Outcome
	switch event.Stream {
	case service.StreamChatCreated:
		outcome = srv.handleChatCreated(ctx, event)
	case service.StreamMessageCreated:
		outcome = srv.handleMessageCreated(ctx, event)
	case service.StreamIntentCreated:
		outcome = srv.handleIntentCreated(ctx, event)
	}

	srv.log(ctx).Info("Dispatched document event",
		slog.String("stream", string(event.Stream)),
		slog.String("document_id", event.DocumentID),
		slog.String("status", string(outcome.Status)),
		slog.String("reason", outcome.Reason),
	)

	return outcome
}

// handleChatCreated notifies the animal's owner that someone opened a
// conversation about their animal.
func (srv *dispatcherService) handleChatCreated(ctx context.Context, event *service.DocumentEvent) *usecase.Outcome {
	var chat entity.ChatRoom
	if err := json.Unmarshal(event.Document, &chat); err != nil {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonMalformedEvent}
	}
	chat.ID = event.DocumentID

	if chat.IsTestData() {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonTestData}
	}
	if chat.Context.OwnerID == "" || chat.Context.InterestedID == "" {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonMalformedEvent}
	}
	if chat.Context.OwnerID == chat.Context.InterestedID {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonSelfConversation}
	}

	delivery := srv.notifier.Notify(ctx, chat.Context.OwnerID, notification.KindNewChat, notification.Context{
		ChatID:     chat.ID,
		AnimalID:   chat.Context.AnimalID,
		AnimalName: chat.Context.AnimalName,
		ActorName:  srv.lookupName(ctx, chat.Context.InterestedID),
		SenderID:   chat.Context.InterestedID,
	})

	return &usecase.Outcome{
		Status:     usecase.OutcomeHandled,
		Deliveries: []*usecase.DeliveryResult{delivery},
	}
}

// handleMessageCreated bumps the recipient's unread counter and notifies the
// other chat participant about the new message.
func (srv *dispatcherService) handleMessageCreated(ctx context.Context, event *service.DocumentEvent) *usecase.Outcome {
	if event.ParentID == "" {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonMalformedEvent}
	}

	var msg entity.Message
	if err := json.Unmarshal(event.Document, &msg); err != nil {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonMalformedEvent}
	}
	msg.ID = event.DocumentID

	if msg.IsTestNotification {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonTestData}
	}
	if msg.IsFromSystem() {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonSystemMessage}
	}

	chat, err := srv.chatRepo.FindByID(ctx, event.ParentID)
	if errors.Is(err, repository.ErrChatNotFound) {
		// The chat was deleted between the message write and this event,
		// e.g. by the post-adoption cleanup.
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonChatGone}
	}
	if err != nil {
		srv.log(ctx).Error("Failed to load chat for message event",
			slog.Any("error", err),
			slog.String("chat_id", event.ParentID),
		)

		return &usecase.Outcome{Status: usecase.OutcomeFailed, Reason: "chat lookup failed"}
	}

	if chat.IsTestData() {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonTestData}
	}
	if chat.AdoptionConfirmed {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonChatFinalized}
	}

	recipientID := chat.OtherParticipant(msg.Sender.ID)
	if recipientID == "" {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonSenderNotInChat}
	}

	// The unread counter is display state; a failed bump must not swallow
	// the notification itself.
	if err := srv.chatRepo.IncrementUnread(ctx, chat.ID, recipientID); err != nil {
		srv.log(ctx).Error("Failed to increment unread counter",
			slog.Any("error", err),
			slog.String("chat_id", chat.ID),
			slog.String("user_id", recipientID),
		)
	}

	senderName := msg.Sender.Name
	if senderName == "" {
		senderName = srv.lookupName(ctx, msg.Sender.ID)
	}

	delivery := srv.notifier.Notify(ctx, recipientID, notification.KindNewMessage, notification.Context{
		ChatID:      chat.ID,
		AnimalID:    chat.Context.AnimalID,
		AnimalName:  chat.Context.AnimalName,
		ActorName:   senderName,
		SenderID:    msg.Sender.ID,
		MessageText: msg.Text,
	})

	return &usecase.Outcome{
		Status:     usecase.OutcomeHandled,
		Deliveries: []*usecase.DeliveryResult{delivery},
	}
}

// handleIntentCreated routes an adoption intent by the status it was created
// with: pending intents wait for the owner, direct denials notify the
// requester, confirmations run the full resolution.
func (srv *dispatcherService) handleIntentCreated(ctx context.Context, event *service.DocumentEvent) *usecase.Outcome {
	var intent entity.AdoptionIntent
	if err := json.Unmarshal(event.Document, &intent); err != nil {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonMalformedEvent}
	}
	intent.ID = event.DocumentID

	if intent.AnimalID == "" || intent.InterestedID == "" || intent.OwnerID == "" {
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonMalformedEvent}
	}

	switch intent.Status {
	case entity.IntentPending:
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: reasonIntentPending}

	case entity.IntentDenied:
		delivery := srv.notifier.Notify(ctx, intent.InterestedID, notification.KindAdoptionRejected, notification.Context{
			AnimalID:   intent.AnimalID,
			AnimalName: intent.AnimalName,
			ActorName:  srv.lookupName(ctx, intent.OwnerID),
		})

		return &usecase.Outcome{
			Status:     usecase.OutcomeHandled,
			Deliveries: []*usecase.DeliveryResult{delivery},
		}

	case entity.IntentConfirmed:
		res, err := srv.adoptionUC.ResolveConfirmation(ctx, &intent)
		if err != nil {
			srv.log(ctx).Error("Failed to resolve adoption confirmation",
				slog.Any("error", err),
				slog.String("intent_id", intent.ID),
				slog.String("animal_id", intent.AnimalID),
			)

			return &usecase.Outcome{Status: usecase.OutcomeFailed, Reason: err.Error()}
		}

		return &usecase.Outcome{
			Status:     usecase.OutcomeHandled,
			Deliveries: res.Deliveries,
		}

	default:
		return &usecase.Outcome{Status: usecase.OutcomeSkipped, Reason: "unknown intent status"}
	}
}

// lookupName resolves a user's display name, falling back to the generic
// placeholder when the profile is missing or unreadable.
func (srv *dispatcherService) lookupName(ctx context.Context, userID string) string {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return entity.FallbackDisplayName
	}

	return user.BestName()
}
