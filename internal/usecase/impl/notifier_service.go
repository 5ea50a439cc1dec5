// Package impl provides concrete implementations of the usecase interfaces.
package impl

import (
	"context"
	"errors"
	"log/slog"

	deliverycontext "adopet/internal/delivery/context"
	"adopet/internal/domain/notification"
	"adopet/internal/domain/repository"
	"adopet/internal/domain/service"
	"adopet/internal/usecase"
)

type notifierService struct {
	userRepo repository.UserRepository
	pushSvc  service.PushService
	logger   *slog.Logger
}

// NewNotifierService creates a new notifier service instance
func NewNotifierService(
	userRepo repository.UserRepository,
	pushSvc service.PushService,
	logger *slog.Logger,
) usecase.NotifierUsecase {
	return &notifierService{
		userRepo: userRepo,
		pushSvc:  pushSvc,
		logger:   logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *notifierService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Notify delivers one composed notification to one recipient
func (srv *notifierService) Notify(ctx context.Context, recipientID string, kind notification.Kind, nctx notification.Context) *usecase.DeliveryResult {
	return srv.deliver(ctx, recipientID, notification.Compose(kind, nctx))
}

// NotifyTest delivers a canned test payload to the recipient
func (srv *notifierService) NotifyTest(ctx context.Context, recipientID, testType string) *usecase.DeliveryResult {
	return srv.deliver(ctx, recipientID, notification.ComposeTest(testType))
}

// NotifyDirect delivers an ad-hoc title/body pair to the recipient
func (srv *notifierService) NotifyDirect(ctx context.Context, recipientID, title, body string) *usecase.DeliveryResult {
	return srv.deliver(ctx, recipientID, notification.ComposeDirect(title, body))
}

// deliver resolves the recipient and hands the payload to the push gateway.
// Every failure mode becomes a result; the triggering operation never fails
// because one notification could not be delivered.
func (srv *notifierService) deliver(ctx context.Context, recipientID string, payload notification.Payload) *usecase.DeliveryResult {
	user, err := srv.userRepo.FindByID(ctx, recipientID)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("Recipient profile not found, skipping notification",
			slog.String("recipient_id", recipientID),
		)

		return &usecase.DeliveryResult{
			RecipientID: recipientID,
			Status:      usecase.DeliverySkipped,
			Reason:      usecase.ReasonProfileNotFound,
		}
	}
	if err != nil {
		srv.log(ctx).Error("Failed to load recipient profile",
			slog.Any("error", err),
			slog.String("recipient_id", recipientID),
		)

		return &usecase.DeliveryResult{
			RecipientID: recipientID,
			Status:      usecase.DeliveryFailed,
			Reason:      usecase.ReasonProfileLookupFailed,
		}
	}

	if !user.NotificationsEnabled {
		return &usecase.DeliveryResult{
			RecipientID: recipientID,
			Status:      usecase.DeliverySkipped,
			Reason:      usecase.ReasonNotificationsDisabled,
		}
	}
	if user.PushToken == "" {
		return &usecase.DeliveryResult{
			RecipientID: recipientID,
			Status:      usecase.DeliverySkipped,
			Reason:      usecase.ReasonNoPushToken,
		}
	}

	messageID, err := srv.pushSvc.Send(ctx, user.PushToken, payload)
	if errors.Is(err, service.ErrTokenInvalid) {
		srv.log(ctx).Warn("Push token rejected by gateway",
			slog.String("recipient_id", recipientID),
		)

		return &usecase.DeliveryResult{
			RecipientID: recipientID,
			Status:      usecase.DeliveryFailed,
			Reason:      usecase.ReasonTokenInvalid,
		}
	}
	if err != nil {
		srv.log(ctx).Error("Failed to deliver notification",
			slog.Any("error", err),
			slog.String("recipient_id", recipientID),
			slog.String("title", payload.Title),
		)

		return &usecase.DeliveryResult{
			RecipientID: recipientID,
			Status:      usecase.DeliveryFailed,
			Reason:      usecase.ReasonDeliveryFailed,
		}
	}

	srv.log(ctx).Info("Notification delivered",
		slog.String("recipient_id", recipientID),
		slog.String("message_id", messageID),
		slog.String("type", payload.Data["type"]),
	)

	return &usecase.DeliveryResult{
		RecipientID: recipientID,
		Status:      usecase.DeliverySent,
		MessageID:   messageID,
	}
}
