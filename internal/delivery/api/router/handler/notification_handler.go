package handler

import (
	"log/slog"
	"net/http"

	"adopet/internal/delivery/api/response"
	"adopet/internal/domain/notification"
	"adopet/internal/domain/service"
	"adopet/internal/errors"
	"adopet/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// NotificationHandlerParams holds dependencies for NotificationHandler, injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	Notifier usecase.NotifierUsecase
	Push     service.PushService
	Logger   *slog.Logger
}

// NotificationHandler exposes manual notification delivery for operators.
type NotificationHandler struct {
	notifier usecase.NotifierUsecase
	push     service.PushService
	logger   *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{
		notifier: params.Notifier,
		push:     params.Push,
		logger:   params.Logger,
	}
}

// NotificationContextRequest mirrors the composition context for manual sends.
type NotificationContextRequest struct {
	ChatID      string `json:"chat_id"`
	AnimalID    string `json:"animal_id"`
	AnimalName  string `json:"animal_name"`
	ActorName   string `json:"actor_name"`
	SenderID    string `json:"sender_id"`
	MessageText string `json:"message_text"`
}

// NotificationBodyRequest carries the visible part of a raw send.
type NotificationBodyRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// SendNotificationRequest represents the request body for a raw token send
type SendNotificationRequest struct {
	Token        string                  `json:"token" validate:"required"`
	Notification NotificationBodyRequest `json:"notification" validate:"required"`
	Data         map[string]string       `json:"data"`
}

// SendUserNotificationRequest represents the request body for a typed send
// addressed to a user id instead of a raw device token.
type SendUserNotificationRequest struct {
	UserID  string                     `json:"user_id" validate:"required"`
	Type    string                     `json:"type" validate:"required"`
	Context NotificationContextRequest `json:"context"`
}

// SendTestNotificationRequest represents the request body for a test send
type SendTestNotificationRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Type   string `json:"type"`
}

// SendReminderRequest represents the request body for a reminder send
type SendReminderRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body" validate:"required"`
}

// SendNotification delivers a raw payload straight through the push gateway
// to the given device token, bypassing recipient resolution.
func (h *NotificationHandler) SendNotification(c echo.Context) error {
	var req SendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid notification input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	payload := notification.Payload{
		Title: req.Notification.Title,
		Body:  req.Notification.Body,
		Data:  req.Data,
		Sound: "default",
		Badge: 1,
	}

	messageID, err := h.push.Send(c.Request().Context(), req.Token, payload)
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			return response.BadRequest(c, "INVALID_TOKEN", "Push token invalid or unregistered")
		}
		h.logger.Error("[API] Raw notification send failed", slog.Any("error", err))

		return response.InternalServerError(c, "SEND_FAILED", "Failed to deliver notification")
	}

	return response.Success(c, http.StatusOK, map[string]string{"message_id": messageID})
}

// SendUserNotification composes and delivers one notification of the given
// type, resolving the recipient's profile and token first.
func (h *NotificationHandler) SendUserNotification(c echo.Context) error {
	var req SendUserNotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid notification input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	kind, ok := notification.ParseKind(req.Type)
	if !ok {
		return response.BadRequest(c, "UNKNOWN_TYPE", "Unknown notification type: "+req.Type)
	}

	result := h.notifier.Notify(c.Request().Context(), req.UserID, kind, notification.Context{
		ChatID:      req.Context.ChatID,
		AnimalID:    req.Context.AnimalID,
		AnimalName:  req.Context.AnimalName,
		ActorName:   req.Context.ActorName,
		SenderID:    req.Context.SenderID,
		MessageText: req.Context.MessageText,
	})

	return response.Success(c, http.StatusOK, result)
}

// SendTestNotification delivers a canned test payload
func (h *NotificationHandler) SendTestNotification(c echo.Context) error {
	var req SendTestNotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid test notification input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	result := h.notifier.NotifyTest(c.Request().Context(), req.UserID, req.Type)
	if result.Reason == usecase.ReasonProfileNotFound {
		return response.NotFound(c, "USER_NOT_FOUND", "User not found: "+req.UserID)
	}

	return response.Success(c, http.StatusOK, struct {
		*usecase.DeliveryResult
		Type string `json:"type"`
	}{result, req.Type})
}

// SendReminder delivers an ad-hoc reminder with the given title and body
func (h *NotificationHandler) SendReminder(c echo.Context) error {
	var req SendReminderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reminder input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	result := h.notifier.NotifyDirect(c.Request().Context(), req.UserID, req.Title, req.Body)
	if result.Reason == usecase.ReasonProfileNotFound {
		return response.NotFound(c, "USER_NOT_FOUND", "User not found: "+req.UserID)
	}

	return response.Success(c, http.StatusOK, result)
}
