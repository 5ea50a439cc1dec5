package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"adopet/internal/delivery/api/response"
	deliverycontext "adopet/internal/delivery/context"
	"adopet/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// TestHandlerParams holds dependencies for TestHandler, injected by Fx.
type TestHandlerParams struct {
	fx.In

	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// TestHandler injects synthetic document events into the transport, standing
// in for the store's trigger platform during development.
type TestHandler struct {
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewTestHandler creates a new TestHandler instance
func NewTestHandler(params TestHandlerParams) *TestHandler {
	return &TestHandler{
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

// PublishEventRequest represents a synthetic document-created event
type PublishEventRequest struct {
	Stream     string          `json:"stream" validate:"required"`
	DocumentID string          `json:"document_id" validate:"required"`
	ParentID   string          `json:"parent_id"`
	Document   json.RawMessage `json:"document" validate:"required"`
}

// PublishEvent publishes a synthetic event to the configured transport
func (h *TestHandler) PublishEvent(c echo.Context) error {
	var req PublishEventRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid event input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	stream := service.Stream(req.Stream)
	if !stream.Valid() {
		return response.BadRequest(c, "UNKNOWN_STREAM", "Unknown event stream: "+req.Stream)
	}

	event := &service.DocumentEvent{
		RequestID:  deliverycontext.GetRequestID(c),
		Stream:     stream,
		DocumentID: req.DocumentID,
		ParentID:   req.ParentID,
		Document:   req.Document,
	}

	if err := h.publisher.PublishDocumentEvent(c.Request().Context(), event); err != nil {
		h.logger.Error("Failed to publish test event",
			slog.Any("error", err),
			slog.String("stream", req.Stream),
		)

		return response.InternalServerError(c, "PUBLISH_FAILED", "Failed to publish event")
	}

	return response.Success(c, http.StatusAccepted, map[string]any{
		"published":   true,
		"stream":      req.Stream,
		"document_id": req.DocumentID,
	})
}
