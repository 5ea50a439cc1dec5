// Package usecase defines the application-layer interfaces wired between the
// delivery layer and the domain.
package usecase

import (
	"context"

	"adopet/internal/domain/notification"
)

// DeliveryStatus is the terminal state of one notification attempt.
type DeliveryStatus string

const (
	// DeliverySent means the push gateway accepted the message.
	DeliverySent DeliveryStatus = "sent"
	// DeliverySkipped means delivery was intentionally not attempted, e.g.
	// the recipient has no token or disabled notifications.
	DeliverySkipped DeliveryStatus = "skipped"
	// DeliveryFailed means the attempt was made and did not succeed.
	DeliveryFailed DeliveryStatus = "failed"
)

// Skip and failure reasons reported in delivery results.
const (
	ReasonProfileNotFound       = "recipient profile not found"
	ReasonProfileLookupFailed   = "recipient profile lookup failed"
	ReasonNotificationsDisabled = "notifications disabled by recipient"
	ReasonNoPushToken           = "recipient has no push token"
	ReasonTokenInvalid          = "push token invalid or unregistered"
	ReasonDeliveryFailed        = "push delivery failed"
)

// DeliveryResult records the outcome of one notification attempt. It is a
// report, never an error: a failed delivery must not fail the operation that
// requested it.
type DeliveryResult struct {
	RecipientID string         `json:"recipient_id"`
	Status      DeliveryStatus `json:"status"`
	Reason      string         `json:"reason,omitempty"`
	MessageID   string         `json:"message_id,omitempty"`
}

// Sent reports whether the attempt reached the gateway successfully.
func (r *DeliveryResult) Sent() bool {
	return r.Status == DeliverySent
}

// NotifierUsecase resolves a recipient, composes the payload for a kind and
// hands it to the push gateway. All methods absorb their own errors into the
// returned DeliveryResult.
type NotifierUsecase interface {
	// Notify delivers one composed notification to one recipient.
	Notify(ctx context.Context, recipientID string, kind notification.Kind, nctx notification.Context) *DeliveryResult

	// NotifyTest delivers a canned test payload of the given type to the
	// recipient. An unknown type falls back to the generic test payload.
	NotifyTest(ctx context.Context, recipientID, testType string) *DeliveryResult

	// NotifyDirect delivers an ad-hoc title/body pair to the recipient,
	// used by the administrative reminder endpoint.
	NotifyDirect(ctx context.Context, recipientID, title, body string) *DeliveryResult
}
