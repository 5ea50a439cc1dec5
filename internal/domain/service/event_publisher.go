package service

import (
	"context"
	"encoding/json"
)

// Stream identifies which collection a created document belongs to.
type Stream string

const (
	// StreamChatCreated fires on creation under chats/*.
	StreamChatCreated Stream = "chat_created"
	// StreamMessageCreated fires on creation under chats/*/messages/*.
	StreamMessageCreated Stream = "message_created"
	// StreamIntentCreated fires on creation under adoptionIntents/*.
	StreamIntentCreated Stream = "adoption_intent_created"
)

// Valid reports whether the stream is one of the three trigger sources.
func (s Stream) Valid() bool {
	switch s {
	case StreamChatCreated, StreamMessageCreated, StreamIntentCreated:
		return true
	}

	return false
}

// DocumentEvent is one "document created" trigger delivery. Document carries
// the raw created document; ParentID is the owning chat id for message
// events and empty otherwise.
type DocumentEvent struct {
	RequestID  string          `json:"request_id,omitempty"` // for distributed tracing
	Stream     Stream          `json:"stream"`
	DocumentID string          `json:"documentId"`
	ParentID   string          `json:"parentId,omitempty"`
	Document   json.RawMessage `json:"document"`
}

// EventPublisher defines the interface for publishing document events to the
// worker's event transport. Production events are produced by the store's
// trigger platform; this interface exists for development and replay tooling.
type EventPublisher interface {
	// PublishDocumentEvent publishes one event for async processing.
	PublishDocumentEvent(ctx context.Context, event *DocumentEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
