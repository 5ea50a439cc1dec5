package entity

import (
	"time"
)

// SystemSenderID is the synthetic actor used for messages the backend appends
// to a chat (e.g. the adoption confirmation announcement). Messages from this
// sender never produce notifications.
const SystemSenderID = "system"

// MessageSender identifies who wrote a message.
type MessageSender struct {
	ID   string `json:"id" firestore:"id"`
	Name string `json:"name,omitempty" firestore:"name,omitempty"`
}

// Message is a single chat message. Messages are append-only; they are never
// mutated and are deleted only as part of whole-chat deletion.
type Message struct {
	ID                 string        `json:"id" firestore:"-"`
	Text               string        `json:"text" firestore:"text"`
	CreatedAt          time.Time     `json:"createdAt" firestore:"createdAt"`
	Sender             MessageSender `json:"sender" firestore:"sender"`
	IsSystem           bool          `json:"isSystem,omitempty" firestore:"isSystem,omitempty"`
	IsTestNotification bool          `json:"isTestNotification,omitempty" firestore:"isTestNotification,omitempty"`
}

// IsFromSystem reports whether the message was written by the synthetic
// system actor.
func (m *Message) IsFromSystem() bool {
	return m.IsSystem || m.Sender.ID == SystemSenderID
}
