package entity

import (
	"time"
)

// ChatContext carries the adoption context a chat room was opened for.
type ChatContext struct {
	AnimalID     string `json:"animalId" firestore:"animalId"`
	OwnerID      string `json:"ownerId" firestore:"ownerId"`
	InterestedID string `json:"interestedId" firestore:"interestedId"`
	AnimalName   string `json:"animalName,omitempty" firestore:"animalName,omitempty"`
}

// ChatRoom is a two-party conversation thread scoped to one animal and one
// interested party. Participants are exactly two user ids, unordered for
// membership checks.
type ChatRoom struct {
	ID                 string      `json:"id" firestore:"-"`
	Participants       []string    `json:"participants" firestore:"participants"`
	Context            ChatContext `json:"context" firestore:"context"`
	LastMessage        string      `json:"lastMessage,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt      *time.Time  `json:"lastMessageAt,omitempty" firestore:"lastMessageAt,omitempty"`
	AdoptionConfirmed  bool        `json:"adoptionConfirmed,omitempty" firestore:"adoptionConfirmed,omitempty"`
	IsTestNotification bool        `json:"isTestNotification,omitempty" firestore:"isTestNotification,omitempty"`
	IsDelayedTest      bool        `json:"isDelayedTest,omitempty" firestore:"isDelayedTest,omitempty"`
}

// HasParticipant reports whether the given user is one of the two parties.
func (c *ChatRoom) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}

	return false
}

// OtherParticipant returns the participant that is not the given user, or an
// empty string when the user is not a member of the chat.
func (c *ChatRoom) OtherParticipant(userID string) string {
	if !c.HasParticipant(userID) {
		return ""
	}
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}

	return ""
}

// IsExactPair reports whether the chat's participants are exactly the given
// two users, in either order.
func (c *ChatRoom) IsExactPair(a, b string) bool {
	if len(c.Participants) != 2 {
		return false
	}

	return (c.Participants[0] == a && c.Participants[1] == b) ||
		(c.Participants[0] == b && c.Participants[1] == a)
}

// IsTestData reports whether the chat carries a test/debug marker and should
// be ignored by the event handlers.
func (c *ChatRoom) IsTestData() bool {
	return c.IsTestNotification || c.IsDelayedTest
}
