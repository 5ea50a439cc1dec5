package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intentAt(id, interestedID string, status IntentStatus, decided time.Time) *AdoptionIntent {
	return &AdoptionIntent{
		ID:           id,
		AnimalID:     "animal-1",
		InterestedID: interestedID,
		OwnerID:      "owner-1",
		Status:       status,
		CreatedAt:    decided.Add(-time.Hour),
		DecidedAt:    &decided,
	}
}

func TestProjectAvailability(t *testing.T) {
	now := time.Now()

	t.Run("no intents means available", func(t *testing.T) {
		p := ProjectAvailability(nil)
		assert.True(t, p.Available)
		assert.Empty(t, p.AdoptedBy)
	})

	t.Run("pending and denied intents keep the animal available", func(t *testing.T) {
		p := ProjectAvailability([]*AdoptionIntent{
			intentAt("i1", "a", IntentPending, now),
			intentAt("i2", "b", IntentDenied, now),
		})
		assert.True(t, p.Available)
	})

	t.Run("one confirmed intent adopts", func(t *testing.T) {
		p := ProjectAvailability([]*AdoptionIntent{
			intentAt("i1", "a", IntentPending, now),
			intentAt("i2", "b", IntentConfirmed, now),
		})
		assert.False(t, p.Available)
		assert.Equal(t, "b", p.AdoptedBy)
	})

	t.Run("earliest confirmed decision wins", func(t *testing.T) {
		p := ProjectAvailability([]*AdoptionIntent{
			intentAt("i1", "late", IntentConfirmed, now),
			intentAt("i2", "early", IntentConfirmed, now.Add(-time.Minute)),
		})
		assert.False(t, p.Available)
		assert.Equal(t, "early", p.AdoptedBy)
	})

	t.Run("creation time breaks ties for undecided records", func(t *testing.T) {
		undated := &AdoptionIntent{ID: "i1", InterestedID: "a", Status: IntentConfirmed, CreatedAt: now.Add(-2 * time.Hour)}
		p := ProjectAvailability([]*AdoptionIntent{
			undated,
			intentAt("i2", "b", IntentConfirmed, now),
		})
		assert.Equal(t, "a", p.AdoptedBy)
	})
}

func TestChatRoomParticipants(t *testing.T) {
	chat := &ChatRoom{
		ID:           "chat-1",
		Participants: []string{"owner-1", "user-2"},
	}

	assert.True(t, chat.HasParticipant("owner-1"))
	assert.False(t, chat.HasParticipant("stranger"))

	assert.Equal(t, "user-2", chat.OtherParticipant("owner-1"))
	assert.Equal(t, "owner-1", chat.OtherParticipant("user-2"))
	assert.Empty(t, chat.OtherParticipant("stranger"))

	assert.True(t, chat.IsExactPair("user-2", "owner-1"))
	assert.False(t, chat.IsExactPair("owner-1", "stranger"))
}

func TestUserProfileBestName(t *testing.T) {
	assert.Equal(t, "handle", (&UserProfile{Username: "handle", DisplayName: "Full Name"}).BestName())
	assert.Equal(t, "Full Name", (&UserProfile{DisplayName: "Full Name"}).BestName())
	assert.Equal(t, FallbackDisplayName, (&UserProfile{}).BestName())
}

func TestMessageIsFromSystem(t *testing.T) {
	assert.True(t, (&Message{IsSystem: true}).IsFromSystem())
	assert.True(t, (&Message{Sender: MessageSender{ID: SystemSenderID}}).IsFromSystem())
	assert.False(t, (&Message{Sender: MessageSender{ID: "user-1"}}).IsFromSystem())
}
