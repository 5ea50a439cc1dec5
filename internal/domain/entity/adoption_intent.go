package entity

import (
	"sort"
	"time"
)

// IntentStatus is the decision state an adoption intent was created with.
type IntentStatus string

const (
	// IntentPending marks an intent awaiting the owner's decision.
	IntentPending IntentStatus = "PENDING"
	// IntentConfirmed marks the winning intent. At most one intent per animal
	// may ever reach this status.
	IntentConfirmed IntentStatus = "CONFIRMED"
	// IntentDenied marks a rejected intent, either by the owner or by the
	// auto-deny cascade after another intent was confirmed.
	IntentDenied IntentStatus = "DENIED"
)

// AdoptionIntent is an immutable record expressing either a pending request
// or a final decision to adopt a specific animal. The status is decided by
// the client at creation time; the only mutation ever applied afterwards is
// the auto-deny transition performed by the resolver.
type AdoptionIntent struct {
	ID           string       `json:"id" firestore:"-"`
	AnimalID     string       `json:"animalId" firestore:"animalId"`
	ChatID       string       `json:"chatId" firestore:"chatId"`
	InterestedID string       `json:"interestedId" firestore:"interestedId"`
	OwnerID      string       `json:"ownerId" firestore:"ownerId"`
	AnimalName   string       `json:"animalName,omitempty" firestore:"animalName,omitempty"`
	Status       IntentStatus `json:"status" firestore:"status"`
	AutoDenied   bool         `json:"autoDenied,omitempty" firestore:"autoDenied,omitempty"`
	Reason       string       `json:"reason,omitempty" firestore:"reason,omitempty"`
	CreatedAt    time.Time    `json:"createdAt" firestore:"createdAt"`
	DecidedAt    *time.Time   `json:"decidedAt,omitempty" firestore:"decidedAt,omitempty"`
}

// AvailabilityProjection is the availability state of an animal derived from
// its adoption intent event log.
type AvailabilityProjection struct {
	Available bool
	AdoptedBy string
}

// ProjectAvailability reduces an animal's intent log to its availability.
// The animal is unavailable iff some intent is CONFIRMED; when more than one
// confirmed intent exists (a log produced before the claim guard existed),
// the earliest decision wins.
func ProjectAvailability(intents []*AdoptionIntent) AvailabilityProjection {
	confirmed := make([]*AdoptionIntent, 0, 1)
	for _, intent := range intents {
		if intent.Status == IntentConfirmed {
			confirmed = append(confirmed, intent)
		}
	}

	if len(confirmed) == 0 {
		return AvailabilityProjection{Available: true}
	}

	sort.Slice(confirmed, func(i, j int) bool {
		return confirmed[i].decisionTime().Before(confirmed[j].decisionTime())
	})

	return AvailabilityProjection{Available: false, AdoptedBy: confirmed[0].InterestedID}
}

func (i *AdoptionIntent) decisionTime() time.Time {
	if i.DecidedAt != nil {
		return *i.DecidedAt
	}

	return i.CreatedAt
}
