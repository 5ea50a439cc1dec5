package usecase

import (
	"context"

	"adopet/internal/domain/entity"
)

// AdoptionResolution reports everything a confirmed intent caused: the claim
// outcome, the auto-deny cascade, the chat lifecycle pass and the resulting
// notification attempts.
type AdoptionResolution struct {
	// Claimed is true when this resolution transitioned the animal to
	// adopted (or re-observed its own earlier claim under redelivery).
	Claimed bool `json:"claimed"`
	// Superseded is true when a different adopter already claimed the
	// animal; the losing intent was auto-denied instead.
	Superseded bool `json:"superseded,omitempty"`
	// DeniedIntents counts the pending intents transitioned to DENIED.
	DeniedIntents int `json:"denied_intents"`
	// Chats describes the chat lifecycle outcome, nil when no claim won.
	Chats *ChatFinalization `json:"chats,omitempty"`
	// Deliveries lists every notification attempt made by the resolution.
	Deliveries []*DeliveryResult `json:"deliveries,omitempty"`
}

// AdoptionUsecase resolves a confirmed adoption intent: claim the animal,
// auto-deny every competing pending intent, finalize the chats and notify
// each affected requester.
type AdoptionUsecase interface {
	// ResolveConfirmation processes one confirmed intent. It is idempotent
	// under event redelivery. An error means the resolution could not run at
	// all; partial delivery failures are reported in the resolution instead.
	ResolveConfirmation(ctx context.Context, intent *entity.AdoptionIntent) (*AdoptionResolution, error)
}
