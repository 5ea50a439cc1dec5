package usecase

import (
	"context"

	"adopet/internal/domain/entity"
)

// ChatFinalization reports what the lifecycle pass did to an animal's chats.
type ChatFinalization struct {
	// ConfirmedChatID is the preserved chat between owner and adopter, empty
	// when no such chat exists.
	ConfirmedChatID string `json:"confirmed_chat_id,omitempty"`
	// RemovedChatIDs lists the competing chats that were deleted.
	RemovedChatIDs []string `json:"removed_chat_ids,omitempty"`
	// FailedChatIDs lists chats whose deletion failed; each is retried on
	// the next redelivery of the confirmation event.
	FailedChatIDs []string `json:"failed_chat_ids,omitempty"`
}

// ChatLifecycleUsecase finalizes an animal's chat rooms after a confirmed
// adoption: the winning pair's chat is preserved and marked, every other
// chat for the animal is deleted with its messages.
type ChatLifecycleUsecase interface {
	// FinalizeAdoption applies the post-confirmation chat policy for the
	// given intent. Deletions are independent; one failure does not stop
	// the others.
	FinalizeAdoption(ctx context.Context, intent *entity.AdoptionIntent) (*ChatFinalization, error)
}
