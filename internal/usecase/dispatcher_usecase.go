package usecase

import (
	"context"

	"adopet/internal/domain/service"
)

// OutcomeStatus is the terminal state of one event dispatch.
type OutcomeStatus string

const (
	// OutcomeHandled means the event was routed and its handler ran.
	OutcomeHandled OutcomeStatus = "handled"
	// OutcomeSkipped means the event was valid but intentionally ignored,
	// e.g. a system message or a test-marked document.
	OutcomeSkipped OutcomeStatus = "skipped"
	// OutcomeFailed means the handler ran and did not complete.
	OutcomeFailed OutcomeStatus = "failed"
)

// Outcome is the dispatch report for one document event. The worker logs it
// and acknowledges the event regardless of status; recovery is idempotent
// reprocessing, not transport-level retry.
type Outcome struct {
	Status     OutcomeStatus     `json:"status"`
	Reason     string            `json:"reason,omitempty"`
	Deliveries []*DeliveryResult `json:"deliveries,omitempty"`
}

// DispatcherUsecase routes document-created events to the matching handler.
type DispatcherUsecase interface {
	// Dispatch routes one event. It never returns an error; every failure
	// mode is absorbed into the outcome.
	Dispatch(ctx context.Context, event *service.DocumentEvent) *Outcome
}
