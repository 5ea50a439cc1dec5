package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "adopet/internal/delivery/context"
	"adopet/internal/domain/entity"
	"adopet/internal/domain/notification"
	"adopet/internal/domain/repository"
	"adopet/internal/usecase"

	"golang.org/x/sync/errgroup"
)

// autoDenyReason is recorded on every intent denied by the cascade.
const autoDenyReason = "animal adopted by someone else"

type adoptionService struct {
	animalRepo    repository.AnimalRepository
	adoptionRepo  repository.AdoptionRepository
	userRepo      repository.UserRepository
	chatLifecycle usecase.ChatLifecycleUsecase
	notifier      usecase.NotifierUsecase
	logger        *slog.Logger
}

// NewAdoptionService creates a new adoption resolution service instance
func NewAdoptionService(
	animalRepo repository.AnimalRepository,
	adoptionRepo repository.AdoptionRepository,
	userRepo repository.UserRepository,
	chatLifecycle usecase.ChatLifecycleUsecase,
	notifier usecase.NotifierUsecase,
	logger *slog.Logger,
) usecase.AdoptionUsecase {
	return &adoptionService{
		animalRepo:    animalRepo,
		adoptionRepo:  adoptionRepo,
		userRepo:      userRepo,
		chatLifecycle: chatLifecycle,
		notifier:      notifier,
		logger:        logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *adoptionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ResolveConfirmation processes one confirmed intent in order: claim the
// animal, auto-deny the competing pending intents, finalize the chats, then
// notify everyone affected. The claim is a compare-and-swap, so a redelivered
// confirmation re-runs the later steps without double-claiming and a losing
// confirmation produces no writes beyond its own denial.
func (srv *adoptionService) ResolveConfirmation(ctx context.Context, intent *entity.AdoptionIntent) (*usecase.AdoptionResolution, error) {
	now := time.Now()

	err := srv.animalRepo.ClaimAdoption(ctx, intent.AnimalID, intent.InterestedID, now)
	if errors.Is(err, repository.ErrAnimalAlreadyAdopted) {
		return srv.resolveSuperseded(ctx, intent, now)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim animal %s: %w", intent.AnimalID, err)
	}

	res := &usecase.AdoptionResolution{Claimed: true}

	// Auto-deny every pending intent that lost. The batch is atomic, so a
	// redelivery either sees them all pending again or none.
	pending, err := srv.adoptionRepo.FindPendingByAnimal(ctx, intent.AnimalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending intents: %w", err)
	}
	losers := make([]*entity.AdoptionIntent, 0, len(pending))
	for _, p := range pending {
		if p.ID == intent.ID {
			continue
		}
		losers = append(losers, p)
	}
	if len(losers) > 0 {
		if err := srv.adoptionRepo.DenyAll(ctx, losers, autoDenyReason, now); err != nil {
			return nil, fmt.Errorf("failed to auto-deny pending intents: %w", err)
		}
		res.DeniedIntents = len(losers)
	}

	// Finalize chats before notifying, so the denied requesters' deep links
	// do not point at chats about to disappear.
	fin, err := srv.chatLifecycle.FinalizeAdoption(ctx, intent)
	if err != nil {
		return nil, err
	}
	res.Chats = fin

	ownerName := srv.lookupName(ctx, intent.OwnerID)
	animalName := srv.animalName(ctx, intent)

	// Fan out notifications with per-recipient isolation: the notifier
	// absorbs its own failures, so the group only joins.
	results := make([]*usecase.DeliveryResult, len(losers)+1)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results[0] = srv.notifier.Notify(gctx, intent.InterestedID, notification.KindAdoptionConfirmed, notification.Context{
			ChatID:     fin.ConfirmedChatID,
			AnimalID:   intent.AnimalID,
			AnimalName: animalName,
			ActorName:  ownerName,
		})

		return nil
	})
	for i, loser := range losers {
		g.Go(func() error {
			results[i+1] = srv.notifier.Notify(gctx, loser.InterestedID, notification.KindAdoptionRejected, notification.Context{
				AnimalID:   intent.AnimalID,
				AnimalName: animalName,
				ActorName:  ownerName,
			})

			return nil
		})
	}
	_ = g.Wait()
	res.Deliveries = results

	srv.log(ctx).Info("Resolved adoption confirmation",
		slog.String("animal_id", intent.AnimalID),
		slog.String("adopter_id", intent.InterestedID),
		slog.Int("denied_intents", res.DeniedIntents),
	)

	return res, nil
}

// resolveSuperseded handles a confirmation that lost the claim race: the
// intent itself is denied and only its requester is notified. Nothing else
// about the animal is touched.
func (srv *adoptionService) resolveSuperseded(ctx context.Context, intent *entity.AdoptionIntent, now time.Time) (*usecase.AdoptionResolution, error) {
	srv.log(ctx).Warn("Confirmation lost the claim race, denying intent",
		slog.String("animal_id", intent.AnimalID),
		slog.String("intent_id", intent.ID),
		slog.String("interested_id", intent.InterestedID),
	)

	res := &usecase.AdoptionResolution{Superseded: true}

	if intent.Status != entity.IntentDenied {
		if err := srv.adoptionRepo.DenyAll(ctx, []*entity.AdoptionIntent{intent}, autoDenyReason, now); err != nil {
			return nil, fmt.Errorf("failed to deny superseded intent: %w", err)
		}
		res.DeniedIntents = 1
	}

	res.Deliveries = []*usecase.DeliveryResult{
		srv.notifier.Notify(ctx, intent.InterestedID, notification.KindAdoptionRejected, notification.Context{
			AnimalID:   intent.AnimalID,
			AnimalName: srv.animalName(ctx, intent),
			ActorName:  srv.lookupName(ctx, intent.OwnerID),
		}),
	}

	return res, nil
}

// lookupName resolves a user's display name, falling back to the generic
// placeholder when the profile is missing or unreadable.
func (srv *adoptionService) lookupName(ctx context.Context, userID string) string {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return entity.FallbackDisplayName
	}

	return user.BestName()
}

// animalName prefers the name denormalized onto the intent and falls back to
// the animal document.
func (srv *adoptionService) animalName(ctx context.Context, intent *entity.AdoptionIntent) string {
	if intent.AnimalName != "" {
		return intent.AnimalName
	}
	if animal, err := srv.animalRepo.FindByID(ctx, intent.AnimalID); err == nil && animal.Name != "" {
		return animal.Name
	}

	return "the animal"
}
