package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"adopet/config"
	"adopet/internal/delivery"
	"adopet/internal/delivery/api"
	apihandler "adopet/internal/delivery/api/router/handler"
	"adopet/internal/delivery/worker"
	workerhandler "adopet/internal/delivery/worker/handler"
	"adopet/internal/domain/service"
	logs "adopet/internal/infra/log"
	"adopet/internal/infra/notification"
	"adopet/internal/infra/persistence/firestore"
	"adopet/internal/infra/pubsub"
	"adopet/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		firestore.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			firestore.NewAnimalRepository,
			firestore.NewChatRepository,
			firestore.NewAdoptionRepository,
			firestore.NewUserRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPushService,
			pubsub.NewEventPublisher,
		),
	)
}

// newPushService creates the FCM push gateway with dependency injection
func newPushService(ctx context.Context, cfg *config.Config) (service.PushService, error) {
	if cfg.Firebase == nil {
		return nil, fmt.Errorf("firebase configuration is required")
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create FCM service: %w", err)
	}

	return svc, nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewNotifierService,
			impl.NewChatLifecycleService,
			impl.NewAdoptionService,
			impl.NewDispatcherService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			apihandler.NewNotificationHandler,
			apihandler.NewTestHandler,
			workerhandler.NewEventHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
