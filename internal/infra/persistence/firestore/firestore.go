// Package firestore implements the domain repositories on Cloud Firestore.
package firestore

import (
	"context"
	"log/slog"

	"adopet/config"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// Collection names, matching the documents the mobile client writes.
const (
	colAnimals  = "animals"
	colChats    = "chats"
	colMessages = "messages"
	colIntents  = "adoptionIntents"
	colUsers    = "users"
)

// Firestore's hard limit on operations per atomic write batch.
const maxBatchSize = 500

// Params holds dependencies for the Firestore client, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New creates the Firestore client once at process start. Every repository
// receives this client by injection; there is no ambient global handle.
func New(params Params) (*firestore.Client, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.ProjectID == "" {
		return nil, errors.New("firebase project is not configured")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	client, err := firestore.NewClient(params.Ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Firestore client")
	}

	params.Logger.Info("Firestore client initialized",
		slog.String("project_id", cfg.ProjectID),
	)

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing Firestore client")

			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}
