// Package notification implements the push gateway on Firebase Cloud
// Messaging.
package notification

import (
	"context"
	"time"

	"adopet/internal/domain/notification"
	"adopet/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a new Firebase push service instance
func NewFirebaseService(ctx context.Context, credentialsPath string) (service.PushService, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{
		client: client,
	}, nil
}

// Send delivers one composed payload to one device token. Invalid or
// unregistered tokens surface as service.ErrTokenInvalid so callers can tell
// dead tokens from transient gateway failures.
func (s *firebaseService) Send(ctx context.Context, token string, payload notification.Payload) (string, error) {
	messageID, err := s.client.Send(ctx, buildMessage(token, payload))
	if err != nil {
		if messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err) {
			return "", service.ErrTokenInvalid
		}

		return "", errors.Wrap(err, "failed to send notification")
	}

	return messageID, nil
}

// buildMessage maps the composed payload onto the FCM message shape the
// mobile client expects: Android channel/color/tag hints for OS grouping,
// APNS sound/badge/category, and a data block the client deep-links from.
func buildMessage(token string, payload notification.Payload) *messaging.Message {
	data := make(map[string]string, len(payload.Data)+1)
	for k, v := range payload.Data {
		data[k] = v
	}
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: payload.Channel,
				Sound:     payload.Sound,
				Icon:      "ic_notification",
				Color:     payload.Color,
				Tag:       payload.Tag,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound:    payload.Sound,
					Badge:    &payload.Badge,
					Category: payload.Category,
				},
			},
		},
	}

	return msg
}
