// Package service defines the interfaces for external collaborators: the
// push gateway and the event transport.
package service

import (
	"context"
	"errors"

	"adopet/internal/domain/notification"
)

// ErrTokenInvalid is returned when the push gateway rejects the device token
// as invalid or unregistered. The token is dead weight; the failure is
// permanent, not transient.
var ErrTokenInvalid = errors.New("push token invalid or unregistered")

// PushService wraps the push gateway. One call sends one notification to one
// device token; no retries happen at this layer.
type PushService interface {
	// Send delivers a composed payload to the given device token and returns
	// the gateway-assigned message id.
	Send(ctx context.Context, token string, payload notification.Payload) (string, error)
}
