// Package delivery defines the transport-facing surface of the application.
package delivery

import "context"

// Delivery is a server that accepts external traffic. Implementations block
// in Serve until shutdown and register their own stop hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
