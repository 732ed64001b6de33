// Package delivery defines the contract every transport server fulfils.
package delivery

import "context"

// Delivery is a long-running transport endpoint, such as an HTTP server.
// Serve blocks until the server stops; shutdown is driven by fx lifecycle
// hooks registered at construction time.
type Delivery interface {
	Serve(ctx context.Context) error
}
