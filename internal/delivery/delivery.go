// Package delivery holds the inbound adapters of the service: the API
// server, the dispatcher push endpoint and the background reaper.
package delivery

import "context"

// Delivery is a long-running inbound adapter started by the fx app.
type Delivery interface {
	// Serve blocks until the adapter stops. Graceful shutdown is not an error.
	Serve(ctx context.Context) error
}
