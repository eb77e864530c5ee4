// Package delivery holds the transports that expose the usecases.
package delivery

import "context"

// Delivery is a server started by the application once dependencies are wired.
type Delivery interface {
	Serve(ctx context.Context) error
}
