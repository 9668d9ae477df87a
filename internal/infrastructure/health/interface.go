package health

import "context"

// ServerInterface defines the health check server contract
type ServerInterface interface {
	// Start starts the health check server
	Start() error

	// Stop stops the health check server
	Stop(ctx context.Context) error
}
