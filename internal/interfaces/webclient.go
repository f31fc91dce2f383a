package interfaces

import (
	"context"

	"github.com/raysh454/kensa/internal/model"
)

// WebClient is the minimal cross-package contract for executing HTTP requests.
// Implementations must honor the request context for cancellation and deadlines.
type WebClient interface {
	Do(ctx context.Context, req *model.Request) (*model.Response, error)

	// Get is a convenience method for simple GET requests
	Get(ctx context.Context, url string) (*model.Response, error)

	Close() error
}
