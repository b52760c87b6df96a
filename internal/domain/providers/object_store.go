package providers

import "context"

// ObjectStore defines the interface for durable video storage backends.
type ObjectStore interface {
	// Put writes the object and returns a URL servable by the
	// application's static/file endpoint.
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
}
