package providers

import (
	"context"
	"io"
)

// FileStore persists uploaded file bytes under a derived name. The upload
// validation policy lives in the application layer; implementations only move
// bytes.
type FileStore interface {
	// Save writes the contents of r under the given name, overwriting any
	// previous file with that name.
	Save(ctx context.Context, name string, r io.Reader) error
}
