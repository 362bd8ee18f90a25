package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/devtrails/bootcamp-directory/internal/domain/providers"
)

// LocalStore implements FileStore on the local filesystem. Names are derived
// upstream from resource ids, so a plain Join is safe here; Base strips any
// separator that slipped through.
type LocalStore struct {
	root string
}

// NewLocalStore creates a file store rooted at the configured upload path.
func NewLocalStore(root string) (providers.FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", root, err)
	}
	return &LocalStore{root: root}, nil
}

// Save writes the file under the store root, replacing any existing file.
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dst := filepath.Join(s.root, filepath.Base(name))
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}

	return f.Close()
}
