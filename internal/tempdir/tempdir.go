// Package tempdir provides scoped temporary directories for multi-step media
// operations.
//
// A scope creates a uniquely named directory, hands it to the callback, and
// removes it recursively on every exit path. Concatenation and insertion use
// scopes to stage intermediate segments and list files without leaking them.
package tempdir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// With creates a uniquely named directory under root (the system temp root
// when root is empty), invokes fn with its path, and removes the directory
// and its contents afterwards. fn's error is propagated after cleanup.
func With(root string, fn func(dir string) error) error {
	if root == "" {
		root = os.TempDir()
	}
	dir := filepath.Join(root, "clipkit-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(dir)
	return fn(dir)
}
