// Package testsupport provides shared fakes and file helpers for tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path (and any parent directories) with the given
// content, failing the test on error.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
