package tempdir

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWithCreatesAndRemoves(t *testing.T) {
	root := t.TempDir()
	var seen string
	err := With(root, func(dir string) error {
		seen = dir
		info, err := os.Stat(dir)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			t.Fatalf("expected directory at %s", dir)
		}
		return os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("x"), 0o644)
	})
	if err != nil {
		t.Fatalf("With returned error: %v", err)
	}
	if seen == "" {
		t.Fatal("callback never invoked")
	}
	if !strings.HasPrefix(filepath.Base(seen), "clipkit-") {
		t.Fatalf("unexpected directory name %q", seen)
	}
	if _, err := os.Stat(seen); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected directory removed after scope, stat err: %v", err)
	}
}

func TestWithRemovesOnError(t *testing.T) {
	root := t.TempDir()
	sentinel := errors.New("callback failed")
	var seen string
	err := With(root, func(dir string) error {
		seen = dir
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected callback error propagated, got %v", err)
	}
	if _, err := os.Stat(seen); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected directory removed after failing scope, stat err: %v", err)
	}
}

func TestWithUniqueDirectories(t *testing.T) {
	root := t.TempDir()
	dirs := make(map[string]struct{})
	for i := 0; i < 5; i++ {
		if err := With(root, func(dir string) error {
			dirs[dir] = struct{}{}
			return nil
		}); err != nil {
			t.Fatalf("With returned error: %v", err)
		}
	}
	if len(dirs) != 5 {
		t.Fatalf("expected 5 unique directories, got %d", len(dirs))
	}
}

func TestWithDefaultsToSystemTemp(t *testing.T) {
	err := With("", func(dir string) error {
		if !strings.HasPrefix(dir, os.TempDir()) {
			t.Fatalf("expected directory under system temp root, got %s", dir)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("With returned error: %v", err)
	}
}
