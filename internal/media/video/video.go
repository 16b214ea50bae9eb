package video

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"clipkit/internal/command"
	"clipkit/internal/media"
	"clipkit/internal/media/ffprobe"
)

const (
	envFFmpeg  = "CLIPKIT_FFMPEG"
	envFFprobe = "CLIPKIT_FFPROBE"
)

// deps carries the external tool wiring shared by a handle and every handle
// derived from it.
type deps struct {
	invoker  command.Invoker
	ffmpeg   string
	ffprobe  string
	tempRoot string
}

// Option configures a handle at Open time.
type Option func(*deps)

// WithInvoker substitutes the process invoker (primarily for tests).
func WithInvoker(invoker command.Invoker) Option {
	return func(d *deps) {
		if invoker != nil {
			d.invoker = invoker
		}
	}
}

// WithFFmpeg overrides the transcoding binary name or path.
func WithFFmpeg(binary string) Option {
	return func(d *deps) {
		if binary != "" {
			d.ffmpeg = binary
		}
	}
}

// WithFFprobe overrides the probing binary name or path.
func WithFFprobe(binary string) Option {
	return func(d *deps) {
		if binary != "" {
			d.ffprobe = binary
		}
	}
}

// WithTempRoot overrides the root under which scoped temp directories are
// created for multi-step operations.
func WithTempRoot(root string) Option {
	return func(d *deps) {
		if root != "" {
			d.tempRoot = root
		}
	}
}

// Video is a handle on one media file. Operations never mutate the handle
// beyond its metadata cache; anything that produces new media returns a
// fresh handle wrapping the new file.
type Video struct {
	path string
	deps deps

	mu         sync.Mutex
	meta       ffprobe.Result
	metaLoaded bool
}

// Open validates that a file exists at path and wraps it in a handle. The
// file is not probed until metadata is first requested.
func Open(path string, opts ...Option) (*Video, error) {
	resolved := defaultDeps()
	for _, opt := range opts {
		opt(&resolved)
	}
	return open(path, resolved)
}

func open(path string, resolved deps) (*Video, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", media.ErrNotFound)
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", path, err)
	}
	info, err := os.Stat(absolute)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", media.ErrNotFound, absolute)
		}
		return nil, fmt.Errorf("stat %s: %w", absolute, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", media.ErrNotFound, absolute)
	}
	return &Video{path: absolute, deps: resolved}, nil
}

func defaultDeps() deps {
	return deps{
		invoker: command.NewRunner(),
		ffmpeg:  envDefault(envFFmpeg, "ffmpeg"),
		ffprobe: envDefault(envFFprobe, "ffprobe"),
	}
}

func envDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// Path returns the absolute path of the underlying file.
func (v *Video) Path() string {
	return v.path
}

// Metadata probes the file on first access and caches the result for the
// handle's lifetime. The cache is never refreshed, even if another operation
// later rewrites the file. Probe failures are not cached.
func (v *Video) Metadata(ctx context.Context) (ffprobe.Result, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.metaLoaded {
		return v.meta, nil
	}
	result, err := ffprobe.Inspect(ctx, v.deps.invoker, v.deps.ffprobe, v.path)
	if err != nil {
		return ffprobe.Result{}, err
	}
	v.meta = result
	v.metaLoaded = true
	return v.meta, nil
}

// ExtractAudio copies the audio stream, unre-encoded, to outputPath.
func (v *Video) ExtractAudio(ctx context.Context, outputPath string) error {
	if strings.TrimSpace(outputPath) == "" {
		return fmt.Errorf("%w: output path required", media.ErrInvalidArgument)
	}
	args := []string{"-i", v.path, "-vn", "-acodec", "copy", outputPath}
	if err := v.deps.invoker.Run(ctx, v.deps.ffmpeg, args); err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	return nil
}

// ToImageSequence writes one image per frame into dir, named with a
// zero-padded sequential pattern and the given extension (for example
// "frame-00001.jpg").
func (v *Video) ToImageSequence(ctx context.Context, dir string, format string) error {
	format = strings.TrimPrefix(strings.TrimSpace(format), ".")
	if format == "" {
		return fmt.Errorf("%w: image format required", media.ErrInvalidArgument)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create image directory: %w", err)
	}
	pattern := filepath.Join(dir, "frame-%05d."+format)
	args := []string{"-i", v.path, pattern}
	if err := v.deps.invoker.Run(ctx, v.deps.ffmpeg, args); err != nil {
		return fmt.Errorf("to image sequence: %w", err)
	}
	return nil
}

// FromImageSequence assembles a video at frameRate from the images matched
// by pattern (an ffmpeg sequence pattern such as "frame-%03d.jpg") and
// returns a handle on the result.
func FromImageSequence(ctx context.Context, pattern string, frameRate int, outputPath string, opts ...Option) (*Video, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: image pattern required", media.ErrInvalidArgument)
	}
	if frameRate <= 0 {
		return nil, fmt.Errorf("%w: frame rate must be positive", media.ErrInvalidArgument)
	}
	resolved := defaultDeps()
	for _, opt := range opts {
		opt(&resolved)
	}
	args := []string{"-framerate", strconv.Itoa(frameRate), "-i", pattern, outputPath}
	if err := resolved.invoker.Run(ctx, resolved.ffmpeg, args); err != nil {
		return nil, fmt.Errorf("from image sequence: %w", err)
	}
	return open(outputPath, resolved)
}

// Reencode rewrites the media to outputPath, letting the transcoding tool
// infer container and codec from the output extension.
func (v *Video) Reencode(ctx context.Context, outputPath string) (*Video, error) {
	if strings.TrimSpace(outputPath) == "" {
		return nil, fmt.Errorf("%w: output path required", media.ErrInvalidArgument)
	}
	args := []string{"-i", v.path, outputPath}
	if err := v.deps.invoker.Run(ctx, v.deps.ffmpeg, args); err != nil {
		return nil, fmt.Errorf("reencode: %w", err)
	}
	return open(outputPath, v.deps)
}
