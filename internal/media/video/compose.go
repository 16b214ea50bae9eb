package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"clipkit/internal/media"
	"clipkit/internal/tempdir"
	"clipkit/internal/timecode"
)

// OverlayOption adjusts overlay behavior.
type OverlayOption func(*overlayConfig)

type overlayConfig struct {
	duration    timecode.Seconds
	hasDuration bool
}

// OverlayDuration bounds the overlay window explicitly. Required when the
// overlay source has no intrinsic duration, such as a still image.
func OverlayDuration(duration timecode.Seconds) OverlayOption {
	return func(c *overlayConfig) {
		c.duration = duration
		c.hasDuration = true
	}
}

// Overlay composites other on top of this media starting at start and
// returns a handle on the result. The overlay window runs for other's
// intrinsic duration unless OverlayDuration is given; a still image without
// an explicit duration fails with media.ErrInvalidArgument.
func (v *Video) Overlay(ctx context.Context, other *Video, start timecode.Seconds, outputPath string, opts ...OverlayOption) (*Video, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: overlay source required", media.ErrInvalidArgument)
	}
	if strings.TrimSpace(outputPath) == "" {
		return nil, fmt.Errorf("%w: output path required", media.ErrInvalidArgument)
	}

	var cfg overlayConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	otherMeta, err := other.Metadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("probe overlay source: %w", err)
	}
	intrinsic, hasIntrinsic := otherMeta.Duration()

	duration := cfg.duration
	if !cfg.hasDuration {
		if !hasIntrinsic {
			return nil, fmt.Errorf("%w: overlay duration required for a source without intrinsic duration", media.ErrInvalidArgument)
		}
		duration = intrinsic
	}
	end := start.Add(duration)

	args := []string{"-i", v.path}
	if !hasIntrinsic {
		// Still images must be looped into a stream before they can be
		// composited for a window of time.
		args = append(args, "-loop", "1")
	}
	args = append(args, "-i", other.path)
	filter := fmt.Sprintf(
		"[1:v]setpts=PTS-STARTPTS+%s/TB[ov];[0:v][ov]overlay=eof_action=pass:enable='between(t,%s,%s)'[out]",
		start, start, end,
	)
	args = append(args, "-filter_complex", filter, "-map", "[out]", "-map", "0:a?", outputPath)

	if err := v.deps.invoker.Run(ctx, v.deps.ffmpeg, args); err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}
	return open(outputPath, v.deps)
}

// Split cuts the media at an exact decimal offset, writing [0, at) to pathA
// and [at, end) to pathB, and returns handles on both segments in that
// order. The two invocations run strictly sequentially.
func (v *Video) Split(ctx context.Context, at timecode.Seconds, pathA, pathB string) (*Video, *Video, error) {
	if !at.IsPositive() {
		return nil, nil, fmt.Errorf("%w: split point must be positive", media.ErrInvalidArgument)
	}
	if strings.TrimSpace(pathA) == "" || strings.TrimSpace(pathB) == "" {
		return nil, nil, fmt.Errorf("%w: both output paths required", media.ErrInvalidArgument)
	}

	first := []string{"-i", v.path, "-t", at.String(), pathA}
	if err := v.deps.invoker.Run(ctx, v.deps.ffmpeg, first); err != nil {
		return nil, nil, fmt.Errorf("split first segment: %w", err)
	}
	second := []string{"-i", v.path, "-ss", at.String(), pathB}
	if err := v.deps.invoker.Run(ctx, v.deps.ffmpeg, second); err != nil {
		return nil, nil, fmt.Errorf("split second segment: %w", err)
	}

	segmentA, err := open(pathA, v.deps)
	if err != nil {
		return nil, nil, err
	}
	segmentB, err := open(pathB, v.deps)
	if err != nil {
		return nil, nil, err
	}
	return segmentA, segmentB, nil
}

// Concatenate joins this media followed by others, in order, into
// outputPath using the concat demuxer. The list file lives in a scoped temp
// directory and is gone by the time the method returns.
func (v *Video) Concatenate(ctx context.Context, others []*Video, outputPath string) (*Video, error) {
	if strings.TrimSpace(outputPath) == "" {
		return nil, fmt.Errorf("%w: output path required", media.ErrInvalidArgument)
	}
	for _, other := range others {
		if other == nil {
			return nil, fmt.Errorf("%w: nil handle in concatenation list", media.ErrInvalidArgument)
		}
	}

	err := tempdir.With(v.deps.tempRoot, func(dir string) error {
		var list strings.Builder
		fmt.Fprintf(&list, "file '%s'\n", v.path)
		for _, other := range others {
			fmt.Fprintf(&list, "file '%s'\n", other.path)
		}
		listPath := filepath.Join(dir, "concat.txt")
		if err := os.WriteFile(listPath, []byte(list.String()), 0o644); err != nil {
			return fmt.Errorf("write concat list: %w", err)
		}
		args := []string{"-f", "concat", "-safe", "0", "-i", listPath, "-c", "copy", outputPath}
		if err := v.deps.invoker.Run(ctx, v.deps.ffmpeg, args); err != nil {
			return fmt.Errorf("concatenate: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return open(outputPath, v.deps)
}

// Insert splits this media at the given offset and joins
// [first half, other, second half] into outputPath. The intermediate
// segments are staged in a scoped temp directory.
func (v *Video) Insert(ctx context.Context, other *Video, at timecode.Seconds, outputPath string) (*Video, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: insert source required", media.ErrInvalidArgument)
	}
	if strings.TrimSpace(outputPath) == "" {
		return nil, fmt.Errorf("%w: output path required", media.ErrInvalidArgument)
	}

	var result *Video
	err := tempdir.With(v.deps.tempRoot, func(dir string) error {
		ext := filepath.Ext(v.path)
		first, second, err := v.Split(ctx, at, filepath.Join(dir, "head"+ext), filepath.Join(dir, "tail"+ext))
		if err != nil {
			return err
		}
		joined, err := first.Concatenate(ctx, []*Video{other, second}, outputPath)
		if err != nil {
			return err
		}
		result = joined
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
