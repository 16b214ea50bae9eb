package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"clipkit/internal/command"
	"clipkit/internal/media"
	"clipkit/internal/timecode"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// Stream describes a single stream in the media container. Duration and
// frame counts are kept as the decimal strings ffprobe reports; converting
// them to floats would lose the exactness split arithmetic depends on.
type Stream struct {
	Index        int    `json:"index"`
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	Duration     string `json:"duration"`
	NBFrames     string `json:"nb_frames"`
	BitRate      string `json:"bit_rate"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
	SampleRate   string `json:"sample_rate"`
	Channels     int    `json:"channels"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

// Inspect executes the probe binary against path and decodes the JSON
// response. The binary fails for unreadable or non-media paths; malformed
// output surfaces as media.ErrParse.
func Inspect(ctx context.Context, invoker command.Invoker, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	args := []string{"-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path}
	output, err := invoker.Output(ctx, binary, args)
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("%w: %v", media.ErrParse, err)
	}
	result.raw = append([]byte(nil), output...)
	return result, nil
}

// RawJSON returns the raw ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// Map decodes the raw payload into a generic nested mapping for callers that
// need fields beyond the typed accessors.
func (r Result) Map() (map[string]any, error) {
	if len(r.raw) == 0 {
		return map[string]any{}, nil
	}
	var decoded map[string]any
	if err := json.Unmarshal(r.raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", media.ErrParse, err)
	}
	return decoded, nil
}

// FirstVideoStream returns the first video stream, if any.
func (r Result) FirstVideoStream() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			return stream, true
		}
	}
	return Stream{}, false
}

// HasAudio reports whether the container carries at least one audio stream.
func (r Result) HasAudio() bool {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			return true
		}
	}
	return false
}

// Duration returns the container duration as an exact decimal quantity. The
// second return value is false when ffprobe reported none, which is the case
// for still images.
func (r Result) Duration() (timecode.Seconds, bool) {
	if seconds, err := timecode.Parse(r.Format.Duration); err == nil {
		return seconds, true
	}
	// Some containers only report per-stream durations.
	for _, stream := range r.Streams {
		if seconds, err := timecode.Parse(stream.Duration); err == nil {
			return seconds, true
		}
	}
	return timecode.Zero, false
}

// FrameCount returns the frame count of the first video stream, or 0 when
// unreported.
func (r Result) FrameCount() int {
	stream, ok := r.FirstVideoStream()
	if !ok {
		return 0
	}
	count, err := strconv.Atoi(strings.TrimSpace(stream.NBFrames))
	if err != nil || count < 0 {
		return 0
	}
	return count
}
