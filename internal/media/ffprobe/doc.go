// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//   - Format: container-level metadata (duration, size, format name)
//
// Primary entry point:
//   - Inspect: executes ffprobe through an Invoker and returns a parsed
//     Result
//
// Durations and frame counts stay in the decimal string form ffprobe
// reports; Result helpers convert them to timecode.Seconds and ints on
// demand.
package ffprobe
