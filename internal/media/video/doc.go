// Package video provides the media handle and its transformation
// operations.
//
// A Video wraps one file on disk. Metadata is probed lazily and cached for
// the handle's lifetime; transformations (extract audio, image sequences,
// overlay, re-encode, split, concatenate, insert) each translate into one or
// more external tool invocations and return fresh handles for any media they
// produce. Every operation blocks until its child process exits, and none of
// them retries.
//
// All duration arithmetic uses timecode.Seconds so split points survive
// round trips through the external tools without floating-point drift.
package video
