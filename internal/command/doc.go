// Package command isolates external process execution behind the Invoker
// interface.
//
// Every ffmpeg/ffprobe call in the toolkit flows through an Invoker, which
// keeps argument construction testable: tests substitute a recording fake and
// assert on the exact argument lists without spawning real binaries.
//
// Failures carry the binary name, argument list, exit code and captured
// stderr so callers can report actionable diagnostics. Nothing here retries;
// re-running a partially written transcode is never safe to do blindly.
package command
