// Package config loads and validates the TOML configuration for the
// toolkit: external tool binaries, the temp directory root, and logging
// options.
//
// Resolution order is an explicit --config path, then
// ~/.config/clipkit/config.toml, then a project-local clipkit.toml, then
// built-in defaults. CLIPKIT_FFMPEG and CLIPKIT_FFPROBE environment
// variables override the configured binaries last.
package config
