// Package main hosts the clipkit CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces each media operation (probe,
// extract-audio, image sequences, overlay, reencode, split, concat, insert)
// plus configuration scaffolding and an external-tool availability check. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on argument handling.
//
// Keep this package lean: new functionality belongs in the internal packages
// first, surfaced here through dedicated commands or flags.
package main
