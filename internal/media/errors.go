package media

import "errors"

// Sentinel errors shared by the media packages. Callers classify failures
// with errors.Is; process failures additionally expose *command.Error via
// errors.As for exit code and stderr detail.
var (
	// ErrNotFound marks an attempt to open a path with no file behind it.
	ErrNotFound = errors.New("media file not found")
	// ErrParse marks probe output that is not valid structured data.
	ErrParse = errors.New("probe output parse error")
	// ErrInvalidArgument marks an operation parameter that is missing or
	// inconsistent with the operand, such as overlaying a still image
	// without an explicit duration.
	ErrInvalidArgument = errors.New("invalid argument")
)
