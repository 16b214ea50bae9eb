package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Invoker abstracts external process execution so media operations can be
// exercised in tests without spawning real binaries.
type Invoker interface {
	// Output runs binary with args, blocks until exit, and returns captured
	// stdout. A non-zero exit surfaces as *Error.
	Output(ctx context.Context, binary string, args []string) ([]byte, error)
	// Run runs binary with args and blocks until exit, forwarding stderr to
	// the caller's stderr stream. A non-zero exit surfaces as *Error.
	Run(ctx context.Context, binary string, args []string) error
}

// Error reports a failed invocation of an external tool.
type Error struct {
	Binary   string
	Args     []string
	ExitCode int
	Stderr   string
	err      error
}

func (e *Error) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" {
		detail = e.err.Error()
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Binary, e.ExitCode, detail)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Runner is the production Invoker backed by os/exec.
type Runner struct{}

// NewRunner constructs the default process invoker.
func NewRunner() Runner {
	return Runner{}
}

// Output implements Invoker.
func (Runner) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("command: empty binary")
	}
	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, wrapExit(binary, args, stderr.String(), err)
	}
	return stdout.Bytes(), nil
}

// Run implements Invoker.
func (Runner) Run(ctx context.Context, binary string, args []string) error {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return errors.New("command: empty binary")
	}
	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stdout = os.Stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return wrapExit(binary, args, stderr.String(), err)
	}
	return nil
}

func wrapExit(binary string, args []string, stderr string, err error) error {
	wrapped := &Error{
		Binary: binary,
		Args:   append([]string(nil), args...),
		Stderr: stderr,
		err:    err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		wrapped.ExitCode = exitErr.ExitCode()
		if stderr == "" {
			wrapped.Stderr = string(exitErr.Stderr)
		}
		return wrapped
	}
	wrapped.ExitCode = -1
	return wrapped
}

var _ Invoker = Runner{}
