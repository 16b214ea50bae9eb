package testsupport

import (
	"context"
	"sync"
)

// Call records one external tool invocation observed by the fake invoker.
type Call struct {
	Binary   string
	Args     []string
	Captured bool
}

// Invoker is a command.Invoker fake that records every call and returns
// canned responses, so media operations can be exercised without ffmpeg or
// ffprobe installed.
type Invoker struct {
	mu    sync.Mutex
	calls []Call

	// OutputPayload and OutputErr are returned by Output when OutputFunc is
	// nil. RunErr is returned by Run when RunFunc is nil.
	OutputPayload []byte
	OutputErr     error
	RunErr        error

	// OutputFunc and RunFunc take precedence when set, allowing per-call
	// behavior keyed on the argument list.
	OutputFunc func(binary string, args []string) ([]byte, error)
	RunFunc    func(binary string, args []string) error
}

// Output implements command.Invoker.
func (f *Invoker) Output(_ context.Context, binary string, args []string) ([]byte, error) {
	f.record(binary, args, true)
	if f.OutputFunc != nil {
		return f.OutputFunc(binary, args)
	}
	if f.OutputErr != nil {
		return nil, f.OutputErr
	}
	return append([]byte(nil), f.OutputPayload...), nil
}

// Run implements command.Invoker.
func (f *Invoker) Run(_ context.Context, binary string, args []string) error {
	f.record(binary, args, false)
	if f.RunFunc != nil {
		return f.RunFunc(binary, args)
	}
	return f.RunErr
}

// Calls returns a copy of the recorded invocations in order.
func (f *Invoker) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns the number of recorded invocations.
func (f *Invoker) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *Invoker) record(binary string, args []string, captured bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{
		Binary:   binary,
		Args:     append([]string(nil), args...),
		Captured: captured,
	})
}
