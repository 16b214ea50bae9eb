package video

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"clipkit/internal/media"
	"clipkit/internal/testsupport"
)

func writeFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fixture"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func openFixture(t *testing.T, fake *testsupport.Invoker) *Video {
	t.Helper()
	path := writeFixture(t, "test.mp4")
	handle, err := Open(path, WithInvoker(fake))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	return handle
}

func TestOpenMissingFileFailsWithNotFound(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "a_non_existent_file.none"))
	if !errors.Is(err, media.ErrNotFound) {
		t.Fatalf("expected media.ErrNotFound, got %v", err)
	}
}

func TestOpenDirectoryFailsWithNotFound(t *testing.T) {
	_, err := Open(t.TempDir())
	if !errors.Is(err, media.ErrNotFound) {
		t.Fatalf("expected media.ErrNotFound for directory, got %v", err)
	}
}

func TestOpenResolvesAbsolutePath(t *testing.T) {
	path := writeFixture(t, "test.mp4")
	handle, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if !filepath.IsAbs(handle.Path()) {
		t.Fatalf("expected absolute path, got %q", handle.Path())
	}
}

func TestOpenDoesNotProbeEagerly(t *testing.T) {
	fake := &testsupport.Invoker{OutputPayload: testsupport.ProbeJSON("10.0", 250)}
	openFixture(t, fake)
	if fake.CallCount() != 0 {
		t.Fatalf("Open must not probe, recorded %d calls", fake.CallCount())
	}
}

func TestMetadataProbedOnceAndCached(t *testing.T) {
	fake := &testsupport.Invoker{OutputPayload: testsupport.ProbeJSON("10.000000", 250)}
	handle := openFixture(t, fake)

	for i := 0; i < 3; i++ {
		result, err := handle.Metadata(context.Background())
		if err != nil {
			t.Fatalf("Metadata access %d returned error: %v", i, err)
		}
		if result.FrameCount() != 250 {
			t.Fatalf("unexpected frame count %d", result.FrameCount())
		}
	}
	if fake.CallCount() != 1 {
		t.Fatalf("expected exactly one probe invocation, got %d", fake.CallCount())
	}
}

func TestMetadataFailureNotCached(t *testing.T) {
	sentinel := errors.New("probe failed")
	fake := &testsupport.Invoker{OutputErr: sentinel}
	handle := openFixture(t, fake)

	if _, err := handle.Metadata(context.Background()); !errors.Is(err, sentinel) {
		t.Fatalf("expected probe failure surfaced, got %v", err)
	}

	fake.OutputErr = nil
	fake.OutputPayload = testsupport.ProbeJSON("10.0", 250)
	if _, err := handle.Metadata(context.Background()); err != nil {
		t.Fatalf("expected retryable probe after failure, got %v", err)
	}
	if fake.CallCount() != 2 {
		t.Fatalf("expected two probe attempts, got %d", fake.CallCount())
	}
}

func TestIndependentHandlesShareNoCache(t *testing.T) {
	path := writeFixture(t, "test.mp4")
	fake := &testsupport.Invoker{OutputPayload: testsupport.ProbeJSON("10.0", 250)}

	first, err := Open(path, WithInvoker(fake))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	second, err := Open(path, WithInvoker(fake))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	metaA, err := first.Metadata(context.Background())
	if err != nil {
		t.Fatalf("Metadata returned error: %v", err)
	}
	metaB, err := second.Metadata(context.Background())
	if err != nil {
		t.Fatalf("Metadata returned error: %v", err)
	}
	if !reflect.DeepEqual(metaA.Streams, metaB.Streams) {
		t.Fatal("independent handles should observe structurally equal metadata")
	}
	if fake.CallCount() != 2 {
		t.Fatalf("each handle owns its own cache; expected 2 probes, got %d", fake.CallCount())
	}
}

func TestExtractAudioArguments(t *testing.T) {
	fake := &testsupport.Invoker{}
	handle := openFixture(t, fake)
	out := filepath.Join(t.TempDir(), "audio.aac")

	if err := handle.ExtractAudio(context.Background(), out); err != nil {
		t.Fatalf("ExtractAudio returned error: %v", err)
	}

	calls := fake.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one invocation, got %d", len(calls))
	}
	want := []string{"-i", handle.Path(), "-vn", "-acodec", "copy", out}
	if !reflect.DeepEqual(calls[0].Args, want) {
		t.Fatalf("unexpected arguments:\n got %v\nwant %v", calls[0].Args, want)
	}
	if calls[0].Binary != "ffmpeg" {
		t.Fatalf("expected ffmpeg binary, got %q", calls[0].Binary)
	}
}

func TestExtractAudioSurfacesProcessFailure(t *testing.T) {
	sentinel := errors.New("encode failed")
	fake := &testsupport.Invoker{RunErr: sentinel}
	handle := openFixture(t, fake)

	err := handle.ExtractAudio(context.Background(), filepath.Join(t.TempDir(), "audio.aac"))
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected process failure surfaced, got %v", err)
	}
}

func TestToImageSequenceArguments(t *testing.T) {
	fake := &testsupport.Invoker{}
	handle := openFixture(t, fake)
	dir := filepath.Join(t.TempDir(), "frames")

	if err := handle.ToImageSequence(context.Background(), dir, "jpg"); err != nil {
		t.Fatalf("ToImageSequence returned error: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected output directory created: %v", err)
	}
	calls := fake.Calls()
	want := []string{"-i", handle.Path(), filepath.Join(dir, "frame-%05d.jpg")}
	if !reflect.DeepEqual(calls[0].Args, want) {
		t.Fatalf("unexpected arguments:\n got %v\nwant %v", calls[0].Args, want)
	}
}

func TestToImageSequenceNormalizesFormat(t *testing.T) {
	fake := &testsupport.Invoker{}
	handle := openFixture(t, fake)
	dir := t.TempDir()

	if err := handle.ToImageSequence(context.Background(), dir, ".png"); err != nil {
		t.Fatalf("ToImageSequence returned error: %v", err)
	}
	calls := fake.Calls()
	if got := calls[0].Args[len(calls[0].Args)-1]; got != filepath.Join(dir, "frame-%05d.png") {
		t.Fatalf("unexpected pattern %q", got)
	}

	if err := handle.ToImageSequence(context.Background(), dir, " "); !errors.Is(err, media.ErrInvalidArgument) {
		t.Fatalf("expected media.ErrInvalidArgument for empty format, got %v", err)
	}
}

func TestFromImageSequence(t *testing.T) {
	outDir := t.TempDir()
	out := filepath.Join(outDir, "output.mp4")
	fake := &testsupport.Invoker{
		RunFunc: func(binary string, args []string) error {
			// The transcoding tool writes the output file.
			return os.WriteFile(out, []byte("video"), 0o644)
		},
	}

	handle, err := FromImageSequence(context.Background(), "frames/test-%03d.jpg", 25, out, WithInvoker(fake))
	if err != nil {
		t.Fatalf("FromImageSequence returned error: %v", err)
	}
	if handle.Path() != out {
		t.Fatalf("expected handle on %s, got %s", out, handle.Path())
	}

	calls := fake.Calls()
	want := []string{"-framerate", "25", "-i", "frames/test-%03d.jpg", out}
	if !reflect.DeepEqual(calls[0].Args, want) {
		t.Fatalf("unexpected arguments:\n got %v\nwant %v", calls[0].Args, want)
	}
}

func TestFromImageSequenceValidation(t *testing.T) {
	if _, err := FromImageSequence(context.Background(), " ", 25, "out.mp4"); !errors.Is(err, media.ErrInvalidArgument) {
		t.Fatalf("expected media.ErrInvalidArgument for empty pattern, got %v", err)
	}
	if _, err := FromImageSequence(context.Background(), "f-%03d.jpg", 0, "out.mp4"); !errors.Is(err, media.ErrInvalidArgument) {
		t.Fatalf("expected media.ErrInvalidArgument for zero rate, got %v", err)
	}
}

func TestReencode(t *testing.T) {
	out := filepath.Join(t.TempDir(), "output.avi")
	fake := &testsupport.Invoker{
		RunFunc: func(binary string, args []string) error {
			return os.WriteFile(out, []byte("video"), 0o644)
		},
	}
	handle := openFixture(t, fake)

	reencoded, err := handle.Reencode(context.Background(), out)
	if err != nil {
		t.Fatalf("Reencode returned error: %v", err)
	}
	if reencoded.Path() != out {
		t.Fatalf("expected handle on %s, got %s", out, reencoded.Path())
	}
	if reencoded == handle {
		t.Fatal("Reencode must return a fresh handle")
	}

	calls := fake.Calls()
	want := []string{"-i", handle.Path(), out}
	if !reflect.DeepEqual(calls[0].Args, want) {
		t.Fatalf("unexpected arguments:\n got %v\nwant %v", calls[0].Args, want)
	}
}

func TestBinaryOverridesApply(t *testing.T) {
	fake := &testsupport.Invoker{OutputPayload: testsupport.ProbeJSON("10.0", 1)}
	path := writeFixture(t, "test.mp4")
	handle, err := Open(path, WithInvoker(fake), WithFFmpeg("/opt/ffmpeg"), WithFFprobe("/opt/ffprobe"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if _, err := handle.Metadata(context.Background()); err != nil {
		t.Fatalf("Metadata returned error: %v", err)
	}
	if err := handle.ExtractAudio(context.Background(), filepath.Join(t.TempDir(), "a.aac")); err != nil {
		t.Fatalf("ExtractAudio returned error: %v", err)
	}

	calls := fake.Calls()
	if calls[0].Binary != "/opt/ffprobe" {
		t.Fatalf("expected ffprobe override, got %q", calls[0].Binary)
	}
	if calls[1].Binary != "/opt/ffmpeg" {
		t.Fatalf("expected ffmpeg override, got %q", calls[1].Binary)
	}
}

func TestEnvironmentOverridesApply(t *testing.T) {
	t.Setenv("CLIPKIT_FFMPEG", "/env/ffmpeg")
	t.Setenv("CLIPKIT_FFPROBE", "/env/ffprobe")

	fake := &testsupport.Invoker{OutputPayload: testsupport.ProbeJSON("10.0", 1)}
	handle := openFixture(t, fake)

	if _, err := handle.Metadata(context.Background()); err != nil {
		t.Fatalf("Metadata returned error: %v", err)
	}
	if calls := fake.Calls(); calls[0].Binary != "/env/ffprobe" {
		t.Fatalf("expected env ffprobe override, got %q", calls[0].Binary)
	}
}
