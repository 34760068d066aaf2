package ffprobe

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type stubExecutor struct {
	stdout string
	stderr string
	err    error
	binary string
	args   []string
}

func (s *stubExecutor) Run(_ context.Context, binary string, args []string) ([]byte, []byte, error) {
	s.binary = binary
	s.args = append([]string(nil), args...)
	return []byte(s.stdout), []byte(s.stderr), s.err
}

func TestArgsRequestFirstVideoStreamDimensions(t *testing.T) {
	want := []string{"-v", "error", "-select_streams", "v:0", "-show_entries", "stream=width,height", "-of", "json", "/videos/clip.mp4"}
	if got := Args("/videos/clip.mp4"); !reflect.DeepEqual(got, want) {
		t.Fatalf("Args() = %v, want %v", got, want)
	}
}

func TestInspectWithParsesStreams(t *testing.T) {
	stub := &stubExecutor{stdout: `{"programs":[],"streams":[{"width":1280,"height":800},{"width":640,"height":480}]}`}
	result, err := InspectWith(context.Background(), stub, "", "/videos/clip.mp4")
	if err != nil {
		t.Fatalf("InspectWith returned error: %v", err)
	}
	if stub.binary != "ffprobe" {
		t.Fatalf("expected default binary, got %q", stub.binary)
	}
	stream, ok := result.FirstStream()
	if !ok {
		t.Fatal("expected a first stream")
	}
	if stream.Width != (Dimension{Value: 1280, Valid: true}) || stream.Height != (Dimension{Value: 800, Valid: true}) {
		t.Fatalf("unexpected stream: %+v", stream)
	}
	if len(result.RawJSON()) == 0 {
		t.Fatal("expected raw JSON to be retained")
	}
}

func TestInspectWithRejectsEmptyPath(t *testing.T) {
	stub := &stubExecutor{}
	if _, err := InspectWith(context.Background(), stub, "ffprobe", "  "); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
	if stub.binary != "" {
		t.Fatal("executor should not run for empty path")
	}
}

func TestInspectWithWrapsExecutorFailure(t *testing.T) {
	stub := &stubExecutor{stderr: "clip.mp4: No such file or directory\n", err: errors.New("exit status 1")}
	_, err := InspectWith(context.Background(), stub, "ffprobe", "clip.mp4")
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got %T %v", err, err)
	}
	if execErr.Stderr != "clip.mp4: No such file or directory" {
		t.Fatalf("unexpected stderr: %q", execErr.Stderr)
	}
	if execErr.Started() {
		t.Fatal("plain errors should not count as a started process")
	}
	if !strings.Contains(err.Error(), "No such file") {
		t.Fatalf("expected stderr in message, got %q", err.Error())
	}
}

func TestParseAcceptsStringDimensions(t *testing.T) {
	result, err := Parse([]byte(`{"streams":[{"width":"1920","height":" 800 "}]}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	stream, _ := result.FirstStream()
	if stream.Width.Value != 1920 || stream.Height.Value != 800 {
		t.Fatalf("unexpected dimensions: %+v", stream)
	}
}

func TestParseMarksMissingDimensions(t *testing.T) {
	result, err := Parse([]byte(`{"streams":[{}]}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	stream, ok := result.FirstStream()
	if !ok {
		t.Fatal("expected a stream entry")
	}
	if stream.Width.Valid || stream.Height.Valid {
		t.Fatalf("expected missing dimensions, got %+v", stream)
	}
}

func TestParseRejectsMalformedPayloads(t *testing.T) {
	for _, payload := range []string{
		"not json",
		`{"streams":[{"width":"wide","height":9}]}`,
		`{"streams":[{"width":12.5,"height":9}]}`,
	} {
		if _, err := Parse([]byte(payload)); err == nil {
			t.Fatalf("expected parse error for %q", payload)
		}
	}
}

func TestResultWithoutStreams(t *testing.T) {
	result, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if _, ok := result.FirstStream(); ok {
		t.Fatal("expected no first stream")
	}
}

func TestCommandExecutorSeparatesStreams(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fake-ffprobe")
	body := "#!/bin/sh\necho '{\"streams\":[]}'\necho 'warning' >&2\nexit 0\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	stdout, stderr, err := CommandExecutor{}.Run(context.Background(), script, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if strings.TrimSpace(string(stdout)) != `{"streams":[]}` {
		t.Fatalf("unexpected stdout: %q", stdout)
	}
	if strings.TrimSpace(string(stderr)) != "warning" {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
}

func TestCommandExecutorReportsExitStatus(t *testing.T) {
	script := filepath.Join(t.TempDir(), "failing-ffprobe")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 3\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	_, err := InspectWith(context.Background(), CommandExecutor{}, script, "clip.mp4")
	var execErr *ExecError
	if !errors.As(err, &execErr) || !execErr.Started() {
		t.Fatalf("expected started ExecError, got %v", err)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Fatalf("expected exit code 3, got %v", err)
	}
}
