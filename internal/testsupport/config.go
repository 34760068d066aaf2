package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"letterbox/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LockDir = filepath.Join(base, "locks")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBinaries points the config at specific ffprobe and ffmpeg executables.
func WithBinaries(ffprobePath, ffmpegPath string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tools.FFprobe = ffprobePath
		b.cfg.Tools.FFmpeg = ffmpegPath
	}
}

// WithLogDir enables file logging under a temp directory.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Dir = filepath.Join(b.baseDir, "logs")
	}
}

// WithStubbedBinaries writes no-op executables for the provided names and
// prepends them to PATH. If names is empty, ffprobe and ffmpeg are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffprobe", "ffmpeg"}
		}
		binDir := b.binDir()
		for _, name := range names {
			writeScript(b.t, filepath.Join(binDir, name), "exit 0\n")
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// WithFakeFFprobe installs an ffprobe script that reports a single video
// stream of the given size.
func WithFakeFFprobe(width, height int) ConfigOption {
	return func(b *configBuilder) {
		body := fmt.Sprintf("printf '%%s\\n' '{\"streams\":[{\"width\":%d,\"height\":%d}]}'\n", width, height)
		b.cfg.Tools.FFprobe = writeScript(b.t, filepath.Join(b.binDir(), "fake-ffprobe"), body)
	}
}

// WithFakeFFprobeOutput installs an ffprobe script that prints stdout verbatim
// and exits with code.
func WithFakeFFprobeOutput(stdout string, code int) ConfigOption {
	return func(b *configBuilder) {
		body := fmt.Sprintf("cat <<'JSON'\n%s\nJSON\nexit %d\n", stdout, code)
		b.cfg.Tools.FFprobe = writeScript(b.t, filepath.Join(b.binDir(), "fake-ffprobe"), body)
	}
}

// WithFakeFFmpeg installs an ffmpeg script that writes a small file at its
// last argument, which is where letterbox puts the output path.
func WithFakeFFmpeg() ConfigOption {
	return func(b *configBuilder) {
		body := "for last; do :; done\nprintf 'letterboxed' > \"$last\"\necho 'frame=1 fps=0.0' >&2\n"
		b.cfg.Tools.FFmpeg = writeScript(b.t, filepath.Join(b.binDir(), "fake-ffmpeg"), body)
	}
}

// WithFailingFFmpeg installs an ffmpeg script that prints message to stderr
// and exits 1 without writing anything.
func WithFailingFFmpeg(message string) ConfigOption {
	return func(b *configBuilder) {
		body := fmt.Sprintf("echo %q >&2\nexit 1\n", message)
		b.cfg.Tools.FFmpeg = writeScript(b.t, filepath.Join(b.binDir(), "fake-ffmpeg"), body)
	}
}

func (b *configBuilder) binDir() string {
	dir := filepath.Join(b.baseDir, "bin")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		b.t.Fatalf("mkdir bin dir: %v", err)
	}
	return dir
}

func writeScript(t testing.TB, path, body string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
	return path
}
