package letterbox

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"letterbox/internal/aspect"
	"letterbox/internal/logging"
)

const stderrTailBytes = 4 << 10

// Executor abstracts command execution for testability. stderr receives the
// child's standard error as it is produced.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, stderr io.Writer) error
}

// Option configures the transcoder.
type Option func(*Transcoder)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(t *Transcoder) {
		if exec != nil {
			t.exec = exec
		}
	}
}

// WithLogger sets the logger used for transcode diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transcoder) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithProgress mirrors ffmpeg's stderr to w while it runs.
func WithProgress(w io.Writer) Option {
	return func(t *Transcoder) {
		t.progress = w
	}
}

// WithLockDir enables per-output locking under dir.
func WithLockDir(dir string) Option {
	return func(t *Transcoder) {
		t.lockDir = strings.TrimSpace(dir)
	}
}

// Transcoder wraps ffmpeg letterbox invocations.
type Transcoder struct {
	opts     PlanOptions
	exec     Executor
	logger   *slog.Logger
	progress io.Writer
	lockDir  string
}

// NewTranscoder constructs a transcoder.
func NewTranscoder(planOpts PlanOptions, opts ...Option) *Transcoder {
	t := &Transcoder{
		opts:   planOpts,
		exec:   commandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = logging.NewComponentLogger(t.logger, "letterbox")
	return t
}

// Plan resolves the invocation for input without running it.
func (t *Transcoder) Plan(input string, source aspect.Resolution) Plan {
	return BuildPlan(input, source, t.opts)
}

// Letterbox runs ffmpeg for input and returns the output path.
func (t *Transcoder) Letterbox(ctx context.Context, input string, source aspect.Resolution) (string, error) {
	plan := t.Plan(input, source)
	if err := t.Execute(ctx, plan); err != nil {
		return "", err
	}
	return plan.Output, nil
}

// Execute runs a previously built plan, blocking until ffmpeg exits.
func (t *Transcoder) Execute(ctx context.Context, plan Plan) error {
	logger := logging.WithContext(ctx, t.logger)

	unlock, err := t.acquireLock(plan.Output)
	if err != nil {
		return &TranscodeError{Input: plan.Input, Output: plan.Output, Stage: StageLock, Err: err}
	}
	defer unlock()

	logger.Info("letterboxing", logging.Args(
		logging.String("source", plan.Source.String()),
		logging.Int("target_width", plan.Target.Width),
		logging.Int("target_height", plan.Target.Height),
		logging.String("output", plan.Output),
	)...)
	logger.Debug("ffmpeg command", logging.Args(logging.String("command", plan.CommandLine()))...)

	tail := newTailBuffer(stderrTailBytes)
	var stderr io.Writer = tail
	if t.progress != nil {
		stderr = io.MultiWriter(tail, t.progress)
	}

	started := time.Now()
	if err := t.exec.Run(ctx, plan.Binary, plan.Args, stderr); err != nil {
		stage := StageLaunch
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stage = StageExit
		}
		return &TranscodeError{
			Input:  plan.Input,
			Output: plan.Output,
			Stage:  stage,
			Stderr: lastLine(tail.String()),
			Err:    err,
		}
	}

	logger.Info("letterbox complete", logging.Args(
		logging.String("output", plan.Output),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	)...)
	return nil
}

// acquireLock takes an exclusive lock keyed by the output path. The lock file
// lives in the lock directory so nothing besides the output is created next
// to the input. It stays on disk after release: unlinking a flock file lets a
// second process lock a fresh inode while a third still holds the old one.
func (t *Transcoder) acquireLock(output string) (func(), error) {
	if t.lockDir == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(t.lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(LockPath(t.lockDir, output))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("output %s is being written by another letterbox process", output)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			t.logger.Warn("failed to release output lock", logging.Args(logging.Error(err))...)
		}
	}, nil
}

// LockPath returns the lock file used while writing output.
func LockPath(dir, output string) string {
	abs, err := filepath.Abs(output)
	if err != nil {
		abs = output
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(dir, hex.EncodeToString(sum[:8])+".lock")
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = io.Discard
	cmd.Stderr = stderr
	return cmd.Run()
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	max int
	buf []byte
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	return string(b.buf)
}

func lastLine(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.LastIndexAny(text, "\r\n"); idx >= 0 {
		return strings.TrimSpace(text[idx+1:])
	}
	return text
}
