package workflow

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"letterbox/internal/aspect"
	"letterbox/internal/config"
	"letterbox/internal/letterbox"
	"letterbox/internal/logging"
	"letterbox/internal/media/ffprobe"
	"letterbox/internal/preflight"
	"letterbox/internal/services"
)

// Inspector classifies a video by its first stream's resolution.
type Inspector interface {
	Inspect(ctx context.Context, path string) (aspect.Classification, error)
}

// Transcoder plans and runs the letterbox ffmpeg invocation.
type Transcoder interface {
	Plan(input string, source aspect.Resolution) letterbox.Plan
	Execute(ctx context.Context, plan letterbox.Plan) error
}

// Outcome describes what a run did.
type Outcome struct {
	Input          string
	RunID          string
	Classification aspect.Classification
	// Plan is nil when the input was already 16:9.
	Plan       *letterbox.Plan
	OutputPath string
	DryRun     bool
}

// Letterboxed reports whether an output file was produced.
func (o Outcome) Letterboxed() bool {
	return o.OutputPath != "" && !o.DryRun
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for run-level events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDryRun makes Run stop after planning.
func WithDryRun(enabled bool) Option {
	return func(r *Runner) {
		r.dryRun = enabled
	}
}

// WithFreeSpaceFunc replaces the free-space lookup (primarily for tests).
func WithFreeSpaceFunc(fn func(dir string) (int64, error)) Option {
	return func(r *Runner) {
		if fn != nil {
			r.freeSpace = fn
		}
	}
}

// Runner sequences inspection and letterboxing for a single video.
type Runner struct {
	inspector  Inspector
	transcoder Transcoder
	logger     *slog.Logger
	dryRun     bool
	freeSpace  func(dir string) (int64, error)
}

// NewRunner constructs a runner from its two stages.
func NewRunner(inspector Inspector, transcoder Transcoder, opts ...Option) *Runner {
	r := &Runner{
		inspector:  inspector,
		transcoder: transcoder,
		logger:     logging.NewNop(),
		freeSpace:  preflight.FreeBytes,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "workflow")
	return r
}

// StageOptions carries per-invocation settings that are not part of the
// configuration file.
type StageOptions struct {
	FFprobe   ffprobe.Executor
	FFmpeg    letterbox.Executor
	Progress  io.Writer
	Overwrite bool
}

// NewFromConfig wires an Inspector and Transcoder from cfg.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, stage StageOptions, opts ...Option) *Runner {
	inspectorOpts := []aspect.Option{aspect.WithLogger(logger)}
	if stage.FFprobe != nil {
		inspectorOpts = append(inspectorOpts, aspect.WithExecutor(stage.FFprobe))
	}
	inspector := aspect.NewInspector(cfg.FFprobeBinary(), inspectorOpts...)

	transcoderOpts := []letterbox.Option{
		letterbox.WithLogger(logger),
		letterbox.WithLockDir(cfg.Paths.LockDir),
	}
	if stage.FFmpeg != nil {
		transcoderOpts = append(transcoderOpts, letterbox.WithExecutor(stage.FFmpeg))
	}
	if stage.Progress != nil {
		transcoderOpts = append(transcoderOpts, letterbox.WithProgress(stage.Progress))
	}
	transcoder := letterbox.NewTranscoder(letterbox.PlanOptions{
		Binary:    cfg.FFmpegBinary(),
		Overwrite: cfg.Output.Overwrite || stage.Overwrite,
	}, transcoderOpts...)

	return NewRunner(inspector, transcoder, append([]Option{WithLogger(logger)}, opts...)...)
}

// Run classifies path and letterboxes it when needed.
func (r *Runner) Run(ctx context.Context, path string) (Outcome, error) {
	if strings.TrimSpace(path) == "" {
		return Outcome{}, services.Wrap(services.ErrUsage, "workflow", "run", "video path is required", nil)
	}

	runID, ok := services.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = services.WithRunID(ctx, runID)
	}
	ctx = services.WithInput(ctx, path)
	logger := logging.WithContext(ctx, r.logger)

	outcome := Outcome{Input: path, RunID: runID, DryRun: r.dryRun}

	classification, err := r.inspector.Inspect(ctx, path)
	if err != nil {
		logger.Error("inspection failed", logging.Args(logging.Error(err))...)
		return outcome, err
	}
	outcome.Classification = classification

	if !classification.NeedsLetterbox() {
		logger.Info("already 16:9, nothing to do", logging.Args(
			logging.String("resolution", classification.Resolution.String()),
		)...)
		return outcome, nil
	}

	plan := r.transcoder.Plan(path, classification.Resolution)
	outcome.Plan = &plan
	outcome.OutputPath = plan.Output

	if r.dryRun {
		logger.Info("dry run, skipping ffmpeg", logging.Args(
			logging.String("command", plan.CommandLine()),
		)...)
		return outcome, nil
	}

	r.warnIfLowOnSpace(logger, plan)

	if err := r.transcoder.Execute(ctx, plan); err != nil {
		logger.Error("letterbox failed", logging.Args(logging.Error(err))...)
		return outcome, err
	}
	return outcome, nil
}

// warnIfLowOnSpace logs when the output filesystem has less room than the
// input occupies. The output is usually close to the input's size.
func (r *Runner) warnIfLowOnSpace(logger *slog.Logger, plan letterbox.Plan) {
	info, err := os.Stat(plan.Input)
	if err != nil || info.IsDir() {
		return
	}
	dir := filepath.Dir(plan.Output)
	free, err := r.freeSpace(dir)
	if err != nil {
		logger.Debug("free space lookup failed", logging.Args(logging.Error(err))...)
		return
	}
	if free < info.Size() {
		logger.Warn("output directory may run out of space", logging.Args(
			logging.String("dir", dir),
			logging.Int64("free_bytes", free),
			logging.Int64("input_bytes", info.Size()),
		)...)
	}
}
