package aspect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"letterbox/internal/logging"
	"letterbox/internal/media/ffprobe"
)

// Option configures the inspector.
type Option func(*Inspector)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec ffprobe.Executor) Option {
	return func(i *Inspector) {
		if exec != nil {
			i.exec = exec
		}
	}
}

// WithLogger sets the logger used for probe diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Inspector classifies videos using ffprobe.
type Inspector struct {
	binary string
	exec   ffprobe.Executor
	logger *slog.Logger
}

// NewInspector constructs an inspector for the given ffprobe binary.
func NewInspector(binary string, opts ...Option) *Inspector {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	inspector := &Inspector{
		binary: binary,
		exec:   ffprobe.CommandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(inspector)
	}
	inspector.logger = logging.NewComponentLogger(inspector.logger, "aspect")
	return inspector
}

// Resolution probes the first video stream of path.
func (i *Inspector) Resolution(ctx context.Context, path string) (Resolution, error) {
	result, err := ffprobe.InspectWith(ctx, i.exec, i.binary, path)
	if err != nil {
		return Resolution{}, &ProbeError{Path: path, Stage: probeStage(err), Err: err}
	}
	logging.WithContext(ctx, i.logger).Debug("ffprobe output", logging.Args(
		logging.String("payload", string(result.RawJSON())),
	)...)

	stream, ok := result.FirstStream()
	if !ok {
		return Resolution{}, &ProbeError{Path: path, Stage: StageStreams, Err: errors.New("ffprobe reported no video stream")}
	}
	if !stream.Width.Valid || !stream.Height.Valid {
		return Resolution{}, &ProbeError{Path: path, Stage: StageStreams, Err: errors.New("stream is missing width or height")}
	}
	res := Resolution{Width: stream.Width.Value, Height: stream.Height.Value}
	if res.Width <= 0 || res.Height <= 0 {
		return Resolution{}, &ProbeError{Path: path, Stage: StageStreams, Err: fmt.Errorf("invalid dimensions %s", res)}
	}
	return res, nil
}

// Inspect probes path and classifies its resolution.
func (i *Inspector) Inspect(ctx context.Context, path string) (Classification, error) {
	logger := logging.WithContext(ctx, i.logger)
	res, err := i.Resolution(ctx, path)
	if err != nil {
		logger.Debug("probe failed", logging.Args(logging.Error(err))...)
		return Classification{}, err
	}
	classification := Classify(res)
	logger.Debug("probed resolution", logging.Args(
		logging.String("resolution", res.String()),
		logging.String("classification", classification.Kind.String()),
	)...)
	return classification, nil
}

func probeStage(err error) ProbeStage {
	var execErr *ffprobe.ExecError
	if errors.As(err, &execErr) {
		if execErr.Started() {
			return StageExit
		}
		return StageLaunch
	}
	if errors.Is(err, ffprobe.ErrEmptyPath) {
		return StageLaunch
	}
	return StageDecode
}
