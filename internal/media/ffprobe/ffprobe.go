package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrEmptyPath is returned when InspectWith is called without a target file.
var ErrEmptyPath = errors.New("ffprobe inspect: empty path")

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	raw     []byte
}

// Stream describes the dimensions of a single stream.
type Stream struct {
	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`
}

// Dimension is a pixel count reported by ffprobe. Valid reports whether the
// field was present in the payload.
type Dimension struct {
	Value int
	Valid bool
}

// UnmarshalJSON accepts both numbers and numeric strings.
func (d *Dimension) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		*d = Dimension{}
		return nil
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = strings.TrimSpace(unquoted)
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("dimension %s is not an integer", string(data))
	}
	*d = Dimension{Value: value, Valid: true}
	return nil
}

// Executor abstracts command execution for testability. Implementations return
// the captured stdout and stderr of the finished process.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (stdout, stderr []byte, err error)
}

// ExecError reports that ffprobe could not be started or exited unsuccessfully.
type ExecError struct {
	Binary string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("ffprobe inspect: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("ffprobe inspect: %v", e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// Started reports whether the process launched before failing.
func (e *ExecError) Started() bool {
	var exitErr *exec.ExitError
	return errors.As(e.Err, &exitErr)
}

// Args returns the ffprobe arguments that request the first video stream's
// width and height as JSON.
func Args(path string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "json",
		path,
	}
}

// InspectWith executes ffprobe against path through executor and decodes the
// JSON response. A nil executor runs the binary with os/exec.
func InspectWith(ctx context.Context, executor Executor, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	if strings.TrimSpace(path) == "" {
		return Result{}, ErrEmptyPath
	}
	if executor == nil {
		executor = CommandExecutor{}
	}

	stdout, stderr, err := executor.Run(ctx, binary, Args(path))
	if err != nil {
		return Result{}, &ExecError{Binary: binary, Stderr: strings.TrimSpace(string(stderr)), Err: err}
	}
	return Parse(stdout)
}

// Parse decodes a raw ffprobe JSON payload.
func Parse(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	result.raw = append([]byte(nil), data...)
	return result, nil
}

// RawJSON returns the raw ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// FirstStream returns the first reported stream.
func (r Result) FirstStream() (Stream, bool) {
	if len(r.Streams) == 0 {
		return Stream{}, false
	}
	return r.Streams[0], true
}

// CommandExecutor runs binaries with os/exec.
type CommandExecutor struct{}

// Run executes the binary and captures stdout and stderr separately.
func (CommandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
