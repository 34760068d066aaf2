package letterbox

import (
	"fmt"

	"letterbox/internal/services"
)

// TranscodeStage identifies where letterboxing failed.
type TranscodeStage string

const (
	// StageLock means another invocation holds the output lock.
	StageLock TranscodeStage = "lock"
	// StageLaunch means ffmpeg could not be started.
	StageLaunch TranscodeStage = "launch"
	// StageExit means ffmpeg ran and exited unsuccessfully.
	StageExit TranscodeStage = "exit"
)

// TranscodeError reports a failed ffmpeg invocation.
type TranscodeError struct {
	Input  string
	Output string
	Stage  TranscodeStage
	Stderr string
	Err    error
}

func (e *TranscodeError) Error() string {
	msg := fmt.Sprintf("letterbox %s -> %s: %s: %v", e.Input, e.Output, e.Stage, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *TranscodeError) Unwrap() error { return e.Err }

// Is matches the services marker for the failure class.
func (e *TranscodeError) Is(target error) bool {
	switch target {
	case services.ErrTransient:
		return e.Stage == StageLock
	case services.ErrExternalTool:
		return e.Stage == StageLaunch || e.Stage == StageExit
	}
	return false
}

// ExitCode implements services.ExitCoder.
func (e *TranscodeError) ExitCode() int { return services.ExitTranscode }
