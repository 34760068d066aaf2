package aspect

import (
	"fmt"

	"letterbox/internal/services"
)

// ProbeStage identifies where probing failed.
type ProbeStage string

const (
	// StageLaunch means ffprobe could not be started.
	StageLaunch ProbeStage = "launch"
	// StageExit means ffprobe ran and exited unsuccessfully.
	StageExit ProbeStage = "exit"
	// StageDecode means ffprobe output was not valid JSON.
	StageDecode ProbeStage = "decode"
	// StageStreams means the stream entry or its dimensions were missing.
	StageStreams ProbeStage = "streams"
)

// ProbeError reports a failure to obtain a resolution from ffprobe.
type ProbeError struct {
	Path  string
	Stage ProbeStage
	Err   error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// Is matches the services marker for the failure class.
func (e *ProbeError) Is(target error) bool {
	switch target {
	case services.ErrExternalTool:
		return e.Stage == StageLaunch || e.Stage == StageExit
	case services.ErrValidation:
		return e.Stage == StageDecode || e.Stage == StageStreams
	}
	return false
}

// ExitCode implements services.ExitCoder.
func (e *ProbeError) ExitCode() int { return services.ExitProbe }
