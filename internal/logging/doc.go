// Package logging assembles structured slog loggers and formatting helpers used
// across letterbox commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so inspector and transcoder code
// automatically tag log lines with the run identifier and input path. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
