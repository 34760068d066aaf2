// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no letterbox-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing stream dimensions
//   - Stream: width and height of a single stream
//   - Dimension: an integer that tolerates ffprobe's string-encoded numbers
//
// Primary entry points:
//   - InspectWith: executes ffprobe through an Executor and returns parsed Result
//   - Parse: decodes a raw ffprobe JSON payload
package ffprobe
