// Package letterbox scales and pads a video into a 16:9 frame with ffmpeg.
//
// The package never touches pixels. It chooses one of two fixed target frames,
// renders ffmpeg's scale+pad filter expression as text, and runs ffmpeg once.
// The output lands next to the input as LETTERBOXED_<name>; the input is never
// modified.
//
// Key entry points:
//   - SelectTarget: 1280x720 for sources up to 1280 wide, 1920x1080 above
//   - FilterExpression: the filter graph text passed to -filter:v
//   - BuildPlan: the full ffmpeg invocation for one input
//   - Transcoder.Letterbox: executes a plan under a per-output file lock
package letterbox
