// Package workflow runs one letterbox invocation end to end.
//
// A Runner asks the aspect Inspector for the video's classification and hands
// NeedsLetterbox results to the letterbox Transcoder. Files that are already
// 16:9 are left alone; nothing is written and ffmpeg is never started. Every
// run is tagged with a run ID and the input path so log lines from the probe
// and the transcode can be correlated.
//
// Errors from either stage are returned unchanged so callers can map them to
// exit codes with services.ExitCode.
package workflow
