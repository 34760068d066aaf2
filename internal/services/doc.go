// Package services defines shared utilities consumed by the inspector,
// transcoder, and CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and the input path for
//     logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into consistent process exit codes.
//
// Use these helpers when wiring new components so operational behaviour (error
// classification, observability) stays uniform across commands.
package services
