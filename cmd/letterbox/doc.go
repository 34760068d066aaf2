// Package main hosts the letterbox CLI.
//
// The root command takes a single video path, asks the workflow runner to
// classify it, and letterboxes it to 1280x720 or 1920x1080 when the frame is
// not already 16:9. Helper subcommands inspect files without transcoding,
// report tool availability, and scaffold the configuration file.
//
// Errors are mapped to process exit codes in main via services.ExitCode.
package main
