// Package config loads, normalizes, and validates letterbox configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type only relocates the ffprobe
// and ffmpeg binaries, the lock directory, and logging, and chooses whether an
// existing output may be replaced. The aspect rule, output name, target frames,
// and filter expression are fixed and never configurable.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
