package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	inputKey contextKey = "input"
)

// WithRunID annotates context with the identifier of a single invocation.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithInput annotates context with the video path being processed.
func WithInput(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, inputKey, path)
}

// InputFromContext returns the video path if present.
func InputFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(inputKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
