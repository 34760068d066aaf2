package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestNewFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}

	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Fatal("expected a single handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsPerHandlerLevel(t *testing.T) {
	var console, file bytes.Buffer
	h := newFanoutHandler(
		slog.NewTextHandler(&console, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug to be enabled through the file handler")
	}

	logger := slog.New(h)
	logger.Debug("probe args")
	logger.Warn("low disk")

	if bytes.Contains(console.Bytes(), []byte("probe args")) {
		t.Fatalf("debug record leaked to warn handler: %q", console.String())
	}
	if !bytes.Contains(console.Bytes(), []byte("low disk")) {
		t.Fatalf("expected warn record on console, got %q", console.String())
	}
	if !bytes.Contains(file.Bytes(), []byte("probe args")) || !bytes.Contains(file.Bytes(), []byte("low disk")) {
		t.Fatalf("expected both records in file, got %q", file.String())
	}
}

func TestFanoutHandlerWithAttrsAndGroup(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h := newFanoutHandler(slog.NewJSONHandler(&buf1, nil), slog.NewJSONHandler(&buf2, nil))

	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("run_id", "abc")}).WithGroup("ffmpeg"))
	logger.Info("started", slog.String("target", "1280x720"))

	for i, buf := range []*bytes.Buffer{&buf1, &buf2} {
		if !bytes.Contains(buf.Bytes(), []byte(`"run_id":"abc"`)) {
			t.Fatalf("handler %d missing run_id: %q", i, buf.String())
		}
		if !bytes.Contains(buf.Bytes(), []byte(`"ffmpeg":{"target":"1280x720"}`)) {
			t.Fatalf("handler %d missing group: %q", i, buf.String())
		}
	}
}
