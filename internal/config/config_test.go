package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"letterbox/internal/config"
	"letterbox/internal/services"
)

func TestLoadDefaultConfigWithoutFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(tempHome, "run"))
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	wantPath := filepath.Join(tempHome, ".config", "letterbox", "config.toml")
	if resolved != wantPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, wantPath)
	}
	if cfg.FFprobeBinary() != "ffprobe" || cfg.FFmpegBinary() != "ffmpeg" {
		t.Fatalf("unexpected default binaries: %q %q", cfg.FFprobeBinary(), cfg.FFmpegBinary())
	}
	if cfg.Output.Overwrite {
		t.Fatal("expected overwrite disabled by default")
	}
	if cfg.Paths.LockDir != filepath.Join(tempHome, "run", "letterbox") {
		t.Fatalf("unexpected lock dir: %q", cfg.Paths.LockDir)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.LogFilePath() != "" {
		t.Fatalf("expected file logging disabled, got %q", cfg.LogFilePath())
	}
}

func TestLoadCustomPathExpandsAndNormalizes(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "letterbox.toml")
	content := `
[tools]
ffprobe = "  /opt/ffmpeg/bin/ffprobe "
ffmpeg = ""

[output]
overwrite = true

[paths]
lock_dir = "~/locks"

[logging]
format = "JSON"
level = "Debug"
dir = "~/logs"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected %q to be loaded, got %q exists=%v", configPath, resolved, exists)
	}
	if cfg.FFprobeBinary() != "/opt/ffmpeg/bin/ffprobe" {
		t.Fatalf("unexpected ffprobe: %q", cfg.FFprobeBinary())
	}
	if cfg.FFmpegBinary() != "ffmpeg" {
		t.Fatalf("expected empty ffmpeg to fall back to default, got %q", cfg.FFmpegBinary())
	}
	if !cfg.Output.Overwrite {
		t.Fatalf("unexpected output section: %+v", cfg.Output)
	}
	if cfg.Paths.LockDir != filepath.Join(tempHome, "locks") {
		t.Fatalf("unexpected lock dir: %q", cfg.Paths.LockDir)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased logging values, got %+v", cfg.Logging)
	}
	if cfg.LogFilePath() != filepath.Join(tempHome, "logs", "letterbox.log") {
		t.Fatalf("unexpected log file path: %q", cfg.LogFilePath())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LockDir, cfg.Logging.Dir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s to exist: %v", dir, err)
		}
	}
}

func TestLoadMissingExplicitPathUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(missing)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing config to report exists=false")
	}
	if resolved != missing {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Output.Overwrite != config.Default().Output.Overwrite {
		t.Fatalf("expected default output section, got %+v", cfg.Output)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"level", "[logging]\nlevel = \"trace\"\n", "logging.level"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration marker, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown output key", "[output]\nsuffix = \"x\"\n"},
		{"output name is not configurable", "[output]\nprefix = \"OUT_\"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected unknown key to be rejected")
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration marker, got %v", err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config is not valid TOML: %v", err)
	}
	if decoded.Output.Overwrite {
		t.Fatal("sample should not enable overwrite")
	}

	if _, _, _, err := config.Load(target); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}

func TestExpandPathHandlesTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~/videos")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "videos") {
		t.Fatalf("unexpected expansion: %q", got)
	}
	if got, _ := config.ExpandPath(""); got != "" {
		t.Fatalf("expected empty path to stay empty, got %q", got)
	}
}
