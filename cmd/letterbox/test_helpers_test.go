package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"letterbox/internal/config"
	"letterbox/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	videoDir   string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(base, "run"))

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(base, "letterbox.toml")
	writeTestConfig(t, configPath, cfg)

	videoDir := filepath.Join(base, "videos")
	if err := os.MkdirAll(videoDir, 0o755); err != nil {
		t.Fatalf("mkdir videos: %v", err)
	}

	return &cliTestEnv{cfg: cfg, configPath: configPath, videoDir: videoDir}
}

func (e *cliTestEnv) video(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.videoDir, name)
	testsupport.WriteFile(t, path, 64)
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[tools]\nffprobe = %q\nffmpeg = %q\n\n[output]\noverwrite = %t\n\n[paths]\nlock_dir = %q\n",
		cfg.Tools.FFprobe,
		cfg.Tools.FFmpeg,
		cfg.Output.Overwrite,
		cfg.Paths.LockDir,
	)
	if cfg.Logging.Dir != "" {
		content += fmt.Sprintf("\n[logging]\ndir = %q\n", cfg.Logging.Dir)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent (stat err=%v)", path, err)
	}
}
