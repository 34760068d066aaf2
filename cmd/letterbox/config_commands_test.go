package main

import (
	"os"
	"path/filepath"
	"testing"

	"letterbox/internal/services"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Config path: "+env.configPath)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// The sample must load cleanly.
	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("validate sample: %v", err)
	}
	requireContains(t, out, "Overwrite outputs: false")

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if code := services.ExitCode(err); code != services.ExitUsage {
		t.Fatalf("expected existing file to be a usage error, got %d (%v)", code, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateUsesDefaultsWithoutFile(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.configPath); err != nil {
		t.Fatalf("remove config: %v", err)
	}
	t.Chdir(t.TempDir())

	out, _, err := runCLI(t, []string{"config", "validate"}, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "defaults were used")
}
