package main

import (
	"path/filepath"
	"testing"

	"letterbox/internal/services"
	"letterbox/internal/testsupport"
)

func TestProbeCommandPrintsTable(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithFakeFFprobe(1280, 800),
		testsupport.WithFailingFFmpeg("ffmpeg must not run"),
	)
	input := env.video(t, "movie.mp4")

	out, _, err := runCLI(t, []string{"probe", input}, env.configPath)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	requireContains(t, out, "RESOLUTION")
	requireContains(t, out, "1280x800")
	requireContains(t, out, "1280x720")
	requireContains(t, out, "LETTERBOXED_movie.mp4")
	requireNotExists(t, filepath.Join(env.videoDir, "LETTERBOXED_movie.mp4"))
}

func TestProbeCommandReportsFailures(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithFakeFFprobeOutput(`{"streams":[]}`, 0))
	input := env.video(t, "movie.mp4")

	out, _, err := runCLI(t, []string{"probe", input}, env.configPath)
	if err == nil {
		t.Fatal("expected probe failure")
	}
	if code := services.ExitCode(err); code != services.ExitProbe {
		t.Fatalf("expected exit code %d, got %d", services.ExitProbe, code)
	}
	requireContains(t, out, "error")
}

func TestProbeCommandRequiresArgument(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"probe"}, env.configPath)
	if code := services.ExitCode(err); code != services.ExitUsage {
		t.Fatalf("expected exit code %d, got %d (%v)", services.ExitUsage, code, err)
	}
}

func TestProbeRowAlreadySixteenNine(t *testing.T) {
	row := probeRow("/v/a.mp4", classify(1920, 1080))
	if row[2] != "yes" || row[3] != "-" || row[4] != "-" {
		t.Fatalf("unexpected row %v", row)
	}
}
