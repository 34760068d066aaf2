package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultFFprobeBinary = "ffprobe"
	defaultFFmpegBinary  = "ffmpeg"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultConfigPath    = "~/.config/letterbox/config.toml"
	projectConfigName    = "letterbox.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFprobe: defaultFFprobeBinary,
			FFmpeg:  defaultFFmpegBinary,
		},
		Paths: Paths{
			LockDir: defaultLockDir(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultLockDir() string {
	if base, ok := os.LookupEnv("XDG_RUNTIME_DIR"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "letterbox")
	}
	return filepath.Join(os.TempDir(), "letterbox")
}
