package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"letterbox/internal/config"
	"letterbox/internal/logging"
	"letterbox/internal/services"
)

type rootFlags struct {
	config    string
	logLevel  string
	logFormat string
	dryRun    bool
	overwrite bool
	verbose   bool
}

type commandContext struct {
	flags *rootFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "ensure directories", "", err)
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

// applyOverrides layers command-line flags over the loaded file and
// re-validates the result.
func (c *commandContext) applyOverrides(cfg *config.Config) error {
	if level := strings.ToLower(strings.TrimSpace(c.flags.logLevel)); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.ToLower(strings.TrimSpace(c.flags.logFormat)); format != "" {
		cfg.Logging.Format = format
	}
	if c.flags.overwrite {
		cfg.Output.Overwrite = true
	}
	return cfg.Validate()
}

// logger builds the run logger. Console output goes to w so stdout stays
// reserved for results; the optional log file gets JSON. Callers must invoke
// the returned close function once the command finishes.
func (c *commandContext) logger(w io.Writer) (*slog.Logger, func() error, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	return logging.NewFromConfig(cfg, w)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
