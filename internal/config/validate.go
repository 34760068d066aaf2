package config

import "letterbox/internal/services"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return invalid("logging.format must be one of console or json")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("logging.level must be one of debug, info, warn, or error")
	}
	return nil
}

func invalid(message string) error {
	return services.Wrap(services.ErrConfiguration, "config", "validate", message, nil)
}
