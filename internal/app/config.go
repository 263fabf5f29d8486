package app

import (
	"errors"
	"fmt"

	"github.com/vk/chipgrid/internal/encode"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Selector        string
	DefinitionPaths []string // hcl files or directories
	// Args are passed to every selected experiment method.
	Args    map[string]string
	Format  string
	OutPath string // empty means the app's writer
	NoPlan  bool
	List    bool

	LogFormat string
	LogLevel  string
}

// NewConfig fills defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Format == "" {
		cfg.Format = encode.FormatYAML
	}
	if !encode.ValidFormat(cfg.Format) {
		return nil, fmt.Errorf("invalid format %q: must be 'yaml' or 'json'", cfg.Format)
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if cfg.Args == nil {
		cfg.Args = map[string]string{}
	}
	return &cfg, nil
}
