package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/chipgrid/internal/ctxlog"
	"github.com/vk/chipgrid/internal/hcl"
	"github.com/vk/chipgrid/internal/registry"
)

// DefinitionLoader loads declarative experiment definitions.
type DefinitionLoader interface {
	Load(ctx context.Context, paths ...string) (*hcl.Definitions, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own isolated logger and registry. The document is
// written to outW and logs to logW. With no modules, the built-in experiment
// sets are registered. A nil loader means the HCL loader.
func NewApp(outW, logW io.Writer, cfg *Config, loader DefinitionLoader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}

	if len(cfg.DefinitionPaths) > 0 {
		if loader == nil {
			loader = hcl.NewLoader()
		}
		defs, err := loader.Load(ctx, cfg.DefinitionPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load definitions: %w", err)
		}
		modules = append(append([]registry.Module(nil), modules...), hcl.NewModule(defs))
		logger.Debug("Definitions loaded.", "experiments", len(defs.Experiments))
	}

	reg := registry.New()
	for _, mod := range modules {
		if err := mod.Register(reg); err != nil {
			return nil, fmt.Errorf("failed to register module: %w", err)
		}
	}
	logger.Debug("All modules registered.", "count", len(modules), "methods", len(reg.Names()))

	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
