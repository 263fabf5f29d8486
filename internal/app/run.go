package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/vk/chipgrid/internal/ctxlog"
	"github.com/vk/chipgrid/internal/encode"
	"github.com/vk/chipgrid/internal/plan"
	"github.com/vk/chipgrid/internal/registry"
)

// Run executes the selected experiment methods and writes one document with
// their experiments and, unless disabled, their command plans.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.List {
		return a.list()
	}

	methods, err := a.registry.Select(a.config.Selector)
	if err != nil {
		return err
	}
	a.logger.Debug("Experiment methods selected.", "selector", a.config.Selector, "count", len(methods))

	doc := &encode.Document{}
	seen := make(map[string]string)
	for _, m := range methods {
		exps, err := m.Call(ctx, registry.Args(a.config.Args))
		if err != nil {
			return err
		}
		for _, exp := range exps {
			if first, ok := seen[exp.ID]; ok {
				a.logger.Warn("Experiment id produced more than once; their outputs share the same URIs.",
					"experiment", exp.ID, "method", m.Name, "first_method", first)
			} else {
				seen[exp.ID] = m.Name
			}
			if dup := exp.Dataset.Overlap(); len(dup) > 0 {
				a.logger.Warn("Scenes appear in both train and validation sets.", "experiment", exp.ID, "scenes", dup)
			}
			doc.Experiments = append(doc.Experiments, exp)

			if a.config.NoPlan {
				continue
			}
			p, err := plan.Build(ctx, uuid.NewString(), exp)
			if err != nil {
				return fmt.Errorf("failed to plan experiment %s: %w", exp.ID, err)
			}
			doc.Plans = append(doc.Plans, p)
		}
		a.logger.Debug("Experiment method finished.", "method", m.Name, "experiments", len(exps))
	}

	if err := a.write(doc); err != nil {
		return err
	}
	a.logger.Info("Experiments generated.", "count", len(doc.Experiments), "plans", len(doc.Plans), "format", a.config.Format)

	a.logger.Debug("App.Run method finished.")
	return nil
}

// write sends doc to the configured file, or to the app's writer.
func (a *App) write(doc *encode.Document) error {
	if a.config.OutPath == "" {
		return encode.Write(a.outW, a.config.Format, doc)
	}

	f, err := os.Create(a.config.OutPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := encode.Write(f, a.config.Format, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	a.logger.Debug("Document written.", "path", a.config.OutPath)
	return nil
}

// list prints one line per registered method followed by its parameters.
func (a *App) list() error {
	for _, name := range a.registry.Names() {
		m, _ := a.registry.Method(name)
		if _, err := fmt.Fprintf(a.outW, "%s\t%s\n", m.Name, m.Description); err != nil {
			return err
		}
		for _, p := range m.Params {
			if err := writeParam(a.outW, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeParam(w io.Writer, p registry.Param) error {
	line := "  -a " + p.Name + "=..."
	if p.Required {
		line += " (required)"
	}
	if p.Description != "" {
		line += "\t" + p.Description
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
