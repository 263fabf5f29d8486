// Package plan turns an experiment descriptor into the ordered list of
// commands the external runner executes, with the URI each command writes
// under the experiment's root.
package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/chipgrid/internal/ctxlog"
	"github.com/vk/chipgrid/internal/dag"
	"github.com/vk/chipgrid/internal/rv"
)

// CommandType names a runner command.
type CommandType string

const (
	Chip    CommandType = "CHIP"
	Train   CommandType = "TRAIN"
	Predict CommandType = "PREDICT"
	Eval    CommandType = "EVAL"
	Bundle  CommandType = "BUNDLE"
)

// commandOrder is the canonical order; it also breaks ties in the sort.
var commandOrder = []CommandType{Chip, Train, Predict, Eval, Bundle}

// edges lists producer -> consumer pairs.
var edges = [][2]CommandType{
	{Chip, Train},
	{Train, Predict},
	{Predict, Eval},
	{Train, Bundle},
}

// Command is one step of a plan.
type Command struct {
	Type      CommandType   `yaml:"type" json:"type"`
	URI       string        `yaml:"uri" json:"uri"`
	DependsOn []CommandType `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`
	Outputs   []string      `yaml:"outputs,omitempty" json:"outputs,omitempty"`
}

// Plan is the command sequence of one experiment.
type Plan struct {
	ID           string    `yaml:"id" json:"id"`
	ExperimentID string    `yaml:"experiment_id" json:"experiment_id"`
	Commands     []Command `yaml:"commands" json:"commands"`
}

// CommandURI is <root>/<command>/<experiment id>. Joining is textual so
// scheme prefixes such as s3:// survive.
func CommandURI(rootURI string, cmd CommandType, experimentID string) string {
	return strings.TrimRight(rootURI, "/") + "/" + strings.ToLower(string(cmd)) + "/" + experimentID
}

// Build lays out the commands of exp in dependency order. id identifies the
// plan to the runner.
func Build(ctx context.Context, id string, exp *rv.Experiment) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	if exp == nil {
		return nil, errors.New("plan: nil experiment")
	}
	if exp.ID == "" {
		return nil, errors.New("plan: experiment has no id")
	}

	g := dag.New()
	for _, c := range commandOrder {
		g.AddNode(string(c))
	}
	for _, e := range edges {
		if err := g.AddEdge(string(e[0]), string(e[1])); err != nil {
			return nil, fmt.Errorf("plan: %w", err)
		}
	}

	order, err := g.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	p := &Plan{ID: id, ExperimentID: exp.ID}
	for _, name := range order {
		cmd := CommandType(name)
		deps, err := g.Dependencies(name)
		if err != nil {
			return nil, fmt.Errorf("plan: %w", err)
		}

		c := Command{
			Type: cmd,
			URI:  CommandURI(exp.RootURI, cmd, exp.ID),
		}
		for _, d := range deps {
			c.DependsOn = append(c.DependsOn, CommandType(d))
		}
		if cmd == Predict && exp.Dataset != nil {
			for _, s := range exp.Dataset.ValidationScenes {
				c.Outputs = append(c.Outputs, c.URI+"/"+s.ID+".json")
			}
		}
		p.Commands = append(p.Commands, c)
	}

	logger.Debug("Command plan built.", "experiment", exp.ID, "plan", id, "commands", len(p.Commands))
	return p, nil
}

// Command returns the command of the given type.
func (p *Plan) Command(t CommandType) (Command, bool) {
	for _, c := range p.Commands {
		if c.Type == t {
			return c, true
		}
	}
	return Command{}, false
}
