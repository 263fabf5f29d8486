package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/chipgrid/internal/ctxlog"
	"github.com/vk/chipgrid/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// FileExtension is the extension of definition files.
const FileExtension = ".hcl"

// Variable is a declared input of the definitions.
type Variable struct {
	Name        string
	Description string
	Type        cty.Type
	// Default is nil when the variable must be supplied.
	Default *cty.Value
}

// Experiment is an experiment block whose body is evaluated on demand.
type Experiment struct {
	Name string
	File string
	body hcl.Body
}

// Definitions is everything declared across the loaded files. Variables and
// locals share one namespace across files.
type Definitions struct {
	Variables   map[string]*Variable
	Experiments map[string]*Experiment
	locals      map[string]*hcl.Attribute
}

// ExperimentNames returns the experiment names in sorted order.
func (d *Definitions) ExperimentNames() []string {
	names := make([]string, 0, len(d.Experiments))
	for name := range d.Experiments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VariableNames returns the variable names in sorted order.
func (d *Definitions) VariableNames() []string {
	names := make([]string, 0, len(d.Variables))
	for name := range d.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Loader parses definition files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new definition loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load parses every .hcl file under the given paths. Directories are searched
// recursively. A path that does not exist is an error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Definitions, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, FileExtension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	defs := &Definitions{
		Variables:   make(map[string]*Variable),
		Experiments: make(map[string]*Experiment),
		locals:      make(map[string]*hcl.Attribute),
	}

	for _, file := range files {
		if err := l.loadFile(ctx, defs, file); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.",
		"variables", len(defs.Variables),
		"locals", len(defs.locals),
		"experiments", len(defs.Experiments),
	)
	return defs, nil
}

func (l *Loader) loadFile(ctx context.Context, defs *Definitions, file string) error {
	hclFile, diags := l.parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	for _, vb := range root.Variables {
		if _, dup := defs.Variables[vb.Name]; dup {
			return fmt.Errorf("%s: variable %q is declared more than once", file, vb.Name)
		}
		v, err := translateVariable(ctx, vb)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		defs.Variables[v.Name] = v
	}

	for _, lb := range root.Locals {
		attrs, diags := lb.Body.JustAttributes()
		if diags.HasErrors() {
			return fmt.Errorf("failed to decode locals in %s: %w", file, diags)
		}
		for name, attr := range attrs {
			if _, dup := defs.locals[name]; dup {
				return fmt.Errorf("%s: local %q is declared more than once", file, name)
			}
			defs.locals[name] = attr
		}
	}

	for _, eb := range root.Experiments {
		if prev, dup := defs.Experiments[eb.Name]; dup {
			return fmt.Errorf("%s: experiment %q is already declared in %s", file, eb.Name, prev.File)
		}
		defs.Experiments[eb.Name] = &Experiment{Name: eb.Name, File: file, body: eb.Body}
	}
	return nil
}

// translateVariable parses the type constraint and the default value of one
// variable block. The default is converted to the declared type up front.
func translateVariable(ctx context.Context, vb *variableBlock) (*Variable, error) {
	v := &Variable{
		Name:        vb.Name,
		Description: vb.Description,
		Type:        cty.DynamicPseudoType,
	}

	if isExprDefined(ctx, vb.Type, "type") {
		ty, err := typeExprToCtyType(ctx, vb.Type)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", vb.Name, err)
		}
		v.Type = ty
	}

	if isExprDefined(ctx, vb.Default, "default") {
		val, diags := vb.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid default value for variable %q: %w", vb.Name, diags)
		}
		if !val.IsNull() {
			converted, err := convert.Convert(val, v.Type)
			if err != nil {
				return nil, fmt.Errorf("default value for variable %q does not match its type: %w", vb.Name, err)
			}
			v.Default = &converted
		}
	}
	return v, nil
}
