// Package encode serializes the generated experiments and plans into the
// document the external runner reads.
package encode

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vk/chipgrid/internal/plan"
	"github.com/vk/chipgrid/internal/rv"
)

// Output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Document is the top-level output.
type Document struct {
	Experiments []*rv.Experiment `yaml:"experiments" json:"experiments"`
	Plans       []*plan.Plan     `yaml:"plans,omitempty" json:"plans,omitempty"`
}

// ValidFormat reports whether format is one Write understands.
func ValidFormat(format string) bool {
	return format == FormatYAML || format == FormatJSON
}

// Write encodes doc to w in the given format.
func Write(w io.Writer, format string, doc *Document) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
