package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vk/chipgrid/internal/encode"
	"github.com/vk/chipgrid/internal/rv"
)

// DecodeDocument parses the YAML document of a successful run.
func DecodeDocument(t *testing.T, result *HarnessResult) *encode.Document {
	t.Helper()
	require.NoError(t, result.Err)

	var doc encode.Document
	require.NoError(t, yaml.Unmarshal([]byte(result.Output), &doc), "output is not a YAML document")
	return &doc
}

// RequireExperiment returns the experiment with the given id, failing the
// test if the document has none.
func RequireExperiment(t *testing.T, doc *encode.Document, id string) *rv.Experiment {
	t.Helper()
	for _, exp := range doc.Experiments {
		if exp.ID == id {
			return exp
		}
	}
	require.Failf(t, "experiment not found", "no experiment %q in document", id)
	return nil
}

// SceneIDs lists scene ids in order.
func SceneIDs(scenes []*rv.Scene) []string {
	ids := make([]string, len(scenes))
	for i, s := range scenes {
		ids[i] = s.ID
	}
	return ids
}
