package encode

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vk/chipgrid/internal/plan"
	"github.com/vk/chipgrid/internal/rv"
	"github.com/vk/chipgrid/modules/potsdam"
)

func potsdamDoc(t *testing.T) *Document {
	t.Helper()
	exp, err := potsdam.ExpMain(context.Background(), "/out", "/data", "True")
	require.NoError(t, err)
	p, err := plan.Build(context.Background(), "plan-1", exp)
	require.NoError(t, err)
	return &Document{Experiments: []*rv.Experiment{exp}, Plans: []*plan.Plan{p}}
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, potsdamDoc(t)))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	exps := decoded["experiments"].([]any)
	require.Len(t, exps, 1)
	exp := exps[0].(map[string]any)
	assert.Equal(t, "potsdam_chip", exp["id"])

	backend := exp["backend"].(map[string]any)
	assert.Equal(t, 1, backend["num_epochs"])
	options := backend["config"].(map[string]any)["trainer"].(map[string]any)["options"].(map[string]any)
	assert.Len(t, options["lrSchedule"], 3)

	assert.Contains(t, buf.String(), "top_potsdam_2_10_RGBIR.tif")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, potsdamDoc(t)))

	var decoded Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Experiments, 1)
	assert.Equal(t, "potsdam_chip", decoded.Experiments[0].ID)
	require.Len(t, decoded.Plans, 1)
	assert.Len(t, decoded.Plans[0].Commands, 5)
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, "toml", &Document{}))
	assert.False(t, ValidFormat("toml"))
	assert.True(t, ValidFormat(FormatJSON))
}
