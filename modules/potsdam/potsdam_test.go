package potsdam

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/chipgrid/internal/registry"
	"github.com/vk/chipgrid/internal/rv"
)

const dataURI = "s3://bucket/potsdam"

func sceneIDs(scenes []*rv.Scene) []string {
	ids := make([]string, len(scenes))
	for i, s := range scenes {
		ids[i] = s.ID
	}
	return ids
}

func TestBuildScene_Paths(t *testing.T) {
	task := rv.NewChipClassificationTask(200, nil)
	scene := BuildScene(task, dataURI, "2_10", channelOrder)

	assert.Equal(t, "2_10", scene.ID)
	assert.Equal(t, []string{dataURI + "/isprs-potsdam/4_Ortho_RGBIR/top_potsdam_2_10_RGBIR.tif"}, scene.RasterSource.URIs)
	assert.Equal(t, dataURI+"/labels/all/top_potsdam_2_10_RGBIR.json", scene.LabelSource.URI)
	assert.Equal(t, []int{3, 0, 1}, scene.RasterSource.ChannelOrder)
}

func TestBuildScene_NormalizesHyphens(t *testing.T) {
	task := rv.NewChipClassificationTask(200, nil)

	testCases := []struct {
		id       string
		expected string
	}{
		{"2-10", "2_10"},
		{"6-7", "6_7"},
		{"a-b-c", "a_b_c"},
		{"3_11", "3_11"},
		{"x.y-z", "x.y_z"},
	}
	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			scene := BuildScene(task, dataURI, tc.id, nil)
			assert.Equal(t, tc.expected, scene.ID)
			assert.Equal(t, RasterURI(dataURI, tc.expected), scene.RasterSource.URIs[0])
			assert.Equal(t, LabelURI(dataURI, tc.expected), scene.LabelSource.URI)
			if tc.id != tc.expected {
				assert.NotContains(t, scene.RasterSource.URIs[0], "top_potsdam_"+tc.id+"_RGBIR", "hyphenated id leaked into path")
			}
		})
	}
}

func TestBuildScene_LabelSourceSettings(t *testing.T) {
	task := rv.NewChipClassificationTask(200, nil)
	ls := BuildScene(task, dataURI, "2_10", nil).LabelSource

	assert.Equal(t, rv.ChipClassificationGeoJSON, ls.Type)
	assert.Equal(t, 0.5, ls.IOAThresh)
	assert.False(t, ls.UseIntersectionOverCell)
	assert.True(t, ls.PickMinClassID)
	assert.Equal(t, 2, ls.BackgroundClassID)
	assert.True(t, ls.InferCells)
	assert.Equal(t, 200, ls.CellSize)
}

func TestExpMain_TestRunTrueString(t *testing.T) {
	exp, err := ExpMain(context.Background(), "/out", dataURI, "True")
	require.NoError(t, err)

	assert.True(t, exp.Backend.Debug)
	assert.Equal(t, 1, exp.Backend.NumEpochs)
	assert.Equal(t, 1, exp.Backend.BatchSize)
	assert.Equal(t, []string{"2_10"}, sceneIDs(exp.Dataset.TrainScenes))
	assert.Equal(t, []string{"2_13"}, sceneIDs(exp.Dataset.ValidationScenes))
}

func TestExpMain_TestRunFalseString(t *testing.T) {
	exp, err := ExpMain(context.Background(), "/out", dataURI, "False")
	require.NoError(t, err)

	assert.False(t, exp.Backend.Debug)
	assert.Equal(t, 40, exp.Backend.NumEpochs)
	assert.Equal(t, 8, exp.Backend.BatchSize)
	assert.Len(t, exp.Dataset.TrainScenes, 10)
	assert.Len(t, exp.Dataset.ValidationScenes, 3)
}

func TestExpMain_TestRunPassThrough(t *testing.T) {
	testCases := []struct {
		name     string
		testRun  any
		expected bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"nil", nil, false},
		{"lowercase false is truthy", "false", true},
		{"empty string", "", false},
		{"one", "1", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			exp, err := ExpMain(context.Background(), "/out", dataURI, tc.testRun)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, exp.Backend.Debug)
		})
	}
}

func TestExpMain_SceneIDsAreFixedAndDisjoint(t *testing.T) {
	exp, err := ExpMain(context.Background(), "/out", dataURI, false)
	require.NoError(t, err)

	expected := map[string]struct{}{}
	for _, id := range strings.Fields("2_10 2_11 2_12 2_14 3_11 3_13 4_10 5_10 6_7 6_9 2_13 6_8 3_10") {
		expected[id] = struct{}{}
	}

	seen := map[string]struct{}{}
	all := append(sceneIDs(exp.Dataset.TrainScenes), sceneIDs(exp.Dataset.ValidationScenes)...)
	for _, id := range all {
		_, dup := seen[id]
		require.False(t, dup, "duplicate scene id %s", id)
		seen[id] = struct{}{}
	}
	assert.Equal(t, expected, seen)
	assert.Empty(t, exp.Dataset.Overlap())

	// Input order is preserved.
	assert.Equal(t, trainIDs, sceneIDs(exp.Dataset.TrainScenes))
	assert.Equal(t, valIDs, sceneIDs(exp.Dataset.ValidationScenes))
}

func TestExpMain_TaskAndExperiment(t *testing.T) {
	exp, err := ExpMain(context.Background(), "s3://out", dataURI, false)
	require.NoError(t, err)

	assert.Equal(t, ExperimentID, exp.ID)
	assert.Equal(t, "s3://out", exp.RootURI)
	assert.Equal(t, rv.ChipClassification, exp.Task.Type)
	assert.Equal(t, 200, exp.Task.ChipSize)
	assert.Equal(t, []rv.ClassItem{
		{ID: 1, Name: "car", Color: "red"},
		{ID: 2, Name: "no_car", Color: "black"},
	}, exp.Task.Classes)

	assert.Equal(t, rv.KerasClassification, exp.Backend.Type)
	assert.Equal(t, rv.Resnet50Imagenet, exp.Backend.ModelDefaults)
	assert.True(t, exp.Backend.TrainOptions.ReplaceModel)
	assert.NotEmpty(t, exp.Backend.PretrainedModelURI)
}

func TestExpMain_LRScheduleMerged(t *testing.T) {
	exp, err := ExpMain(context.Background(), "/out", dataURI, false)
	require.NoError(t, err)

	schedule, ok := exp.Backend.LRSchedule()
	require.True(t, ok)
	assert.Equal(t, []any{
		map[string]any{"epoch": 0, "lr": 0.0005},
		map[string]any{"epoch": 15, "lr": 0.0001},
		map[string]any{"epoch": 30, "lr": 0.00001},
	}, schedule)

	// Every default key is still present; only saveBest and the training
	// scalars changed.
	defaults, err := rv.LookupModelDefaults(rv.KerasClassification, rv.Resnet50Imagenet)
	require.NoError(t, err)
	defOpts, _ := rv.ConfigValue(defaults.Config, "trainer", "options")
	gotOpts, _ := rv.ConfigValue(exp.Backend.Config, "trainer", "options")
	for k, v := range defOpts.(map[string]any) {
		got, ok := gotOpts.(map[string]any)[k]
		require.True(t, ok, "default key %s clobbered", k)
		switch k {
		case "saveBest", "batchSize", "nbEpochs", "classNames":
		default:
			assert.Equal(t, v, got, "default key %s changed", k)
		}
	}
	assert.Equal(t, true, gotOpts.(map[string]any)["saveBest"])

	model, ok := rv.ConfigValue(exp.Backend.Config, "model")
	require.True(t, ok)
	defModel, _ := rv.ConfigValue(defaults.Config, "model")
	assert.Equal(t, defModel, model)
}

func TestModule_Register(t *testing.T) {
	r := registry.New()
	require.NoError(t, (&Module{}).Register(r))

	m, ok := r.Method("potsdam.main")
	require.True(t, ok)

	exps, err := m.Call(context.Background(), registry.Args{"root_uri": "/out", "data_uri": dataURI})
	require.NoError(t, err)
	require.Len(t, exps, 1)
	assert.Equal(t, 40, exps[0].Backend.NumEpochs)

	exps, err = m.Call(context.Background(), registry.Args{"root_uri": "/out", "data_uri": dataURI, "test_run": "True"})
	require.NoError(t, err)
	assert.Equal(t, 1, exps[0].Backend.NumEpochs)

	_, err = m.Call(context.Background(), registry.Args{"root_uri": "/out"})
	require.ErrorIs(t, err, registry.ErrMissingArgument)
}
