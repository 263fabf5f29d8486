// Package potsdam defines the chip classification experiment over the ISPRS
// Potsdam tiles: cars versus background, ResNet50 Keras backend.
package potsdam

import (
	"context"
	"fmt"

	"github.com/vk/chipgrid/internal/ctxlog"
	"github.com/vk/chipgrid/internal/rv"
)

// ExperimentID is the id of the experiment built by ExpMain.
const ExperimentID = "potsdam_chip"

const (
	chipSize     = 200
	batchSize    = 8
	numEpochs    = 40
	testBatch    = 1
	testEpochs   = 1
	backgroundID = 2
)

var (
	trainIDs = []string{"2_10", "2_11", "2_12", "2_14", "3_11", "3_13", "4_10", "5_10", "6_7", "6_9"}
	valIDs   = []string{"2_13", "6_8", "3_10"}
	// infrared, red, green
	channelOrder = []int{3, 0, 1}
)

// RasterURI is where the RGBIR ortho tile of a (normalized) id lives.
func RasterURI(dataURI, id string) string {
	return fmt.Sprintf("%s/isprs-potsdam/4_Ortho_RGBIR/top_potsdam_%s_RGBIR.tif", dataURI, id)
}

// LabelURI is where the car label GeoJSON of a (normalized) id lives.
func LabelURI(dataURI, id string) string {
	return fmt.Sprintf("%s/labels/all/top_potsdam_%s_RGBIR.json", dataURI, id)
}

// BuildScene builds the scene for one tile id. Hyphens in id become
// underscores before the paths are derived. The paths are not checked.
func BuildScene(task *rv.Task, dataURI, id string, channelOrder []int) *rv.Scene {
	id = rv.NormalizeSceneID(id)

	labels := rv.NewChipClassificationLabelSource(task, LabelURI(dataURI, id), rv.LabelSourceOptions{
		IOAThresh:               0.5,
		UseIntersectionOverCell: false,
		PickMinClassID:          true,
		BackgroundClassID:       backgroundID,
		InferCells:              true,
	})

	return rv.NewScene(id, rv.NewGeoTIFFSource(RasterURI(dataURI, id), channelOrder), labels)
}

// ExpMain builds the Potsdam chip classification experiment.
//
// testRun accepts a bool or the runner's string form. "True" and "False" are
// read as booleans; any other value is judged by rv.Truthy, so "false" in
// lower case turns test mode on. Test mode enables debug output, trains for
// one epoch at batch size one, and keeps only the first train and
// validation tile.
func ExpMain(ctx context.Context, rootURI, dataURI string, testRun any) (*rv.Experiment, error) {
	logger := ctxlog.FromContext(ctx)
	testRun = rv.CoerceFlag(testRun)

	train := trainIDs
	val := valIDs
	debug := false
	batch := batchSize
	epochs := numEpochs

	if rv.Truthy(testRun) {
		debug = true
		epochs = testEpochs
		batch = testBatch
		train = train[0:1]
		val = val[0:1]
		logger.Debug("Test run enabled, shrinking experiment.", "train", train, "validation", val)
	}

	task := rv.NewChipClassificationTask(chipSize, map[string]rv.ClassSpec{
		"car":    {ID: 1, Color: "red"},
		"no_car": {ID: 2, Color: "black"},
	})

	trainOpts := rv.DefaultTrainOptions()
	trainOpts.ReplaceModel = true

	backend, err := rv.NewKerasClassificationBackend(ctx, task, rv.BackendOptions{
		ModelDefaults: rv.Resnet50Imagenet,
		Debug:         debug,
		BatchSize:     batch,
		NumEpochs:     epochs,
		TrainOptions:  trainOpts,
		ConfigMods: []rv.ConfigMod{{
			Values: map[string]any{
				"trainer": map[string]any{
					"options": map[string]any{
						"saveBest": true,
						"lrSchedule": []any{
							map[string]any{"epoch": 0, "lr": 0.0005},
							map[string]any{"epoch": 15, "lr": 0.0001},
							map[string]any{"epoch": 30, "lr": 0.00001},
						},
					},
				},
			},
			Options: rv.MergeOptions{SetMissingKeys: true},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build backend: %w", err)
	}

	trainScenes := make([]*rv.Scene, 0, len(train))
	for _, id := range train {
		trainScenes = append(trainScenes, BuildScene(task, dataURI, id, channelOrder))
	}
	valScenes := make([]*rv.Scene, 0, len(val))
	for _, id := range val {
		valScenes = append(valScenes, BuildScene(task, dataURI, id, channelOrder))
	}

	dataset := rv.NewDataset(trainScenes, valScenes)
	logger.Debug("Potsdam experiment assembled.",
		"id", ExperimentID,
		"train_scenes", len(trainScenes),
		"validation_scenes", len(valScenes),
		"epochs", epochs,
		"batch_size", batch,
	)

	return rv.NewExperiment(ExperimentID, rootURI, task, backend, dataset), nil
}
