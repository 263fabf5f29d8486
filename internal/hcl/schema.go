package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot decodes the top-level blocks of one definition file. There is no
// remain field, so unknown blocks and attributes are rejected.
type fileRoot struct {
	Variables   []*variableBlock   `hcl:"variable,block"`
	Locals      []*localsBlock     `hcl:"locals,block"`
	Experiments []*experimentBlock `hcl:"experiment,block"`
}

type variableBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type,optional"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
}

type localsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// experimentBlock keeps the body undecoded until variables are known.
type experimentBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

type experimentSpec struct {
	RootURI string      `hcl:"root_uri"`
	Task    taskSpec    `hcl:"task,block"`
	Backend backendSpec `hcl:"backend,block"`
	Dataset datasetSpec `hcl:"dataset,block"`
}

type taskSpec struct {
	Type     string       `hcl:"type,optional"`
	ChipSize int          `hcl:"chip_size"`
	Classes  []*classSpec `hcl:"class,block"`
}

type classSpec struct {
	Name  string `hcl:"name,label"`
	ID    int    `hcl:"id"`
	Color string `hcl:"color,optional"`
}

type backendSpec struct {
	Type              string    `hcl:"type,optional"`
	ModelDefaults     string    `hcl:"model_defaults"`
	Debug             bool      `hcl:"debug,optional"`
	BatchSize         int       `hcl:"batch_size"`
	NumEpochs         int       `hcl:"num_epochs"`
	ReplaceModel      bool      `hcl:"replace_model,optional"`
	SyncInterval      *int      `hcl:"sync_interval,optional"`
	DoMonitoring      *bool     `hcl:"do_monitoring,optional"`
	Config            cty.Value `hcl:"config,optional"`
	SetMissingKeys    bool      `hcl:"set_missing_keys,optional"`
	IgnoreMissingKeys bool      `hcl:"ignore_missing_keys,optional"`
}

type datasetSpec struct {
	ChannelOrder  []int         `hcl:"channel_order,optional"`
	TrainIDs      []string      `hcl:"train_ids"`
	ValidationIDs []string      `hcl:"validation_ids"`
	Scene         sceneTemplate `hcl:"scene,block"`
}

// sceneTemplate is decoded into a sceneSpec once per scene id.
type sceneTemplate struct {
	Body hcl.Body `hcl:",remain"`
}

type sceneSpec struct {
	RasterURI               string  `hcl:"raster_uri"`
	LabelURI                string  `hcl:"label_uri"`
	IOAThresh               float64 `hcl:"ioa_thresh,optional"`
	UseIntersectionOverCell bool    `hcl:"use_intersection_over_cell,optional"`
	PickMinClassID          bool    `hcl:"pick_min_class_id,optional"`
	BackgroundClassID       int     `hcl:"background_class_id,optional"`
	InferCells              bool    `hcl:"infer_cells,optional"`
}
