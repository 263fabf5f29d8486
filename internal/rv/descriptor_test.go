package rv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChipClassificationTask_OrdersClassesByID(t *testing.T) {
	task := testTask()

	assert.Equal(t, ChipClassification, task.Type)
	assert.Equal(t, 200, task.ChipSize)
	assert.Equal(t, []ClassItem{
		{ID: 1, Name: "car", Color: "red"},
		{ID: 2, Name: "no_car", Color: "black"},
	}, task.Classes)

	c, ok := task.ClassByID(2)
	require.True(t, ok)
	assert.Equal(t, "no_car", c.Name)
	_, ok = task.ClassByID(9)
	assert.False(t, ok)
}

func TestNewTask_Unsupported(t *testing.T) {
	_, err := NewTask("SEMANTIC_SEGMENTATION", 300, nil)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestNormalizeSceneID(t *testing.T) {
	assert.Equal(t, "2_10", NormalizeSceneID("2-10"))
	assert.Equal(t, "a_b_c", NormalizeSceneID("a-b_c"))
	assert.Equal(t, "x y.z", NormalizeSceneID("x y.z"))
}

func TestNewGeoTIFFSource_CopiesChannelOrder(t *testing.T) {
	order := []int{3, 0, 1}
	src := NewGeoTIFFSource("s3://bucket/a.tif", order)
	order[0] = 9

	assert.Equal(t, []int{3, 0, 1}, src.ChannelOrder)
	assert.Equal(t, []string{"s3://bucket/a.tif"}, src.URIs)
	assert.Nil(t, NewGeoTIFFSource("a.tif", nil).ChannelOrder)
}

func TestNewChipClassificationLabelSource_CellSizeFollowsTask(t *testing.T) {
	ls := NewChipClassificationLabelSource(testTask(), "labels.json", LabelSourceOptions{IOAThresh: 0.5})
	assert.Equal(t, 200, ls.CellSize)
	assert.Equal(t, ChipClassificationGeoJSON, ls.Type)
	assert.Equal(t, 0.5, ls.IOAThresh)
}

func TestDataset_Overlap(t *testing.T) {
	scene := func(id string) *Scene { return NewScene(id, RasterSource{}, LabelSource{}) }

	ds := NewDataset([]*Scene{scene("a"), scene("b")}, []*Scene{scene("c")})
	assert.Empty(t, ds.Overlap())

	ds = NewDataset([]*Scene{scene("a"), scene("b")}, []*Scene{scene("b"), scene("a")})
	assert.Equal(t, []string{"b", "a"}, ds.Overlap())
}
