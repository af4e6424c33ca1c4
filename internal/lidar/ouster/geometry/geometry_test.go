package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/config"
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/profile"
)

func singleBeamConfig(columnsPerFrame uint16) config.Validated {
	ldf := config.LidarDataFormat{
		ColumnsPerPacket: 1,
		PixelsPerColumn:  1,
		ColumnsPerFrame:  columnsPerFrame,
		ColumnWindowFrom: 0,
		ColumnWindowTo:   columnsPerFrame - 1,
		UDPProfileLidar:  profile.KindSingle,
	}
	p := profile.Profile{Kind: profile.KindSingle, Columns: 1, Layers: 1}
	valid, err := ldf.Validate(p)
	if err != nil {
		panic(err)
	}
	return config.Validated{
		BeamIntrinsics: config.BeamIntrinsics{
			BeamAltitudeAngles:   []float32{0},
			BeamAzimuthAngles:    []float32{0},
			BeamToLidarTransform: [16]float32{},
		},
		LidarDataFormat: valid,
		Profile:         p,
	}
}

func TestCartesianIteratorOrigin(t *testing.T) {
	cfg := singleBeamConfig(4)
	tmpl := NewCartesianTemplate(cfg)
	it := tmpl.Points()

	pt, ok := it.Next()
	require.True(t, ok)
	assert.InDelta(t, 2*math.Pi, float64(pt.Azimuth), 1e-6)

	x, y, z := pt.CalcXYZ(1000)
	assert.InDelta(t, 1000, float64(x), 1e-3*1000)
	assert.InDelta(t, 0, float64(y), 1)
	assert.InDelta(t, 0, float64(z), 1e-3)
}

func TestCartesianIteratorLength(t *testing.T) {
	ldf := config.LidarDataFormat{
		ColumnsPerPacket: 16,
		PixelsPerColumn:  2,
		ColumnsPerFrame:  1024,
		ColumnWindowFrom: 0,
		ColumnWindowTo:   1023,
		UDPProfileLidar:  profile.KindSingle,
	}
	p := profile.New(profile.KindSingle, 2)
	valid, err := ldf.Validate(p)
	require.NoError(t, err)

	cfg := config.Validated{
		BeamIntrinsics: config.BeamIntrinsics{
			BeamAltitudeAngles: []float32{0.1, 0.3},
			BeamAzimuthAngles:  []float32{0.2, 0.4},
		},
		LidarDataFormat: valid,
		Profile:         p,
	}
	tmpl := NewCartesianTemplate(cfg)
	points := tmpl.Points().Collect()
	assert.Equal(t, tmpl.Len(), len(points))
	assert.Equal(t, valid.ColumnWindow.Len()*2, len(points))
}

func TestCartesianTemplatePointsIsReusable(t *testing.T) {
	cfg := singleBeamConfig(4)
	tmpl := NewCartesianTemplate(cfg)

	first := tmpl.Points().Collect()
	second := tmpl.Points().Collect()
	assert.Equal(t, first, second)
}

func TestPixelPositionIteratorFillAllFields(t *testing.T) {
	it := NewPixelPositionIterator([]int8{1, -1, 3}, 0, 3)
	data := make([]int, 12)
	for {
		col, row, ok := it.Next()
		if !ok {
			break
		}
		data[row+col*3] = 1
	}
	for i, v := range data {
		assert.Equal(t, 1, v, "index %d not filled", i)
	}
}

func TestPixelPositionIteratorSimple(t *testing.T) {
	it := NewPixelPositionIterator([]int8{1, -1}, 0, 2)
	want := [][2]int{{1, 0}, {2, 1}, {2, 0}, {0, 1}, {0, 0}, {1, 1}}
	var got [][2]int
	for {
		col, row, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, [2]int{col, row})
	}
	assert.Equal(t, want, got)
}

func TestPixelPositionIteratorUpperOverflow(t *testing.T) {
	it := NewPixelPositionIterator([]int8{1}, 0, 2)
	want := [][2]int{{1, 0}, {2, 0}, {0, 0}}
	var got [][2]int
	for {
		col, row, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, [2]int{col, row})
	}
	assert.Equal(t, want, got)
}

func TestPixelPositionIteratorCoverage(t *testing.T) {
	shifts := []int8{0, 1, -1}
	colFrom, colTo := 0, 9
	it := NewPixelPositionIterator(shifts, colFrom, colTo)
	count := 0
	seen := map[[2]int]bool{}
	for {
		col, row, ok := it.Next()
		if !ok {
			break
		}
		count++
		seen[[2]int{col, row}] = true
	}
	assert.Equal(t, (colTo-colFrom+1)*len(shifts), count)
	assert.Equal(t, count, len(seen))
}
