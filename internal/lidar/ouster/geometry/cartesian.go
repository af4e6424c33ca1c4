package geometry

import (
	"math"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/config"
)

// lidarOriginYOffsetMM is a fixed Y-axis offset baked into every beam's
// translation, carried over unchanged from the device's own geometry
// constants.
const lidarOriginYOffsetMM = 4.7411118e-6

type aziAlt struct {
	azi float32
	alt float32
}

// CartesianTemplate precomputes the per-beam trigonometric state once from
// a validated configuration, then hands out cheap, independent
// CartesianIterator values from Points(). This mirrors the reference
// implementation's cheap-cloneable iterator (new_cheap_cloneable_from_config):
// the precomputed slice is shared read-only across every iterator Points()
// returns, so re-walking a frame's points costs nothing beyond the walk
// itself.
type CartesianTemplate struct {
	azimuthAlt   []aziAlt
	colsPerFrame uint16
	windowStart  uint16
	windowEnd    uint16
	offsetX      float32
	offsetZ      float32
}

// NewCartesianTemplate builds a CartesianTemplate from a validated
// configuration's beam intrinsics and column window.
func NewCartesianTemplate(cfg config.Validated) CartesianTemplate {
	alt := cfg.BeamIntrinsics.BeamAltitudeAngles
	azi := cfg.BeamIntrinsics.BeamAzimuthAngles
	lut := make([]aziAlt, 0, len(alt))
	for i := range alt {
		a := azi[i]
		r := alt[i]
		lut = append(lut, aziAlt{
			azi: float32(-2 * math.Pi * (float64(a) / 360)),
			alt: float32(2 * math.Pi * (float64(r) / 360)),
		})
	}

	t := cfg.BeamIntrinsics.BeamToLidarTransform
	offsetX := t[3]
	offsetZ := t[2*4+3]

	window := cfg.LidarDataFormat.ColumnWindow
	return CartesianTemplate{
		azimuthAlt:   lut,
		colsPerFrame: cfg.LidarDataFormat.ColumnsPerFrame,
		windowStart:  uint16(window.Start()),
		windowEnd:    uint16(window.End() - 1),
		offsetX:      offsetX,
		offsetZ:      offsetZ,
	}
}

// Points returns a fresh, independent CartesianIterator over this
// template's window. Calling it repeatedly re-walks the same points
// idempotently.
func (t CartesianTemplate) Points() *CartesianIterator {
	azPos := t.windowStart
	encoderAngle := float32(2 * math.Pi * (1 - float64(azPos)/float64(t.colsPerFrame)))
	return &CartesianIterator{
		tmpl:         t,
		azPos:        azPos,
		altPos:       0,
		encoderAngle: encoderAngle,
		translation:  [3]float32{t.offsetX, lidarOriginYOffsetMM, t.offsetZ},
		done:         len(t.azimuthAlt) == 0,
	}
}

// Len is the total number of points this template's window produces:
// window length (in columns) times the beam count.
func (t CartesianTemplate) Len() int {
	cols := int(t.windowEnd) - int(t.windowStart) + 1
	if cols < 0 {
		cols = 0
	}
	return cols * len(t.azimuthAlt)
}

// CartesianIterator walks one (column, layer) pass over a
// CartesianTemplate's window, yielding one PolarPoint per beam per column.
// Layers are walked before columns, matching the device's own emission
// order.
type CartesianIterator struct {
	tmpl         CartesianTemplate
	azPos        uint16
	altPos       int
	encoderAngle float32
	translation  [3]float32
	done         bool
}

// Next advances the iterator and reports whether a point was produced.
func (it *CartesianIterator) Next() (PolarPoint, bool) {
	if it.done {
		return PolarPoint{}, false
	}
	lut := it.tmpl.azimuthAlt

	if it.altPos < len(lut) {
		entry := lut[it.altPos]
		it.altPos++
		return PolarPoint{
			Translation: it.translation,
			Azimuth:     it.encoderAngle + entry.azi,
			Roh:         entry.alt,
		}, true
	}

	if it.azPos != it.tmpl.windowEnd {
		it.azPos++
		it.encoderAngle = float32(2 * math.Pi * (1 - float64(it.azPos)/float64(it.tmpl.colsPerFrame)))
		it.translation[0] = it.tmpl.offsetX * float32(math.Cos(float64(it.encoderAngle)))
		it.translation[1] = it.tmpl.offsetX * float32(math.Sin(float64(it.encoderAngle)))
		it.altPos = 1
		entry := lut[0]
		return PolarPoint{
			Translation: it.translation,
			Azimuth:     it.encoderAngle + entry.azi,
			Roh:         entry.alt,
		}, true
	}

	it.done = true
	return PolarPoint{}, false
}

// Collect drains the iterator into a slice, for callers that want the
// whole window materialized at once.
func (it *CartesianIterator) Collect() []PolarPoint {
	out := make([]PolarPoint, 0, it.tmpl.Len())
	for {
		p, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, p)
	}
}
