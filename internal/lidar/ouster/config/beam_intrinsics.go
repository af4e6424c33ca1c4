package config

import "math"

// BeamIntrinsics carries the per-beam calibration shipped by the device:
// altitude and azimuth angles for each of the L beams, the beam origin's
// offset from the sensor's optical center, and the 4x4 transform from
// beam space to lidar space that offset is drawn from.
type BeamIntrinsics struct {
	BeamAltitudeAngles        []float32
	BeamAzimuthAngles         []float32
	LidarOriginToBeamOriginMM float32
	BeamToLidarTransform      [16]float32
}

// NVec is the constant range correction subtracted from every raw range
// sample: round(hypot(tx, tz)) where tx is transform element [0,3] and tz
// is element [2,3] (row-major, 0-indexed). This matches the specification's
// explicit element indices; note the Rust reference implementation this
// was distilled from reads indices 7 and 11 ([1,3] and [2,3]) instead —
// the specification is taken as authoritative here (see DESIGN.md).
func (b BeamIntrinsics) NVec() uint32 {
	tx := b.BeamToLidarTransform[3]
	tz := b.BeamToLidarTransform[2*4+3]
	return uint32(math.Round(math.Sqrt(float64(tx*tx + tz*tz))))
}
