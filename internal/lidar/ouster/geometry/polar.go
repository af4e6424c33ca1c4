package geometry

import "math"

// PolarPoint is one decoded beam position: a translation (the lidar
// origin's offset from the sensor's optical center, rotated by the
// current encoder angle) plus an azimuth and altitude (roh) in radians.
type PolarPoint struct {
	Translation [3]float32
	Azimuth     float32
	Roh         float32
}

// CalcXYZ converts this polar point plus a decoded distance into a
// Cartesian (x, y, z) coordinate.
func (p PolarPoint) CalcXYZ(distance float32) (x, y, z float32) {
	azi := float64(p.Azimuth)
	roh := float64(p.Roh)
	d := float64(distance)

	x = float32(d*math.Cos(azi)*math.Cos(roh)) + p.Translation[0]
	y = float32(d*math.Sin(azi)*math.Cos(roh)) + p.Translation[1]
	z = float32(d*math.Sin(roh)) + p.Translation[2]
	return x, y, z
}
