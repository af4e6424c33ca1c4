// Package ousterviz renders debugging visualizations of decoded Ouster
// frames: a live ECharts histogram of frame completeness served over HTTP,
// and a gonum/plot PNG scatter of a single frame's point cloud projected to
// the XY plane.
package ousterviz
