package ousterviz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/ouster.report/internal/lidar/ouster/aggregator"
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/config"
	"github.com/banshee-data/ouster.report/internal/lidar/ouster/geometry"
)

// SaveFrameScatterPNG renders one completed frame's point cloud, projected
// to the XY plane, as a PNG at outPath. tmpl must come from the same
// config.Validated the frame's window/profile were decoded with, since it
// supplies the per-beam azimuth/altitude lookup CalcXYZ walks in lockstep
// with the frame's own column order.
func SaveFrameScatterPNG(cd *aggregator.CompleteData, cfg config.Validated, tmpl geometry.CartesianTemplate, outPath string) error {
	pts := tmpl.Points()
	infos := cd.IterInfosPrimary(cfg.NVec())

	xys := make(plotter.XYs, 0, cd.Len()*64)
	for {
		info, ok := infos.Next()
		if !ok {
			break
		}
		pp, ok := pts.Next()
		if !ok {
			break
		}
		if info.Info.Distance == 0 {
			continue
		}
		x, y, _ := pp.CalcXYZ(float32(info.Info.Distance))
		xys = append(xys, plotter.XY{X: float64(x), Y: float64(y)})
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Ouster frame %d point cloud (XY)", cd.FrameID())
	p.X.Label.Text = "X (mm)"
	p.Y.Label.Text = "Y (mm)"

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("build scatter plotter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(1)
	p.Add(scatter)

	if err := p.Save(10*vg.Inch, 10*vg.Inch, outPath); err != nil {
		return fmt.Errorf("save scatter png: %w", err)
	}
	return nil
}
