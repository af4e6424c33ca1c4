package ousterviz

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HistogramHandler serves a live ECharts bar chart of an aggregator's
// completion histogram: how many frames closed with exactly k packets, for
// every k from zero to required_measurements+1. An aggregator has a single
// owner and must not be read while its ingest loop is writing, so the
// handler takes a snapshot function rather than the aggregator itself —
// the caller decides how to synchronize (the ingest binary wraps
// GetHistogram in the same mutex its packet loop holds). A debugging-only
// endpoint.
func HistogramHandler(sensorID string, histogram func() []uint64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hist := histogram()

		bars := make([]opts.BarData, len(hist))
		labels := make([]string, len(hist))
		for i, count := range hist {
			bars[i] = opts.BarData{Value: count}
			labels[i] = fmt.Sprintf("%d", i)
		}

		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{PageTitle: "Ouster Frame Completeness", Theme: "dark", Width: "900px", Height: "500px"}),
			charts.WithTitleOpts(opts.Title{Title: "Frame completion histogram", Subtitle: fmt.Sprintf("sensor=%s", sensorID)}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
			charts.WithXAxisOpts(opts.XAxis{Name: "packets received"}),
			charts.WithYAxisOpts(opts.YAxis{Name: "frame count"}),
		)
		bar.SetXAxis(labels).AddSeries("frames", bars)

		var buf bytes.Buffer
		if err := bar.Render(&buf); err != nil {
			http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}
