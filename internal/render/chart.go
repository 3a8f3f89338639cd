// Package render turns per-parameter contribution values into an encoded
// chart image. It is a presentation collaborator: the scoring engine only
// hands it a contribution map and a title.
package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/aquametrics/aquascore/internal/quality"
)

// BarChartRenderer draws parameter contributions as a PNG bar chart and
// returns it base64-encoded.
type BarChartRenderer struct {
	Width  int
	Height int
}

func NewBarChartRenderer() *BarChartRenderer {
	return &BarChartRenderer{Width: 1000, Height: 600}
}

// Render produces the base64-encoded PNG. Bars appear in the canonical
// parameter order. An empty contribution map is an error: there is nothing
// to plot.
func (r *BarChartRenderer) Render(contributions map[quality.Parameter]float64, title string) (string, error) {
	if len(contributions) == 0 {
		return "", errors.New("no contributions to plot")
	}

	bars := make([]chart.Value, 0, len(contributions))
	maxVal := 0.0
	for _, p := range quality.Parameters {
		v, ok := contributions[p]
		if !ok {
			continue
		}
		bars = append(bars, chart.Value{Label: string(p), Value: v})
		if v > maxVal {
			maxVal = v
		}
	}
	if len(bars) == 0 {
		return "", errors.New("no known parameters in contributions")
	}

	// explicit range so single-bar and all-zero inputs don't degenerate
	upper := maxVal * 1.25
	if upper < 1 {
		upper = 1
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    r.Width,
		Height:   r.Height,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10},
		},
		XAxis: chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  "Contribution to Quality Score",
			Range: &chart.ContinuousRange{Min: 0, Max: upper},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return "", fmt.Errorf("render bar chart: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
