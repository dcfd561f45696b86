package report

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"fetchm/internal/aggregate"
	"fetchm/internal/textutil"
)

// chartTopN caps the bars per chart so long-tail keys stay readable.
const chartTopN = 20

var barFill = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// SaveBarChart renders counts as a PNG bar chart under figures/ and returns
// the written path. Counts beyond the top 20 buckets are dropped from the
// figure; the full tally remains in the matching summary table.
func (l Layout) SaveBarChart(name, title, yLabel string, counts aggregate.Counts) (string, error) {
	counts = counts.Top(chartTopN)
	if len(counts) == 0 {
		return "", fmt.Errorf("no data for chart %q", name)
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.X.Tick.Label.Rotation = -0.6
	p.X.Tick.Label.XAlign = -0.8

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, bucket := range counts {
		values[i] = float64(bucket.Count)
		labels[i] = bucket.Key
	}

	bars, err := plotter.NewBarChart(values, vg.Points(22))
	if err != nil {
		return "", fmt.Errorf("build bar chart %q: %w", name, err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = barFill
	p.Add(bars)
	p.NominalX(labels...)

	path := filepath.Join(l.FiguresDir(), textutil.SanitizeToken(name)+".png")
	if err := p.Save(9*vg.Inch, 4.5*vg.Inch, path); err != nil {
		return "", fmt.Errorf("save chart %q: %w", name, err)
	}
	return path, nil
}
