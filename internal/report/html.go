package report

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"fetchm/internal/aggregate"
	"fetchm/internal/fileutil"
)

// Section is one chart on the HTML report page.
type Section struct {
	Title  string
	Counts aggregate.Counts
}

// WriteHTML renders all sections as bar charts on a single HTML page under
// figures/report.html and returns the written path. Sections without data
// are skipped; a page is written even when every section is empty.
func (l Layout) WriteHTML(pageTitle string, sections []Section) (string, error) {
	page := components.NewPage()
	page.PageTitle = pageTitle

	for _, section := range sections {
		counts := section.Counts.Top(chartTopN)
		if len(counts) == 0 {
			continue
		}

		x := make([]string, len(counts))
		y := make([]opts.BarData, len(counts))
		for i, bucket := range counts {
			x[i] = bucket.Key
			y[i] = opts.BarData{Value: bucket.Count}
		}

		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "480px"}),
			charts.WithTitleOpts(opts.Title{Title: section.Title}),
		)
		bar.SetXAxis(x).AddSeries("assemblies", y)
		page.AddCharts(bar)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}

	path := filepath.Join(l.FiguresDir(), "report.html")
	if err := fileutil.WriteAtomic(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}
