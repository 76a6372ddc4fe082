package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// maxPieOwners bounds the pie chart; the long tail collapses into one slice.
const maxPieOwners = 12

// HTMLRenderer writes a self-contained dashboard page: an ownership pie for
// the root and a line-count bar over the root's immediate children.
type HTMLRenderer struct{}

// Render writes the dashboard. The first entry is the root summary; entries
// at depth 1 are its immediate children.
func (hr *HTMLRenderer) Render(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	root := entries[0]

	page := components.NewPage()
	page.SetPageTitle("Ownership: " + DisplayPath(root.Path))
	page.AddCharts(ownershipPie(root), childBar(entries))

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render html dashboard: %w", err)
	}

	return nil
}

func ownershipPie(root Entry) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Ownership of " + DisplayPath(root.Path),
			Subtitle: fmt.Sprintf("%d attributed lines", root.Total),
			Left:     "2%",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Top: "5px", Left: "40%"}),
	)

	items := make([]opts.PieData, 0, maxPieOwners+1)
	tail := 0

	for i, owner := range root.Owners {
		if i < maxPieOwners {
			items = append(items, opts.PieData{Name: owner.Author, Value: owner.Score.Lines})

			continue
		}

		tail += owner.Score.Lines
	}

	if tail > 0 {
		items = append(items, opts.PieData{Name: "others", Value: tail})
	}

	pie.AddSeries("owners", items).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)

	return pie
}

func childBar(entries []Entry) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Lines by top-level path", Left: "2%"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "path"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "lines"}),
	)

	var (
		labels []string
		values []opts.BarData
	)

	for _, entry := range entries {
		if entry.Depth != 1 {
			continue
		}

		labels = append(labels, DisplayPath(entry.Path))
		values = append(values, opts.BarData{Value: entry.Total})
	}

	bar.SetXAxis(labels).AddSeries("lines", values)

	return bar
}
