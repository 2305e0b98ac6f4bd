package util

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"staffing-server/models"
)

// RenderWeekChart writes an HTML bar chart of the weekly staffing
// recommendation: one bar pair (entries, recommended staff) per open hour,
// grouped by day.
func RenderWeekChart(w io.Writer, week *models.RecommendationWeek) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Staffing recommendation " + week.Week,
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Store " + week.StoreID + " - " + week.Week,
			Subtitle: "Hourly entries and recommended staff",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	var labels []string
	var entries []opts.BarData
	var recommended []opts.BarData
	for _, day := range week.Days {
		for _, hour := range day.Hours {
			labels = append(labels, day.Date[5:]+" "+hour.Hour)
			entries = append(entries, opts.BarData{Value: hour.Entries})
			recommended = append(recommended, opts.BarData{Value: hour.Recommended})
		}
	}

	bar.SetXAxis(labels).
		AddSeries("Entries", entries).
		AddSeries("Recommended staff", recommended)

	return bar.Render(w)
}
