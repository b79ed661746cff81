package analytics

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Render writes the report as one HTML page with four charts.
func Render(w io.Writer, r Report) error {
	page := components.NewPage()
	page.AddCharts(
		occupancyChart(r.Occupancy),
		distributionChart(r.Distribution),
		peakHoursChart(r.PeakHours),
		hoggingTrendChart(r.HoggingTrend),
	)
	return page.Render(w)
}

func chartInit(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "400px"})
}

func occupancyChart(s Series) *charts.Line {
	data := make([]opts.LineData, 0, len(s.Values))
	for _, v := range s.Values {
		data = append(data, opts.LineData{Value: v})
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		chartInit("Occupancy"),
		charts.WithTitleOpts(opts.Title{Title: "Occupancy Rate", Subtitle: "last 24 hours"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%", Min: 0, Max: 100}),
	)
	line.SetXAxis(s.Labels).
		AddSeries("occupancy", data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#667eea"}),
		)
	return line
}

func distributionChart(d Distribution) *charts.Pie {
	data := make([]opts.PieData, 0, len(d.Values))
	for i, v := range d.Values {
		data = append(data, opts.PieData{Name: d.Labels[i], Value: v, ItemStyle: &opts.ItemStyle{Color: d.Colors[i]}})
	}
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		chartInit("Seat Status"),
		charts.WithTitleOpts(opts.Title{Title: "Seat Status Distribution"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	pie.AddSeries("status", data,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
	)
	return pie
}

func peakHoursChart(s Series) *charts.Bar {
	data := make([]opts.BarData, 0, len(s.Values))
	for _, v := range s.Values {
		data = append(data, opts.BarData{Value: v})
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		chartInit("Peak Hours"),
		charts.WithTitleOpts(opts.Title{Title: "Peak Hours"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%", Min: 0, Max: 100}),
	)
	bar.SetXAxis(s.Labels).
		AddSeries("occupancy", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#764ba2"}))
	return bar
}

func hoggingTrendChart(s CountSeries) *charts.Line {
	data := make([]opts.LineData, 0, len(s.Values))
	for _, v := range s.Values {
		data = append(data, opts.LineData{Value: v})
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		chartInit("Hogging Trend"),
		charts.WithTitleOpts(opts.Title{Title: "Seat Hogging Incidents", Subtitle: "this week"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(s.Labels).
		AddSeries("incidents", data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#dc3545"}),
		)
	return line
}
