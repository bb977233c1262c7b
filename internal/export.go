package internal

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ExportECharts writes the current view as a standalone ECharts page. Axes
// are pinned to the scene's domains and night bands become mark areas.
func ExportECharts(w io.Writer, scene Scene) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: scene.Title,
			Width:     fmt.Sprintf("%.0fpx", scene.Width),
			Height:    fmt.Sprintf("%.0fpx", scene.Height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    scene.Title,
			Subtitle: scene.State.Subject,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "Minute of experiment",
			Min:  scene.XDomain.Lo,
			Max:  scene.XDomain.Hi,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:         "value",
			Name:         "Temperature (°C)",
			NameLocation: "middle",
			NameGap:      50,
			Min:          scene.YDomain.Lo,
			Max:          scene.YDomain.Hi,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
	)

	items := make([]opts.LineData, 0, len(scene.Readings))
	for _, r := range scene.Readings {
		items = append(items, opts.LineData{
			Name:  fmt.Sprintf("Day: %d", r.Minute),
			Value: []interface{}{r.Minute, r.Temperature},
		})
	}

	nights := make([]opts.MarkAreaNameCoordItem, 0, len(scene.Bands))
	for _, b := range scene.Bands {
		nights = append(nights, opts.MarkAreaNameCoordItem{
			Name:        fmt.Sprintf("night %d", b.Period),
			Coordinate0: []interface{}{b.Lo, scene.YDomain.Lo},
			Coordinate1: []interface{}{b.Hi, scene.YDomain.Hi},
			ItemStyle:   &opts.ItemStyle{Color: scene.Style.NightColor},
		})
	}

	line.AddSeries(scene.State.Subject, items,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: scene.Style.MarkerColor}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: scene.Style.LineColor, Width: 2}),
		charts.WithMarkAreaNameCoordItemOpts(nights...),
	)

	return line.Render(w)
}

// ExportPNG draws the current view as a static image, without a browser.
// Night bands are filled series drawn beneath the temperatures.
func ExportPNG(w io.Writer, scene Scene) error {
	if len(scene.Readings) == 0 {
		return fmt.Errorf("no readings to draw for %s", scene.State.Subject)
	}

	night := drawing.ColorFromHex(trimHash(scene.Style.NightColor))
	var series []chart.Series
	for _, b := range scene.Bands {
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("night %d", b.Period),
			XValues: []float64{b.Lo, b.Hi},
			YValues: []float64{scene.YDomain.Hi, scene.YDomain.Hi},
			Style: chart.Style{
				StrokeColor: night,
				StrokeWidth: 0,
				FillColor:   night,
			},
		})
	}

	xs := make([]float64, len(scene.Readings))
	ys := make([]float64, len(scene.Readings))
	for i, r := range scene.Readings {
		xs[i] = float64(r.Minute)
		ys[i] = r.Temperature
	}
	// go-chart needs at least two points to draw a line.
	if len(xs) == 1 {
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}
	series = append(series, chart.ContinuousSeries{
		Name:    scene.State.Subject,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex(trimHash(scene.Style.LineColor)),
			StrokeWidth: 2,
			DotColor:    drawing.ColorFromHex(trimHash(scene.Style.MarkerColor)),
			DotWidth:    scene.Style.MarkerRadius,
		},
	})

	xTicks := make([]chart.Tick, 0, len(scene.XTicks))
	for _, t := range scene.XTicks {
		xTicks = append(xTicks, chart.Tick{Value: t.Value, Label: t.Label})
	}
	yTicks := make([]chart.Tick, 0, len(scene.YTicks))
	for _, t := range scene.YTicks {
		yTicks = append(yTicks, chart.Tick{Value: t.Value, Label: t.Label})
	}

	m := scene.Plot
	graph := chart.Chart{
		Title:  fmt.Sprintf("%s (%s)", scene.Title, scene.State.Subject),
		Width:  int(scene.Width),
		Height: int(scene.Height),
		Background: chart.Style{Padding: chart.Box{
			Top:    int(m.Y),
			Left:   int(m.X),
			Right:  int(scene.Width - m.Right()),
			Bottom: int(scene.Height - m.Bottom()),
		}},
		XAxis: chart.XAxis{
			Name:  "Minute of experiment",
			Range: padded(scene.XDomain),
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Name:  "Temperature (°C)",
			Range: padded(scene.YDomain),
			Ticks: yTicks,
		},
		Series: series,
	}
	return graph.Render(chart.PNG, w)
}

// padded widens a degenerate domain, which go-chart refuses to draw.
func padded(d Domain) *chart.ContinuousRange {
	if d.Len() == 0 {
		return &chart.ContinuousRange{Min: d.Lo - 1, Max: d.Hi + 1}
	}
	return &chart.ContinuousRange{Min: d.Lo, Max: d.Hi}
}

func trimHash(color string) string {
	if len(color) > 0 && color[0] == '#' {
		return color[1:]
	}
	return color
}
