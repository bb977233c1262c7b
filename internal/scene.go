package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// Scene is one full render of the chart as plain drawing instructions.
// It is rebuilt from scratch after every view change.
type Scene struct {
	Title  string
	Width  float64
	Height float64
	Plot   Rect
	Style  Style

	Subjects []string
	State    ViewState
	XDomain  Domain
	YDomain  Domain

	Bands       []BandRect         // Night shading, drawn first.
	Annotations []AnnotationMarker // Experiment events inside the window.
	Line        string             // SVG path data through every marker.
	Markers     []Marker
	XTicks      []Tick
	YTicks      []Tick

	Readings []Reading // The readings drawn, ordered by minute.
}

type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Right() float64 {
	return r.X + r.Width
}

func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// BandRect is a night band in pixels, along with the minutes it covers.
type BandRect struct {
	Rect
	Band
}

// Marker is the dot drawn for one reading.
type Marker struct {
	X       float64
	Y       float64
	Reading Reading
}

// Tooltip is the text shown when hovering the marker.
func (m Marker) Tooltip() string {
	return fmt.Sprintf("Day: %d, Temp: %s", m.Reading.Minute, formatNumber(m.Reading.Temperature))
}

type Tick struct {
	Value float64
	Pos   float64 // Pixel offset along the axis.
	Label string
}

// AnnotationMarker is an experiment event placed on the x axis.
type AnnotationMarker struct {
	X     float64
	Label string
}

type sceneInput struct {
	subjects    []string
	state       ViewState
	readings    []Reading
	annotations []Annotation
	x           LinearScale
	y           LinearScale
}

func buildScene(options ChartOptions, in sceneInput) Scene {
	left, right, top, bottom := options.PlotArea()
	scene := Scene{
		Title:    options.Title,
		Width:    options.Width,
		Height:   options.Height,
		Plot:     Rect{X: left, Y: top, Width: right - left, Height: bottom - top},
		Style:    options.Style,
		Subjects: in.subjects,
		State:    in.state,
		XDomain:  in.x.Domain(),
		YDomain:  in.y.Domain(),
		Readings: in.readings,
	}

	for _, band := range NightBands(scene.XDomain, options.Cycle) {
		x0, x1 := in.x.Scale(band.Lo), in.x.Scale(band.Hi)
		scene.Bands = append(scene.Bands, BandRect{
			Rect: Rect{X: x0, Y: top, Width: x1 - x0, Height: bottom - top},
			Band: band,
		})
	}

	for _, a := range in.annotations {
		if !scene.XDomain.Contains(float64(a.Minute)) {
			continue
		}
		scene.Annotations = append(scene.Annotations, AnnotationMarker{
			X:     in.x.Scale(float64(a.Minute)),
			Label: a.Label,
		})
	}

	var path strings.Builder
	for i, r := range in.readings {
		m := Marker{
			X:       in.x.Scale(float64(r.Minute)),
			Y:       in.y.Scale(r.Temperature),
			Reading: r,
		}
		scene.Markers = append(scene.Markers, m)

		if i == 0 {
			path.WriteString("M")
		} else {
			path.WriteString("L")
		}
		path.WriteString(formatPixel(m.X))
		path.WriteString(",")
		path.WriteString(formatPixel(m.Y))
	}
	scene.Line = path.String()

	for _, v := range in.x.Ticks(options.Ticks) {
		scene.XTicks = append(scene.XTicks, Tick{Value: v, Pos: in.x.Scale(v), Label: formatNumber(v)})
	}
	for _, v := range in.y.Ticks(max(1, options.Ticks/2)) {
		scene.YTicks = append(scene.YTicks, Tick{Value: v, Pos: in.y.Scale(v), Label: formatNumber(v)})
	}

	return scene
}

func formatPixel(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
