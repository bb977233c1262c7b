package internal

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v4"
)

// Config holds the configuration for the application, parsed from a YAML file.
type Config struct {
	Data        Data        `yaml:"data"`
	Canvas      Canvas      `yaml:"canvas"`
	Cycle       CycleConfig `yaml:"cycle"`
	Markers     Markers     `yaml:"markers"`
	Annotations Annotations `yaml:"annotations"`
	Server      Server      `yaml:"server"`
}

type Data struct {
	Source string `yaml:"source"` // Path or http(s) URL of the CSV.
}

type Canvas struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Margin Margin `yaml:"margin"`
	Ticks  int    `yaml:"ticks"` // Approximate number of ticks per axis.
}

type Margin struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

type CycleConfig struct {
	DayLength   int `yaml:"day_length"`
	NightOffset int `yaml:"night_offset"`
}

type Markers struct {
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"`
	Line   string  `yaml:"line_color"`
	Night  string  `yaml:"night_color"`
}

type Annotations struct {
	Calendar        string    `yaml:"calendar"`         // Path or http(s) URL of an iCalendar feed.
	ExperimentStart time.Time `yaml:"experiment_start"` // Wall time of minute zero.
}

type Server struct {
	Addr    string        `yaml:"addr"`
	Timeout time.Duration `yaml:"timeout"` // For remote data sources.
}

func defaultConfig() Config {
	return Config{
		Data: Data{
			Source: "data/mouse_data.csv",
		},
		Canvas: Canvas{
			Title:  "Body temperature",
			Width:  800,
			Height: 400,
			Margin: Margin{Top: 40, Right: 30, Bottom: 60, Left: 70},
			Ticks:  10,
		},
		Cycle: CycleConfig{
			DayLength:   1440,
			NightOffset: 720,
		},
		Markers: Markers{
			Radius: 4,
			Color:  "#d62728",
			Line:   "#4682b4",
			Night:  "#d3d3e6",
		},
		Server: Server{
			Addr:    ":9999",
			Timeout: 10 * time.Second,
		},
	}
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return defaultConfig()
}

func ReadConfig(reader io.Reader) (Config, error) {
	config := defaultConfig()
	if err := yaml.NewDecoder(reader).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, err
	}
	if err := config.validate(); err != nil {
		return config, err
	}
	return config, nil
}

func (c Config) validate() error {
	var err error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		err = errors.Join(err, fmt.Errorf("canvas must have a positive size, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	m := c.Canvas.Margin
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		err = errors.Join(err, errors.New("canvas margins must not be negative"))
	}
	if m.Left+m.Right >= c.Canvas.Width || m.Top+m.Bottom >= c.Canvas.Height {
		err = errors.Join(err, errors.New("canvas margins leave no room for the plot"))
	}
	if c.Canvas.Ticks <= 0 {
		err = errors.Join(err, errors.New("canvas ticks must be positive"))
	}
	if c.Cycle.DayLength <= 0 {
		err = errors.Join(err, fmt.Errorf("cycle day_length must be positive, got %d", c.Cycle.DayLength))
	}
	if c.Cycle.NightOffset <= 0 || c.Cycle.NightOffset >= c.Cycle.DayLength {
		err = errors.Join(err, fmt.Errorf("cycle night_offset must be within (0, %d), got %d", c.Cycle.DayLength, c.Cycle.NightOffset))
	}
	if c.Markers.Radius <= 0 {
		err = errors.Join(err, errors.New("markers radius must be positive"))
	}
	if c.Annotations.Calendar != "" && c.Annotations.ExperimentStart.IsZero() {
		err = errors.Join(err, errors.New("annotations need an experiment_start"))
	}
	return err
}

// ChartOptions holds everything the controller needs to lay out a chart.
type ChartOptions struct {
	Title  string
	Width  float64
	Height float64
	Margin Margin
	Ticks  int
	Cycle  Cycle
	Style  Style
}

// Style holds the colors and sizes used when drawing.
type Style struct {
	MarkerRadius float64
	MarkerColor  string
	LineColor    string
	NightColor   string
}

func (c Config) GetChartOptions() ChartOptions {
	return ChartOptions{
		Title:  c.Canvas.Title,
		Width:  float64(c.Canvas.Width),
		Height: float64(c.Canvas.Height),
		Margin: c.Canvas.Margin,
		Ticks:  c.Canvas.Ticks,
		Cycle:  Cycle(c.Cycle),
		Style: Style{
			MarkerRadius: c.Markers.Radius,
			MarkerColor:  c.Markers.Color,
			LineColor:    c.Markers.Line,
			NightColor:   c.Markers.Night,
		},
	}
}

// SourceOptions describes where to load a remote or local resource from.
type SourceOptions struct {
	Location string
	Timeout  time.Duration
}

func (c Config) GetDataOptions() SourceOptions {
	return SourceOptions{Location: c.Data.Source, Timeout: c.Server.Timeout}
}

// AnnotationOptions holds options for loading experiment events.
type AnnotationOptions struct {
	Source SourceOptions
	Start  time.Time
}

func (c Config) GetAnnotationOptions() AnnotationOptions {
	return AnnotationOptions{
		Source: SourceOptions{Location: c.Annotations.Calendar, Timeout: c.Server.Timeout},
		Start:  c.Annotations.ExperimentStart,
	}
}

// PlotArea returns the pixel bounds of the plotting area.
func (o ChartOptions) PlotArea() (left, right, top, bottom float64) {
	return float64(o.Margin.Left), o.Width - float64(o.Margin.Right),
		float64(o.Margin.Top), o.Height - float64(o.Margin.Bottom)
}
