package internal

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrInvalidSelection is returned when selecting a subject that is not in the data.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrNoReadings is returned when initializing with an empty data set.
	ErrNoReadings = errors.New("no readings")
)

// ViewState is what the user controls: which subject is shown and, when
// zoomed, which window of minutes is visible. A nil Domain means the
// subject's full range.
type ViewState struct {
	Subject string
	Domain  *Domain
}

// Zoomed reports whether a zoom window is active.
func (v ViewState) Zoomed() bool {
	return v.Domain != nil
}

// Controller owns the readings and the view state, and re-renders the
// scene after every transition. It is not safe for concurrent use.
type Controller struct {
	options ChartOptions

	subjects    []string
	bySubject   map[string][]Reading
	annotations []Annotation

	state ViewState
	x     LinearScale
	y     LinearScale
	scene Scene
}

func NewController(options ChartOptions) *Controller {
	return &Controller{options: options}
}

// Initialize loads the readings, selects the first subject seen and draws
// the full range.
func (c *Controller) Initialize(readings []Reading) error {
	if len(readings) == 0 {
		return ErrNoReadings
	}

	c.subjects = nil
	c.bySubject = map[string][]Reading{}
	for _, r := range readings {
		if _, ok := c.bySubject[r.Subject]; !ok {
			c.subjects = append(c.subjects, r.Subject)
		}
		c.bySubject[r.Subject] = append(c.bySubject[r.Subject], r)
	}
	for _, list := range c.bySubject {
		slices.SortStableFunc(list, func(a, b Reading) int {
			return cmp.Compare(a.Minute, b.Minute)
		})
	}

	c.state = ViewState{Subject: c.subjects[0]}
	c.render()
	return nil
}

// SelectSubject switches to another subject and clears any zoom. Unknown
// subjects are rejected and leave the view untouched.
func (c *Controller) SelectSubject(id string) error {
	if _, ok := c.bySubject[id]; !ok {
		return fmt.Errorf("%w: unknown subject %q", ErrInvalidSelection, id)
	}
	c.state = ViewState{Subject: id}
	c.render()
	return nil
}

// ApplyZoom zooms onto the minutes under the pixel range [p0, p1] of the
// current x axis. Coordinates are clamped to the plot area. It returns
// false, changing nothing, when the range is empty.
func (c *Controller) ApplyZoom(p0, p1 float64) bool {
	if c.bySubject == nil || math.IsNaN(p0) || math.IsNaN(p1) {
		return false
	}
	left, right, _, _ := c.options.PlotArea()
	p0 = clamp(p0, left, right)
	p1 = clamp(p1, left, right)
	if p0 == p1 {
		return false
	}

	lo, hi := c.x.Invert(p0), c.x.Invert(p1)
	if lo > hi {
		lo, hi = hi, lo
	}
	domain := Domain{Lo: lo, Hi: hi}
	if !domain.Valid() {
		return false
	}
	c.state.Domain = &domain
	c.render()
	return true
}

// ResetZoom goes back to the full range of the selected subject.
func (c *Controller) ResetZoom() {
	if c.bySubject == nil {
		return
	}
	c.state.Domain = nil
	c.render()
}

// SetAnnotations replaces the experiment events drawn over the chart.
func (c *Controller) SetAnnotations(annotations []Annotation) {
	c.annotations = slices.Clone(annotations)
	if c.bySubject != nil {
		c.render()
	}
}

// State returns a copy of the current view state.
func (c *Controller) State() ViewState {
	state := c.state
	if state.Domain != nil {
		d := *state.Domain
		state.Domain = &d
	}
	return state
}

// Subjects returns the subjects in the order they first appear in the data.
func (c *Controller) Subjects() []string {
	return slices.Clone(c.subjects)
}

// Scene returns the last rendered scene.
func (c *Controller) Scene() Scene {
	return c.scene
}

// XScale returns the x scale of the last render.
func (c *Controller) XScale() LinearScale {
	return c.x
}

// YScale returns the y scale of the last render.
func (c *Controller) YScale() LinearScale {
	return c.y
}

// Options returns the layout options the controller draws with.
func (c *Controller) Options() ChartOptions {
	return c.options
}

// visible returns the readings of the selected subject inside the current
// window. Zooming filters points rather than relying on clipping.
func (c *Controller) visible() []Reading {
	all := c.bySubject[c.state.Subject]
	if c.state.Domain == nil {
		return all
	}
	var readings []Reading
	for _, r := range all {
		if c.state.Domain.Contains(float64(r.Minute)) {
			readings = append(readings, r)
		}
	}
	return readings
}

func (c *Controller) render() {
	all := c.bySubject[c.state.Subject]
	readings := c.visible()

	left, right, top, bottom := c.options.PlotArea()

	xDomain := minuteExtent(all)
	if c.state.Domain != nil {
		xDomain = *c.state.Domain
	}
	c.x = NewLinearScale(xDomain, left, right)

	// An empty window keeps the subject's y extent so the axis stays put.
	fit := readings
	if len(fit) == 0 {
		fit = all
	}
	yDomain := temperatureExtent(fit)
	yDomain.Lo -= 0.5
	yDomain.Hi += 0.5
	c.y = NewLinearScale(yDomain, bottom, top)

	c.scene = buildScene(c.options, sceneInput{
		subjects:    c.subjects,
		state:       c.state,
		readings:    readings,
		annotations: c.annotations,
		x:           c.x,
		y:           c.y,
	})
}

func minuteExtent(readings []Reading) Domain {
	values := make([]float64, len(readings))
	for i, r := range readings {
		values[i] = float64(r.Minute)
	}
	return Extent(values)
}

func temperatureExtent(readings []Reading) Domain {
	values := make([]float64, len(readings))
	for i, r := range readings {
		values[i] = r.Temperature
	}
	return Extent(values)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
