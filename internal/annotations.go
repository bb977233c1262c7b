package internal

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"slices"
	"time"

	"github.com/apognu/gocal"
)

// Annotation is an experiment event (injection, cage change, ...) placed
// at a minute offset from the start of the experiment.
type Annotation struct {
	Minute int
	Label  string
}

// LoadAnnotations fetches the calendar described by options and converts
// its events into annotations. Events before the experiment start or more
// than span after it are ignored.
func LoadAnnotations(ctx context.Context, options AnnotationOptions, span time.Duration) ([]Annotation, error) {
	if options.Source.Location == "" {
		return nil, nil
	}

	rc, err := Open(ctx, options.Source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	annotations, err := ParseAnnotations(rc, options.Start, span)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar %s: %w", options.Source.Location, err)
	}
	return annotations, nil
}

// ParseAnnotations reads iCalendar events between start and start+span.
func ParseAnnotations(reader io.Reader, start time.Time, span time.Duration) ([]Annotation, error) {
	// Let events starting exactly at minute zero through.
	from := start.Add(-1 * time.Second)
	end := start.Add(span)

	cal := gocal.NewParser(reader)
	cal.AllDayEventsTZ = start.Location()
	cal.Start, cal.End = &from, &end

	if err := cal.Parse(); err != nil {
		return nil, err
	}

	var annotations []Annotation
	for _, e := range cal.Events {
		if e.Start == nil || e.Start.Before(start) {
			continue
		}
		minute := int(math.Round(e.Start.Sub(start).Minutes()))
		log.Println("Annotation:", e.Summary, "at minute", minute)
		annotations = append(annotations, Annotation{Minute: minute, Label: e.Summary})
	}

	slices.SortStableFunc(annotations, func(a, b Annotation) int {
		return cmp.Compare(a.Minute, b.Minute)
	})
	return annotations, nil
}

// AnnotationSpan returns how far past the experiment start annotations are
// looked up: the last reading plus one full day.
func AnnotationSpan(readings []Reading, cycle Cycle) time.Duration {
	last := 0
	for _, r := range readings {
		last = max(last, r.Minute)
	}
	return time.Duration(last+cycle.DayLength) * time.Minute
}
