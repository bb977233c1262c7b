package internal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Reading is a single body temperature sample.
type Reading struct {
	Subject     string  // The mouse the sample was taken from.
	Minute      int     // Minutes since the start of the experiment.
	Temperature float64 // Degrees Celsius.
}

// Column names expected in the CSV header.
const (
	columnSubject     = "mouse"
	columnMinute      = "day"
	columnTemperature = "temp"
)

// DataFormatError reports a row that could not be turned into a Reading.
type DataFormatError struct {
	Line   int    // 1-based line in the input, header included.
	Column string // Offending column, empty for structural errors.
	Value  string
	Err    error
}

func (e *DataFormatError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: invalid %s %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

// ReadReadings parses the mouse,day,temp CSV. Any malformed row fails the
// whole load so that nothing is drawn from partial data.
func ReadReadings(reader io.Reader) ([]Reading, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, &DataFormatError{Line: 1, Err: errors.New("missing header")}
	}
	if err != nil {
		return nil, asDataFormatError(err, 1)
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	index := func(name string) (int, error) {
		i, ok := columns[name]
		if !ok {
			return 0, &DataFormatError{Line: 1, Err: fmt.Errorf("missing column %q", name)}
		}
		return i, nil
	}
	subjectAt, err := index(columnSubject)
	if err != nil {
		return nil, err
	}
	minuteAt, err := index(columnMinute)
	if err != nil {
		return nil, err
	}
	temperatureAt, err := index(columnTemperature)
	if err != nil {
		return nil, err
	}

	var readings []Reading
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, asDataFormatError(err, line)
		}

		subject := strings.TrimSpace(record[subjectAt])
		if subject == "" {
			return nil, &DataFormatError{Line: line, Column: columnSubject, Err: errors.New("empty subject")}
		}

		minute, err := parseMinute(record[minuteAt])
		if err != nil {
			return nil, &DataFormatError{Line: line, Column: columnMinute, Value: record[minuteAt], Err: err}
		}

		temperature, err := strconv.ParseFloat(strings.TrimSpace(record[temperatureAt]), 64)
		if err == nil && (math.IsNaN(temperature) || math.IsInf(temperature, 0)) {
			err = errors.New("not a finite number")
		}
		if err != nil {
			return nil, &DataFormatError{Line: line, Column: columnTemperature, Value: record[temperatureAt], Err: err}
		}

		readings = append(readings, Reading{
			Subject:     subject,
			Minute:      minute,
			Temperature: temperature,
		})
	}
	return readings, nil
}

// Minutes are usually written as integers, but "1440.0" shows up in
// exports from spreadsheets and is accepted as long as it is whole.
func parseMinute(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, errors.New("negative minute")
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, errors.New("not a whole, non-negative minute")
	}
	return int(f), nil
}

func asDataFormatError(err error, line int) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		line = parseErr.Line
	}
	return &DataFormatError{Line: line, Err: err}
}
