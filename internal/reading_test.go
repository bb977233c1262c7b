package internal

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadReadings(t *testing.T) {
	input := `mouse,day,temp
m1,0,37.0
m1,720,37.5
m2,0,36.9
`
	readings, err := ReadReadings(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Reading{
		{Subject: "m1", Minute: 0, Temperature: 37.0},
		{Subject: "m1", Minute: 720, Temperature: 37.5},
		{Subject: "m2", Minute: 0, Temperature: 36.9},
	}, readings)
}

func TestReadReadingsColumnOrder(t *testing.T) {
	input := "temp, Mouse, day\n37.2, m7, 1440.0\n"
	readings, err := ReadReadings(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Reading{{Subject: "m7", Minute: 1440, Temperature: 37.2}}, readings)
}

func TestReadReadingsErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column string
	}{
		{
			name:  "empty",
			input: "",
			line:  1,
		},
		{
			name:  "missing column",
			input: "mouse,day\nm1,0\n",
			line:  1,
		},
		{
			name:   "non numeric temperature",
			input:  "mouse,day,temp\nm1,0,37.0\nm1,60,warm\n",
			line:   3,
			column: "temp",
		},
		{
			name:   "non numeric minute",
			input:  "mouse,day,temp\nm1,noon,37.0\n",
			line:   2,
			column: "day",
		},
		{
			name:   "fractional minute",
			input:  "mouse,day,temp\nm1,1.5,37.0\n",
			line:   2,
			column: "day",
		},
		{
			name:   "negative minute",
			input:  "mouse,day,temp\nm1,-5,37.0\n",
			line:   2,
			column: "day",
		},
		{
			name:   "not a number",
			input:  "mouse,day,temp\nm1,0,NaN\n",
			line:   2,
			column: "temp",
		},
		{
			name:   "empty subject",
			input:  "mouse,day,temp\n,0,37.0\n",
			line:   2,
			column: "mouse",
		},
		{
			name:  "short row",
			input: "mouse,day,temp\nm1,0,37.0\nm1,60\n",
			line:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readings, err := ReadReadings(strings.NewReader(tt.input))
			assert.Nil(t, readings)

			var formatErr *DataFormatError
			require.True(t, errors.As(err, &formatErr), "got %v", err)
			assert.Equal(t, tt.line, formatErr.Line)
			assert.Equal(t, tt.column, formatErr.Column)
		})
	}
}

func TestDataFormatErrorMessage(t *testing.T) {
	_, err := ReadReadings(strings.NewReader("mouse,day,temp\nm1,0,warm\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), `invalid temp "warm"`)
}
