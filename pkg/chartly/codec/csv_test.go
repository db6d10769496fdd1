package codec

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	schema := models.MustSchema(models.KindScatter)
	err := EncodeCSV(&buf, schema, []models.Row{
		{"a", "1", "2"},
		{"", "x", ""},
		{"short"},
	})
	require.NoError(t, err)
	require.Equal(t, "a,1,2\n,x,\nshort,,\n", buf.String())
}

func TestDecodeCSV(t *testing.T) {
	tests := []struct {
		name     string
		kind     models.Kind
		input    string
		expected []models.Row
		skipped  int
	}{
		{
			name:     "bar",
			kind:     models.KindBar,
			input:    "a,1\nb , 2 \n",
			expected: []models.Row{{"a", "1"}, {"b", "2"}},
		},
		{
			name:     "short lines skipped",
			kind:     models.KindScatter,
			input:    "p,1,2\np,1\n\n",
			expected: []models.Row{{"p", "1", "2"}},
			skipped:  2,
		},
		{
			name:     "extra columns ignored",
			kind:     models.KindLine,
			input:    "a,1,extra,more\r\n",
			expected: []models.Row{{"a", "1"}},
		},
		{
			name:     "pie reads value then label",
			kind:     models.KindPie,
			input:    "30,apples\n",
			expected: []models.Row{{"apples", "30"}},
		},
		{
			name:     "non-numeric kept raw",
			kind:     models.KindCandlestick,
			input:    "d1,1,n/a,0,2\n",
			expected: []models.Row{{"d1", "1", "n/a", "0", "2"}},
		},
	}

	for _, tt := range tests {
		rows, skipped, err := DecodeCSV(strings.NewReader(tt.input), models.MustSchema(tt.kind))
		require.NoError(t, err, tt.name)
		require.Equal(t, tt.expected, rows, tt.name)
		require.Equal(t, tt.skipped, skipped, tt.name)
	}
}

func TestDecodeCSVReadErrorKeepsProgress(t *testing.T) {
	boom := errors.New("disk gone")
	r := io.MultiReader(strings.NewReader("a,1\nb\n"), iotest.ErrReader(boom))

	rows, skipped, err := DecodeCSV(r, models.MustSchema(models.KindBar))
	require.ErrorIs(t, err, boom)
	require.Equal(t, []models.Row{{"a", "1"}}, rows)
	require.Equal(t, 1, skipped)
}

func TestCSVRoundTrip(t *testing.T) {
	rows := []models.Row{{"jan", "10", "12"}, {"feb", "11", ""}}
	schema := models.MustSchema(models.KindBarLine)

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, schema, rows))

	got, skipped, err := DecodeCSV(&buf, schema)
	require.NoError(t, err)
	require.Zero(t, skipped)
	require.Equal(t, rows, got)
}

// Pie export writes label,value but import reads value,label.
func TestCSVPieRoundTripSwapsFields(t *testing.T) {
	schema := models.MustSchema(models.KindPie)

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, schema, []models.Row{{"apples", "30"}}))

	got, _, err := DecodeCSV(&buf, schema)
	require.NoError(t, err)
	require.Equal(t, []models.Row{{"30", "apples"}}, got)
}

func TestHandoff(t *testing.T) {
	rows := []models.Row{{"a", "1"}, {"b", "2"}}
	items := EncodeHandoff(rows)
	require.Equal(t, []string{"a|1", "b|2"}, items)
	require.Nil(t, EncodeHandoff(nil))

	require.Equal(t, rows, DecodeHandoff(models.MustSchema(models.KindRadar), items))
}

func TestDecodeHandoffWidth(t *testing.T) {
	tests := []struct {
		name     string
		kind     models.Kind
		items    []string
		expected []models.Row
	}{
		{
			name:     "last field absorbs separators",
			kind:     models.KindBar,
			items:    []string{"a|1|2"},
			expected: []models.Row{{"a", "1|2"}},
		},
		{
			name:     "too few parts dropped",
			kind:     models.KindScatter,
			items:    []string{"a|1", "b|1|2"},
			expected: []models.Row{{"b", "1", "2"}},
		},
		{
			name:     "two field rows into three field kind",
			kind:     models.KindBubble,
			items:    []string{"a|1", "b|2"},
			expected: nil,
		},
		{
			name:     "three field rows into two field kind",
			kind:     models.KindPie,
			items:    []string{"a|1|2"},
			expected: []models.Row{{"a", "1|2"}},
		},
		{
			name:     "candlestick rows into bar_line dropped",
			kind:     models.KindBarLine,
			items:    []string{"d1|1|2|3|4"},
			expected: nil,
		},
		{
			name:     "scatter rows into smoothed_line dropped",
			kind:     models.KindSmoothedLine,
			items:    []string{"p|1|2", "q|3"},
			expected: []models.Row{{"q", "3"}},
		},
		{
			name:     "too many parts into candlestick dropped",
			kind:     models.KindCandlestick,
			items:    []string{"d|1|2|3|4|5", "e|1|2|3|4"},
			expected: []models.Row{{"e", "1", "2", "3", "4"}},
		},
	}

	for _, tt := range tests {
		got := DecodeHandoff(models.MustSchema(tt.kind), tt.items)
		require.Equal(t, tt.expected, got, tt.name)
	}
}
