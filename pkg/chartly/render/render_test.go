package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ukaji3/chartly-go/pkg/chartly/dataset"
	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func buildChart(t *testing.T, kind models.Kind, rows ...models.Row) *models.ChartData {
	t.Helper()
	data, err := dataset.Build(models.MustSchema(kind), rows)
	require.NoError(t, err)
	return data
}

func fixtures(t *testing.T) map[models.Kind]*models.ChartData {
	t.Helper()
	return map[models.Kind]*models.ChartData{
		models.KindBar:           buildChart(t, models.KindBar, models.Row{"a", "3"}, models.Row{"b", "-1"}, models.Row{"c", "4.5"}),
		models.KindHorizontalBar: buildChart(t, models.KindHorizontalBar, models.Row{"a", "3"}, models.Row{"b", "5"}),
		models.KindLine:          buildChart(t, models.KindLine, models.Row{"mon", "1"}, models.Row{"tue", "4"}, models.Row{"wed", "2"}),
		models.KindSmoothedLine:  buildChart(t, models.KindSmoothedLine, models.Row{"", "1"}, models.Row{"", "4"}, models.Row{"", "2"}, models.Row{"", "8"}),
		models.KindPie:           buildChart(t, models.KindPie, models.Row{"x", "2"}, models.Row{"y", "3"}, models.Row{"z", "1"}),
		models.KindDoughnut:      buildChart(t, models.KindDoughnut, models.Row{"x", "2"}, models.Row{"y", "3"}),
		models.KindRadar:         buildChart(t, models.KindRadar, models.Row{"", "5"}, models.Row{"", "0"}, models.Row{"", "3"}, models.Row{"", "4"}, models.Row{"", "1"}),
		models.KindScatter:       buildChart(t, models.KindScatter, models.Row{"p", "1", "2"}, models.Row{"q", "3", "-1"}),
		models.KindBubble:        buildChart(t, models.KindBubble, models.Row{"p", "1", "2"}, models.Row{"q", "3", "9"}),
		models.KindCandlestick:   buildChart(t, models.KindCandlestick, models.Row{"d1", "10", "12", "9", "11"}, models.Row{"d2", "11", "13", "8", "9"}),
		models.KindBarLine:       buildChart(t, models.KindBarLine, models.Row{"q1", "5", "2"}, models.Row{"q2", "6", ""}),
	}
}

func TestRenderPNGAllKinds(t *testing.T) {
	for kind, data := range fixtures(t) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, data, FormatPNG, DefaultOptions()), kind)
		require.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature), kind)
	}
}

func TestRenderPNGSingleEntry(t *testing.T) {
	tests := []struct {
		kind models.Kind
		row  models.Row
	}{
		{models.KindBar, models.Row{"a", "3"}},
		{models.KindLine, models.Row{"a", "3"}},
		{models.KindSmoothedLine, models.Row{"a", "3"}},
		{models.KindScatter, models.Row{"a", "1", "1"}},
		{models.KindPie, models.Row{"a", "1"}},
		{models.KindHorizontalBar, models.Row{"a", "0"}},
		{models.KindCandlestick, models.Row{"d", "1", "1", "1", "1"}},
		{models.KindRadar, models.Row{"a", "0"}},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		err := Render(&buf, buildChart(t, tt.kind, tt.row), FormatPNG, Options{Width: 400, Height: 300})
		require.NoError(t, err, tt.kind)
		require.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature), tt.kind)
	}
}

func TestRenderHTMLAllKinds(t *testing.T) {
	for kind, data := range fixtures(t) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, data, FormatHTML, Options{Title: "Quarterly"}), kind)
		html := buf.String()
		require.Contains(t, html, "echarts", kind)
		require.Contains(t, html, "Quarterly", kind)
		require.Contains(t, html, "800px", kind)
	}
}

func TestRenderHTMLFiltersNonPositiveSlices(t *testing.T) {
	data := &models.ChartData{
		Kind:   models.KindPie,
		Labels: []string{"keepslice", "negslice", "nilslice"},
		Datasets: []models.Dataset{{Entries: []models.Entry{
			{Index: 0, Label: "keepslice", Y: 2},
			{Index: 1, Label: "negslice", X: 1, Y: -3},
			{Index: 2, Label: "nilslice", X: 2},
		}}},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, data, FormatHTML, Options{}))
	require.Contains(t, buf.String(), "keepslice")
	require.NotContains(t, buf.String(), "negslice")
	require.NotContains(t, buf.String(), "nilslice")
}

func TestRenderNothingToRender(t *testing.T) {
	data := &models.ChartData{
		Kind:     models.KindPie,
		Labels:   []string{"a", "b"},
		Datasets: []models.Dataset{{Entries: []models.Entry{{Label: "a", Y: -1}, {Index: 1, Label: "b", X: 1}}}},
	}

	for _, format := range []Format{FormatPNG, FormatHTML} {
		err := Render(&bytes.Buffer{}, data, format, Options{})
		require.True(t, errors.Is(err, ErrNothingToRender), format)
	}
	require.ErrorIs(t, Render(&bytes.Buffer{}, nil, FormatPNG, Options{}), ErrNothingToRender)
}

func TestDisplayEntries(t *testing.T) {
	radar := buildChart(t, models.KindRadar, models.Row{"a", "0"}, models.Row{"b", "3"})
	entries, err := displayEntries(radar)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 3}, []float64{entries[0].Y, entries[1].Y})

	bar := buildChart(t, models.KindBar, models.Row{"a", "-2"})
	entries, err = displayEntries(bar)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestNew(t *testing.T) {
	for _, kind := range models.AllKinds {
		for _, format := range []Format{FormatPNG, FormatHTML} {
			r, err := New(kind, format)
			require.NoError(t, err)
			require.NotNil(t, r)
		}
	}

	_, err := New("area", FormatPNG)
	require.ErrorIs(t, err, ErrUnsupportedKind)
	_, err = New(models.KindBar, "svg")
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"png", FormatPNG, true},
		{"html", FormatHTML, true},
		{"PNG", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClampSize(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{0, 0, DefaultWidth, DefaultHeight},
		{100, 100, MinWidth, MinHeight},
		{10000, 500, MaxSide, 500},
		{1024, 768, 1024, 768},
	}
	for _, tt := range tests {
		w, h := ClampSize(tt.w, tt.h)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("ClampSize(%d, %d) = %d, %d; want %d, %d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestPixelsToLength(t *testing.T) {
	require.InDelta(t, 72.0, float64(PixelsToLength(96)), 1e-9)
	require.Equal(t, "800px", CSSPixels(800))
}

func TestSmoothCurve(t *testing.T) {
	xs, ys := smoothCurve([]float64{0, 1, 2}, []float64{0, 2, 1})
	require.Len(t, xs, 2*smoothSteps+1)
	require.Equal(t, 0.0, xs[0])
	require.Equal(t, 2.0, xs[len(xs)-1])
	require.InDelta(t, 2.0, ys[smoothSteps], 1e-9)
	require.InDelta(t, 1.0, ys[len(ys)-1], 1e-9)

	xs, ys = smoothCurve([]float64{3}, []float64{7})
	require.Equal(t, []float64{3}, xs)
	require.Equal(t, []float64{7}, ys)

	xs, _ = smoothCurve([]float64{1, 1}, []float64{1, 2})
	require.Equal(t, []float64{1, 1}, xs)
}

func TestGradientAt(t *testing.T) {
	start := gradientAt([]string{"#000000", "#FF0000"}, 0)
	end := gradientAt([]string{"#000000", "#FF0000"}, 1)
	mid := gradientAt([]string{"#000000", "#FF0000"}, 0.5)
	require.Equal(t, uint8(0), start.R)
	require.Equal(t, uint8(255), end.R)
	require.Equal(t, uint8(128), mid.R)
	require.True(t, strings.HasPrefix(hexString(end.R, end.G, end.B), "#FF"))
}
