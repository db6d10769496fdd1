package render

import (
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

// Bubble radius bounds in pixels.
const (
	minBubble = 4.0
	maxBubble = 24.0
)

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}}
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(hex)
}

// gradientAt interpolates between the first two colors at t in [0, 1].
func gradientAt(colors []string, t float64) drawing.Color {
	if len(colors) == 0 {
		return chart.DefaultColors[0]
	}
	from := hexColor(colors[0])
	if len(colors) == 1 {
		return from
	}
	to := hexColor(colors[1])
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return drawing.Color{R: mix(from.R, to.R), G: mix(from.G, to.G), B: mix(from.B, to.B), A: 255}
}

// paddedRange returns a range covering vs, always including zero when
// withZero is set, and never empty.
func paddedRange(vs []float64, withZero bool) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if withZero {
		lo, hi = math.Min(lo, 0), math.Max(hi, 0)
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		lo, hi = 0, 1
	}
	if hi == lo {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * 0.05
	if withZero && lo == 0 {
		return &chart.ContinuousRange{Min: 0, Max: hi + pad}
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// categoryTicks labels x positions 0..n-1. Ticks take precedence over the
// axis range, so unlabeled edge ticks pad the axis by half a slot.
func categoryTicks(labels []string) ([]chart.Tick, *chart.ContinuousRange) {
	lo, hi := -0.5, float64(len(labels))-0.5
	ticks := make([]chart.Tick, 0, len(labels)+2)
	ticks = append(ticks, chart.Tick{Value: lo})
	for i, l := range labels {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: l})
	}
	ticks = append(ticks, chart.Tick{Value: hi})
	return ticks, &chart.ContinuousRange{Min: lo, Max: hi}
}

func goChartBar(w io.Writer, data *models.ChartData, opts Options) error {
	opts = opts.normalize(data)
	entries, err := displayEntries(data)
	if err != nil {
		return err
	}
	style := data.Primary().Style

	bars := make([]chart.Value, len(entries))
	values := make([]float64, len(entries))
	for i, e := range entries {
		t := 0.0
		if len(entries) > 1 {
			t = float64(i) / float64(len(entries)-1)
		}
		fill := gradientAt(style.Gradient, t)
		if len(style.Gradient) == 0 {
			fill = hexColor(styleColor(style, i, dataPalette[0]))
		}
		bars[i] = chart.Value{
			Label: e.Label,
			Value: e.Y,
			Style: chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		}
		values[i] = e.Y
	}

	bc := chart.BarChart{
		Title:        opts.Title,
		Width:        opts.Width,
		Height:       opts.Height,
		Background:   background(),
		BarWidth:     barWidth(opts.Width, len(bars)),
		UseBaseValue: true,
		BaseValue:    0,
		YAxis:        chart.YAxis{Range: paddedRange(values, true)},
		Bars:         bars,
	}
	return bc.Render(chart.PNG, w)
}

func barWidth(width, n int) int {
	if n == 0 {
		return 0
	}
	bw := (width - 120) / (n * 2)
	if bw < 4 {
		bw = 4
	}
	if bw > 80 {
		bw = 80
	}
	return bw
}

func goChartLine(w io.Writer, data *models.ChartData, opts Options) error {
	opts = opts.normalize(data)
	entries, err := displayEntries(data)
	if err != nil {
		return err
	}
	ds := data.Primary()

	xs := make([]float64, len(entries))
	ys := make([]float64, len(entries))
	for i, e := range entries {
		xs[i], ys[i] = float64(i), e.Y
	}
	if ds.Style.Smooth {
		xs, ys = smoothCurve(xs, ys)
	}

	color := hexColor(styleColor(ds.Style, 0, dataPalette[2]))
	width := ds.Style.LineWidth
	if width == 0 {
		width = 2
	}
	ticks, xr := categoryTicks(entryLabels(entries))
	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		XAxis:      chart.XAxis{Ticks: ticks, Range: xr},
		YAxis:      chart.YAxis{Range: paddedRange(ys, false)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    ds.Name,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: width,
					DotColor:    color,
					DotWidth:    dotWidthFor(ds.Style.Smooth),
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// Smoothed curves have many interpolated points; dots are only drawn on plain lines.
func dotWidthFor(smooth bool) float64 {
	if smooth {
		return chart.Disabled
	}
	return 3
}

func goChartScatter(w io.Writer, data *models.ChartData, opts Options) error {
	opts = opts.normalize(data)
	entries, err := displayEntries(data)
	if err != nil {
		return err
	}
	ds := data.Primary()

	xs := make([]float64, len(entries))
	ys := make([]float64, len(entries))
	maxSize := 0.0
	for i, e := range entries {
		xs[i], ys[i] = e.X, e.Y
		maxSize = math.Max(maxSize, e.Size)
	}

	style := chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
			return hexColor(styleColor(ds.Style, index, dataPalette[0])).WithAlpha(200)
		},
	}
	if data.Kind == models.KindBubble {
		style.DotWidthProvider = func(_, _ chart.Range, index int, _, _ float64) float64 {
			if maxSize == 0 || index >= len(entries) {
				return minBubble
			}
			return minBubble + (maxBubble-minBubble)*entries[index].Size/maxSize
		}
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		XAxis:      chart.XAxis{Range: paddedRange(xs, false)},
		YAxis:      chart.YAxis{Range: paddedRange(ys, false)},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: ds.Name, XValues: xs, YValues: ys, Style: style},
		},
	}
	return ch.Render(chart.PNG, w)
}

func goChartPie(w io.Writer, data *models.ChartData, opts Options) error {
	opts = opts.normalize(data)
	entries, err := displayEntries(data)
	if err != nil {
		return err
	}
	style := data.Primary().Style

	values := make([]chart.Value, len(entries))
	for i, e := range entries {
		fill := hexColor(styleColor(style, i, dataPalette[i%len(dataPalette)]))
		values[i] = chart.Value{
			Label: e.Label,
			Value: e.Y,
			Style: chart.Style{FillColor: fill, StrokeColor: drawing.ColorWhite, StrokeWidth: 2},
		}
	}

	if data.Kind == models.KindDoughnut {
		dc := chart.DonutChart{
			Title:      opts.Title,
			Width:      opts.Width,
			Height:     opts.Height,
			Background: background(),
			Values:     values,
		}
		return dc.Render(chart.PNG, w)
	}
	pc := chart.PieChart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background(),
		Values:     values,
	}
	return pc.Render(chart.PNG, w)
}
