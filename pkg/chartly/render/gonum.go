package render

import (
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Legend.Top = true
	return p
}

func writePlot(w io.Writer, p *plot.Plot, opts Options) error {
	wt, err := p.WriterTo(PixelsToLength(opts.Width), PixelsToLength(opts.Height), string(FormatPNG))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// gradientBars adds one single-value bar chart per entry so each bar takes
// its own color from the gradient.
func gradientBars(p *plot.Plot, entries []models.Entry, style models.Style, width vg.Length, horizontal bool) ([]*plotter.BarChart, error) {
	bars := make([]*plotter.BarChart, 0, len(entries))
	for i, e := range entries {
		b, err := plotter.NewBarChart(plotter.Values{e.Y}, width)
		if err != nil {
			return nil, err
		}
		t := 0.0
		if len(entries) > 1 {
			t = float64(i) / float64(len(entries)-1)
		}
		if len(style.Gradient) > 0 {
			b.Color = gradientAt(style.Gradient, t)
		} else {
			b.Color = hexColor(styleColor(style, i, dataPalette[0]))
		}
		b.LineStyle.Width = 0
		b.XMin = float64(i)
		b.Horizontal = horizontal
		p.Add(b)
		bars = append(bars, b)
	}
	return bars, nil
}

func slotWidth(opts Options, n int, horizontal bool) vg.Length {
	side := opts.Width
	if horizontal {
		side = opts.Height
	}
	w := PixelsToLength(side) * 0.6 / vg.Length(math.Max(float64(n), 1))
	if w <= 0 {
		w = vg.Points(1)
	}
	return w
}

func gonumHorizontalBar(w io.Writer, data *models.ChartData, opts Options) error {
	opts = opts.normalize(data)
	entries, err := displayEntries(data)
	if err != nil {
		return err
	}
	ds := data.Primary()

	p := newPlot(opts.Title)
	bars, err := gradientBars(p, entries, ds.Style, slotWidth(opts, len(entries), true), true)
	if err != nil {
		return err
	}
	p.NominalY(entryLabels(entries)...)
	p.Legend.Add(ds.Name, bars[0])
	return writePlot(w, p, opts)
}

func gonumBarLine(w io.Writer, data *models.ChartData, opts Options) error {
	opts = opts.normalize(data)
	entries, err := displayEntries(data)
	if err != nil {
		return err
	}
	ds := data.Primary()

	p := newPlot(opts.Title)
	bars, err := gradientBars(p, entries, ds.Style, slotWidth(opts, len(entries), false), false)
	if err != nil {
		return err
	}
	p.Legend.Add(ds.Name, bars[0])

	if len(data.Datasets) > 1 {
		overlay := data.Datasets[1]
		xys := make(plotter.XYs, len(overlay.Entries))
		for i, e := range overlay.Entries {
			xys[i] = plotter.XY{X: float64(i), Y: e.Line}
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		clr := hexColor(styleColor(overlay.Style, 0, dataPalette[2]))
		line.Color = clr
		line.Width = vg.Points(math.Max(overlay.Style.LineWidth, 1))
		points.Color = clr
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(overlay.Name, line, points)
	}

	p.NominalX(entryLabels(entries)...)
	return writePlot(w, p, opts)
}

// candles draws open/high/low/close entries as wick lines and bodies.
type candles struct {
	entries []models.Entry
	rising  color.Color
	falling color.Color
	width   vg.Length
}

// Plot implements plot.Plotter.
func (cs *candles) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for i, e := range cs.entries {
		clr := cs.rising
		if e.Close < e.Open {
			clr = cs.falling
		}
		x := trX(float64(i))
		wick := draw.LineStyle{Color: clr, Width: vg.Points(1)}
		c.StrokeLine2(wick, x, trY(e.Low), x, trY(e.High))

		top, bottom := trY(math.Max(e.Open, e.Close)), trY(math.Min(e.Open, e.Close))
		if top-bottom < vg.Points(1) {
			c.StrokeLine2(wick, x-cs.width/2, top, x+cs.width/2, top)
			continue
		}
		c.FillPolygon(clr, []vg.Point{
			{X: x - cs.width/2, Y: bottom},
			{X: x + cs.width/2, Y: bottom},
			{X: x + cs.width/2, Y: top},
			{X: x - cs.width/2, Y: top},
		})
	}
}

// DataRange implements plot.DataRanger.
func (cs *candles) DataRange() (xmin, xmax, ymin, ymax float64) {
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, e := range cs.entries {
		ymin = math.Min(ymin, math.Min(e.Low, math.Min(e.Open, e.Close)))
		ymax = math.Max(ymax, math.Max(e.High, math.Max(e.Open, e.Close)))
	}
	return -0.5, float64(len(cs.entries)) - 0.5, ymin, ymax
}

// Thumbnail implements plot.Thumbnailer.
func (cs *candles) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Min.X, Y: c.Max.Y},
	}
	c.FillPolygon(cs.rising, c.ClipPolygonY(pts))
}

func gonumCandlestick(w io.Writer, data *models.ChartData, opts Options) error {
	opts = opts.normalize(data)
	entries, err := displayEntries(data)
	if err != nil {
		return err
	}
	ds := data.Primary()

	cs := &candles{
		entries: entries,
		rising:  hexColor(styleColor(ds.Style, 0, "#26A69A")),
		falling: hexColor(styleColor(ds.Style, 1, "#EF5350")),
		width:   slotWidth(opts, len(entries), false),
	}
	p := newPlot(opts.Title)
	p.Add(cs)
	p.Legend.Add(ds.Name, cs)
	p.NominalX(entryLabels(entries)...)
	return writePlot(w, p, opts)
}

// radarRings is the number of concentric grid polygons.
const radarRings = 4

func radarPoint(i, n int, r float64) plotter.XY {
	angle := math.Pi/2 - 2*math.Pi*float64(i)/float64(n)
	return plotter.XY{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
}

func gonumRadar(w io.Writer, data *models.ChartData, opts Options) error {
	opts = opts.normalize(data)
	entries, err := displayEntries(data)
	if err != nil {
		return err
	}
	ds := data.Primary()
	n := len(entries)

	peak := 0.0
	for _, e := range entries {
		peak = math.Max(peak, e.Y)
	}
	if peak == 0 {
		peak = 1
	}

	p := newPlot(opts.Title)
	p.HideAxes()

	grid := draw.LineStyle{Color: color.Gray{Y: 200}, Width: vg.Points(0.5)}
	for ring := 1; ring <= radarRings; ring++ {
		xys := make(plotter.XYs, n+1)
		for i := 0; i <= n; i++ {
			xys[i] = radarPoint(i%n, n, float64(ring)/radarRings)
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		l.LineStyle = grid
		p.Add(l)
	}
	for i := 0; i < n; i++ {
		spoke, err := plotter.NewLine(plotter.XYs{{}, radarPoint(i, n, 1)})
		if err != nil {
			return err
		}
		spoke.LineStyle = grid
		p.Add(spoke)
	}

	area := make(plotter.XYs, n)
	for i, e := range entries {
		area[i] = radarPoint(i, n, e.Y/peak)
	}
	poly, err := plotter.NewPolygon(area)
	if err != nil {
		return err
	}
	clr := hexColor(styleColor(ds.Style, 0, dataPalette[1]))
	poly.Color = clr.WithAlpha(90)
	poly.LineStyle = draw.LineStyle{Color: clr, Width: vg.Points(math.Max(ds.Style.LineWidth, 1))}
	p.Add(poly)
	p.Legend.Add(ds.Name, poly)

	tips := make(plotter.XYs, n)
	for i := range entries {
		tips[i] = radarPoint(i, n, 1.1)
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: tips, Labels: entryLabels(entries)})
	if err != nil {
		return err
	}
	p.Add(labels)

	p.X.Min, p.X.Max = -1.3, 1.3
	p.Y.Min, p.Y.Max = -1.3, 1.3
	return writePlot(w, p, opts)
}
