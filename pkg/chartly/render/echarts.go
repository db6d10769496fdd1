package render

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

type echartsRenderer interface {
	Render(w io.Writer) error
}

func globalOpts(opts Options) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(echartsInit(opts)),
		charts.WithTitleOpts(echartsTitle(opts)),
		charts.WithLegendOpts(echartsLegend()),
		charts.WithTooltipOpts(echartsTooltip()),
	}
}

func echartsInit(o Options) opts.Initialization {
	return opts.Initialization{Width: CSSPixels(o.Width), Height: CSSPixels(o.Height)}
}

func echartsTitle(o Options) opts.Title {
	return opts.Title{Title: o.Title}
}

func echartsLegend() opts.Legend {
	return opts.Legend{Show: opts.Bool(true), Top: "bottom"}
}

func echartsTooltip() opts.Tooltip {
	return opts.Tooltip{Show: opts.Bool(true)}
}

func renderECharts(w io.Writer, data *models.ChartData, o Options) error {
	o = o.normalize(data)
	entries, err := displayEntries(data)
	if err != nil {
		return err
	}
	ds := data.Primary()
	labels := entryLabels(entries)

	var chart echartsRenderer
	switch data.Kind {
	case models.KindBar, models.KindHorizontalBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(globalOpts(o)...)
		bar.SetXAxis(labels).AddSeries(ds.Name, barData(entries, ds.Style))
		if data.Kind == models.KindHorizontalBar {
			bar.XYReversal()
		}
		chart = bar

	case models.KindBarLine:
		bar := charts.NewBar()
		bar.SetGlobalOptions(globalOpts(o)...)
		bar.SetXAxis(labels).AddSeries(ds.Name, barData(entries, ds.Style))
		if len(data.Datasets) > 1 {
			overlay := data.Datasets[1]
			line := charts.NewLine()
			points := make([]opts.LineData, len(overlay.Entries))
			for i, e := range overlay.Entries {
				points[i] = opts.LineData{Name: e.Label, Value: e.Line}
			}
			line.SetXAxis(labels).AddSeries(overlay.Name, points,
				charts.WithItemStyleOpts(opts.ItemStyle{Color: styleColor(overlay.Style, 0, dataPalette[2])}),
			)
			bar.Overlap(line)
		}
		chart = bar

	case models.KindLine, models.KindSmoothedLine:
		line := charts.NewLine()
		line.SetGlobalOptions(globalOpts(o)...)
		points := make([]opts.LineData, len(entries))
		for i, e := range entries {
			points[i] = opts.LineData{Name: e.Label, Value: e.Y}
		}
		line.SetXAxis(labels).AddSeries(ds.Name, points,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(ds.Style.Smooth)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: styleColor(ds.Style, 0, dataPalette[2])}),
		)
		chart = line

	case models.KindPie, models.KindDoughnut:
		pie := charts.NewPie()
		pie.SetGlobalOptions(globalOpts(o)...)
		slices := make([]opts.PieData, len(entries))
		for i, e := range entries {
			slices[i] = opts.PieData{
				Name:      e.Label,
				Value:     e.Y,
				ItemStyle: &opts.ItemStyle{Color: styleColor(ds.Style, i, dataPalette[i%len(dataPalette)])},
			}
		}
		radius := interface{}("75%")
		if ds.Style.HoleRatio > 0 {
			radius = []string{percent(ds.Style.HoleRatio * 0.75), "75%"}
		}
		pie.AddSeries(ds.Name, slices, charts.WithPieChartOpts(opts.PieChart{Radius: radius}))
		chart = pie

	case models.KindScatter, models.KindBubble:
		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(append(globalOpts(o),
			charts.WithXAxisOpts(opts.XAxis{Type: "value", Scale: opts.Bool(true)}),
			charts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: opts.Bool(true)}),
		)...)
		maxSize := 0.0
		for _, e := range entries {
			maxSize = math.Max(maxSize, e.Size)
		}
		points := make([]opts.ScatterData, len(entries))
		for i, e := range entries {
			points[i] = opts.ScatterData{Name: e.Label, Value: []float64{e.X, e.Y}, SymbolSize: 10}
			if data.Kind == models.KindBubble && maxSize > 0 {
				points[i].SymbolSize = int(math.Round(2 * (minBubble + (maxBubble-minBubble)*e.Size/maxSize)))
			}
		}
		scatter.AddSeries(ds.Name, points,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: styleColor(ds.Style, 0, dataPalette[0])}),
		)
		chart = scatter

	case models.KindCandlestick:
		kline := charts.NewKLine()
		kline.SetGlobalOptions(append(globalOpts(o),
			charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
		)...)
		candles := make([]opts.KlineData, len(entries))
		for i, e := range entries {
			candles[i] = opts.KlineData{Name: e.Label, Value: [4]float64{e.Open, e.Close, e.Low, e.High}}
		}
		rising, falling := styleColor(ds.Style, 0, "#26A69A"), styleColor(ds.Style, 1, "#EF5350")
		kline.SetXAxis(labels).AddSeries(ds.Name, candles,
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: rising, Color0: falling,
				BorderColor: rising, BorderColor0: falling,
			}),
		)
		chart = kline

	case models.KindRadar:
		radar := charts.NewRadar()
		peak := 0.0
		values := make([]float64, len(entries))
		for i, e := range entries {
			peak = math.Max(peak, e.Y)
			values[i] = e.Y
		}
		if peak == 0 {
			peak = 1
		}
		indicators := make([]*opts.Indicator, len(entries))
		for i, e := range entries {
			indicators[i] = &opts.Indicator{Name: e.Label, Max: float32(peak)}
		}
		radar.SetGlobalOptions(append(globalOpts(o),
			charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
		)...)
		radar.AddSeries(ds.Name, []opts.RadarData{{Name: ds.Name, Value: values}},
			charts.WithItemStyleOpts(opts.ItemStyle{Color: styleColor(ds.Style, 0, dataPalette[1])}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.35)}),
		)
		chart = radar

	default:
		return ErrUnsupportedKind
	}
	return chart.Render(w)
}

func barData(entries []models.Entry, style models.Style) []opts.BarData {
	out := make([]opts.BarData, len(entries))
	for i, e := range entries {
		t := 0.0
		if len(entries) > 1 {
			t = float64(i) / float64(len(entries)-1)
		}
		clr := styleColor(style, i, dataPalette[0])
		if len(style.Gradient) > 0 {
			c := gradientAt(style.Gradient, t)
			clr = hexString(c.R, c.G, c.B)
		}
		out[i] = opts.BarData{Name: e.Label, Value: e.Y, ItemStyle: &opts.ItemStyle{Color: clr}}
	}
	return out
}

func percent(ratio float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(ratio*100)))
}

func hexString(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
