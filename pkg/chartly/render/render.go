// Package render draws chart data as PNG images or interactive HTML pages.
package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/chartly-go/pkg/chartly/dataset"
	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

// Format is an output encoding.
type Format string

const (
	// FormatPNG renders a static image.
	FormatPNG Format = "png"
	// FormatHTML renders a self-contained ECharts page.
	FormatHTML Format = "html"
)

var (
	// ErrUnsupportedKind indicates a renderer cannot draw a kind.
	ErrUnsupportedKind = errors.New("unsupported chart kind")
	// ErrNothingToRender indicates no entry is left after display filtering.
	ErrNothingToRender = errors.New("nothing to render")
)

// Options configures one render.
type Options struct {
	// Width and Height are in pixels. Zero means the default size.
	Width, Height int
	// Title overrides the chart title.
	Title string
}

// DefaultOptions returns 800x600 pixel options.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth, Height: DefaultHeight}
}

func (o Options) normalize(data *models.ChartData) Options {
	o.Width, o.Height = ClampSize(o.Width, o.Height)
	if o.Title == "" {
		o.Title = data.Title
	}
	if o.Title == "" {
		o.Title = data.Kind.Title()
	}
	return o
}

// Renderer draws chart data to w.
type Renderer interface {
	Render(w io.Writer, data *models.ChartData, opts Options) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(w io.Writer, data *models.ChartData, opts Options) error

// Render calls f.
func (f RendererFunc) Render(w io.Writer, data *models.ChartData, opts Options) error {
	return f(w, data, opts)
}

var dataPalette = dataset.Palette

var pngRenderers = map[models.Kind]Renderer{
	models.KindBar:           RendererFunc(goChartBar),
	models.KindLine:          RendererFunc(goChartLine),
	models.KindSmoothedLine:  RendererFunc(goChartLine),
	models.KindScatter:       RendererFunc(goChartScatter),
	models.KindBubble:        RendererFunc(goChartScatter),
	models.KindPie:           RendererFunc(goChartPie),
	models.KindDoughnut:      RendererFunc(goChartPie),
	models.KindHorizontalBar: RendererFunc(gonumHorizontalBar),
	models.KindBarLine:       RendererFunc(gonumBarLine),
	models.KindCandlestick:   RendererFunc(gonumCandlestick),
	models.KindRadar:         RendererFunc(gonumRadar),
}

// New returns the renderer for kind in format.
func New(kind models.Kind, format Format) (Renderer, error) {
	switch format {
	case FormatPNG:
		r, ok := pngRenderers[kind]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
		}
		return r, nil
	case FormatHTML:
		if _, ok := models.SchemaFor(kind); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
		}
		return RendererFunc(renderECharts), nil
	default:
		return nil, fmt.Errorf("unknown render format %q", format)
	}
}

// Render draws data in format, picking the renderer from the data kind.
func Render(w io.Writer, data *models.ChartData, format Format, opts Options) error {
	if data == nil || data.Len() == 0 {
		return ErrNothingToRender
	}
	r, err := New(data.Kind, format)
	if err != nil {
		return err
	}
	return r.Render(w, data, opts)
}

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatPNG, FormatHTML:
		return Format(s), true
	}
	return "", false
}

// displayEntries returns the primary entries. Pie and doughnut only draw
// positive slices; rows built by dataset.Build never hold others.
func displayEntries(data *models.ChartData) ([]models.Entry, error) {
	entries := data.Primary().Entries
	var out []models.Entry
	switch data.Kind {
	case models.KindPie, models.KindDoughnut:
		for _, e := range entries {
			if e.Y > 0 {
				out = append(out, e)
			}
		}
	default:
		out = entries
	}
	if len(out) == 0 {
		return nil, ErrNothingToRender
	}
	return out, nil
}

func entryLabels(entries []models.Entry) []string {
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	return labels
}

func styleColor(style models.Style, i int, fallback string) string {
	if len(style.Colors) == 0 {
		return fallback
	}
	return style.Colors[i%len(style.Colors)]
}
