// Package chartly turns tabular rows into chart images, pages and files.
package chartly

import (
	"fmt"

	"github.com/ukaji3/chartly-go/pkg/chartly/render"
)

// Format represents an output format.
type Format string

const (
	// FormatPNG renders a static image.
	FormatPNG Format = "png"
	// FormatHTML renders an interactive page.
	FormatHTML Format = "html"
	// FormatJSON writes the chart dataset.
	FormatJSON Format = "json"
	// FormatCSV writes the rows back as CSV.
	FormatCSV Format = "csv"
	// FormatXLSX writes the rows and a native chart to a workbook.
	FormatXLSX Format = "xlsx"
)

// Formats lists every output format.
var Formats = []Format{FormatPNG, FormatHTML, FormatJSON, FormatCSV, FormatXLSX}

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format: %s (must be png, html, json, csv or xlsx)", s)
}

// Options configures rendering.
type Options struct {
	// Format specifies the output format.
	Format Format
	// Width and Height are the image size in pixels; zero means 800x600.
	Width, Height int
	// Title overrides the chart title.
	Title string
	// Pretty indents JSON output.
	Pretty bool
}

// DefaultOptions returns default render options.
func DefaultOptions() Options {
	return Options{
		Format: FormatPNG,
	}
}

// RenderOptions returns the options passed to the chart renderers.
func (o Options) RenderOptions() render.Options {
	return render.Options{Width: o.Width, Height: o.Height, Title: o.Title}
}

// Extension returns the file extension of the format.
func (o Options) Extension() string {
	if o.Format == "" {
		return string(FormatPNG)
	}
	return string(o.Format)
}
