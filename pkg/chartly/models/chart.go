package models

// Entry is a validated numeric data point derived from a Row.
type Entry struct {
	// Index is the 0-based position of the source row.
	Index int `json:"index"`
	// Label is the row label, or its positional placeholder when blank.
	Label string `json:"label"`
	// X is the parsed x value for scatter and bubble, else Index.
	X float64 `json:"x"`
	// Y is the primary value. For candlesticks it equals Close.
	Y float64 `json:"y"`
	// Size is the bubble radius (bubble only).
	Size float64 `json:"size,omitempty"`
	// Line is the secondary line value (bar_line only).
	Line float64 `json:"line,omitempty"`
	// Open is the opening price (candlestick only).
	Open float64 `json:"open,omitempty"`
	// High is the highest price (candlestick only).
	High float64 `json:"high,omitempty"`
	// Low is the lowest price (candlestick only).
	Low float64 `json:"low,omitempty"`
	// Close is the closing price (candlestick only).
	Close float64 `json:"close,omitempty"`
}

// Style holds dataset styling attributes.
type Style struct {
	// Colors are hex colors ("#RRGGBB") cycled over entries or slices.
	Colors []string `json:"colors,omitempty"`
	// Gradient is an optional start/end color pair for bars.
	Gradient []string `json:"gradient,omitempty"`
	// LineWidth is the stroke width in points.
	LineWidth float64 `json:"line_width,omitempty"`
	// Smooth requests cubic interpolation between points.
	Smooth bool `json:"smooth,omitempty"`
	// HoleRatio is the inner radius fraction for doughnuts.
	HoleRatio float64 `json:"hole_ratio,omitempty"`
}

// Dataset is a named, styled collection of entries.
type Dataset struct {
	// Name is the legend name.
	Name string `json:"name"`
	// Entries are the validated points in row order.
	Entries []Entry `json:"entries"`
	// Style is the dataset styling.
	Style Style `json:"style"`
}

// ChartData is everything a renderer needs for one refresh.
type ChartData struct {
	// Kind is the chart type.
	Kind Kind `json:"kind"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// Labels are the category labels in entry order.
	Labels []string `json:"labels"`
	// Datasets holds one dataset, or two for bar_line.
	Datasets []Dataset `json:"datasets"`
}

// Len returns the number of entries of the primary dataset.
func (c *ChartData) Len() int {
	if c == nil || len(c.Datasets) == 0 {
		return 0
	}
	return len(c.Datasets[0].Entries)
}

// Primary returns the first dataset.
func (c *ChartData) Primary() Dataset {
	if c == nil || len(c.Datasets) == 0 {
		return Dataset{}
	}
	return c.Datasets[0]
}
