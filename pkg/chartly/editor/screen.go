package editor

import "github.com/ukaji3/chartly-go/pkg/chartly/models"

// ChartScreen is what the navigation shell needs from a chart screen.
type ChartScreen interface {
	// Kind returns the chart kind shown by the screen.
	Kind() models.Kind
	// Collect serializes the current rows as hand-off items, or nil when empty.
	Collect() []string
	// Receive replaces the rows with a hand-off payload and refreshes.
	// A nil payload leaves the screen untouched.
	Receive(items []string) int
	// Chart returns the last rendered chart data, or nil.
	Chart() *models.ChartData
}

var _ ChartScreen = (*Editor)(nil)
