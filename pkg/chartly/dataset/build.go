package dataset

import (
	"errors"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

// ErrNoValidData is returned when no row survives validation.
var ErrNoValidData = errors.New("no valid data")

// Palette used for slices, radar areas and scatter points.
var Palette = []string{
	"#FC00FF", "#00DBDE", "#7E57C2", "#26A69A", "#FFA726",
	"#EF5350", "#42A5F5", "#9CCC65", "#AB47BC", "#FFCA28",
}

// BarGradient is the start/end color pair used for bars.
var BarGradient = []string{"#FC00FF", "#00DBDE"}

// LineColor is the overlay line color of bar_line charts.
const LineColor = "#D1C4E9"

// Build converts rows into chart data. The result is rebuilt from scratch on each call.
func Build(schema models.Schema, rows []models.Row) (*models.ChartData, error) {
	entries := Convert(schema, rows)
	if len(entries) == 0 {
		return nil, ErrNoValidData
	}
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	data := &models.ChartData{
		Kind:   schema.Kind,
		Title:  schema.Kind.Title(),
		Labels: labels,
	}
	primary := models.Dataset{
		Name:    schema.DatasetName,
		Entries: entries,
		Style:   styleFor(schema.Kind),
	}
	data.Datasets = append(data.Datasets, primary)
	if schema.Kind == models.KindBarLine {
		data.Datasets = append(data.Datasets, models.Dataset{
			Name:    "Line",
			Entries: entries,
			Style:   models.Style{Colors: []string{LineColor}, LineWidth: 2},
		})
	}
	return data, nil
}

func styleFor(k models.Kind) models.Style {
	switch k {
	case models.KindBar, models.KindHorizontalBar, models.KindBarLine:
		return models.Style{Gradient: BarGradient, Colors: BarGradient[:1]}
	case models.KindLine:
		return models.Style{Colors: []string{"#7E57C2"}, LineWidth: 2}
	case models.KindSmoothedLine:
		return models.Style{Colors: []string{"#7E57C2"}, LineWidth: 2, Smooth: true}
	case models.KindPie:
		return models.Style{Colors: Palette}
	case models.KindDoughnut:
		return models.Style{Colors: Palette, HoleRatio: 0.5}
	case models.KindRadar:
		return models.Style{Colors: []string{"#00DBDE"}, LineWidth: 2}
	case models.KindCandlestick:
		// rising, falling
		return models.Style{Colors: []string{"#26A69A", "#EF5350"}, LineWidth: 1}
	default:
		return models.Style{Colors: Palette}
	}
}
