// Package sample generates random preview rows for every chart kind.
package sample

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

var radarAxes = []string{"A", "B", "C", "D", "E", "F"}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Rows returns randomized rows for kind in the kind's column order.
func Rows(kind models.Kind, rng *rand.Rand) ([]models.Row, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	scaled := func(n int, scale float64, label func(int) string) []models.Row {
		rows := make([]models.Row, n)
		for i := range rows {
			rows[i] = models.Row{label(i), num(rng.Float64() * scale)}
		}
		return rows
	}
	empty := func(int) string { return "" }

	switch kind {
	case models.KindLine, models.KindSmoothedLine:
		return scaled(10, 100, empty), nil
	case models.KindBar, models.KindHorizontalBar:
		return scaled(7, 80, empty), nil
	case models.KindPie, models.KindDoughnut:
		rows := scaled(5, 30, func(i int) string { return strconv.Itoa(i + 1) })
		// slices must stay positive after rounding to two decimals.
		for _, row := range rows {
			if row[1] == num(0) {
				row[1] = num(0.01)
			}
		}
		return rows, nil
	case models.KindRadar:
		return scaled(len(radarAxes), 100, func(i int) string { return radarAxes[i] }), nil

	case models.KindScatter:
		points := make([][2]float64, 20)
		for i := range points {
			points[i] = [2]float64{rng.Float64() * 10, rng.Float64() * 10}
		}
		slices.SortFunc(points, func(a, b [2]float64) int {
			switch {
			case a[0] < b[0]:
				return -1
			case a[0] > b[0]:
				return 1
			}
			return 0
		})
		rows := make([]models.Row, len(points))
		for i, p := range points {
			rows[i] = models.Row{"", num(p[0]), num(p[1])}
		}
		return rows, nil

	case models.KindBubble:
		rows := make([]models.Row, 10)
		for i := range rows {
			rows[i] = models.Row{"", strconv.Itoa(i), num(rng.Float64() * 50)}
		}
		return rows, nil

	case models.KindCandlestick:
		rows := make([]models.Row, 8)
		for i := range rows {
			open := rng.Float64()*80 + 20
			closing := rng.Float64()*80 + 20
			high := max(open, closing) + rng.Float64()*10
			low := min(open, closing) - rng.Float64()*10
			rows[i] = models.Row{"", num(open), num(high), num(low), num(closing)}
		}
		return rows, nil

	case models.KindBarLine:
		rows := make([]models.Row, 10)
		for i := range rows {
			rows[i] = models.Row{"", num(rng.Float64() * 120), num(rng.Float64() * 120)}
		}
		return rows, nil
	}
	return nil, fmt.Errorf("no sample for kind %q", kind)
}
