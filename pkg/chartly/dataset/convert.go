// Package dataset validates raw rows and builds chart datasets from them.
package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

// ParseNumber parses a trimmed field as a finite float64.
// Blank, non-numeric, NaN and infinite inputs are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Label returns the trimmed label of row i, or the schema placeholder when blank.
func Label(schema models.Schema, row models.Row, i int) string {
	label := strings.TrimSpace(row.Field(0))
	if label == "" {
		return schema.PlaceholderFor(i)
	}
	return label
}

// Values parses the numeric columns of a row in column order.
// ok is false when any required column fails to parse or any parsed value
// is below its column bound.
func Values(schema models.Schema, row models.Row) (values []float64, ok bool) {
	for col, c := range schema.Columns {
		if !c.Numeric {
			continue
		}
		v, parsed := ParseNumber(row.Field(col))
		if parsed && !c.Accepts(v) {
			return nil, false
		}
		if !parsed {
			if c.Required {
				return nil, false
			}
			v = c.Default
		}
		values = append(values, v)
	}
	return values, true
}

// Convert turns rows into entries. Rows with an unparsable required field or an
// out of bound value (non-positive pie slices, negative radar scores) are skipped;
// skipped rows still consume their position so placeholders and category X stay stable.
func Convert(schema models.Schema, rows []models.Row) []models.Entry {
	entries := make([]models.Entry, 0, len(rows))
	for i, row := range rows {
		values, ok := Values(schema, row)
		if !ok {
			continue
		}
		entries = append(entries, entry(schema.Kind, i, Label(schema, row, i), values))
	}
	return entries
}

func entry(kind models.Kind, i int, label string, v []float64) models.Entry {
	e := models.Entry{Index: i, Label: label, X: float64(i)}
	switch kind {
	case models.KindScatter:
		e.X, e.Y = v[0], v[1]
	case models.KindBubble:
		e.X, e.Y = v[0], v[1]
		e.Size = math.Sqrt(math.Abs(v[1]))
	case models.KindCandlestick:
		e.Open, e.High, e.Low, e.Close = v[0], v[1], v[2], v[3]
		e.Y = e.Close
	case models.KindBarLine:
		e.Y, e.Line = v[0], v[1]
	default:
		e.Y = v[0]
	}
	return e
}
