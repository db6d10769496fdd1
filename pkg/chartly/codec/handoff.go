package codec

import (
	"strings"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

const handoffSeparator = "|"

// EncodeHandoff serializes rows for a screen switch, one "a|b|..." item per row.
// It returns nil when there are no rows.
func EncodeHandoff(rows []models.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = strings.Join(row, handoffSeparator)
	}
	return out
}

// DecodeHandoff rebuilds rows for the destination schema. Each item must split into
// exactly schema.Width() fields; other items are dropped. When the schema absorbs
// the tail, the last field keeps any extra separators instead.
func DecodeHandoff(schema models.Schema, items []string) []models.Row {
	limit := -1
	if schema.HandoffAbsorbsTail {
		limit = schema.Width()
	}
	var rows []models.Row
	for _, item := range items {
		parts := strings.SplitN(item, handoffSeparator, limit)
		if len(parts) != schema.Width() {
			continue
		}
		rows = append(rows, models.Row(parts))
	}
	return rows
}
