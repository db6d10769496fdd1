// Package output serializes chart data, workbooks and schemas to JSON.
package output

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ChartToJSON serializes chart data.
func ChartToJSON(data *models.ChartData, pretty bool) ([]byte, error) {
	return ToJSON(data, pretty)
}

// WorkbookToJSON serializes rows read from a workbook.
func WorkbookToJSON(book *models.Workbook, pretty bool) ([]byte, error) {
	return ToJSON(book, pretty)
}

// KindsToJSON lists the schema of every kind in navigation order.
func KindsToJSON(pretty bool) ([]byte, error) {
	schemas := make([]models.Schema, 0, len(models.AllKinds))
	for _, k := range models.AllKinds {
		schemas = append(schemas, models.MustSchema(k))
	}
	return ToJSON(schemas, pretty)
}

// SetField sets a value at a dotted path of a JSON document, e.g. "meta.skipped".
func SetField(doc []byte, path string, value any) ([]byte, error) {
	return sjson.SetBytes(doc, path, value)
}

// Field returns the raw value at a dotted path, or "" when missing.
func Field(doc []byte, path string) string {
	return gjson.GetBytes(doc, path).String()
}
