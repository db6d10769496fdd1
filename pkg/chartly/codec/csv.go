// Package codec converts editor rows to and from CSV text, hand-off payloads and workbooks.
package codec

import (
	"bufio"
	"io"
	"strings"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

const csvSeparator = ","

// EncodeCSV writes one line per row in UI column order. Rows are not validated and
// fields are written verbatim; embedded commas are not escaped.
func EncodeCSV(w io.Writer, schema models.Schema, rows []models.Row) error {
	bw := bufio.NewWriter(w)
	fields := make([]string, schema.Width())
	for _, row := range rows {
		for i := range fields {
			fields[i] = row.Field(i)
		}
		if _, err := bw.WriteString(strings.Join(fields, csvSeparator)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeCSV reads rows from comma separated lines. Lines with fewer columns than the
// schema needs are skipped and counted; extra columns are ignored. On a read error
// the rows and count gathered so far are returned with it.
func DecodeCSV(r io.Reader, schema models.Schema) (rows []models.Row, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		row, ok := decodeCSVLine(scanner.Text(), schema)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return rows, skipped, err
	}
	return rows, skipped, nil
}

func decodeCSVLine(line string, schema models.Schema) (models.Row, bool) {
	cols := strings.Split(strings.TrimSpace(line), csvSeparator)
	if len(cols) < schema.MinCSVColumns() {
		return nil, false
	}
	row := models.NewRow(schema.Width())
	for i := range row {
		row[i] = strings.TrimSpace(cols[schema.CSVColumn(i)])
	}
	return row, true
}
