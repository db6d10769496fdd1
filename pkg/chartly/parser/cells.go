package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
	"github.com/xuri/excelize/v2"
)

// ExtractRows reads the raw, trimmed cells inside area as rows of width fields.
// Columns beyond area are ignored and missing cells read as "".
// Rows whose fields are all blank are skipped.
func ExtractRows(f *excelize.File, sheetName string, area models.DataArea, width int) ([]models.Row, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	var result []models.Row
	for rowIdx, cells := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		if rowNum < area.R1 || rowNum > area.R2 {
			continue
		}

		row := models.NewRow(width)
		hasData := false
		for i := range row {
			colIdx := area.C1 - 1 + i
			if colIdx >= len(cells) || !area.Contains(colIdx+1, rowNum) {
				continue
			}
			row[i] = strings.TrimSpace(cells[colIdx])
			if row[i] != "" {
				hasData = true
			}
		}

		if hasData {
			result = append(result, row)
		}
	}

	return result, nil
}

// CellValue normalizes a raw numeric cell value for the editor.
// Numbers are rendered in their shortest form, e.g. "200.50" becomes "200.5";
// anything else is returned trimmed.
func CellValue(s string) string {
	s = strings.TrimSpace(s)
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}
