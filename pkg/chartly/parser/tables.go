package parser

import (
	"fmt"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
	"github.com/xuri/excelize/v2"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	// DensityMin is the minimum share of non-empty cells in the bounding box.
	DensityMin float64
	// CoverageMin is the minimum share of bounding box rows holding any data.
	CoverageMin      float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		CoverageMin:      0.2,
		MinNonemptyCells: 2,
	}
}

// DetectDataArea finds the table-like region of a sheet.
// It reports false when the sheet is empty or too sparse to hold chart rows.
func DetectDataArea(f *excelize.File, sheetName string, params TableDetectionParams) (models.DataArea, bool, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return models.DataArea{}, false, err
	}

	if len(rows) == 0 {
		return models.DataArea{}, false, nil
	}

	// Find the bounding box of non-empty cells
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return models.DataArea{}, false, nil
	}

	// Calculate density
	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	nonEmptyCells := countNonEmptyCells(rows, minRow, maxRow, minCol, maxCol)

	if nonEmptyCells < params.MinNonemptyCells {
		return models.DataArea{}, false, nil
	}

	density := float64(nonEmptyCells) / float64(totalCells)
	if density < params.DensityMin {
		return models.DataArea{}, false, nil
	}

	coverage := float64(countNonEmptyRows(rows, minRow, maxRow, minCol, maxCol)) / float64(maxRow-minRow+1)
	if coverage < params.CoverageMin {
		return models.DataArea{}, false, nil
	}

	return models.DataArea{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, true, nil
}

// FormatArea converts an area to Excel range notation such as "A1:D10".
func FormatArea(area models.DataArea) (string, error) {
	startCell, err := excelize.CoordinatesToCellName(area.C1, area.R1)
	if err != nil {
		return "", err
	}
	endCell, err := excelize.CoordinatesToCellName(area.C2, area.R2)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", startCell, endCell), nil
}

// findDataBounds returns the 0-based bounding box of non-empty cells,
// or minRow -1 for a blank sheet.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow, minCol, maxCol = -1, -1, -1, -1
	for r, row := range rows {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 {
				minRow, maxRow, minCol, maxCol = r, r, c, c
				continue
			}
			maxRow = r
			minCol, maxCol = min(minCol, c), max(maxCol, c)
		}
	}
	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows [][]string, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if row[colIdx] != "" {
				count++
			}
		}
	}
	return count
}

// countNonEmptyRows counts rows with at least one non-empty cell within bounds.
func countNonEmptyRows(rows [][]string, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		if countNonEmptyCells(rows, rowIdx, rowIdx, minCol, maxCol) > 0 {
			count++
		}
	}
	return count
}
