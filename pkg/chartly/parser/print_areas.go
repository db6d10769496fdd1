package parser

import (
	"strings"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
	"github.com/xuri/excelize/v2"
)

// DataRangeName is the defined name marking the rows of an exported chart.
const DataRangeName = "Chartly_Data"

const printAreaName = "_xlnm.Print_Area"

// ExtractDataAreas returns the declared data area of each sheet.
// A Chartly_Data defined name wins over the sheet print area; only the first
// range of a multi-range reference is used.
func ExtractDataAreas(f *excelize.File) map[string]models.DataArea {
	dataNames := make(map[string]models.DataArea)
	printAreas := make(map[string]models.DataArea)

	for _, dn := range f.GetDefinedName() {
		var target map[string]models.DataArea
		switch {
		case strings.EqualFold(dn.Name, DataRangeName):
			target = dataNames
		case strings.EqualFold(dn.Name, printAreaName):
			target = printAreas
		default:
			continue
		}

		sheetName, areas := parseAreaReference(dn.RefersTo)
		if sheetName == "" && dn.Scope != "" && !strings.EqualFold(dn.Scope, "Workbook") {
			sheetName = dn.Scope
		}
		if sheetName == "" || len(areas) == 0 {
			continue
		}
		if _, seen := target[sheetName]; !seen {
			target[sheetName] = areas[0]
		}
	}

	for sheetName, area := range dataNames {
		printAreas[sheetName] = area
	}
	return printAreas
}

// DataAreaReference formats an absolute reference such as 'Data'!$A$1:$B$5.
func DataAreaReference(sheetName string, area models.DataArea) (string, error) {
	start, err := excelize.CoordinatesToCellName(area.C1, area.R1, true)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(area.C2, area.R2, true)
	if err != nil {
		return "", err
	}
	return QuoteSheetName(sheetName) + "!" + start + ":" + end, nil
}

// QuoteSheetName quotes a sheet name for use in a formula reference.
func QuoteSheetName(sheetName string) string {
	return "'" + strings.ReplaceAll(sheetName, "'", "''") + "'"
}

// UnquoteSheetName reverses QuoteSheetName. Unquoted names are returned as is.
func UnquoteSheetName(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

// parseAreaReference parses a defined name reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10
func parseAreaReference(ref string) (string, []models.DataArea) {
	var areas []models.DataArea

	// Split by comma for multiple areas
	parts := strings.Split(ref, ",")

	var sheetName string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		// Split by ! to separate sheet name and range
		if idx := strings.LastIndex(part, "!"); idx >= 0 {
			sheet := part[:idx]
			rangeStr := part[idx+1:]

			sheet = UnquoteSheetName(sheet)
			if sheetName == "" {
				sheetName = sheet
			}

			if area := parseRangeToArea(rangeStr); area != nil {
				areas = append(areas, *area)
			}
		}
	}

	return sheetName, areas
}

// parseRangeToArea parses a range string like $A$1:$D$10 to DataArea.
func parseRangeToArea(rangeStr string) *models.DataArea {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	// Split by :
	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &models.DataArea{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}
