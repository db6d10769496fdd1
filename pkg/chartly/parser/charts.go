package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

// ChartTypeMap maps OOXML plot element tags to chart kinds.
// Bar elements are refined by their barDir and line elements by smoothing.
var ChartTypeMap = map[string]models.Kind{
	"lineChart":     models.KindLine,
	"line3DChart":   models.KindLine,
	"barChart":      models.KindBar,
	"bar3DChart":    models.KindBar,
	"pieChart":      models.KindPie,
	"pie3DChart":    models.KindPie,
	"ofPieChart":    models.KindPie,
	"doughnutChart": models.KindDoughnut,
	"scatterChart":  models.KindScatter,
	"bubbleChart":   models.KindBubble,
	"radarChart":    models.KindRadar,
	"stockChart":    models.KindCandlestick,
}

// ExtractCharts returns the charts embedded in each sheet.
// Charts with unsupported plot types are omitted.
func ExtractCharts(r *zip.Reader) (map[string][]models.ChartInfo, error) {
	sheetCharts, err := getSheetChartMap(r)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.ChartInfo)
	for sheetName, chartPaths := range sheetCharts {
		for _, p := range chartPaths {
			data, err := readZipFile(r, p)
			if err != nil || data == nil {
				continue
			}
			if info := parseChart(data); info.Kind != "" {
				result[sheetName] = append(result[sheetName], info)
			}
		}
	}
	return result, nil
}

// getSheetChartMap returns a mapping of sheet names to their chart part paths.
func getSheetChartMap(r *zip.Reader) (map[string][]string, error) {
	result := make(map[string][]string)

	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		return result, err
	}

	sheetsInfo := parseWorkbookSheets(workbookXML)
	if len(sheetsInfo) == 0 {
		return result, nil
	}

	wbRelsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil || wbRelsXML == nil {
		return result, err
	}

	for sheetName, sheetPath := range parseWorkbookRels(wbRelsXML, sheetsInfo) {
		sheetRelsXML, err := readZipFile(r, relsPathFor(sheetPath))
		if err != nil || sheetRelsXML == nil {
			continue
		}

		drawingPath := findDrawing(sheetRelsXML, sheetPath)
		if drawingPath == "" {
			continue
		}
		if paths := getChartPathsFromDrawing(r, drawingPath); len(paths) > 0 {
			result[sheetName] = paths
		}
	}

	return result, nil
}

// getChartPathsFromDrawing resolves the chart parts referenced by a drawing,
// in drawing order.
func getChartPathsFromDrawing(r *zip.Reader, drawingPath string) []string {
	drawingXML, err := readZipFile(r, drawingPath)
	if err != nil || drawingXML == nil {
		return nil
	}

	var rIDs []string
	eachStart(drawingXML, "chart", func(se xml.StartElement) {
		if id := attrValue(se, "id"); id != "" {
			rIDs = append(rIDs, id)
		}
	})
	if len(rIDs) == 0 {
		return nil
	}

	relsXML, err := readZipFile(r, relsPathFor(drawingPath))
	if err != nil || relsXML == nil {
		return nil
	}
	targets := parseDrawingRels(relsXML, drawingPath)

	var result []string
	for _, rID := range rIDs {
		if target, ok := targets[rID]; ok {
			result = append(result, target)
		}
	}
	return result
}

// parseChart reads the plot types and the title of a chart part.
func parseChart(data []byte) models.ChartInfo {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var info models.ChartInfo
	var kinds []models.Kind
	horizontal, smooth := false, false
	inPlotArea, inTitle := false, false

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch name := t.Name.Local; {
			case name == "plotArea":
				inPlotArea = true
			case name == "title" && !inPlotArea:
				inTitle = true
			case name == "t" && inTitle:
				text, err := readElementText(decoder)
				if err != nil {
					return info
				}
				info.Title += text
			case !inPlotArea:
			case name == "barDir":
				horizontal = attrValue(t, "val") == "bar"
			case name == "smooth":
				v := attrValue(t, "val")
				smooth = smooth || v == "1" || v == "true"
			default:
				if k, ok := ChartTypeMap[name]; ok {
					kinds = append(kinds, k)
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "plotArea":
				inPlotArea = false
			case "title":
				inTitle = false
			}
		}
	}

	info.Kind = resolveKind(kinds, horizontal, smooth)
	return info
}

func resolveKind(kinds []models.Kind, horizontal, smooth bool) models.Kind {
	if len(kinds) == 0 {
		return ""
	}
	hasBar, hasLine := false, false
	for _, k := range kinds {
		switch k {
		case models.KindBar:
			hasBar = true
		case models.KindLine:
			hasLine = true
		}
	}
	switch {
	case hasBar && hasLine:
		return models.KindBarLine
	case hasBar && horizontal:
		return models.KindHorizontalBar
	case kinds[0] == models.KindLine && smooth:
		return models.KindSmoothedLine
	}
	return kinds[0]
}

func attrValue(se xml.StartElement, local string) string {
	for _, attr := range se.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}
