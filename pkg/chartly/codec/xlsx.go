package codec

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/chartly-go/pkg/chartly/dataset"
	"github.com/ukaji3/chartly-go/pkg/chartly/models"
	"github.com/ukaji3/chartly-go/pkg/chartly/parser"
)

// DefaultSheetName is the sheet written by WriteWorkbook.
const DefaultSheetName = "Data"

var (
	// ErrNoWorkbookData indicates the workbook sheet holds no rows.
	ErrNoWorkbookData = errors.New("no chart data in workbook")
	// ErrUnknownKind indicates the chart kind could not be inferred.
	ErrUnknownKind = errors.New("cannot infer chart kind")
)

// WorkbookOptions configures WriteWorkbook.
type WorkbookOptions struct {
	// SheetName defaults to DefaultSheetName.
	SheetName string
	// Title is the chart title; defaults to the kind title.
	Title string
	// NoChart skips the native chart.
	NoChart bool
	// Width and Height are the chart size in pixels.
	Width, Height uint
}

// ReadOptions configures ReadWorkbook.
type ReadOptions struct {
	// Kind forces the chart kind instead of inferring it.
	Kind models.Kind
	// SheetName selects the sheet. By default the sheet holding a
	// Chartly_Data name is used, else the active sheet.
	SheetName string
	// BookName is recorded in the result.
	BookName string
}

// WriteWorkbook writes a header row followed by the rows, marks them with the
// Chartly_Data defined name and adds a native chart of the matching type.
// Numeric fields that parse are stored as numbers, anything else verbatim.
func WriteWorkbook(w io.Writer, schema models.Schema, rows []models.Row, opts WorkbookOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := opts.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, schema.Width())
	for i, col := range schema.Columns {
		header[i] = col.Name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, schema.Width())
		for c, col := range schema.Columns {
			field := row.Field(c)
			if v, ok := dataset.ParseNumber(field); ok && col.Numeric {
				values[c] = v
				continue
			}
			values[c] = field
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	area := models.DataArea{R1: 1, C1: 1, R2: len(rows) + 1, C2: schema.Width()}
	ref, err := parser.DataAreaReference(sheet, area)
	if err != nil {
		return err
	}
	if err := f.SetDefinedName(&excelize.DefinedName{Name: parser.DataRangeName, RefersTo: ref}); err != nil {
		return fmt.Errorf("define data range: %w", err)
	}

	if !opts.NoChart && len(rows) > 0 {
		if err := addChart(f, sheet, schema, len(rows), opts); err != nil {
			return fmt.Errorf("add chart: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func addChart(f *excelize.File, sheet string, schema models.Schema, n int, opts WorkbookOptions) error {
	column := func(c int) string {
		ref, _ := parser.DataAreaReference(sheet, models.DataArea{R1: 2, C1: c + 1, R2: n + 1, C2: c + 1})
		return ref
	}
	name := func(c int) string {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1, true)
		return parser.QuoteSheetName(sheet) + "!" + cell
	}
	series := func(c int) excelize.ChartSeries {
		return excelize.ChartSeries{Name: name(c), Categories: column(0), Values: column(c)}
	}

	title := opts.Title
	if title == "" {
		title = schema.Kind.Title()
	}
	width, height := opts.Width, opts.Height
	if width == 0 || height == 0 {
		width, height = 480, 320
	}
	chart := &excelize.Chart{
		Title:     []excelize.RichTextRun{{Text: title}},
		Dimension: excelize.ChartDimension{Width: width, Height: height},
		Series:    []excelize.ChartSeries{series(1)},
	}
	var combo []*excelize.Chart

	switch schema.Kind {
	case models.KindBar:
		chart.Type = excelize.Col
	case models.KindHorizontalBar:
		chart.Type = excelize.Bar
	case models.KindLine:
		chart.Type = excelize.Line
	case models.KindSmoothedLine:
		chart.Type = excelize.Line
		chart.Series[0].Line.Smooth = true
	case models.KindPie:
		chart.Type = excelize.Pie
	case models.KindDoughnut:
		chart.Type = excelize.Doughnut
		chart.HoleSize = 50
	case models.KindRadar:
		chart.Type = excelize.Radar
	case models.KindScatter, models.KindBubble:
		chart.Type = excelize.Scatter
		chart.Series = []excelize.ChartSeries{{Name: name(0), Categories: column(1), Values: column(2)}}
		if schema.Kind == models.KindBubble {
			chart.Type = excelize.Bubble
			chart.Series[0].Sizes = column(2)
		}
	case models.KindCandlestick:
		chart.Type = excelize.StockOpenHighLowClose
		chart.Series = []excelize.ChartSeries{series(1), series(2), series(3), series(4)}
	case models.KindBarLine:
		chart.Type = excelize.Col
		combo = append(combo, &excelize.Chart{
			Type:   excelize.Line,
			Series: []excelize.ChartSeries{series(2)},
		})
	default:
		return fmt.Errorf("unsupported kind %q", schema.Kind)
	}

	anchor, err := excelize.CoordinatesToCellName(schema.Width()+2, 1)
	if err != nil {
		return err
	}
	return f.AddChart(sheet, anchor, chart, combo...)
}

// ReadWorkbook reads chart rows back from an xlsx stream.
//
// The data area is the Chartly_Data defined name, else the sheet print area,
// else the detected table bounds. The kind is opts.Kind when set, else the
// embedded chart kind when it agrees with the header row, else the first kind
// whose column names match the header row.
func ReadWorkbook(r io.Reader, opts ReadOptions) (*models.Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	areas := parser.ExtractDataAreas(f)
	sheet := opts.SheetName
	if sheet == "" {
		sheet = defaultSheet(f)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrNoWorkbookData)
	}

	area, ok := areas[sheet]
	if !ok {
		area, ok, err = parser.DetectDataArea(f, sheet, parser.DefaultTableParams())
		if err != nil {
			return nil, fmt.Errorf("detect data area: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("sheet %q: %w", sheet, ErrNoWorkbookData)
		}
	}

	var charts []models.ChartInfo
	if zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		if found, err := parser.ExtractCharts(zr); err == nil {
			charts = found[sheet]
		}
	}

	headerRows, err := parser.ExtractRows(f, sheet, models.DataArea{R1: area.R1, C1: area.C1, R2: area.R1, C2: area.C2}, area.C2-area.C1+1)
	if err != nil {
		return nil, err
	}
	var header models.Row
	if len(headerRows) > 0 {
		header = headerRows[0]
	}

	kind, err := resolveKind(opts.Kind, header, charts)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	schema := models.MustSchema(kind)

	book := &models.Workbook{
		BookName:  opts.BookName,
		SheetName: sheet,
		Kind:      kind,
		Area:      area,
		HasHeader: matchesHeader(schema, header),
	}
	if len(charts) > 0 {
		book.Title = charts[0].Title
	}

	body := area
	if book.HasHeader {
		body.R1++
	}
	if body.R1 <= body.R2 {
		book.Rows, err = parser.ExtractRows(f, sheet, body, schema.Width())
		if err != nil {
			return nil, err
		}
	}
	for _, row := range book.Rows {
		for c, col := range schema.Columns {
			if col.Numeric {
				row[c] = parser.CellValue(row[c])
			}
		}
	}
	return book, nil
}

func defaultSheet(f *excelize.File) string {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, parser.DataRangeName) {
			continue
		}
		if i := strings.LastIndex(dn.RefersTo, "!"); i > 0 {
			return parser.UnquoteSheetName(dn.RefersTo[:i])
		}
	}
	return f.GetSheetName(f.GetActiveSheetIndex())
}

func resolveKind(forced models.Kind, header models.Row, charts []models.ChartInfo) (models.Kind, error) {
	if forced != "" {
		if _, ok := models.SchemaFor(forced); !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownKind, forced)
		}
		return forced, nil
	}

	var candidates []models.Kind
	for _, k := range models.AllKinds {
		if matchesHeader(models.MustSchema(k), header) {
			candidates = append(candidates, k)
		}
	}

	for _, chart := range charts {
		if len(candidates) == 0 {
			return chart.Kind, nil
		}
		for _, k := range candidates {
			if k == chart.Kind {
				return k, nil
			}
		}
	}
	if len(candidates) > 0 {
		return candidates[0], nil
	}
	return "", ErrUnknownKind
}

func matchesHeader(schema models.Schema, header models.Row) bool {
	if len(header) < schema.Width() {
		return false
	}
	for i, col := range schema.Columns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col.Name) {
			return false
		}
	}
	return true
}
