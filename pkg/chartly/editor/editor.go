// Package editor implements the tabular row editor behind every chart screen
// and the shell that navigates between them.
package editor

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/chartly-go/pkg/chartly/codec"
	"github.com/ukaji3/chartly-go/pkg/chartly/dataset"
	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

var (
	// ErrOutOfRange indicates a row or column index outside the table.
	ErrOutOfRange = errors.New("cell index out of range")
	// ErrNoChart indicates an export was requested before a successful refresh.
	ErrNoChart = errors.New("no chart to export")
)

// Editor owns the ordered rows of one chart screen. It is not safe for
// concurrent use.
type Editor struct {
	schema   models.Schema
	rows     []models.Row
	chart    *models.ChartData
	notifier Notifier
}

// New returns an editor for kind holding a single empty row.
// A nil notifier discards notices.
func New(kind models.Kind, notifier Notifier) (*Editor, error) {
	schema, ok := models.SchemaFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown chart kind %q", kind)
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	e := &Editor{schema: schema, notifier: notifier}
	e.AddRow()
	return e, nil
}

// Kind returns the chart kind.
func (e *Editor) Kind() models.Kind {
	return e.schema.Kind
}

// Schema returns the column schema.
func (e *Editor) Schema() models.Schema {
	return e.schema
}

// Len returns the number of rows.
func (e *Editor) Len() int {
	return len(e.rows)
}

// AddRow appends an empty row and returns its index.
func (e *Editor) AddRow() int {
	e.rows = append(e.rows, models.NewRow(e.schema.Width()))
	return len(e.rows) - 1
}

// AddRows appends n empty rows. Non-positive n is a no-op.
func (e *Editor) AddRows(n int) {
	for i := 0; i < n; i++ {
		e.AddRow()
	}
}

// AddRowsFromInput handles the batch add dialog. text must be a positive
// integer; otherwise the invalid number notice is emitted and false returned.
func (e *Editor) AddRowsFromInput(text string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 {
		e.notifier.Notify(MsgInvalidNumber)
		return false
	}
	e.AddRows(n)
	return true
}

// SetField sets one cell.
func (e *Editor) SetField(row, col int, value string) error {
	if row < 0 || row >= len(e.rows) || col < 0 || col >= e.schema.Width() {
		return fmt.Errorf("set (%d, %d): %w", row, col, ErrOutOfRange)
	}
	e.rows[row][col] = value
	return nil
}

// SetRow replaces the fields of one row, padding or truncating to the schema width.
func (e *Editor) SetRow(row int, fields ...string) error {
	if row < 0 || row >= len(e.rows) {
		return fmt.Errorf("set row %d: %w", row, ErrOutOfRange)
	}
	r := models.NewRow(e.schema.Width())
	copy(r, fields)
	e.rows[row] = r
	return nil
}

// RemoveRow deletes one row.
func (e *Editor) RemoveRow(row int) error {
	if row < 0 || row >= len(e.rows) {
		return fmt.Errorf("remove row %d: %w", row, ErrOutOfRange)
	}
	e.rows = append(e.rows[:row], e.rows[row+1:]...)
	return nil
}

// Rows returns a copy of the rows.
func (e *Editor) Rows() []models.Row {
	return models.CloneRows(e.rows)
}

// Clear removes every row and the chart.
func (e *Editor) Clear() {
	e.rows = nil
	e.chart = nil
}

// Refresh rebuilds the chart data from the rows. With no valid row the chart
// is cleared, a single notice is emitted and nil is returned.
func (e *Editor) Refresh() *models.ChartData {
	data, err := dataset.Build(e.schema, e.rows)
	if err != nil {
		e.chart = nil
		e.notifier.Notify(MsgNoValidData)
		return nil
	}
	e.chart = data
	e.notifier.Notify(MsgRefreshed)
	return data
}

// Chart returns the chart data of the last successful refresh.
func (e *Editor) Chart() *models.ChartData {
	return e.chart
}

// ImportCSV replaces the rows with the lines of r. When at least one line
// was accepted the chart is refreshed; otherwise the table is left empty and
// the chart untouched.
func (e *Editor) ImportCSV(r io.Reader) (int, error) {
	rows, _, err := codec.DecodeCSV(r, e.schema)
	if err != nil {
		return 0, fmt.Errorf("import csv: %w", err)
	}
	e.rows = rows
	if len(rows) == 0 {
		e.notifier.Notify(MsgCSVNoValidData)
		return 0, nil
	}
	e.Refresh()
	e.notifier.Notify(MsgImported(len(rows)))
	return len(rows), nil
}

// ExportCSV writes every row, valid or not.
func (e *Editor) ExportCSV(w io.Writer) error {
	return codec.EncodeCSV(w, e.schema, e.rows)
}

// ExportChart passes the current chart to write, which returns the written
// path. Without a chart the no chart notice is emitted and ErrNoChart returned.
func (e *Editor) ExportChart(write func(*models.ChartData) (string, error)) (string, error) {
	if e.chart == nil {
		e.notifier.Notify(MsgNoChart)
		return "", ErrNoChart
	}
	return e.export(func() (string, error) { return write(e.chart) })
}

// ExportRows passes every row to write, which returns the written path.
func (e *Editor) ExportRows(write func(models.Schema, []models.Row) (string, error)) (string, error) {
	return e.export(func() (string, error) { return write(e.schema, e.Rows()) })
}

func (e *Editor) export(write func() (string, error)) (string, error) {
	path, err := write()
	if err != nil {
		e.notifier.Notify(MsgExportFailed)
		return "", err
	}
	e.notifier.Notify(MsgExported(path))
	return path, nil
}

// Load replaces the rows with a copy of rows and refreshes.
func (e *Editor) Load(rows []models.Row) *models.ChartData {
	e.rows = models.CloneRows(rows)
	return e.Refresh()
}

// Collect serializes the rows for a screen switch.
func (e *Editor) Collect() []string {
	return codec.EncodeHandoff(e.rows)
}

// Receive replaces the rows with the hand-off items that fit the schema and
// refreshes. It returns the number of rows received.
func (e *Editor) Receive(items []string) int {
	if items == nil {
		return 0
	}
	e.rows = codec.DecodeHandoff(e.schema, items)
	e.Refresh()
	return len(e.rows)
}
