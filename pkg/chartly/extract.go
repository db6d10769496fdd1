package chartly

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/chartly-go/pkg/chartly/codec"
	"github.com/ukaji3/chartly-go/pkg/chartly/dataset"
	"github.com/ukaji3/chartly-go/pkg/chartly/models"
	"github.com/ukaji3/chartly-go/pkg/chartly/output"
	"github.com/ukaji3/chartly-go/pkg/chartly/render"
)

// CSVResult is the outcome of reading CSV rows.
type CSVResult struct {
	Rows []models.Row
	// Skipped counts lines with too few columns.
	Skipped int
}

// ReadCSV reads rows for kind. An input without an importable line yields an
// ImportError wrapping ErrNoValidData.
func ReadCSV(r io.Reader, source string, kind models.Kind) (*CSVResult, error) {
	schema, ok := models.SchemaFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown chart kind %q", kind)
	}
	rows, skipped, err := codec.DecodeCSV(r, schema)
	if err != nil {
		return nil, NewImportError(source, len(rows)+skipped, err)
	}
	if len(rows) == 0 {
		return nil, NewImportError(source, skipped, ErrNoValidData)
	}
	return &CSVResult{Rows: rows, Skipped: skipped}, nil
}

// LoadCSV reads rows for kind from a file.
func LoadCSV(path string, kind models.Kind) (*CSVResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, filepath.Base(path), kind)
}

// LoadWorkbook reads rows back from an xlsx file.
func LoadWorkbook(path string, opts codec.ReadOptions) (*models.Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	if opts.BookName == "" {
		opts.BookName = filepath.Base(path)
	}
	book, err := codec.ReadWorkbook(bytes.NewReader(data), opts)
	if err != nil {
		if errors.Is(err, codec.ErrNoWorkbookData) || errors.Is(err, codec.ErrUnknownKind) {
			return nil, NewImportError(opts.BookName, 0, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return book, nil
}

// Convert moves rows from one kind to another the way screen navigation does:
// rows are joined with "|" and split again for the destination schema.
// Rows that do not fit are dropped.
func Convert(from, to models.Kind, rows []models.Row) ([]models.Row, error) {
	if _, ok := models.SchemaFor(from); !ok {
		return nil, fmt.Errorf("unknown chart kind %q", from)
	}
	schema, ok := models.SchemaFor(to)
	if !ok {
		return nil, fmt.Errorf("unknown chart kind %q", to)
	}
	return codec.DecodeHandoff(schema, codec.EncodeHandoff(rows)), nil
}

// Render writes rows of kind in the requested format. Image, page and JSON
// formats require at least one valid row; CSV and xlsx write every row.
func Render(w io.Writer, kind models.Kind, rows []models.Row, opts Options) error {
	schema, ok := models.SchemaFor(kind)
	if !ok {
		return fmt.Errorf("unknown chart kind %q", kind)
	}

	switch opts.Format {
	case FormatCSV:
		return codec.EncodeCSV(w, schema, rows)
	case FormatXLSX:
		return codec.WriteWorkbook(w, schema, rows, codec.WorkbookOptions{
			Title:  opts.Title,
			Width:  uint(max(opts.Width, 0)),
			Height: uint(max(opts.Height, 0)),
		})
	}

	data, err := dataset.Build(schema, rows)
	if err != nil {
		return err
	}
	if opts.Title != "" {
		data.Title = opts.Title
	}

	switch opts.Format {
	case FormatPNG, "":
		return render.Render(w, data, render.FormatPNG, opts.RenderOptions())
	case FormatHTML:
		return render.Render(w, data, render.FormatHTML, opts.RenderOptions())
	case FormatJSON:
		out, err := output.ChartToJSON(data, opts.Pretty)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	return fmt.Errorf("invalid format: %s", opts.Format)
}
