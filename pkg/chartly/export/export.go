// Package export writes rendered charts and table data to timestamped files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ukaji3/chartly-go/pkg/chartly/codec"
	"github.com/ukaji3/chartly-go/pkg/chartly/models"
	"github.com/ukaji3/chartly-go/pkg/chartly/output"
	"github.com/ukaji3/chartly-go/pkg/chartly/render"
)

// FilePrefix starts every exported file name.
const FilePrefix = "Chartly_"

// CompressionLevel is used for every exported PNG.
const CompressionLevel = png.BestCompression

// ErrNoChart indicates there is no rendered chart to export.
var ErrNoChart = errors.New("no chart to export")

// Exporter writes files below BaseDir/Pictures/Chartly and BaseDir/Documents/Chartly.
type Exporter struct {
	BaseDir string
	// Now stamps file names; defaults to time.Now.
	Now    func() time.Time
	Logger zerolog.Logger
}

// New returns an exporter rooted at baseDir.
func New(baseDir string, logger zerolog.Logger) *Exporter {
	return &Exporter{BaseDir: baseDir, Now: time.Now, Logger: logger}
}

// PicturesDir is where images go.
func (e *Exporter) PicturesDir() string {
	return filepath.Join(e.BaseDir, "Pictures", "Chartly")
}

// DocumentsDir is where CSV, HTML and workbook files go.
func (e *Exporter) DocumentsDir() string {
	return filepath.Join(e.BaseDir, "Documents", "Chartly")
}

// maxCollisions bounds the suffixed names tried for one timestamp.
const maxCollisions = 100

// FileName returns Chartly_<unix millis>.<ext>.
func (e *Exporter) FileName(ext string) string {
	return e.fileName(e.stamp(), 0, ext)
}

func (e *Exporter) stamp() int64 {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	return now().UnixMilli()
}

// fileName appends _<n> for n > 0.
func (e *Exporter) fileName(stamp int64, n int, ext string) string {
	if n == 0 {
		return fmt.Sprintf("%s%d.%s", FilePrefix, stamp, ext)
	}
	return fmt.Sprintf("%s%d_%d.%s", FilePrefix, stamp, n, ext)
}

// PNG renders data and writes it as a PNG image.
func (e *Exporter) PNG(data *models.ChartData, opts render.Options) (string, error) {
	if data == nil || data.Len() == 0 {
		return "", ErrNoChart
	}
	var buf bytes.Buffer
	if err := render.Render(&buf, data, render.FormatPNG, opts); err != nil {
		return "", fmt.Errorf("render %s: %w", data.Kind, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return "", fmt.Errorf("png decode: %w", err)
	}
	var out bytes.Buffer
	enc := png.Encoder{CompressionLevel: CompressionLevel}
	if err := enc.Encode(&out, img); err != nil {
		return "", fmt.Errorf("png encode: %w", err)
	}
	return e.write(e.PicturesDir(), "png", out.Bytes())
}

// HTML renders data as an interactive page.
func (e *Exporter) HTML(data *models.ChartData, opts render.Options) (string, error) {
	if data == nil || data.Len() == 0 {
		return "", ErrNoChart
	}
	var buf bytes.Buffer
	if err := render.Render(&buf, data, render.FormatHTML, opts); err != nil {
		return "", fmt.Errorf("render %s: %w", data.Kind, err)
	}
	return e.write(e.DocumentsDir(), "html", buf.Bytes())
}

// JSON writes the chart dataset.
func (e *Exporter) JSON(data *models.ChartData, pretty bool) (string, error) {
	if data == nil || data.Len() == 0 {
		return "", ErrNoChart
	}
	out, err := output.ChartToJSON(data, pretty)
	if err != nil {
		return "", err
	}
	return e.write(e.DocumentsDir(), "json", out)
}

// CSV writes every row, valid or not.
func (e *Exporter) CSV(schema models.Schema, rows []models.Row) (string, error) {
	var buf bytes.Buffer
	if err := codec.EncodeCSV(&buf, schema, rows); err != nil {
		return "", err
	}
	return e.write(e.DocumentsDir(), "csv", buf.Bytes())
}

// Workbook writes the rows and a native chart to an xlsx file.
func (e *Exporter) Workbook(schema models.Schema, rows []models.Row, opts codec.WorkbookOptions) (string, error) {
	var buf bytes.Buffer
	if err := codec.WriteWorkbook(&buf, schema, rows, opts); err != nil {
		return "", err
	}
	return e.write(e.DocumentsDir(), "xlsx", buf.Bytes())
}

func (e *Exporter) write(dir, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create out dir: %w", err)
	}
	stamp := e.stamp()
	for n := 0; n < maxCollisions; n++ {
		path := filepath.Join(dir, e.fileName(stamp, n, ext))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		_, err = f.Write(data)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		e.Logger.Info().Str("path", path).Int("bytes", len(data)).Msg("exported")
		return path, nil
	}
	return "", fmt.Errorf("write %s: no free name for %s%d.%s", dir, FilePrefix, stamp, ext)
}
