package chartly

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/ukaji3/chartly-go/pkg/chartly/codec"
	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		require.NoError(t, err)
		require.Equal(t, f, got)
	}
	_, err := ParseFormat("svg")
	require.Error(t, err)
}

func TestOptions(t *testing.T) {
	opts := DefaultOptions()
	require.Equal(t, FormatPNG, opts.Format)
	require.Equal(t, "png", opts.Extension())

	opts = Options{Format: FormatHTML, Width: 640, Height: 480, Title: "T"}
	ro := opts.RenderOptions()
	require.Equal(t, 640, ro.Width)
	require.Equal(t, 480, ro.Height)
	require.Equal(t, "T", ro.Title)
	require.Equal(t, "html", opts.Extension())
}

func TestImportError(t *testing.T) {
	err := NewImportError("data.csv", 3, ErrNoValidData)
	require.True(t, errors.Is(err, ErrNoValidData))
	require.Equal(t, `import error in "data.csv" at line 3: no valid data`, err.Error())
	require.Equal(t, `import error in "book.xlsx": boom`, NewImportError("book.xlsx", 0, errors.New("boom")).Error())
}

func TestReadCSV(t *testing.T) {
	res, err := ReadCSV(strings.NewReader("a,1\nshort\nb,2,extra\n"), "in.csv", models.KindBar)
	require.NoError(t, err)
	require.Equal(t, []models.Row{{"a", "1"}, {"b", "2"}}, res.Rows)
	require.Equal(t, 1, res.Skipped)

	_, err = ReadCSV(strings.NewReader("x\ny\n"), "in.csv", models.KindBar)
	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	require.Equal(t, 2, importErr.Line)
	require.ErrorIs(t, err, ErrNoValidData)

	_, err = ReadCSV(strings.NewReader(""), "in.csv", "area")
	require.Error(t, err)
}

func TestReadCSVReadErrorReportsLine(t *testing.T) {
	boom := errors.New("connection reset")
	r := io.MultiReader(strings.NewReader("a,1\nb\n"), iotest.ErrReader(boom))

	_, err := ReadCSV(r, "upload.csv", models.KindBar)
	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	require.Equal(t, 2, importErr.Line)
	require.ErrorIs(t, err, boom)
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pie.csv")
	require.NoError(t, os.WriteFile(path, []byte("30,apples\n70,pears\n"), 0o644))

	res, err := LoadCSV(path, models.KindPie)
	require.NoError(t, err)
	require.Equal(t, []models.Row{{"apples", "30"}, {"pears", "70"}}, res.Rows)

	_, err = LoadCSV(filepath.Join(dir, "missing.csv"), models.KindPie)
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.xlsx")
	var buf bytes.Buffer
	rows := []models.Row{{"a", "1", "2"}, {"b", "3", "4"}}
	require.NoError(t, codec.WriteWorkbook(&buf, models.MustSchema(models.KindBubble), rows, codec.WorkbookOptions{}))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	book, err := LoadWorkbook(path, codec.ReadOptions{})
	require.NoError(t, err)
	require.Equal(t, "book.xlsx", book.BookName)
	require.Equal(t, models.KindBubble, book.Kind)
	require.Equal(t, rows, book.Rows)

	_, err = LoadWorkbook(filepath.Join(dir, "missing.xlsx"), codec.ReadOptions{})
	require.ErrorIs(t, err, ErrFileNotFound)

	bad := filepath.Join(dir, "bad.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("not a zip"), 0o644))
	_, err = LoadWorkbook(bad, codec.ReadOptions{})
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestConvert(t *testing.T) {
	rows := []models.Row{{"a", "1", "2"}, {"b", "3", "4"}}

	got, err := Convert(models.KindScatter, models.KindBar, rows)
	require.NoError(t, err)
	require.Equal(t, []models.Row{{"a", "1|2"}, {"b", "3|4"}}, got)

	got, err = Convert(models.KindScatter, models.KindCandlestick, rows)
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = Convert("area", models.KindBar, rows)
	require.Error(t, err)
	_, err = Convert(models.KindBar, "area", rows)
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	rows := []models.Row{{"a", "1"}, {"b", "oops"}, {"c", "3"}}

	tests := []struct {
		format Format
		check  func(t *testing.T, out []byte)
	}{
		{FormatPNG, func(t *testing.T, out []byte) {
			require.True(t, bytes.HasPrefix(out, []byte("\x89PNG")))
		}},
		{FormatHTML, func(t *testing.T, out []byte) {
			require.Contains(t, string(out), "Custom")
		}},
		{FormatJSON, func(t *testing.T, out []byte) {
			require.Equal(t, int64(2), gjson.GetBytes(out, "datasets.0.entries.#").Int())
			require.Equal(t, "Custom", gjson.GetBytes(out, "title").String())
		}},
		{FormatCSV, func(t *testing.T, out []byte) {
			require.Equal(t, "a,1\nb,oops\nc,3\n", string(out))
		}},
		{FormatXLSX, func(t *testing.T, out []byte) {
			book, err := codec.ReadWorkbook(bytes.NewReader(out), codec.ReadOptions{})
			require.NoError(t, err)
			require.Equal(t, models.KindLine, book.Kind)
			require.Equal(t, "Custom", book.Title)
		}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		err := Render(&buf, models.KindLine, rows, Options{Format: tt.format, Title: "Custom"})
		require.NoError(t, err, tt.format)
		tt.check(t, buf.Bytes())
	}
}

func TestRenderNoValidData(t *testing.T) {
	err := Render(&bytes.Buffer{}, models.KindBar, []models.Row{{"a", "x"}}, DefaultOptions())
	require.ErrorIs(t, err, ErrNoValidData)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, models.KindBar, []models.Row{{"a", "x"}}, Options{Format: FormatCSV}))
	require.Equal(t, "a,x\n", buf.String())
}
