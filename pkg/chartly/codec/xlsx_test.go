package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

func TestWorkbookRoundTrip(t *testing.T) {
	tests := []struct {
		kind models.Kind
		rows []models.Row
	}{
		{models.KindBar, []models.Row{{"a", "1"}, {"b", "2.5"}}},
		{models.KindHorizontalBar, []models.Row{{"a", "3"}}},
		{models.KindSmoothedLine, []models.Row{{"a", "1"}, {"b", "-2"}}},
		{models.KindDoughnut, []models.Row{{"x", "4"}, {"y", "6"}}},
		{models.KindScatter, []models.Row{{"p", "1", "2"}}},
		{models.KindCandlestick, []models.Row{{"d1", "10", "12", "9", "11"}, {"d2", "11", "13", "10", "12"}}},
		{models.KindBarLine, []models.Row{{"q1", "5", "2"}, {"q2", "6", ""}}},
	}

	for _, tt := range tests {
		schema := models.MustSchema(tt.kind)
		var buf bytes.Buffer
		require.NoError(t, WriteWorkbook(&buf, schema, tt.rows, WorkbookOptions{}), tt.kind)

		book, err := ReadWorkbook(&buf, ReadOptions{BookName: "test.xlsx"})
		require.NoError(t, err, tt.kind)
		require.Equal(t, tt.kind, book.Kind)
		require.Equal(t, DefaultSheetName, book.SheetName)
		require.Equal(t, "test.xlsx", book.BookName)
		require.Equal(t, tt.kind.Title(), book.Title)
		require.True(t, book.HasHeader)
		require.Equal(t, tt.rows, book.Rows, tt.kind)
	}
}

func TestWorkbookKeepsNonNumericFields(t *testing.T) {
	schema := models.MustSchema(models.KindLine)
	rows := []models.Row{{"a", "oops"}, {"007", "1"}}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, schema, rows, WorkbookOptions{NoChart: true, SheetName: "Mine"}))

	book, err := ReadWorkbook(&buf, ReadOptions{Kind: models.KindLine})
	require.NoError(t, err)
	require.Equal(t, "Mine", book.SheetName)
	require.Equal(t, rows, book.Rows)
	require.Empty(t, book.Title)
}

func TestReadWorkbookHeaderTieDefaultsToFirstKind(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, models.MustSchema(models.KindRadar), []models.Row{{"a", "1"}}, WorkbookOptions{NoChart: true}))

	book, err := ReadWorkbook(&buf, ReadOptions{})
	require.NoError(t, err)
	require.Equal(t, models.KindLine, book.Kind)
}

func TestReadWorkbookDetectsTable(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "B2", &[]interface{}{"label", "x", "y"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "B3", &[]interface{}{"p1", 1, 2}))
	require.NoError(t, f.SetSheetRow("Sheet1", "B4", &[]interface{}{"p2", 3, 4.5}))

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	book, err := ReadWorkbook(&buf, ReadOptions{})
	require.NoError(t, err)
	require.Equal(t, models.KindScatter, book.Kind)
	require.Equal(t, models.DataArea{R1: 2, C1: 2, R2: 4, C2: 4}, book.Area)
	require.Equal(t, []models.Row{{"p1", "1", "2"}, {"p2", "3", "4.5"}}, book.Rows)
}

func TestReadWorkbookErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	var empty bytes.Buffer
	_, err := f.WriteTo(&empty)
	require.NoError(t, err)

	_, err = ReadWorkbook(bytes.NewReader(empty.Bytes()), ReadOptions{})
	require.True(t, errors.Is(err, ErrNoWorkbookData), err)

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"what", "ever"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"a", 1}))
	var headerless bytes.Buffer
	_, err = f.WriteTo(&headerless)
	require.NoError(t, err)
	data := headerless.Bytes()

	_, err = ReadWorkbook(bytes.NewReader(data), ReadOptions{})
	require.True(t, errors.Is(err, ErrUnknownKind), err)

	book, err := ReadWorkbook(bytes.NewReader(data), ReadOptions{Kind: models.KindBar})
	require.NoError(t, err)
	require.False(t, book.HasHeader)
	require.Equal(t, []models.Row{{"what", "ever"}, {"a", "1"}}, book.Rows)

	_, err = ReadWorkbook(bytes.NewReader(data), ReadOptions{Kind: "area"})
	require.True(t, errors.Is(err, ErrUnknownKind), err)
}
