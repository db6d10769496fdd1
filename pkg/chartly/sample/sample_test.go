package sample

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ukaji3/chartly-go/pkg/chartly/dataset"
	"github.com/ukaji3/chartly-go/pkg/chartly/models"
)

func TestRowsAreValid(t *testing.T) {
	sizes := map[models.Kind]int{
		models.KindLine:          10,
		models.KindSmoothedLine:  10,
		models.KindBar:           7,
		models.KindHorizontalBar: 7,
		models.KindPie:           5,
		models.KindDoughnut:      5,
		models.KindRadar:         6,
		models.KindScatter:       20,
		models.KindBubble:        10,
		models.KindCandlestick:   8,
		models.KindBarLine:       10,
	}
	rng := rand.New(rand.NewPCG(1, 2))

	for _, kind := range models.AllKinds {
		rows, err := Rows(kind, rng)
		require.NoError(t, err, kind)
		require.Len(t, rows, sizes[kind], kind)

		schema := models.MustSchema(kind)
		for _, row := range rows {
			require.Len(t, row, schema.Width(), kind)
		}
		entries := dataset.Convert(schema, rows)
		require.Len(t, entries, len(rows), kind)
	}
}

func TestRowsDeterministic(t *testing.T) {
	a, err := Rows(models.KindCandlestick, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	b, err := Rows(models.KindCandlestick, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	require.Equal(t, a, b)

	schema := models.MustSchema(models.KindCandlestick)
	for _, e := range dataset.Convert(schema, a) {
		require.GreaterOrEqual(t, e.High, max(e.Open, e.Close))
		require.LessOrEqual(t, e.Low, min(e.Open, e.Close))
	}
}

func TestScatterSortedByX(t *testing.T) {
	rows, err := Rows(models.KindScatter, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	entries := dataset.Convert(models.MustSchema(models.KindScatter), rows)
	for i := 1; i < len(entries); i++ {
		require.LessOrEqual(t, entries[i-1].X, entries[i].X)
	}
}

func TestRowsUnknownKind(t *testing.T) {
	_, err := Rows("area", nil)
	require.Error(t, err)
}

func TestRowsNilRand(t *testing.T) {
	rows, err := Rows(models.KindRadar, nil)
	require.NoError(t, err)
	require.Equal(t, "A", rows[0][0])
	require.Equal(t, "F", rows[5][0])
}
