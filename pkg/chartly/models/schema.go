package models

import "fmt"

// Column describes one input field of a row.
type Column struct {
	// Name is the column header shown to the user.
	Name string `json:"name"`
	// Numeric marks fields parsed as float64.
	Numeric bool `json:"numeric"`
	// Required numeric fields must parse for the row to be included.
	Required bool `json:"required"`
	// Default is used for optional numeric fields that are blank or unparsable.
	Default float64 `json:"default,omitempty"`
	// Min, when set, is the lowest accepted value; rows below it are excluded.
	Min *float64 `json:"min,omitempty"`
	// ExclusiveMin also excludes values equal to Min.
	ExclusiveMin bool `json:"exclusive_min,omitempty"`
}

// Accepts reports whether v satisfies the column lower bound.
func (c Column) Accepts(v float64) bool {
	switch {
	case c.Min == nil:
		return true
	case c.ExclusiveMin:
		return v > *c.Min
	}
	return v >= *c.Min
}

// Schema parameterizes the tabular editor for one chart kind.
type Schema struct {
	// Kind is the chart type.
	Kind Kind `json:"kind"`
	// Columns are the fields in UI order. Column 0 is always the label.
	Columns []Column `json:"columns"`
	// DatasetName is the default legend name.
	DatasetName string `json:"dataset_name"`
	// Placeholder is a fmt pattern taking the 1-based row number.
	Placeholder string `json:"placeholder"`
	// ImportOrder maps UI column i to CSV column ImportOrder[i].
	// Nil means identity.
	ImportOrder []int `json:"import_order,omitempty"`
	// HandoffAbsorbsTail lets the last field of a hand-off item keep extra
	// separators. Otherwise items must split into exactly Width fields.
	HandoffAbsorbsTail bool `json:"handoff_absorbs_tail,omitempty"`
}

// Width returns the number of fields per row.
func (s Schema) Width() int {
	return len(s.Columns)
}

// MinCSVColumns is the minimum field count of an importable CSV line.
func (s Schema) MinCSVColumns() int {
	return len(s.Columns)
}

// PlaceholderFor returns the label used for a blank label at 0-based index i.
func (s Schema) PlaceholderFor(i int) string {
	return fmt.Sprintf(s.Placeholder, i+1)
}

// CSVColumn returns the CSV column read into UI column i on import.
func (s Schema) CSVColumn(i int) int {
	if s.ImportOrder == nil || i >= len(s.ImportOrder) {
		return i
	}
	return s.ImportOrder[i]
}

var zero = 0.0

var (
	labelColumn = Column{Name: "label"}

	valueColumn = Column{Name: "value", Numeric: true, Required: true}
	// slices must be positive.
	sliceColumn = Column{Name: "value", Numeric: true, Required: true, Min: &zero, ExclusiveMin: true}
	// radar scores must not be negative.
	scoreColumn = Column{Name: "value", Numeric: true, Required: true, Min: &zero}
)

func labelValue(kind Kind, value Column, dataset, placeholder string) Schema {
	return Schema{
		Kind:               kind,
		Columns:            []Column{labelColumn, value},
		DatasetName:        dataset,
		Placeholder:        placeholder,
		HandoffAbsorbsTail: true,
	}
}

var schemas = map[Kind]Schema{
	KindBar:           labelValue(KindBar, valueColumn, "Bars", "#%d"),
	KindHorizontalBar: labelValue(KindHorizontalBar, valueColumn, "Bars", "#%d"),
	KindLine:          labelValue(KindLine, valueColumn, "Points", "#%d"),
	KindSmoothedLine: {
		Kind:        KindSmoothedLine,
		Columns:     []Column{labelColumn, valueColumn},
		DatasetName: "Points",
		Placeholder: "#%d",
	},
	KindDoughnut: labelValue(KindDoughnut, sliceColumn, "Distribution", "#%d"),
	KindRadar:    labelValue(KindRadar, scoreColumn, "Scores", "Dimension %d"),
	KindPie: {
		Kind:        KindPie,
		Columns:     []Column{labelColumn, sliceColumn},
		DatasetName: "Distribution",
		Placeholder: "#%d",
		// Pie CSV lines are read as "value,label".
		ImportOrder:        []int{1, 0},
		HandoffAbsorbsTail: true,
	},
	KindScatter: {
		Kind: KindScatter,
		Columns: []Column{
			labelColumn,
			{Name: "x", Numeric: true, Required: true},
			{Name: "y", Numeric: true, Required: true},
		},
		DatasetName: "Points",
		Placeholder: "#%d",
	},
	KindBubble: {
		Kind: KindBubble,
		Columns: []Column{
			labelColumn,
			{Name: "x", Numeric: true, Required: true},
			{Name: "y", Numeric: true, Required: true},
		},
		DatasetName: "Bubbles",
		Placeholder: "#%d",
	},
	KindCandlestick: {
		Kind: KindCandlestick,
		Columns: []Column{
			labelColumn,
			{Name: "open", Numeric: true, Required: true},
			{Name: "high", Numeric: true, Required: true},
			{Name: "low", Numeric: true, Required: true},
			{Name: "close", Numeric: true, Required: true},
		},
		DatasetName: "Candles",
		Placeholder: "#%d",
	},
	KindBarLine: {
		Kind: KindBarLine,
		Columns: []Column{
			labelColumn,
			{Name: "bar", Numeric: true, Required: true},
			{Name: "line", Numeric: true},
		},
		DatasetName: "Bars",
		Placeholder: "#%d",
	},
}

// SchemaFor returns the column schema of a kind.
func SchemaFor(k Kind) (Schema, bool) {
	s, ok := schemas[k]
	return s, ok
}

// MustSchema is like SchemaFor but panics on unknown kinds.
func MustSchema(k Kind) Schema {
	s, ok := schemas[k]
	if !ok {
		panic(fmt.Sprintf("models: unknown chart kind %q", k))
	}
	return s
}
