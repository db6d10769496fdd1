package models

// Row is one line of user-entered text fields.
// Field positions follow the column order of the kind's Schema.
type Row []string

// NewRow returns an empty row with n fields.
func NewRow(n int) Row {
	return make(Row, n)
}

// Field returns the i-th field or "" when the row is shorter.
func (r Row) Field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Clone returns a copy that shares no storage with r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// CloneRows deep-copies a row list.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
