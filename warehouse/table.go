package warehouse

// Table is the tabular result of a warehouse query: a fixed column set and
// zero or more rows in column order. Values are whatever the driver decoded
// (string, int64, float64, bool, time.Time, or nil for SQL NULL).
type Table struct {
	Columns []string
	Rows    [][]interface{}
}

// Empty reports whether the table has no rows
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Get returns the value at the given row for the named column, or nil when
// the column does not exist
func (t *Table) Get(row int, column string) interface{} {
	if t == nil || row < 0 || row >= len(t.Rows) {
		return nil
	}
	for i, c := range t.Columns {
		if c == column {
			return t.Rows[row][i]
		}
	}
	return nil
}

// Float returns the value at (row, column) coerced to float64. SQL NULL and
// missing columns come back as 0 with ok=false.
func (t *Table) Float(row int, column string) (float64, bool) {
	switch v := t.Get(row, column).(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// Int returns the value at (row, column) coerced to int64
func (t *Table) Int(row int, column string) (int64, bool) {
	switch v := t.Get(row, column).(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// String returns the value at (row, column) as a string, with ok=false for
// SQL NULL or a missing column
func (t *Table) String(row int, column string) (string, bool) {
	switch v := t.Get(row, column).(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}
