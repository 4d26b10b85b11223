package annotation

import "strconv"

// DefaultJoinColumn is the column matched against node IDs when none is given.
const DefaultJoinColumn = "obo_id"

// Row is one annotation record keyed by column name.
type Row map[string]any

// Table is an ordered set of rows with a fixed column order.
type Table struct {
	Columns []string
	Rows    []Row
}

// Column returns the values of one column in row order.
func (t *Table) Column(name string) []any {
	values := make([]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, row[name])
	}
	return values
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// joinKey returns the string a row value is matched on. Only strings and
// integers can act as keys.
func joinKey(v any) (string, bool) {
	switch k := v.(type) {
	case string:
		return k, true
	case int64:
		return strconv.FormatInt(k, 10), true
	}
	return "", false
}
