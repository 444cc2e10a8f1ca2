// Package csvtab serializes flat tabular records to CSV text. The header row
// is taken from the key order of the first record; subsequent records are
// emitted in that same key order, with missing keys rendered as empty fields.
package csvtab

import (
	"fmt"
	"strings"
)

// Row is an ordered flat record. Keys keep insertion order, which determines
// the CSV column order when a Row is first in the sequence.
type Row struct {
	keys   []string
	values map[string]interface{}
}

// NewRow returns an empty Row.
func NewRow() *Row {
	return &Row{values: make(map[string]interface{})}
}

// Set adds or replaces a field. First-time keys append to the column order.
func (r *Row) Set(key string, value interface{}) *Row {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

// Get returns the field value, or nil when absent.
func (r *Row) Get(key string) interface{} {
	return r.values[key]
}

// Keys returns the column order of this row.
func (r *Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// ToCSV renders rows to CSV. An empty input yields the empty string. The
// header comes from the first row; every data line has exactly one field per
// header column.
func ToCSV(rows []*Row) string {
	if len(rows) == 0 {
		return ""
	}
	headers := rows[0].Keys()

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, ","))
	for _, row := range rows {
		fields := make([]string, len(headers))
		for i, h := range headers {
			fields[i] = escape(row.Get(h))
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

// escape renders a value as a CSV field. Fields containing a comma, double
// quote, or newline are wrapped in double quotes with inner quotes doubled;
// everything else is emitted as-is. nil renders as the empty string.
func escape(v interface{}) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%v", v)
	if strings.ContainsAny(s, "\",\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
