// Package dataset holds generated rows and renders cell values as text.
package dataset

import (
	"fmt"
	"strconv"
	"time"
)

// Dataset is a table of generated rows. Columns fixes the output order;
// each row maps column names to values.
type Dataset struct {
	Columns []string
	Rows    []map[string]any
}

// New creates an empty dataset with the given column order.
func New(columns []string) *Dataset {
	return &Dataset{Columns: append([]string(nil), columns...)}
}

// Append adds a row.
func (d *Dataset) Append(row map[string]any) {
	d.Rows = append(d.Rows, row)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Record returns row i as text cells in column order.
func (d *Dataset) Record(i int) []string {
	row := d.Rows[i]
	out := make([]string, len(d.Columns))
	for j, col := range d.Columns {
		out[j] = FormatValue(row[col])
	}
	return out
}

// Column returns every value of one column.
func (d *Dataset) Column(name string) []any {
	out := make([]any, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = row[name]
	}
	return out
}

// FormatValue renders a cell as text. Midnight times render as dates,
// other times as "2006-01-02 15:04:05", floats in their shortest form and
// nil as the empty string.
func FormatValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case time.Time:
		if s.Hour() == 0 && s.Minute() == 0 && s.Second() == 0 && s.Nanosecond() == 0 {
			return s.Format("2006-01-02")
		}
		return s.Format("2006-01-02 15:04:05")
	}
	return fmt.Sprint(v)
}
