package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ReadTable returns the column names and rows of table in insertion order.
// NULL cells are returned as nil.
func (s *Store) ReadTable(ctx context.Context, table string) ([]string, [][]any, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY rowid ASC", quoteIdent(table)))
	if err != nil {
		return nil, nil, fmt.Errorf("read table %q: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("read table %q: %w", table, err)
	}

	var out [][]any
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("read table %q: %w", table, err)
		}
		rec := make([]any, len(cols))
		for i, c := range cells {
			if c.Valid {
				rec[i] = c.String
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("read table %q: %w", table, err)
	}
	return cols, out, nil
}
