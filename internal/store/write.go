package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/headfake/internal/dataset"
)

// DefaultTable is the table name used when none is given.
const DefaultTable = "headfake"

// WriteDataset replaces table with the rows of ds.
func (s *Store) WriteDataset(ctx context.Context, table string, ds *dataset.Dataset) error {
	if table == "" {
		table = DefaultTable
	}
	if len(ds.Columns) == 0 {
		return fmt.Errorf("write dataset: no columns")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write dataset: begin: %w", err)
	}
	defer tx.Rollback()

	cols := make([]string, len(ds.Columns))
	marks := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		cols[i] = quoteIdent(c)
		marks[i] = "?"
	}

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
		return fmt.Errorf("write dataset: drop table: %w", err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s TEXT)", quoteIdent(table), strings.Join(cols, " TEXT, "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("write dataset: create table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("write dataset: prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(ds.Columns))
	for i, row := range ds.Rows {
		for j, c := range ds.Columns {
			if v := row[c]; v != nil {
				args[j] = dataset.FormatValue(v)
			} else {
				args[j] = nil
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("write dataset: row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write dataset: commit: %w", err)
	}
	return nil
}

// DatasetWriter writes datasets into one table of a store.
type DatasetWriter struct {
	Store *Store
	Table string
}

func (w *DatasetWriter) Write(ctx context.Context, ds *dataset.Dataset) error {
	return w.Store.WriteDataset(ctx, w.Table, ds)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
