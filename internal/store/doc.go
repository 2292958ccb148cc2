// Package store writes generated datasets into SQLite tables.
//
// Each dataset becomes one table with a TEXT column per output column, in
// column order. Cells are rendered with dataset.FormatValue, so the stored
// text matches the CSV output; nil cells are stored as NULL. A table is
// replaced on every write and filled in a single transaction.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - 5-second busy timeout
package store
