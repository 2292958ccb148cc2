// Package output writes generated datasets as CSV or JSON.
package output

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/roach88/headfake/internal/dataset"
)

// Format names an output encoding.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// Writer writes a complete dataset.
type Writer interface {
	Write(ctx context.Context, ds *dataset.Dataset) error
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatJSON, FormatSQLite:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want csv, json or sqlite)", s)
}

// FormatFromPath infers the format from an output file extension,
// defaulting to CSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	}
	return FormatCSV
}

// New returns a stream writer for format. SQLite output needs a file and
// is provided by the store package.
func New(format Format, w io.Writer) (Writer, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w), nil
	}
	return nil, fmt.Errorf("format %q cannot be written to a stream", format)
}
