package output

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/roach88/headfake/internal/dataset"
)

// CSVWriter writes a header row followed by one record per row.
type CSVWriter struct {
	w io.Writer
}

func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

func (c *CSVWriter) Write(ctx context.Context, ds *dataset.Dataset) error {
	cw := csv.NewWriter(c.w)
	if err := cw.Write(ds.Columns); err != nil {
		return err
	}
	for i := range ds.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cw.Write(ds.Record(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
