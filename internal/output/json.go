package output

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/headfake/internal/dataset"
)

// JSONWriter writes the dataset as an array of objects, one per line, with
// keys in column order. Strings are NFC-normalized and HTML characters are
// not escaped.
type JSONWriter struct {
	w io.Writer
}

func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

func (j *JSONWriter) Write(ctx context.Context, ds *dataset.Dataset) error {
	bw := bufio.NewWriter(j.w)
	bw.WriteString("[")
	for i, row := range ds.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			bw.WriteString(",")
		}
		bw.WriteString("\n  ")
		rec, err := marshalRecord(ds.Columns, row)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		bw.Write(rec)
	}
	if len(ds.Rows) > 0 {
		bw.WriteString("\n")
	}
	bw.WriteString("]\n")
	return bw.Flush()
}

func marshalRecord(columns []string, row map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalString(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := marshalValue(row[col])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValue(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case string:
		return marshalString(val)
	case bool, int, int64, int32:
		return json.Marshal(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(val)
	case float32:
		return marshalValue(float64(val))
	case time.Time, time.Duration:
		return marshalString(dataset.FormatValue(val))
	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := marshalValue(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}
	return marshalString(dataset.FormatValue(v))
}

// marshalString encodes s after NFC normalization without HTML escaping.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
