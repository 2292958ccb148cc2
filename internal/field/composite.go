package field

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// RepeatField generates an inner field a random number of times, drawn
// uniformly from [min, max). The values are returned as a list, or joined
// with the glue string when one is configured.
type RepeatField struct {
	*Base
	env      *Env
	inner    Field
	min, max any
	glue     *string
}

func NewRepeatField(opts Options, env *Env, inner Field, min, max any, glue *string) *RepeatField {
	f := &RepeatField{Base: newBase(opts), env: env, inner: inner, min: min, max: max, glue: glue}
	f.bind(f, f.generate)
	return f
}

func (f *RepeatField) Init(fs Fieldset) error {
	return initOperands(fs, f.inner, f.min, f.max)
}

func (f *RepeatField) generate(row Row) (any, error) {
	lo, err := resolveInt(f.Name(), f.min, row)
	if err != nil {
		return nil, err
	}
	hi, err := resolveInt(f.Name(), f.max, row)
	if err != nil {
		return nil, err
	}
	n, err := f.env.Rand.IntRange(lo, hi)
	if err != nil {
		return nil, err
	}

	values := make([]any, 0, n)
	for i := 0; i < n; i++ {
		v, err := f.inner.NextValue(row)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	if f.glue == nil {
		return values, nil
	}
	return joinValues(values, *f.glue), nil
}

// ConcatField joins the string forms of several fields with a glue string.
// Items may also be literals.
type ConcatField struct {
	*Base
	items []any
	glue  string
}

func NewConcatField(opts Options, items []any, glue string) *ConcatField {
	f := &ConcatField{Base: newBase(opts), items: items, glue: glue}
	f.bind(f, f.generate)
	return f
}

func (f *ConcatField) Init(fs Fieldset) error {
	return initOperands(fs, f.items...)
}

func (f *ConcatField) generate(row Row) (any, error) {
	values := make([]any, 0, len(f.items))
	for _, item := range f.items {
		v, err := resolveAny(item, row)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return joinValues(values, f.glue), nil
}

func joinValues(values []any, glue string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = toString(v)
	}
	return strings.Join(parts, glue)
}

// MapFileField loads a delimited table keyed by one of its columns and
// emits a randomly chosen key on every row. LookupMapFileFields read other
// columns of the chosen record.
type MapFileField struct {
	*Base
	env     *Env
	file    string
	keyCol  string
	columns []string
	keys    []string
	records map[string]map[string]string
}

// NewMapFileField reads the mapping file once. Later records with a
// duplicate key replace earlier ones; key order follows first appearance.
func NewMapFileField(opts Options, env *Env, mappingFile, keyField string) (*MapFileField, error) {
	path := env.path(mappingFile)
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("field %q: open mapping file: %w", opts.Name, err)
	}
	defer fh.Close()

	columns, keys, records, err := readMapping(fh, keyField)
	if err != nil {
		return nil, fmt.Errorf("field %q: mapping file %s: %w", opts.Name, path, err)
	}

	f := &MapFileField{
		Base:    newBase(opts),
		env:     env,
		file:    path,
		keyCol:  keyField,
		columns: columns,
		keys:    keys,
		records: records,
	}
	f.bind(f, f.generate)
	return f, nil
}

func readMapping(r io.Reader, keyField string) ([]string, []string, map[string]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, nil, nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	keyIdx := -1
	for i, col := range header {
		if col == keyField {
			keyIdx = i
		}
	}
	if keyIdx < 0 {
		return nil, nil, nil, fmt.Errorf("key field %q not found in header", keyField)
	}

	var keys []string
	records := map[string]map[string]string{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, nil, err
		}
		m := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				m[col] = rec[i]
			}
		}
		key := m[keyField]
		if _, seen := records[key]; !seen {
			keys = append(keys, key)
		}
		records[key] = m
	}
	if len(keys) == 0 {
		return nil, nil, nil, fmt.Errorf("no data rows")
	}
	return header, keys, records, nil
}

func (f *MapFileField) generate(Row) (any, error) {
	return f.keys[f.env.Rand.Intn(len(f.keys))], nil
}

// HasColumn reports whether the mapping file has column.
func (f *MapFileField) HasColumn(column string) bool {
	for _, c := range f.columns {
		if c == column {
			return true
		}
	}
	return false
}

// Record returns the mapping record for key.
func (f *MapFileField) Record(key string) (map[string]string, bool) {
	rec, ok := f.records[key]
	return rec, ok
}

// LookupMapFileField reads a column of the record selected by a sibling
// MapFileField in the same row.
type LookupMapFileField struct {
	*Base
	column  string
	mapName string
	source  *MapFileField
}

func NewLookupMapFileField(opts Options, lookupValueField, mapFileField string) *LookupMapFileField {
	f := &LookupMapFileField{Base: newBase(opts), column: lookupValueField, mapName: mapFileField}
	f.bind(f, f.generate)
	return f
}

func (f *LookupMapFileField) Init(fs Fieldset) error {
	other, ok := fs.Field(f.mapName)
	if !ok {
		return &UnresolvedReferenceError{Field: f.Name(), Column: f.mapName}
	}
	source, ok := other.(*MapFileField)
	if !ok {
		return fmt.Errorf("field %q: %q is not a map file field", f.Name(), f.mapName)
	}
	if !source.HasColumn(f.column) {
		return &LookupColumnNotFoundError{Field: f.Name(), Column: f.column, File: source.file}
	}
	f.source = source
	return nil
}

func (f *LookupMapFileField) generate(row Row) (any, error) {
	v, ok := row[f.mapName]
	if !ok {
		return nil, &UnresolvedReferenceError{Field: f.Name(), Column: f.mapName}
	}
	rec, ok := f.source.Record(toString(v))
	if !ok {
		return nil, fmt.Errorf("no mapping record for key %q", toString(v))
	}
	return rec[f.column], nil
}
