package fieldset

import (
	"context"
	"fmt"
	"sort"

	"github.com/roach88/headfake/internal/dataset"
	"github.com/roach88/headfake/internal/field"
)

// Plan is the compiled generation order of a fieldset.
//
// Fields without GenerateAfter run first in declaration order, then the
// deferred fields in declaration order. Hidden fields, and the companion
// columns of hidden fields, are stripped from each finished row before the
// final transformers of the visible fields run in declaration order.
type Plan struct {
	steps   []field.Field
	hidden  map[string]bool
	finals  []field.Field
	columns []string
}

func compile(fs *Fieldset) *Plan {
	p := &Plan{hidden: map[string]bool{}, columns: fs.FieldNames()}

	var deferred []field.Field
	for _, f := range fs.fields {
		if f.GenerateAfter() {
			deferred = append(deferred, f)
		} else {
			p.steps = append(p.steps, f)
		}

		if f.Hidden() {
			p.hidden[f.Name()] = true
			for _, c := range fs.companions[f.Name()] {
				p.hidden[c] = true
			}
			continue
		}
		if len(f.FinalTransformers()) > 0 {
			p.finals = append(p.finals, f)
		}
	}
	p.steps = append(p.steps, deferred...)
	return p
}

// Order returns the field names in generation order.
func (p *Plan) Order() []string {
	out := make([]string, len(p.steps))
	for i, f := range p.steps {
		out[i] = f.Name()
	}
	return out
}

// Hidden returns the stripped column names, sorted.
func (p *Plan) Hidden() []string {
	out := make([]string, 0, len(p.hidden))
	for n := range p.hidden {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Columns returns the output column order.
func (p *Plan) Columns() []string {
	return append([]string(nil), p.columns...)
}

// NextRow generates one complete row.
func (p *Plan) NextRow() (field.Row, error) {
	row := field.Row{}
	for _, f := range p.steps {
		v, err := f.NextValue(row)
		if err != nil {
			return nil, err
		}
		if vals, ok := v.(field.Values); ok {
			for k, cv := range vals {
				row[k] = cv
			}
			continue
		}
		row[f.Name()] = v
	}

	for n := range p.hidden {
		delete(row, n)
	}

	for _, f := range p.finals {
		v, err := field.ApplyFinal(f, row)
		if err != nil {
			return nil, &field.FieldGenerationError{Field: f.Name(), Err: err}
		}
		row[f.Name()] = v
	}
	return row, nil
}

// Generate produces n rows into a dataset ordered by the fieldset's
// visible columns.
func (p *Plan) Generate(ctx context.Context, n int) (*dataset.Dataset, error) {
	ds := dataset.New(p.columns)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := p.NextRow()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		ds.Append(row)
	}
	return ds, nil
}
