package field

import "fmt"

// Row is the partial record assembled so far in generation order.
type Row map[string]any

// Values is a multi-column result: every entry is merged into the row
// under its own key instead of the field's name.
type Values map[string]any

// Field is the atomic per-row value generator.
type Field interface {
	// Name is the field's column name, unique within its fieldset.
	Name() string

	// Hidden fields are generated and visible to later fields in the row,
	// but stripped from the output.
	Hidden() bool

	// GenerateAfter defers the field to the second generation phase.
	GenerateAfter() bool

	Transformers() []Transformer
	FinalTransformers() []Transformer

	// Init runs once after every field of the fieldset is constructed.
	// Fields resolve sibling references by name here.
	Init(fs Fieldset) error

	// NextValue generates the field's value for row: a scalar, or Values
	// for fields that emit several columns.
	NextValue(row Row) (any, error)
}

// Fieldset is the view of the owning fieldset given to fields during Init.
type Fieldset interface {
	Field(name string) (Field, bool)

	// DeclareColumns registers extra output columns emitted by owner. They
	// are listed immediately after owner's own column.
	DeclareColumns(owner string, names ...string)
}

// Options are the settings shared by every field.
type Options struct {
	Name              string
	Transformers      []Transformer
	FinalTransformers []Transformer
	Hidden            bool

	// ErrorValue replaces the value of a failed generation when
	// HasErrorValue is set.
	ErrorValue    any
	HasErrorValue bool
}

// Base implements the generation protocol shared by all fields: before
// hooks, the intrinsic generator, after hooks, and error_value fallback.
//
// Concrete fields embed *Base and call bind with themselves and their
// generator in their constructor.
type Base struct {
	opts Options
	self Field
	gen  func(Row) (any, error)
}

func newBase(opts Options) *Base {
	return &Base{opts: opts}
}

func (b *Base) bind(self Field, gen func(Row) (any, error)) {
	b.self = self
	b.gen = gen
}

func (b *Base) Name() string                     { return b.opts.Name }
func (b *Base) Hidden() bool                     { return b.opts.Hidden }
func (b *Base) GenerateAfter() bool              { return false }
func (b *Base) Transformers() []Transformer      { return b.opts.Transformers }
func (b *Base) FinalTransformers() []Transformer { return b.opts.FinalTransformers }

// Init is the no-op default.
func (b *Base) Init(Fieldset) error { return nil }

// NextValue runs the pipeline. With an error value configured, every
// failure except capacity exhaustion is replaced by that value.
func (b *Base) NextValue(row Row) (any, error) {
	v, err := b.run(row)
	if err != nil {
		if b.opts.HasErrorValue && !IsCapacityExceeded(err) {
			return b.opts.ErrorValue, nil
		}
		return nil, err
	}
	return v, nil
}

func (b *Base) run(row Row) (any, error) {
	for _, t := range b.opts.Transformers {
		res, err := t.BeforeNext(b.self, row)
		if err != nil {
			return nil, b.transformErr(t, row, err)
		}
		if res.Overridden {
			return res.Value, nil
		}
	}

	v, err := b.gen(row)
	if err != nil {
		return nil, &FieldGenerationError{Field: b.opts.Name, Err: err}
	}

	for _, t := range b.opts.Transformers {
		res, err := t.AfterNext(b.self, row, v)
		if err != nil {
			return nil, b.transformErr(t, row, err)
		}
		v = res.Value
		if res.Overridden {
			break
		}
	}
	return v, nil
}

func (b *Base) transformErr(t Transformer, row Row, err error) error {
	return &FieldGenerationError{
		Field: b.opts.Name,
		Err:   &TransformerError{Field: b.opts.Name, Transformer: t.Name(), Row: copyRow(row), Err: err},
	}
}

// ApplyFinal runs f's final transformers over the assembled row, chaining
// each output into the next. An override from either hook ends the chain.
func ApplyFinal(f Field, row Row) (any, error) {
	v := row[f.Name()]
	for _, t := range f.FinalTransformers() {
		res, err := t.BeforeNext(f, row)
		if err != nil {
			return nil, &TransformerError{Field: f.Name(), Transformer: t.Name(), Row: copyRow(row), Err: err}
		}
		if res.Overridden {
			return res.Value, nil
		}
		res, err = t.AfterNext(f, row, v)
		if err != nil {
			return nil, &TransformerError{Field: f.Name(), Transformer: t.Name(), Row: copyRow(row), Err: err}
		}
		v = res.Value
		if res.Overridden {
			break
		}
	}
	return v, nil
}

// InitTransformers initialises every per-field and final transformer of f
// that needs fieldset access.
func InitTransformers(f Field, fs Fieldset) error {
	for _, list := range [][]Transformer{f.Transformers(), f.FinalTransformers()} {
		for _, t := range list {
			init, ok := t.(Initializer)
			if !ok {
				continue
			}
			if err := init.Init(fs); err != nil {
				return fmt.Errorf("field %q: transformer %q: %w", f.Name(), t.Name(), err)
			}
		}
	}
	return nil
}

func copyRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
