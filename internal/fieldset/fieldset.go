// Package fieldset owns the ordered fields of a template and turns them
// into rows.
package fieldset

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/headfake/internal/dataset"
	"github.com/roach88/headfake/internal/field"
)

// DuplicateFieldError reports two fields, or a field and a declared
// companion column, sharing a name.
type DuplicateFieldError struct {
	Name string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field name %q", e.Name)
}

// IsDuplicateField reports whether err is a DuplicateFieldError.
func IsDuplicateField(err error) bool {
	var de *DuplicateFieldError
	return errors.As(err, &de)
}

// Fieldset is an ordered, name-unique collection of fields.
type Fieldset struct {
	fields     []field.Field
	byName     map[string]field.Field
	companions map[string][]string
	owners     map[string]string
	declErr    error
	plan       *Plan
}

// New wires fields into a fieldset. Every field's Init runs in declaration
// order, then every transformer's.
func New(fields []field.Field) (*Fieldset, error) {
	fs := &Fieldset{
		byName:     make(map[string]field.Field, len(fields)),
		companions: map[string][]string{},
		owners:     map[string]string{},
	}
	for _, f := range fields {
		if err := fs.insert(f); err != nil {
			return nil, err
		}
	}
	for _, f := range fs.fields {
		if err := fs.initField(f); err != nil {
			return nil, err
		}
	}
	for _, f := range fs.fields {
		if err := field.InitTransformers(f, fs); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

func (fs *Fieldset) insert(f field.Field) error {
	name := f.Name()
	if name == "" {
		return fmt.Errorf("field of type %T has no name", f)
	}
	if _, dup := fs.byName[name]; dup {
		return &DuplicateFieldError{Name: name}
	}
	if _, dup := fs.owners[name]; dup {
		return &DuplicateFieldError{Name: name}
	}
	fs.fields = append(fs.fields, f)
	fs.byName[name] = f
	return nil
}

func (fs *Fieldset) initField(f field.Field) error {
	if err := f.Init(fs); err != nil {
		return fmt.Errorf("initialising field %q: %w", f.Name(), err)
	}
	if fs.declErr != nil {
		err := fs.declErr
		fs.declErr = nil
		return err
	}
	return nil
}

// Add appends and wires a field after construction. The cached plan is
// discarded.
func (fs *Fieldset) Add(f field.Field) error {
	if err := fs.insert(f); err != nil {
		return err
	}
	if err := fs.initField(f); err != nil {
		return err
	}
	if err := field.InitTransformers(f, fs); err != nil {
		return err
	}
	fs.plan = nil
	return nil
}

// Field returns the field called name.
func (fs *Fieldset) Field(name string) (field.Field, bool) {
	f, ok := fs.byName[name]
	return f, ok
}

// DeclareColumns registers companion columns emitted by owner.
func (fs *Fieldset) DeclareColumns(owner string, names ...string) {
	for _, n := range names {
		if _, dup := fs.byName[n]; dup || fs.owners[n] != "" {
			if fs.declErr == nil {
				fs.declErr = &DuplicateFieldError{Name: n}
			}
			continue
		}
		fs.owners[n] = owner
		fs.companions[owner] = append(fs.companions[owner], n)
	}
}

// Fields returns the fields in declaration order.
func (fs *Fieldset) Fields() []field.Field {
	return append([]field.Field(nil), fs.fields...)
}

// FieldMap returns a name to field lookup.
func (fs *Fieldset) FieldMap() map[string]field.Field {
	out := make(map[string]field.Field, len(fs.byName))
	for k, v := range fs.byName {
		out[k] = v
	}
	return out
}

// FieldNames returns the visible output columns: non-hidden fields in
// declaration order, each followed by its companion columns.
func (fs *Fieldset) FieldNames() []string {
	var out []string
	for _, f := range fs.fields {
		if f.Hidden() {
			continue
		}
		out = append(out, f.Name())
		out = append(out, fs.companions[f.Name()]...)
	}
	return out
}

// Plan returns the generation plan, compiling it on first use.
func (fs *Fieldset) Plan() *Plan {
	if fs.plan == nil {
		fs.plan = compile(fs)
	}
	return fs.plan
}

// Generate produces n rows. Cancelling ctx stops between rows.
func (fs *Fieldset) Generate(ctx context.Context, n int) (*dataset.Dataset, error) {
	return fs.Plan().Generate(ctx, n)
}
