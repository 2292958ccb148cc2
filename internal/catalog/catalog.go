// Package catalog binds template class names to field, transformer and
// fieldset factories.
//
// Classes live under three namespaces: headfake.field.*, headfake.transformer.*
// and headfake.Fieldset (also reachable as headfake.fieldset.Fieldset).
// Because the registry also resolves the last dotted segment, templates may
// write "IdField" for "headfake.field.IdField".
package catalog

import (
	"fmt"

	"github.com/roach88/headfake/internal/builder"
	"github.com/roach88/headfake/internal/field"
	"github.com/roach88/headfake/internal/fieldset"
	"github.com/roach88/headfake/internal/spec"
)

// Namespaces of registered classes.
const (
	FieldPrefix       = "headfake.field."
	TransformerPrefix = "headfake.transformer."
	FieldsetClass     = "headfake.Fieldset"
)

// Config holds what factories need at construction time.
type Config struct {
	// Env is shared by every constructed field and transformer.
	Env *field.Env

	// Names names anonymous constant entries of a fieldset. It should be
	// the builder's own counter so that auto names never collide.
	Names *builder.NameCounter
}

// NewRegistry creates a registry holding every class.
func NewRegistry(cfg Config) *builder.Registry {
	reg := builder.NewRegistry()
	Register(reg, cfg)
	return reg
}

// Register adds every class to reg.
func Register(reg *builder.Registry, cfg Config) {
	if cfg.Names == nil {
		cfg.Names = builder.NewNameCounter("field")
	}
	registerFields(reg, cfg.Env)
	registerTransformers(reg, cfg.Env)

	newFieldset := func(p *builder.Params) (any, error) {
		fields, err := fieldset.FromNode(p.Require("fields"), cfg.Names.Next)
		if err != nil {
			return nil, err
		}
		return fieldset.New(fields)
	}
	reg.Register(FieldsetClass, newFieldset)
	reg.Register("headfake.fieldset.Fieldset", newFieldset)
}

// options reads the parameters shared by every field.
func options(p *builder.Params) field.Options {
	opts := field.Options{
		Name:              p.Name(),
		Transformers:      transformers(p, "transformers"),
		FinalTransformers: transformers(p, "final_transformers"),
		Hidden:            p.Bool("hidden", false),
	}
	if v, ok := p.Lookup("error_value"); ok {
		opts.ErrorValue = v
		opts.HasErrorValue = true
	}
	return opts
}

func transformers(p *builder.Params, key string) []field.Transformer {
	items := p.List(key)
	if len(items) == 0 {
		return nil
	}
	out := make([]field.Transformer, 0, len(items))
	for i, item := range items {
		t, ok := item.(field.Transformer)
		if !ok {
			p.Fail(&builder.ParameterTypeError{Param: fmt.Sprintf("%s[%d]", key, i), Expected: "a transformer", Got: item})
			continue
		}
		out = append(out, t)
	}
	return out
}

// requireField consumes key as a constructed field.
func requireField(p *builder.Params, key string) field.Field {
	v := p.Require(key)
	if v == nil {
		return nil
	}
	f, ok := v.(field.Field)
	if !ok {
		p.Fail(&builder.ParameterTypeError{Param: key, Expected: "a field", Got: v})
		return nil
	}
	return f
}

// floatMap converts a mapping such as a distribution's extra params to
// numbers.
func floatMap(p *builder.Params, key string, m *spec.Map) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, m.Len())
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		f, ok := number(v)
		if !ok {
			p.Fail(&builder.ParameterTypeError{Param: key + "." + k, Expected: "a number", Got: v})
			continue
		}
		out[k] = f
	}
	return out
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
