package fieldset

import (
	"fmt"

	"github.com/roach88/headfake/internal/field"
	"github.com/roach88/headfake/internal/spec"
)

// FromNode converts a built "fields" parameter into fields. node is either
// a list of built entries or a name-keyed mapping of them.
//
// Entries that are already fields are used as they are. Scalars and
// class-less {value: ...} mappings become constant fields; entries without
// a name take one from names.
func FromNode(node any, names func() string) ([]field.Field, error) {
	switch n := node.(type) {
	case []any:
		out := make([]field.Field, 0, len(n))
		for i, item := range n {
			f, err := entry("", item, names)
			if err != nil {
				return nil, fmt.Errorf("fields[%d]: %w", i, err)
			}
			out = append(out, f)
		}
		return out, nil
	case *spec.Map:
		out := make([]field.Field, 0, n.Len())
		for _, key := range n.Keys() {
			item, _ := n.Get(key)
			f, err := entry(key, item, names)
			if err != nil {
				return nil, fmt.Errorf("fields.%s: %w", key, err)
			}
			out = append(out, f)
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("fields must not be empty")
	}
	return nil, fmt.Errorf("fields must be a list or a mapping, got %T", node)
}

func entry(key string, item any, names func() string) (field.Field, error) {
	switch v := item.(type) {
	case field.Field:
		return v, nil
	case *spec.Map:
		value, ok := v.Get("value")
		if !ok {
			return nil, fmt.Errorf("mapping entry needs a class or a value")
		}
		for _, k := range v.Keys() {
			if k != "value" && k != spec.NameKey {
				return nil, fmt.Errorf("unexpected key %q in constant entry", k)
			}
		}
		name := key
		if n, ok := v.Get(spec.NameKey); ok && n != nil {
			name = fmt.Sprint(n)
		}
		return constant(name, value, names), nil
	case []any:
		return nil, fmt.Errorf("a list is not a field")
	}
	return constant(key, item, names), nil
}

func constant(name string, value any, names func() string) field.Field {
	if name == "" {
		name = names()
	}
	return field.NewConstantField(field.Options{Name: name}, value)
}
