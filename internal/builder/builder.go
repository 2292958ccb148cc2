package builder

import (
	"fmt"
	"log/slog"

	"github.com/roach88/headfake/internal/spec"
)

// Builder turns a template tree into runtime objects.
//
// Resolution is bottom-up: every child of a class node is fully built before
// the node's own factory runs, so constructed fields and transformers can be
// passed as constructor parameters to their parent.
type Builder struct {
	registry *Registry
	names    *NameCounter
	logger   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithNameCounter replaces the counter that names anonymous class nodes.
func WithNameCounter(c *NameCounter) Option {
	return func(b *Builder) { b.names = c }
}

// New creates a Builder resolving classes against registry.
func New(registry *Registry, opts ...Option) *Builder {
	b := &Builder{
		registry: registry,
		names:    NewNameCounter("field"),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build resolves node. name is the identity supplied by the parent: the
// mapping key the node sits under, or the "name" key of a sequence item.
//
// Returns:
//   - the constructed object, for a mapping carrying "class"
//   - a *spec.Map of resolved children, for a plain mapping
//   - a []any of resolved children, for a sequence
//   - the scalar unchanged, otherwise
func (b *Builder) Build(name string, node any) (any, error) {
	switch n := node.(type) {
	case *spec.Map:
		if n.Has(spec.ClassKey) {
			return b.buildClass(name, n)
		}
		return b.buildMap(n)
	case []any:
		return b.buildList(n)
	default:
		return node, nil
	}
}

func (b *Builder) buildMap(m *spec.Map) (*spec.Map, error) {
	out := spec.NewMap()
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		built, err := b.Build(key, v)
		if err != nil {
			return nil, err
		}
		out.Set(key, built)
	}
	return out, nil
}

func (b *Builder) buildList(items []any) ([]any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		built, err := b.Build(itemName(item), item)
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}

func (b *Builder) buildClass(name string, m *spec.Map) (any, error) {
	rawClass, _ := m.Get(spec.ClassKey)
	class, ok := rawClass.(string)
	if !ok {
		return nil, &ParameterTypeError{Param: spec.ClassKey, Expected: "a string", Got: rawClass}
	}

	factory, canonical, ok := b.registry.Lookup(class)
	if !ok {
		return nil, &ClassNotFoundError{Class: class, Name: name}
	}

	if name == "" {
		name = itemName(m)
	}
	if name == "" {
		name = b.names.Next()
	}

	params := m.Clone()
	params.Delete(spec.ClassKey)
	resolved, err := b.buildMap(params)
	if err != nil {
		return nil, err
	}

	p := NewParams(canonical, name, resolved)
	obj, err := factory(p)
	if len(p.missing) > 0 {
		return nil, p.Err()
	}
	if len(p.errs) > 0 {
		return nil, &BuildError{Class: canonical, Name: name, Err: p.Err()}
	}
	if err != nil {
		if isParamError(err) {
			return nil, err
		}
		return nil, &BuildError{Class: canonical, Name: name, Err: err}
	}
	if err := p.Err(); err != nil {
		return nil, err
	}

	b.logger.Debug("constructed class", "class", canonical, "name", name)
	return obj, nil
}

func itemName(node any) string {
	m, ok := node.(*spec.Map)
	if !ok {
		return ""
	}
	v, ok := m.Get(spec.NameKey)
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func isParamError(err error) bool {
	return IsMissingParameter(err) || IsUnknownParameter(err) || IsClassNotFound(err)
}
