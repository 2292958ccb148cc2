package builder

import (
	"fmt"
	"sort"
	"strings"
)

// Factory constructs a runtime object from resolved constructor parameters.
//
// Factories read their parameters through p. The builder checks afterwards
// for missing and unconsumed parameters, so a factory only needs to return
// an error for failures of its own.
type Factory func(p *Params) (any, error)

// Registry maps class identifiers to factories.
//
// A class resolves by exact name first and then by its last dotted segment,
// so "headfake.field.IdField" and "IdField" reach the same factory.
type Registry struct {
	factories map[string]Factory
	short     map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		short:     make(map[string]string),
	}
}

// Register binds class to f. Registering the same class twice panics:
// registration happens once at startup and a clash is a programming error.
func (r *Registry) Register(class string, f Factory) {
	if _, exists := r.factories[class]; exists {
		panic(fmt.Sprintf("builder: class %q registered twice", class))
	}
	r.factories[class] = f

	short := shortName(class)
	if short != class {
		if _, taken := r.short[short]; !taken {
			r.short[short] = class
		}
	}
}

// Lookup returns the factory for class and its canonical name.
func (r *Registry) Lookup(class string) (Factory, string, bool) {
	if f, ok := r.factories[class]; ok {
		return f, class, true
	}
	if canonical, ok := r.short[shortName(class)]; ok {
		return r.factories[canonical], canonical, true
	}
	return nil, "", false
}

// Classes returns all registered class names, sorted.
func (r *Registry) Classes() []string {
	out := make([]string, 0, len(r.factories))
	for c := range r.factories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func shortName(class string) string {
	if i := strings.LastIndex(class, "."); i >= 0 {
		return class[i+1:]
	}
	return class
}
