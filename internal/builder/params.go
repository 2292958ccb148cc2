package builder

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/headfake/internal/spec"
)

// Params gives a factory typed access to a node's resolved constructor
// parameters and records which were consumed, which required ones were
// absent, and which had unusable types.
type Params struct {
	class   string
	name    string
	values  *spec.Map
	used    map[string]bool
	missing []string
	errs    []error
}

// NewParams wraps resolved parameter values for class. Exposed for factories
// tested in isolation; the builder constructs Params itself.
func NewParams(class, name string, values *spec.Map) *Params {
	if values == nil {
		values = spec.NewMap()
	}
	return &Params{
		class:  class,
		name:   name,
		values: values,
		used:   map[string]bool{spec.NameKey: true},
	}
}

// Class returns the canonical class name being constructed.
func (p *Params) Class() string { return p.class }

// Name returns the node's assigned name.
func (p *Params) Name() string { return p.name }

// Has reports whether key was supplied, without consuming it.
func (p *Params) Has(key string) bool {
	return p.values.Has(key)
}

// Lookup consumes key and returns its value.
func (p *Params) Lookup(key string) (any, bool) {
	v, ok := p.values.Get(key)
	if ok {
		p.used[key] = true
	}
	return v, ok
}

// Any consumes key, returning def when absent.
func (p *Params) Any(key string, def any) any {
	if v, ok := p.Lookup(key); ok {
		return v
	}
	return def
}

// Require consumes key, recording it as missing when absent.
func (p *Params) Require(key string) any {
	v, ok := p.Lookup(key)
	if !ok {
		p.missing = append(p.missing, key)
	}
	return v
}

// String consumes key as a string.
func (p *Params) String(key, def string) string {
	v, ok := p.Lookup(key)
	if !ok || v == nil {
		return def
	}
	return p.asString(key, v)
}

// RequireString consumes a required string.
func (p *Params) RequireString(key string) string {
	v := p.Require(key)
	if v == nil {
		return ""
	}
	return p.asString(key, v)
}

// Int consumes key as an integer.
func (p *Params) Int(key string, def int) int {
	v, ok := p.Lookup(key)
	if !ok || v == nil {
		return def
	}
	return p.asInt(key, v)
}

// RequireInt consumes a required integer.
func (p *Params) RequireInt(key string) int {
	v := p.Require(key)
	if v == nil {
		return 0
	}
	return p.asInt(key, v)
}

// Float consumes key as a float.
func (p *Params) Float(key string, def float64) float64 {
	v, ok := p.Lookup(key)
	if !ok || v == nil {
		return def
	}
	return p.asFloat(key, v)
}

// RequireFloat consumes a required float.
func (p *Params) RequireFloat(key string) float64 {
	v := p.Require(key)
	if v == nil {
		return 0
	}
	return p.asFloat(key, v)
}

// Bool consumes key as a boolean.
func (p *Params) Bool(key string, def bool) bool {
	v, ok := p.Lookup(key)
	if !ok || v == nil {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		if err == nil {
			return parsed
		}
	case int:
		return b != 0
	}
	p.typeError(key, "a boolean", v)
	return def
}

// List consumes key as a sequence. A single non-sequence value is wrapped.
func (p *Params) List(key string) []any {
	v, ok := p.Lookup(key)
	if !ok || v == nil {
		return nil
	}
	if list, ok := v.([]any); ok {
		return list
	}
	return []any{v}
}

// Map consumes key as a plain mapping; nil when absent.
func (p *Params) Map(key string) *spec.Map {
	v, ok := p.Lookup(key)
	if !ok || v == nil {
		return nil
	}
	m, ok := v.(*spec.Map)
	if !ok {
		p.typeError(key, "a mapping", v)
		return nil
	}
	return m
}

// Fail records a factory-side parameter error, reported after construction
// alongside type errors.
func (p *Params) Fail(err error) {
	p.errs = append(p.errs, err)
}

// Missing returns the required keys recorded as absent so far.
func (p *Params) Missing() []string {
	return append([]string(nil), p.missing...)
}

// Unused returns supplied keys that no accessor consumed, in declaration order.
func (p *Params) Unused() []string {
	var out []string
	for _, k := range p.values.Keys() {
		if !p.used[k] && k != spec.ClassKey {
			out = append(out, k)
		}
	}
	return out
}

// Err returns the parameter-level outcome of construction: missing
// parameters first, then type errors, then unconsumed parameters.
func (p *Params) Err() error {
	if len(p.missing) > 0 {
		return &MissingParameterError{Class: p.class, Name: p.name, Params: p.Missing()}
	}
	if len(p.errs) > 0 {
		return errors.Join(p.errs...)
	}
	if unused := p.Unused(); len(unused) > 0 {
		return &UnknownParameterError{Class: p.class, Name: p.name, Params: unused}
	}
	return nil
}

func (p *Params) asString(key string, v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int:
		return strconv.Itoa(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	p.typeError(key, "a string", v)
	return ""
}

func (p *Params) asInt(key string, v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == math.Trunc(n) {
			return int(n)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	p.typeError(key, "an integer", v)
	return 0
}

func (p *Params) asFloat(key string, v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	p.typeError(key, "a number", v)
	return 0
}

func (p *Params) typeError(key, expected string, got any) {
	p.errs = append(p.errs, &ParameterTypeError{Param: key, Expected: expected, Got: got})
}
