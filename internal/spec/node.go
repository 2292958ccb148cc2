package spec

// Reserved keys in a template mapping.
const (
	// ClassKey selects the runtime type a mapping is instantiated as.
	ClassKey = "class"

	// NameKey threads identity through sequences.
	NameKey = "name"
)

// Map is an ordered string-keyed mapping.
//
// Template mappings must keep their declaration order: a fieldset given
// as a name-keyed mapping generates its fields in that order, and the option
// field builds its weighted pool in the order probabilities were declared.
type Map struct {
	keys   []string
	values map[string]any

	// typed holds keys that decoded to a non-string scalar, such as the 1
	// of "1: 0.5".
	typed map[string]any
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// MapOf builds a Map from alternating key/value arguments.
// Panics if a key is not a string; intended for tests and literals.
//
//	spec.MapOf("class", "IdField", "prefix", "P")
func MapOf(kv ...any) *Map {
	if len(kv)%2 != 0 {
		panic("spec.MapOf: odd number of arguments")
	}
	m := NewMap()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic("spec.MapOf: key must be a string")
		}
		m.Set(key, kv[i+1])
	}
	return m
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in declaration order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position.
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// SetTyped is Set for a key whose decoded form is typed. KeyValue returns
// typed for key afterwards unless typed is a string.
func (m *Map) SetTyped(key string, typed any, value any) {
	m.Set(key, value)
	if _, isString := typed.(string); isString || typed == nil {
		delete(m.typed, key)
		return
	}
	if m.typed == nil {
		m.typed = make(map[string]any)
	}
	m.typed[key] = typed
}

// KeyValue returns key as decoded from the template: the int, float or
// bool of a non-string scalar key, else key itself.
func (m *Map) KeyValue(key string) any {
	if m != nil {
		if v, ok := m.typed[key]; ok {
			return v
		}
	}
	return key
}

// Delete removes key, preserving the order of the remaining entries.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	delete(m.typed, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a shallow copy.
func (m *Map) Clone() *Map {
	out := NewMap()
	for _, k := range m.Keys() {
		out.SetTyped(k, m.KeyValue(k), m.values[k])
	}
	return out
}

// Each calls fn for every entry in order, stopping at the first error.
func (m *Map) Each(fn func(key string, value any) error) error {
	for _, k := range m.Keys() {
		if err := fn(k, m.values[k]); err != nil {
			return err
		}
	}
	return nil
}

// ToPlain converts a node tree into plain Go maps and slices.
// Ordering is lost; used for diagnostics and JSON dumps.
func ToPlain(node any) any {
	switch n := node.(type) {
	case *Map:
		out := make(map[string]any, n.Len())
		for _, k := range n.Keys() {
			v, _ := n.Get(k)
			out[k] = ToPlain(v)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			out[i] = ToPlain(v)
		}
		return out
	default:
		return n
	}
}
