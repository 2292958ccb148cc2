// Package spec holds the untyped template tree consumed by the builder.
//
// A template is parsed once into nodes of three shapes:
//   - *Map: an ordered mapping; one carrying the reserved "class" key denotes
//     an object to instantiate, its siblings being constructor parameters
//   - []any: a sequence; items may carry a "name" key giving their identity
//   - scalars: string, int, float64, bool or nil
//
// YAML, JSON and CUE templates are supported. All three loaders preserve the
// declaration order of mapping keys, which the generation order of a
// name-keyed fieldset depends on.
package spec
