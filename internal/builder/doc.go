// Package builder instantiates runtime object graphs from template trees.
//
// A mapping with a "class" key names a factory in a Registry; its sibling
// keys, resolved recursively first, become the factory's parameters. The
// registry replaces module/symbol lookup: classes are plain string
// identifiers bound to factory closures at startup.
//
// Build-time failures are distinguishable with errors.As:
//   - ClassNotFoundError: the class is not registered
//   - MissingParameterError: required parameters absent (all of them listed)
//   - UnknownParameterError: parameters no accessor consumed
//   - BuildError: any other constructor failure, carrying node name and class
package builder
