package spec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Format identifies a template serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCUE  Format = "cue"
)

// Error codes reported by LoadError.
const (
	ErrCodeNotFound    = "E005" // Template path not found
	ErrCodeReadFailed  = "E004" // Template could not be read
	ErrCodeParseFailed = "E006" // Template could not be parsed
	ErrCodeFormat      = "E008" // Unsupported template format
)

// LoadError represents a failure to turn a template file into a node tree.
type LoadError struct {
	Code    string
	Message string
	Path    string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FormatFromPath infers the template format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", &LoadError{Code: ErrCodeFormat, Message: fmt.Sprintf("unsupported template extension %q", filepath.Ext(path)), Path: path}
	}
}

// LoadFile reads and parses a template file.
func LoadFile(path string) (any, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: "template not found", Path: path, Err: err}
		}
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading template: %v", err), Path: path, Err: err}
	}

	node, err := parse(data, format, path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error(), Path: path, Err: err}
	}
	return node, nil
}

// Parse parses template data of the given format into a node tree of
// *Map, []any and scalars.
func Parse(data []byte, format Format) (any, error) {
	node, err := parse(data, format, "")
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error(), Err: err}
	}
	return node, nil
}

func parse(data []byte, format Format, filename string) (any, error) {
	switch format {
	case FormatYAML:
		return parseYAML(data)
	case FormatJSON:
		return parseJSON(data)
	case FormatCUE:
		return parseCUE(data, filename)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// parseYAML walks the yaml.Node tree so mapping order survives.
func parseYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind == 0 {
		return NewMap(), nil
	}
	return fromYAML(&doc)
}

func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return NewMap(), nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Tag == "!!merge" {
				if err := mergeYAML(m, val); err != nil {
					return nil, err
				}
				continue
			}
			v, err := fromYAML(val)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key.Value, err)
			}
			m.SetTyped(key.Value, scalarKey(key), v)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for i, item := range n.Content {
			v, err := fromYAML(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

// scalarKey decodes a mapping key; keys that do not decode to a scalar keep
// their text.
func scalarKey(key *yaml.Node) any {
	if key.Kind != yaml.ScalarNode {
		return key.Value
	}
	var v any
	if err := key.Decode(&v); err != nil {
		return key.Value
	}
	switch v.(type) {
	case int, float64, bool:
		return v
	}
	return key.Value
}

// mergeYAML applies a "<<" merge key; explicit keys already set win.
func mergeYAML(dst *Map, val *yaml.Node) error {
	src, err := fromYAML(val)
	if err != nil {
		return err
	}
	var sources []*Map
	switch s := src.(type) {
	case *Map:
		sources = append(sources, s)
	case []any:
		for _, item := range s {
			if m, ok := item.(*Map); ok {
				sources = append(sources, m)
			}
		}
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", val.Line)
	}
	for _, s := range sources {
		for _, k := range s.Keys() {
			if !dst.Has(k) {
				v, _ := s.Get(k)
				dst.SetTyped(k, s.KeyValue(k), v)
			}
		}
	}
	return nil
}

// parseJSON decodes by token so object key order survives.
func parseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to parse JSON: trailing data")
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, fmt.Errorf("key %q: %w", key, err)
				}
				m.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			out := []any{}
			for dec.More() {
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, fmt.Errorf("index %d: %w", len(out), err)
				}
				out = append(out, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return out, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case json.Number:
		if i, err := strconv.Atoi(t.String()); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		// string, bool, nil
		return t, nil
	}
}

// parseCUE evaluates a CUE document and walks the resulting value.
func parseCUE(data []byte, filename string) (any, error) {
	ctx := cuecontext.New()
	var opts []cue.BuildOption
	if filename != "" {
		opts = append(opts, cue.Filename(filename))
	}
	value := ctx.CompileBytes(data, opts...)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building CUE value: %w", err)
	}
	return fromCUE(value)
}

func fromCUE(v cue.Value) (any, error) {
	if err := v.Err(); err != nil {
		return nil, err
	}
	switch v.Kind() {
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, err
		}
		m := NewMap()
		for iter.Next() {
			label := cueLabel(iter.Label())
			child, err := fromCUE(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", label, err)
			}
			m.Set(label, child)
		}
		return m, nil
	case cue.ListKind:
		list, err := v.List()
		if err != nil {
			return nil, err
		}
		out := []any{}
		for list.Next() {
			child, err := fromCUE(list.Value())
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", len(out), err)
			}
			out = append(out, child)
		}
		return out, nil
	case cue.StringKind:
		return v.String()
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, err
		}
		return int(n), nil
	case cue.FloatKind, cue.NumberKind:
		return v.Float64()
	case cue.BoolKind:
		return v.Bool()
	case cue.NullKind:
		return nil, nil
	default:
		return nil, fmt.Errorf("%v: value is not concrete", v.Pos())
	}
}

// cueLabel strips the quotes CUE keeps on non-identifier labels such as "30-100".
func cueLabel(label string) string {
	if strings.HasPrefix(label, `"`) {
		if s, err := strconv.Unquote(label); err == nil {
			return s
		}
	}
	return label
}
