package transform

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/headfake/internal/dataset"
	"github.com/roach88/headfake/internal/field"
)

// Hooks provides pass-through BeforeNext and AfterNext implementations.
type Hooks struct {
	name string
}

func (h Hooks) Name() string { return h.name }

func (Hooks) BeforeNext(field.Field, field.Row) (field.Result, error) {
	return field.Continue(nil), nil
}

func (Hooks) AfterNext(_ field.Field, _ field.Row, v any) (field.Result, error) {
	return field.Continue(v), nil
}

// valueFunc adapts a pure value conversion to AfterNext.
type valueFunc struct {
	Hooks
	fn func(v any) (any, error)
}

func (t *valueFunc) AfterNext(_ field.Field, _ field.Row, v any) (field.Result, error) {
	out, err := t.fn(v)
	if err != nil {
		return field.Result{}, err
	}
	return field.Continue(out), nil
}

func newValueFunc(name string, fn func(v any) (any, error)) *valueFunc {
	return &valueFunc{Hooks: Hooks{name: name}, fn: fn}
}

// NewUpperCase converts the value's text form to upper case.
func NewUpperCase(name string) field.Transformer {
	return newValueFunc(name, func(v any) (any, error) {
		return strings.ToUpper(dataset.FormatValue(v)), nil
	})
}

// NewLowerCase converts the value's text form to lower case.
func NewLowerCase(name string) field.Transformer {
	return newValueFunc(name, func(v any) (any, error) {
		return strings.ToLower(dataset.FormatValue(v)), nil
	})
}

// NewTitleCase capitalizes each word using the casing rules of locale
// ("en_GB", "tr", ...). An unrecognized locale uses language-neutral rules.
func NewTitleCase(name, locale string) field.Transformer {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		tag = language.Und
	}
	caser := cases.Title(tag)
	return newValueFunc(name, func(v any) (any, error) {
		return caser.String(dataset.FormatValue(v)), nil
	})
}

// IntermittentBlanks replaces a field's value with BlankValue at a rate of
// BlankProbability. The field's own generator does not run for a blanked
// row.
type IntermittentBlanks struct {
	Hooks
	rnd         field.Random
	probability float64
	blank       any
}

func NewIntermittentBlanks(name string, rnd field.Random, blankProbability float64, blankValue any) (*IntermittentBlanks, error) {
	if blankProbability < 0 || blankProbability > 1 {
		return nil, fmt.Errorf("blank_probability must be between 0 and 1, got %v", blankProbability)
	}
	return &IntermittentBlanks{Hooks: Hooks{name: name}, rnd: rnd, probability: blankProbability, blank: blankValue}, nil
}

func (t *IntermittentBlanks) BeforeNext(field.Field, field.Row) (field.Result, error) {
	if t.rnd.Float64() < t.probability {
		return field.Override(t.blank), nil
	}
	return field.Continue(nil), nil
}

var pyGroupRef = regexp.MustCompile(`\\(\d+)|\\g<(\w+)>`)

// NewRegexSubstitute replaces every match of pattern. Group references may
// be written \1 or \g<name> as well as ${1}.
func NewRegexSubstitute(name, pattern, replace string) (field.Transformer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	repl := pyGroupRef.ReplaceAllString(replace, "$${$1$2}")
	return newValueFunc(name, func(v any) (any, error) {
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return re.ReplaceAllString(s, repl), nil
	}), nil
}

// NewTruncate keeps the first length characters.
func NewTruncate(name string, length int) (field.Transformer, error) {
	if length < 0 {
		return nil, fmt.Errorf("length must not be negative, got %d", length)
	}
	return newValueFunc(name, func(v any) (any, error) {
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		if utf8.RuneCountInString(s) <= length {
			return s, nil
		}
		return string([]rune(s)[:length]), nil
	}), nil
}

// NewPadding pads the value to length characters with fill. Align "left"
// keeps the value on the left, "right" on the right; any other alignment
// leaves the value unchanged.
func NewPadding(name string, length int, fill, align string) (field.Transformer, error) {
	if utf8.RuneCountInString(fill) != 1 {
		return nil, fmt.Errorf("fill must be exactly one character, got %q", fill)
	}
	return newValueFunc(name, func(v any) (any, error) {
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		n := length - utf8.RuneCountInString(s)
		if n <= 0 {
			return s, nil
		}
		switch align {
		case "left":
			return s + strings.Repeat(fill, n), nil
		case "right":
			return strings.Repeat(fill, n) + s, nil
		}
		return s, nil
	}), nil
}

// NewSplitPiece splits the value on separator and returns the piece at
// index. An index past the end yields "". Negative indexes count from the
// end.
func NewSplitPiece(name, separator string, index int) (field.Transformer, error) {
	if separator == "" {
		return nil, fmt.Errorf("separator must not be empty")
	}
	return newValueFunc(name, func(v any) (any, error) {
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		pieces := strings.Split(s, separator)
		i := index
		if i < 0 {
			i += len(pieces)
			if i < 0 {
				return nil, fmt.Errorf("piece index %d out of range for %d pieces", index, len(pieces))
			}
		}
		if i > len(pieces)-1 {
			return "", nil
		}
		return pieces[i], nil
	}), nil
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected a string value, got %T", v)
	}
	return s, nil
}
