package field

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Operator is a named binary function used by conditions and operation
// fields.
type Operator func(a, b any) (any, error)

var operators = map[string]Operator{
	"eq":       func(a, b any) (any, error) { return equal(a, b), nil },
	"ne":       func(a, b any) (any, error) { return !equal(a, b), nil },
	"lt":       compareWith(func(c int) bool { return c < 0 }),
	"le":       compareWith(func(c int) bool { return c <= 0 }),
	"gt":       compareWith(func(c int) bool { return c > 0 }),
	"ge":       compareWith(func(c int) bool { return c >= 0 }),
	"add":      add,
	"sub":      sub,
	"mul":      arith(func(a, b int) int { return a * b }, func(a, b float64) float64 { return a * b }),
	"truediv":  truediv,
	"floordiv": floordiv,
	"mod":      mod,
	"pow":      pow,
	"and_":     func(a, b any) (any, error) { return truthy(a) && truthy(b), nil },
	"or_":      func(a, b any) (any, error) { return truthy(a) || truthy(b), nil },
	"contains": contains,
	"concat":   func(a, b any) (any, error) { return toString(a) + toString(b), nil },
}

// LookupOperator resolves an operator by name, with or without the
// "operator." prefix.
func LookupOperator(name string) (Operator, error) {
	key := strings.TrimPrefix(name, "operator.")
	if op, ok := operators[key]; ok {
		return op, nil
	}
	if op, ok := operators[key+"_"]; ok {
		return op, nil
	}
	return nil, fmt.Errorf("unknown operator %q (supported: %s)", name, strings.Join(OperatorNames(), ", "))
}

// OperatorNames lists the supported operator names.
func OperatorNames() []string {
	names := make([]string, 0, len(operators))
	for k := range operators {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int64, float64, float32, bool:
		return true
	}
	return false
}

func isInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

func equal(a, b any) bool {
	if isNumber(a) && isNumber(b) {
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return fa == fb
	}
	ta, aok := a.(time.Time)
	tb, bok := b.(time.Time)
	if aok && bok {
		return ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

// compare orders numbers, times, durations and strings.
func compare(a, b any) (int, error) {
	switch {
	case isNumber(a) && isNumber(b):
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return cmpFloat(fa, fb), nil
	}
	switch x := a.(type) {
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y), nil
		}
	case time.Duration:
		if y, ok := b.(time.Duration); ok {
			return cmpFloat(float64(x), float64(y)), nil
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), nil
		}
	}
	return 0, fmt.Errorf("cannot compare %T with %T", a, b)
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareWith(pred func(int) bool) Operator {
	return func(a, b any) (any, error) {
		c, err := compare(a, b)
		if err != nil {
			return nil, err
		}
		return pred(c), nil
	}
}

func arith(ints func(a, b int) int, floats func(a, b float64) float64) Operator {
	return func(a, b any) (any, error) {
		if ia, ok := isInt(a); ok {
			if ib, ok := isInt(b); ok {
				return ints(ia, ib), nil
			}
		}
		fa, err := toFloat(a)
		if err != nil {
			return nil, err
		}
		fb, err := toFloat(b)
		if err != nil {
			return nil, err
		}
		return floats(fa, fb), nil
	}
}

var addNumbers = arith(func(a, b int) int { return a + b }, func(a, b float64) float64 { return a + b })

func add(a, b any) (any, error) {
	switch x := a.(type) {
	case time.Time:
		if d, ok := b.(time.Duration); ok {
			return x.Add(d), nil
		}
	case time.Duration:
		switch y := b.(type) {
		case time.Time:
			return y.Add(x), nil
		case time.Duration:
			return x + y, nil
		}
	case string:
		if y, ok := b.(string); ok {
			return x + y, nil
		}
	case []any:
		if y, ok := b.([]any); ok {
			return append(append([]any{}, x...), y...), nil
		}
	}
	return addNumbers(a, b)
}

var subNumbers = arith(func(a, b int) int { return a - b }, func(a, b float64) float64 { return a - b })

func sub(a, b any) (any, error) {
	switch x := a.(type) {
	case time.Time:
		switch y := b.(type) {
		case time.Time:
			return x.Sub(y), nil
		case time.Duration:
			return x.Add(-y), nil
		}
	case time.Duration:
		if y, ok := b.(time.Duration); ok {
			return x - y, nil
		}
	}
	return subNumbers(a, b)
}

func truediv(a, b any) (any, error) {
	fa, err := toFloat(a)
	if err != nil {
		return nil, err
	}
	fb, err := toFloat(b)
	if err != nil {
		return nil, err
	}
	if fb == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	return fa / fb, nil
}

func floordiv(a, b any) (any, error) {
	if ia, ok := isInt(a); ok {
		if ib, ok := isInt(b); ok {
			if ib == 0 {
				return nil, fmt.Errorf("integer division by zero")
			}
			return int(math.Floor(float64(ia) / float64(ib))), nil
		}
	}
	q, err := truediv(a, b)
	if err != nil {
		return nil, err
	}
	return math.Floor(q.(float64)), nil
}

func mod(a, b any) (any, error) {
	if ia, ok := isInt(a); ok {
		if ib, ok := isInt(b); ok {
			if ib == 0 {
				return nil, fmt.Errorf("integer modulo by zero")
			}
			r := ia % ib
			if r != 0 && (r < 0) != (ib < 0) {
				r += ib
			}
			return r, nil
		}
	}
	fa, err := toFloat(a)
	if err != nil {
		return nil, err
	}
	fb, err := toFloat(b)
	if err != nil {
		return nil, err
	}
	if fb == 0 {
		return nil, fmt.Errorf("float modulo by zero")
	}
	return fa - math.Floor(fa/fb)*fb, nil
}

func pow(a, b any) (any, error) {
	if ia, ok := isInt(a); ok {
		if ib, ok := isInt(b); ok && ib >= 0 {
			return int(math.Pow(float64(ia), float64(ib))), nil
		}
	}
	fa, err := toFloat(a)
	if err != nil {
		return nil, err
	}
	fb, err := toFloat(b)
	if err != nil {
		return nil, err
	}
	return math.Pow(fa, fb), nil
}

func contains(a, b any) (any, error) {
	switch x := a.(type) {
	case string:
		return strings.Contains(x, toString(b)), nil
	case []any:
		for _, item := range x {
			if equal(item, b) {
				return true, nil
			}
		}
		return false, nil
	case map[string]any:
		_, ok := x[toString(b)]
		return ok, nil
	}
	return nil, fmt.Errorf("cannot test membership in %T", a)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case time.Duration:
		return x != 0
	case []any:
		return len(x) > 0
	}
	return true
}
