package harness

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/headfake/internal/dataset"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Column   string // Column checked, if any
	Row      int    // 1-based row of the first failure, 0 when not row-specific
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "assertion failed: %s", e.Type)
	if e.Column != "" {
		fmt.Fprintf(&buf, " on %q", e.Column)
	}
	if e.Row > 0 {
		fmt.Fprintf(&buf, " at row %d", e.Row)
	}
	fmt.Fprintf(&buf, ": expected %s, got %s", e.Expected, e.Actual)
	return buf.String()
}

// Check evaluates one assertion against ds.
func Check(ds *dataset.Dataset, a Assertion) error {
	switch a.Type {
	case AssertColumns:
		if !slices.Equal(ds.Columns, a.Columns) {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprint(a.Columns), Actual: fmt.Sprint(ds.Columns)}
		}
		return nil
	case AssertRowCount:
		if ds.Len() != a.Count {
			return &AssertionError{Type: a.Type, Expected: strconv.Itoa(a.Count), Actual: strconv.Itoa(ds.Len())}
		}
		return nil
	case AssertRow:
		return assertRow(ds, a)
	}

	if !slices.Contains(ds.Columns, a.Column) {
		return &AssertionError{Type: a.Type, Column: a.Column, Expected: "column present", Actual: "no such column"}
	}

	check, err := rowCheck(a)
	if err != nil {
		return err
	}
	for i, row := range ds.Rows {
		if !matchWhere(row, a.Where) {
			continue
		}
		if ok, expected, actual := check(row[a.Column]); !ok {
			return &AssertionError{Type: a.Type, Column: a.Column, Row: i + 1, Expected: expected, Actual: actual}
		}
	}
	return nil
}

// rowCheck returns a predicate for the per-value assertion types. The
// predicate reports the expected and actual outcome on failure.
func rowCheck(a Assertion) (func(v any) (bool, string, string), error) {
	switch a.Type {
	case AssertValuesIn:
		allowed := make([]string, len(a.Values))
		for i, v := range a.Values {
			allowed[i] = dataset.FormatValue(v)
		}
		return func(v any) (bool, string, string) {
			s := dataset.FormatValue(v)
			return slices.Contains(allowed, s), fmt.Sprintf("one of %v", allowed), strconv.Quote(s)
		}, nil

	case AssertMatches:
		re, err := regexp.Compile(a.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", a.Pattern, err)
		}
		return func(v any) (bool, string, string) {
			s := dataset.FormatValue(v)
			return re.MatchString(s), "match for " + a.Pattern, strconv.Quote(s)
		}, nil

	case AssertRange:
		expected := fmt.Sprintf("a number in [%s, %s]", bound(a.Min), bound(a.Max))
		return func(v any) (bool, string, string) {
			f, ok := toFloat(v)
			if !ok {
				return false, expected, fmt.Sprintf("%v (%T)", v, v)
			}
			if (a.Min != nil && f < *a.Min) || (a.Max != nil && f > *a.Max) {
				return false, expected, dataset.FormatValue(v)
			}
			return true, "", ""
		}, nil

	case AssertUnique:
		seen := map[string]bool{}
		return func(v any) (bool, string, string) {
			s := dataset.FormatValue(v)
			if seen[s] {
				return false, "unique values", "duplicate " + strconv.Quote(s)
			}
			seen[s] = true
			return true, "", ""
		}, nil

	case AssertNotEmpty:
		return func(v any) (bool, string, string) {
			return v != nil && dataset.FormatValue(v) != "", "a value", "empty"
		}, nil
	}
	return nil, fmt.Errorf("unknown assertion type %q", a.Type)
}

func assertRow(ds *dataset.Dataset, a Assertion) error {
	for i, row := range ds.Rows {
		if !matchWhere(row, a.Where) {
			continue
		}
		for col, want := range a.Expect {
			if got := dataset.FormatValue(row[col]); got != dataset.FormatValue(want) {
				return &AssertionError{
					Type: a.Type, Column: col, Row: i + 1,
					Expected: strconv.Quote(dataset.FormatValue(want)), Actual: strconv.Quote(got),
				}
			}
		}
		return nil
	}
	return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("a row where %v", a.Where), Actual: "no match"}
}

// matchWhere reports whether row has every where value, comparing
// formatted strings.
func matchWhere(row map[string]any, where map[string]any) bool {
	for col, want := range where {
		if dataset.FormatValue(row[col]) != dataset.FormatValue(want) {
			return false
		}
	}
	return true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func bound(b *float64) string {
	if b == nil {
		return "-"
	}
	return strconv.FormatFloat(*b, 'f', -1, 64)
}
