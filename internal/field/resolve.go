package field

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/headfake/internal/dataset"
	"github.com/roach88/headfake/internal/timefmt"
)

// Operands of numeric and date parameters (min, max, mean, end_date, ...)
// are one of:
//   - a literal value
//   - the name of a column already generated in the row
//   - a nested Field, generated on demand against the row
//
// A string is first looked up as a column and only then parsed as a literal.

// resolve returns the raw value of operand against row.
func resolve(owner string, operand any, row Row) (any, error) {
	switch v := operand.(type) {
	case Field:
		return v.NextValue(row)
	case string:
		if rv, ok := row[v]; ok {
			return rv, nil
		}
		return v, nil
	default:
		return operand, nil
	}
}

func resolveFloat(owner string, operand any, row Row) (float64, error) {
	v, err := resolve(owner, operand, row)
	if err != nil {
		return 0, err
	}
	if s, ok := v.(string); ok {
		f, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if perr != nil {
			return 0, &UnresolvedReferenceError{Field: owner, Column: s}
		}
		return f, nil
	}
	return toFloat(v)
}

func resolveInt(owner string, operand any, row Row) (int, error) {
	f, err := resolveFloat(owner, operand, row)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// resolveTime resolves a date operand. String values are parsed with
// pattern, falling back to ISO forms.
func resolveTime(owner string, operand any, row Row, pattern string) (time.Time, error) {
	if s, ok := operand.(string); ok {
		if rv, ok := row[s]; ok {
			return toTime(rv, pattern)
		}
		t, err := toTime(s, pattern)
		if err != nil {
			return time.Time{}, &UnresolvedReferenceError{Field: owner, Column: s}
		}
		return t, nil
	}
	v, err := resolve(owner, operand, row)
	if err != nil {
		return time.Time{}, err
	}
	return toTime(v, pattern)
}

// resolveAny resolves a branch or operand that may be a Field or a literal.
// Strings are returned literally.
func resolveAny(operand any, row Row) (any, error) {
	if f, ok := operand.(Field); ok {
		return f.NextValue(row)
	}
	return operand, nil
}

var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func toTime(v any, pattern string) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		if pattern != "" {
			if parsed, err := timefmt.Parse(pattern, t); err == nil {
				return parsed, nil
			}
		}
		for _, layout := range isoLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, nil
			}
		}
		if pattern != "" {
			return time.Time{}, fmt.Errorf("cannot parse %q as a date with format %q", t, pattern)
		}
		return time.Time{}, fmt.Errorf("cannot parse %q as a date", t)
	case nil:
		return time.Time{}, fmt.Errorf("cannot use empty value as a date")
	}
	return time.Time{}, fmt.Errorf("cannot use %T as a date", v)
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to a number", n)
		}
		return f, nil
	case time.Duration:
		return n.Hours() / 24, nil
	}
	return 0, fmt.Errorf("cannot convert %T to a number", v)
}

func toString(v any) string {
	return dataset.FormatValue(v)
}

// roundTo rounds half away from zero to dp decimal places.
func roundTo(v float64, dp int) float64 {
	p := math.Pow(10, float64(dp))
	return math.Round(v*p) / p
}

// calculateAge returns whole years between from and to. A 29 February
// birthday falls on 1 March in non-leap years.
func calculateAge(from, to time.Time) int {
	years := to.Year() - from.Year()
	month, day := from.Month(), from.Day()
	if month == time.February && day == 29 && !isLeap(to.Year()) {
		month, day = time.March, 1
	}
	if to.Month() < month || (to.Month() == month && to.Day() < day) {
		years--
	}
	return years
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
