package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/headfake/internal/field"
)

const day = 24 * time.Hour

// NewConvertToNumber converts a value to a number: an int when asInteger is
// set (floats truncate toward zero), a float64 otherwise.
func NewConvertToNumber(name string, asInteger bool) field.Transformer {
	return newValueFunc(name, func(v any) (any, error) {
		if asInteger {
			return toInt(v)
		}
		return toFloat(v)
	})
}

// NewFormatNumber renders a number with dp decimal places.
func NewFormatNumber(name string, dp int) (field.Transformer, error) {
	if dp < 0 {
		return nil, fmt.Errorf("dp must not be negative, got %d", dp)
	}
	return newValueFunc(name, func(v any) (any, error) {
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		return strconv.FormatFloat(f, 'f', dp, 64), nil
	}), nil
}

// NewConvertToDaysDelta turns a number of days into a duration.
func NewConvertToDaysDelta(name string) field.Transformer {
	return newValueFunc(name, func(v any) (any, error) {
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		return time.Duration(math.Round(f * float64(day))), nil
	})
}

// NewGetProperty extracts a named property from the value.
//
// Durations expose days (whole days, rounded down), seconds (the remainder
// within the day), microseconds and total_seconds. Dates expose year,
// month, day, hour, minute, second, microsecond and weekday (Monday is 0).
// Multi-column values expose their keys.
func NewGetProperty(name, prop string) field.Transformer {
	return newValueFunc(name, func(v any) (any, error) {
		return property(v, prop)
	})
}

func property(v any, prop string) (any, error) {
	switch val := v.(type) {
	case time.Duration:
		days := int(math.Floor(float64(val) / float64(day)))
		rem := val - time.Duration(days)*day
		switch prop {
		case "days":
			return days, nil
		case "seconds":
			return int(rem / time.Second), nil
		case "microseconds":
			return int((rem % time.Second) / time.Microsecond), nil
		case "total_seconds":
			return val.Seconds(), nil
		}
	case time.Time:
		switch prop {
		case "year":
			return val.Year(), nil
		case "month":
			return int(val.Month()), nil
		case "day":
			return val.Day(), nil
		case "hour":
			return val.Hour(), nil
		case "minute":
			return val.Minute(), nil
		case "second":
			return val.Second(), nil
		case "microsecond":
			return val.Nanosecond() / 1000, nil
		case "weekday":
			return (int(val.Weekday()) + 6) % 7, nil
		}
	case field.Values:
		if p, ok := val[prop]; ok {
			return p, nil
		}
	case map[string]any:
		if p, ok := val[prop]; ok {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%T has no property %q", v, prop)
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
	}
	return 0, fmt.Errorf("cannot convert %T to a number", v)
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case float32:
		return int(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to an integer", n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("cannot convert %T to an integer", v)
}
