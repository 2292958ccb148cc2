package transform

import (
	"fmt"
	"time"

	"github.com/roach88/headfake/internal/field"
	"github.com/roach88/headfake/internal/timefmt"
)

// NewReformatDateTime parses a text date with sourceFormat and renders it
// with targetFormat.
func NewReformatDateTime(name, sourceFormat, targetFormat string) (field.Transformer, error) {
	if err := checkFormats(sourceFormat, targetFormat); err != nil {
		return nil, err
	}
	return newValueFunc(name, func(v any) (any, error) {
		t, err := parseTime(v, sourceFormat)
		if err != nil {
			return nil, err
		}
		return timefmt.Format(targetFormat, t)
	}), nil
}

// NewConvertStrToDate parses a text date into a date value.
func NewConvertStrToDate(name, format string) (field.Transformer, error) {
	if err := checkFormats(format); err != nil {
		return nil, err
	}
	return newValueFunc(name, func(v any) (any, error) {
		t, err := parseTime(v, format)
		if err != nil {
			return nil, err
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}), nil
}

// NewConvertStrToDateTime parses a text datetime and stamps it as UTC
// without shifting the wall clock.
func NewConvertStrToDateTime(name, format string) (field.Transformer, error) {
	if err := checkFormats(format); err != nil {
		return nil, err
	}
	return newValueFunc(name, func(v any) (any, error) {
		t, err := parseTime(v, format)
		if err != nil {
			return nil, err
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
	}), nil
}

// NewFormatDateTime renders a date or datetime value as text.
func NewFormatDateTime(name, format string) (field.Transformer, error) {
	if err := checkFormats(format); err != nil {
		return nil, err
	}
	return newValueFunc(name, func(v any) (any, error) {
		t, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("expected a date value, got %T", v)
		}
		return timefmt.Format(format, t)
	}), nil
}

func parseTime(v any, format string) (time.Time, error) {
	s, err := asString(v)
	if err != nil {
		return time.Time{}, err
	}
	return timefmt.Parse(format, s)
}

func checkFormats(formats ...string) error {
	for _, f := range formats {
		if _, err := timefmt.Layout(f); err != nil {
			return fmt.Errorf("format %q: %w", f, err)
		}
	}
	return nil
}
