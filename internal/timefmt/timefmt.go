// Package timefmt converts strftime-style date patterns used in templates
// ("%Y-%m-%d", "%d/%m/%Y", "%H:%M") into Go reference layouts.
//
// A pattern without any "%" directive is taken to be a Go layout already.
package timefmt

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// directives maps strftime directives to Go layout fragments. Directives
// with no Go equivalent (%j, %U, %W, %w) are rejected.
var directives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'e': "_2",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'f': "000000",
	'p': "PM",
	'b': "Jan",
	'h': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'z': "-0700",
	'Z': "MST",
	'F': "2006-01-02",
	'T': "15:04:05",
	'D': "01/02/06",
	'R': "15:04",
	'%': "%",
}

var cache sync.Map

// Layout converts pattern to a Go time layout.
func Layout(pattern string) (string, error) {
	if !strings.Contains(pattern, "%") {
		return pattern, nil
	}
	if cached, ok := cache.Load(pattern); ok {
		return cached.(string), nil
	}

	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(pattern) {
			return "", fmt.Errorf("date pattern %q: trailing %%", pattern)
		}
		i++
		frag, ok := directives[pattern[i]]
		if !ok {
			return "", fmt.Errorf("date pattern %q: unsupported directive %%%c", pattern, pattern[i])
		}
		b.WriteString(frag)
	}

	layout := b.String()
	cache.Store(pattern, layout)
	return layout, nil
}

// Format renders t using pattern.
func Format(pattern string, t time.Time) (string, error) {
	layout, err := Layout(pattern)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// Parse reads s using pattern. Values without zone information are UTC.
func Parse(pattern, s string) (time.Time, error) {
	layout, err := Layout(pattern)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q with pattern %q: %w", s, pattern, err)
	}
	return t, nil
}

// MustLayout is Layout for patterns known at compile time.
func MustLayout(pattern string) string {
	layout, err := Layout(pattern)
	if err != nil {
		panic(err)
	}
	return layout
}
