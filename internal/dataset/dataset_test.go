package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{42, "42"},
		{2.5, "2.5"},
		{float64(3), "3"},
		{true, "true"},
		{time.Date(2020, time.March, 4, 0, 0, 0, 0, time.UTC), "2020-03-04"},
		{time.Date(2020, time.March, 4, 13, 5, 9, 0, time.UTC), "2020-03-04 13:05:09"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}

func TestDatasetRecord(t *testing.T) {
	ds := New([]string{"id", "name"})
	ds.Append(map[string]any{"name": "Ada", "id": 1, "hidden": "x"})
	ds.Append(map[string]any{"id": 2})

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"1", "Ada"}, ds.Record(0))
	assert.Equal(t, []string{"2", ""}, ds.Record(1))
	assert.Equal(t, []any{"Ada", nil}, ds.Column("name"))
}
