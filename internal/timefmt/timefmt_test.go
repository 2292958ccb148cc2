package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"%Y-%m-%d", "2006-01-02"},
		{"%d/%m/%Y", "02/01/2006"},
		{"%H:%M", "15:04"},
		{"%Y-%m-%d %H:%M:%S", "2006-01-02 15:04:05"},
		{"%d %B %Y", "02 January 2006"},
		{"100%%", "100%"},
		{"2006-01-02", "2006-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := Layout(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayout_Errors(t *testing.T) {
	_, err := Layout("%Y-%j")
	assert.ErrorContains(t, err, "unsupported directive %j")

	_, err = Layout("%Y-%")
	assert.ErrorContains(t, err, "trailing")
}

func TestFormatAndParse(t *testing.T) {
	d := time.Date(1980, time.March, 7, 14, 5, 0, 0, time.UTC)

	s, err := Format("%d/%m/%Y %H:%M", d)
	require.NoError(t, err)
	assert.Equal(t, "07/03/1980 14:05", s)

	back, err := Parse("%d/%m/%Y %H:%M", s)
	require.NoError(t, err)
	assert.True(t, d.Equal(back))

	_, err = Parse("%Y-%m-%d", "07/03/1980")
	assert.Error(t, err)
}
