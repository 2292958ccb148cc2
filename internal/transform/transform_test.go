package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/headfake/internal/field"
	"github.com/roach88/headfake/internal/random"
	"github.com/roach88/headfake/internal/testutil"
)

func apply(t *testing.T, tr field.Transformer, v any) any {
	t.Helper()
	res, err := tr.AfterNext(nil, field.Row{}, v)
	require.NoError(t, err)
	assert.False(t, res.Overridden)
	return res.Value
}

func must(t *testing.T) func(field.Transformer, error) field.Transformer {
	return func(tr field.Transformer, err error) field.Transformer {
		t.Helper()
		require.NoError(t, err)
		return tr
	}
}

func TestCaseTransformers(t *testing.T) {
	assert.Equal(t, "ABC1", apply(t, NewUpperCase("u"), "aBc1"))
	assert.Equal(t, "12", apply(t, NewUpperCase("u"), 12))
	assert.Equal(t, "abc", apply(t, NewLowerCase("l"), "ABC"))
	assert.Equal(t, "Mary Jane", apply(t, NewTitleCase("t", "en_GB"), "mary JANE"))
	assert.Equal(t, "İstanbul", apply(t, NewTitleCase("t", "tr"), "istanbul"))
	assert.Equal(t, "Leeds", apply(t, NewTitleCase("t", "not a locale!"), "leeds"))
}

func TestStringTransformers(t *testing.T) {
	tests := []struct {
		name string
		tr   field.Transformer
		in   any
		want any
	}{
		{"regex", must(t)(NewRegexSubstitute("r", `(\d+)-(\d+)`, `\2/\1`)), "12-34 and 5-6", "34/12 and 6/5"},
		{"regex named", must(t)(NewRegexSubstitute("r", `(?P<word>\w+)@`, `\g<word> at `)), "ann@", "ann at "},
		{"truncate", must(t)(NewTruncate("t", 3)), "abcdef", "abc"},
		{"truncate short", must(t)(NewTruncate("t", 10)), "abc", "abc"},
		{"truncate runes", must(t)(NewTruncate("t", 2)), "éèê", "éè"},
		{"pad left", must(t)(NewPadding("p", 5, "0", "left")), "42", "42000"},
		{"pad right", must(t)(NewPadding("p", 5, "0", "right")), "42", "00042"},
		{"pad other", must(t)(NewPadding("p", 5, "0", "centre")), "42", "42"},
		{"pad longer", must(t)(NewPadding("p", 1, " ", "left")), "42", "42"},
		{"split", must(t)(NewSplitPiece("s", ";", 1)), "A;B;C;D", "B"},
		{"split past end", must(t)(NewSplitPiece("s", ";", 9)), "A;B", ""},
		{"split negative", must(t)(NewSplitPiece("s", ";", -1)), "A;B", "B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apply(t, tt.tr, tt.in))
		})
	}
}

func TestStringTransformers_Errors(t *testing.T) {
	_, err := NewRegexSubstitute("r", "(", "")
	assert.ErrorContains(t, err, "invalid pattern")

	_, err = NewPadding("p", 3, "ab", "left")
	assert.ErrorContains(t, err, "one character")

	tr := must(t)(NewTruncate("t", 2))
	_, err = tr.AfterNext(nil, field.Row{}, 1234)
	assert.ErrorContains(t, err, "expected a string")
}

func TestIntermittentBlanks(t *testing.T) {
	r := testutil.NewScriptedRandom(0.05, 0.5)
	blanks, err := NewIntermittentBlanks("b", r, 0.1, "")
	require.NoError(t, err)

	f := field.NewConstantField(field.Options{Name: "x", Transformers: []field.Transformer{blanks, NewUpperCase("u")}}, "v")

	v, err := f.NextValue(field.Row{})
	require.NoError(t, err)
	assert.Equal(t, "", v, "override skips later transformers")

	v, err = f.NextValue(field.Row{})
	require.NoError(t, err)
	assert.Equal(t, "V", v)

	_, err = NewIntermittentBlanks("b", r, 1.5, "")
	assert.Error(t, err)
}

func TestIntermittentBlanks_Rate(t *testing.T) {
	blanks, err := NewIntermittentBlanks("b", random.New(5), 0.25, nil)
	require.NoError(t, err)

	blanked := 0
	for i := 0; i < 4000; i++ {
		res, err := blanks.BeforeNext(nil, field.Row{})
		require.NoError(t, err)
		if res.Overridden {
			assert.Nil(t, res.Value)
			blanked++
		}
	}
	assert.InDelta(t, 1000, blanked, 120)
}

func TestDateTimeTransformers(t *testing.T) {
	date := time.Date(2021, time.July, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "09/07/2021", apply(t, must(t)(NewReformatDateTime("r", "%Y-%m-%d", "%d/%m/%Y")), "2021-07-09"))
	assert.Equal(t, date, apply(t, must(t)(NewConvertStrToDate("d", "%d/%m/%Y")), "09/07/2021"))
	assert.Equal(t,
		time.Date(2021, time.July, 9, 14, 30, 0, 0, time.UTC),
		apply(t, must(t)(NewConvertStrToDateTime("dt", "%Y-%m-%d %H:%M")), "2021-07-09 14:30"))
	assert.Equal(t, "2021/07/09", apply(t, must(t)(NewFormatDateTime("f", "%Y/%m/%d")), date))

	tr := must(t)(NewReformatDateTime("r", "%Y-%m-%d", "%d/%m/%Y"))
	_, err := tr.AfterNext(nil, field.Row{}, "09/07/2021")
	assert.Error(t, err)

	_, err = NewFormatDateTime("f", "%j")
	assert.ErrorContains(t, err, "unsupported directive")
}

func TestNumberTransformers(t *testing.T) {
	assert.Equal(t, 12, apply(t, NewConvertToNumber("n", true), "12"))
	assert.Equal(t, 3, apply(t, NewConvertToNumber("n", true), 3.9))
	assert.Equal(t, 12.5, apply(t, NewConvertToNumber("n", false), "12.5"))
	assert.Equal(t, "3.14", apply(t, must(t)(NewFormatNumber("f", 2)), 3.14159))
	assert.Equal(t, "4", apply(t, must(t)(NewFormatNumber("f", 0)), "3.6"))
	assert.Equal(t, 36*time.Hour, apply(t, NewConvertToDaysDelta("d"), 1.5))

	_, err := NewConvertToNumber("n", true).AfterNext(nil, field.Row{}, "abc")
	assert.ErrorContains(t, err, "cannot convert")
}

func TestGetProperty(t *testing.T) {
	delta := 10*day + 3*time.Hour
	when := time.Date(2024, time.June, 3, 8, 15, 0, 0, time.UTC)

	tests := []struct {
		in   any
		prop string
		want any
	}{
		{delta, "days", 10},
		{delta, "seconds", 3 * 3600},
		{-12 * time.Hour, "days", -1},
		{-12 * time.Hour, "seconds", 12 * 3600},
		{when, "year", 2024},
		{when, "month", 6},
		{when, "weekday", 0},
		{field.Values{"age": 4}, "age", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, apply(t, NewGetProperty("g", tt.prop), tt.in), "%v.%s", tt.in, tt.prop)
	}

	_, err := NewGetProperty("g", "days").AfterNext(nil, field.Row{}, "x")
	assert.ErrorContains(t, err, "no property")
}

func TestDaysDeltaThenProperty(t *testing.T) {
	f := field.NewConstantField(field.Options{
		Name:         "stay",
		Transformers: []field.Transformer{NewConvertToDaysDelta("d"), NewGetProperty("g", "days")},
	}, 7)

	v, err := f.NextValue(field.Row{})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
