package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlTemplate = `
fieldset:
  class: headfake.fieldset.Fieldset
  fields:
    zeta:
      class: headfake.field.ConstantField
      value: 1
    alpha:
      class: headfake.field.OptionValueField
      probabilities:
        "30-100": 0.25
        B: 0.75
    list:
      - name: a
        value: 2020-03-10
      - 1.5
      - true
      - null
`

func TestParseYAMLPreservesOrder(t *testing.T) {
	node, err := Parse([]byte(yamlTemplate), FormatYAML)
	require.NoError(t, err)

	root, ok := node.(*Map)
	require.True(t, ok)

	fs, _ := root.Get("fieldset")
	fields, _ := fs.(*Map).Get("fields")
	assert.Equal(t, []string{"zeta", "alpha", "list"}, fields.(*Map).Keys())

	alpha, _ := fields.(*Map).Get("alpha")
	probs, _ := alpha.(*Map).Get("probabilities")
	assert.Equal(t, []string{"30-100", "B"}, probs.(*Map).Keys())

	zeta, _ := fields.(*Map).Get("zeta")
	value, _ := zeta.(*Map).Get("value")
	assert.Equal(t, 1, value)

	list, _ := fields.(*Map).Get("list")
	items := list.([]any)
	require.Len(t, items, 4)
	first := items[0].(*Map)
	date, _ := first.Get("value")
	assert.Equal(t, "2020-03-10", date, "timestamps stay strings")
	assert.Equal(t, 1.5, items[1])
	assert.Equal(t, true, items[2])
	assert.Nil(t, items[3])
}

func TestParseYAMLMergeKey(t *testing.T) {
	src := `
base: &base
  class: headfake.field.NumberField
  mean: 10
field:
  <<: *base
  mean: 20
`
	node, err := Parse([]byte(src), FormatYAML)
	require.NoError(t, err)

	field, _ := node.(*Map).Get("field")
	m := field.(*Map)
	class, _ := m.Get("class")
	mean, _ := m.Get("mean")
	assert.Equal(t, "headfake.field.NumberField", class)
	assert.Equal(t, 20, mean)
}

func TestParseYAMLTypedKeys(t *testing.T) {
	node, err := Parse([]byte("1: a\n\"2\": b\n2.5: c\ntrue: d\nname: e\n"), FormatYAML)
	require.NoError(t, err)

	m := node.(*Map)
	assert.Equal(t, []string{"1", "2", "2.5", "true", "name"}, m.Keys())
	assert.Equal(t, 1, m.KeyValue("1"))
	assert.Equal(t, "2", m.KeyValue("2"))
	assert.Equal(t, 2.5, m.KeyValue("2.5"))
	assert.Equal(t, true, m.KeyValue("true"))
	assert.Equal(t, "name", m.KeyValue("name"))

	clone := m.Clone()
	assert.Equal(t, 1, clone.KeyValue("1"))
	m.Delete("1")
	assert.Equal(t, "1", m.KeyValue("1"))
}

func TestParseJSONPreservesOrder(t *testing.T) {
	src := `{"b": 1, "a": {"y": 2.5, "x": "s"}, "c": [1, {"name": "n"}], "d": null, "e": false}`
	node, err := Parse([]byte(src), FormatJSON)
	require.NoError(t, err)

	root := node.(*Map)
	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, root.Keys())

	b, _ := root.Get("b")
	assert.Equal(t, 1, b)

	a, _ := root.Get("a")
	assert.Equal(t, []string{"y", "x"}, a.(*Map).Keys())
	y, _ := a.(*Map).Get("y")
	assert.Equal(t, 2.5, y)

	c, _ := root.Get("c")
	require.Len(t, c.([]any), 2)
}

func TestParseJSONTrailingData(t *testing.T) {
	_, err := Parse([]byte(`{"a": 1} {"b": 2}`), FormatJSON)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeParseFailed, loadErr.Code)
}

func TestParseCUE(t *testing.T) {
	src := `
fieldset: {
	class: "headfake.fieldset.Fieldset"
	fields: {
		gender: {
			class:            "headfake.field.GenderField"
			male_value:       "M"
			female_value:     "F"
			male_probability: 0.5
		}
		deceased: {
			class: "headfake.field.DeceasedField"
			risk_of_death: {
				"0-30":   1000
				"31-100": 50
			}
		}
	}
}
`
	node, err := Parse([]byte(src), FormatCUE)
	require.NoError(t, err)

	fs, _ := node.(*Map).Get("fieldset")
	fields, _ := fs.(*Map).Get("fields")
	assert.Equal(t, []string{"gender", "deceased"}, fields.(*Map).Keys())

	gender, _ := fields.(*Map).Get("gender")
	prob, _ := gender.(*Map).Get("male_probability")
	assert.Equal(t, 0.5, prob)

	deceased, _ := fields.(*Map).Get("deceased")
	risk, _ := deceased.(*Map).Get("risk_of_death")
	assert.Equal(t, []string{"0-30", "31-100"}, risk.(*Map).Keys())
	r, _ := risk.(*Map).Get("0-30")
	assert.Equal(t, 1000, r)
}

func TestParseCUEIncomplete(t *testing.T) {
	_, err := Parse([]byte(`a: int`), FormatCUE)
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.yml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0644))

	node, err := LoadFile(path)
	require.NoError(t, err)
	a, _ := node.(*Map).Get("a")
	assert.Equal(t, 1, a)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)

	_, err = LoadFile(filepath.Join(dir, "template.toml"))
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeFormat, loadErr.Code)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("a: [1, 2"), 0644))
	_, err = LoadFile(bad)
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeParseFailed, loadErr.Code)
}

func TestMapOperations(t *testing.T) {
	m := MapOf("a", 1, "b", 2, "c", 3)
	m.Set("b", 20)
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

	m.Delete("a")
	assert.Equal(t, []string{"b", "c"}, m.Keys())
	assert.False(t, m.Has("a"))

	clone := m.Clone()
	clone.Set("d", 4)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 3, clone.Len())

	plain := ToPlain(MapOf("x", []any{MapOf("y", 1)}))
	assert.Equal(t, map[string]any{"x": []any{map[string]any{"y": 1}}}, plain)
}
