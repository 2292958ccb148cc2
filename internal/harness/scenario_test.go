package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	s := loadScenario(t, "admissions.yaml")
	assert.Equal(t, "admissions", s.Name)
	assert.Equal(t, filepath.Join("testdata", "templates", "admissions.yml"), s.Template)
	require.NotNil(t, s.Seed)
	assert.Equal(t, int64(42), *s.Seed)
	assert.Equal(t, 200, s.Rows)

	bounds := s.Assertions[9]
	assert.Equal(t, AssertRange, bounds.Type)
	require.NotNil(t, bounds.Min)
	assert.Equal(t, 18.0, *bounds.Min)
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "name: x\ntemplate: t.yml\nasertions: []\n", "failed to parse YAML"},
		{"no name", "template: t.yml\nassertions: [{type: row_count}]\n", "name is required"},
		{"no template", "name: x\nassertions: [{type: row_count}]\n", "template is required"},
		{"no assertions", "name: x\ntemplate: t.yml\n", "assertions list is required"},
		{"unknown type", "name: x\ntemplate: t.yml\nassertions: [{type: fuzzy}]\n", `unknown assertion type "fuzzy"`},
		{"incomplete", "name: x\ntemplate: t.yml\nassertions: [{type: matches, column: a}]\n", "requires column and pattern"},
		{"negative rows", "name: x\ntemplate: t.yml\nrows: -2\nassertions: [{type: row_count}]\n", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := LoadScenario("testdata/scenarios/nope.yaml")
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestFindScenarios(t *testing.T) {
	files, err := FindScenarios(filepath.Join("testdata", "scenarios"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("testdata", "scenarios", "admissions.yaml"),
		filepath.Join("testdata", "scenarios", "ward_stays.yaml"),
	}, files)

	files, err = FindScenarios(filepath.Join("testdata", "scenarios"), "ward*")
	require.NoError(t, err)
	assert.Len(t, files, 1)

	_, err = FindScenarios(filepath.Join("testdata", "scenarios"), "[")
	assert.ErrorContains(t, err, "invalid filter pattern")
}
