package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name))
	require.NoError(t, err)
	return s
}

func TestRun_Admissions(t *testing.T) {
	result, err := Run(loadScenario(t, "admissions.yaml"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, int64(42), result.Seed)
	assert.Equal(t, 200, result.Dataset.Len())
}

func TestRun_Reproducible(t *testing.T) {
	s := loadScenario(t, "admissions.yaml")

	a, err := Run(s)
	require.NoError(t, err)
	b, err := Run(s)
	require.NoError(t, err)

	snapA, err := Snapshot(a.Dataset)
	require.NoError(t, err)
	snapB, err := Snapshot(b.Dataset)
	require.NoError(t, err)
	assert.Equal(t, snapA, snapB)
}

func TestRunWithGolden_WardStays(t *testing.T) {
	result := RunWithGolden(t, loadScenario(t, "ward_stays.yaml"))
	assert.Equal(t, int64(0), result.Seed, "scenarios without a seed run with 0")
}

func TestRun_ReportsFailedAssertions(t *testing.T) {
	s := loadScenario(t, "ward_stays.yaml")
	s.Assertions = []Assertion{
		{Type: AssertRowCount, Count: 5},
		{Type: AssertValuesIn, Column: "category", Values: []any{"short"}},
		{Type: AssertUnique, Column: "ward_code"},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "expected 5, got 3")
	assert.Contains(t, result.Errors[1], `at row 2`)
	assert.Contains(t, result.Errors[2], `duplicate "W7"`)
}

func TestRun_BuildError(t *testing.T) {
	s := &Scenario{Name: "missing", Template: "testdata/templates/nope.yml", Assertions: []Assertion{{Type: AssertRowCount}}}
	_, err := Run(s)
	assert.ErrorContains(t, err, "build template")
}

func TestGoldenPath(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "golden", "admissions.golden"),
		GoldenPath(filepath.Join("scenarios", "admissions.yaml")))
}

func TestUpdateAndCompareGolden(t *testing.T) {
	result, err := Run(loadScenario(t, "ward_stays.yaml"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "golden", "ward_stays.golden")
	_, ok, err := CompareGolden(path, result)
	require.NoError(t, err)
	assert.False(t, ok, "no golden file yet")

	require.NoError(t, UpdateGolden(path, result))
	match, ok, err := CompareGolden(path, result)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, match)
}
