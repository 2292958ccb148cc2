package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario, fails t on any assertion failure and
// compares the dataset snapshot against testdata/golden/<name>.golden.
//
// Run "go test -update" to regenerate golden files.
func RunWithGolden(t *testing.T, scenario *Scenario) *Result {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("scenario %s: %v", scenario.Name, err)
	}
	for _, e := range result.Errors {
		t.Errorf("scenario %s: %s", scenario.Name, e)
	}
	AssertGolden(t, scenario.Name, result)
	return result
}

// AssertGolden compares a result's dataset snapshot against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	snapshot, err := Snapshot(result.Dataset)
	if err != nil {
		t.Fatalf("snapshot %s: %v", name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, snapshot)
}

// GoldenPath returns the golden file kept beside a scenario file:
// <dir>/golden/<base>.golden.
func GoldenPath(scenarioFile string) string {
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(scenarioFile), "golden", name+".golden")
}

// CompareGolden reports whether the result matches the golden file at
// path. ok is false with a nil error when the file does not exist.
func CompareGolden(path string, result *Result) (match, ok bool, err error) {
	want, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("read golden file: %w", err)
	}
	got, err := Snapshot(result.Dataset)
	if err != nil {
		return false, true, err
	}
	return bytes.Equal(want, got), true, nil
}

// UpdateGolden writes the result's snapshot to path.
func UpdateGolden(path string, result *Result) error {
	data, err := Snapshot(result.Dataset)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}
