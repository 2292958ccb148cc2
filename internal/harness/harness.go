package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/headfake/internal/dataset"
	"github.com/roach88/headfake/internal/engine"
	"github.com/roach88/headfake/internal/output"
)

// ReferenceDate is "today" for every scenario run, keeping date fields
// stable from one day to the next.
var ReferenceDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Run executes a scenario and evaluates its assertions. The error is
// non-nil only when the template cannot be built or generation fails;
// failed assertions are reported in the Result.
func Run(s *Scenario) (*Result, error) {
	return RunContext(context.Background(), s)
}

// RunContext is Run with a context for cancellation.
func RunContext(ctx context.Context, s *Scenario) (*Result, error) {
	var seed int64
	if s.Seed != nil {
		seed = *s.Seed
	}

	eng, err := engine.FromFile(s.Template, engine.Options{
		Seed:   &seed,
		Locale: s.Locale,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return ReferenceDate },
	})
	if err != nil {
		return nil, fmt.Errorf("build template %s: %w", s.Template, err)
	}

	rows := s.Rows
	if rows == 0 {
		rows = DefaultRows
	}
	ds, err := eng.Generate(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	result := &Result{Pass: true, Dataset: ds, Seed: seed}
	for i, a := range s.Assertions {
		if err := Check(ds, a); err != nil {
			result.Pass = false
			result.Errors = append(result.Errors, fmt.Sprintf("assertion[%d]: %v", i, err))
		}
	}
	return result, nil
}

// Snapshot renders ds as CSV for golden comparison.
func Snapshot(ds *dataset.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := output.NewCSVWriter(&buf).Write(context.Background(), ds); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
