package field

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/roach88/headfake/internal/provider"
)

// Random is the shared pseudo-random stream. Every field and transformer of
// a run draws from the same stream in plan order.
type Random interface {
	Float64() float64
	Intn(n int) int
	IntRange(min, max int) (int, error)
	Read(p []byte) (int, error)
}

// Env carries the capabilities shared by all fields of a run.
type Env struct {
	Rand     Random
	Faker    provider.FakeValueProvider
	Samplers provider.SamplerFactory
	Logger   *slog.Logger

	// Now is the clock for "today" defaults. Nil means time.Now.
	Now func() time.Time

	// BaseDir resolves relative mapping-file paths.
	BaseDir string

	// MaxRetries caps every resampling loop. Zero means unbounded.
	MaxRetries int
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Env) today() time.Time {
	n := e.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

func (e *Env) path(p string) string {
	if filepath.IsAbs(p) || e.BaseDir == "" {
		return p
	}
	return filepath.Join(e.BaseDir, p)
}

// retry is called once per rejected attempt and fails when the cap is hit.
func (e *Env) retry(field string, attempt int, reason string) error {
	if e.MaxRetries > 0 && attempt >= e.MaxRetries {
		return &RetryLimitError{Field: field, Attempts: attempt, Reason: reason}
	}
	return nil
}
