package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/roach88/headfake/internal/builder"
	"github.com/roach88/headfake/internal/catalog"
	"github.com/roach88/headfake/internal/dataset"
	"github.com/roach88/headfake/internal/field"
	"github.com/roach88/headfake/internal/fieldset"
	"github.com/roach88/headfake/internal/provider"
	"github.com/roach88/headfake/internal/random"
	"github.com/roach88/headfake/internal/spec"
)

// Template keys read by the engine.
const (
	FieldsetKey = "fieldset"
	LocaleKey   = "locale"
	SeedKey     = "seed"
)

// Salts deriving the secondary streams from the run seed.
const (
	samplerSalt = 1
	fakerSalt   = 2
)

// ErrNoFieldset is returned when a template root has no fieldset key.
var ErrNoFieldset = errors.New("template has no fieldset")

// Options configures an Engine. Zero values defer to the template, then to
// built-in defaults.
type Options struct {
	// Seed overrides the template's seed. With no seed set anywhere, it is
	// derived from the wall clock.
	Seed *int64

	// FallbackSeed applies when neither Seed nor the template sets one.
	FallbackSeed *int64

	// Locale overrides the template's locale.
	Locale string

	// BaseDir resolves relative mapping-file paths.
	BaseDir string

	Logger *slog.Logger

	// MaxRetries caps every resampling loop. Zero means unbounded.
	MaxRetries int

	// Now is the clock for "today" defaults. Nil means time.Now.
	Now func() time.Time

	// Faker replaces the seeded gofakeit provider.
	Faker provider.FakeValueProvider
}

// Engine is a built template ready to generate rows.
//
// Thread-safety: not safe for concurrent use. Generation draws from one
// seeded stream in plan order.
type Engine struct {
	fieldset *fieldset.Fieldset
	seed     int64
	locale   string
	logger   *slog.Logger
}

// FromFile loads and builds the template at path. Mapping files resolve
// against the template's directory unless opts.BaseDir is set.
func FromFile(path string, opts Options) (*Engine, error) {
	tree, err := spec.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(path)
	}
	return New(tree, opts)
}

// New builds an engine from a parsed template tree.
func New(tree any, opts Options) (*Engine, error) {
	root, ok := tree.(*spec.Map)
	if !ok {
		return nil, fmt.Errorf("template root must be a mapping, got %T", tree)
	}
	node, ok := root.Get(FieldsetKey)
	if !ok || node == nil {
		return nil, ErrNoFieldset
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	seed, fromClock, err := resolveSeed(root, opts.Seed, opts.FallbackSeed)
	if err != nil {
		return nil, err
	}
	if fromClock {
		logger.Info("no seed given, using clock", "seed", seed)
	}

	locale := opts.Locale
	if locale == "" {
		if v, ok := root.Get(LocaleKey); ok && v != nil {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("template %s must be a string, got %T", LocaleKey, v)
			}
			locale = s
		}
	}
	if locale == "" {
		locale = provider.DefaultLocale
	}

	faker := opts.Faker
	if faker == nil {
		faker = provider.NewFaker(locale, random.Derive(seed, fakerSalt))
	}

	env := &field.Env{
		Rand:       random.New(seed),
		Faker:      faker,
		Samplers:   provider.NewSamplers(random.Derive(seed, samplerSalt)),
		Logger:     logger,
		Now:        opts.Now,
		BaseDir:    opts.BaseDir,
		MaxRetries: opts.MaxRetries,
	}

	names := builder.NewNameCounter("field")
	b := builder.New(
		catalog.NewRegistry(catalog.Config{Env: env, Names: names}),
		builder.WithNameCounter(names),
		builder.WithLogger(logger),
	)
	built, err := b.Build(FieldsetKey, node)
	if err != nil {
		return nil, err
	}
	fs, ok := built.(*fieldset.Fieldset)
	if !ok {
		return nil, fmt.Errorf("%s must be a %s, got %T", FieldsetKey, catalog.FieldsetClass, built)
	}

	return &Engine{fieldset: fs, seed: seed, locale: faker.Locale(), logger: logger}, nil
}

// resolveSeed prefers the explicit seed, then the template's, then the
// fallback. The second result reports a clock-derived seed.
func resolveSeed(root *spec.Map, explicit, fallback *int64) (int64, bool, error) {
	if explicit != nil {
		return *explicit, false, nil
	}
	v, ok := root.Get(SeedKey)
	if !ok || v == nil {
		if fallback != nil {
			return *fallback, false, nil
		}
		return time.Now().UnixNano(), true, nil
	}
	switch n := v.(type) {
	case int:
		return int64(n), false, nil
	case int64:
		return n, false, nil
	case float64:
		if n == float64(int64(n)) {
			return int64(n), false, nil
		}
	}
	return 0, false, fmt.Errorf("template %s must be an integer, got %v", SeedKey, v)
}

// Generate produces n rows.
func (e *Engine) Generate(ctx context.Context, n int) (*dataset.Dataset, error) {
	columns := e.fieldset.Plan().Columns()
	e.logger.Info("generating rows", "rows", n, "columns", len(columns), "seed", e.seed)

	ds, err := e.fieldset.Generate(ctx, n)
	if err != nil {
		return nil, err
	}

	e.logger.Info("rows generated", "rows", ds.Len(), "columns", len(ds.Columns), "seed", e.seed)
	return ds, nil
}

// Fieldset returns the built fieldset.
func (e *Engine) Fieldset() *fieldset.Fieldset { return e.fieldset }

// Seed returns the seed of the run.
func (e *Engine) Seed() int64 { return e.seed }

// Locale returns the effective fake-value locale.
func (e *Engine) Locale() string { return e.locale }

// Columns returns the output columns in order.
func (e *Engine) Columns() []string { return e.fieldset.Plan().Columns() }
