package field

import (
	"fmt"
	"math"
	"time"

	"github.com/roach88/headfake/internal/provider"
	"github.com/roach88/headfake/internal/timefmt"
)

const daysPerYear = 365.25

const day = 24 * time.Hour

// Distribution configures the sampler behind number and date fields.
type Distribution struct {
	// Family is the distribution identifier, e.g. "norm" or
	// "scipy.stats.norm".
	Family string
	Mean   float64
	SD     float64
	Shape  map[string]float64
}

func (d Distribution) sampler(env *Env, loc float64) (provider.Sampler, error) {
	family := d.Family
	if family == "" {
		family = "norm"
	}
	return env.Samplers.NewSampler(family, loc, d.SD, d.Shape)
}

// Bounds are optional limits on a generated value. Min and Max are
// operands: a literal, a column name, or a nested Field. Nil means
// unbounded.
type Bounds struct {
	Min, Max                   any
	ExclusiveMin, ExclusiveMax bool
}

// NumberField draws numbers from a distribution, rejecting draws outside
// its bounds and rounding the accepted value.
type NumberField struct {
	*Base
	env     *Env
	sampler provider.Sampler
	bounds  Bounds
	dp      *int
}

func NewNumberField(opts Options, env *Env, dist Distribution, bounds Bounds, dp *int) (*NumberField, error) {
	s, err := dist.sampler(env, dist.Mean)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", opts.Name, err)
	}
	f := &NumberField{Base: newBase(opts), env: env, sampler: s, bounds: bounds, dp: dp}
	f.bind(f, f.generate)
	return f, nil
}

// Init propagates to nested bound fields.
func (f *NumberField) Init(fs Fieldset) error {
	return initOperands(fs, f.bounds.Min, f.bounds.Max)
}

func (f *NumberField) generate(row Row) (any, error) {
	lo, hi, err := f.resolveBounds(row)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		n := f.sampler.Sample()
		if f.accept(n, lo, hi) {
			if f.dp != nil {
				n = roundTo(n, *f.dp)
			}
			return n, nil
		}
		if err := f.env.retry(f.Name(), attempt, fmt.Sprintf("no draw within bounds [%v, %v]", lo, hi)); err != nil {
			return nil, err
		}
	}
}

func (f *NumberField) resolveBounds(row Row) (lo, hi float64, err error) {
	lo, hi = math.Inf(-1), math.Inf(1)
	if f.bounds.Min != nil {
		if lo, err = resolveFloat(f.Name(), f.bounds.Min, row); err != nil {
			return 0, 0, err
		}
	}
	if f.bounds.Max != nil {
		if hi, err = resolveFloat(f.Name(), f.bounds.Max, row); err != nil {
			return 0, 0, err
		}
	}
	if lo > hi || (lo == hi && (f.bounds.ExclusiveMin || f.bounds.ExclusiveMax)) {
		return 0, 0, fmt.Errorf("empty range: min %v, max %v", lo, hi)
	}
	return lo, hi, nil
}

func (f *NumberField) accept(n, lo, hi float64) bool {
	if f.bounds.ExclusiveMin && n <= lo || n < lo {
		return false
	}
	if f.bounds.ExclusiveMax && n >= hi || n > hi {
		return false
	}
	return true
}

// DateField draws a date from a distribution of day offsets around a mean
// date, rejecting dates outside its bounds.
type DateField struct {
	*Base
	env      *Env
	sampler  provider.Sampler
	mean     any
	bounds   Bounds
	formats  DateFormats
	useYears bool
}

// DateFormats are the patterns used by a DateField: input patterns for
// string mean and bounds, and the output pattern. An empty Output emits
// the date itself.
type DateFormats struct {
	Mean, Min, Max string
	Output         string
}

func NewDateField(opts Options, env *Env, dist Distribution, mean any, bounds Bounds, formats DateFormats, useYears bool) (*DateField, error) {
	s, err := dist.sampler(env, 0)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", opts.Name, err)
	}
	if formats.Output != "" {
		if _, err := timefmt.Layout(formats.Output); err != nil {
			return nil, fmt.Errorf("field %q: %w", opts.Name, err)
		}
	}
	f := &DateField{
		Base:     newBase(opts),
		env:      env,
		sampler:  s,
		mean:     mean,
		bounds:   bounds,
		formats:  formats,
		useYears: useYears,
	}
	f.bind(f, f.generate)
	return f, nil
}

func (f *DateField) Init(fs Fieldset) error {
	return initOperands(fs, f.mean, f.bounds.Min, f.bounds.Max)
}

func (f *DateField) generate(row Row) (any, error) {
	mean, err := resolveTime(f.Name(), f.mean, row, f.formats.Mean)
	if err != nil {
		return nil, err
	}
	var lo, hi *time.Time
	if f.bounds.Min != nil {
		t, err := resolveTime(f.Name(), f.bounds.Min, row, f.formats.Min)
		if err != nil {
			return nil, err
		}
		lo = &t
	}
	if f.bounds.Max != nil {
		t, err := resolveTime(f.Name(), f.bounds.Max, row, f.formats.Max)
		if err != nil {
			return nil, err
		}
		hi = &t
	}
	if lo != nil && hi != nil && (lo.After(*hi) || lo.Equal(*hi) && (f.bounds.ExclusiveMin || f.bounds.ExclusiveMax)) {
		return nil, fmt.Errorf("empty date range: min %s, max %s", toString(*lo), toString(*hi))
	}

	for attempt := 1; ; attempt++ {
		offset := f.sampler.Sample()
		if f.useYears {
			offset *= daysPerYear
		}
		d := dateOnly(mean.Add(time.Duration(offset * float64(day))))
		if f.accept(d, lo, hi) {
			if f.formats.Output != "" {
				return timefmt.Format(f.formats.Output, d)
			}
			return d, nil
		}
		if err := f.env.retry(f.Name(), attempt, "no date within bounds"); err != nil {
			return nil, err
		}
	}
}

func (f *DateField) accept(d time.Time, lo, hi *time.Time) bool {
	if lo != nil && (d.Before(*lo) || f.bounds.ExclusiveMin && d.Equal(*lo)) {
		return false
	}
	if hi != nil && (d.After(*hi) || f.bounds.ExclusiveMax && d.Equal(*hi)) {
		return false
	}
	return true
}

// DateOfBirthField draws an age in years and emits the birth date that age
// implies relative to today.
type DateOfBirthField struct {
	*Base
	env    *Env
	age    *NumberField
	format string
}

func NewDateOfBirthField(opts Options, env *Env, dist Distribution, bounds Bounds, dateFormat string) (*DateOfBirthField, error) {
	age, err := NewNumberField(Options{Name: opts.Name}, env, dist, bounds, nil)
	if err != nil {
		return nil, err
	}
	if dateFormat != "" {
		if _, err := timefmt.Layout(dateFormat); err != nil {
			return nil, fmt.Errorf("field %q: %w", opts.Name, err)
		}
	}
	f := &DateOfBirthField{Base: newBase(opts), env: env, age: age, format: dateFormat}
	f.bind(f, f.generate)
	return f, nil
}

func (f *DateOfBirthField) Init(fs Fieldset) error {
	return f.age.Init(fs)
}

// DateFormat returns the pattern birth dates are rendered with.
func (f *DateOfBirthField) DateFormat() string { return f.format }

func (f *DateOfBirthField) generate(row Row) (any, error) {
	v, err := f.age.NextValue(row)
	if err != nil {
		return nil, err
	}
	years := v.(float64)
	dob := dateOnly(f.env.now().Add(-time.Duration(years * daysPerYear * float64(day))))
	if f.format == "" {
		return dob, nil
	}
	return timefmt.Format(f.format, dob)
}

// AgeField computes whole years between two date operands.
type AgeField struct {
	*Base
	from, to             any
	fromFormat, toFormat string
}

func NewAgeField(opts Options, from, to any, fromFormat, toFormat string) *AgeField {
	f := &AgeField{Base: newBase(opts), from: from, to: to, fromFormat: fromFormat, toFormat: toFormat}
	f.bind(f, f.generate)
	return f
}

func (f *AgeField) Init(fs Fieldset) error {
	return initOperands(fs, f.from, f.to)
}

func (f *AgeField) generate(row Row) (any, error) {
	from, err := resolveTime(f.Name(), f.from, row, f.fromFormat)
	if err != nil {
		return nil, err
	}
	to, err := resolveTime(f.Name(), f.to, row, f.toFormat)
	if err != nil {
		return nil, err
	}
	return calculateAge(from, to), nil
}

// initOperands initialises any operands that are nested fields.
func initOperands(fs Fieldset, operands ...any) error {
	for _, op := range operands {
		if nested, ok := op.(Field); ok {
			if err := nested.Init(fs); err != nil {
				return err
			}
		}
	}
	return nil
}
