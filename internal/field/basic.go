package field

import (
	"math"
	"strconv"
	"strings"
)

// ConstantField emits the same value on every row. Scalar entries in a
// fieldset become constant fields.
type ConstantField struct {
	*Base
	value any
}

func NewConstantField(opts Options, value any) *ConstantField {
	f := &ConstantField{Base: newBase(opts), value: value}
	f.bind(f, func(Row) (any, error) { return f.value, nil })
	return f
}

// Value returns the constant.
func (f *ConstantField) Value() any { return f.value }

// Option is one value of an option field and its probability.
type Option struct {
	Value       any
	Probability float64
}

// probabilityTolerance absorbs binary rounding in probability sums such as
// 0.1 + 0.2 + 0.7.
const probabilityTolerance = 1e-6

// poolWarnDecimals is the precision beyond which the pool exceeds 10^5
// entries.
const poolWarnDecimals = 5

// OptionValueField picks one of several values with configured
// probabilities.
//
// The probabilities are expanded into a pool: each is scaled by 10^d, where
// d is the number of decimal places of the smallest probability, and its
// value repeated that many times. A uniform pick from the pool gives each
// value its configured share.
type OptionValueField struct {
	*Base
	env  *Env
	pool []any
}

func NewOptionValueField(opts Options, env *Env, options []Option) (*OptionValueField, error) {
	if len(options) == 0 {
		return nil, &InvalidProbabilityError{Field: opts.Name, Sum: 0}
	}

	sum := 0.0
	minProb := math.Inf(1)
	for _, o := range options {
		sum += o.Probability
		if o.Probability < minProb {
			minProb = o.Probability
		}
	}
	if math.Abs(sum-1) > probabilityTolerance {
		return nil, &InvalidProbabilityError{Field: opts.Name, Sum: sum}
	}

	dp := countDecimalPlaces(minProb)
	if dp > poolWarnDecimals {
		env.logger().Warn("option probabilities require a large selection pool",
			"field", opts.Name,
			"pool_size", "1e"+strconv.Itoa(dp))
	}

	scale := math.Pow(10, float64(dp))
	var pool []any
	for _, o := range options {
		n := int(math.Round(o.Probability * scale))
		for i := 0; i < n; i++ {
			pool = append(pool, o.Value)
		}
	}

	f := &OptionValueField{Base: newBase(opts), env: env, pool: pool}
	f.bind(f, f.generate)
	return f, nil
}

func (f *OptionValueField) generate(Row) (any, error) {
	return f.pool[f.env.Rand.Intn(len(f.pool))], nil
}

// PoolSize returns the number of entries in the selection pool.
func (f *OptionValueField) PoolSize() int { return len(f.pool) }

// countDecimalPlaces returns the decimal places in the shortest
// representation of p, reading the exponent of small values such as 1e-07.
func countDecimalPlaces(p float64) int {
	s := strconv.FormatFloat(p, 'g', -1, 64)
	if i := strings.Index(s, "e-"); i >= 0 {
		exp, _ := strconv.Atoi(s[i+2:])
		mant := s[:i]
		if j := strings.IndexByte(mant, '.'); j >= 0 {
			exp += len(mant) - j - 1
		}
		return exp
	}
	if j := strings.IndexByte(s, '.'); j >= 0 {
		return len(s) - j - 1
	}
	return 0
}

// BooleanField returns TrueValue when a uniform draw falls below
// TrueProbability, else FalseValue.
type BooleanField struct {
	*Base
	env             *Env
	trueValue       any
	falseValue      any
	trueProbability float64
}

func NewBooleanField(opts Options, env *Env, trueValue, falseValue any, trueProbability float64) *BooleanField {
	f := &BooleanField{
		Base:            newBase(opts),
		env:             env,
		trueValue:       trueValue,
		falseValue:      falseValue,
		trueProbability: trueProbability,
	}
	f.bind(f, f.generate)
	return f
}

func (f *BooleanField) generate(Row) (any, error) {
	if f.env.Rand.Float64() < f.trueProbability {
		return f.trueValue, nil
	}
	return f.falseValue, nil
}

func (f *BooleanField) TrueValue() any  { return f.trueValue }
func (f *BooleanField) FalseValue() any { return f.falseValue }

// GenderField is a boolean field whose true branch is the male value.
type GenderField struct {
	*Base
	inner *BooleanField
}

func NewGenderField(opts Options, env *Env, maleValue, femaleValue any, maleProbability float64) *GenderField {
	inner := NewBooleanField(Options{Name: opts.Name}, env, maleValue, femaleValue, maleProbability)
	f := &GenderField{Base: newBase(opts), inner: inner}
	f.bind(f, inner.NextValue)
	return f
}

func (f *GenderField) MaleValue() any   { return f.inner.trueValue }
func (f *GenderField) FemaleValue() any { return f.inner.falseValue }

// LookupField copies the already-generated value of another column.
type LookupField struct {
	*Base
	column string
}

func NewLookupField(opts Options, column string) *LookupField {
	f := &LookupField{Base: newBase(opts), column: column}
	f.bind(f, f.generate)
	return f
}

func (f *LookupField) generate(row Row) (any, error) {
	v, ok := row[f.column]
	if !ok {
		return nil, &UnresolvedReferenceError{Field: f.Name(), Column: f.column}
	}
	return v, nil
}
