package field

import (
	"fmt"
	"strconv"
	"strings"
)

// IdGenerator produces the numeric core of an identifier. Generators own
// their counter or used-value state.
type IdGenerator interface {
	// SelectID returns the next identifier, zero-padded to the generator's
	// length.
	SelectID(owner string) (string, error)
}

// IdGeneratorOptions are shared by all generators.
type IdGeneratorOptions struct {
	// Length is the zero-padded width.
	Length int
	// MinValue is the first (or lowest) number generated, default 1.
	MinValue int
}

func pad(n, length int) string {
	s := strconv.Itoa(n)
	if len(s) >= length {
		return s
	}
	return strings.Repeat("0", length-len(s)) + s
}

// IncrementIdGenerator counts up from MinValue. It fails once the current
// number has more digits than Length.
type IncrementIdGenerator struct {
	opts    IdGeneratorOptions
	current int
}

func NewIncrementIdGenerator(opts IdGeneratorOptions) *IncrementIdGenerator {
	return &IncrementIdGenerator{opts: opts, current: opts.MinValue}
}

func (g *IncrementIdGenerator) SelectID(owner string) (string, error) {
	s := strconv.Itoa(g.current)
	if len(s) > g.opts.Length {
		return "", &CapacityExceededError{
			Field:   owner,
			Message: fmt.Sprintf("next number %d is greater than length %d", g.current, g.opts.Length),
		}
	}
	n := g.current
	g.current++
	return pad(n, g.opts.Length), nil
}

// randomRange returns the half-open draw range of a random generator.
// MaxValue defaults to the largest number of Length digits.
func randomRange(opts IdGeneratorOptions, maxValue int) (int, int) {
	if maxValue <= 0 {
		maxValue, _ = strconv.Atoi(strings.Repeat("9", max(opts.Length, 1)))
	}
	return opts.MinValue, maxValue
}

// RandomNoReuseIdGenerator draws from [MinValue, MaxValue) and never
// returns the same number twice.
type RandomNoReuseIdGenerator struct {
	opts     IdGeneratorOptions
	env      *Env
	min, max int
	used     map[int]struct{}
}

func NewRandomNoReuseIdGenerator(opts IdGeneratorOptions, env *Env, maxValue int) *RandomNoReuseIdGenerator {
	lo, hi := randomRange(opts, maxValue)
	return &RandomNoReuseIdGenerator{opts: opts, env: env, min: lo, max: hi, used: map[int]struct{}{}}
}

func (g *RandomNoReuseIdGenerator) SelectID(owner string) (string, error) {
	if len(g.used) >= g.max-g.min {
		return "", &CapacityExceededError{
			Field:   owner,
			Message: fmt.Sprintf("all %d identifiers in [%d, %d) have been used", g.max-g.min, g.min, g.max),
		}
	}
	for attempt := 1; ; attempt++ {
		n, err := g.env.Rand.IntRange(g.min, g.max)
		if err != nil {
			return "", err
		}
		if _, dup := g.used[n]; !dup {
			g.used[n] = struct{}{}
			return pad(n, g.opts.Length), nil
		}
		if err := g.env.retry(owner, attempt, "identifier collision"); err != nil {
			return "", err
		}
	}
}

// RandomReuseIdGenerator draws from [MinValue, MaxValue) with repeats.
type RandomReuseIdGenerator struct {
	opts     IdGeneratorOptions
	env      *Env
	min, max int
}

func NewRandomReuseIdGenerator(opts IdGeneratorOptions, env *Env, maxValue int) *RandomReuseIdGenerator {
	lo, hi := randomRange(opts, maxValue)
	return &RandomReuseIdGenerator{opts: opts, env: env, min: lo, max: hi}
}

func (g *RandomReuseIdGenerator) SelectID(string) (string, error) {
	n, err := g.env.Rand.IntRange(g.min, g.max)
	if err != nil {
		return "", err
	}
	return pad(n, g.opts.Length), nil
}

// IdField wraps a generator's identifiers in a prefix and suffix.
type IdField struct {
	*Base
	gen            IdGenerator
	prefix, suffix string
}

// NewIdField creates an identifier field. A nil generator counts up from 1
// with width 3.
func NewIdField(opts Options, gen IdGenerator, prefix, suffix string) *IdField {
	if gen == nil {
		gen = NewIncrementIdGenerator(IdGeneratorOptions{Length: 3, MinValue: 1})
	}
	f := &IdField{Base: newBase(opts), gen: gen, prefix: prefix, suffix: suffix}
	f.bind(f, f.generate)
	return f
}

func (f *IdField) generate(Row) (any, error) {
	id, err := f.gen.SelectID(f.Name())
	if err != nil {
		return nil, err
	}
	return f.prefix + id + f.suffix, nil
}

// NhsNoField generates unique, checksum-valid NHS numbers formatted as
// "123 456 7890".
type NhsNoField struct {
	*Base
	env  *Env
	used map[int]struct{}
}

const (
	nhsMin = 100000000
	nhsMax = 999999999
)

func NewNhsNoField(opts Options, env *Env) *NhsNoField {
	f := &NhsNoField{Base: newBase(opts), env: env, used: map[int]struct{}{}}
	f.bind(f, f.generate)
	return f
}

func (f *NhsNoField) generate(Row) (any, error) {
	for attempt := 1; ; attempt++ {
		n, err := f.env.Rand.IntRange(nhsMin, nhsMax)
		if err != nil {
			return nil, err
		}
		if _, dup := f.used[n]; !dup {
			f.used[n] = struct{}{}
			digits := strconv.Itoa(n)
			if check, ok := NhsCheckDigit(digits); ok {
				return digits[0:3] + " " + digits[3:6] + " " + digits[6:9] + strconv.Itoa(check), nil
			}
		}
		if err := f.env.retry(f.Name(), attempt, "no unused valid NHS number"); err != nil {
			return nil, err
		}
	}
}

// NhsCheckDigit computes the mod-11 check digit for nine digits. Numbers
// whose check digit would be 10 are invalid.
func NhsCheckDigit(digits string) (int, bool) {
	if len(digits) != 9 {
		return 0, false
	}
	sum := 0
	for i, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
		sum += (10 - i) * int(c-'0')
	}
	check := 11 - sum%11
	switch check {
	case 11:
		return 0, true
	case 10:
		return 0, false
	}
	return check, true
}
