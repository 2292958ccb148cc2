package provider

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// quantiler is satisfied by every gonum univariate distribution used here.
type quantiler interface {
	Quantile(p float64) float64
}

// Samplers builds distribution samplers that share one seeded secondary
// stream, independent of the primary field stream.
//
// Draws use inverse-transform sampling: a uniform draw from the secondary
// stream is mapped through the distribution's quantile function.
type Samplers struct {
	src *rand.Rand
}

// NewSamplers creates a sampler factory seeded with seed.
func NewSamplers(seed int64) *Samplers {
	return &Samplers{src: rand.New(rand.NewSource(seed))}
}

type familyCtor func(loc, scale float64, extra map[string]float64) (quantiler, float64, error)

// families maps a family identifier to a distribution and the offset its
// draws are shifted by.
var families = map[string]familyCtor{
	"norm": func(loc, scale float64, _ map[string]float64) (quantiler, float64, error) {
		return &distuv.Normal{Mu: loc, Sigma: scale}, 0, nil
	},
	"uniform": func(loc, scale float64, _ map[string]float64) (quantiler, float64, error) {
		return &distuv.Uniform{Min: loc, Max: loc + scale}, 0, nil
	},
	"expon": func(loc, scale float64, _ map[string]float64) (quantiler, float64, error) {
		return &distuv.Exponential{Rate: 1 / scale}, loc, nil
	},
	"laplace": func(loc, scale float64, _ map[string]float64) (quantiler, float64, error) {
		return &distuv.Laplace{Mu: loc, Scale: scale}, 0, nil
	},
	"lognorm": func(loc, scale float64, extra map[string]float64) (quantiler, float64, error) {
		s, err := shape(extra, "s")
		if err != nil {
			return nil, 0, err
		}
		return scaled{q: &distuv.LogNormal{Mu: 0, Sigma: s}, scale: scale}, loc, nil
	},
	"gamma": func(loc, scale float64, extra map[string]float64) (quantiler, float64, error) {
		a, err := shape(extra, "a")
		if err != nil {
			return nil, 0, err
		}
		return &distuv.Gamma{Alpha: a, Beta: 1 / scale}, loc, nil
	},
	"weibull_min": func(loc, scale float64, extra map[string]float64) (quantiler, float64, error) {
		c, err := shape(extra, "c")
		if err != nil {
			return nil, 0, err
		}
		if c <= 0 {
			return nil, 0, fmt.Errorf("shape parameter \"c\" must be positive, got %v", c)
		}
		return &distuv.Weibull{K: c, Lambda: scale}, loc, nil
	},
	"triang": func(loc, scale float64, extra map[string]float64) (quantiler, float64, error) {
		c, err := shape(extra, "c")
		if err != nil {
			return nil, 0, err
		}
		if c < 0 || c > 1 {
			return nil, 0, fmt.Errorf("triang shape c must be within [0, 1], got %v", c)
		}
		tri := distuv.NewTriangle(loc, loc+scale, loc+c*scale, nil)
		return tri, 0, nil
	},
}

// Families lists the supported distribution family identifiers.
func Families() []string {
	out := make([]string, 0, len(families))
	for name := range families {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NewSampler returns a sampler for family. A "scipy.stats." prefix on the
// family name is accepted.
func (s *Samplers) NewSampler(family string, loc, scale float64, extra map[string]float64) (Sampler, error) {
	name := strings.TrimPrefix(family, "scipy.stats.")
	ctor, ok := families[name]
	if !ok {
		return nil, fmt.Errorf("unknown distribution %q (supported: %s)", family, strings.Join(Families(), ", "))
	}
	if scale <= 0 {
		return nil, fmt.Errorf("distribution %q: scale must be positive, got %v", family, scale)
	}
	q, offset, err := ctor(loc, scale, extra)
	if err != nil {
		return nil, fmt.Errorf("distribution %q: %w", family, err)
	}
	return &quantileSampler{q: q, offset: offset, src: s.src}, nil
}

type quantileSampler struct {
	q      quantiler
	offset float64
	src    *rand.Rand
}

func (s *quantileSampler) Sample() float64 {
	u := s.src.Float64()
	for u == 0 {
		u = s.src.Float64()
	}
	return s.offset + s.q.Quantile(u)
}

type scaled struct {
	q     quantiler
	scale float64
}

func (s scaled) Quantile(p float64) float64 {
	return s.scale * s.q.Quantile(p)
}

func shape(extra map[string]float64, key string) (float64, error) {
	v, ok := extra[key]
	if !ok {
		return 0, fmt.Errorf("missing shape parameter %q", key)
	}
	if v <= 0 && key != "c" {
		return 0, fmt.Errorf("shape parameter %q must be positive, got %v", key, v)
	}
	return v, nil
}
