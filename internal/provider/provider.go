// Package provider supplies the external value capabilities consumed by
// fields: plausible human-readable values (names, addresses, text) and draws
// from parameterized statistical distributions.
//
// Both capabilities are interfaces so tests can substitute deterministic
// stand-ins; the concrete implementations are seeded from the run seed.
package provider

// Gender selects gendered name lists.
type Gender int

const (
	Unspecified Gender = iota
	Male
	Female
)

// String returns the gender label.
func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "unspecified"
	}
}

// PasswordOptions selects the character classes of a generated password.
type PasswordOptions struct {
	Length       int
	SpecialChars bool
	Digits       bool
	UpperCase    bool
	LowerCase    bool
}

// FakeValueProvider produces one plausible value per call.
type FakeValueProvider interface {
	Locale() string
	FirstName(g Gender) string
	LastName(g Gender) string
	StreetAddress() string
	SecondaryAddress() string
	City() string
	Postcode() string
	PhoneNumber() string
	CellPhoneNumber() string
	Email(safe bool) string
	Password(opts PasswordOptions) string
	Text(maxChars int) string
	Paragraph(sentences int, variable bool) string
	Time(pattern string) (string, error)
}

// Sampler draws one value from a fixed distribution.
type Sampler interface {
	Sample() float64
}

// SamplerFactory constructs samplers by distribution family name.
//
// loc and scale follow the location/scale convention: for "norm" they are
// the mean and standard deviation. extra carries shape parameters such as
// "s" (lognorm), "a" (gamma) or "c" (weibull_min).
type SamplerFactory interface {
	NewSampler(family string, loc, scale float64, extra map[string]float64) (Sampler, error)
}
