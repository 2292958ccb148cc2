package provider

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/roach88/headfake/internal/timefmt"
)

// DefaultLocale is used when a template does not name one.
const DefaultLocale = "en_GB"

// Faker is a FakeValueProvider backed by gofakeit, with locale-specific
// name lists and address, postcode and phone formats.
type Faker struct {
	f      *gofakeit.Faker
	locale string
	names  nameLists
	fmts   localeFormats
}

type localeFormats struct {
	streetSuffixes []string
	secondary      []string
	postcodes      []string
	phones         []string
	mobiles        []string
	cities         []string
}

var formats = map[string]localeFormats{
	"en_GB": {
		streetSuffixes: []string{"Road", "Street", "Lane", "Avenue", "Close", "Drive", "Way", "Gardens", "Crescent", "Place"},
		secondary:      []string{"Flat #", "Flat ##", "Studio #", "Apartment #"},
		postcodes:      []string{"??# #??", "??## #??", "?# #??", "?## #??"},
		phones:         []string{"01### ######", "020 #### ####", "0161 ### ####", "0113 ### ####"},
		mobiles:        []string{"07### ######", "+447### ######"},
		cities: []string{
			"London", "Manchester", "Leeds", "Sheffield", "Bristol", "Liverpool", "Newcastle",
			"Nottingham", "Leicester", "Southampton", "York", "Norwich", "Exeter", "Oxford",
			"Cambridge", "Cardiff", "Edinburgh", "Glasgow", "Belfast", "Brighton",
		},
	},
	"en_US": {
		streetSuffixes: []string{"Street", "Avenue", "Boulevard", "Drive", "Court", "Lane", "Road", "Way"},
		secondary:      []string{"Apt. ###", "Suite ###"},
		postcodes:      []string{"#####", "#####-####"},
		phones:         []string{"(###) ###-####", "###-###-####", "###.###.####"},
		mobiles:        []string{"+1-###-###-####", "(###) ###-####"},
	},
}

// NewFaker creates a provider for locale seeded with seed. Unknown locales
// fall back to DefaultLocale.
func NewFaker(locale string, seed int64) *Faker {
	if _, ok := formats[locale]; !ok {
		locale = DefaultLocale
	}
	// gofakeit treats seed 0 as "use crypto random"; keep every run seed reproducible.
	return &Faker{
		f:      gofakeit.New(seed*2 + 1),
		locale: locale,
		names:  namesFor(locale),
		fmts:   formats[locale],
	}
}

// Locale returns the effective locale.
func (p *Faker) Locale() string { return p.locale }

func (p *Faker) FirstName(g Gender) string {
	switch g {
	case Male:
		return p.f.RandomString(p.names.male)
	case Female:
		return p.f.RandomString(p.names.female)
	}
	if p.f.Bool() {
		return p.f.RandomString(p.names.male)
	}
	return p.f.RandomString(p.names.female)
}

// LastName ignores gender; surnames are shared in the supported locales.
func (p *Faker) LastName(Gender) string {
	if len(p.names.last) > 0 {
		return p.f.RandomString(p.names.last)
	}
	return p.f.LastName()
}

func (p *Faker) StreetAddress() string {
	return fmt.Sprintf("%d %s %s", p.f.Number(1, 250), p.LastName(Unspecified), p.f.RandomString(p.fmts.streetSuffixes))
}

func (p *Faker) SecondaryAddress() string {
	return p.f.Numerify(p.f.RandomString(p.fmts.secondary))
}

func (p *Faker) City() string {
	if len(p.fmts.cities) > 0 {
		return p.f.RandomString(p.fmts.cities)
	}
	return p.f.City()
}

func (p *Faker) Postcode() string {
	pattern := p.f.RandomString(p.fmts.postcodes)
	return strings.ToUpper(p.f.Numerify(p.f.Lexify(pattern)))
}

func (p *Faker) PhoneNumber() string {
	return p.f.Numerify(p.f.RandomString(p.fmts.phones))
}

func (p *Faker) CellPhoneNumber() string {
	return p.f.Numerify(p.f.RandomString(p.fmts.mobiles))
}

// Email returns an address. Safe addresses use reserved example domains.
func (p *Faker) Email(safe bool) string {
	if !safe {
		return p.f.Email()
	}
	local := strings.ToLower(p.FirstName(Unspecified) + "." + p.LastName(Unspecified))
	local = strings.ReplaceAll(local, "'", "")
	return local + "@" + p.f.RandomString([]string{"example.com", "example.org", "example.net"})
}

func (p *Faker) Password(opts PasswordOptions) string {
	length := opts.Length
	if length <= 0 {
		length = 10
	}
	lower := opts.LowerCase
	if !lower && !opts.UpperCase && !opts.Digits && !opts.SpecialChars {
		lower = true
	}
	return p.f.Password(lower, opts.UpperCase, opts.Digits, opts.SpecialChars, false, length)
}

// Text returns whole sentences totalling at most maxChars characters. Limits
// too small for one sentence yield a truncated word run ending in a period.
func (p *Faker) Text(maxChars int) string {
	if maxChars < 5 {
		maxChars = 5
	}

	var out []string
	size := 0
	for {
		s := p.f.Sentence(p.f.Number(4, 10))
		next := size + len(s)
		if len(out) > 0 {
			next++
		}
		if next > maxChars {
			break
		}
		out = append(out, s)
		size = next
	}
	if len(out) > 0 {
		return strings.Join(out, " ")
	}

	var words []string
	size = 0
	for {
		w := p.f.Word()
		next := size + len(w)
		if len(words) > 0 {
			next++
		}
		if next+1 > maxChars {
			break
		}
		words = append(words, w)
		size = next
	}
	if len(words) == 0 {
		return strings.Repeat("x", maxChars-1) + "."
	}
	text := strings.Join(words, " ")
	return strings.ToUpper(text[:1]) + text[1:] + "."
}

// Paragraph returns a paragraph of the given number of sentences, varied by
// up to 40% either way when variable is set.
func (p *Faker) Paragraph(sentences int, variable bool) string {
	if sentences < 1 {
		sentences = 1
	}
	n := sentences
	if variable {
		n = int(math.Round(float64(sentences) * float64(p.f.Number(60, 140)) / 100))
		if n < 1 {
			n = 1
		}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = p.f.Sentence(p.f.Number(4, 10))
	}
	return strings.Join(out, " ")
}

// Time returns a random time of day rendered with pattern.
func (p *Faker) Time(pattern string) (string, error) {
	secs := p.f.Number(0, 86399)
	t := time.Date(2000, time.January, 1, 0, 0, secs, 0, time.UTC)
	return timefmt.Format(pattern, t)
}
