package testutil

import (
	"strings"
	"time"

	"github.com/roach88/headfake/internal/provider"
	"github.com/roach88/headfake/internal/timefmt"
)

// ScriptedSamplers hands out samplers that replay Draws in order, shared
// across every sampler created. An exhausted script returns the sampler's
// location.
type ScriptedSamplers struct {
	Draws []float64

	// Requests records every NewSampler call.
	Requests []SamplerRequest
}

// SamplerRequest is one recorded NewSampler call.
type SamplerRequest struct {
	Family     string
	Loc, Scale float64
	Extra      map[string]float64
}

// NewScriptedSamplers creates a sampler factory replaying draws.
func NewScriptedSamplers(draws ...float64) *ScriptedSamplers {
	return &ScriptedSamplers{Draws: draws}
}

func (s *ScriptedSamplers) NewSampler(family string, loc, scale float64, extra map[string]float64) (provider.Sampler, error) {
	s.Requests = append(s.Requests, SamplerRequest{Family: family, Loc: loc, Scale: scale, Extra: extra})
	return &scriptedSampler{owner: s, loc: loc}, nil
}

type scriptedSampler struct {
	owner *ScriptedSamplers
	loc   float64
}

func (s *scriptedSampler) Sample() float64 {
	if len(s.owner.Draws) == 0 {
		return s.loc
	}
	v := s.owner.Draws[0]
	s.owner.Draws = s.owner.Draws[1:]
	return v
}

// StubFaker is a FakeValueProvider returning fixed, recognisable values.
// First names cycle through MaleNames or FemaleNames.
type StubFaker struct {
	MaleNames   []string
	FemaleNames []string
	OtherNames  []string

	next map[provider.Gender]int
}

// NewStubFaker creates a stub with two names per gender.
func NewStubFaker() *StubFaker {
	return &StubFaker{
		MaleNames:   []string{"John", "David"},
		FemaleNames: []string{"Mary", "Susan"},
		OtherNames:  []string{"Alex"},
		next:        map[provider.Gender]int{},
	}
}

func (s *StubFaker) Locale() string { return "en_GB" }

func (s *StubFaker) FirstName(g provider.Gender) string {
	names := s.OtherNames
	switch g {
	case provider.Male:
		names = s.MaleNames
	case provider.Female:
		names = s.FemaleNames
	}
	i := s.next[g]
	s.next[g] = i + 1
	return names[i%len(names)]
}

func (s *StubFaker) LastName(provider.Gender) string { return "Smith" }
func (s *StubFaker) StreetAddress() string          { return "1 High Street" }
func (s *StubFaker) SecondaryAddress() string       { return "Flat 2" }
func (s *StubFaker) City() string                   { return "Leeds" }
func (s *StubFaker) Postcode() string               { return "LS1 4AP" }
func (s *StubFaker) PhoneNumber() string            { return "0113 496 0000" }
func (s *StubFaker) CellPhoneNumber() string        { return "07700 900123" }

func (s *StubFaker) Email(safe bool) string {
	if safe {
		return "john.smith@example.com"
	}
	return "john.smith@mail.test"
}

func (s *StubFaker) Password(opts provider.PasswordOptions) string {
	return strings.Repeat("p", opts.Length)
}

func (s *StubFaker) Text(maxChars int) string {
	text := "Lorem ipsum dolor sit amet."
	if len(text) > maxChars {
		return text[:maxChars]
	}
	return text
}

func (s *StubFaker) Paragraph(sentences int, variable bool) string {
	out := make([]string, sentences)
	for i := range out {
		out[i] = "Lorem ipsum."
	}
	return strings.Join(out, " ")
}

func (s *StubFaker) Time(pattern string) (string, error) {
	return timefmt.Format(pattern, time.Date(2000, time.January, 1, 9, 30, 0, 0, time.UTC))
}
