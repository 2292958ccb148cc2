package field

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/headfake/internal/provider"
)

// FakerField emits values from the fake-value provider.
type FakerField struct {
	*Base
	kind string
}

func newFakerField(opts Options, kind string, gen func() (any, error)) *FakerField {
	f := &FakerField{Base: newBase(opts), kind: kind}
	f.bind(f, func(Row) (any, error) { return gen() })
	return f
}

// Kind names the provider capability the field draws from.
func (f *FakerField) Kind() string { return f.kind }

// NewAddressField emits address line lineNo: 1 street, 2 secondary
// address, 3 city, 4 always empty.
func NewAddressField(opts Options, env *Env, lineNo int) (*FakerField, error) {
	var gen func() string
	switch lineNo {
	case 1:
		gen = env.Faker.StreetAddress
	case 2:
		gen = env.Faker.SecondaryAddress
	case 3:
		gen = env.Faker.City
	case 4:
		gen = func() string { return "" }
	default:
		return nil, fmt.Errorf("field %q: line_no must be between 1 and 4, got %d", opts.Name, lineNo)
	}
	return newFakerField(opts, "address", func() (any, error) { return gen(), nil }), nil
}

func NewPostcodeField(opts Options, env *Env) *FakerField {
	return newFakerField(opts, "postcode", func() (any, error) { return env.Faker.Postcode(), nil })
}

// NewPhoneField emits phone numbers; phoneType "cell" or "mobile" selects
// mobile numbers.
func NewPhoneField(opts Options, env *Env, phoneType string) *FakerField {
	switch strings.ToLower(phoneType) {
	case "cell", "mobile":
		return newFakerField(opts, "phone", func() (any, error) { return env.Faker.CellPhoneNumber(), nil })
	}
	return newFakerField(opts, "phone", func() (any, error) { return env.Faker.PhoneNumber(), nil })
}

func NewEmailField(opts Options, env *Env, safe bool) *FakerField {
	return newFakerField(opts, "email", func() (any, error) { return env.Faker.Email(safe), nil })
}

func NewPasswordField(opts Options, env *Env, popts provider.PasswordOptions) *FakerField {
	return newFakerField(opts, "password", func() (any, error) { return env.Faker.Password(popts), nil })
}

func NewTextField(opts Options, env *Env, maxLength int) *FakerField {
	return newFakerField(opts, "text", func() (any, error) { return env.Faker.Text(maxLength), nil })
}

// NewMemoField emits a paragraph of roughly the given number of sentences,
// exactly that many when exact is set.
func NewMemoField(opts Options, env *Env, sentences int, exact bool) *FakerField {
	return newFakerField(opts, "memo", func() (any, error) { return env.Faker.Paragraph(sentences, !exact), nil })
}

func NewTimeField(opts Options, env *Env, format string) *FakerField {
	return newFakerField(opts, "time", func() (any, error) { return env.Faker.Time(format) })
}

// NewUUIDField emits random version 4 UUIDs drawn from the shared stream,
// so they are reproducible under a fixed seed.
func NewUUIDField(opts Options, env *Env) *FakerField {
	return newFakerField(opts, "uuid", func() (any, error) {
		id, err := uuid.NewRandomFromReader(env.Rand)
		if err != nil {
			return nil, err
		}
		return id.String(), nil
	})
}

type nameKind int

const (
	firstName nameKind = iota
	lastName
	middleName
)

// NameField generates names matching the gender generated earlier in the
// row by the field named in gender_field.
type NameField struct {
	*Base
	env            *Env
	kind           nameKind
	genderField    string
	firstNameField string
	male, female   any
	known          bool
}

func NewFirstNameField(opts Options, env *Env, genderField string) *NameField {
	return newNameField(opts, env, firstName, genderField, "")
}

func NewLastNameField(opts Options, env *Env, genderField string) *NameField {
	return newNameField(opts, env, lastName, genderField, "")
}

// NewMiddleNameField creates a middle name field that never repeats the
// row's first name.
func NewMiddleNameField(opts Options, env *Env, genderField, firstNameField string) *NameField {
	return newNameField(opts, env, middleName, genderField, firstNameField)
}

func newNameField(opts Options, env *Env, kind nameKind, genderField, firstNameField string) *NameField {
	f := &NameField{Base: newBase(opts), env: env, kind: kind, genderField: genderField, firstNameField: firstNameField}
	f.bind(f, f.generate)
	return f
}

// Init reads the male and female values of the gender field.
func (f *NameField) Init(fs Fieldset) error {
	g, ok := fs.Field(f.genderField)
	if !ok {
		return &UnresolvedReferenceError{Field: f.Name(), Column: f.genderField}
	}
	switch gv := g.(type) {
	case interface {
		MaleValue() any
		FemaleValue() any
	}:
		f.male, f.female, f.known = gv.MaleValue(), gv.FemaleValue(), true
	case interface {
		TrueValue() any
		FalseValue() any
	}:
		f.male, f.female, f.known = gv.TrueValue(), gv.FalseValue(), true
	}
	return nil
}

func (f *NameField) gender(row Row) (provider.Gender, error) {
	v, ok := row[f.genderField]
	if !ok {
		return provider.Unspecified, &UnresolvedReferenceError{Field: f.Name(), Column: f.genderField}
	}
	if f.known {
		switch {
		case equal(v, f.male):
			return provider.Male, nil
		case equal(v, f.female):
			return provider.Female, nil
		}
		return provider.Unspecified, nil
	}
	switch strings.ToLower(toString(v)) {
	case "m", "male":
		return provider.Male, nil
	case "f", "female":
		return provider.Female, nil
	}
	return provider.Unspecified, nil
}

func (f *NameField) generate(row Row) (any, error) {
	g, err := f.gender(row)
	if err != nil {
		return nil, err
	}
	switch f.kind {
	case lastName:
		return f.env.Faker.LastName(g), nil
	case middleName:
		first, hasFirst := row[f.firstNameField]
		for attempt := 1; ; attempt++ {
			name := f.env.Faker.FirstName(g)
			if !hasFirst || name != toString(first) {
				return name, nil
			}
			if err := f.env.retry(f.Name(), attempt, "middle name repeats first name"); err != nil {
				return nil, err
			}
		}
	}
	return f.env.Faker.FirstName(g), nil
}
