package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/headfake/internal/builder"
	"github.com/roach88/headfake/internal/field"
	"github.com/roach88/headfake/internal/provider"
	"github.com/roach88/headfake/internal/spec"
)

func registerFields(reg *builder.Registry, env *field.Env) {
	add := func(class string, f builder.Factory) { reg.Register(FieldPrefix+class, f) }

	add("ConstantField", func(p *builder.Params) (any, error) {
		return field.NewConstantField(options(p), p.Require("value")), nil
	})

	add("OptionValueField", func(p *builder.Params) (any, error) {
		opts := options(p)
		probs := p.Map("probabilities")
		if probs == nil {
			p.Require("probabilities")
			return nil, nil
		}
		var choices []field.Option
		for _, k := range probs.Keys() {
			v, _ := probs.Get(k)
			prob, ok := number(v)
			if !ok {
				return nil, fmt.Errorf("probability of %q must be a number, got %T", k, v)
			}
			choices = append(choices, field.Option{Value: probs.KeyValue(k), Probability: prob})
		}
		return field.NewOptionValueField(opts, env, choices)
	})

	add("BooleanField", func(p *builder.Params) (any, error) {
		return field.NewBooleanField(options(p), env,
			p.Any("true_value", 1), p.Any("false_value", 0), p.Float("true_probability", 0.5)), nil
	})

	add("GenderField", func(p *builder.Params) (any, error) {
		return field.NewGenderField(options(p), env,
			p.Require("male_value"), p.Require("female_value"), p.Float("male_probability", 0.5)), nil
	})

	add("NumberField", func(p *builder.Params) (any, error) {
		opts := options(p)
		dist := distribution(p)
		dist.Mean = p.RequireFloat("mean")
		return field.NewNumberField(opts, env, dist, bounds(p), optionalInt(p, "dp"))
	})

	add("DateField", func(p *builder.Params) (any, error) {
		opts := options(p)
		dist := distribution(p)
		mean := p.Require("mean")
		formats := field.DateFormats{
			Mean:   p.String("mean_format", ""),
			Min:    p.String("min_format", ""),
			Max:    p.String("max_format", ""),
			Output: p.String("format", ""),
		}
		return field.NewDateField(opts, env, dist, mean, bounds(p), formats, p.Bool("use_years", false))
	})

	add("DateOfBirthField", func(p *builder.Params) (any, error) {
		opts := options(p)
		dist := distribution(p)
		dist.Mean = p.RequireFloat("mean")
		return field.NewDateOfBirthField(opts, env, dist, bounds(p), p.RequireString("date_format"))
	})

	add("AgeField", func(p *builder.Params) (any, error) {
		return field.NewAgeField(options(p), p.Require("from_value"), p.Require("to_value"),
			p.String("from_format", ""), p.String("to_format", "")), nil
	})

	add("LookupField", func(p *builder.Params) (any, error) {
		return field.NewLookupField(options(p), p.RequireString("field")), nil
	})

	add("Condition", func(p *builder.Params) (any, error) {
		return field.NewCondition(p.Name(), p.Require("field"), p.RequireString("operator"),
			p.Any("value", nil), p.String("other_field", ""))
	})

	add("IfElseField", func(p *builder.Params) (any, error) {
		opts := options(p)
		cond, err := condition(p.Require("condition"))
		if err != nil {
			return nil, err
		}
		return field.NewIfElseField(opts, cond, p.Require("true_value"), p.Require("false_value")), nil
	})

	add("OperationField", func(p *builder.Params) (any, error) {
		return field.NewOperationField(options(p), p.RequireString("operator"),
			p.Require("first_value"), p.Require("second_value"))
	})

	add("RepeatField", func(p *builder.Params) (any, error) {
		opts := options(p)
		inner := requireField(p, "field")
		var glue *string
		if p.Has("glue") {
			if v, _ := p.Lookup("glue"); v != nil {
				s := fmt.Sprint(v)
				glue = &s
			}
		}
		return field.NewRepeatField(opts, env, inner, p.Require("min_repeats"), p.Require("max_repeats"), glue), nil
	})

	add("ConcatField", func(p *builder.Params) (any, error) {
		return field.NewConcatField(options(p), p.List("fields"), p.String("glue", "")), nil
	})

	add("MapFileField", func(p *builder.Params) (any, error) {
		return field.NewMapFileField(options(p), env, p.RequireString("mapping_file"), p.RequireString("key_field"))
	})

	add("LookupMapFileField", func(p *builder.Params) (any, error) {
		return field.NewLookupMapFileField(options(p),
			p.RequireString("lookup_value_field"), p.RequireString("map_file_field")), nil
	})

	add("IncrementIdGenerator", func(p *builder.Params) (any, error) {
		return field.NewIncrementIdGenerator(idOptions(p)), nil
	})

	add("RandomNoReuseIdGenerator", func(p *builder.Params) (any, error) {
		return field.NewRandomNoReuseIdGenerator(idOptions(p), env, p.Int("max_value", 0)), nil
	})

	add("RandomReuseIdGenerator", func(p *builder.Params) (any, error) {
		return field.NewRandomReuseIdGenerator(idOptions(p), env, p.Int("max_value", 0)), nil
	})

	add("IdField", func(p *builder.Params) (any, error) {
		opts := options(p)
		var gen field.IdGenerator
		if v := p.Any("generator", nil); v != nil {
			g, ok := v.(field.IdGenerator)
			if !ok {
				return nil, fmt.Errorf("generator must be an id generator, got %T", v)
			}
			gen = g
		}
		return field.NewIdField(opts, gen, p.String("prefix", ""), p.String("suffix", "")), nil
	})

	add("NhsNoField", func(p *builder.Params) (any, error) {
		return field.NewNhsNoField(options(p), env), nil
	})

	add("DeceasedField", func(p *builder.Params) (any, error) {
		opts := options(p)
		risk, err := riskTable(p.Map("risk_of_death"))
		if err != nil {
			return nil, err
		}
		if risk == nil {
			p.Require("risk_of_death")
		}
		return field.NewDeceasedField(opts, env, field.DeceasedOptions{
			DobField:          p.RequireString("dob_field"),
			DeceasedDateField: p.String("deceased_date_field", ""),
			AgeField:          p.String("age_field", ""),
			TrueValue:         p.Any("deceased_true_value", 1),
			FalseValue:        p.Any("deceased_false_value", 0),
			RiskOfDeath:       risk,
			DateFormat:        p.RequireString("date_format"),
			EndDate:           p.Any("end_date", nil),
			EndDateFormat:     p.String("end_date_format", ""),
		})
	})

	add("FirstNameField", func(p *builder.Params) (any, error) {
		return field.NewFirstNameField(options(p), env, p.RequireString("gender_field")), nil
	})

	add("LastNameField", func(p *builder.Params) (any, error) {
		return field.NewLastNameField(options(p), env, p.RequireString("gender_field")), nil
	})

	add("MiddleNameField", func(p *builder.Params) (any, error) {
		return field.NewMiddleNameField(options(p), env,
			p.RequireString("gender_field"), p.RequireString("first_name_field")), nil
	})

	add("AddressField", func(p *builder.Params) (any, error) {
		return field.NewAddressField(options(p), env, p.RequireInt("line_no"))
	})

	add("PostcodeField", func(p *builder.Params) (any, error) {
		return field.NewPostcodeField(options(p), env), nil
	})

	add("PhoneField", func(p *builder.Params) (any, error) {
		return field.NewPhoneField(options(p), env, p.String("type", "default")), nil
	})

	add("EmailField", func(p *builder.Params) (any, error) {
		return field.NewEmailField(options(p), env, p.Bool("safe", true)), nil
	})

	add("PasswordField", func(p *builder.Params) (any, error) {
		return field.NewPasswordField(options(p), env, provider.PasswordOptions{
			Length:       p.Int("length", 16),
			SpecialChars: p.Bool("special_chars", true),
			Digits:       p.Bool("digits", true),
			UpperCase:    p.Bool("upper_case", true),
			LowerCase:    p.Bool("lower_case", true),
		}), nil
	})

	add("TextField", func(p *builder.Params) (any, error) {
		return field.NewTextField(options(p), env, p.Int("max_length", 50)), nil
	})

	add("MemoField", func(p *builder.Params) (any, error) {
		return field.NewMemoField(options(p), env, p.Int("sentences", 3), p.Bool("exact", false)), nil
	})

	add("TimeField", func(p *builder.Params) (any, error) {
		return field.NewTimeField(options(p), env, p.String("format", "%H:%M")), nil
	})

	add("UUIDField", func(p *builder.Params) (any, error) {
		return field.NewUUIDField(options(p), env), nil
	})
}

// distribution reads the family, sd and extra shape params. The mean is
// read by the caller since its type varies.
func distribution(p *builder.Params) field.Distribution {
	return field.Distribution{
		Family: p.String("distribution", "norm"),
		SD:     p.RequireFloat("sd"),
		Shape:  floatMap(p, "params", p.Map("params")),
	}
}

func bounds(p *builder.Params) field.Bounds {
	return field.Bounds{
		Min:          p.Any("min", nil),
		Max:          p.Any("max", nil),
		ExclusiveMin: p.Bool("exclusive_min", false),
		ExclusiveMax: p.Bool("exclusive_max", false),
	}
}

func optionalInt(p *builder.Params, key string) *int {
	if v, ok := p.Lookup(key); !ok || v == nil {
		return nil
	}
	n := p.Int(key, 0)
	return &n
}

func idOptions(p *builder.Params) field.IdGeneratorOptions {
	return field.IdGeneratorOptions{
		Length:   p.RequireInt("length"),
		MinValue: p.Int("min_value", 1),
	}
}

// condition accepts a built Condition or a plain mapping of its params.
func condition(v any) (*field.Condition, error) {
	switch c := v.(type) {
	case nil:
		return nil, nil
	case *field.Condition:
		return c, nil
	case *spec.Map:
		subject, ok := c.Get("field")
		if !ok {
			return nil, fmt.Errorf("condition needs a field")
		}
		op, _ := c.Get("operator")
		opName, ok := op.(string)
		if !ok {
			return nil, fmt.Errorf("condition needs an operator name")
		}
		value, _ := c.Get("value")
		other := ""
		if o, ok := c.Get("other_field"); ok && o != nil {
			other = fmt.Sprint(o)
		}
		return field.NewCondition("", subject, opName, value, other)
	}
	return nil, fmt.Errorf("condition must be a Condition, got %T", v)
}

// riskTable converts risk_of_death values, which templates may quote.
// Bands keep the template's key order.
func riskTable(m *spec.Map) ([]field.RiskBand, error) {
	if m == nil {
		return nil, nil
	}
	out := make([]field.RiskBand, 0, m.Len())
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		var n int
		switch x := v.(type) {
		case int:
			n = x
		case string:
			i, err := strconv.Atoi(strings.TrimSpace(x))
			if err != nil {
				return nil, fmt.Errorf("risk_of_death[%q]: %q is not an integer", k, x)
			}
			n = i
		default:
			f, ok := number(v)
			if !ok || f != float64(int(f)) {
				return nil, fmt.Errorf("risk_of_death[%q]: %v is not an integer", k, v)
			}
			n = int(f)
		}
		out = append(out, field.RiskBand{Ages: k, OneIn: n})
	}
	return out, nil
}
