package catalog

import (
	"github.com/roach88/headfake/internal/builder"
	"github.com/roach88/headfake/internal/field"
	"github.com/roach88/headfake/internal/transform"
)

func registerTransformers(reg *builder.Registry, env *field.Env) {
	add := func(class string, f builder.Factory) { reg.Register(TransformerPrefix+class, f) }

	add("UpperCase", func(p *builder.Params) (any, error) {
		return transform.NewUpperCase(p.Name()), nil
	})

	add("LowerCase", func(p *builder.Params) (any, error) {
		return transform.NewLowerCase(p.Name()), nil
	})

	add("TitleCase", func(p *builder.Params) (any, error) {
		locale := ""
		if env.Faker != nil {
			locale = env.Faker.Locale()
		}
		return transform.NewTitleCase(p.Name(), p.String("locale", locale)), nil
	})

	add("IntermittentBlanks", func(p *builder.Params) (any, error) {
		return transform.NewIntermittentBlanks(p.Name(), env.Rand,
			p.RequireFloat("blank_probability"), p.Any("blank_value", ""))
	})

	add("RegexSubstitute", func(p *builder.Params) (any, error) {
		return transform.NewRegexSubstitute(p.Name(), p.RequireString("pattern"), p.RequireString("replace"))
	})

	add("Truncate", func(p *builder.Params) (any, error) {
		return transform.NewTruncate(p.Name(), p.RequireInt("length"))
	})

	add("Padding", func(p *builder.Params) (any, error) {
		return transform.NewPadding(p.Name(), p.RequireInt("length"), p.RequireString("fill"), p.String("align", "left"))
	})

	add("SplitPiece", func(p *builder.Params) (any, error) {
		return transform.NewSplitPiece(p.Name(), p.RequireString("separator"), p.RequireInt("index"))
	})

	add("ReformatDateTime", func(p *builder.Params) (any, error) {
		return transform.NewReformatDateTime(p.Name(), p.RequireString("source_format"), p.RequireString("target_format"))
	})

	add("ConvertStrToDate", func(p *builder.Params) (any, error) {
		return transform.NewConvertStrToDate(p.Name(), p.RequireString("format"))
	})

	add("ConvertStrToDateTime", func(p *builder.Params) (any, error) {
		return transform.NewConvertStrToDateTime(p.Name(), p.RequireString("format"))
	})

	add("FormatDateTime", func(p *builder.Params) (any, error) {
		return transform.NewFormatDateTime(p.Name(), p.RequireString("format"))
	})

	add("ConvertToNumber", func(p *builder.Params) (any, error) {
		return transform.NewConvertToNumber(p.Name(), p.Bool("as_integer", false)), nil
	})

	add("FormatNumber", func(p *builder.Params) (any, error) {
		return transform.NewFormatNumber(p.Name(), p.RequireInt("dp"))
	})

	add("ConvertToDaysDelta", func(p *builder.Params) (any, error) {
		return transform.NewConvertToDaysDelta(p.Name()), nil
	})

	add("GetProperty", func(p *builder.Params) (any, error) {
		return transform.NewGetProperty(p.Name(), p.RequireString("prop_name")), nil
	})
}
