package field

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/headfake/internal/timefmt"
)

// DeceasedOptions configures a DeceasedField.
type DeceasedOptions struct {
	// DobField names the date-of-birth column.
	DobField string

	// DeceasedDateField and AgeField name the companion columns for the
	// date of death and the age. Empty names are not emitted.
	DeceasedDateField string
	AgeField          string

	TrueValue  any
	FalseValue any

	// RiskOfDeath lists the yearly risk per age band in declaration order.
	// Where bands overlap the later band wins.
	RiskOfDeath []RiskBand

	// DateFormat renders the date of death; it is also used to parse the
	// birth date unless the birth date field declares its own format.
	DateFormat string

	// EndDate is an operand; nil means today.
	EndDate       any
	EndDateFormat string
}

// RiskBand is a 1-in-OneIn yearly risk of death for an inclusive age range
// ("0-4", "85-120", or a single age "90").
type RiskBand struct {
	Ages  string
	OneIn int
}

// DeceasedField simulates ageing from birth, one year at a time, up to an
// end date. Each completed year draws against that age's risk; on a death
// the date of death is a uniformly random day in the year just elapsed.
//
// It emits Values with the deceased flag under its own name plus the date
// of death and age columns.
type DeceasedField struct {
	*Base
	env       *Env
	opts      DeceasedOptions
	riskByAge map[int]float64
	dobFormat string
}

func NewDeceasedField(opts Options, env *Env, dopts DeceasedOptions) (*DeceasedField, error) {
	if dopts.DobField == "" {
		return nil, fmt.Errorf("field %q: dob_field is required", opts.Name)
	}
	risk, err := riskTable(dopts.RiskOfDeath)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", opts.Name, err)
	}
	if dopts.DateFormat != "" {
		if _, err := timefmt.Layout(dopts.DateFormat); err != nil {
			return nil, fmt.Errorf("field %q: %w", opts.Name, err)
		}
	}
	f := &DeceasedField{
		Base:      newBase(opts),
		env:       env,
		opts:      dopts,
		riskByAge: risk,
		dobFormat: dopts.DateFormat,
	}
	f.bind(f, f.generate)
	return f, nil
}

func riskTable(bands []RiskBand) (map[int]float64, error) {
	out := map[int]float64{}
	for _, band := range bands {
		from, to, err := parseAgeBand(band.Ages)
		if err != nil {
			return nil, err
		}
		if band.OneIn <= 0 {
			return nil, fmt.Errorf("risk of death for %q must be a positive 1-in-N value, got %d", band.Ages, band.OneIn)
		}
		for age := from; age <= to; age++ {
			out[age] = 1 / float64(band.OneIn)
		}
	}
	return out, nil
}

func parseAgeBand(band string) (int, int, error) {
	lo, hi, ranged := strings.Cut(strings.TrimSpace(band), "-")
	from, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid age range %q", band)
	}
	if !ranged {
		return from, from, nil
	}
	to, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil || to < from {
		return 0, 0, fmt.Errorf("invalid age range %q", band)
	}
	return from, to, nil
}

// GenerateAfter is true: the field reads the birth date column.
func (f *DeceasedField) GenerateAfter() bool { return true }

// Columns returns the companion columns emitted besides the flag.
func (f *DeceasedField) Columns() []string {
	var cols []string
	if f.opts.DeceasedDateField != "" {
		cols = append(cols, f.opts.DeceasedDateField)
	}
	if f.opts.AgeField != "" {
		cols = append(cols, f.opts.AgeField)
	}
	return cols
}

func (f *DeceasedField) Init(fs Fieldset) error {
	dob, ok := fs.Field(f.opts.DobField)
	if !ok {
		return &UnresolvedReferenceError{Field: f.Name(), Column: f.opts.DobField}
	}
	if df, ok := dob.(interface{ DateFormat() string }); ok && df.DateFormat() != "" {
		f.dobFormat = df.DateFormat()
	}
	if err := initOperands(fs, f.opts.EndDate); err != nil {
		return err
	}
	fs.DeclareColumns(f.Name(), f.Columns()...)
	return nil
}

func (f *DeceasedField) generate(row Row) (any, error) {
	raw, ok := row[f.opts.DobField]
	if !ok {
		return nil, &UnresolvedReferenceError{Field: f.Name(), Column: f.opts.DobField}
	}
	dob, err := toTime(raw, f.dobFormat)
	if err != nil {
		return nil, fmt.Errorf("date of birth: %w", err)
	}
	dob = dateOnly(dob)

	end := f.env.today()
	if f.opts.EndDate != nil {
		if end, err = resolveTime(f.Name(), f.opts.EndDate, row, f.opts.EndDateFormat); err != nil {
			return nil, err
		}
		end = dateOnly(end)
	}

	prev := dob
	for years := 1; ; years++ {
		curr := dob.AddDate(years, 0, 0)
		if !curr.Before(end) {
			break
		}
		risk, ok := f.riskByAge[calculateAge(dob, curr)]
		if ok && f.env.Rand.Float64() <= risk {
			days := int(curr.Sub(prev) / day)
			offset, err := f.env.Rand.IntRange(0, days)
			if err != nil {
				return nil, err
			}
			dod := prev.AddDate(0, 0, offset)
			return f.emit(f.opts.TrueValue, &dod, calculateAge(dob, dod))
		}
		prev = curr
	}
	return f.emit(f.opts.FalseValue, nil, calculateAge(dob, end))
}

func (f *DeceasedField) emit(flag any, dod *time.Time, age int) (any, error) {
	out := Values{f.Name(): flag}
	if f.opts.DeceasedDateField != "" {
		switch {
		case dod == nil:
			out[f.opts.DeceasedDateField] = ""
		case f.opts.DateFormat != "":
			s, err := timefmt.Format(f.opts.DateFormat, *dod)
			if err != nil {
				return nil, err
			}
			out[f.opts.DeceasedDateField] = s
		default:
			out[f.opts.DeceasedDateField] = *dod
		}
	}
	if f.opts.AgeField != "" {
		out[f.opts.AgeField] = age
	}
	return out, nil
}
