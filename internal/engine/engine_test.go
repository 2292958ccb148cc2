package engine

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/headfake/internal/output"
	"github.com/roach88/headfake/internal/spec"
	"github.com/roach88/headfake/internal/testutil"
)

func fixedNow() time.Time { return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC) }

func seed(n int64) *int64 { return &n }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func csvOf(t *testing.T, e *Engine, rows int) []byte {
	t.Helper()
	ds, err := e.Generate(context.Background(), rows)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, output.NewCSVWriter(&buf).Write(context.Background(), ds))
	return buf.Bytes()
}

func parse(t *testing.T, yaml string) any {
	t.Helper()
	tree, err := spec.Parse([]byte(yaml), spec.FormatYAML)
	require.NoError(t, err)
	return tree
}

func TestFromFile_Golden(t *testing.T) {
	e, err := FromFile("testdata/templates/ward_stays.yml", Options{Logger: quietLogger(), Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, int64(7), e.Seed(), "seed comes from the template")

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "ward_stays", csvOf(t, e, 3))
}

func TestGenerate_SameSeedSameDataset(t *testing.T) {
	run := func(s int64) []byte {
		e, err := FromFile("testdata/templates/patients.yml", Options{Seed: seed(s), Logger: quietLogger(), Now: fixedNow})
		require.NoError(t, err)
		return csvOf(t, e, 50)
	}

	first := run(11)
	assert.Equal(t, first, run(11))
	assert.NotEqual(t, first, run(12))
}

func TestGenerate_NamesFollowGender(t *testing.T) {
	faker := testutil.NewStubFaker()
	e, err := FromFile("testdata/templates/patients.yml", Options{
		Seed:   seed(3),
		Logger: quietLogger(),
		Now:    fixedNow,
		Faker:  faker,
	})
	require.NoError(t, err)

	ds, err := e.Generate(context.Background(), 100)
	require.NoError(t, err)
	for i, row := range ds.Rows {
		switch row["gender"] {
		case "M":
			assert.Contains(t, faker.MaleNames, row["first_name"], "row %d", i)
		case "F":
			assert.Contains(t, faker.FemaleNames, row["first_name"], "row %d", i)
		default:
			t.Fatalf("row %d: unexpected gender %v", i, row["gender"])
		}
	}
}

func TestNew_SeedPrecedence(t *testing.T) {
	tree := parse(t, `
seed: 5
fieldset:
  class: headfake.Fieldset
  fields:
    - name: a
      class: headfake.field.ConstantField
      value: 1
`)
	e, err := New(tree, Options{Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, int64(5), e.Seed())

	e, err = New(tree, Options{Seed: seed(0), Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, int64(0), e.Seed(), "an explicit zero seed wins")

	e, err = New(tree, Options{FallbackSeed: seed(9), Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, int64(5), e.Seed(), "the template seed beats the fallback")

	bare := parse(t, "fieldset:\n  class: headfake.Fieldset\n  fields: [1]\n")
	e, err = New(bare, Options{FallbackSeed: seed(9), Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, int64(9), e.Seed())
}

func TestNew_ClockSeedIsLogged(t *testing.T) {
	var logs bytes.Buffer
	tree := parse(t, `
fieldset:
  class: headfake.Fieldset
  fields:
    - name: a
      value: 1
`)
	_, err := New(tree, Options{Logger: slog.New(slog.NewTextHandler(&logs, nil))})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "no seed given")
}

func TestNew_Locale(t *testing.T) {
	tree := parse(t, `
locale: en_US
fieldset:
  class: headfake.Fieldset
  fields:
    - name: a
      value: 1
`)
	e, err := New(tree, Options{Seed: seed(1), Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, "en_US", e.Locale())

	e, err = New(tree, Options{Seed: seed(1), Locale: "en_GB", Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, "en_GB", e.Locale())
}

func TestNew_TemplateErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no fieldset", "seed: 1\n", ErrNoFieldset.Error()},
		{"bad seed", "seed: soon\nfieldset:\n  class: headfake.Fieldset\n  fields: [1]\n", "must be an integer"},
		{"not a fieldset", "fieldset:\n  class: headfake.field.ConstantField\n  value: 1\n", "must be a headfake.Fieldset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(parse(t, tt.yaml), Options{Logger: quietLogger()})
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := New([]any{1}, Options{})
	assert.ErrorContains(t, err, "must be a mapping")
}

func TestFromFile_Missing(t *testing.T) {
	_, err := FromFile("testdata/templates/nope.yml", Options{})
	var le *spec.LoadError
	assert.ErrorAs(t, err, &le)
}

func TestEngine_Columns(t *testing.T) {
	e, err := FromFile("testdata/templates/ward_stays.yml", Options{Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"admission_id", "ward_code", "ward_name", "admitted", "stay", "discharged", "label", "category",
	}, e.Columns())
	assert.Len(t, e.Fieldset().Fields(), 9)
}
