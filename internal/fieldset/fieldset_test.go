package fieldset

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/headfake/internal/field"
	"github.com/roach88/headfake/internal/spec"
	"github.com/roach88/headfake/internal/transform"
)

// stubField is a configurable field for plan tests.
type stubField struct {
	name   string
	hidden bool
	after  bool
	finals []field.Transformer
	init   func(fs field.Fieldset) error
	gen    func(row field.Row) (any, error)
}

func (s *stubField) Name() string                           { return s.name }
func (s *stubField) Hidden() bool                           { return s.hidden }
func (s *stubField) GenerateAfter() bool                    { return s.after }
func (s *stubField) Transformers() []field.Transformer      { return nil }
func (s *stubField) FinalTransformers() []field.Transformer { return s.finals }

func (s *stubField) Init(fs field.Fieldset) error {
	if s.init != nil {
		return s.init(fs)
	}
	return nil
}

func (s *stubField) NextValue(row field.Row) (any, error) {
	if s.gen != nil {
		return s.gen(row)
	}
	return s.name, nil
}

// siblingTransformer binds to another field in Init and tags values with
// its name.
type siblingTransformer struct {
	target string
	bound  field.Field
}

func (s *siblingTransformer) Name() string { return "sibling" }

func (s *siblingTransformer) Init(fs field.Fieldset) error {
	f, ok := fs.Field(s.target)
	if !ok {
		return errors.New("no field " + s.target)
	}
	s.bound = f
	return nil
}

func (s *siblingTransformer) BeforeNext(field.Field, field.Row) (field.Result, error) {
	return field.Continue(nil), nil
}

func (s *siblingTransformer) AfterNext(_ field.Field, _ field.Row, v any) (field.Result, error) {
	return field.Continue(fmt.Sprintf("%v@%s", v, s.bound.Name())), nil
}

func constantField(name string, v any) field.Field {
	return field.NewConstantField(field.Options{Name: name}, v)
}

func TestNew_DuplicateNames(t *testing.T) {
	_, err := New([]field.Field{constantField("a", 1), constantField("a", 2)})
	require.Error(t, err)
	assert.True(t, IsDuplicateField(err))

	var de *DuplicateFieldError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "a", de.Name)
}

func TestNew_CompanionCollidesWithField(t *testing.T) {
	owner := &stubField{name: "dead", init: func(fs field.Fieldset) error {
		fs.DeclareColumns("dead", "age")
		return nil
	}}
	_, err := New([]field.Field{constantField("age", 1), owner})
	assert.True(t, IsDuplicateField(err))
}

func TestNew_InitErrorNamesField(t *testing.T) {
	bad := &stubField{name: "bad", init: func(field.Fieldset) error { return errors.New("boom") }}
	_, err := New([]field.Field{bad})
	assert.ErrorContains(t, err, `initialising field "bad": boom`)
}

func TestNew_InitialisesTransformersAfterFields(t *testing.T) {
	tagger := &siblingTransformer{target: "ward"}
	bed := field.NewConstantField(field.Options{Name: "bed", Transformers: []field.Transformer{tagger}}, 4)
	fs, err := New([]field.Field{bed, constantField("ward", "W7")})
	require.NoError(t, err)
	require.NotNil(t, tagger.bound, "transformer bound to a field declared after its owner")

	row, err := fs.Plan().NextRow()
	require.NoError(t, err)
	assert.Equal(t, "4@ward", row["bed"])

	missing := field.NewConstantField(field.Options{Name: "bed", Transformers: []field.Transformer{&siblingTransformer{target: "nope"}}}, 4)
	_, err = New([]field.Field{missing})
	assert.ErrorContains(t, err, `field "bed": transformer "sibling": no field nope`)
}

func TestPlan_DeferredFieldsRunLast(t *testing.T) {
	var order []string
	track := func(name string, after bool) *stubField {
		return &stubField{name: name, after: after, gen: func(field.Row) (any, error) {
			order = append(order, name)
			return name, nil
		}}
	}
	fs, err := New([]field.Field{track("a", true), track("b", false), track("c", true), track("d", false)})
	require.NoError(t, err)

	plan := fs.Plan()
	assert.Equal(t, []string{"b", "d", "a", "c"}, plan.Order())
	assert.Equal(t, []string{"a", "b", "c", "d"}, plan.Columns())

	_, err = plan.NextRow()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "a", "c"}, order)
	assert.Same(t, plan, fs.Plan(), "plan is cached")
}

func TestPlan_HiddenFieldsFeedLaterFields(t *testing.T) {
	secret := field.NewConstantField(field.Options{Name: "secret", Hidden: true}, "s3")
	copied := field.NewLookupField(field.Options{Name: "copy"}, "secret")
	fs, err := New([]field.Field{secret, copied})
	require.NoError(t, err)

	assert.Equal(t, []string{"copy"}, fs.FieldNames())
	assert.Equal(t, []string{"secret"}, fs.Plan().Hidden())

	row, err := fs.Plan().NextRow()
	require.NoError(t, err)
	assert.Equal(t, field.Row{"copy": "s3"}, row)
}

func TestPlan_CompanionColumns(t *testing.T) {
	multi := func(name string, hidden bool) *stubField {
		return &stubField{
			name:   name,
			hidden: hidden,
			after:  true,
			init: func(fs field.Fieldset) error {
				fs.DeclareColumns(name, name+"_x", name+"_y")
				return nil
			},
			gen: func(field.Row) (any, error) {
				return field.Values{name: 1, name + "_x": 2, name + "_y": 3}, nil
			},
		}
	}
	fs, err := New([]field.Field{constantField("first", 0), multi("m", false), multi("h", true), constantField("last", 9)})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "m", "m_x", "m_y", "last"}, fs.FieldNames())
	assert.Equal(t, []string{"h", "h_x", "h_y"}, fs.Plan().Hidden())

	row, err := fs.Plan().NextRow()
	require.NoError(t, err)
	assert.Equal(t, field.Row{"first": 0, "m": 1, "m_x": 2, "m_y": 3, "last": 9}, row)
}

func TestPlan_FinalTransformersRunAfterRowAssembly(t *testing.T) {
	code := &stubField{
		name:   "code",
		finals: []field.Transformer{transform.NewUpperCase("upper")},
		gen:    func(field.Row) (any, error) { return "abc", nil },
	}
	copied := field.NewLookupField(field.Options{Name: "copy"}, "code")
	fs, err := New([]field.Field{code, copied})
	require.NoError(t, err)

	row, err := fs.Plan().NextRow()
	require.NoError(t, err)
	assert.Equal(t, "ABC", row["code"])
	assert.Equal(t, "abc", row["copy"], "later fields see the value before final transforms")
}

func TestPlan_FinalTransformerError(t *testing.T) {
	trunc, err := transform.NewTruncate("trunc", 2)
	require.NoError(t, err)
	num := &stubField{name: "n", finals: []field.Transformer{trunc}, gen: func(field.Row) (any, error) { return 12345, nil }}
	fs, err := New([]field.Field{num})
	require.NoError(t, err)

	_, err = fs.Plan().NextRow()
	require.Error(t, err)
	assert.True(t, field.IsTransformerError(err))
}

func TestFieldset_AddRecompilesPlan(t *testing.T) {
	fs, err := New([]field.Field{constantField("a", 1)})
	require.NoError(t, err)
	before := fs.Plan()

	require.NoError(t, fs.Add(constantField("b", 2)))
	assert.NotSame(t, before, fs.Plan())
	assert.Equal(t, []string{"a", "b"}, fs.Plan().Columns())

	assert.True(t, IsDuplicateField(fs.Add(constantField("a", 3))))

	_, ok := fs.Field("b")
	assert.True(t, ok)
	assert.Len(t, fs.FieldMap(), 2)
}

func TestGenerate(t *testing.T) {
	n := 0
	counter := &stubField{name: "n", gen: func(field.Row) (any, error) {
		n++
		return n, nil
	}}
	fs, err := New([]field.Field{counter, constantField("c", "x")})
	require.NoError(t, err)

	ds, err := fs.Generate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"n", "c"}, ds.Columns)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"3", "x"}, ds.Record(2))
}

func TestGenerate_ReportsFailingRow(t *testing.T) {
	calls := 0
	flaky := &stubField{name: "f", gen: func(field.Row) (any, error) {
		calls++
		if calls == 2 {
			return nil, &field.FieldGenerationError{Field: "f", Err: errors.New("bad draw")}
		}
		return calls, nil
	}}
	fs, err := New([]field.Field{flaky})
	require.NoError(t, err)

	_, err = fs.Generate(context.Background(), 5)
	assert.ErrorContains(t, err, "row 2:")
	var fe *field.FieldGenerationError
	assert.ErrorAs(t, err, &fe)
}

func TestGenerate_Cancelled(t *testing.T) {
	fs, err := New([]field.Field{constantField("a", 1)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = fs.Generate(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromNode(t *testing.T) {
	seq := 0
	names := func() string {
		seq++
		return "auto_" + string(rune('0'+seq))
	}

	list, err := FromNode([]any{
		constantField("built", 1),
		"bare",
		spec.MapOf("name", "fixed", "value", 7),
	}, names)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "built", list[0].Name())
	assert.Equal(t, "auto_1", list[1].Name())
	assert.Equal(t, "fixed", list[2].Name())

	mapped, err := FromNode(spec.MapOf(
		"a", constantField("a", 1),
		"b", 2,
		"c", spec.MapOf("value", "z"),
	), names)
	require.NoError(t, err)
	got := make([]string, len(mapped))
	for i, f := range mapped {
		got[i] = f.Name()
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, "z", mapped[2].(*field.ConstantField).Value())

	_, err = FromNode(spec.MapOf("d", spec.MapOf("min", 1)), names)
	assert.ErrorContains(t, err, "needs a class or a value")

	_, err = FromNode("nope", names)
	assert.ErrorContains(t, err, "list or a mapping")
}
