package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/headfake/internal/provider"
	"github.com/roach88/headfake/internal/random"
	"github.com/roach88/headfake/internal/testutil"
)

func TestNameField_FollowsGender(t *testing.T) {
	env := testEnv(testutil.NewScriptedRandom())
	gender := NewBooleanField(Options{Name: "gender"}, env, "M", "F", 0.5)
	first := NewFirstNameField(Options{Name: "first_name"}, env, "gender")
	require.NoError(t, first.Init(newMapFieldset(gender, first)))

	v, err := first.NextValue(Row{"gender": "M"})
	require.NoError(t, err)
	assert.Equal(t, "John", v)

	v, err = first.NextValue(Row{"gender": "F"})
	require.NoError(t, err)
	assert.Equal(t, "Mary", v)

	v, err = first.NextValue(Row{"gender": "X"})
	require.NoError(t, err)
	assert.Equal(t, "Alex", v)
}

func TestNameField_GenderFieldWithoutAccessors(t *testing.T) {
	env := testEnv(testutil.NewScriptedRandom())
	gender := NewConstantField(Options{Name: "sex"}, "female")
	first := NewFirstNameField(Options{Name: "first_name"}, env, "sex")
	require.NoError(t, first.Init(newMapFieldset(gender, first)))

	v, err := first.NextValue(Row{"sex": "Female"})
	require.NoError(t, err)
	assert.Equal(t, "Mary", v)
}

func TestNameField_UnknownGenderField(t *testing.T) {
	env := testEnv(testutil.NewScriptedRandom())
	first := NewFirstNameField(Options{Name: "first_name"}, env, "gender")
	assert.True(t, IsUnresolvedReference(first.Init(newMapFieldset(first))))
}

func TestMiddleNameField_DiffersFromFirst(t *testing.T) {
	env := testEnv(testutil.NewScriptedRandom())
	gender := NewGenderField(Options{Name: "gender"}, env, "M", "F", 0.5)
	middle := NewMiddleNameField(Options{Name: "middle_name"}, env, "gender", "first_name")
	require.NoError(t, middle.Init(newMapFieldset(gender, middle)))

	// Stub names cycle John, David: the first draw repeats the first name.
	v, err := middle.NextValue(Row{"gender": "M", "first_name": "John"})
	require.NoError(t, err)
	assert.Equal(t, "David", v)
}

func TestGenderConsistentNames(t *testing.T) {
	env := &Env{Rand: random.New(99), Faker: provider.NewFaker("en_GB", 99)}
	gender := NewBooleanField(Options{Name: "gender"}, env, "M", "F", 0.5)
	first := NewFirstNameField(Options{Name: "first_name"}, env, "gender")
	require.NoError(t, first.Init(newMapFieldset(gender, first)))

	male := map[string]bool{}
	for _, n := range []string{"Oliver", "George", "Harry"} {
		male[n] = true
	}
	for i := 0; i < 200; i++ {
		row := Row{}
		g, err := gender.NextValue(row)
		require.NoError(t, err)
		row["gender"] = g

		name, err := first.NextValue(row)
		require.NoError(t, err)
		if g == "F" {
			assert.False(t, male[name.(string)], "female row got male name %v", name)
		}
	}
}

func TestFakerFields(t *testing.T) {
	env := testEnv(testutil.NewScriptedRandom())

	line1, err := NewAddressField(Options{Name: "a1"}, env, 1)
	require.NoError(t, err)
	line4, err := NewAddressField(Options{Name: "a4"}, env, 4)
	require.NoError(t, err)
	_, err = NewAddressField(Options{Name: "a5"}, env, 5)
	assert.Error(t, err)

	tests := []struct {
		f    Field
		want any
	}{
		{line1, "1 High Street"},
		{line4, ""},
		{NewPostcodeField(Options{Name: "pc"}, env), "LS1 4AP"},
		{NewPhoneField(Options{Name: "ph"}, env, "mobile"), "07700 900123"},
		{NewPhoneField(Options{Name: "ph"}, env, "default"), "0113 496 0000"},
		{NewEmailField(Options{Name: "em"}, env, true), "john.smith@example.com"},
		{NewPasswordField(Options{Name: "pw"}, env, provider.PasswordOptions{Length: 4}), "pppp"},
		{NewTextField(Options{Name: "tx"}, env, 11), "Lorem ipsum"},
		{NewMemoField(Options{Name: "memo"}, env, 2, true), "Lorem ipsum. Lorem ipsum."},
		{NewTimeField(Options{Name: "tm"}, env, "%H:%M"), "09:30"},
	}
	for _, tt := range tests {
		t.Run(tt.f.Name(), func(t *testing.T) {
			v, err := tt.f.NextValue(Row{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestUUIDField_Reproducible(t *testing.T) {
	a := NewUUIDField(Options{Name: "id"}, &Env{Rand: random.New(3)})
	b := NewUUIDField(Options{Name: "id"}, &Env{Rand: random.New(3)})

	va, err := a.NextValue(Row{})
	require.NoError(t, err)
	vb, err := b.NextValue(Row{})
	require.NoError(t, err)

	assert.Equal(t, va, vb)
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`, va)
}
