package field

// Result is the outcome of a transformer hook: either continue with Value,
// or override the field's value with Value and stop the pipeline.
type Result struct {
	Value      any
	Overridden bool
}

// Continue passes v on to the next pipeline stage.
func Continue(v any) Result {
	return Result{Value: v}
}

// Override short-circuits the pipeline with v.
func Override(v any) Result {
	return Result{Value: v, Overridden: true}
}

// Transformer is a pre/post processing step attached to a field.
//
// BeforeNext runs before generation; an Override result skips the field's
// generator and every later hook. AfterNext receives the current value and
// returns the next one.
type Transformer interface {
	Name() string
	BeforeNext(f Field, row Row) (Result, error)
	AfterNext(f Field, row Row, v any) (Result, error)
}

// Initializer is implemented by transformers that bind to sibling fields
// after the fieldset is wired. The built-in transformers carry no field
// references and do not implement it.
type Initializer interface {
	Init(fs Fieldset) error
}
