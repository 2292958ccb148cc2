// Package transform provides the transformers that can be attached to a
// field's transformers or final_transformers lists.
//
// Most transformers act in AfterNext only and receive the value produced by
// the field or by the previous transformer. IntermittentBlanks acts in
// BeforeNext and overrides the whole field with its blank value.
package transform
