// Package field implements the per-row value generators and the uniform
// generation protocol they share.
//
// Every field runs the same pipeline on NextValue:
//
//  1. each transformer's BeforeNext, in order; an Override result returns
//     its value immediately
//  2. the field's own generator, reading the partial row
//  3. each transformer's AfterNext, chaining values; Override stops the chain
//
// Failures in any stage are returned as *FieldGenerationError. A field with
// an error value substitutes it for any failure except
// *CapacityExceededError. Final transformers are not part of the pipeline:
// the fieldset applies them with ApplyFinal once the whole row is assembled.
//
// Cross-field parameters (min, max, mean, end dates, branches) accept a
// literal, the name of an already-generated column, or a nested Field.
// Fields that refer to siblings by name resolve them once in Init.
//
// All randomness comes from Env.Rand, the shared stream of the run, and
// from samplers built by Env.Samplers.
package field
