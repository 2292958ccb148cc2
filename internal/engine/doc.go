// Package engine is the entry point for turning a template into a dataset.
//
// A template is a mapping with a required "fieldset" key and optional
// "locale" and "seed" keys:
//
//	seed: 42
//	locale: en_GB
//	fieldset:
//	  class: headfake.Fieldset
//	  fields:
//	    - name: patient_id
//	      class: headfake.field.IdField
//	      ...
//
// Building an engine seeds every random source once:
//   - the shared stream consumed by fields and transformers in plan order
//   - the distribution sampler stream
//   - the fake-value provider
//
// The secondary streams and the provider are seeded from values derived from
// the run seed, so one seed reproduces the whole dataset. Options override
// the template's seed and locale.
package engine
