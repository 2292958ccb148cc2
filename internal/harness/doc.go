// Package harness runs conformance scenarios against templates.
//
// A scenario names a template, a seed and a row count, and lists
// assertions over the generated dataset. Scenarios are YAML files:
//
//	name: admissions_consistency
//	description: "Discharge never precedes admission"
//	template: ../templates/admissions.yml
//	seed: 42
//	rows: 200
//	assertions:
//	  - type: columns
//	    columns: [admission_id, admitted, discharged]
//	  - type: unique
//	    column: admission_id
//	  - type: matches
//	    column: admission_id
//	    pattern: "^A\\d{4}$"
//	  - type: values_in
//	    column: title
//	    values: [Mr, Ms]
//	    where: { gender: M }
//
// # Assertion Types
//
//   - columns: the dataset has exactly these columns, in order
//   - row_count: the dataset has count rows
//   - values_in: every value of column is one of values
//   - matches: every value of column matches pattern
//   - range: every numeric value of column lies within [min, max]
//   - unique: no two rows share a value of column
//   - not_empty: no value of column is null or ""
//   - row: the first row matching where has the expect values
//
// Every assertion except columns and row_count accepts where, a column to
// value filter selecting the rows it checks.
//
// # Deterministic Testing
//
// Scenarios run with the scenario seed (0 when absent, overriding any
// template seed) and a fixed reference date, so a scenario always produces
// the same dataset. RunWithGolden snapshots that dataset as CSV for golden
// file comparison.
package harness
