package harness

import "github.com/roach88/headfake/internal/dataset"

// Result contains the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool

	// Dataset is the generated dataset.
	Dataset *dataset.Dataset

	// Errors lists the failed assertions in scenario order.
	Errors []string

	// Seed is the seed the run used.
	Seed int64
}
