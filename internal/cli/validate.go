package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/headfake/internal/engine"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool     `json:"valid"`
	Columns []string `json:"columns"`
	Hidden  []string `json:"hidden,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <template>",
		Short: "Build a template without generating rows",
		Long: `Load and build a template, reporting the columns it would produce.

Every class is constructed and every field reference is checked, so mistakes
surface without generating data.`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, template string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.LogFormat, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	var seed int64
	eng, err := engine.FromFile(template, engine.Options{FallbackSeed: &seed, Logger: slog.Default()})
	if err != nil {
		return formatter.Fail(ExitCommandError, "invalid template", err)
	}

	plan := eng.Fieldset().Plan()
	result := ValidationResult{Valid: true, Columns: plan.Columns(), Hidden: plan.Hidden()}

	text := fmt.Sprintf("✓ template valid: %d columns\n  %s", len(result.Columns), strings.Join(result.Columns, "\n  "))
	if len(result.Hidden) > 0 {
		text += fmt.Sprintf("\nhidden: %s", strings.Join(result.Hidden, ", "))
	}
	return formatter.Success(result, text)
}
