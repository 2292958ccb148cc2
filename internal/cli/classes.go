package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/headfake/internal/catalog"
	"github.com/roach88/headfake/internal/field"
)

// NewClassesCommand creates the classes command.
func NewClassesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List the classes templates can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.LogFormat, Writer: cmd.OutOrStdout()}
			classes := catalog.NewRegistry(catalog.Config{Env: &field.Env{}}).Classes()
			return formatter.Success(classes, strings.Join(classes, "\n"))
		},
	}
	return cmd
}
