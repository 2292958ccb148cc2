package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/headfake/internal/dataset"
	"github.com/roach88/headfake/internal/engine"
	"github.com/roach88/headfake/internal/output"
	"github.com/roach88/headfake/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	OutputFile string
	Rows       int
	Seed       int64
	Format     string
	Table      string
	Locale     string
	MaxRetries int

	// seedSet records an explicit --seed, which overrides the template.
	seedSet bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <template>",
		Short: "Generate a dataset from a template",
		Long: `Generate rows from a template and write them as CSV, JSON or SQLite.

Without --output-file the dataset is written to stdout as CSV. With a file,
the format comes from --format or else the file extension (.json, .db,
.sqlite, .sqlite3; anything else is CSV).

The seed is taken from --seed, then the template's seed key, then 0.

Example:
  headfake generate patients.yml -n 100
  headfake generate patients.yml -o patients.json -s 42
  headfake generate patients.yml -o patients.db --table patients`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seedSet = cmd.Flags().Changed("seed")
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputFile, "output-file", "o", "", "write to file rather than stdout")
	cmd.Flags().IntVarP(&opts.Rows, "no-rows", "n", 10, "number of rows to generate")
	cmd.Flags().Int64VarP(&opts.Seed, "seed", "s", 0, "seed for the random data generator")
	cmd.Flags().StringVar(&opts.Format, "format", "", "output format (csv|json|sqlite)")
	cmd.Flags().StringVar(&opts.Table, "table", store.DefaultTable, "table name for sqlite output")
	cmd.Flags().StringVar(&opts.Locale, "locale", "", "locale for fake values (overrides the template)")
	cmd.Flags().IntVar(&opts.MaxRetries, "max-retries", 0, "cap on resampling attempts (0 is unbounded)")

	return cmd
}

func runGenerate(opts *GenerateOptions, template string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.LogFormat, Writer: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	if opts.Rows < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--no-rows must not be negative, got %d", opts.Rows))
	}
	format, err := resolveFormat(opts)
	if err != nil {
		return formatter.Fail(ExitCommandError, "invalid output", err)
	}

	eopts := engine.Options{
		Locale:     opts.Locale,
		Logger:     slog.Default(),
		MaxRetries: opts.MaxRetries,
	}
	seed := opts.Seed
	if opts.seedSet {
		eopts.Seed = &seed
	} else {
		eopts.FallbackSeed = &seed
	}

	slog.Debug("loading template", "path", template)
	eng, err := engine.FromFile(template, eopts)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to build template", err)
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	ds, err := eng.Generate(ctx, opts.Rows)
	if err != nil {
		return formatter.Fail(ExitFailure, "generation failed", err)
	}

	if err := writeDataset(ctx, opts, format, ds, cmd); err != nil {
		return formatter.Fail(ExitFailure, "failed to write dataset", err)
	}
	if opts.OutputFile != "" {
		slog.Info("dataset written", "path", opts.OutputFile, "format", format, "rows", ds.Len())
	}
	return nil
}

// resolveFormat applies --format, falling back to the output file
// extension. Stdout only takes stream formats.
func resolveFormat(opts *GenerateOptions) (output.Format, error) {
	format := output.FormatCSV
	if opts.OutputFile != "" {
		format = output.FormatFromPath(opts.OutputFile)
	}
	if opts.Format != "" {
		f, err := output.ParseFormat(opts.Format)
		if err != nil {
			return "", err
		}
		format = f
	}
	if format == output.FormatSQLite && opts.OutputFile == "" {
		return "", fmt.Errorf("sqlite output needs --output-file")
	}
	return format, nil
}

func writeDataset(ctx context.Context, opts *GenerateOptions, format output.Format, ds *dataset.Dataset, cmd *cobra.Command) error {
	if format == output.FormatSQLite {
		st, err := store.Open(opts.OutputFile)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		w := &store.DatasetWriter{Store: st, Table: opts.Table}
		return w.Write(ctx, ds)
	}

	if opts.OutputFile == "" {
		w, err := output.New(format, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return w.Write(ctx, ds)
	}

	f, err := os.Create(opts.OutputFile)
	if err != nil {
		return err
	}
	w, err := output.New(format, f)
	if err != nil {
		f.Close()
		return err
	}
	if err := w.Write(ctx, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// signalContext derives a context cancelled by SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
