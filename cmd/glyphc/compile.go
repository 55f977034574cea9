package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/glyphc/internal/application/dto"
	"github.com/reglet-dev/glyphc/internal/application/ports"
	"github.com/reglet-dev/glyphc/internal/infrastructure/container"
	"github.com/reglet-dev/glyphc/internal/infrastructure/output"
	"github.com/reglet-dev/glyphc/internal/infrastructure/system"
	"github.com/reglet-dev/glyphc/internal/version"
)

// compileOptions holds the flags of the compile command.
type compileOptions struct {
	CommonOptions

	CatalogPath       string
	FontPath          string
	Filter            string
	DiagnosticsPath   string
	FontSize          int
	Parallelism       int
	StrictIdentifiers bool
	Compact           bool
}

var compileOpts = compileOptions{CommonOptions: DefaultCommonOptions()}

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile <config.yaml>...",
	Short: "Compile configurations into instruction streams",
	Long: `Load one or more clock face configurations and emit, for each, the ordered
instruction stream that constructs the icon font, the controller, every group
and widget, and registers the resulting entities with the host.

Each file is compiled independently (its own identifier set and icon
selection); the icon catalog is loaded once and shared.

Filtering:
  --filter "id startsWith 'main'"   Keep only groups matching the expression.
                                    Available fields: id, visible, widgets, types, glyph.
                                    Groups that do not match are pruned like visible: false.`,
	Example: `  glyphc compile clock.yaml
  glyphc compile clock.yaml --format json -o stream.json
  glyphc compile kitchen.yaml hall.yaml --diagnostics glyphc.sarif`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sysCfg, err := loadSystemConfig()
		if err != nil {
			return err
		}
		applySystemDefaults(cmd, &compileOpts, sysCfg)
		return runCompile(cmd.Context(), cmd.OutOrStdout(), &compileOpts, sysCfg, args)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileOpts.RegisterFlags(compileCmd, output.NewFormatterFactory().SupportedFormats())
	compileCmd.Flags().StringVar(&compileOpts.CatalogPath, "catalog", "", "Icon catalog file (default: embedded Material Design Icons subset)")
	compileCmd.Flags().StringVar(&compileOpts.FontPath, "font", "", "TrueType/OpenType icon font to verify glyph coverage against")
	compileCmd.Flags().IntVar(&compileOpts.FontSize, "font-size", 0, "Override the configured font size")
	compileCmd.Flags().StringVar(&compileOpts.Filter, "filter", "", "Group filter expression (e.g. \"widgets > 0\")")
	compileCmd.Flags().StringVar(&compileOpts.DiagnosticsPath, "diagnostics", "", "Write compile diagnostics as SARIF to this file")
	compileCmd.Flags().IntVar(&compileOpts.Parallelism, "parallel", 0, "Maximum concurrent compilations (0: system config)")
	compileCmd.Flags().BoolVar(&compileOpts.StrictIdentifiers, "strict-identifiers", false, "Fail instead of renaming colliding derived identifiers")
	compileCmd.Flags().BoolVar(&compileOpts.Compact, "compact", false, "Compact JSON output")
}

// applySystemDefaults fills options the user did not set on the command line
// from the system config.
func applySystemDefaults(cmd *cobra.Command, opts *compileOptions, sysCfg *system.Config) {
	flags := cmd.Flags()
	if !flags.Changed("format") {
		opts.Format = sysCfg.OutputFormat
	}
	if !flags.Changed("catalog") {
		opts.CatalogPath = sysCfg.CatalogPath
	}
	if !flags.Changed("font") {
		opts.FontPath = sysCfg.FontPath
	}
	if !flags.Changed("font-size") {
		opts.FontSize = sysCfg.FontSize
	}
	if !flags.Changed("strict-identifiers") {
		opts.StrictIdentifiers = sysCfg.StrictIdentifiers
	}
	if !flags.Changed("parallel") {
		opts.Parallelism = sysCfg.Parallelism
	}
}

// runCompile implements the core logic for the compile command
func runCompile(ctx context.Context, stdout io.Writer, opts *compileOptions, sysCfg *system.Config, paths []string) error {
	factory := output.NewFormatterFactory()
	if err := opts.ValidateFlags(factory.SupportedFormats()); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := opts.ApplyToContext(ctx)
	defer cancel()

	c, err := container.New(container.Options{
		Logger:       slog.Default(),
		SystemConfig: sysCfg,
		CatalogPath:  opts.CatalogPath,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize compiler: %w", err)
	}

	reqs := make([]dto.CompileRequest, 0, len(paths))
	for _, path := range paths {
		reqs = append(reqs, dto.CompileRequest{
			ConfigPath: path,
			Options: dto.CompileOptions{
				FilterExpression:  opts.Filter,
				StrictIdentifiers: opts.StrictIdentifiers,
				FontSizeOverride:  opts.FontSize,
				FontFileOverride:  opts.FontPath,
			},
		})
	}

	results, err := c.CompileUseCase().ExecuteMany(ctx, reqs, opts.Parallelism)
	if err != nil {
		return err
	}

	if err := writeStreams(factory, stdout, opts, results); err != nil {
		return err
	}

	if opts.DiagnosticsPath != "" {
		if err := writeDiagnostics(opts.DiagnosticsPath, results); err != nil {
			return err
		}
	}
	return nil
}

func writeStreams(factory ports.StreamFormatterFactory, stdout io.Writer, opts *compileOptions, results []*dto.CompileResponse) (err error) {
	w, closeOut, err := openOutput(opts.OutFile, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	formatter, err := factory.Create(opts.Format, w, ports.FormatterOptions{Indent: !opts.Compact})
	if err != nil {
		return err
	}
	for _, result := range results {
		if err := formatter.Format(result); err != nil {
			return fmt.Errorf("failed to write %s: %w", result.ConfigPath, err)
		}
	}
	return nil
}

func writeDiagnostics(path string, results []*dto.CompileResponse) (err error) {
	w, closeOut, err := openOutput(path, nil)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return output.NewSARIFWriter(w, version.Get().Version).Write(results)
}
