package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/infrastructure/catalog"
)

var (
	catalogPath   string
	catalogFormat string
)

var catalogFormats = []string{"text", "json", "yaml"}

// catalogCmd groups icon catalog queries.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the icon catalog",
}

var catalogLookupCmd = &cobra.Command{
	Use:   "lookup <icon>...",
	Short: "Print the codepoints of the named icons",
	Example: `  glyphc catalog lookup bell mdi:door-open
  glyphc catalog lookup thermometer --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		return runCatalogLookup(cmd.OutOrStdout(), c, args)
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "List catalog icons whose name contains text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		return writeEntries(cmd.OutOrStdout(), catalog.Entries(c, c.Search(args[0])))
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogLookupCmd, catalogSearchCmd)

	catalogCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Icon catalog file (default: system config or embedded)")
	catalogCmd.PersistentFlags().StringVar(&catalogFormat, "format", "text", fmt.Sprintf("Output format: %v", catalogFormats))
}

func openCatalog() (*entities.Catalog, error) {
	path := catalogPath
	if path == "" {
		sysCfg, err := loadSystemConfig()
		if err != nil {
			return nil, err
		}
		path = sysCfg.CatalogPath
	}
	return catalog.NewProvider(path, slog.Default()).Catalog()
}

func runCatalogLookup(w io.Writer, c *entities.Catalog, args []string) error {
	names := make([]string, 0, len(args))
	var missing []string
	for _, arg := range args {
		name := entities.NormalizeIconName(arg)
		if !c.Contains(name) {
			missing = append(missing, arg)
			continue
		}
		names = append(names, name)
	}

	if err := writeEntries(w, catalog.Entries(c, names)); err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("unknown icons in %s: %s", c.Source(), strings.Join(missing, ", "))
	}
	return nil
}

func writeEntries(w io.Writer, entries []catalog.Entry) error {
	switch catalogFormat {
	case "text":
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "%-24s %s\n", e.Name, e.Codepoint); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("invalid format: %s (valid: %v)", catalogFormat, catalogFormats)
	}
}
