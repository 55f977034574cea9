package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apperrors "github.com/reglet-dev/glyphc/internal/application/errors"
	"github.com/reglet-dev/glyphc/internal/infrastructure/system"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "glyphc",
	Short: "Glyph and widget assembly compiler",
	Long: `glyphc compiles a declarative clock face configuration (groups of widgets
with icon glyphs) into a deterministic, dependency-ordered instruction stream.
It resolves icon names against a glyph catalog, builds the icon font from the
icons actually used, and synthesizes the alert and sticky-switch entities that
back every binary sensor widget.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.glyphc.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// initConfig loads configuration from the config file and environment.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("failed to find home directory", "error", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".glyphc")
	}

	system.Bind(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// loadSystemConfig reads ~/.glyphc.yaml (or --config) plus GLYPHC_* overrides.
func loadSystemConfig() (*system.Config, error) {
	cfg, err := system.Load(viper.GetViper())
	if err != nil {
		return nil, apperrors.NewConfigurationError("system", "invalid system configuration", err)
	}
	return cfg, nil
}
