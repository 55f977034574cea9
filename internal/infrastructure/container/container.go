// Package container provides dependency injection for the application.
package container

import (
	"log/slog"

	"github.com/reglet-dev/glyphc/internal/application/ports"
	"github.com/reglet-dev/glyphc/internal/application/services"
	"github.com/reglet-dev/glyphc/internal/infrastructure/catalog"
	"github.com/reglet-dev/glyphc/internal/infrastructure/config"
	"github.com/reglet-dev/glyphc/internal/infrastructure/font"
	"github.com/reglet-dev/glyphc/internal/infrastructure/host"
	"github.com/reglet-dev/glyphc/internal/infrastructure/output"
	"github.com/reglet-dev/glyphc/internal/infrastructure/system"
)

// Container holds all application dependencies.
type Container struct {
	catalogs       *catalog.Provider
	configLoader   ports.ConfigLoader
	manifests      *host.ManifestStore
	formatters     ports.StreamFormatterFactory
	compileUseCase *services.CompileConfigurationUseCase
	systemCfg      *system.Config
	logger         *slog.Logger
}

// Options configure the container.
type Options struct {
	Logger       *slog.Logger
	SystemConfig *system.Config

	// CatalogPath overrides SystemConfig.CatalogPath when set.
	CatalogPath string
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.SystemConfig == nil {
		opts.SystemConfig = system.DefaultConfig()
	}

	catalogPath := opts.CatalogPath
	if catalogPath == "" {
		catalogPath = opts.SystemConfig.CatalogPath
	}

	// One catalog per process, shared read-only by every compilation
	catalogs := catalog.NewProvider(catalogPath, opts.Logger)

	configLoader, err := config.NewConfigurationLoader()
	if err != nil {
		return nil, err
	}

	fonts := font.NewCatalogFontBuilder(catalogs, opts.Logger)
	manifests := host.NewManifestStore()

	// Wire up use case
	compileUseCase := services.NewCompileConfigurationUseCase(
		configLoader,
		catalogs,
		fonts,
		manifests,
		opts.Logger,
	)

	return &Container{
		catalogs:       catalogs,
		configLoader:   configLoader,
		manifests:      manifests,
		formatters:     output.NewFormatterFactory(),
		compileUseCase: compileUseCase,
		systemCfg:      opts.SystemConfig,
		logger:         opts.Logger,
	}, nil
}

// CompileUseCase returns the compile use case.
func (c *Container) CompileUseCase() *services.CompileConfigurationUseCase {
	return c.compileUseCase
}

// ConfigLoader returns the configuration loader port.
func (c *Container) ConfigLoader() ports.ConfigLoader {
	return c.configLoader
}

// Catalogs returns the shared catalog provider.
func (c *Container) Catalogs() ports.CatalogProvider {
	return c.catalogs
}

// Manifests returns the host manifest store.
func (c *Container) Manifests() *host.ManifestStore {
	return c.manifests
}

// Formatters returns the stream formatter factory.
func (c *Container) Formatters() ports.StreamFormatterFactory {
	return c.formatters
}

// SystemConfig returns the system configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}
