// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/reglet-dev/glyphc/internal/application/dto"
	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/services"
	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// ConfigLoader loads a configuration tree and checks its shape.
// Shape problems are reported as *entities.ConfigError.
type ConfigLoader interface {
	LoadConfiguration(path string) (*entities.Configuration, error)
}

// CatalogProvider hands out the process-wide icon catalog, loading it on
// first use.
type CatalogProvider interface {
	Catalog() (*entities.Catalog, error)
}

// FontBuilder builds the icon font for a compilation's selection set.
type FontBuilder = services.FontBuilder

// HostRegistrar registers entities with the host platform.
type HostRegistrar interface {
	Register(ctx context.Context, cfg *entities.EntityConfig) (entities.RegisteredHandle, error)
}

// HostRegistrarFactory creates one registrar per compilation.
type HostRegistrarFactory interface {
	NewRegistrar(id values.CompilationID) HostRegistrar
}

// StreamFormatter writes a compiled instruction stream.
type StreamFormatter interface {
	Format(result *dto.CompileResponse) error
}

// FormatterOptions configures stream formatters.
type FormatterOptions struct {
	Indent bool
}

// StreamFormatterFactory creates formatters by name.
type StreamFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (StreamFormatter, error)
	SupportedFormats() []string
}

// DiagnosticsWriter exports compile diagnostics for tooling.
type DiagnosticsWriter interface {
	Write(results []*dto.CompileResponse) error
}
