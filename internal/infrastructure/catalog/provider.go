package catalog

import (
	"log/slog"
	"sync"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
)

// Provider loads the catalog once per process and hands out the same
// read-only instance afterwards. An empty path selects the embedded catalog.
type Provider struct {
	path   string
	logger *slog.Logger

	once    sync.Once
	catalog *entities.Catalog
	err     error
}

// NewProvider creates a provider for path.
func NewProvider(path string, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{path: path, logger: logger}
}

// Catalog returns the loaded catalog, loading it on first call. A load
// failure is returned on every call.
func (p *Provider) Catalog() (*entities.Catalog, error) {
	p.once.Do(func() {
		if p.path == "" {
			p.catalog, p.err = LoadDefault()
		} else {
			p.catalog, p.err = LoadFile(p.path)
		}
		if p.err == nil {
			p.logger.Debug("loaded icon catalog", "source", p.catalog.Source(), "icons", p.catalog.Len())
		}
	})
	return p.catalog, p.err
}
