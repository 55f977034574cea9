package services

import (
	"log/slog"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
)

// CompilationContext holds the state of one top-level compilation: the
// selection set and the emitted-identifier set. It is created fresh for every
// configuration submission and never shared between compilations. The catalog
// is the only shared piece and is read-only.
type CompilationContext struct {
	Catalog   *entities.Catalog
	Selection *entities.SelectionSet
	Allocator *IdentifierAllocator
	Resolver  *GlyphResolver
	Logger    *slog.Logger
}

// NewCompilationContext creates a fresh context over a shared catalog.
func NewCompilationContext(catalog *entities.Catalog, logger *slog.Logger, strictIdentifiers bool) *CompilationContext {
	if logger == nil {
		logger = slog.Default()
	}
	selection := entities.NewSelectionSet()
	return &CompilationContext{
		Catalog:   catalog,
		Selection: selection,
		Allocator: NewIdentifierAllocator(logger, strictIdentifiers),
		Resolver:  NewGlyphResolver(catalog, selection),
		Logger:    logger,
	}
}
