// Package font builds the icon font for a compilation.
package font

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/sfnt"

	"github.com/reglet-dev/glyphc/internal/application/ports"
	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/services"
)

// CatalogFontBuilder maps selected icons to codepoints through the catalog.
// When the request names a font file, the file is parsed and every codepoint
// must have a glyph in it.
type CatalogFontBuilder struct {
	catalogs ports.CatalogProvider
	logger   *slog.Logger
}

// NewCatalogFontBuilder creates a font builder backed by catalogs.
func NewCatalogFontBuilder(catalogs ports.CatalogProvider, logger *slog.Logger) *CatalogFontBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogFontBuilder{catalogs: catalogs, logger: logger}
}

// Build returns the font handle for req.Icons, in request order.
func (b *CatalogFontBuilder) Build(ctx context.Context, req services.FontRequest) (*entities.FontHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalog, err := b.catalogs.Catalog()
	if err != nil {
		return nil, &entities.FontBuildError{Cause: err}
	}

	handle := &entities.FontHandle{ID: req.ID, Size: req.Size, Source: req.File}
	var unmapped []string
	for _, name := range req.Icons {
		cp, ok := catalog.Codepoint(name)
		if !ok {
			unmapped = append(unmapped, name)
			continue
		}
		handle.Glyphs = append(handle.Glyphs, entities.Glyph{Name: name, Codepoint: cp})
	}
	if len(unmapped) > 0 {
		return nil, &entities.FontBuildError{Unmapped: unmapped}
	}

	if req.File != "" {
		if err := b.checkCoverage(req.File, handle.Glyphs); err != nil {
			return nil, &entities.FontBuildError{Cause: err}
		}
	}

	b.logger.Debug("built icon font", "font", req.ID, "glyphs", len(handle.Glyphs), "size", req.Size)
	return handle, nil
}

func (b *CatalogFontBuilder) checkCoverage(path string, glyphs []entities.Glyph) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read font file: %w", err)
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse font file %s: %w", path, err)
	}

	var buf sfnt.Buffer
	var missing []string
	for _, g := range glyphs {
		idx, err := f.GlyphIndex(&buf, g.Codepoint)
		if err != nil {
			return fmt.Errorf("failed to look up %s in %s: %w", g.Name, path, err)
		}
		if idx == 0 {
			missing = append(missing, fmt.Sprintf("%s (%s)", g.Name, entities.FormatCodepoint(g.Codepoint)))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("font file %s has no glyph for %s", path, strings.Join(missing, ", "))
	}

	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil {
		b.logger.Debug("verified icon font coverage", "file", path, "font_name", name, "glyphs", len(glyphs))
	}
	return nil
}
