package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog() *entities.Catalog {
	return entities.NewCatalog("test", map[string]rune{
		"bell":          0xF0A0,
		"walk":          0xF0A1,
		"run":           0xF0A2,
		"alarm":         0xF0A3,
		"thermometer":   0xF0A4,
		"door-open":     0xF0A5,
		"door-closed":   0xF0A6,
		"clock-outline": 0xF0A7,
	})
}

// catalogFontBuilder maps requested icons through a catalog, like the real
// collaborator does, and records every call.
type catalogFontBuilder struct {
	catalog  *entities.Catalog
	requests []FontRequest
}

func (b *catalogFontBuilder) Build(_ context.Context, req FontRequest) (*entities.FontHandle, error) {
	b.requests = append(b.requests, req)
	handle := &entities.FontHandle{ID: req.ID, Size: req.Size}
	var unmapped []string
	for _, name := range req.Icons {
		cp, ok := b.catalog.Codepoint(name)
		if !ok {
			unmapped = append(unmapped, name)
			continue
		}
		handle.Glyphs = append(handle.Glyphs, entities.Glyph{Name: name, Codepoint: cp})
	}
	if len(unmapped) > 0 {
		return nil, &entities.FontBuildError{Unmapped: unmapped}
	}
	return handle, nil
}
