package services

import (
	"fmt"
	"log/slog"

	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// IdentifierAllocator hands out identifiers for synthesized objects and
// guards against collisions with every identifier already emitted in the
// same top-level compilation.
//
// On collision the widget's index within its group is appended. Derived
// identifiers of one widget always shift together so the alert sensor and
// sticky switch stay correlated.
type IdentifierAllocator struct {
	known  map[values.Identifier]string // identifier -> location that claimed it
	logger *slog.Logger
	// strict turns disambiguation into an error.
	strict      bool
	diagnostics []entities.Diagnostic
}

// NewIdentifierAllocator creates an allocator with an empty identifier set.
func NewIdentifierAllocator(logger *slog.Logger, strict bool) *IdentifierAllocator {
	if logger == nil {
		logger = slog.Default()
	}
	return &IdentifierAllocator{
		known:  make(map[values.Identifier]string),
		logger: logger,
		strict: strict,
	}
}

// Known reports whether id has been claimed.
func (a *IdentifierAllocator) Known(id values.Identifier) bool {
	_, ok := a.known[id]
	return ok
}

// Claim records id as emitted. Claiming an identifier twice is a collision.
func (a *IdentifierAllocator) Claim(id values.Identifier, location string) error {
	if prev, ok := a.known[id]; ok {
		return &entities.IdentifierCollisionError{
			Original: id,
			Location: fmt.Sprintf("%s (already used by %s)", location, prev),
		}
	}
	a.known[id] = location
	return nil
}

// AllocateDerived builds the default identifier of a derived entity:
// base + "_" + kind suffix.
func (a *IdentifierAllocator) AllocateDerived(base values.Identifier, kind values.EntityKind) values.Identifier {
	return base.WithSuffix(kind.Suffix())
}

// CheckAndDisambiguate returns candidate if it is free, otherwise candidate
// with index appended. It does not claim the result.
func (a *IdentifierAllocator) CheckAndDisambiguate(candidate values.Identifier, index int, location string) (values.Identifier, error) {
	if !a.Known(candidate) {
		return candidate, nil
	}
	return a.disambiguate(candidate, index, location)
}

// AllocateDerivedSet allocates and claims the identifiers of every derived
// entity of one widget. If any default identifier is taken, all of them get
// the widget index appended.
func (a *IdentifierAllocator) AllocateDerivedSet(base values.Identifier, kinds []values.EntityKind, index int, location string) ([]values.Identifier, error) {
	ids := make([]values.Identifier, len(kinds))
	collides := false
	for i, kind := range kinds {
		ids[i] = a.AllocateDerived(base, kind)
		if a.Known(ids[i]) {
			collides = true
		}
	}

	if collides {
		for i, id := range ids {
			renamed, err := a.disambiguate(id, index, location)
			if err != nil {
				return nil, err
			}
			ids[i] = renamed
		}
	}

	for _, id := range ids {
		if err := a.Claim(id, location); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// Diagnostics returns the disambiguation warnings issued so far.
func (a *IdentifierAllocator) Diagnostics() []entities.Diagnostic {
	out := make([]entities.Diagnostic, len(a.diagnostics))
	copy(out, a.diagnostics)
	return out
}

func (a *IdentifierAllocator) disambiguate(original values.Identifier, index int, location string) (values.Identifier, error) {
	renamed := original.WithIndex(index)
	if a.strict || a.Known(renamed) {
		return "", &entities.IdentifierCollisionError{
			Original:      original,
			Disambiguated: renamed,
			Location:      location,
		}
	}

	a.logger.Warn("identifier already in use, disambiguating",
		"original", original.String(),
		"disambiguated", renamed.String(),
		"location", location)
	a.diagnostics = append(a.diagnostics, entities.Diagnostic{
		Severity: entities.SeverityWarning,
		Code:     entities.CodeIdentifierDisambiguated,
		Message:  fmt.Sprintf("identifier %s already in use, renamed to %s", original, renamed),
		Location: location,
	})
	return renamed, nil
}
