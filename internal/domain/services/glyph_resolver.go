// Package services contains domain services that encapsulate the compile
// logic spanning multiple entities: glyph resolution, identifier allocation,
// derived entity synthesis, object graph assembly and instruction ordering.
package services

import (
	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// GlyphKind is the shape of a resolved glyph.
type GlyphKind int

const (
	GlyphKindEmpty GlyphKind = iota
	GlyphKindImage
	GlyphKindIcons
)

// ResolvedGlyph is a GlyphRef after catalog resolution.
type ResolvedGlyph struct {
	Kind       GlyphKind
	Image      values.Identifier
	Names      []string
	Codepoints []rune
}

// Operand converts the glyph into the value wired into the runtime object.
// Empty glyphs return nil and are not wired.
func (g ResolvedGlyph) Operand() entities.Operand {
	switch g.Kind {
	case GlyphKindImage:
		return entities.RefOperand{ID: g.Image, External: true}
	case GlyphKindIcons:
		return entities.CodepointsOperand(g.Codepoints)
	default:
		return nil
	}
}

// GlyphResolver validates icon references against the catalog and records
// every resolved icon in the compilation's selection set.
type GlyphResolver struct {
	catalog   *entities.Catalog
	selection *entities.SelectionSet
}

// NewGlyphResolver creates a resolver bound to one compilation's selection set.
func NewGlyphResolver(catalog *entities.Catalog, selection *entities.SelectionSet) *GlyphResolver {
	return &GlyphResolver{catalog: catalog, selection: selection}
}

// IsDeferred reports whether ref must wait until all concrete references of
// the pass have been resolved.
func IsDeferred(ref entities.GlyphRef) bool {
	switch g := entities.GlyphOrEmpty(ref).(type) {
	case entities.WildcardGlyph:
		return true
	case entities.IconGlyph:
		return entities.NormalizeIconName(g.Name) == entities.WildcardMarker
	default:
		return false
	}
}

// Resolve resolves ref. Empty and image glyphs pass through; icon names must
// exist in the catalog. A wildcard expands to the icons selected so far, so
// callers resolve wildcards only after every concrete reference.
// location names the configuration fragment in errors.
func (r *GlyphResolver) Resolve(ref entities.GlyphRef, location string) (ResolvedGlyph, error) {
	v := &glyphResolution{resolver: r, location: location}
	if err := entities.GlyphOrEmpty(ref).Accept(v); err != nil {
		return ResolvedGlyph{}, err
	}
	return v.result, nil
}

// Codepoints looks up the codepoints of names, skipping names the catalog
// does not know. The font build reports those.
func (r *GlyphResolver) Codepoints(names []string) []rune {
	out := make([]rune, 0, len(names))
	for _, name := range names {
		if cp, ok := r.catalog.Codepoint(name); ok {
			out = append(out, cp)
		}
	}
	return out
}

// glyphResolution resolves one GlyphRef.
type glyphResolution struct {
	resolver *GlyphResolver
	location string
	result   ResolvedGlyph
}

func (v *glyphResolution) VisitEmpty(entities.EmptyGlyph) error {
	v.result = ResolvedGlyph{Kind: GlyphKindEmpty}
	return nil
}

func (v *glyphResolution) VisitImage(g entities.ImageGlyph) error {
	v.result = ResolvedGlyph{Kind: GlyphKindImage, Image: g.Handle}
	return nil
}

func (v *glyphResolution) VisitIcon(g entities.IconGlyph) error {
	name := entities.NormalizeIconName(g.Name)
	if name == entities.WildcardMarker {
		return v.VisitWildcard(entities.WildcardGlyph{})
	}
	cp, err := v.lookup(name)
	if err != nil {
		return err
	}
	v.resolver.selection.Add(name)
	v.result = ResolvedGlyph{Kind: GlyphKindIcons, Names: []string{name}, Codepoints: []rune{cp}}
	return nil
}

func (v *glyphResolution) VisitIconList(g entities.IconListGlyph) error {
	names := make([]string, 0, len(g.Names))
	cps := make([]rune, 0, len(g.Names))
	for _, raw := range g.Names {
		name := entities.NormalizeIconName(raw)
		cp, err := v.lookup(name)
		if err != nil {
			return err
		}
		names = append(names, name)
		cps = append(cps, cp)
	}
	// Only a fully valid list reaches the selection set.
	for _, name := range names {
		v.resolver.selection.Add(name)
	}
	v.result = ResolvedGlyph{Kind: GlyphKindIcons, Names: names, Codepoints: cps}
	return nil
}

func (v *glyphResolution) VisitWildcard(entities.WildcardGlyph) error {
	names := v.resolver.selection.Sorted()
	v.result = ResolvedGlyph{
		Kind:       GlyphKindIcons,
		Names:      names,
		Codepoints: v.resolver.Codepoints(names),
	}
	return nil
}

func (v *glyphResolution) lookup(name string) (rune, error) {
	cp, ok := v.resolver.catalog.Codepoint(name)
	if !ok {
		return 0, &entities.UnknownIconError{Name: name, Location: v.location}
	}
	return cp, nil
}
