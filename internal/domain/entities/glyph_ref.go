package entities

import (
	"strings"

	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// WildcardMarker is the literal icon name that selects every icon used
// elsewhere in the same compilation.
const WildcardMarker = "*"

// GlyphRef is a visual icon reference attached to a group or a widget state.
//
// The concrete variants are EmptyGlyph, ImageGlyph, IconGlyph, IconListGlyph
// and WildcardGlyph. Consumers dispatch through GlyphVisitor, so adding a
// variant breaks every visitor until it is handled.
type GlyphRef interface {
	Accept(v GlyphVisitor) error
	String() string
	isGlyphRef()
}

// GlyphVisitor handles each GlyphRef variant.
type GlyphVisitor interface {
	VisitEmpty(g EmptyGlyph) error
	VisitImage(g ImageGlyph) error
	VisitIcon(g IconGlyph) error
	VisitIconList(g IconListGlyph) error
	VisitWildcard(g WildcardGlyph) error
}

// EmptyGlyph means no glyph is shown.
type EmptyGlyph struct{}

// ImageGlyph references an image entity declared elsewhere in the configuration.
type ImageGlyph struct {
	Handle values.Identifier
}

// IconGlyph references one catalog icon by name.
type IconGlyph struct {
	Name string
}

// IconListGlyph is an ordered sequence of catalog icons shown as a rotating glyph.
type IconListGlyph struct {
	Names []string
}

// WildcardGlyph expands to every icon selected elsewhere in the compilation.
type WildcardGlyph struct{}

func (EmptyGlyph) isGlyphRef()    {}
func (ImageGlyph) isGlyphRef()    {}
func (IconGlyph) isGlyphRef()     {}
func (IconListGlyph) isGlyphRef() {}
func (WildcardGlyph) isGlyphRef() {}

// Accept implements GlyphRef.
func (g EmptyGlyph) Accept(v GlyphVisitor) error { return v.VisitEmpty(g) }

// Accept implements GlyphRef.
func (g ImageGlyph) Accept(v GlyphVisitor) error { return v.VisitImage(g) }

// Accept implements GlyphRef.
func (g IconGlyph) Accept(v GlyphVisitor) error { return v.VisitIcon(g) }

// Accept implements GlyphRef.
func (g IconListGlyph) Accept(v GlyphVisitor) error { return v.VisitIconList(g) }

// Accept implements GlyphRef.
func (g WildcardGlyph) Accept(v GlyphVisitor) error { return v.VisitWildcard(g) }

func (EmptyGlyph) String() string      { return "empty" }
func (g ImageGlyph) String() string    { return "image:" + g.Handle.String() }
func (g IconGlyph) String() string     { return "icon:" + g.Name }
func (g IconListGlyph) String() string { return "icons:[" + strings.Join(g.Names, ",") + "]" }
func (WildcardGlyph) String() string   { return "icons:" + WildcardMarker }

// GlyphOrEmpty returns g, or EmptyGlyph when g is nil.
func GlyphOrEmpty(g GlyphRef) GlyphRef {
	if g == nil {
		return EmptyGlyph{}
	}
	return g
}

// NormalizeIconName strips the "mdi:" namespace prefix and surrounding whitespace.
func NormalizeIconName(name string) string {
	name = strings.TrimSpace(name)
	return strings.TrimPrefix(name, "mdi:")
}
