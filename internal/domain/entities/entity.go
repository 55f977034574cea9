package entities

import (
	"strconv"
	"strings"

	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// EntityConfig is what the host registration collaborator receives.
type EntityConfig struct {
	ID                values.Identifier
	Name              string
	Kind              values.EntityKind
	DeviceClass       values.DeviceClass
	DisabledByDefault bool
	// InitialState is published with the registration when set.
	InitialState *bool
	// Parent is the object the entity belongs to (widget or controller).
	Parent values.Identifier
}

// String renders the entity configuration as deterministic key=value pairs.
func (e EntityConfig) String() string {
	parts := []string{
		"kind=" + string(e.Kind),
		"name=" + strconv.Quote(e.Name),
		"disabled_by_default=" + strconv.FormatBool(e.DisabledByDefault),
	}
	if !e.DeviceClass.IsEmpty() {
		parts = append(parts, "device_class="+e.DeviceClass.String())
	}
	if e.InitialState != nil {
		parts = append(parts, "initial_state="+strconv.FormatBool(*e.InitialState))
	}
	if !e.Parent.IsEmpty() {
		parts = append(parts, "parent="+e.Parent.String())
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// DerivedEntity is an auxiliary entity synthesized from a primary widget or
// from the controller.
type DerivedEntity struct {
	ID          values.Identifier
	BaseName    values.Identifier
	Kind        values.EntityKind
	DeviceClass values.DeviceClass
	// Enabled controls whether the host shows the entity by default.
	Enabled      bool
	InitialState *bool
	Parent       values.Identifier
}

// Config converts the derived entity into its host registration payload.
func (d DerivedEntity) Config() *EntityConfig {
	return &EntityConfig{
		ID:                d.ID,
		Name:              d.ID.String(),
		Kind:              d.Kind,
		DeviceClass:       d.DeviceClass,
		DisabledByDefault: !d.Enabled,
		InitialState:      d.InitialState,
		Parent:            d.Parent,
	}
}

// RegisteredHandle is what the host hands back for a registered entity.
type RegisteredHandle struct {
	ID    values.Identifier `json:"id" yaml:"id"`
	Kind  values.EntityKind `json:"kind" yaml:"kind"`
	Order int               `json:"order" yaml:"order"`
}

// Glyph is one icon baked into a font.
type Glyph struct {
	Name      string
	Codepoint rune
}

// FontHandle is the font asset built for a compilation.
type FontHandle struct {
	ID     values.Identifier
	Size   int
	Glyphs []Glyph
	// Source names the font file the glyphs were checked against, if any.
	Source string
}

// Codepoints returns the glyph codepoints in font order.
func (f *FontHandle) Codepoints() []rune {
	out := make([]rune, len(f.Glyphs))
	for i, g := range f.Glyphs {
		out[i] = g.Codepoint
	}
	return out
}
