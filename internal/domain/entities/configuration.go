// Package entities contains domain entities for the glyph compiler.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// Default identifiers and sizes applied when the configuration omits them.
const (
	DefaultControllerID = "oclock"
	DefaultFontID       = "glyph_font"
	DefaultFontSize     = 20
	DefaultTimeFormat   = "%H:%M"
)

// Configuration is one configuration submission, already shape-checked.
// This is the aggregate root of a compilation.
//
// Invariants Enforced (by the loader before compilation starts):
// - group IDs are unique
// - every widget handle references a declared sensor, binary sensor or time source
// - every image glyph references a declared image
type Configuration struct {
	Version            string
	MinCompilerVersion string
	Controller         Controller
	Font               FontSpec
	Sensors            []SensorDecl
	BinarySensors      []SensorDecl
	Times              []HandleDecl
	Images             []HandleDecl
	Groups             []Group

	// Raw holds the submitted bytes; the compilation ID is derived from it.
	Raw []byte
}

// Controller describes the clock controller object every widget hangs off.
type Controller struct {
	ID          values.Identifier
	TimeID      values.Identifier
	ResetSwitch bool
}

// FontSpec describes the icon font built from the selection set.
type FontSpec struct {
	ID   values.Identifier
	Size int
	// File optionally points at an icon font used to verify glyph coverage.
	File string
}

// SensorDecl is a sensor already known to the host platform.
type SensorDecl struct {
	ID          values.Identifier
	Name        string
	DeviceClass values.DeviceClass
}

// HandleDecl is any other host entity a widget or glyph may reference.
type HandleDecl struct {
	ID values.Identifier
}

// Group is a named set of widgets sharing a glyph.
// Widget order is display and compile order.
type Group struct {
	ID      values.Identifier
	Visible bool
	Glyph   GlyphRef
	Widgets []Widget
}

// Widget is one visual element of a group.
type Widget struct {
	// ID is allocated by the compiler when the configuration leaves it empty.
	ID     values.Identifier
	Source Source
}

// DeclaredSensors returns sensors and binary sensors in declaration order.
func (c *Configuration) DeclaredSensors() []SensorDecl {
	out := make([]SensorDecl, 0, len(c.Sensors)+len(c.BinarySensors))
	out = append(out, c.Sensors...)
	out = append(out, c.BinarySensors...)
	return out
}

// FindSensor looks a declared sensor or binary sensor up by handle identity.
func (c *Configuration) FindSensor(id values.Identifier) (SensorDecl, bool) {
	for _, s := range c.DeclaredSensors() {
		if s.ID == id {
			return s, true
		}
	}
	return SensorDecl{}, false
}

// DeclaredHandles returns every host handle the configuration declares.
func (c *Configuration) DeclaredHandles() []values.Identifier {
	var ids []values.Identifier
	for _, s := range c.DeclaredSensors() {
		ids = append(ids, s.ID)
	}
	for _, h := range c.Times {
		ids = append(ids, h.ID)
	}
	for _, h := range c.Images {
		ids = append(ids, h.ID)
	}
	return ids
}
