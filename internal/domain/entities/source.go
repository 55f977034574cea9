package entities

import (
	"fmt"

	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// SourceKind is the configuration type tag of a widget source.
type SourceKind string

const (
	SourceKindSensor       SourceKind = "sensor"
	SourceKindBinarySensor SourceKind = "binary_sensor"
	SourceKindDigitalTime  SourceKind = "digital-time"
	SourceKindAnalogTime   SourceKind = "analog-time"
)

// ParseSourceKind validates a configuration type tag.
func ParseSourceKind(tag string) (SourceKind, error) {
	switch k := SourceKind(tag); k {
	case SourceKindSensor, SourceKindBinarySensor, SourceKindDigitalTime, SourceKindAnalogTime:
		return k, nil
	default:
		return "", fmt.Errorf("unknown widget type %q (valid: sensor, binary_sensor, digital-time, analog-time)", tag)
	}
}

// Slug returns the kind in identifier-safe form.
func (k SourceKind) Slug() string {
	switch k {
	case SourceKindDigitalTime:
		return "digital_time"
	case SourceKindAnalogTime:
		return "analog_time"
	default:
		return string(k)
	}
}

// Source is the data a widget displays.
//
// The concrete variants are SensorSource, BinarySensorSource,
// DigitalTimeSource and AnalogTimeSource. Dispatch goes through
// SourceVisitor.
type Source interface {
	Accept(v SourceVisitor) error
	Kind() SourceKind
	Handle() values.Identifier
	isSource()
}

// SourceVisitor handles each Source variant.
type SourceVisitor interface {
	VisitSensor(s SensorSource) error
	VisitBinarySensor(s BinarySensorSource) error
	VisitDigitalTime(s DigitalTimeSource) error
	VisitAnalogTime(s AnalogTimeSource) error
}

// SensorSource shows a numeric sensor with its device-class icon.
type SensorSource struct {
	Sensor values.Identifier
}

// BinarySensorSource shows a binary sensor. It needs an alert sensor and a
// sticky switch synthesized alongside it.
type BinarySensorSource struct {
	BinarySensor values.Identifier
	OnGlyph      GlyphRef
	OffGlyph     GlyphRef
	// Sticky is the initial sticky switch state; nil leaves it unset.
	Sticky *bool
}

// DigitalTimeSource renders a time source with a strftime-style format.
type DigitalTimeSource struct {
	Time   values.Identifier
	Format string
}

// AnalogTimeSource renders a time source on the clock hands.
type AnalogTimeSource struct {
	Time values.Identifier
}

func (SensorSource) isSource()       {}
func (BinarySensorSource) isSource() {}
func (DigitalTimeSource) isSource()  {}
func (AnalogTimeSource) isSource()   {}

// Accept implements Source.
func (s SensorSource) Accept(v SourceVisitor) error { return v.VisitSensor(s) }

// Accept implements Source.
func (s BinarySensorSource) Accept(v SourceVisitor) error { return v.VisitBinarySensor(s) }

// Accept implements Source.
func (s DigitalTimeSource) Accept(v SourceVisitor) error { return v.VisitDigitalTime(s) }

// Accept implements Source.
func (s AnalogTimeSource) Accept(v SourceVisitor) error { return v.VisitAnalogTime(s) }

func (SensorSource) Kind() SourceKind       { return SourceKindSensor }
func (BinarySensorSource) Kind() SourceKind { return SourceKindBinarySensor }
func (DigitalTimeSource) Kind() SourceKind  { return SourceKindDigitalTime }
func (AnalogTimeSource) Kind() SourceKind   { return SourceKindAnalogTime }

func (s SensorSource) Handle() values.Identifier       { return s.Sensor }
func (s BinarySensorSource) Handle() values.Identifier { return s.BinarySensor }
func (s DigitalTimeSource) Handle() values.Identifier  { return s.Time }
func (s AnalogTimeSource) Handle() values.Identifier   { return s.Time }
