package services

import (
	"github.com/reglet-dev/glyphc/internal/domain/entities"
	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// Runtime classes constructed by the emitted stream.
const (
	TypeGlyphFont          = "oclock::GlyphFont"
	TypeController         = "oclock::OClockController"
	TypeGroup              = "oclock::Group"
	TypeSensorWidget       = "oclock::SensorWidget"
	TypeBinarySensorWidget = "oclock::BinarySensorWidget"
	TypeDigitalTimeWidget  = "oclock::DigitalTimeWidget"
	TypeAnalogTimeWidget   = "oclock::AnalogTimeWidget"
	TypeAlertSensor        = "oclock::AlertSensor"
	TypeStickySwitch       = "oclock::StickySwitch"
	TypeResetSwitch        = "oclock::ResetSwitch"
)

// InstructionList accumulates instructions in declaration order. It is owned
// by one assembly pass.
type InstructionList struct {
	items []entities.Instruction
}

// Construct appends a construction instruction.
func (l *InstructionList) Construct(phase entities.Phase, target values.Identifier, typ string, args ...entities.Argument) {
	l.add(entities.Instruction{Phase: phase, Op: entities.OpConstruct, Target: target, Type: typ, Args: args})
}

// Wire appends a field assignment. Nil values are skipped.
func (l *InstructionList) Wire(target values.Identifier, field string, value entities.Operand) {
	if value == nil {
		return
	}
	l.add(entities.Instruction{Phase: entities.PhaseWiring, Op: entities.OpWire, Target: target, Field: field, Value: value})
}

// Register appends a host registration.
func (l *InstructionList) Register(phase entities.Phase, cfg *entities.EntityConfig, after ...entities.Key) {
	l.add(entities.Instruction{Phase: phase, Op: entities.OpRegister, Target: cfg.ID, Entity: cfg, After: after})
}

// Len returns the number of instructions.
func (l *InstructionList) Len() int {
	return len(l.items)
}

// Take hands the instructions off; the list is empty afterwards.
func (l *InstructionList) Take() []entities.Instruction {
	out := l.items
	l.items = nil
	return out
}

func (l *InstructionList) add(in entities.Instruction) {
	in.Seq = len(l.items)
	l.items = append(l.items, in)
}

// arg builds a constructor argument.
func arg(name string, value entities.Operand) entities.Argument {
	return entities.Argument{Name: name, Value: value}
}

// ref references an object constructed by the stream.
func ref(id values.Identifier) entities.RefOperand {
	return entities.RefOperand{ID: id}
}

// hostRef references an entity the host already knows.
func hostRef(id values.Identifier) entities.RefOperand {
	return entities.RefOperand{ID: id, External: true}
}
