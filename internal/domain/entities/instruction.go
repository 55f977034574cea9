package entities

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reglet-dev/glyphc/internal/domain/values"
)

// Op is what an instruction does to its target.
type Op string

const (
	// OpConstruct creates the target object
	OpConstruct Op = "construct"
	// OpWire sets one field of an already constructed object
	OpWire Op = "wire"
	// OpRegister hands the target entity to the host platform
	OpRegister Op = "register"
)

// Phase is the coarse position of an instruction in the emitted stream.
// Phases are strictly ordered; the sequencer never moves an instruction
// across phases.
type Phase int

const (
	PhaseFont Phase = iota
	PhaseController
	PhaseGroup
	PhaseWidget
	PhaseWiring
	PhaseRegistration
	PhaseDerivedRegistration
)

var phaseNames = [...]string{
	PhaseFont:                "font",
	PhaseController:          "controller",
	PhaseGroup:               "group",
	PhaseWidget:              "widget",
	PhaseWiring:              "wiring",
	PhaseRegistration:        "registration",
	PhaseDerivedRegistration: "derived-registration",
}

// String returns the phase name
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "phase(" + strconv.Itoa(int(p)) + ")"
	}
	return phaseNames[p]
}

// Key names a fact an instruction establishes, e.g. "object X is constructed".
type Key string

// ConstructedKey is provided by the construct instruction of id.
func ConstructedKey(id values.Identifier) Key {
	return Key("constructed:" + id.String())
}

// RegisteredKey is provided by the register instruction of id.
func RegisteredKey(id values.Identifier) Key {
	return Key("registered:" + id.String())
}

// Argument is a named constructor argument.
type Argument struct {
	Name  string
	Value Operand
}

// Instruction is one unit of object construction, wiring or registration.
// Instructions are immutable once handed to the sequencer.
type Instruction struct {
	// Seq is the declaration order assigned by the assembler.
	Seq    int
	Phase  Phase
	Op     Op
	Target values.Identifier

	// Type is the runtime class constructed (OpConstruct only).
	Type string
	// Args are constructor arguments (OpConstruct only).
	Args []Argument

	// Field and Value describe the assignment (OpWire only).
	Field string
	Value Operand

	// Entity is the host configuration (OpRegister only).
	Entity *EntityConfig

	// After lists extra keys that must be established before this instruction.
	After []Key
}

// Provides returns the key this instruction establishes, or "" for wiring.
func (i Instruction) Provides() Key {
	switch i.Op {
	case OpConstruct:
		return ConstructedKey(i.Target)
	case OpRegister:
		return RegisteredKey(i.Target)
	default:
		return ""
	}
}

// Requires returns every key that must be established first: the target's
// construction (for wiring and registration), objects referenced by operands
// and the explicit After keys.
func (i Instruction) Requires() []Key {
	var keys []Key
	if i.Op != OpConstruct {
		keys = append(keys, ConstructedKey(i.Target))
	}
	for _, a := range i.Args {
		keys = appendRefKeys(keys, a.Value)
	}
	keys = appendRefKeys(keys, i.Value)
	keys = append(keys, i.After...)
	return keys
}

func appendRefKeys(keys []Key, op Operand) []Key {
	if ref, ok := op.(RefOperand); ok && !ref.External {
		keys = append(keys, ConstructedKey(ref.ID))
	}
	return keys
}

// String renders the instruction as one deterministic line.
func (i Instruction) String() string {
	var b strings.Builder
	b.WriteString(string(i.Op))
	b.WriteByte(' ')
	b.WriteString(i.Target.String())
	switch i.Op {
	case OpConstruct:
		b.WriteString(" = ")
		b.WriteString(i.Type)
		b.WriteByte('(')
		for n, a := range i.Args {
			if n > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.Name)
			b.WriteByte('=')
			b.WriteString(a.Value.String())
		}
		b.WriteByte(')')
	case OpWire:
		b.WriteByte('.')
		b.WriteString(i.Field)
		b.WriteString(" = ")
		b.WriteString(i.Value.String())
	case OpRegister:
		if i.Entity != nil {
			b.WriteByte(' ')
			b.WriteString(i.Entity.String())
		}
	}
	return b.String()
}

// Operand is a typed instruction value.
type Operand interface {
	String() string
	isOperand()
}

// StringOperand is a string literal.
type StringOperand string

// IntOperand is an integer literal.
type IntOperand int

// BoolOperand is a boolean literal.
type BoolOperand bool

// RefOperand references another object. External references point at host
// entities the compiler does not construct.
type RefOperand struct {
	ID       values.Identifier
	External bool
}

// CodepointsOperand is an ordered list of glyph codepoints.
type CodepointsOperand []rune

func (StringOperand) isOperand()     {}
func (IntOperand) isOperand()        {}
func (BoolOperand) isOperand()       {}
func (RefOperand) isOperand()        {}
func (CodepointsOperand) isOperand() {}

func (s StringOperand) String() string { return strconv.Quote(string(s)) }
func (n IntOperand) String() string    { return strconv.Itoa(int(n)) }
func (b BoolOperand) String() string   { return strconv.FormatBool(bool(b)) }

func (r RefOperand) String() string {
	if r.External {
		return "&" + r.ID.String()
	}
	return "*" + r.ID.String()
}

func (c CodepointsOperand) String() string {
	parts := make([]string, len(c))
	for n, r := range c {
		parts[n] = FormatCodepoint(r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatCodepoint renders r as U+XXXX.
func FormatCodepoint(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}
