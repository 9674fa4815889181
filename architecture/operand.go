package architecture

import (
	"fmt"
)

type OperandKind string

const (
	Direct        = OperandKind("Direct")
	Indirect      = OperandKind("Indirect")
	Immediate8    = OperandKind("Immediate8")
	Immediate16   = OperandKind("Immediate16")
	Label         = OperandKind("Label")
	LabelIndirect = OperandKind("LabelIndirect")
)

type Operand struct {
	Kind OperandKind

	// Used by Direct and Indirect
	Register RegisterName

	// Used by Immediate8 and Immediate16
	Value uint16

	// Used by Label and LabelIndirect
	Label string
}

func NewDirectOperand(register RegisterName) *Operand {
	return &Operand{
		Kind:     Direct,
		Register: register,
	}
}

func NewIndirectOperand(register RegisterName) *Operand {
	if !register.IsPair() {
		panic("indirect operand requires a register pair: " + register.String())
	}
	return &Operand{
		Kind:     Indirect,
		Register: register,
	}
}

func NewImmediate8Operand(value uint8) *Operand {
	return &Operand{
		Kind:  Immediate8,
		Value: uint16(value),
	}
}

func NewImmediate16Operand(value uint16) *Operand {
	return &Operand{
		Kind:  Immediate16,
		Value: value,
	}
}

// NewImmediateOperand returns an immediate of the same width as register.
func NewImmediateOperand(register RegisterName, value uint16) *Operand {
	if register.IsPair() {
		return NewImmediate16Operand(value)
	}
	if value > 0xff {
		panic(fmt.Sprintf("%#x does not fit in %s", value, register))
	}
	return NewImmediate8Operand(uint8(value))
}

func NewLabelOperand(label string) *Operand {
	return &Operand{
		Kind:  Label,
		Label: label,
	}
}

func NewLabelIndirectOperand(label string) *Operand {
	return &Operand{
		Kind:  LabelIndirect,
		Label: label,
	}
}

// Size returns the operand's width in bytes.  Labels are addresses and
// therefore have no data width of their own.
func (operand *Operand) Size() int {
	switch operand.Kind {
	case Direct:
		return operand.Register.Size()
	case Indirect:
		return 1
	case Immediate8:
		return 1
	case Immediate16:
		return 2
	case Label, LabelIndirect:
		return 0
	default:
		panic("should never happen")
	}
}

func (operand *Operand) IsIndex() bool {
	switch operand.Kind {
	case Direct, Indirect:
		return operand.Register.IsIndex()
	default:
		return false
	}
}

func (operand *Operand) indexCost() int {
	if operand.IsIndex() {
		return 1
	}
	return 0
}

func (operand *Operand) String() string {
	switch operand.Kind {
	case Direct:
		return operand.Register.String()
	case Indirect:
		return "(" + operand.Register.String() + ")"
	case Immediate8:
		return fmt.Sprintf("0x%02x", operand.Value)
	case Immediate16:
		return fmt.Sprintf("0x%04x", operand.Value)
	case Label:
		return operand.Label
	case LabelIndirect:
		return "(" + operand.Label + ")"
	default:
		panic("should never happen")
	}
}
