package architecture

import (
	"fmt"
	"strings"
)

type OperationKind string

const (
	LoadOp        = OperationKind("ld")
	IncrementOp   = OperationKind("inc")
	DecrementOp   = OperationKind("dec")
	RotateLeftOp  = OperationKind("rlca")
	RotateRightOp = OperationKind("rrca")
	ComplementOp  = OperationKind("cpl")
	AddOp         = OperationKind("add")
	SubOp         = OperationKind("sub")
	OrOp          = OperationKind("or")
	XorOp         = OperationKind("xor")
	AndOp         = OperationKind("and")
	PushOp        = OperationKind("push")
	JumpOp        = OperationKind("jp")
	ReturnOp      = OperationKind("ret")

	// The following are assembler directives / formatting.  They never emit
	// machine code.

	LabelOp     = OperationKind("label")
	AlignOp     = OperationKind("ds align")
	NoOp        = OperationKind("none")
	BlankLineOp = OperationKind("blank line")
)

// The accumulator ops, in the order the register file tries them.
func AccumulatorOps() []OperationKind {
	return []OperationKind{AddOp, SubOp, OrOp, XorOp, AndOp}
}

type Operation struct {
	Kind OperationKind

	// Used by LD, INC, DEC, ADD, SUB, OR, XOR, AND, PUSH, JP, LABEL and
	// DS ALIGN.  SUB, OR, XOR and AND always have A as the destination.
	Destination *Operand

	// Used by LD, ADD, SUB, OR, XOR, AND
	Source *Operand
}

func NewLoadOp(dest *Operand, src *Operand) Operation {
	return Operation{
		Kind:        LoadOp,
		Destination: dest,
		Source:      src,
	}
}

func NewCopyRegisterOp(dest RegisterName, src RegisterName) Operation {
	if dest.Size() != src.Size() {
		panic(fmt.Sprintf("mismatched register copy: %s <- %s", dest, src))
	}
	return NewLoadOp(NewDirectOperand(dest), NewDirectOperand(src))
}

func NewLoadImmediateOp(dest RegisterName, value uint16) Operation {
	return NewLoadOp(NewDirectOperand(dest), NewImmediateOperand(dest, value))
}

func NewIncrementOp(register RegisterName) Operation {
	return Operation{
		Kind:        IncrementOp,
		Destination: NewDirectOperand(register),
	}
}

func NewDecrementOp(register RegisterName) Operation {
	return Operation{
		Kind:        DecrementOp,
		Destination: NewDirectOperand(register),
	}
}

func NewRotateLeftOp() Operation {
	return Operation{Kind: RotateLeftOp}
}

func NewRotateRightOp() Operation {
	return Operation{Kind: RotateRightOp}
}

func NewComplementOp() Operation {
	return Operation{Kind: ComplementOp}
}

func NewAddOp(dest RegisterName, src RegisterName) Operation {
	return Operation{
		Kind:        AddOp,
		Destination: NewDirectOperand(dest),
		Source:      NewDirectOperand(src),
	}
}

// NewAccumulatorOp returns one of ADD, SUB, OR, XOR or AND with A as the
// destination.
func NewAccumulatorOp(kind OperationKind, src RegisterName) Operation {
	switch kind {
	case AddOp, SubOp, OrOp, XorOp, AndOp:
	default:
		panic("not an accumulator operation: " + string(kind))
	}

	if src.Size() != 1 {
		panic("accumulator operation requires 8-bit source: " + src.String())
	}

	return Operation{
		Kind:        kind,
		Destination: NewDirectOperand(A),
		Source:      NewDirectOperand(src),
	}
}

func NewPushOp(register RegisterName) Operation {
	if !register.IsPair() {
		panic("push requires a register pair: " + register.String())
	}
	return Operation{
		Kind:        PushOp,
		Destination: NewDirectOperand(register),
	}
}

func NewJumpOp(label string) Operation {
	return Operation{
		Kind:        JumpOp,
		Destination: NewLabelOperand(label),
	}
}

func NewReturnOp() Operation {
	return Operation{Kind: ReturnOp}
}

func NewLabelOp(name string) Operation {
	return Operation{
		Kind:        LabelOp,
		Destination: NewLabelOperand(name),
	}
}

func NewAlignOp(alignment uint16) Operation {
	return Operation{
		Kind:        AlignOp,
		Destination: NewImmediate16Operand(alignment),
	}
}

func NewNoOp() Operation {
	return Operation{Kind: NoOp}
}

func NewBlankLineOp() Operation {
	return Operation{Kind: BlankLineOp}
}

// Cost returns the operation's size in bytes, which is also a reasonable
// proxy for its execution time on the target.
func (op Operation) Cost() int {
	switch op.Kind {
	case LoadOp:
		return op.loadCost()
	case IncrementOp, DecrementOp:
		return op.Destination.Size() + op.Destination.indexCost()
	case PushOp:
		return 3 + op.Destination.indexCost()
	case AddOp:
		return op.Destination.Size()
	case SubOp, OrOp, XorOp, AndOp, RotateLeftOp, RotateRightOp, ComplementOp:
		return 1
	case JumpOp, ReturnOp:
		return 3
	case LabelOp, AlignOp, NoOp, BlankLineOp:
		return 0
	}

	panic(fmt.Sprintf("operation has no defined cost: %s", op))
}

func (op Operation) loadCost() int {
	dest := op.Destination
	src := op.Source

	switch dest.Kind {
	case Direct:
		switch src.Kind {
		case Direct:
			if dest.IsIndex() || src.IsIndex() {
				return 2
			}
			return 1
		case Immediate8, Immediate16:
			return 1 + dest.Size() + dest.indexCost()
		}
	case Indirect:
		switch src.Kind {
		case Immediate8:
			return 3 + dest.indexCost()
		case Direct:
			return 2 + dest.indexCost()
		}
	case LabelIndirect:
		if src.Kind == Direct {
			return 3 + src.Size() + src.indexCost()
		}
	}

	panic(fmt.Sprintf("operation has no defined cost: %s", op))
}

// TotalCost returns the summed cost of a sequence of operations.
func TotalCost(ops []Operation) int {
	total := 0
	for _, op := range ops {
		total += op.Cost()
	}
	return total
}

func (op Operation) String() string {
	switch op.Kind {
	case LabelOp:
		return op.Destination.Label + ":"
	case AlignOp:
		return fmt.Sprintf("ds align %d", op.Destination.Value)
	case NoOp, BlankLineOp:
		return ""
	case SubOp, OrOp, XorOp, AndOp:
		return string(op.Kind) + " " + op.Source.String()
	}

	operands := []string{}
	if op.Destination != nil {
		operands = append(operands, op.Destination.String())
	}
	if op.Source != nil {
		operands = append(operands, op.Source.String())
	}

	if len(operands) == 0 {
		return string(op.Kind)
	}
	return string(op.Kind) + " " + strings.Join(operands, ", ")
}
