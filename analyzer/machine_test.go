package analyzer

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/rand"

	arch "github.com/pattyshack/tilegen/architecture"
)

// machine executes emitted operations against a flat memory.
type machine struct {
	registers map[arch.RegisterName]uint8
	memory    map[uint16]uint8
}

// newMachine starts with random register content so that operations relying
// on unknown register values produce wrong output.
func newMachine(random *rand.Rand, stackPointer uint16) *machine {
	m := &machine{
		registers: map[arch.RegisterName]uint8{},
		memory:    map[uint16]uint8{},
	}
	for _, register := range arch.PrimitiveRegisters() {
		m.registers[register] = uint8(random.Intn(256))
	}
	m.set(arch.SP, stackPointer)
	return m
}

func (m *machine) get(register arch.RegisterName) uint16 {
	if register.IsPair() {
		return uint16(m.registers[register.High()])<<8 |
			uint16(m.registers[register.Low()])
	}
	return uint16(m.registers[register])
}

func (m *machine) set(register arch.RegisterName, value uint16) {
	if register.IsPair() {
		m.registers[register.High()] = uint8(value >> 8)
		m.registers[register.Low()] = uint8(value)
		return
	}
	m.registers[register] = uint8(value)
}

func (m *machine) read(operand *arch.Operand) uint16 {
	switch operand.Kind {
	case arch.Direct:
		return m.get(operand.Register)
	case arch.Immediate8, arch.Immediate16:
		return operand.Value
	}
	panic(fmt.Sprintf("unsupported source: %s", operand))
}

func (m *machine) execute(op arch.Operation) {
	mask := func(register arch.RegisterName) uint16 {
		if register.IsPair() {
			return 0xffff
		}
		return 0xff
	}

	switch op.Kind {
	case arch.LoadOp:
		switch op.Destination.Kind {
		case arch.Direct:
			m.set(op.Destination.Register, m.read(op.Source))
		case arch.Indirect:
			m.memory[m.get(op.Destination.Register)] = uint8(m.read(op.Source))
		default:
			panic(fmt.Sprintf("unsupported operation: %s", op))
		}
	case arch.IncrementOp:
		register := op.Destination.Register
		m.set(register, (m.get(register)+1)&mask(register))
	case arch.DecrementOp:
		register := op.Destination.Register
		m.set(register, (m.get(register)-1)&mask(register))
	case arch.AddOp:
		register := op.Destination.Register
		m.set(register, (m.get(register)+m.read(op.Source))&mask(register))
	case arch.SubOp:
		m.set(arch.A, (m.get(arch.A)-m.read(op.Source))&0xff)
	case arch.OrOp:
		m.set(arch.A, m.get(arch.A)|m.read(op.Source))
	case arch.XorOp:
		m.set(arch.A, m.get(arch.A)^m.read(op.Source))
	case arch.AndOp:
		m.set(arch.A, m.get(arch.A)&m.read(op.Source))
	case arch.RotateLeftOp:
		m.set(arch.A, uint16(bits.RotateLeft8(uint8(m.get(arch.A)), 1)))
	case arch.RotateRightOp:
		m.set(arch.A, uint16(bits.RotateLeft8(uint8(m.get(arch.A)), -1)))
	case arch.ComplementOp:
		m.set(arch.A, m.get(arch.A)^0xff)
	case arch.PushOp:
		value := m.get(op.Destination.Register)
		sp := m.get(arch.SP)
		m.memory[sp-1] = uint8(value >> 8)
		m.memory[sp-2] = uint8(value)
		m.set(arch.SP, sp-2)
	default:
		panic(fmt.Sprintf("unsupported operation: %s", op))
	}
}
