package allocator

import (
	"fmt"
	"math/bits"

	arch "github.com/pattyshack/tilegen/architecture"
)

// RegisterFile tracks the believed content of every 8-bit register.  A
// register missing from the file has unknown content.  Pair values are
// derived from their halves.
type RegisterFile struct {
	values map[arch.RegisterName]uint8
}

func NewRegisterFile() *RegisterFile {
	return &RegisterFile{
		values: map[arch.RegisterName]uint8{},
	}
}

func (file *RegisterFile) Clone() *RegisterFile {
	values := make(map[arch.RegisterName]uint8, len(file.values))
	for register, value := range file.values {
		values[register] = value
	}
	return &RegisterFile{
		values: values,
	}
}

// Value returns the register's content.  A pair's value is only known when
// both halves are known.
func (file *RegisterFile) Value(register arch.RegisterName) (uint16, bool) {
	if !register.IsPair() {
		value, ok := file.values[register]
		return uint16(value), ok
	}

	high, ok := file.values[register.High()]
	if !ok {
		return 0, false
	}

	low, ok := file.values[register.Low()]
	if !ok {
		return 0, false
	}

	return uint16(high)<<8 | uint16(low), true
}

func (file *RegisterFile) SetValue(register arch.RegisterName, value uint16) {
	if !register.IsPair() {
		if value > 0xff {
			panic(fmt.Sprintf("%#x does not fit in %s", value, register))
		}
		file.values[register] = uint8(value)
		return
	}

	file.values[register.High()] = uint8(value >> 8)
	file.values[register.Low()] = uint8(value)
}

// Forget marks the register's content as unknown.
func (file *RegisterFile) Forget(register arch.RegisterName) {
	for _, half := range register.Halves() {
		delete(file.values, half)
	}
}

func (file *RegisterFile) Reset() {
	file.values = map[arch.RegisterName]uint8{}
}

// The 8-bit registers searched for an existing copy of a value, in order.
func byteSearchOrder() []arch.RegisterName {
	return []arch.RegisterName{
		arch.A,
		arch.B, arch.C, arch.D, arch.E, arch.H, arch.L,
		arch.IXh, arch.IXl, arch.IYh, arch.IYl,
	}
}

// The 16-bit registers searched for an existing copy of a value, in order.
func wordSearchOrder() []arch.RegisterName {
	return []arch.RegisterName{arch.BC, arch.DE, arch.HL, arch.IX, arch.IY}
}

// Find returns the first register of the given width (in bytes) which holds
// value.
func (file *RegisterFile) Find(value uint16, byteSize int) (
	arch.RegisterName,
	bool,
) {
	order := byteSearchOrder()
	if byteSize == 2 {
		order = wordSearchOrder()
	} else if byteSize != 1 {
		panic(fmt.Sprintf("invalid register width: %d", byteSize))
	}

	for _, register := range order {
		content, ok := file.Value(register)
		if ok && content == value {
			return register, true
		}
	}

	return 0, false
}

func accumulate(kind arch.OperationKind, a uint8, b uint8) uint8 {
	switch kind {
	case arch.AddOp:
		return a + b
	case arch.SubOp:
		return a - b
	case arch.OrOp:
		return a | b
	case arch.XorOp:
		return a ^ b
	case arch.AndOp:
		return a & b
	default:
		panic("should never happen")
	}
}

// The registers usable as accumulator operation sources, in order.
func accumulatorSources() []arch.RegisterName {
	return []arch.RegisterName{arch.B, arch.C, arch.D, arch.E, arch.H, arch.L}
}

// Load returns the cheapest operation which sets register to target, and
// updates the file to reflect the operation.  The returned operation is a
// no-op when the register already holds target.
func (file *RegisterFile) Load(register arch.RegisterName, target uint16) arch.Operation {
	op := file.selectLoad(register, target)
	file.SetValue(register, target)
	return op
}

func (file *RegisterFile) selectLoad(
	register arch.RegisterName,
	target uint16,
) arch.Operation {
	mask := uint16(0xff)
	if register.IsPair() {
		mask = 0xffff
	}

	if target&mask != target {
		panic(fmt.Sprintf("%#x does not fit in %s", target, register))
	}

	previous, known := file.Value(register)
	if known && previous == target {
		return arch.NewNoOp()
	}

	if register.IsPair() {
		high := register.High()
		low := register.Low()
		highValue, highKnown := file.Value(high)
		lowValue, lowKnown := file.Value(low)
		highMatches := highKnown && highValue == target>>8
		lowMatches := lowKnown && lowValue == target&0xff

		if highMatches && !lowMatches {
			return file.Load(low, target&0xff)
		}
		if lowMatches && !highMatches {
			return file.Load(high, target>>8)
		}
	}

	if known {
		if (previous+1)&mask == target {
			return arch.NewIncrementOp(register)
		}
		if (previous-1)&mask == target {
			return arch.NewDecrementOp(register)
		}
	}

	if register == arch.A {
		op, ok := file.selectAccumulatorOp(uint8(target))
		if ok {
			return op
		}
	}

	if !register.IsPair() {
		for _, source := range byteSearchOrder() {
			if source == register || source.IsIndex() {
				continue
			}

			if register.IsIndex() && source.Pair() == arch.HL {
				continue
			}

			content, ok := file.Value(source)
			if ok && content == target {
				return arch.NewCopyRegisterOp(register, source)
			}
		}
	}

	return arch.NewLoadImmediateOp(register, target)
}

func (file *RegisterFile) selectAccumulatorOp(target uint8) (
	arch.Operation,
	bool,
) {
	value, known := file.Value(arch.A)
	previous := uint8(value)

	if known {
		if bits.RotateLeft8(previous, -1) == target {
			return arch.NewRotateRightOp(), true
		}
		if bits.RotateLeft8(previous, 1) == target {
			return arch.NewRotateLeftOp(), true
		}
		if previous^0xff == target {
			return arch.NewComplementOp(), true
		}
	}

	if target == 0 {
		return arch.NewAccumulatorOp(arch.XorOp, arch.A), true
	}

	if !known {
		return arch.Operation{}, false
	}

	for _, kind := range arch.AccumulatorOps() {
		for _, source := range accumulatorSources() {
			content, ok := file.Value(source)
			if !ok {
				continue
			}

			if accumulate(kind, previous, uint8(content)) == target {
				return arch.NewAccumulatorOp(kind, source), true
			}
		}
	}

	return arch.Operation{}, false
}

func (file *RegisterFile) String() string {
	result := ""
	for _, register := range arch.PrimitiveRegisters() {
		value, ok := file.values[register]
		if !ok {
			continue
		}
		if result != "" {
			result += " "
		}
		result += fmt.Sprintf("%s=%02x", register, value)
	}
	return "{" + result + "}"
}
