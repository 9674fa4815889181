package platform

import (
	"fmt"

	arch "github.com/pattyshack/tilegen/architecture"
)

// Assumptions (probably needs visiting):
//
// 1. Word values are written through the stack pointer (push), so the stack
// pointer is never available as a data register while a tile is drawn.
//
// 2. The cursor register is clobbered whenever bytes are written, hence it
// never holds allocated constants.
//
// 3. Index registers are slower and larger to use than general registers.
// They are only used as a last tier when the general registers are exhausted.
type ArchitectureRegisters struct {
	StackPointer arch.RegisterName

	// Holds the screen address while individual bytes are written.
	Cursor arch.RegisterName

	// The only register which supports arithmetic/logic operations.
	Accumulator arch.RegisterName

	// Word registers usable for constant allocation, in preference order.
	General []arch.RegisterName

	// The dedicated register for values which are globally worth keeping.
	Auxiliary arch.RegisterName

	// Index-class word registers usable as the last allocation tier.
	Index []arch.RegisterName
}

func NewArchitectureRegisters(
	stackPointer arch.RegisterName,
	cursor arch.RegisterName,
	accumulator arch.RegisterName,
	auxiliary arch.RegisterName,
	general []arch.RegisterName,
	index []arch.RegisterName,
) *ArchitectureRegisters {
	set := &ArchitectureRegisters{
		StackPointer: stackPointer,
		Cursor:       cursor,
		Accumulator:  accumulator,
		Auxiliary:    auxiliary,
		General:      general,
		Index:        index,
	}

	if !stackPointer.IsPair() || !cursor.IsPair() || !auxiliary.IsPair() {
		panic("stack pointer, cursor and auxiliary registers must be pairs")
	}

	if accumulator.IsPair() {
		panic("accumulator must be an 8-bit register")
	}

	if len(general) == 0 {
		panic("no general register specified")
	}

	names := map[arch.RegisterName]struct{}{}
	add := func(register arch.RegisterName) {
		_, ok := names[register.Pair()]
		if ok {
			panic("added duplicate register: " + register.String())
		}
		names[register.Pair()] = struct{}{}
	}

	add(stackPointer)
	add(cursor)
	add(accumulator)
	add(auxiliary)
	for _, register := range general {
		if !register.IsPair() || register.IsIndex() {
			panic("general register must be a non-index pair: " + register.String())
		}
		add(register)
	}
	for _, register := range index {
		if !register.IsIndex() {
			panic(fmt.Sprintf("%s is not an index register", register))
		}
		add(register)
	}

	return set
}

// ByteRegisters returns the halves of the general registers, high half
// first.
func (set *ArchitectureRegisters) ByteRegisters() []arch.RegisterName {
	result := []arch.RegisterName{}
	for _, register := range set.General {
		result = append(result, register.Halves()...)
	}
	return result
}
