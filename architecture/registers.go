package architecture

import (
	"fmt"
)

// RegisterName identifies a Z80 register.  Pairs are listed before the 8-bit
// primitive registers.
type RegisterName int

const (
	AF RegisterName = iota
	BC
	DE
	HL
	IX
	IY
	SP

	A
	F
	B
	C
	D
	E
	H
	L
	IXh
	IXl
	IYh
	IYl
	SPh
	SPl

	numRegisterNames
)

// Assumptions:
//
// 1. A pair's value is always (high << 8) | low.  The register file only
// tracks primitive (8-bit) registers; pair values are derived.
//
// 2. SP's halves are never addressable by instructions, but they are tracked
// so that the stack pointer can be modelled like any other pair.
type registerInfo struct {
	name    string
	size    int
	pair    RegisterName
	high    RegisterName
	low     RegisterName
	isIndex bool
}

var registerTable = [numRegisterNames]registerInfo{
	AF: {name: "af", size: 2, pair: AF, high: A, low: F},
	BC: {name: "bc", size: 2, pair: BC, high: B, low: C},
	DE: {name: "de", size: 2, pair: DE, high: D, low: E},
	HL: {name: "hl", size: 2, pair: HL, high: H, low: L},
	IX: {name: "ix", size: 2, pair: IX, high: IXh, low: IXl, isIndex: true},
	IY: {name: "iy", size: 2, pair: IY, high: IYh, low: IYl, isIndex: true},
	SP: {name: "sp", size: 2, pair: SP, high: SPh, low: SPl},

	A:   {name: "a", size: 1, pair: AF, high: A, low: A},
	F:   {name: "f", size: 1, pair: AF, high: F, low: F},
	B:   {name: "b", size: 1, pair: BC, high: B, low: B},
	C:   {name: "c", size: 1, pair: BC, high: C, low: C},
	D:   {name: "d", size: 1, pair: DE, high: D, low: D},
	E:   {name: "e", size: 1, pair: DE, high: E, low: E},
	H:   {name: "h", size: 1, pair: HL, high: H, low: H},
	L:   {name: "l", size: 1, pair: HL, high: L, low: L},
	IXh: {name: "ixh", size: 1, pair: IX, high: IXh, low: IXh, isIndex: true},
	IXl: {name: "ixl", size: 1, pair: IX, high: IXl, low: IXl, isIndex: true},
	IYh: {name: "iyh", size: 1, pair: IY, high: IYh, low: IYh, isIndex: true},
	IYl: {name: "iyl", size: 1, pair: IY, high: IYl, low: IYl, isIndex: true},
	SPh: {name: "sph", size: 1, pair: SP, high: SPh, low: SPh},
	SPl: {name: "spl", size: 1, pair: SP, high: SPl, low: SPl},
}

// PrimitiveRegisters returns the 8-bit registers in declaration order.
func PrimitiveRegisters() []RegisterName {
	return []RegisterName{
		A, F, B, C, D, E, H, L, IXh, IXl, IYh, IYl, SPh, SPl,
	}
}

func PairRegisters() []RegisterName {
	return []RegisterName{AF, BC, DE, HL, IX, IY, SP}
}

func (name RegisterName) info() registerInfo {
	if !name.Valid() {
		panic(fmt.Sprintf("invalid register name: %d", int(name)))
	}
	return registerTable[name]
}

func (name RegisterName) Valid() bool {
	return name >= 0 && name < numRegisterNames
}

func (name RegisterName) String() string {
	if !name.Valid() {
		return fmt.Sprintf("register(%d)", int(name))
	}
	return registerTable[name].name
}

// Size returns the register's width in bytes (1 or 2).
func (name RegisterName) Size() int {
	return name.info().size
}

func (name RegisterName) IsPair() bool {
	return name.info().size == 2
}

// Pair returns the 16-bit register containing name.  A pair is its own pair.
func (name RegisterName) Pair() RegisterName {
	return name.info().pair
}

// High returns the high half of a pair.  An 8-bit register is its own high
// half.
func (name RegisterName) High() RegisterName {
	return name.info().high
}

// Low returns the low half of a pair.  An 8-bit register is its own low half.
func (name RegisterName) Low() RegisterName {
	return name.info().low
}

// IsIndex is true for IX, IY and their halves, which cost an extra prefix
// byte in every instruction that names them.
func (name RegisterName) IsIndex() bool {
	return name.info().isIndex
}

func (name RegisterName) Halves() []RegisterName {
	info := name.info()
	if info.size == 1 {
		return []RegisterName{name}
	}
	return []RegisterName{info.high, info.low}
}

// ParseRegisterName is the inverse of String.
func ParseRegisterName(text string) (RegisterName, bool) {
	for idx, info := range registerTable {
		if info.name == text {
			return RegisterName(idx), true
		}
	}
	return 0, false
}
