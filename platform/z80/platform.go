package z80

import (
	arch "github.com/pattyshack/tilegen/architecture"
	"github.com/pattyshack/tilegen/platform"
)

const (
	// SAM Coupé MODE 4: 256 pixels, 4 bits per pixel.
	Mode4LineStride = 128
)

var (
	// IY is the auxiliary register, which leaves IX as the only index tier
	// register.
	ArchitectureRegisters = platform.NewArchitectureRegisters(
		arch.SP,
		arch.HL,
		arch.A,
		arch.IY,
		[]arch.RegisterName{arch.BC, arch.DE},
		[]arch.RegisterName{arch.IX})
)

type Platform struct {
	lineStride int
}

func NewPlatform(lineStride int) platform.Platform {
	if lineStride <= 0 {
		lineStride = Mode4LineStride
	}
	return Platform{
		lineStride: lineStride,
	}
}

func (Platform) ArchitectureName() platform.ArchitectureName {
	return platform.Z80
}

func (Platform) ArchitectureRegisters() *platform.ArchitectureRegisters {
	return ArchitectureRegisters
}

func (p Platform) ScreenLineStride() int {
	return p.lineStride
}
