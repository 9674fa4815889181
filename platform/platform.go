package platform

type ArchitectureName string

const (
	Z80 = ArchitectureName("z80")
)

type Platform interface {
	ArchitectureName() ArchitectureName

	ArchitectureRegisters() *ArchitectureRegisters

	// ScreenLineStride is the number of bytes between the start of two
	// consecutive screen lines.
	ScreenLineStride() int
}
