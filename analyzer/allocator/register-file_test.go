package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	arch "github.com/pattyshack/tilegen/architecture"
)

func TestLoadImmediateAndNoOp(t *testing.T) {
	file := NewRegisterFile()

	op := file.Load(arch.BC, 0x1234)
	assert.Equal(t, "ld bc, 0x1234", op.String())

	value, ok := file.Value(arch.BC)
	require.True(t, ok)
	assert.Equal(t, uint16(0x1234), value)

	value, ok = file.Value(arch.B)
	require.True(t, ok)
	assert.Equal(t, uint16(0x12), value)

	op = file.Load(arch.BC, 0x1234)
	assert.Equal(t, arch.NoOp, op.Kind)
}

func TestLoadSelection(t *testing.T) {
	cases := []struct {
		name     string
		setup    map[arch.RegisterName]uint16
		register arch.RegisterName
		target   uint16
		expected string
	}{
		{"increment", map[arch.RegisterName]uint16{arch.B: 5}, arch.B, 6, "inc b"},
		{"decrement", map[arch.RegisterName]uint16{arch.B: 5}, arch.B, 4, "dec b"},
		{"wrap", map[arch.RegisterName]uint16{arch.E: 0xff}, arch.E, 0, "inc e"},
		{"pair increment", map[arch.RegisterName]uint16{arch.DE: 0x12ff}, arch.DE, 0x1300, "inc de"},
		{"low half", map[arch.RegisterName]uint16{arch.BC: 0x1234}, arch.BC, 0x1299, "ld c, 0x99"},
		{"high half", map[arch.RegisterName]uint16{arch.BC: 0x1234}, arch.BC, 0x7734, "ld b, 0x77"},
		{"rotate left", map[arch.RegisterName]uint16{arch.A: 0x81}, arch.A, 0x03, "rlca"},
		{"rotate right", map[arch.RegisterName]uint16{arch.A: 0x03}, arch.A, 0x81, "rrca"},
		{"complement", map[arch.RegisterName]uint16{arch.A: 0x0f}, arch.A, 0xf0, "cpl"},
		{"zero", nil, arch.A, 0, "xor a"},
		{"add", map[arch.RegisterName]uint16{arch.A: 0x10, arch.B: 0x05}, arch.A, 0x15, "add a, b"},
		{"sub", map[arch.RegisterName]uint16{arch.A: 0x10, arch.C: 0x03}, arch.A, 0x0d, "sub c"},
		{"and", map[arch.RegisterName]uint16{arch.A: 0x3c, arch.L: 0x0f}, arch.A, 0x0c, "and l"},
		{"copy", map[arch.RegisterName]uint16{arch.D: 0x42}, arch.E, 0x42, "ld e, d"},
		{"copy into a", map[arch.RegisterName]uint16{arch.H: 0x42}, arch.A, 0x42, "ld a, h"},
		{"no copy from index", map[arch.RegisterName]uint16{arch.IXl: 0x42}, arch.B, 0x42, "ld b, 0x42"},
		{"no copy from hl to index", map[arch.RegisterName]uint16{arch.H: 0x42}, arch.IXh, 0x42, "ld ixh, 0x42"},
		{"copy into index", map[arch.RegisterName]uint16{arch.C: 0x42}, arch.IYl, 0x42, "ld iyl, c"},
		{"immediate", map[arch.RegisterName]uint16{arch.A: 0x10}, arch.A, 0x77, "ld a, 0x77"},
	}

	for _, c := range cases {
		file := NewRegisterFile()
		for register, value := range c.setup {
			file.SetValue(register, value)
		}

		op := file.Load(c.register, c.target)
		assert.Equal(t, c.expected, op.String(), c.name)

		value, ok := file.Value(c.register)
		require.True(t, ok, c.name)
		assert.Equal(t, c.target, value, c.name)
	}
}

func TestLoadProperties(t *testing.T) {
	registers := []arch.RegisterName{
		arch.A, arch.B, arch.C, arch.D, arch.E, arch.H, arch.L, arch.IXh, arch.IYl,
		arch.BC, arch.DE, arch.HL, arch.IX, arch.IY,
	}

	random := rand.New(rand.NewSource(7))
	file := NewRegisterFile()
	for i := 0; i < 2000; i++ {
		register := registers[random.Intn(len(registers))]

		// Small values make increments, copies and half matches likely.
		target := uint16(random.Intn(8))
		if register.IsPair() {
			target = uint16(random.Intn(4))<<8 | uint16(random.Intn(8))
		}

		if random.Intn(10) == 0 {
			file.Forget(registers[random.Intn(len(registers))])
		}

		op := file.Load(register, target)
		assert.LessOrEqual(
			t,
			op.Cost(),
			arch.NewLoadImmediateOp(register, target).Cost())

		value, ok := file.Value(register)
		require.True(t, ok)
		require.Equal(t, target, value, "%s <- %#x (%s)", register, target, op)

		clone := file.Clone()
		assert.Equal(t, arch.NoOp, file.Load(register, target).Kind)
		assert.Equal(t, clone, file)
	}
}

func TestForgetAndFind(t *testing.T) {
	file := NewRegisterFile()
	file.SetValue(arch.HL, 0x4000)
	file.SetValue(arch.E, 0x40)
	file.SetValue(arch.DE, 0x1140)

	register, ok := file.Find(0x40, 1)
	require.True(t, ok)
	assert.Equal(t, arch.E, register)

	register, ok = file.Find(0x4000, 2)
	require.True(t, ok)
	assert.Equal(t, arch.HL, register)

	file.Forget(arch.HL)
	_, ok = file.Value(arch.H)
	assert.False(t, ok)
	_, ok = file.Find(0x4000, 2)
	assert.False(t, ok)

	file.Forget(arch.D)
	_, ok = file.Value(arch.DE)
	assert.False(t, ok)
	_, ok = file.Value(arch.E)
	assert.True(t, ok)

	assert.Equal(t, "{e=40}", file.String())

	file.Reset()
	assert.Equal(t, "{}", file.String())
}
