package architecture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHalves(t *testing.T) {
	for _, pair := range PairRegisters() {
		require.Equal(t, 2, pair.Size(), pair.String())
		assert.Equal(t, pair, pair.Pair())
		assert.Equal(t, pair, pair.High().Pair())
		assert.Equal(t, pair, pair.Low().Pair())
		assert.NotEqual(t, pair.High(), pair.Low())
		assert.Equal(t, []RegisterName{pair.High(), pair.Low()}, pair.Halves())
	}

	for _, register := range PrimitiveRegisters() {
		require.Equal(t, 1, register.Size(), register.String())
		assert.Equal(t, register, register.High())
		assert.Equal(t, register, register.Low())
		assert.Equal(t, register.IsIndex(), register.Pair().IsIndex())
	}
}

func TestRegisterTable(t *testing.T) {
	assert.Equal(t, B, BC.High())
	assert.Equal(t, C, BC.Low())
	assert.Equal(t, IYl, IY.Low())
	assert.Equal(t, HL, L.Pair())

	assert.True(t, IX.IsIndex())
	assert.True(t, IYh.IsIndex())
	assert.False(t, HL.IsIndex())
	assert.False(t, A.IsIndex())

	assert.Equal(t, "ixh", IXh.String())
	assert.Equal(t, "register(99)", RegisterName(99).String())
}

func TestParseRegisterName(t *testing.T) {
	for _, register := range append(PairRegisters(), PrimitiveRegisters()...) {
		parsed, ok := ParseRegisterName(register.String())
		require.True(t, ok)
		assert.Equal(t, register, parsed)
	}

	_, ok := ParseRegisterName("rax")
	assert.False(t, ok)
}

func TestByteSize(t *testing.T) {
	assert.Equal(t, 1, ByteSize[uint8]())
	assert.Equal(t, 2, ByteSize[uint16]())
	assert.Equal(t, 4, ByteSize[uint32]())
}
