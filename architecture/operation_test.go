package architecture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationCost(t *testing.T) {
	cases := []struct {
		op       Operation
		cost     int
		rendered string
	}{
		{NewCopyRegisterOp(A, B), 1, "ld a, b"},
		{NewCopyRegisterOp(IXh, B), 2, "ld ixh, b"},
		{NewCopyRegisterOp(SP, HL), 1, "ld sp, hl"},
		{NewLoadImmediateOp(C, 0x12), 2, "ld c, 0x12"},
		{NewLoadImmediateOp(BC, 0x1234), 3, "ld bc, 0x1234"},
		{NewLoadImmediateOp(IY, 0x1234), 4, "ld iy, 0x1234"},
		{NewLoadImmediateOp(IYl, 0x12), 3, "ld iyl, 0x12"},
		{
			NewLoadOp(NewIndirectOperand(HL), NewImmediate8Operand(0x44)),
			3,
			"ld (hl), 0x44",
		},
		{
			NewLoadOp(NewIndirectOperand(HL), NewDirectOperand(A)),
			2,
			"ld (hl), a",
		},
		{
			NewLoadOp(NewLabelIndirectOperand("stack"), NewDirectOperand(SP)),
			5,
			"ld (stack), sp",
		},
		{NewIncrementOp(B), 1, "inc b"},
		{NewDecrementOp(DE), 2, "dec de"},
		{NewIncrementOp(IX), 3, "inc ix"},
		{NewPushOp(BC), 3, "push bc"},
		{NewPushOp(IY), 4, "push iy"},
		{NewAddOp(HL, SP), 2, "add hl, sp"},
		{NewAccumulatorOp(AddOp, B), 1, "add a, b"},
		{NewAccumulatorOp(XorOp, A), 1, "xor a"},
		{NewAccumulatorOp(AndOp, E), 1, "and e"},
		{NewRotateLeftOp(), 1, "rlca"},
		{NewRotateRightOp(), 1, "rrca"},
		{NewComplementOp(), 1, "cpl"},
		{NewJumpOp("next"), 3, "jp next"},
		{NewReturnOp(), 3, "ret"},
		{NewLabelOp("grass"), 0, "grass:"},
		{NewAlignOp(2), 0, "ds align 2"},
		{NewNoOp(), 0, ""},
		{NewBlankLineOp(), 0, ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.cost, c.op.Cost(), c.rendered)
		assert.Equal(t, c.rendered, c.op.String())
	}
}

func TestUndefinedCostPanics(t *testing.T) {
	op := NewLoadOp(NewImmediate8Operand(1), NewDirectOperand(A))
	assert.Panics(t, func() { op.Cost() })

	op = NewLoadOp(NewIndirectOperand(HL), NewImmediate16Operand(1))
	assert.Panics(t, func() { op.Cost() })

	assert.Panics(t, func() { Operation{Kind: "halt"}.Cost() })
}

func TestTotalCost(t *testing.T) {
	ops := []Operation{
		NewLoadImmediateOp(BC, 0x1234),
		NewPushOp(BC),
		NewPushOp(BC),
		NewNoOp(),
	}
	assert.Equal(t, 9, TotalCost(ops))
	assert.Equal(t, 0, TotalCost(nil))
}

func TestOperandConstraints(t *testing.T) {
	assert.Panics(t, func() { NewIndirectOperand(A) })
	assert.Panics(t, func() { NewLoadImmediateOp(A, 0x100) })
	assert.Panics(t, func() { NewPushOp(A) })
	assert.Panics(t, func() { NewAccumulatorOp(LoadOp, B) })
	assert.Panics(t, func() { NewCopyRegisterOp(A, BC) })
}
