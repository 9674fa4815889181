package architecture

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Value is a constant materialized by the generated code.  Only 8 and 16 bit
// values are used, but the allocators are generic over any unsigned width.
type Value interface {
	constraints.Unsigned
}

// ByteSize returns the width of V in bytes.
func ByteSize[V Value]() int {
	return bits.Len64(uint64(^V(0))) / 8
}
