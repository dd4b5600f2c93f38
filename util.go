package huffman

import (
	mathbits "math/bits"
)

// log2int approximates log2(x), rounded up, for use as a capacity hint.
func log2int(x int) int {
	if x <= 0 {
		x = 1
	}
	return mathbits.Len(uint(x))
}
