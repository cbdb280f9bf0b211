package rainforest

import (
	"math/bits"
)

// Tables for the software AES round, 4 KiB generated at init.
// Field arithmetic is over GF(2⁸) reduced by x⁸ + x⁴ + x³ + x + 1 (0x11b).

func gfMul(a, b uint8) uint8 {
	var p uint8
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		carry := a & 0x80
		a <<= 1
		if carry != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

// gfInv returns a²⁵⁴, the multiplicative inverse of a. 0 maps to 0.
func gfInv(a uint8) uint8 {
	r := uint8(1)
	for e := 254; e > 0; e >>= 1 {
		if e&1 != 0 {
			r = gfMul(r, a)
		}
		a = gfMul(a, a)
	}
	return r
}

// sbox SubBytes: inversion followed by the affine map
var sbox = func() (s [256]byte) {
	for i := range s {
		b := gfInv(uint8(i))
		s[i] = b ^ bits.RotateLeft8(b, 1) ^ bits.RotateLeft8(b, 2) ^ bits.RotateLeft8(b, 3) ^ bits.RotateLeft8(b, 4) ^ 0x63
	}
	return s
}()

// encTable maps a state byte to its SubBytes+MixColumns contribution to a column.
// Columns are uint32 read little-endian from the lanes, so row 0 is the low byte;
// encTable[row] handles a byte sitting at that row of its column.
var encTable = func() (te [4][256]uint32) {
	for i := range 256 {
		s := sbox[i]
		col := uint32(gfMul(s, 2)) | uint32(s)<<8 | uint32(s)<<16 | uint32(gfMul(s, 3))<<24
		for row := range 4 {
			te[row][i] = bits.RotateLeft32(col, 8*row)
		}
	}
	return te
}()
