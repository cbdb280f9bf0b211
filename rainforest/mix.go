package rainforest

import (
	"math/bits"

	"lukechampine.com/uint128"
)

// mixOp transforms the accumulator using rambox value v and returns the round result
type mixOp func(s *State, v uint64) uint64

// mixOps frozen operation table, version AlgorithmVersion. Indexed by the top byte of lane 0.
var mixOps = [...]mixOp{
	opAES,
	opCRC,
	opMul,
	opDiv,
	opRot,
	opAddXor,
	opBswap,
	opSwap,
}

const mixOpMask = uint8(len(mixOps) - 1)

func (s *State) mix(rb *Rambox, aux Aux) {
	for r := range MixRounds {
		s.mixRound(rb, r, aux)
	}
}

// slot rambox index read by the next round
func (s *State) slot() uint32 {
	return uint32(s.hash[1]>>32) & RamboxMask
}

// mixRound picks an operation and a rambox slot from the accumulator, then folds the
// value read back into the lanes both are taken from. The next round cannot start
// before this round's memory read completes.
func (s *State) mixRound(rb *Rambox, r int, aux Aux) {
	op := mixOps[uint8(s.hash[0]>>56)&mixOpMask]
	slot := s.slot()

	v := rb[slot]
	res := op(s, v)
	rb[slot] = bits.RotateLeft64(v^res, r&63) + uint64(s.crc)
	if aux != nil {
		aux.RamboxWrite(slot, v)
	}

	s.hash[3] += res ^ v
	s.hash[0], s.hash[1], s.hash[2], s.hash[3] = s.hash[1], s.hash[2], s.hash[3], s.hash[0]

	// v is rotated so no operation can cancel it out of the feedback
	e := res ^ bits.RotateLeft64(v, 29)
	d := (e ^ e>>32) * prime64
	s.hash[0] += d
	s.hash[1] ^= d
}

// opAES one AES round over lanes 0-1 keyed by v and lane 2
func opAES(s *State, v uint64) uint64 {
	blk := [2]uint64{s.hash[0], s.hash[1]}
	key := [2]uint64{v, s.hash[2]}
	aesRound(&blk, &key)
	s.hash[0], s.hash[1] = blk[0], blk[1]
	return blk[0] + blk[1]
}

func opCRC(s *State, v uint64) uint64 {
	c1 := s.crcWord(s.crc, v^s.hash[0])
	c2 := s.crcWord(c1, s.hash[1])
	s.crc = c2
	s.hash[0] ^= uint64(c1)<<32 | uint64(c2)
	return s.hash[0] ^ bits.RotateLeft64(v, 17)
}

func opMul(s *State, v uint64) uint64 {
	p := uint128.From64(s.hash[0] ^ v).Mul64(s.hash[1] | 1)
	s.hash[0] = p.Lo
	s.hash[1] ^= p.Hi
	return p.Lo ^ p.Hi
}

// opDiv 128 by 64 bit division, divisor forced odd so it is never zero
func opDiv(s *State, v uint64) uint64 {
	q, r := uint128.New(s.hash[0], s.hash[1]).QuoRem64(v | 1)
	s.hash[0] += q.Lo
	s.hash[1] ^= q.Hi + r
	return r ^ q.Lo
}

// opRot data dependent rotations, amounts taken mod 64
func opRot(s *State, v uint64) uint64 {
	l := bits.RotateLeft64(s.hash[0], -int(v&0xff))
	h := bits.RotateLeft64(s.hash[1], int(v>>8&0xff))
	l += v
	h ^= v
	l = bits.RotateLeft64(l, int(h&63))
	h = bits.RotateLeft64(h, -int(l&63))
	s.hash[0], s.hash[1] = l, h
	return l ^ h
}

func opAddXor(s *State, v uint64) uint64 {
	s.hash[0] += v
	s.hash[1] ^= bits.RotateLeft64(s.hash[0], 23)
	s.hash[2] -= s.hash[1]
	return s.hash[2] ^ v
}

func opBswap(s *State, v uint64) uint64 {
	s.hash[0] = bits.ReverseBytes64(s.hash[0] ^ v)
	s.hash[1] += s.hash[0]
	return s.hash[1] - v
}

func opSwap(s *State, v uint64) uint64 {
	s.hash[0], s.hash[2] = s.hash[2]^v, s.hash[0]+v
	s.hash[1] = bits.RotateLeft64(s.hash[1]^s.hash[0], 41)
	return s.hash[0] + s.hash[1]
}
