package rainforest

var te0, te1, te2, te3 = &encTable[0], &encTable[1], &encTable[2], &encTable[3]

// aesRoundGeneric applies one AES encryption round (SubBytes, ShiftRows, MixColumns, AddRoundKey)
// to blk in place, matching the x86 AESENC instruction on the 16 little-endian bytes of both lanes.
func aesRoundGeneric(blk *[2]uint64, key *[2]uint64) {
	s0 := uint32(blk[0])
	s1 := uint32(blk[0] >> 32)
	s2 := uint32(blk[1])
	s3 := uint32(blk[1] >> 32)

	r0 := uint32(key[0]) ^ te0[uint8(s0)] ^ te1[uint8(s1>>8)] ^ te2[uint8(s2>>16)] ^ te3[uint8(s3>>24)]
	r1 := uint32(key[0]>>32) ^ te0[uint8(s1)] ^ te1[uint8(s2>>8)] ^ te2[uint8(s3>>16)] ^ te3[uint8(s0>>24)]
	r2 := uint32(key[1]) ^ te0[uint8(s2)] ^ te1[uint8(s3>>8)] ^ te2[uint8(s0>>16)] ^ te3[uint8(s1>>24)]
	r3 := uint32(key[1]>>32) ^ te0[uint8(s3)] ^ te1[uint8(s0>>8)] ^ te2[uint8(s1>>16)] ^ te3[uint8(s2>>24)]

	blk[0] = uint64(r0) | uint64(r1)<<32
	blk[1] = uint64(r2) | uint64(r3)<<32
}
