package rainforest

import (
	"encoding/binary"
	"math/bits"

	"git.gammaspectra.live/P2Pool/rainforest/types"
)

// AlgorithmVersion identifies the frozen operation table, constants and round counts.
// Any change producing different digests must bump it.
const AlgorithmVersion = 1

// MixRounds number of rambox read-modify-write rounds run by Finalize
const MixRounds = 256

const compressRounds = 4

const (
	initCRC = 0x20180213

	prime64 = 0x9E3779B185EBCA87
	golden  = 0x9E3779B97F4A7C15
)

// iv fractional parts of the square roots of the first four primes
var iv = [4]uint64{
	0x6a09e667f3bcc908,
	0xbb67ae8584caa73b,
	0x3c6ef372fe94f82b,
	0xa54ff53a5f1d36f1,
}

const (
	phaseUnset = iota
	phaseAbsorbing
	phaseFinalized
)

// State RainForest hashing state. Not thread-safe.
// The zero value must be Reset before use.
type State struct {
	hash [4]uint64
	crc  uint32

	// pending little-endian partial word, fill bytes of it are valid
	pending uint64
	fill    uint32
	length  uint64

	phase   uint8
	seeded  bool
	scratch [8]byte
}

// NewState returns a State ready to absorb data
func NewState() *State {
	s := new(State)
	s.Reset()
	return s
}

// Reset puts the state back to the initialization vector
func (s *State) Reset() {
	s.hash = iv
	s.crc = initCRC
	s.pending = 0
	s.fill = 0
	s.length = 0
	s.phase = phaseAbsorbing
	s.seeded = false
}

// Seed injects a 32-bit domain separation seed. It must be called right after Reset, at most once.
func (s *State) Seed(seed uint32) {
	if s.phase != phaseAbsorbing || s.length != 0 {
		panic("rainforest: Seed must be called right after Reset")
	}
	if s.seeded {
		panic("rainforest: Seed called twice without Reset")
	}
	s.seeded = true
	x := uint64(seed)
	s.hash[0] ^= x * golden
	s.hash[2] += x<<32 | x
	s.crc = s.crcWord(s.crc, x)
}

// Len returns the number of bytes absorbed so far
func (s *State) Len() uint64 {
	return s.length
}

// Write implements io.Writer, it never fails
func (s *State) Write(p []byte) (n int, err error) {
	s.Update(p)
	return len(p), nil
}

// Update absorbs data. Any split of a message across calls yields the same state.
// The rambox is never touched here.
func (s *State) Update(data []byte) {
	if s.phase != phaseAbsorbing {
		panic("rainforest: Update on a state that is not Reset or already finalized")
	}

	for len(data) > 0 {
		if s.fill == 0 && len(data) >= 8 {
			s.absorb(binary.LittleEndian.Uint64(data), s.length>>3)
			s.length += 8
			data = data[8:]
			continue
		}

		s.pending |= uint64(data[0]) << (8 * s.fill)
		s.fill++
		s.length++
		data = data[1:]

		if s.fill == 8 {
			s.absorb(s.pending, (s.length>>3)-1)
			s.pending = 0
			s.fill = 0
		}
	}
}

// absorb folds word w with word index into the crc register and one accumulator lane
func (s *State) absorb(w uint64, index uint64) {
	s.crc = s.crcWord(s.crc, w)
	x := w ^ (uint64(s.crc)<<32 | uint64(s.crc))

	lane := index & 3
	v := bits.RotateLeft64((s.hash[lane]^x)*prime64, 31)
	s.hash[lane] = v
	s.hash[(lane+1)&3] += v ^ (v >> 29)
}

// Finalize pads the pending data, runs the mixing stage against rb and returns the digest.
// aux may be nil. The state is consumed: calling Finalize again without Reset panics.
func (s *State) Finalize(rb *Rambox, aux Aux) types.Hash {
	if s.phase != phaseAbsorbing {
		panic("rainforest: Finalize on a state that is not Reset or already finalized")
	}
	if rb == nil {
		panic("rainforest: nil rambox")
	}
	s.phase = phaseFinalized

	s.pad()
	s.mix(rb, aux)

	return s.compress()
}

// pad absorbs the 0x80 marker right after the last byte, then the total length
func (s *State) pad() {
	s.absorb(s.pending|0x80<<(8*s.fill), s.length>>3)
	s.absorb(s.length, (s.length>>3)+1)
	s.pending = 0
	s.fill = 0
}

// compress folds the accumulator into the 32-byte digest, with constant control flow
func (s *State) compress() (sum types.Hash) {
	h := s.hash
	crc := s.crc

	for range compressRounds {
		blk := [2]uint64{h[0], h[1]}
		key := [2]uint64{h[2], h[3]}
		aesRound(&blk, &key)
		crc = s.crcWord(crc, blk[0]^blk[1])
		h[0], h[1], h[2], h[3] = h[2]^uint64(crc), h[3], blk[0], blk[1]
	}

	for i := range h {
		binary.LittleEndian.PutUint64(sum[i*8:], h[i])
	}
	return sum
}
