package rainforest

import "git.gammaspectra.live/P2Pool/rainforest/types"

// Hash computes the digest of data against rb, which is mutated. aux may be nil.
func Hash(data []byte, rb *Rambox, aux Aux) types.Hash {
	var s State
	s.Reset()
	s.Update(data)
	return s.Finalize(rb, aux)
}

// SeededHash is Hash with seed mixed into the state before absorption, giving
// independent digests of the same message from the same rambox
func SeededHash(data []byte, rb *Rambox, seed uint32) types.Hash {
	var s State
	s.Reset()
	s.Seed(seed)
	s.Update(data)
	return s.Finalize(rb, nil)
}

// Sum hashes data against a private, freshly initialized rambox.
// The result only depends on data.
func Sum(data []byte) types.Hash {
	var rb Rambox
	rb.Init()
	return Hash(data, &rb, nil)
}
