package rainforest

import "git.gammaspectra.live/P2Pool/rainforest/types"

// TestMessage complex pattern that is easy to recognize
var TestMessage = [80]byte{
	0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80,
	0x01, 0x03, 0x05, 0x09, 0x11, 0x21, 0x41, 0x81,
	0x02, 0x02, 0x06, 0x0A, 0x12, 0x22, 0x42, 0x82,
	0x05, 0x06, 0x04, 0x0C, 0x14, 0x24, 0x44, 0x84,
	0x09, 0x0A, 0x0C, 0x08, 0x18, 0x28, 0x48, 0x88,
	0x11, 0x12, 0x14, 0x18, 0x10, 0x30, 0x50, 0x90,
	0x21, 0x22, 0x24, 0x28, 0x30, 0x20, 0x60, 0xA0,
	0x41, 0x42, 0x44, 0x48, 0x50, 0x60, 0x40, 0xC0,
	0x81, 0x82, 0x84, 0x88, 0x90, 0xA0, 0xC0, 0x80,
	0x18, 0x24, 0x42, 0x81, 0x99, 0x66, 0x55, 0xAA,
}

// ChainIterations rounds of the self-check chain
const ChainIterations = 256

// ChainVector expected Chain result after ChainIterations from a fresh rambox, AlgorithmVersion 1
var ChainVector = types.MustHashFromString("28e9e0e4bb035f4b1ab910b3ecbc9095f69884ad85ec5e28781fc62c583ab866")

// Chain runs the self-referential test chain: on each loop every message byte is xored
// with the loop counter, the message is hashed, and the digest is reinjected at the
// beginning of the message before it is modified again.
func Chain(rb *Rambox, iterations int) (out types.Hash) {
	msg := TestMessage

	for loops := range iterations {
		for i := range msg {
			msg[i] ^= byte(loops)
		}

		out = Hash(msg[:], rb, nil)

		copy(msg[:], out[:])
	}
	return out
}

// SelfCheck runs Chain on a fresh rambox and compares it against ChainVector
func SelfCheck() (out types.Hash, ok bool) {
	out = Chain(NewRambox(), ChainIterations)
	return out, out == ChainVector
}
