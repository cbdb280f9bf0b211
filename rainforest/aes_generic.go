//go:build !(amd64 || arm64) || purego

package rainforest

func aesRound(blk *[2]uint64, key *[2]uint64) {
	aesRoundGeneric(blk, key)
}

// Acceleration reports which AES round implementation is in use
func Acceleration() string {
	return "generic"
}
