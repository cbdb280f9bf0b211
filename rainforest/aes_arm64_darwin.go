//go:build darwin && arm64 && !purego

package rainforest

//go:nosplit
//go:noescape
func aesRoundInternal(blk *[2]uint64, key *[2]uint64)

// Assume all M1+ have AES
//
// See https://github.com/golang/go/issues/43046

func aesRound(blk *[2]uint64, key *[2]uint64) {
	aesRoundInternal(blk, key)
}

// Acceleration reports which AES round implementation is in use
func Acceleration() string {
	return "armv8-aes"
}
