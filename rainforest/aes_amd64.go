//go:build amd64 && !purego

package rainforest

import "golang.org/x/sys/cpu"

//go:nosplit
//go:noescape
func aesRoundInternal(blk *[2]uint64, key *[2]uint64)

var hasAES = cpu.X86.HasAES

func aesRound(blk *[2]uint64, key *[2]uint64) {
	if hasAES {
		aesRoundInternal(blk, key)
		return
	}
	aesRoundGeneric(blk, key)
}

// Acceleration reports which AES round implementation is in use
func Acceleration() string {
	if hasAES {
		return "aes-ni"
	}
	return "generic"
}
