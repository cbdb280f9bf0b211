package rainforest

import (
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/sha3"
)

// RamboxSize 2048 entries for the rambox, 16 KiB to stay resident in L1 cache
const RamboxSize = 2048

// RamboxMask masks any derived index into [0, RamboxSize)
const RamboxMask = RamboxSize - 1

const ramboxDomain = "rainforest rambox v1"

// Rambox is the shared mixing memory read and rewritten by every Finalize.
// It accumulates changes across hashes and is not safe for concurrent use; each
// worker must own its own instance.
type Rambox [RamboxSize]uint64

// ramboxTemplate SHAKE256 expansion of ramboxDomain, computed once per process
var ramboxTemplate = sync.OnceValue(func() *Rambox {
	var buf [RamboxSize * 8]byte
	sha3.ShakeSum256(buf[:], []byte(ramboxDomain))

	rb := new(Rambox)
	for i := range rb {
		rb[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return rb
})

// NewRambox allocates an initialized Rambox
func NewRambox() *Rambox {
	rb := new(Rambox)
	rb.Init()
	return rb
}

// Init restores the rambox to its fixed initial contents
func (rb *Rambox) Init() {
	*rb = *ramboxTemplate()
}

// Equal reports whether both ramboxes hold identical contents
func (rb *Rambox) Equal(other *Rambox) bool {
	return *rb == *other
}

// InitRambox fills a caller owned buffer of words entries.
// Both words and len(buf) must equal RamboxSize.
func InitRambox(buf []uint64, words int) {
	if words != RamboxSize || len(buf) != words {
		panic("rainforest: rambox buffer must hold exactly RamboxSize words")
	}
	copy(buf, ramboxTemplate()[:])
}

// RamboxFromSlice views buf as a Rambox without copying
func RamboxFromSlice(buf []uint64) *Rambox {
	if len(buf) != RamboxSize {
		panic("rainforest: rambox buffer must hold exactly RamboxSize words")
	}
	return (*Rambox)(buf)
}
