package rainforest

import (
	"encoding/binary"
	"hash/crc32"
)

// castagnoli uses the SSE4.2 / ARMv8 CRC32C instructions when the CPU has them
var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// crcWord folds the 8 little-endian bytes of w into crc.
// The scratch buffer lives in State to keep the hot path allocation free.
func (s *State) crcWord(crc uint32, w uint64) uint32 {
	binary.LittleEndian.PutUint64(s.scratch[:], w)
	return crc32.Update(crc, castagnoli, s.scratch[:])
}
