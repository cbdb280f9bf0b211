package miner

import (
	"encoding/binary"
	"errors"
	"fmt"

	"git.gammaspectra.live/P2Pool/rainforest/rainforest"
	"git.gammaspectra.live/P2Pool/rainforest/types"
)

// NonceSize nonce is stored little-endian inside the blob
const NonceSize = 4

var ErrInvalidJob = errors.New("invalid job")

// Job hashing blob with a nonce placed at NonceOffset, searching for a digest passing Difficulty
type Job struct {
	Blob        types.Bytes      `json:"blob"`
	NonceOffset int              `json:"nonce_offset"`
	Difficulty  types.Difficulty `json:"difficulty"`

	// Seeded uses SeededHash with Seed instead of Hash
	Seeded bool   `json:"seeded,omitempty"`
	Seed   uint32 `json:"seed,omitempty"`
}

func (j *Job) Validate() error {
	if len(j.Blob) == 0 {
		return fmt.Errorf("%w: empty blob", ErrInvalidJob)
	}
	if j.NonceOffset < 0 || j.NonceOffset+NonceSize > len(j.Blob) {
		return fmt.Errorf("%w: nonce offset %d out of blob of size %d", ErrInvalidJob, j.NonceOffset, len(j.Blob))
	}
	return nil
}

// Nonce reads the nonce currently stored in the blob
func (j *Job) Nonce() uint32 {
	return binary.LittleEndian.Uint32(j.Blob[j.NonceOffset:])
}

// hash writes nonce into blob, which must be a private copy of j.Blob
func (j *Job) hash(blob []byte, nonce uint32, rb *rainforest.Rambox, aux rainforest.Aux) types.Hash {
	binary.LittleEndian.PutUint32(blob[j.NonceOffset:], nonce)

	var s rainforest.State
	s.Reset()
	if j.Seeded {
		s.Seed(j.Seed)
	}
	s.Update(blob)
	return s.Finalize(rb, aux)
}

// Hash computes the digest for nonce against rb. aux may be nil. Blob is not modified.
func (j *Job) Hash(nonce uint32, rb *rainforest.Rambox, aux rainforest.Aux) types.Hash {
	blob := make([]byte, len(j.Blob))
	copy(blob, j.Blob)
	return j.hash(blob, nonce, rb, aux)
}

// Verify hashes nonce against a fresh rambox and checks it against Difficulty
func (j *Job) Verify(nonce uint32) (hash types.Hash, ok bool) {
	hash = j.Hash(nonce, rainforest.NewRambox(), nil)
	return hash, j.Difficulty.CheckPoW(hash)
}
