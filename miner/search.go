// Package miner scans nonce ranges for RainForest digests passing a target difficulty.
package miner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"git.gammaspectra.live/P2Pool/rainforest/bench"
	"git.gammaspectra.live/P2Pool/rainforest/rainforest"
	"git.gammaspectra.live/P2Pool/rainforest/types"
	"git.gammaspectra.live/P2Pool/rainforest/utils"
)

var ErrNotFound = errors.New("no solution in nonce range")

var errFound = errors.New("found")

const DefaultBatchSize = 256

type Options struct {
	// Workers number of goroutines, each with a private Rambox. Defaults to runtime.NumCPU()
	Workers int

	// Start first nonce to try
	Start uint32
	// Count number of nonces to try. Defaults to the rest of the 32-bit nonce space
	Count uint64

	// BatchSize nonces handed to a worker at once
	BatchSize uint64

	// Counter optional, incremented once per hash
	Counter *bench.Counter
}

type Solution struct {
	Nonce  uint32     `json:"nonce"`
	Hash   types.Hash `json:"hash"`
	Hashes uint64     `json:"hashes"`
}

type worker struct {
	blob    []byte
	rb      *rainforest.Rambox
	journal *rainforest.Journal
	hashes  uint64
}

// Search scans [Start, Start+Count) for a nonce whose digest passes job.Difficulty.
// Every candidate is hashed against a rambox rolled back to its fresh state, so any
// returned solution verifies with Job.Verify.
// It returns ErrNotFound once the range is exhausted, or ctx.Err() when ctx is done first.
func Search(ctx context.Context, job Job, opts Options) (Solution, error) {
	if err := job.Validate(); err != nil {
		return Solution{}, err
	}

	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Count == 0 {
		opts.Count = math.MaxUint32 + 1 - uint64(opts.Start)
	}
	if uint64(opts.Start)+opts.Count > math.MaxUint32+1 {
		return Solution{}, fmt.Errorf("%w: nonce range %d+%d overflows", ErrInvalidJob, opts.Start, opts.Count)
	}

	batches := (opts.Count + opts.BatchSize - 1) / opts.BatchSize

	var workers []*worker

	var solutionLock sync.Mutex
	var solution Solution
	var found bool

	err := utils.SplitWork(opts.Workers, batches, func(workIndex uint64, routineIndex int) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		w := workers[routineIndex]
		first := workIndex * opts.BatchSize
		last := min(first+opts.BatchSize, opts.Count)

		for i := first; i < last; i++ {
			nonce := opts.Start + uint32(i)

			hash := job.hash(w.blob, nonce, w.rb, w.journal)
			w.journal.Rollback(w.rb)
			w.hashes++

			if opts.Counter != nil {
				opts.Counter.Add(1)
			}

			if job.Difficulty.CheckPoW(hash) {
				solutionLock.Lock()
				defer solutionLock.Unlock()
				if !found {
					found = true
					solution.Nonce = nonce
					solution.Hash = hash
				}
				utils.Debugf("Miner", "worker %d found nonce %d hash %s", routineIndex, nonce, hash)
				return errFound
			}
		}
		return nil
	}, func(routines, routineIndex int) error {
		if routineIndex == 0 {
			workers = make([]*worker, routines)
		}
		w := &worker{
			blob:    make([]byte, len(job.Blob)),
			rb:      rainforest.NewRambox(),
			journal: rainforest.NewJournal(),
		}
		copy(w.blob, job.Blob)
		workers[routineIndex] = w
		return nil
	})

	var hashes uint64
	for _, w := range workers {
		hashes += w.hashes
	}

	if found {
		solution.Hashes = hashes
		return solution, nil
	}
	if err != nil {
		return Solution{Hashes: hashes}, err
	}
	return Solution{Hashes: hashes}, ErrNotFound
}
