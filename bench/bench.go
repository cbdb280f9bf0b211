// Package bench measures RainForest hashing throughput.
package bench

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"git.gammaspectra.live/P2Pool/rainforest/rainforest"
	"git.gammaspectra.live/P2Pool/rainforest/types"
	"git.gammaspectra.live/P2Pool/rainforest/utils"
)

// Counter number of hashes computed, safe for concurrent use
type Counter struct {
	hashes atomic.Uint64
}

func (c *Counter) Add(n uint64) {
	c.hashes.Add(n)
}

func (c *Counter) Load() uint64 {
	return c.hashes.Load()
}

// Sample throughput over one reporting interval
type Sample struct {
	Hashes  uint64        `json:"hashes"`
	Elapsed time.Duration `json:"elapsed"`
	Rate    float64       `json:"rate"`
}

func (s Sample) String() string {
	return fmt.Sprintf("%.3f hashes/s (%d hashes, %.3f sec)", s.Rate, s.Hashes, s.Elapsed.Seconds())
}

// SiRate hash rate with SI suffix, for example "1.25 KH/s"
func (s Sample) SiRate() string {
	return utils.SiUnits(s.Rate, 2) + "H/s"
}

// Reporter turns Counter readings into per-interval samples
type Reporter struct {
	counter  *Counter
	last     uint64
	lastTime time.Time
}

func NewReporter(counter *Counter, start time.Time) *Reporter {
	return &Reporter{
		counter:  counter,
		last:     counter.Load(),
		lastTime: start,
	}
}

// Sample returns the hashes and rate since the previous sample
func (r *Reporter) Sample(now time.Time) Sample {
	current := r.counter.Load()

	s := Sample{
		Hashes:  current - r.last,
		Elapsed: now.Sub(r.lastTime),
	}
	if s.Elapsed > 0 {
		s.Rate = float64(s.Hashes) / s.Elapsed.Seconds()
	}

	r.last = current
	r.lastTime = now
	return s
}

// Run calls fn with a new Sample every interval until ctx is done
func (r *Reporter) Run(ctx context.Context, interval time.Duration, fn func(Sample)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			fn(r.Sample(now))
		}
	}
}

const loopCheckInterval = 16

// Loop hashes the test message against rb until ctx is done, xoring every byte with the
// loop counter and reinjecting each digest at the start of the message, as Chain does.
// It returns the last digest and the number of loops run.
func Loop(ctx context.Context, rb *rainforest.Rambox, counter *Counter) (out types.Hash, loops uint64) {
	msg := rainforest.TestMessage

	for {
		if loops%loopCheckInterval == 0 && ctx.Err() != nil {
			return out, loops
		}

		for i := range msg {
			msg[i] ^= byte(loops)
		}

		out = rainforest.Hash(msg[:], rb, nil)
		copy(msg[:], out[:])

		loops++
		counter.Add(1)
	}
}

// Run benchmarks on workers goroutines, each owning a private Rambox, until ctx is done.
// Returns the total number of hashes.
func Run(ctx context.Context, workers int, counter *Counter) uint64 {
	if workers <= 0 {
		workers = 1
	}

	start := counter.Load()
	_ = utils.SplitWork(workers, uint64(workers), func(workIndex uint64, routineIndex int) error {
		out, loops := Loop(ctx, rainforest.NewRambox(), counter)
		utils.Debugf("Bench", "worker %d stopped after %d loops, last %s", routineIndex, loops, out)
		return nil
	}, func(routines, routineIndex int) error {
		return nil
	})
	return counter.Load() - start
}
