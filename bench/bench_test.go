package bench

import (
	"context"
	"testing"
	"time"

	"git.gammaspectra.live/P2Pool/rainforest/rainforest"
	"git.gammaspectra.live/P2Pool/rainforest/types"
	"github.com/stretchr/testify/require"
)

func TestReporter_Sample(t *testing.T) {
	var counter Counter
	start := time.Unix(1000, 0)
	r := NewReporter(&counter, start)

	counter.Add(500)
	s := r.Sample(start.Add(time.Second))
	require.Equal(t, uint64(500), s.Hashes)
	require.Equal(t, time.Second, s.Elapsed)
	require.InDelta(t, 500, s.Rate, 1e-9)
	require.Equal(t, "500.000 hashes/s (500 hashes, 1.000 sec)", s.String())

	counter.Add(3000)
	s = r.Sample(start.Add(3 * time.Second))
	require.Equal(t, uint64(3000), s.Hashes)
	require.InDelta(t, 1500, s.Rate, 1e-9)
	require.Equal(t, "1.50 KH/s", s.SiRate())

	s = r.Sample(start.Add(3 * time.Second))
	require.Zero(t, s.Hashes)
	require.Zero(t, s.Rate)
}

func TestReporter_Run(t *testing.T) {
	var counter Counter
	r := NewReporter(&counter, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	samples := make(chan Sample, 16)

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(ctx, 10*time.Millisecond, func(s Sample) {
			samples <- s
			if len(samples) >= 3 {
				cancel()
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("reporter did not stop")
	}
	require.GreaterOrEqual(t, len(samples), 3)
}

func TestLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var counter Counter
	_, loops := Loop(ctx, rainforest.NewRambox(), &counter)
	require.Zero(t, loops)
	require.Zero(t, counter.Load())
}

func TestLoop_MatchesChain(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var counter Counter
	rb := rainforest.NewRambox()

	done := make(chan struct{})
	var out types.Hash
	var loops uint64
	go func() {
		defer close(done)
		out, loops = Loop(ctx, rb, &counter)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	require.Equal(t, loops, counter.Load())
	require.NotZero(t, loops)
	require.Equal(t, rainforest.Chain(rainforest.NewRambox(), int(loops)), out)
}

func TestRun(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var counter Counter
	total := Run(ctx, 2, &counter)
	require.NotZero(t, total)
	require.Equal(t, total, counter.Load())
}
