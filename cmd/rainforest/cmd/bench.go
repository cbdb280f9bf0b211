package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"git.gammaspectra.live/P2Pool/rainforest/bench"
	"git.gammaspectra.live/P2Pool/rainforest/rainforest"
	"git.gammaspectra.live/P2Pool/rainforest/utils"
	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"
)

const defaultInterval = time.Second

type benchSummary struct {
	Threads int           `json:"threads"`
	Hashes  uint64        `json:"hashes"`
	Elapsed time.Duration `json:"elapsed"`
	Rate    float64       `json:"rate"`
}

// runContext applies --duration to the command context
func (c *command) runContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if d := c.config.GetDuration(optionNameDuration); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

func (c *command) interval() time.Duration {
	if d := c.config.GetDuration(optionNameInterval); d > 0 {
		return d
	}
	return defaultInterval
}

func (c *command) threads() int {
	return max(c.config.GetInt(optionNameThreads), 1)
}

func logCPU(prefix string, threads int) {
	utils.Logf(prefix, "%s, %d physical / %d logical cores, %d threads, aes %s",
		cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores, threads, rainforest.Acceleration())
	utils.Debugf(prefix, "cpu features: %v", cpuid.CPU.FeatureSet())
}

func (c *command) runBench(cmd *cobra.Command) error {
	threads := c.threads()
	jsonOutput := c.config.GetBool(optionNameJSON)
	out := cmd.OutOrStdout()

	logCPU("Bench", threads)

	ctx, cancel := c.runContext(cmd)
	defer cancel()

	var counter bench.Counter
	start := time.Now()
	reporter := bench.NewReporter(&counter, start)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		reporter.Run(ctx, c.interval(), func(s bench.Sample) {
			if jsonOutput {
				_ = c.printJSON(cmd, s)
				return
			}
			_, _ = fmt.Fprintln(out, s.String())
		})
	}()

	hashes := bench.Run(ctx, threads, &counter)
	wg.Wait()

	elapsed := time.Since(start)
	summary := benchSummary{
		Threads: threads,
		Hashes:  hashes,
		Elapsed: elapsed,
		Rate:    float64(hashes) / elapsed.Seconds(),
	}

	utils.Logf("Bench", "total %d hashes in %.3f sec, %sH/s", summary.Hashes, elapsed.Seconds(), utils.SiUnits(summary.Rate, 2))
	if jsonOutput {
		return c.printJSON(cmd, summary)
	}
	_, err := fmt.Fprintf(out, "total: %.3f hashes/s (%d hashes, %.3f sec)\n", summary.Rate, summary.Hashes, elapsed.Seconds())
	return err
}
