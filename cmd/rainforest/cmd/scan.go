package cmd

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"git.gammaspectra.live/P2Pool/rainforest/bench"
	"git.gammaspectra.live/P2Pool/rainforest/miner"
	"git.gammaspectra.live/P2Pool/rainforest/rainforest"
	"git.gammaspectra.live/P2Pool/rainforest/types"
	"git.gammaspectra.live/P2Pool/rainforest/utils"
	"github.com/spf13/cobra"
)

func (c *command) scanJob() (job miner.Job, err error) {
	if c.config.GetString(optionNameHex) != "" {
		if job.Blob, err = c.input(); err != nil {
			return job, err
		}
	} else {
		msg := rainforest.TestMessage
		job.Blob = msg[:]
	}

	job.NonceOffset = c.config.GetInt(optionNameNonceOffset)
	if job.Difficulty, err = types.DifficultyFromString(c.config.GetString(optionNameDifficulty)); err != nil {
		return job, fmt.Errorf("invalid --%s: %w", optionNameDifficulty, err)
	}

	if job.Seed, job.Seeded, err = c.seed(); err != nil {
		return job, err
	}

	return job, job.Validate()
}

func (c *command) runScan(cmd *cobra.Command) error {
	job, err := c.scanJob()
	if err != nil {
		return err
	}

	threads := c.threads()
	logCPU("Scan", threads)
	utils.Logf("Scan", "difficulty %s, blob %d bytes, nonce offset %d", job.Difficulty.StringNumeric(), len(job.Blob), job.NonceOffset)

	ctx, cancel := c.runContext(cmd)
	defer cancel()

	var counter bench.Counter
	start := time.Now()
	reporter := bench.NewReporter(&counter, start)

	var wg sync.WaitGroup
	wg.Add(1)
	reportCtx, stopReport := c.runContext(cmd)
	go func() {
		defer wg.Done()
		reporter.Run(reportCtx, c.interval(), func(s bench.Sample) {
			utils.Noticef("Scan", "%s", s.SiRate())
		})
	}()

	solution, err := miner.Search(ctx, job, miner.Options{
		Workers: threads,
		Start:   c.config.GetUint32(optionNameStart),
		Count:   c.config.GetUint64(optionNameCount),
		Counter: &counter,
	})
	stopReport()
	wg.Wait()

	if err != nil {
		if errors.Is(err, miner.ErrNotFound) {
			utils.Logf("Scan", "no solution after %d hashes", solution.Hashes)
		}
		return err
	}

	utils.Logf("Scan", "found nonce %d after %d hashes in %.3f sec", solution.Nonce, solution.Hashes, time.Since(start).Seconds())

	if c.config.GetBool(optionNameJSON) {
		return c.printJSON(cmd, solution)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "nonce: %d\nhash: %s\nhashes: %d\n", solution.Nonce, solution.Hash, solution.Hashes)
	return err
}
