package cmd

import (
	"fmt"

	"git.gammaspectra.live/P2Pool/rainforest/rainforest"
	"git.gammaspectra.live/P2Pool/rainforest/types"
	"github.com/spf13/cobra"
)

type checkResult struct {
	Valid      bool       `json:"valid"`
	Version    int        `json:"version"`
	Iterations int        `json:"iterations"`
	Hash       types.Hash `json:"hash"`
	Expected   types.Hash `json:"expected"`
}

func (c *command) runCheck(cmd *cobra.Command) error {
	out, ok := rainforest.SelfCheck()

	result := checkResult{
		Valid:      ok,
		Version:    rainforest.AlgorithmVersion,
		Iterations: rainforest.ChainIterations,
		Hash:       out,
		Expected:   rainforest.ChainVector,
	}

	if c.config.GetBool(optionNameJSON) {
		if err := c.printJSON(cmd, result); err != nil {
			return err
		}
	} else if ok {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "valid: %s\n", out)
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), " invalid: %s\nexpected: %s\n", out, rainforest.ChainVector)
	}

	if !ok {
		return errCheckFailed
	}
	return nil
}
