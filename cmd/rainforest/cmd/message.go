package cmd

import (
	"fmt"

	"git.gammaspectra.live/P2Pool/rainforest/rainforest"
	"git.gammaspectra.live/P2Pool/rainforest/types"
	"github.com/spf13/cobra"
	fasthex "github.com/tmthrgd/go-hex"
)

type messageResult struct {
	Message types.Bytes `json:"message"`
	Seed    *uint32     `json:"seed,omitempty"`
	Hash    types.Hash  `json:"hash"`
}

// input returns the bytes selected by --hex, or else the --message text
func (c *command) input() ([]byte, error) {
	if h := c.config.GetString(optionNameHex); h != "" {
		buf, err := fasthex.DecodeString(h)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", optionNameHex, err)
		}
		return buf, nil
	}
	return []byte(c.config.GetString(optionNameMessage)), nil
}

func (c *command) runMessage(cmd *cobra.Command) error {
	data, err := c.input()
	if err != nil {
		return err
	}

	seed, seeded, err := c.seed()
	if err != nil {
		return err
	}

	result := messageResult{
		Message: data,
	}
	if seeded {
		result.Seed = &seed
		result.Hash = rainforest.SeededHash(data, rainforest.NewRambox(), seed)
	} else {
		result.Hash = rainforest.Sum(data)
	}

	if c.config.GetBool(optionNameJSON) {
		return c.printJSON(cmd, result)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "out: %s\n", result.Hash)
	return err
}
