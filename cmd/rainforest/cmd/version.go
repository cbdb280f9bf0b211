package cmd

import (
	"fmt"

	"git.gammaspectra.live/P2Pool/rainforest/rainforest"
	"github.com/spf13/cobra"
)

func (c *command) initVersionCmd() {
	c.root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print algorithm version and AES implementation",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rainforest v%d %s\n", rainforest.AlgorithmVersion, rainforest.Acceleration())
		},
	})
}
