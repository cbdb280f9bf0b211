package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.gammaspectra.live/P2Pool/rainforest/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	optionNameMessage     = "message"
	optionNameHex         = "hex"
	optionNameCheck       = "check"
	optionNameBench       = "bench"
	optionNameScan        = "scan"
	optionNameDifficulty  = "difficulty"
	optionNameNonceOffset = "nonce-offset"
	optionNameStart       = "start"
	optionNameCount       = "count"
	optionNameSeed        = "seed"
	optionNameThreads     = "threads"
	optionNameDuration    = "duration"
	optionNameInterval    = "interval"
	optionNameJSON        = "json"
	optionNameVerbosity   = "verbosity"
)

var errNoMode = errors.New("one of --message, --hex, --check, --bench or --scan is required")

var errCheckFailed = errors.New("self-check failed")

type command struct {
	root    *cobra.Command
	config  *viper.Viper
	cfgFile string
	homeDir string
}

type option func(*command)

func newCommand(opts ...option) (c *command, err error) {
	c = &command{
		root: &cobra.Command{
			Use:           "rainforest",
			Short:         "RainForest proof-of-work hash",
			SilenceErrors: true,
			SilenceUsage:  true,
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				if err := c.initConfig(); err != nil {
					return err
				}
				if err := c.config.BindPFlags(cmd.Flags()); err != nil {
					return err
				}
				utils.SetLogLevel(c.config.GetInt(optionNameVerbosity))
				return nil
			},
		},
	}
	c.root.RunE = c.run

	for _, o := range opts {
		o(c)
	}

	if err := c.setHomeDir(); err != nil {
		return nil, err
	}

	c.initGlobalFlags()
	c.setAllFlags(c.root)
	c.initVersionCmd()

	return c, nil
}

func (c *command) Execute(ctx context.Context) (err error) {
	return c.root.ExecuteContext(ctx)
}

// Execute parses command line arguments and runs the selected mode
func Execute(ctx context.Context) (err error) {
	c, err := newCommand()
	if err != nil {
		return err
	}
	return c.Execute(ctx)
}

func (c *command) initGlobalFlags() {
	globalFlags := c.root.PersistentFlags()
	globalFlags.StringVar(&c.cfgFile, "config", c.cfgFile, "config file (default is $HOME/.rainforest.yaml)")
	globalFlags.Int(optionNameVerbosity, 1, "log verbosity level 0=error, 1=info, 2=notice, 3=debug")
}

func (c *command) setAllFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(optionNameMessage, "m", "", "hash this text")
	cmd.Flags().StringP(optionNameHex, "x", "", "hash these hex encoded bytes, or use them as the scan blob")
	cmd.Flags().BoolP(optionNameCheck, "c", false, "validity check mode")
	cmd.Flags().BoolP(optionNameBench, "b", false, "benchmark mode")
	cmd.Flags().Bool(optionNameScan, false, "nonce scan mode")
	cmd.Flags().String(optionNameDifficulty, "1000", "scan target difficulty, decimal or 0x prefixed hex")
	cmd.Flags().Int(optionNameNonceOffset, 39, "scan nonce offset within the blob")
	cmd.Flags().Uint32(optionNameStart, 0, "scan first nonce")
	cmd.Flags().Uint64(optionNameCount, 0, "scan nonce count, 0 for the whole nonce space")
	cmd.Flags().Int64P(optionNameSeed, "s", -1, "32-bit seed, negative for unseeded hashing")
	cmd.Flags().IntP(optionNameThreads, "t", 1, "worker threads for bench and scan modes")
	cmd.Flags().Duration(optionNameDuration, 0, "stop bench or scan after this duration, 0 runs until interrupted")
	cmd.Flags().Duration(optionNameInterval, defaultInterval, "bench report interval")
	cmd.Flags().Bool(optionNameJSON, false, "JSON output")
	_ = cmd.Flags().MarkHidden(optionNameInterval)
}

func (c *command) initConfig() (err error) {
	config := viper.New()
	configName := ".rainforest"
	if c.cfgFile != "" {
		config.SetConfigFile(c.cfgFile)
	} else {
		config.AddConfigPath(c.homeDir)
		config.SetConfigName(configName)
	}

	config.SetEnvPrefix("rainforest")
	config.AutomaticEnv()
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if c.homeDir != "" && c.cfgFile == "" {
		c.cfgFile = filepath.Join(c.homeDir, configName+".yaml")
	}

	if err := config.ReadInConfig(); err != nil {
		var e viper.ConfigFileNotFoundError
		if !errors.As(err, &e) {
			return err
		}
	}
	c.config = config
	return nil
}

func (c *command) setHomeDir() (err error) {
	if c.homeDir != "" {
		return
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	c.homeDir = dir
	return nil
}

// seed returns the configured seed, ok is false when hashing is unseeded
func (c *command) seed() (seed uint32, ok bool, err error) {
	v := c.config.GetInt64(optionNameSeed)
	if v < 0 {
		return 0, false, nil
	}
	if v > int64(^uint32(0)) {
		return 0, false, fmt.Errorf("seed %d does not fit in 32 bits", v)
	}
	return uint32(v), true, nil
}

func (c *command) run(cmd *cobra.Command, args []string) error {
	switch {
	case c.config.GetBool(optionNameCheck):
		return c.runCheck(cmd)
	case c.config.GetBool(optionNameBench):
		return c.runBench(cmd)
	case c.config.GetBool(optionNameScan):
		return c.runScan(cmd)
	case c.config.GetString(optionNameMessage) != "" || c.config.GetString(optionNameHex) != "":
		return c.runMessage(cmd)
	default:
		_ = cmd.Usage()
		return errNoMode
	}
}

func (c *command) printJSON(cmd *cobra.Command, val any) error {
	buf, err := utils.MarshalJSON(val)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(buf))
	return err
}
