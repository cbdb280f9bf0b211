package cmd

import "io"

type (
	Command = command
	Option  = option
)

var (
	NewCommand     = newCommand
	ErrCheckFailed = errCheckFailed
	ErrNoMode      = errNoMode
)

func WithCfgFile(f string) func(c *Command) {
	return func(c *Command) {
		c.cfgFile = f
	}
}

func WithHomeDir(dir string) func(c *Command) {
	return func(c *Command) {
		c.homeDir = dir
	}
}

func WithArgs(a ...string) func(c *Command) {
	return func(c *Command) {
		c.root.SetArgs(a)
	}
}

func WithOutput(w io.Writer) func(c *Command) {
	return func(c *Command) {
		c.root.SetOut(w)
		c.root.SetErr(w)
	}
}
