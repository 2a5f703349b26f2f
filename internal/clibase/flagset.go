package clibase

import (
	"flag"
	"io"
)

// NewFlagSet returns a silent ContinueOnError FlagSet; the subcommand prints
// its own usage through HandleParse.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}
