// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"

	"hibf-hashing/internal/cliutil"
)

// Common holds CLI fields shared by every subcommand.
type Common struct {
	Threads  int
	Strict   bool
	Quiet    bool
	Version  bool
	Examples bool
}

// sliceValue appends each value to a *[]string (repeatable flags).
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return fmt.Sprint(*s.dst)
}
func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// StringSlice returns a repeatable flag.Value appending to dst.
func StringSlice(dst *[]string) flag.Value { return &sliceValue{dst: dst} }

// Register wires shared flags onto fs. withSeq adds the sequence-decoding
// flag for subcommands that read sequences.
func Register(fs *flag.FlagSet, c *Common, withSeq bool) {
	fs.IntVar(&c.Threads, "threads", 0, "worker threads (0=all CPUs) [0]")
	if withSeq {
		fs.BoolVar(&c.Strict, "strict", false, "reject non-ACGT symbols instead of reading them as A [false]")
	}
	fs.BoolVar(&c.Quiet, "quiet", false, "suppress non-essential warnings [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&c.Examples, "examples", false, "print quickstart examples and exit [false]")
}

// ParseWithPositionals splits argv, parses the flags and returns the
// expanded positionals.
func ParseWithPositionals(fs *flag.FlagSet, argv []string) ([]string, error) {
	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	posArgs = append(posArgs, fs.Args()...)
	if len(posArgs) == 0 {
		return nil, nil
	}
	return cliutil.ExpandPositionals(posArgs)
}

// Validate applies shared CLI invariants.
func Validate(c *Common) error {
	if c.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	return nil
}
