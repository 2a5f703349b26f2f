// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
)

// Warnf writes one "WARN: ..." line unless quiet.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// Warner binds Warnf to one destination, in the shape pipeline.Warn expects.
func Warner(dst io.Writer, quiet bool) func(format string, a ...any) {
	return func(format string, a ...any) { Warnf(dst, quiet, format, a...) }
}
