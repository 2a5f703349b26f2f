// Package filelist reads the build input: one sequence file per line, each
// becoming one user bin in list order.
package filelist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyEntry is reported (not returned) for blank or whitespace-only lines.
var ErrEmptyEntry = errors.New("empty line or invalid entry in the file list")

// Skipped is a list line that did not name a file.
type Skipped struct {
	Line int
	Err  error
}

func (s Skipped) Error() string { return fmt.Sprintf("line %d: %v", s.Line, s.Err) }

// List is the parsed file list.
type List struct {
	Paths   []string
	Skipped []Skipped
}

// Parse reads entries from r. Relative paths are joined to baseDir when it
// is non-empty. Surrounding whitespace of an entry is trimmed.
func Parse(r io.Reader, baseDir string) (List, error) {
	var out List
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		entry := strings.TrimSpace(sc.Text())
		if entry == "" {
			out.Skipped = append(out.Skipped, Skipped{Line: line, Err: ErrEmptyEntry})
			continue
		}
		out.Paths = append(out.Paths, Resolve(baseDir, entry))
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// Read parses the list at path, resolving relative entries against the
// list's own directory.
func Read(path string) (List, error) {
	f, err := os.Open(path)
	if err != nil {
		return List{}, err
	}
	defer f.Close()
	l, err := Parse(f, filepath.Dir(path))
	if err != nil {
		return l, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Resolve joins a relative entry to baseDir. "-" (stdin) is kept as is.
func Resolve(baseDir, entry string) string {
	if entry == "-" || baseDir == "" || filepath.IsAbs(entry) {
		return entry
	}
	return filepath.Join(baseDir, entry)
}
