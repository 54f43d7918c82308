package generator

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goaux/iter/bufioscanner"
	"github.com/goaux/stacktrace/v2"
)

// Drift describes a file below the common directory that does not match its
// artifact.
type Drift struct {
	Artifact Artifact
	File     string

	// Missing is true when File does not exist.
	Missing bool

	// Line is the first line (1-based) that differs. Zero when Missing.
	Line int
}

func (d Drift) String() string {
	if d.Missing {
		return fmt.Sprintf("missing: %s", d.File)
	}
	return fmt.Sprintf("stale: %s (line %d)", d.File, d.Line)
}

// Check compares the files below dir with the selected artifacts (all of
// them when only is empty). It returns one Drift per file that is missing or
// differs; an up to date directory yields an empty result.
func Check(dir string, only ...string) ([]Drift, error) {
	list, err := Select(only)
	if err != nil {
		return nil, err
	}
	var drifts []Drift
	for _, a := range list {
		name := filepath.Join(dir, filepath.FromSlash(a.Path))
		got, err := os.ReadFile(name)
		if errors.Is(err, fs.ErrNotExist) {
			drifts = append(drifts, Drift{Artifact: a, File: name, Missing: true})
			continue
		}
		if err != nil {
			return nil, stacktrace.Trace(err)
		}
		if bytes.Equal(got, a.Content) {
			continue
		}
		drifts = append(drifts, Drift{Artifact: a, File: name, Line: firstDiff(a.Content, got)})
	}
	return drifts, nil
}

// firstDiff returns the 1-based number of the first line where got departs
// from want. Differences only in line endings are reported one past the last
// common line.
func firstDiff(want, got []byte) int {
	wantLines := lines(want)
	n := 0
	s := bufioscanner.New(bufio.NewScanner(bytes.NewReader(got)))
	for _, line := range s.Text() {
		if n >= len(wantLines) || line != wantLines[n] {
			return n + 1
		}
		n++
	}
	return n + 1
}

func lines(data []byte) []string {
	var list []string
	s := bufioscanner.New(bufio.NewScanner(bytes.NewReader(data)))
	for _, line := range s.Text() {
		list = append(list, line)
	}
	return list
}
