// Package execpipe pipes generated source through an external formatter.
package execpipe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/goaux/stacktrace/v2"
)

// FilePlaceholder in Formatter.Args is replaced by the path of the file being formatted.
const FilePlaceholder = "{file}"

// CheckPath checks if the given executable exists in the system's PATH.
// It returns an error if the executable is not found, or nil if it is.
func CheckPath(executable string) error {
	_, err := stacktrace.Trace2(exec.LookPath(executable))
	return err
}

// Formatter is an external command that reads source on stdin and writes the
// formatted source on stdout, e.g. `prettier --stdin-filepath {file}`.
type Formatter struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args"`
}

// Prettier is the formatter used when none is configured.
var Prettier = Formatter{
	Name: "prettier",
	Args: []string{"--stdin-filepath", FilePlaceholder},
}

func (f Formatter) String() string {
	return strings.Join(append([]string{f.Name}, f.Args...), " ")
}

// Check reports whether the formatter's executable can be found.
func (f Formatter) Check() error {
	return CheckPath(f.Name)
}

// Format runs the formatter with src on stdin and returns what it printed.
//
// The error includes the command name, the underlying error, and the captured
// stderr when the command exits unsuccessfully.
func (f Formatter) Format(ctx context.Context, file string, src []byte) ([]byte, error) {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = strings.ReplaceAll(a, FilePlaceholder, file)
	}

	cmd := exec.CommandContext(ctx, f.Name, args...)
	cmd.Stdin = bytes.NewReader(src)
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := stacktrace.Trace(cmd.Run()); err != nil {
		return nil, fmt.Errorf("error: %s, cause=%w, stderr=%q", f.Name, err, stderr.String())
	}
	return stdout.Bytes(), nil
}
