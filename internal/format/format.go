// Package format defines the interface to the external Smithy IDL
// formatter. Formatting logic itself is explicitly out of scope for this
// server (see spec §1): the core only needs to hand a document's text to
// something that formats it and get text back.
package format

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Formatter formats one Smithy IDL document's text, returning the
// formatted text. A nil error with unchanged output is a legitimate
// "already formatted" response.
type Formatter interface {
	Format(ctx context.Context, path string, text string) (string, error)
}

// ExecFormatter shells out to an external formatter binary, writing the
// unformatted text to its stdin and reading the formatted result from its
// stdout. This is the deployment shape the teacher's CLI command wrapping
// follows for out-of-process collaborators: a thin adapter with no
// knowledge of the subprocess's internals beyond its exit code and
// stdio contract.
type ExecFormatter struct {
	// Path to the formatter binary, e.g. a `smithy format` wrapper script.
	Path string
	Args []string
}

// NewExecFormatter builds an ExecFormatter invoking path with args, with
// the document's path appended for formatters that want it for
// diagnostics even though input comes over stdin.
func NewExecFormatter(path string, args ...string) *ExecFormatter {
	return &ExecFormatter{Path: path, Args: args}
}

// Format implements Formatter.
func (f *ExecFormatter) Format(ctx context.Context, path string, text string) (string, error) {
	cmd := exec.CommandContext(ctx, f.Path, append(append([]string{}, f.Args...), path)...)
	cmd.Stdin = bytes.NewBufferString(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running formatter %s: %w: %s", f.Path, err, stderr.String())
	}
	return stdout.String(), nil
}

// Noop returns the input text unchanged. Used when no external formatter
// has been configured, so a formatting request degrades to a no-op rather
// than an error (consistent with the core's "return empty/unchanged result
// rather than propagate an error" policy).
type Noop struct{}

// Format implements Formatter.
func (Noop) Format(_ context.Context, _ string, text string) (string, error) {
	return text, nil
}
