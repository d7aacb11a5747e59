// Package assembler defines the interface to the external Smithy model
// assembler. Building and validating a Smithy semantic model from parsed
// IDL and JSON AST sources is explicitly out of scope for this server (see
// spec §1); this package exists so the rest of the tree has a stable,
// narrow seam to call through, with a stub implementation standing in for
// the real thing the way a production deployment would wire in one backed
// by the actual Smithy build tooling.
package assembler

import "context"

// Severity mirrors the validation event severities the Smithy model
// assembler reports.
type Severity int

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityDanger
	SeverityError
)

// ParseSeverity maps the initializationOptions.diagnostics.minimumSeverity
// wire values onto Severity.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "NOTE":
		return SeverityNote, true
	case "WARNING":
		return SeverityWarning, true
	case "DANGER":
		return SeverityDanger, true
	case "ERROR":
		return SeverityError, true
	default:
		return 0, false
	}
}

// SourceLocation points at a position the assembler attributes a validation
// event to.
type SourceLocation struct {
	Path   string
	Line   int
	Column int
}

// ValidationEvent is one diagnostic produced by assembling or validating a
// model.
type ValidationEvent struct {
	ID             string
	Severity       Severity
	Message        string
	ShapeID        string
	SourceLocation SourceLocation
}

// Model is an opaque handle on the shapes the assembler produced. The core
// never inspects shape internals directly; it only carries shape ids
// forward for selector evaluation and go-to-definition.
type Model struct {
	ShapeIDs []string
}

// ValidatedModel is the result of one assemble/validate pass.
type ValidatedModel struct {
	Model  *Model
	Events []ValidationEvent
	// Broken is set when the assembler could not produce a model at all
	// (as opposed to producing one with validation errors).
	Broken bool
}

// SourceFile is one file fed to the assembler: its absolute path and its
// current, possibly-unsaved, in-memory text.
type SourceFile struct {
	Path string
	Text string
}

// Input is everything the assembler needs for one assemble/validate pass.
type Input struct {
	Sources        []SourceFile
	DependencyJars []string
	// SkipValidation requests a fast parse/shape/trait-only pass, used on
	// every keystroke; the assembler may still run full validation if it
	// has no cheaper mode.
	SkipValidation bool
}

// Assembler builds a ValidatedModel from a set of sources. Implementations
// are expected to be safe for concurrent use; the core treats the
// assembler as a thread-safe black box per the concurrency model.
type Assembler interface {
	Assemble(ctx context.Context, input Input) (*ValidatedModel, error)
}

// Stub is a no-op Assembler: it reports every input as successfully
// assembled with no shapes and no validation events. It stands in for the
// real Smithy model assembler, which this core treats as an external
// dependency behind this interface.
type Stub struct{}

// Assemble implements Assembler.
func (Stub) Assemble(_ context.Context, input Input) (*ValidatedModel, error) {
	model := &Model{ShapeIDs: make([]string, 0, len(input.Sources))}
	return &ValidatedModel{Model: model}, nil
}
