package lsp

import (
	"fmt"

	"go.lsp.dev/protocol"

	"github.com/smithy-lang/smithy-language-server/internal/assembler"
	"github.com/smithy-lang/smithy-language-server/internal/document"
	"github.com/smithy-lang/smithy-language-server/internal/project"
)

// severityRank orders assembler.Severity for the "≥ minimum" comparison in
// spec §4.9; NOTE is weakest, ERROR strongest.
func severityRank(s assembler.Severity) int {
	switch s {
	case assembler.SeverityNote:
		return 0
	case assembler.SeverityWarning:
		return 1
	case assembler.SeverityDanger:
		return 2
	case assembler.SeverityError:
		return 3
	default:
		return 0
	}
}

func toLSPSeverity(s assembler.Severity) protocol.DiagnosticSeverity {
	switch s {
	case assembler.SeverityError:
		return protocol.DiagnosticSeverityError
	case assembler.SeverityDanger:
		return protocol.DiagnosticSeverityError
	case assembler.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityHint
	}
}

// BuildDiagnostics converts a file's parse errors and the validated
// model's validation events targeting it into LSP diagnostics, dropping
// events below minSeverity. Events that target a shape or member present
// in f.Shapes get a precise underline on that token's range; otherwise the
// diagnostic falls back to the event's raw line/column.
func BuildDiagnostics(f *project.File, model *assembler.ValidatedModel, minSeverity assembler.Severity) []protocol.Diagnostic {
	var diags []protocol.Diagnostic

	if f.Tree != nil {
		for _, d := range f.Tree.Diagnostics {
			diags = append(diags, protocol.Diagnostic{
				Range:    toProtocolRange(d.Range),
				Severity: protocol.DiagnosticSeverityError,
				Message:  d.Message,
				Source:   "smithy-syntax",
			})
		}
	}

	if model == nil {
		return diags
	}

	minRank := severityRank(minSeverity)
	for _, ev := range model.Events {
		if severityRank(ev.Severity) < minRank {
			continue
		}
		if !eventTargetsFile(f, ev) {
			continue
		}
		diags = append(diags, protocol.Diagnostic{
			Range:    rangeForEvent(f, ev),
			Severity: toLSPSeverity(ev.Severity),
			Message:  fmt.Sprintf("%s: %s", ev.ID, ev.Message),
			Source:   "smithy-model",
		})
	}
	return diags
}

// eventTargetsFile reports whether a validation event's source location
// names this file. The assembler is expected to report paths matching how
// the file was registered with it (see project.revalidate).
func eventTargetsFile(f *project.File, ev assembler.ValidationEvent) bool {
	return ev.SourceLocation.Path == "" || ev.SourceLocation.Path == f.Path
}

// rangeForEvent prefers a DocumentShape whose token matches the event's
// shape id, for a tighter underline than the raw line/column the assembler
// reports.
func rangeForEvent(f *project.File, ev assembler.ValidationEvent) protocol.Range {
	shapeName := ev.ShapeID
	if idx := lastIndexAny(shapeName, "#$"); idx >= 0 {
		shapeName = shapeName[idx+1:]
	}
	for _, shape := range f.Shapes {
		if shape.Token == shapeName {
			return toProtocolRange(shape.Range)
		}
	}
	line := ev.SourceLocation.Line - 1
	if line < 0 {
		line = 0
	}
	col := ev.SourceLocation.Column - 1
	if col < 0 {
		col = 0
	}
	pos := protocol.Position{Line: uint32(line), Character: uint32(col)}
	return protocol.Range{Start: pos, End: pos}
}

func lastIndexAny(s, chars string) int {
	for i := len(s) - 1; i >= 0; i-- {
		for _, c := range chars {
			if rune(s[i]) == c {
				return i
			}
		}
	}
	return -1
}

func toProtocolRange(r document.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(r.Start.Line), Character: uint32(r.Start.Character)},
		End:   protocol.Position{Line: uint32(r.End.Line), Character: uint32(r.End.Character)},
	}
}
