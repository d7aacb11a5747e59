package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/smithy-lang/smithy-language-server/internal/assembler"
	"github.com/smithy-lang/smithy-language-server/internal/project"
)

func TestBuildDiagnosticsFiltersBelowMinimumSeverity(t *testing.T) {
	f := project.NewIdlFile("/repo/model/a.smithy", "namespace com.example\n\nstructure Foo {}\n")
	model := &assembler.ValidatedModel{
		Events: []assembler.ValidationEvent{
			{ID: "SomeNote", Severity: assembler.SeverityNote, Message: "a note", SourceLocation: assembler.SourceLocation{Path: f.Path}},
			{ID: "SomeWarning", Severity: assembler.SeverityWarning, Message: "a warning", SourceLocation: assembler.SourceLocation{Path: f.Path}},
		},
	}

	diags := BuildDiagnostics(f, model, assembler.SeverityWarning)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "SomeWarning")
}

func TestBuildDiagnosticsDropsEventsForOtherFiles(t *testing.T) {
	f := project.NewIdlFile("/repo/model/a.smithy", "namespace com.example\n\nstructure Foo {}\n")
	model := &assembler.ValidatedModel{
		Events: []assembler.ValidationEvent{
			{ID: "Elsewhere", Severity: assembler.SeverityError, Message: "in another file", SourceLocation: assembler.SourceLocation{Path: "/repo/model/b.smithy"}},
		},
	}

	diags := BuildDiagnostics(f, model, assembler.SeverityNote)
	assert.Empty(t, diags)
}

func TestBuildDiagnosticsUsesShapeRangeWhenAvailable(t *testing.T) {
	f := project.NewIdlFile("/repo/model/a.smithy", "namespace com.example\n\nstructure Foo {}\n")
	require.NotEmpty(t, f.Shapes)

	var fooRange = f.Shapes[0].Range
	for _, s := range f.Shapes {
		if s.Token == "Foo" {
			fooRange = s.Range
		}
	}

	model := &assembler.ValidatedModel{
		Events: []assembler.ValidationEvent{
			{
				ID:             "UnstableTrait",
				Severity:       assembler.SeverityDanger,
				Message:        "shape is unstable",
				ShapeID:        "com.example#Foo",
				SourceLocation: assembler.SourceLocation{Path: f.Path, Line: 1, Column: 1},
			},
		},
	}

	diags := BuildDiagnostics(f, model, assembler.SeverityNote)
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: uint32(fooRange.Start.Line), Character: uint32(fooRange.Start.Character)},
		End:   protocol.Position{Line: uint32(fooRange.End.Line), Character: uint32(fooRange.End.Character)},
	}, diags[0].Range)
	assert.Equal(t, protocol.DiagnosticSeverityError, diags[0].Severity)
}

func TestBuildDiagnosticsIncludesParseErrors(t *testing.T) {
	f := project.NewIdlFile("/repo/model/broken.smithy", "structure {}\n")
	diags := BuildDiagnostics(f, nil, assembler.SeverityNote)
	require.NotEmpty(t, diags, "a malformed shape header should surface at least one syntax diagnostic")
}
