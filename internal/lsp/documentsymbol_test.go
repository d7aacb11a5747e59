package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/smithy-lang/smithy-language-server/internal/project"
)

func TestDocumentSymbolsForNestsMembersUnderShape(t *testing.T) {
	f := project.NewIdlFile("/repo/model/a.smithy", "namespace com.example\n\nstructure Foo {\n    bar: String\n}\n")
	pf := ProjectAndFile{File: f}

	symbols := documentSymbolsFor(pf)
	require.Len(t, symbols, 1)

	sym, ok := symbols[0].(protocol.DocumentSymbol)
	require.True(t, ok)
	assert.Equal(t, "Foo", sym.Name)
	assert.Equal(t, "structure", sym.Detail)
	require.Len(t, sym.Children, 1)
	assert.Equal(t, "bar", sym.Children[0].Name)
}

func TestDocumentSymbolsForBuildFileReturnsNil(t *testing.T) {
	f := project.NewBuildFile("/repo/smithy-build.json", `{"sources": ["model"]}`, project.BuildKindSmithyBuild)
	pf := ProjectAndFile{File: f}

	assert.Nil(t, documentSymbolsFor(pf))
}
