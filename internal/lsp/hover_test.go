package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/smithy-lang/smithy-language-server/internal/project"
)

func TestHoverForDefinedShapeIncludesShapeType(t *testing.T) {
	f := project.NewIdlFile("/repo/model/a.smithy", "namespace com.example\n\nstructure Foo {}\n")
	pf := ProjectAndFile{File: f}

	var defRange protocol.Range
	for _, s := range f.Shapes {
		if s.Token == "Foo" {
			defRange = toProtocolRange(s.Range)
		}
	}
	pos := protocol.Position{Line: defRange.Start.Line, Character: defRange.Start.Character}

	hover := hoverFor(pf, pos)
	require.NotNil(t, hover)
	assert.Contains(t, hover.Contents.Value, "structure Foo")
}

func TestHoverForOutsideAnyTokenReturnsNil(t *testing.T) {
	f := project.NewIdlFile("/repo/model/a.smithy", "namespace com.example\n\nstructure Foo {}\n")
	pf := ProjectAndFile{File: f}

	hover := hoverFor(pf, protocol.Position{Line: 999, Character: 0})
	assert.Nil(t, hover)
}

func TestHoverForBuildFileReturnsNil(t *testing.T) {
	f := project.NewBuildFile("/repo/smithy-build.json", `{}`, project.BuildKindSmithyBuild)
	pf := ProjectAndFile{File: f}

	assert.Nil(t, hoverFor(pf, protocol.Position{}))
}
