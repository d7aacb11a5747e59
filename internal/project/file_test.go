package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smithy-lang/smithy-language-server/internal/document"
)

func TestExtractDocumentShapesStructure(t *testing.T) {
	src := `namespace com.example

structure Foo {
    @required
    bar: Bar
}
`
	f := NewIdlFile("/tmp/foo.smithy", src)
	require.NotEmpty(t, f.Shapes)

	var defined, targeted, traitTargeted bool
	for _, s := range f.Shapes {
		switch {
		case s.Kind == DefinedShape && s.Token == "Foo":
			defined = true
		case s.Kind == Targeted && s.Token == "Bar":
			targeted = true
		case s.Kind == Targeted && s.Token == "required":
			traitTargeted = true
		}
	}
	assert.True(t, defined, "expected a DefinedShape entry for Foo")
	assert.True(t, targeted, "expected a Targeted entry for Bar")
	assert.True(t, traitTargeted, "expected a Targeted entry for the required trait")
}

func TestExtractDocumentShapesElidedMember(t *testing.T) {
	src := "namespace com.example\n\nstructure Foo with [Mixin] {\n    $inherited\n}\n"
	f := NewIdlFile("/tmp/foo.smithy", src)
	var elided bool
	for _, s := range f.Shapes {
		if s.Kind == Elided && s.Token == "inherited" {
			elided = true
		}
	}
	assert.True(t, elided)
}

func TestApplyEditReparsesFile(t *testing.T) {
	f := NewIdlFile("/tmp/foo.smithy", "namespace com.example\n\nstring A\n")
	require.Len(t, f.Tree.Statements, 1)

	f.ApplyEdit(false, document.Position{}, document.Position{}, "namespace com.example\n\nstring A\nstring B\n")
	require.Len(t, f.Tree.Statements, 2)
}

func TestBuildFileKindForPath(t *testing.T) {
	assert.Equal(t, BuildKindSmithyBuild, BuildFileKindForPath("/a/b/smithy-build.json"))
	assert.Equal(t, BuildKindSmithyProject, BuildFileKindForPath("/a/b/.smithy-project.json"))
	assert.Equal(t, BuildKindOther, BuildFileKindForPath("/a/b/model.json"))
}

func TestNewBuildFileParsesNode(t *testing.T) {
	f := NewBuildFile("/tmp/smithy-build.json", `{"version": "1.0"}`, BuildKindSmithyBuild)
	require.NotNil(t, f.Node)
}
