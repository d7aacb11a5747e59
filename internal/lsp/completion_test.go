package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.lsp.dev/protocol"

	"github.com/smithy-lang/smithy-language-server/internal/project"
)

func TestCompletionForIncludesShapeKeywordsAndDefinedShapes(t *testing.T) {
	f := project.NewIdlFile("/repo/model/a.smithy", "namespace com.example\n\nstructure Foo {}\n\nstring Bar\n")
	pf := ProjectAndFile{File: f}

	list := completionFor(pf, protocol.Position{})
	labels := map[string]bool{}
	for _, item := range list.Items {
		labels[item.Label] = true
	}
	assert.True(t, labels["structure"], "shape-type keywords should always be offered")
	assert.True(t, labels["Foo"])
	assert.True(t, labels["Bar"])
}

func TestCompletionForDedupesRepeatedTokens(t *testing.T) {
	f := project.NewIdlFile("/repo/model/a.smithy", "namespace com.example\n\nstructure Foo {}\n")
	pf := ProjectAndFile{File: f}

	list := completionFor(pf, protocol.Position{})
	count := 0
	for _, item := range list.Items {
		if item.Label == "structure" {
			count++
		}
	}
	assert.Equal(t, 1, count, "the \"structure\" keyword should not be offered twice even though Foo is a structure")
}
