package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilePathToURIRoundTrips(t *testing.T) {
	u := FilePathToURI("/repo/model/a.smithy")
	assert.Equal(t, "/repo/model/a.smithy", URIToFilePath(string(u)))
}

func TestIsJarURIAndSplit(t *testing.T) {
	jarURI := "smithyjar:/repo/deps/foo.jar!/META-INF/smithy/foo.smithy"
	assert.True(t, IsJarURI(jarURI))
	assert.False(t, IsJarURI("file:///repo/model/a.smithy"))

	jarPath, entryPath, ok := SplitJarURI(jarURI)
	assert.True(t, ok)
	assert.Equal(t, "/repo/deps/foo.jar", jarPath)
	assert.Equal(t, "META-INF/smithy/foo.smithy", entryPath)
}

func TestSplitJarURIRejectsNonJarURI(t *testing.T) {
	_, _, ok := SplitJarURI("file:///repo/model/a.smithy")
	assert.False(t, ok)
}

func TestNormalizeURILowercasesDriveLetterAndEncodesAt(t *testing.T) {
	got := normalizeURI("file:///C:/Users/dev@work/model.smithy")
	assert.Equal(t, "file:///c%3A/Users/dev%40work/model.smithy", string(got))
}
