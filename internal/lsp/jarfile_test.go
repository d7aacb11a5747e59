package lsp

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestJar(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deps.jar")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, contents := range entries {
		ew, err := w.Create(name)
		require.NoError(t, err)
		_, err = ew.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestJarFileContentsReadsEntry(t *testing.T) {
	jarPath := writeTestJar(t, map[string]string{
		"META-INF/smithy/foo.smithy": "namespace demo\n\nstructure Foo {}\n",
	})

	e := newTestEndpoint()
	result, err := e.jarFileContents(context.Background(), map[string]interface{}{
		"textDocument": map[string]interface{}{
			"uri": "smithyjar:" + jarPath + "!/META-INF/smithy/foo.smithy",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "namespace demo\n\nstructure Foo {}\n", result)
}

func TestJarFileContentsMissingEntryErrors(t *testing.T) {
	jarPath := writeTestJar(t, map[string]string{
		"META-INF/smithy/foo.smithy": "namespace demo\n",
	})

	e := newTestEndpoint()
	_, err := e.jarFileContents(context.Background(), map[string]interface{}{
		"textDocument": map[string]interface{}{
			"uri": "smithyjar:" + jarPath + "!/META-INF/smithy/missing.smithy",
		},
	})
	assert.Error(t, err)
}

func TestJarFileContentsRejectsNonJarURI(t *testing.T) {
	e := newTestEndpoint()
	_, err := e.jarFileContents(context.Background(), map[string]interface{}{
		"textDocument": map[string]interface{}{
			"uri": "file:///repo/model/a.smithy",
		},
	})
	assert.Error(t, err)
}
