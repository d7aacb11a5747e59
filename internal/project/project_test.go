package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smithy-lang/smithy-language-server/internal/assembler"
)

func TestLoadEmptyProjectWhenNoConfig(t *testing.T) {
	dir := t.TempDir()
	p := Load(context.Background(), dir, assembler.Stub{}, NoopResolver{}, zap.NewNop())
	assert.Equal(t, Empty, p.Type())
	assert.Empty(t, p.AllSmithyFilePaths())
}

func TestLoadNormalProjectDiscoversSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "smithy-build.json"), []byte(`{"sources": ["model"]}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "model"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model", "a.smithy"),
		[]byte("namespace com.example\n\nstructure Foo {}\n"), 0o644))

	p := Load(context.Background(), dir, assembler.Stub{}, NoopResolver{}, zap.NewNop())
	assert.Equal(t, Normal, p.Type())
	paths := p.AllSmithyFilePaths()
	require.Len(t, paths, 1)

	f, ok := p.GetProjectFile(paths[0])
	require.True(t, ok)
	assert.Equal(t, KindIdl, f.Kind)
	require.NoError(t, p.LoadErrors())
	require.NotNil(t, p.Model())
}

func TestLoadDetachedProject(t *testing.T) {
	p := LoadDetached(context.Background(), "file:///tmp/a.smithy", "namespace demo\n\nstructure Foo {}\n", assembler.Stub{}, zap.NewNop())
	assert.Equal(t, Detached, p.Type())
	assert.Equal(t, "file:///tmp/a.smithy", p.Root())
	doc, ok := p.GetDocument("file:///tmp/a.smithy")
	require.True(t, ok)
	assert.Contains(t, doc.Text(), "structure Foo")
}

func TestUpdateFilesAddsAndRemoves(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "smithy-build.json"), []byte(`{"sources": ["model"]}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "model"), 0o755))
	aPath := filepath.Join(dir, "model", "a.smithy")
	require.NoError(t, os.WriteFile(aPath, []byte("namespace com.example\n\nstructure Foo {}\n"), 0o644))

	p := Load(context.Background(), dir, assembler.Stub{}, NoopResolver{}, zap.NewNop())
	require.Len(t, p.AllSmithyFilePaths(), 1)

	bPath := filepath.Join(dir, "model", "b.smithy")
	require.NoError(t, os.WriteFile(bPath, []byte("namespace com.example\n\nstructure Bar {}\n"), 0o644))
	require.NoError(t, p.UpdateFiles([]string{bPath}, nil))
	assert.Len(t, p.AllSmithyFilePaths(), 2)

	require.NoError(t, p.UpdateFiles(nil, []string{aPath}))
	remaining := p.AllSmithyFilePaths()
	require.Len(t, remaining, 1)
	assert.Equal(t, bPath, remaining[0])
}

func TestUpdateAndValidateModel(t *testing.T) {
	p := LoadDetached(context.Background(), "file:///tmp/a.smithy", "namespace demo\n\nstructure Foo {}\n", assembler.Stub{}, zap.NewNop())
	err := p.UpdateAndValidateModel(context.Background(), "file:///tmp/a.smithy")
	assert.NoError(t, err)
	require.NotNil(t, p.Model())
}
