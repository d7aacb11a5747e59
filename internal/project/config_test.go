package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFilesIsNotError(t *testing.T) {
	dir := t.TempDir()
	cfg := LoadConfig(dir)
	assert.False(t, cfg.FoundBuildFile)
	assert.False(t, cfg.FoundProjectFile)
	assert.Empty(t, cfg.Errors)
	assert.False(t, cfg.HasAnyConfig())
}

func TestLoadConfigMergesBothFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "smithy-build.json"),
		[]byte(`{"sources": ["model"], "outputDirectory": "build"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".smithy-project.json"),
		[]byte(`{"dependencies": [{"name": "dep", "path": "/tmp/dep.jar"}]}`), 0o644))

	cfg := LoadConfig(dir)
	assert.True(t, cfg.HasAnyConfig())
	assert.Equal(t, []string{"model"}, cfg.Sources)
	assert.Equal(t, "build", cfg.OutputDirectory)
	require.Len(t, cfg.Dependencies, 1)
	assert.Equal(t, "dep", cfg.Dependencies[0].Name)
	assert.Empty(t, cfg.Errors)
}

func TestLoadConfigMalformedJSONBecomesError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "smithy-build.json"), []byte(`{not json`), 0o644))

	cfg := LoadConfig(dir)
	assert.True(t, cfg.FoundBuildFile)
	assert.NotEmpty(t, cfg.Errors)
}
