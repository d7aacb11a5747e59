package lsp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/smithy-lang/smithy-language-server/internal/assembler"
	"github.com/smithy-lang/smithy-language-server/internal/format"
	"github.com/smithy-lang/smithy-language-server/internal/project"
)

func newTestEndpoint() *Endpoint {
	return NewEndpoint(assembler.Stub{}, project.NoopResolver{}, format.Noop{}, zap.NewNop())
}

func TestDidOpenCreatesDetachedProjectAndSchedulesUpdate(t *testing.T) {
	e := newTestEndpoint()
	uri := "file:///tmp/a.smithy"
	path := URIToFilePath(uri)

	err := e.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: protocol.URI(uri), Text: "namespace demo\n\nstructure Foo {}\n"},
	})
	require.NoError(t, err)

	waitForTasksIdle(t, e.state.LifecycleTasks)

	pf, ok := e.state.FindProjectAndFile(path)
	require.True(t, ok)
	assert.Equal(t, project.Detached, pf.Project.Type())
	require.NotNil(t, pf.Project.Model())
}

func TestDidCloseCancelsScheduledTaskAndUnmanages(t *testing.T) {
	e := newTestEndpoint()
	uri := "file:///tmp/a.smithy"
	path := URIToFilePath(uri)

	require.NoError(t, e.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: protocol.URI(uri), Text: "namespace demo\n\nstructure Foo {}\n"},
	}))

	require.NoError(t, e.DidClose(context.Background(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.URI(uri)},
	}))

	assert.False(t, e.state.IsManaged(path))
	_, ok := e.state.FindProjectAndFile(path)
	assert.False(t, ok)
}

func TestDidChangeOnUnknownDocumentDoesNotPanic(t *testing.T) {
	e := newTestEndpoint()
	err := e.DidChange(context.Background(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: protocol.URI("file:///tmp/never-opened.smithy")},
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: "namespace demo\n"}},
	})
	assert.NoError(t, err)
}

func TestDeclarationAliasesDefinition(t *testing.T) {
	e := newTestEndpoint()
	uri := "file:///tmp/a.smithy"
	require.NoError(t, e.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: protocol.URI(uri), Text: "namespace demo\n\nstructure Foo {}\n"},
	}))
	waitForTasksIdle(t, e.state.LifecycleTasks)

	defLocs, err := e.Definition(context.Background(), &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: protocol.URI(uri)},
			Position:     protocol.Position{Line: 2, Character: 10},
		},
	})
	require.NoError(t, err)

	declLocs, err := e.Declaration(context.Background(), &protocol.DeclarationParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: protocol.URI(uri)},
			Position:     protocol.Position{Line: 2, Character: 10},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, defLocs, declLocs)
}

func TestCodeActionReturnsEmptyNotError(t *testing.T) {
	e := newTestEndpoint()
	actions, err := e.CodeAction(context.Background(), &protocol.CodeActionParams{})
	assert.NoError(t, err)
	assert.Nil(t, actions)
}

func TestFormattingUsesConfiguredFormatter(t *testing.T) {
	e := NewEndpoint(assembler.Stub{}, project.NoopResolver{}, stubFormatter{suffix: "// formatted\n"}, zap.NewNop())
	uri := "file:///tmp/a.smithy"
	require.NoError(t, e.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: protocol.URI(uri), Text: "namespace demo\n"},
	}))
	waitForTasksIdle(t, e.state.LifecycleTasks)

	edits, err := e.Formatting(context.Background(), &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.URI(uri)},
	})
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Contains(t, edits[0].NewText, "// formatted")
}

// TestDidSaveOnBuildFileCancelsInFlightDocumentTask exercises spec §4.6's
// reload-cancels-in-flight-work invariant end to end through Endpoint:
// scheduleUpdate and TryInitProject's CancelAll must share one FileTasks
// registry, or a build-file save would never observe the blocked task at
// all and this would hang until the 2s timeout instead of returning fast.
func TestDidSaveOnBuildFileCancelsInFlightDocumentTask(t *testing.T) {
	e := newTestEndpoint()
	dir := t.TempDir()
	writeProject(t, dir, "a.smithy", "namespace com.example\n\nstructure Foo {}\n")
	e.state.TryInitProject(context.Background(), dir)

	aPath := filepath.Join(dir, "model", "a.smithy")
	cancelled := make(chan struct{})
	e.state.LifecycleTasks.Put(context.Background(), aPath, func(taskCtx context.Context) {
		<-taskCtx.Done()
		close(cancelled)
	})

	buildPath := filepath.Join(dir, "smithy-build.json")
	require.NoError(t, e.DidSave(context.Background(), &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: FilePathToURI(buildPath)},
	}))

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight per-document task was not cancelled by the build-file reload")
	}
}

type stubFormatter struct{ suffix string }

func (s stubFormatter) Format(_ context.Context, _ string, text string) (string, error) {
	return text + s.suffix, nil
}

func waitForTasksIdle(t *testing.T, ft *FileTasks) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		ft.WaitAll()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tasks did not settle in time")
	}
}
