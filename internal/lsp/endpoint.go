package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"runtime/debug"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/smithy-lang/smithy-language-server/internal/assembler"
	"github.com/smithy-lang/smithy-language-server/internal/format"
	"github.com/smithy-lang/smithy-language-server/internal/project"
)

// Endpoint implements go.lsp.dev/protocol.Server: it dispatches inbound
// LSP methods to ServerState and the feature handlers, and publishes
// diagnostics back out, per spec §4.9. It embeds nyi so that any method of
// the (quite large) protocol.Server interface this type doesn't name is
// still implemented, answering with "not implemented: X" rather than
// failing to compile.
type Endpoint struct {
	nyi

	state     *ServerState
	logger    *zap.Logger
	formatter format.Formatter

	client protocol.Client
	opts   ServerOptions
}

// NewEndpoint builds an Endpoint. SetClient must be called once the
// jsonrpc2 connection is established, before any request that needs to
// talk back to the client (progress, diagnostics) arrives.
//
// Per-document update/diagnostics tasks are scheduled on
// ServerState.LifecycleTasks rather than a registry of Endpoint's own, so
// that ServerState.TryInitProject/Close — which cancel in-flight work on
// reload and on close per spec §4.6/§4.8 — cancel the real tasks rather
// than an empty shadow registry.
func NewEndpoint(asm assembler.Assembler, resolver project.DependencyResolver, formatter format.Formatter, logger *zap.Logger) *Endpoint {
	return &Endpoint{
		state:     NewServerState(asm, resolver, logger),
		logger:    logger,
		formatter: formatter,
		opts:      ServerOptions{MinimumSeverity: assembler.SeverityWarning},
	}
}

// SetClient binds the client used for publishDiagnostics/Progress/log
// notifications. Called once after the jsonrpc2 connection is created.
func (e *Endpoint) SetClient(client protocol.Client) { e.client = client }

func (e *Endpoint) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	if params.InitializationOptions != nil {
		if raw, err := json.Marshal(params.InitializationOptions); err == nil {
			e.opts = ParseServerOptions(raw, e.logger)
		}
	}

	for _, folder := range params.WorkspaceFolders {
		path := URIToFilePath(string(folder.URI))
		if err := e.state.LoadWorkspace(ctx, path); err != nil && e.logger != nil {
			e.logger.Warn("failed to load workspace folder", zap.String("path", path), zap.Error(err))
		}
	}
	if len(params.WorkspaceFolders) == 0 && params.RootURI != "" {
		path := URIToFilePath(string(params.RootURI))
		if err := e.state.LoadWorkspace(ctx, path); err != nil && e.logger != nil {
			e.logger.Warn("failed to load root workspace", zap.String("path", path), zap.Error(err))
		}
	}

	version := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}

	return &protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{Name: "smithy-language-server", Version: version},
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save:      &protocol.SaveOptions{IncludeText: false},
			},
			CompletionProvider:         &protocol.CompletionOptions{},
			HoverProvider:              true,
			DefinitionProvider:         true,
			DeclarationProvider:        true,
			DocumentSymbolProvider:     true,
			DocumentFormattingProvider: true,
			CodeActionProvider:         true,
			Workspace: &protocol.ServerCapabilitiesWorkspace{
				WorkspaceFolders: &protocol.ServerCapabilitiesWorkspaceFolders{Supported: true, ChangeNotifications: true},
			},
		},
	}, nil
}

func (e *Endpoint) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	e.registerWatchers(ctx)
	return nil
}

func (e *Endpoint) Shutdown(ctx context.Context) error {
	e.state.LifecycleTasks.CancelAll()
	e.state.LifecycleTasks.WaitAll()
	return nil
}

func (e *Endpoint) Exit(ctx context.Context) error { return nil }

func (e *Endpoint) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	path := URIToFilePath(string(params.TextDocument.URI))
	e.state.Open(ctx, path, params.TextDocument.Text)
	e.scheduleUpdate(ctx, path)
	return nil
}

func (e *Endpoint) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	path := URIToFilePath(string(params.TextDocument.URI))
	pf, ok := e.state.FindProjectAndFile(path)
	if !ok {
		if e.client != nil {
			e.logClient(ctx, fmt.Sprintf("didChange for unknown document %s", path))
		}
		return nil
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	pf.File.ApplyEdit(false, pf.File.Doc.FullRange().Start, pf.File.Doc.FullRange().End, text)

	if !e.opts.OnlyReloadOnSave {
		e.scheduleUpdate(ctx, path)
	}
	return nil
}

func (e *Endpoint) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	path := URIToFilePath(string(params.TextDocument.URI))
	e.state.LifecycleTasks.Cancel(path)
	e.state.Close(path)
	return nil
}

func (e *Endpoint) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	path := URIToFilePath(string(params.TextDocument.URI))
	if project.BuildFileKindForPath(path) != project.BuildKindOther {
		// project.Load reads smithy-build.json/.smithy-project.json through
		// LoadConfig but does not keep them as ProjectFiles, so a save of
		// one is routed by its directory, the project root.
		e.state.TryInitProject(ctx, filepath.Dir(path))
		e.registerWatchers(ctx)
		e.republishAll(ctx)
		return nil
	}
	pf, ok := e.state.FindProjectAndFile(path)
	if !ok {
		return nil
	}
	if pf.File.Kind == project.KindBuild {
		e.state.TryInitProject(ctx, pf.Project.Root())
		e.registerWatchers(ctx)
		e.republishAll(ctx)
		return nil
	}
	e.scheduleUpdate(ctx, path)
	return nil
}

func (e *Endpoint) DidChangeWatchedFiles(ctx context.Context, params *protocol.DidChangeWatchedFilesParams) error {
	events := make([]FileEvent, 0, len(params.Changes))
	for _, c := range params.Changes {
		path := URIToFilePath(string(c.URI))
		var typ FileEventType
		switch c.Type {
		case protocol.FileChangeTypeCreated:
			typ = Created
		case protocol.FileChangeTypeDeleted:
			typ = Deleted
		default:
			typ = Changed
		}
		events = append(events, FileEvent{Path: path, Type: typ})
	}
	e.state.ApplyFileEvents(ctx, events)
	e.registerWatchers(ctx)
	e.republishAll(ctx)
	return nil
}

func (e *Endpoint) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	path := URIToFilePath(string(params.TextDocument.URI))
	pf, ok := e.state.FindProjectAndFile(path)
	if !ok {
		return &protocol.CompletionList{}, nil
	}
	return completionFor(pf, params.Position), nil
}

func (e *Endpoint) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path := URIToFilePath(string(params.TextDocument.URI))
	pf, ok := e.state.FindProjectAndFile(path)
	if !ok {
		return nil, nil
	}
	return hoverFor(pf, params.Position), nil
}

func (e *Endpoint) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	progress := newProgressFromClient(e.client, &params.WorkDoneProgressParams)
	progress.Begin(ctx, "Finding definition")
	defer progress.Done(ctx)

	path := URIToFilePath(string(params.TextDocument.URI))
	pf, ok := e.state.FindProjectAndFile(path)
	if !ok {
		return nil, nil
	}
	return definitionFor(e.state, pf, params.Position), nil
}

// Declaration is advertised alongside Definition in the capabilities this
// server sends (spec §4.9); Smithy has no separate forward-declaration
// concept distinct from a shape's definition site, so it answers with the
// same lookup.
func (e *Endpoint) Declaration(ctx context.Context, params *protocol.DeclarationParams) ([]protocol.Location, error) {
	path := URIToFilePath(string(params.TextDocument.URI))
	pf, ok := e.state.FindProjectAndFile(path)
	if !ok {
		return nil, nil
	}
	return definitionFor(e.state, pf, params.Position), nil
}

// CodeAction is advertised in capabilities but the core has no quick-fix
// catalog to offer; per the "never throws" propagation policy in spec §7,
// an unimplemented-but-advertised capability answers with an empty result
// rather than an error.
func (e *Endpoint) CodeAction(ctx context.Context, params *protocol.CodeActionParams) ([]protocol.CodeAction, error) {
	return nil, nil
}

func (e *Endpoint) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	path := URIToFilePath(string(params.TextDocument.URI))
	pf, ok := e.state.FindProjectAndFile(path)
	if !ok {
		return nil, nil
	}
	return documentSymbolsFor(pf), nil
}

func (e *Endpoint) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	path := URIToFilePath(string(params.TextDocument.URI))
	pf, ok := e.state.FindProjectAndFile(path)
	if !ok {
		return nil, nil
	}
	formatted, err := e.formatter.Format(ctx, pf.File.Path, pf.File.Doc.Text())
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("format failed", zap.String("path", pf.File.Path), zap.Error(err))
		}
		return nil, nil
	}
	full := pf.File.Doc.FullRange()
	return []protocol.TextEdit{{Range: toProtocolRange(full), NewText: formatted}}, nil
}

// Request dispatches the smithy/* extension methods (spec §6); every
// standard LSP method this server handles is routed by go.lsp.dev/protocol
// before Request is ever consulted.
func (e *Endpoint) Request(ctx context.Context, method string, params interface{}) (interface{}, error) {
	switch method {
	case "smithy/jarFileContents":
		return e.jarFileContents(ctx, params)
	case "smithy/selectorCommand":
		return e.selectorCommand(ctx, params)
	case "smithy/serverStatus":
		return e.serverStatus(), nil
	default:
		return e.nyi.Request(ctx, method, params)
	}
}

// scheduleUpdate and everything it calls key work by filesystem path, not
// by the client's original URI — see ServerState.Open.
func (e *Endpoint) scheduleUpdate(ctx context.Context, path string) {
	e.state.LifecycleTasks.Put(ctx, path, func(taskCtx context.Context) {
		pf, ok := e.state.FindProjectAndFile(path)
		if !ok {
			return
		}
		if err := pf.Project.UpdateModelWithoutValidating(taskCtx, path); err != nil && e.logger != nil {
			e.logger.Debug("update without validating failed", zap.String("path", path), zap.Error(err))
		}
		if taskCtx.Err() != nil {
			return
		}
		e.state.LifecycleTasks.PutOrCompose(taskCtx, path, func(publishCtx context.Context) {
			if publishCtx.Err() != nil {
				return
			}
			e.publishDiagnosticsFor(publishCtx, path)
		})
	})
}

func (e *Endpoint) republishAll(ctx context.Context) {
	for _, p := range e.state.AllProjects() {
		for _, path := range p.AllSmithyFilePaths() {
			e.publishDiagnosticsFor(ctx, path)
		}
	}
}

func (e *Endpoint) publishDiagnosticsFor(ctx context.Context, path string) {
	if e.client == nil {
		return
	}
	pf, ok := e.state.FindProjectAndFile(path)
	if !ok {
		return
	}
	diags := BuildDiagnostics(pf.File, pf.Project.Model(), e.opts.MinimumSeverity)
	_ = e.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         FilePathToURI(path),
		Diagnostics: diags,
	})
}

func (e *Endpoint) registerWatchers(ctx context.Context) {
	if e.client == nil {
		return
	}
	_ = e.client.UnregisterCapability(ctx, &protocol.UnregistrationParams{
		Unregisterations: []protocol.Unregistration{
			{ID: "WatchSmithyBuildFiles", Method: "workspace/didChangeWatchedFiles"},
			{ID: "WatchSmithyFiles", Method: "workspace/didChangeWatchedFiles"},
		},
	})
	_ = e.client.RegisterCapability(ctx, &protocol.RegistrationParams{
		Registrations: []protocol.Registration{
			{
				ID:     "WatchSmithyBuildFiles",
				Method: "workspace/didChangeWatchedFiles",
				RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
					Watchers: []protocol.FileSystemWatcher{
						{GlobPattern: "**/smithy-build.json"},
						{GlobPattern: "**/.smithy-project.json"},
					},
				},
			},
			{
				ID:     "WatchSmithyFiles",
				Method: "workspace/didChangeWatchedFiles",
				RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
					Watchers: []protocol.FileSystemWatcher{
						{GlobPattern: "**/*.smithy"},
						{GlobPattern: "**/*.json"},
					},
				},
			},
		},
	})
}

func (e *Endpoint) logClient(ctx context.Context, message string) {
	if e.client == nil {
		return
	}
	_ = e.client.LogMessage(ctx, &protocol.LogMessageParams{Type: protocol.MessageTypeWarning, Message: message})
}
