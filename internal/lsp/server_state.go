package lsp

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/smithy-lang/smithy-language-server/internal/assembler"
	"github.com/smithy-lang/smithy-language-server/internal/project"
)

// ProjectAndFile pairs a Project with the specific ProjectFile a URI
// resolved to inside it.
type ProjectAndFile struct {
	Project *project.Project
	File    *project.File
}

// ServerState holds every open Project, the set of managed (client-open)
// document URIs, the known workspace folders, and routes URIs to the
// Project that owns them, per spec §4.6. All mutation is expected to
// happen on the LSP main loop; ServerState itself does not spawn
// goroutines other than through its LifecycleTasks.
type ServerState struct {
	mu sync.RWMutex

	// projects is keyed by Project.Root(): the absolute project root for
	// Normal/Empty projects, or for Detached ones the filesystem path of
	// their single file (the path Open was given).
	projects map[string]*project.Project

	workspacePaths map[string]bool
	managedURIs    map[string]bool
	patterns       map[string]*FilePatterns // keyed by project root

	LifecycleTasks *FileTasks

	asm      assembler.Assembler
	resolver project.DependencyResolver
	logger   *zap.Logger
}

// NewServerState creates an empty ServerState.
func NewServerState(asm assembler.Assembler, resolver project.DependencyResolver, logger *zap.Logger) *ServerState {
	return &ServerState{
		projects:       map[string]*project.Project{},
		workspacePaths: map[string]bool{},
		managedURIs:    map[string]bool{},
		patterns:       map[string]*FilePatterns{},
		LifecycleTasks: NewFileTasks(),
		asm:            asm,
		resolver:       resolver,
		logger:         logger,
	}
}

// FindProjectAndFile does a linear scan of every project asking whether it
// owns path (a filesystem path, see URIToFilePath). The scan ranges over
// the projects map, so its order is not defined, but per spec's routing-uniqueness
// property the result does not depend on that order as long as no two
// Normal projects claim the same path.
func (s *ServerState) FindProjectAndFile(path string) (ProjectAndFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if f, ok := p.GetProjectFile(path); ok {
			return ProjectAndFile{Project: p, File: f}, true
		}
	}
	return ProjectAndFile{}, false
}

// Open marks path as managed. If a Project already owns it, the text is
// applied as a full-document edit; otherwise a fresh Detached project is
// created to host it. path is the filesystem path the client's URI
// resolves to (see URIToFilePath) — every ServerState method keys files by
// filesystem path, matching how project.Project's own Normal-project file
// map is keyed, so a Detached project's single file must use the same key
// space or it would never be recognized once its covering project loads.
func (s *ServerState) Open(ctx context.Context, path, text string) {
	s.mu.Lock()
	s.managedURIs[path] = true
	s.mu.Unlock()

	if pf, ok := s.FindProjectAndFile(path); ok {
		pf.File.ApplyEdit(false, pf.File.Doc.FullRange().Start, pf.File.Doc.FullRange().End, text)
		return
	}

	p := project.LoadDetached(ctx, path, text, s.asm, s.logger)
	s.mu.Lock()
	s.projects[p.Root()] = p
	s.mu.Unlock()
}

// Close unmarks path. If the owning project is Detached, its tasks are
// cancelled and it is dropped entirely.
func (s *ServerState) Close(path string) {
	s.mu.Lock()
	delete(s.managedURIs, path)
	s.mu.Unlock()

	if pf, ok := s.FindProjectAndFile(path); ok && pf.Project.Type() == project.Detached {
		s.LifecycleTasks.Cancel(path)
		s.mu.Lock()
		delete(s.projects, pf.Project.Root())
		s.mu.Unlock()
	}
}

// IsManaged reports whether the client currently has path open.
func (s *ServerState) IsManaged(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.managedURIs[path]
}

// ManagedText returns the in-memory text of a managed document, if known.
func (s *ServerState) ManagedText(path string) (string, bool) {
	if pf, ok := s.FindProjectAndFile(path); ok {
		return pf.File.Doc.Text(), true
	}
	return "", false
}

// TryInitProject cancels every in-flight task, (re)loads the Project at
// root, and resolves Detached files per spec §4.6: any managed URI now
// covered by the reloaded project drops its Detached stand-in; any URI
// that the reload no longer covers, but is still managed, becomes a fresh
// Detached project seeded with its last-known buffered text.
func (s *ServerState) TryInitProject(ctx context.Context, root string) *project.Project {
	s.LifecycleTasks.CancelAll()

	s.mu.RLock()
	prevDetachedText := map[string]string{}
	for uri, p := range s.projects {
		if p.Type() == project.Detached {
			if doc, ok := p.GetDocument(uri); ok {
				prevDetachedText[uri] = doc.Text()
			}
		}
	}
	// The project at root is about to be replaced wholesale. Any of its
	// managed files that the reload drops need the same Detached rescue a
	// previously-Detached file gets, so snapshot its currently-covered
	// managed URIs too.
	if old, ok := s.projects[root]; ok {
		for _, path := range old.AllSmithyFilePaths() {
			if _, seen := prevDetachedText[path]; seen || !s.managedURIs[path] {
				continue
			}
			if doc, ok := old.GetDocument(path); ok {
				prevDetachedText[path] = doc.Text()
			}
		}
	}
	s.mu.RUnlock()

	p := project.Load(ctx, root, s.asm, s.resolver, s.logger)

	s.mu.Lock()
	s.projects[root] = p
	s.patterns[root] = NewFilePatterns(root, sourceDirsOf(p))
	for _, newPath := range p.AllSmithyFilePaths() {
		if _, wasDetached := prevDetachedText[newPath]; wasDetached {
			delete(s.projects, newPath)
		}
	}
	s.mu.Unlock()

	for uri, text := range prevDetachedText {
		if !p.OwnsPath(uri) && s.IsManaged(uri) {
			detached := project.LoadDetached(ctx, uri, text, s.asm, s.logger)
			s.mu.Lock()
			s.projects[uri] = detached
			s.mu.Unlock()
		}
	}
	return p
}

// ApplyFileEvents delegates matching to WorkspaceChanges, then for each
// affected project either re-inits it (its build files changed) or calls
// update_files (smithy sources created/deleted); newly discovered project
// roots are initialized too.
func (s *ServerState) ApplyFileEvents(ctx context.Context, events []FileEvent) {
	s.mu.RLock()
	var pp []projectPatterns
	var wsPaths []string
	for root, pat := range s.patterns {
		pp = append(pp, projectPatterns{Root: root, Patterns: pat})
	}
	for wp := range s.workspacePaths {
		wsPaths = append(wsPaths, wp)
	}
	s.mu.RUnlock()

	wc := ComputeWorkspaceChanges(events, pp, wsPaths)

	for root, change := range wc.ByProject {
		if len(change.ChangedBuildFiles) > 0 {
			s.TryInitProject(ctx, root)
			continue
		}
		s.mu.RLock()
		p := s.projects[root]
		s.mu.RUnlock()
		if p != nil {
			_ = p.UpdateFiles(change.CreatedSmithyFiles, change.DeletedSmithyFiles)
		}
	}
	for _, root := range wc.NewProjectRoots {
		s.TryInitProject(ctx, root)
	}
}

// LoadWorkspace scans folder for project roots and initializes each.
func (s *ServerState) LoadWorkspace(ctx context.Context, folder string) error {
	s.mu.Lock()
	s.workspacePaths[folder] = true
	s.mu.Unlock()

	roots, err := ScanForProjectRoots(folder)
	if err != nil {
		return err
	}
	if len(roots) == 0 {
		roots = []string{folder}
	}
	for _, root := range roots {
		s.TryInitProject(ctx, root)
	}
	return nil
}

// RemoveWorkspace drops every project whose root is under folder.
func (s *ServerState) RemoveWorkspace(folder string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workspacePaths, folder)
	for root := range s.projects {
		if root == folder || hasPathPrefix(root, folder) {
			delete(s.projects, root)
			delete(s.patterns, root)
		}
	}
}

// AllProjects returns a snapshot slice of every currently loaded project,
// used by smithy/serverStatus and smithy/selectorCommand.
func (s *ServerState) AllProjects() []*project.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*project.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	return out
}

func sourceDirsOf(p *project.Project) []string {
	cfg := p.Config()
	if cfg == nil {
		return nil
	}
	return append(append([]string{}, cfg.Sources...), cfg.Imports...)
}

func hasPathPrefix(path, prefix string) bool {
	if len(path) <= len(prefix) {
		return false
	}
	return path[:len(prefix)] == prefix && (path[len(prefix)] == '/' || path[len(prefix)] == '\\')
}
