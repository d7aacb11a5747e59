package lsp

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileEventType enumerates the three kinds of file-system change the
// client can report via didChangeWatchedFiles.
type FileEventType int

const (
	Created FileEventType = iota
	Changed
	Deleted
)

// FileEvent is one reported file-system change.
type FileEvent struct {
	Path string
	Type FileEventType
}

// ProjectChange accumulates what a single project needs to do in response
// to a batch of FileEvents.
type ProjectChange struct {
	ChangedBuildFiles []string
	CreatedSmithyFiles []string
	DeletedSmithyFiles []string
}

func (pc *ProjectChange) isEmpty() bool {
	return pc == nil || (len(pc.ChangedBuildFiles) == 0 && len(pc.CreatedSmithyFiles) == 0 && len(pc.DeletedSmithyFiles) == 0)
}

// WorkspaceChanges is the transient result of matching a batch of
// FileEvents against every known project's FilePatterns and every
// workspace folder's recursive build-file glob, per spec §4.7.
type WorkspaceChanges struct {
	ByProject       map[string]*ProjectChange // keyed by project root
	NewProjectRoots []string
}

// projectPatterns pairs a project root with its precomputed glob matchers,
// the minimal view WorkspaceChanges needs of a project.
type projectPatterns struct {
	Root     string
	Patterns *FilePatterns
}

// ComputeWorkspaceChanges implements the three-step matching algorithm:
// a smithy-source match wins over a build-file match, which wins over
// treating a Created event as a new project root. Ordering within the
// batch doesn't matter; every accumulation is set-based (callers may see
// duplicate paths added twice harmlessly, since downstream consumers
// re-read files by path rather than counting events).
func ComputeWorkspaceChanges(events []FileEvent, projects []projectPatterns, workspacePaths []string) *WorkspaceChanges {
	wc := &WorkspaceChanges{ByProject: map[string]*ProjectChange{}}

	newRootSeen := map[string]bool{}

	for _, ev := range events {
		if matchSmithySource(ev, projects, wc) {
			continue
		}
		if matchBuildFile(ev, projects, wc) {
			continue
		}
		if ev.Type == Created {
			for _, wsPath := range workspacePaths {
				for _, g := range RecursiveBuildFileGlob(wsPath) {
					if ok, _ := doublestar.Match(g, filepath.ToSlash(ev.Path)); ok {
						dir := filepath.Dir(ev.Path)
						if !newRootSeen[dir] {
							newRootSeen[dir] = true
							wc.NewProjectRoots = append(wc.NewProjectRoots, dir)
						}
					}
				}
			}
		}
	}

	for root, pc := range wc.ByProject {
		if pc.isEmpty() {
			delete(wc.ByProject, root)
		}
	}
	return wc
}

func matchSmithySource(ev FileEvent, projects []projectPatterns, wc *WorkspaceChanges) bool {
	if !strings.HasSuffix(ev.Path, ".smithy") {
		return false
	}
	matched := false
	for _, p := range projects {
		if !p.Patterns.MatchesSource(ev.Path) {
			continue
		}
		matched = true
		pc := wc.projectChange(p.Root)
		switch ev.Type {
		case Created:
			pc.CreatedSmithyFiles = append(pc.CreatedSmithyFiles, ev.Path)
		case Deleted:
			pc.DeletedSmithyFiles = append(pc.DeletedSmithyFiles, ev.Path)
		case Changed:
			// Content changes arrive via text-document sync, not here.
		}
	}
	return matched
}

func matchBuildFile(ev FileEvent, projects []projectPatterns, wc *WorkspaceChanges) bool {
	matched := false
	for _, p := range projects {
		if !p.Patterns.MatchesBuildFile(ev.Path) {
			continue
		}
		matched = true
		pc := wc.projectChange(p.Root)
		pc.ChangedBuildFiles = append(pc.ChangedBuildFiles, ev.Path)
	}
	return matched
}

func (wc *WorkspaceChanges) projectChange(root string) *ProjectChange {
	pc, ok := wc.ByProject[root]
	if !ok {
		pc = &ProjectChange{}
		wc.ByProject[root] = pc
	}
	return pc
}
