package lsp

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// FilePatterns are the two glob matchers a project's files are tested
// against when a file-system event arrives: one for its Smithy sources and
// imports, one for its build-config files. Precomputed once per project
// load, per spec §4.7, rather than re-derived on every event.
type FilePatterns struct {
	Root        string
	SourceGlobs []string
	BuildGlobs  []string
}

// buildFileNames are the two recognized build-config file names, also
// used by the client-side dynamic watcher registrations ("WatchSmithyBuildFiles").
var buildFileNames = []string{"smithy-build.json", ".smithy-project.json"}

// NewFilePatterns derives a FilePatterns from a project's resolved source
// and import directories.
func NewFilePatterns(root string, sourceDirs []string) *FilePatterns {
	fp := &FilePatterns{Root: root}
	for _, dir := range sourceDirs {
		fp.SourceGlobs = append(fp.SourceGlobs,
			filepath.ToSlash(filepath.Join(root, dir, "**/*.smithy")),
			filepath.ToSlash(filepath.Join(root, dir, "**/*.json")),
		)
	}
	for _, name := range buildFileNames {
		fp.BuildGlobs = append(fp.BuildGlobs, filepath.ToSlash(filepath.Join(root, name)))
	}
	return fp
}

// MatchesSource reports whether path matches this project's Smithy source
// or import globs.
func (fp *FilePatterns) MatchesSource(path string) bool {
	return matchAny(fp.SourceGlobs, path)
}

// MatchesBuildFile reports whether path matches this project's build-config
// globs.
func (fp *FilePatterns) MatchesBuildFile(path string) bool {
	return matchAny(fp.BuildGlobs, path)
}

func matchAny(globs []string, path string) bool {
	slashed := filepath.ToSlash(path)
	for _, g := range globs {
		if ok, err := doublestar.Match(g, slashed); err == nil && ok {
			return true
		}
	}
	return false
}

// RecursiveBuildFileGlob matches a build-config file anywhere beneath root,
// used to recognize a newly created project root per WorkspaceChanges rule 3.
func RecursiveBuildFileGlob(root string) []string {
	globs := make([]string, 0, len(buildFileNames))
	for _, name := range buildFileNames {
		globs = append(globs, filepath.ToSlash(filepath.Join(root, "**", name)))
	}
	return globs
}

// ScanForProjectRoots walks folder recursively and returns the directory of
// every smithy-build.json or .smithy-project.json it finds. Directories
// named "build", "node_modules", and ".git" are skipped as a practical
// concession against scanning compiled-model output trees — neither build
// file is ever emitted there.
//
// A large workspace can contain many independent project trees side by
// side, so each top-level entry of folder is walked on its own goroutine
// via errgroup, rather than a single serial filepath.WalkDir over the whole
// workspace.
func ScanForProjectRoots(folder string) ([]string, error) {
	var mu sync.Mutex
	seen := map[string]bool{}
	var roots []string
	record := func(dir string) {
		mu.Lock()
		defer mu.Unlock()
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, name := range buildFileNames {
			if e.Name() == name {
				record(folder)
			}
		}
	}

	var g errgroup.Group
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		switch e.Name() {
		case "build", "node_modules", ".git":
			continue
		}
		subdir := filepath.Join(folder, e.Name())
		g.Go(func() error {
			return walkForBuildFiles(subdir, record)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return roots, nil
}

func walkForBuildFiles(root string, record func(dir string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case "build", "node_modules", ".git":
				return filepath.SkipDir
			}
			return nil
		}
		for _, name := range buildFileNames {
			if d.Name() == name {
				record(filepath.Dir(path))
			}
		}
		return nil
	})
}
