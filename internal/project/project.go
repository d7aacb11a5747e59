// Package project implements the project and document model: build
// configuration loading, per-file parse state, and the validated semantic
// model lifecycle described in spec §4.3-§4.5.
package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/smithy-lang/smithy-language-server/internal/assembler"
	"github.com/smithy-lang/smithy-language-server/internal/document"
)

// Type tags which of the three Project lifecycles a Project is in.
type Type int

const (
	Normal Type = iota
	Detached
	Empty
)

func (t Type) String() string {
	switch t {
	case Normal:
		return "Normal"
	case Detached:
		return "Detached"
	case Empty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// Project holds a set of ProjectFiles sharing one validated semantic model.
// All mutation happens on the LSP main loop (see internal/lsp); the RWMutex
// here exists only so worker tasks reading a Project snapshot for
// completion/hover/definition never race with a main-loop mutation, per the
// concurrency model in spec §5 ("read-only handlers execute on worker tasks
// reading a snapshot of the Project").
type Project struct {
	mu sync.RWMutex

	root string
	typ  Type
	cfg  *Config

	files map[string]*File
	model *assembler.ValidatedModel
	jars  []string

	loadErrors *multierror.Error

	asm      assembler.Assembler
	resolver DependencyResolver
	logger   *zap.Logger
}

// Load reads config at root, discovers and parses every source file, and
// produces an initial validated model. It never returns an error: per
// spec §4.4/§7, a project whose config files fail to parse becomes a
// "broken" project that retains whatever sources were discoverable, rather
// than failing the load. Call LoadErrors to inspect what went wrong.
func Load(ctx context.Context, root string, asm assembler.Assembler, resolver DependencyResolver, logger *zap.Logger) *Project {
	cfg := LoadConfig(root)
	p := &Project{root: root, cfg: cfg, asm: asm, resolver: resolver, logger: logger, files: map[string]*File{}}

	for _, msg := range cfg.Errors {
		p.loadErrors = multierror.Append(p.loadErrors, fmt.Errorf("%s", msg))
	}

	if !cfg.HasAnyConfig() {
		p.typ = Empty
		return p
	}
	p.typ = Normal

	paths, err := discoverSourcePaths(root, cfg)
	if err != nil {
		p.loadErrors = multierror.Append(p.loadErrors, err)
	}
	for _, path := range paths {
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			p.loadErrors = multierror.Append(p.loadErrors, fmt.Errorf("reading %s: %w", path, rerr))
			continue
		}
		p.files[path] = fileForPath(path, string(data))
	}

	jars, rerr := resolver.Resolve(ctx, cfg)
	if rerr != nil {
		p.loadErrors = multierror.Append(p.loadErrors, fmt.Errorf("resolving dependencies: %w", rerr))
	}
	p.jars = jars

	p.revalidate(ctx, false)
	return p
}

// LoadDetached builds a single-file Project whose root equals uri, for a
// file the user opened that belongs to no known project (spec §4.5).
func LoadDetached(ctx context.Context, uri, text string, asm assembler.Assembler, logger *zap.Logger) *Project {
	p := &Project{
		root:     uri,
		typ:      Detached,
		asm:      asm,
		resolver: NoopResolver{},
		logger:   logger,
		files:    map[string]*File{uri: fileForPath(uri, text)},
	}
	p.revalidate(ctx, false)
	return p
}

// Root returns the project's absolute root path, or for a Detached project
// the URI of its single file.
func (p *Project) Root() string { return p.root }

// Type returns whether this Project is Normal, Detached, or Empty.
func (p *Project) Type() Type {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.typ
}

// Config returns the project's resolved configuration. Nil for Detached
// projects.
func (p *Project) Config() *Config { return p.cfg }

// Model returns the most recently validated semantic model.
func (p *Project) Model() *assembler.ValidatedModel {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.model
}

// LoadErrors returns the accumulated non-fatal errors from the most recent
// load or update, or nil if there were none.
func (p *Project) LoadErrors() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.loadErrors == nil {
		return nil
	}
	return p.loadErrors.ErrorOrNil()
}

// GetProjectFile returns the ProjectFile at path, if this Project owns it.
func (p *Project) GetProjectFile(path string) (*File, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f, ok := p.files[path]
	return f, ok
}

// OwnsPath reports whether path is one of this Project's files.
func (p *Project) OwnsPath(path string) bool {
	_, ok := p.GetProjectFile(path)
	return ok
}

// GetDocument returns the Document for path, if this Project owns it.
func (p *Project) GetDocument(path string) (*document.Document, bool) {
	f, ok := p.GetProjectFile(path)
	if !ok {
		return nil, false
	}
	return f.Doc, true
}

// AllSmithyFilePaths returns the absolute paths of every IdlFile this
// Project owns, sorted for deterministic iteration.
func (p *Project) AllSmithyFilePaths() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	paths := make([]string, 0, len(p.files))
	for path, f := range p.files {
		if f.Kind == KindIdl {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// UpdateFiles adds ProjectFiles for created paths and removes deleted ones,
// reflecting on-disk changes without revalidating (spec §4.5).
func (p *Project) UpdateFiles(created, deleted []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs error
	for _, path := range deleted {
		delete(p.files, path)
	}
	for _, path := range created {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("reading %s: %w", path, err))
			continue
		}
		p.files[path] = fileForPath(path, string(data))
	}
	return errs
}

// UpdateModelWithoutValidating re-feeds every file's current text to the
// assembler in fast, validation-skipping mode. The uri parameter names the
// file that triggered the update; the core's assembler interface always
// reprocesses the whole project, since a Smithy model's shapes resolve
// against each other, so the uri is not currently used to scope the work
// but is retained so a future assembler that can do incremental reparse
// has it available.
func (p *Project) UpdateModelWithoutValidating(ctx context.Context, _ string) error {
	return p.revalidate(ctx, true)
}

// UpdateAndValidateModel runs a full assemble-and-validate pass.
func (p *Project) UpdateAndValidateModel(ctx context.Context, _ string) error {
	return p.revalidate(ctx, false)
}

func (p *Project) revalidate(ctx context.Context, skipValidation bool) error {
	p.mu.Lock()
	sources := make([]assembler.SourceFile, 0, len(p.files))
	for path, f := range p.files {
		sources = append(sources, assembler.SourceFile{Path: path, Text: f.Doc.Text()})
	}
	jars := p.jars
	asm := p.asm
	p.mu.Unlock()

	model, err := asm.Assemble(ctx, assembler.Input{Sources: sources, DependencyJars: jars, SkipValidation: skipValidation})

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.loadErrors = multierror.Append(p.loadErrors, fmt.Errorf("assembling model: %w", err))
		if p.model == nil {
			p.model = &assembler.ValidatedModel{Broken: true}
		}
		return err
	}
	p.model = model
	return nil
}

func fileForPath(path, text string) *File {
	if strings.HasSuffix(path, ".smithy") {
		return NewIdlFile(path, text)
	}
	return NewBuildFile(path, text, BuildFileKindForPath(path))
}

// discoverSourcePaths walks a Config's sources and imports (relative to
// root) collecting every .smithy and .json file. An empty Sources list
// falls back to the conventional "model" directory, matching the Smithy
// build tool's own default when smithy-build.json doesn't set `sources`.
func discoverSourcePaths(root string, cfg *Config) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	var errs error

	candidates := append(append([]string{}, cfg.Sources...), cfg.Imports...)
	if len(candidates) == 0 {
		candidates = []string{"model"}
	}

	for _, rel := range candidates {
		abs := filepath.Join(root, rel)
		info, err := os.Stat(abs)
		if err != nil {
			if !os.IsNotExist(err) {
				errs = multierror.Append(errs, err)
			}
			continue
		}
		if info.IsDir() {
			werr := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if isModelFile(path) && !seen[path] {
					seen[path] = true
					out = append(out, path)
				}
				return nil
			})
			if werr != nil {
				errs = multierror.Append(errs, werr)
			}
		} else if isModelFile(abs) && !seen[abs] {
			seen[abs] = true
			out = append(out, abs)
		}
	}
	return out, errs
}

func isModelFile(path string) bool {
	return strings.HasSuffix(path, ".smithy") || strings.HasSuffix(path, ".json")
}
