package project

import "context"

// DependencyResolver resolves a Config's Maven coordinates and pre-declared
// dependency jars into local jar paths the assembler can read. Resolving
// network-hosted artifact dependencies is an explicit non-goal of this core
// (spec §1); the core calls out to a resolver but never implements one.
type DependencyResolver interface {
	Resolve(ctx context.Context, cfg *Config) ([]string, error)
}

// NoopResolver resolves nothing: it returns any pre-declared local
// dependency paths from .smithy-project.json verbatim (those are already
// local, not network-hosted) and ignores Maven coordinates entirely.
type NoopResolver struct{}

// Resolve implements DependencyResolver.
func (NoopResolver) Resolve(_ context.Context, cfg *Config) ([]string, error) {
	if cfg == nil {
		return nil, nil
	}
	paths := make([]string, 0, len(cfg.Dependencies))
	for _, dep := range cfg.Dependencies {
		paths = append(paths, dep.Path)
	}
	return paths, nil
}
