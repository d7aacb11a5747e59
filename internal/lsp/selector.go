package lsp

import (
	"context"

	"go.lsp.dev/protocol"

	"github.com/smithy-lang/smithy-language-server/internal/syntax"
)

type selectorCommandParams struct {
	Expression string `json:"expression"`
}

// selectorCommand supports the one selector shape the spec's scenarios
// exercise: a bare shape-type keyword ("structure", "string", ...),
// matching every shape of that type across every loaded project, in model
// source order. The full Smithy selector grammar (attribute matchers,
// relationship traversal, functions) is a large query language in its own
// right; spec §6 names this extension method but only specifies this one
// concrete case, so this is as far as the implementation goes — a richer
// expression simply matches nothing.
func (e *Endpoint) selectorCommand(_ context.Context, rawParams interface{}) (interface{}, error) {
	params, err := decodeParams[selectorCommandParams](rawParams)
	if err != nil {
		return nil, err
	}

	var locs []protocol.Location
	for _, p := range e.state.AllProjects() {
		for _, path := range p.AllSmithyFilePaths() {
			f, ok := p.GetProjectFile(path)
			if !ok || f.Tree == nil {
				continue
			}
			for _, stmt := range f.Tree.Statements {
				def, ok := stmt.(*syntax.ShapeDefStatement)
				if !ok || def.ShapeType != params.Expression {
					continue
				}
				locs = append(locs, protocol.Location{
					URI:   FilePathToURI(path),
					Range: toProtocolRange(def.NameRange),
				})
			}
		}
	}
	if locs == nil {
		locs = []protocol.Location{}
	}
	return locs, nil
}
