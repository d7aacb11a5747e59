package lsp

import (
	"go.lsp.dev/protocol"

	"github.com/smithy-lang/smithy-language-server/internal/project"
)

// definitionFor finds the token at pos and, if it is a Targeted reference
// or a DefinedShape name, searches every loaded project's files for
// DefinedShape entries with the same simple name. A member name at pos
// yields no result, and members are never returned as locations. Matching on simple name
// rather than a fully namespace-qualified shape id is a textual
// approximation: full resolution needs the assembler's shape graph, which
// this server treats as an opaque, potentially Broken, external result.
func definitionFor(state *ServerState, pf ProjectAndFile, pos protocol.Position) []protocol.Location {
	if pf.File.Kind != project.KindIdl {
		return nil
	}
	docPos := toDocPosition(pos)

	var target string
	for _, s := range pf.File.Shapes {
		if rangeContains(s.Range, docPos) && (s.Kind == project.Targeted || s.Kind == project.DefinedShape) {
			target = simpleShapeName(s.Token)
			break
		}
	}
	if target == "" {
		return nil
	}

	var locs []protocol.Location
	for _, p := range state.AllProjects() {
		for _, path := range p.AllSmithyFilePaths() {
			f, ok := p.GetProjectFile(path)
			if !ok {
				continue
			}
			for _, s := range f.Shapes {
				if s.Kind == project.DefinedShape && simpleShapeName(s.Token) == target {
					locs = append(locs, protocol.Location{
						URI:   FilePathToURI(path),
						Range: toProtocolRange(s.Range),
					})
				}
			}
		}
	}
	return locs
}

func simpleShapeName(token string) string {
	if idx := lastIndexAny(token, "#$"); idx >= 0 {
		return token[idx+1:]
	}
	return token
}
