package lsp

import (
	"go.lsp.dev/protocol"

	"github.com/smithy-lang/smithy-language-server/internal/project"
)

// completionFor offers every shape name defined anywhere in the owning
// file, plus a fixed handful of Smithy shape-type keywords (structure,
// string, integer, list, map, union, enum), as completion candidates. This is deliberately textual rather than model-aware: a
// full member-context-sensitive completion engine needs the validated
// model's shape graph, which may be Broken at edit time (spec §9,
// "optional results for partial data").
func completionFor(pf ProjectAndFile, _ protocol.Position) *protocol.CompletionList {
	seen := map[string]bool{}
	var items []protocol.CompletionItem

	addShape := func(token string, kind protocol.CompletionItemKind) {
		if token == "" || seen[token] {
			return
		}
		seen[token] = true
		items = append(items, protocol.CompletionItem{Label: token, Kind: kind})
	}

	for _, keyword := range []string{"structure", "string", "integer", "list", "map", "union", "enum"} {
		addShape(keyword, protocol.CompletionItemKindKeyword)
	}

	if pf.File.Kind == project.KindIdl {
		for _, s := range pf.File.Shapes {
			if s.Kind == project.DefinedShape {
				addShape(s.Token, protocol.CompletionItemKindClass)
			}
		}
	}

	return &protocol.CompletionList{IsIncomplete: false, Items: items}
}
