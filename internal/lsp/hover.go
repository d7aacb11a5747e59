package lsp

import (
	"fmt"

	"go.lsp.dev/protocol"

	"github.com/smithy-lang/smithy-language-server/internal/document"
	"github.com/smithy-lang/smithy-language-server/internal/project"
	"github.com/smithy-lang/smithy-language-server/internal/syntax"
)

// hoverFor finds the DocumentShape token at pos and reports what kind of
// reference it is. Without a resolved semantic model to pull documentation
// traits from, this is necessarily shallow; it still gives a definitive
// answer to "what is this identifier" which is most of what hover is used
// for while editing (spec §9's "optional results for partial data").
func hoverFor(pf ProjectAndFile, pos protocol.Position) *protocol.Hover {
	if pf.File.Kind != project.KindIdl {
		return nil
	}
	docPos := toDocPosition(pos)

	for _, s := range pf.File.Shapes {
		if !rangeContains(s.Range, docPos) {
			continue
		}
		var desc string
		switch s.Kind {
		case project.DefinedShape:
			desc = fmt.Sprintf("**%s**\n\nshape defined in `%s`", s.Token, pf.File.Path)
			if def, ok := s.Statement.(*syntax.ShapeDefStatement); ok {
				desc = fmt.Sprintf("**%s %s**\n\ndefined in `%s`", def.ShapeType, s.Token, pf.File.Path)
			}
		case project.DefinedMember:
			desc = fmt.Sprintf("**%s** (member)", s.Token)
		case project.Targeted:
			desc = fmt.Sprintf("reference to `%s`", s.Token)
		case project.Elided:
			desc = fmt.Sprintf("`$%s` — elided member inherited from a mixin", s.Token)
		}
		r := toProtocolRange(s.Range)
		return &protocol.Hover{
			Contents: protocol.MarkupContent{Kind: protocol.Markdown, Value: desc},
			Range:    &r,
		}
	}
	return nil
}

func toDocPosition(pos protocol.Position) document.Position {
	return document.Position{Line: int(pos.Line), Character: int(pos.Character)}
}

// rangeContains reports whether pos falls within r, counting both ends as
// inside, so a cursor placed just after a token still matches it.
func rangeContains(r document.Range, pos document.Position) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character > r.End.Character {
		return false
	}
	return true
}
