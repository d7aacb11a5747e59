package syntax

import "github.com/smithy-lang/smithy-language-server/internal/document"

// ParseNode parses a single JSON-like value, the grammar used by
// smithy-build.json and .smithy-project.json build files. Unlike Parse,
// there is no preamble and no statement list: the whole input is one value.
//
// Parsing is tolerant in the same way as Parse: trailing garbage and
// malformed values produce diagnostics and ErrNodes rather than a nil
// result.
func ParseNode(source string) (Node, []Diagnostic) {
	p := &parser{
		lex:  NewLexer(source),
		doc:  document.New(source),
		src:  source,
		tree: &Tree{},
	}
	p.advance()
	if p.tok.Kind == TokEOF {
		return &NullNode{}, nil
	}
	value := p.parseValue()
	if p.tok.Kind != TokEOF {
		p.diag(p.tok.Start, p.tok.End, "unexpected trailing content after top-level value")
	}
	return value, p.tree.Diagnostics
}
