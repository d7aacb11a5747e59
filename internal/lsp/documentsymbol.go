package lsp

import (
	"go.lsp.dev/protocol"

	"github.com/smithy-lang/smithy-language-server/internal/project"
	"github.com/smithy-lang/smithy-language-server/internal/syntax"
)

// documentSymbolsFor builds one protocol.DocumentSymbol per shape
// definition in the file, with its members nested underneath. The
// protocol.Server interface's DocumentSymbol method returns []interface{}
// because the LSP spec lets a server choose between the older
// SymbolInformation[] shape and the newer hierarchical DocumentSymbol[]
// shape; this server always returns the latter.
func documentSymbolsFor(pf ProjectAndFile) []interface{} {
	if pf.File.Kind != project.KindIdl || pf.File.Tree == nil {
		return nil
	}

	var out []interface{}
	for _, stmt := range pf.File.Tree.Statements {
		def, ok := stmt.(*syntax.ShapeDefStatement)
		if !ok {
			continue
		}
		sym := protocol.DocumentSymbol{
			Name:           def.Name,
			Kind:           protocol.SymbolKindClass,
			Range:          toProtocolRange(def.Range()),
			SelectionRange: toProtocolRange(def.NameRange),
			Detail:         def.ShapeType,
		}
		for _, member := range def.Members {
			m, ok := member.(*syntax.MemberDefStatement)
			if !ok {
				continue
			}
			sym.Children = append(sym.Children, protocol.DocumentSymbol{
				Name:           m.Name,
				Kind:           protocol.SymbolKindField,
				Range:          toProtocolRange(m.Range()),
				SelectionRange: toProtocolRange(m.NameRange),
				Detail:         m.Target,
			})
		}
		out = append(out, sym)
	}
	return out
}
