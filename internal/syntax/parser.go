package syntax

import (
	"strconv"
	"strings"

	"github.com/smithy-lang/smithy-language-server/internal/document"
)

// simpleShapeTypes are shape keywords with no member list.
var simpleShapeTypes = map[string]bool{
	"string": true, "blob": true, "boolean": true, "byte": true,
	"short": true, "integer": true, "long": true, "float": true,
	"double": true, "bigInteger": true, "bigDecimal": true,
	"timestamp": true, "document": true,
}

// aggregateShapeTypes are shape keywords that take a `{ ... }` member list.
var aggregateShapeTypes = map[string]bool{
	"structure": true, "union": true, "list": true, "map": true,
	"set": true, "service": true, "resource": true, "operation": true,
	"enum": true, "intEnum": true,
}

// Parse parses a complete Smithy IDL source file. Parsing never fails: any
// input the grammar can't make sense of is recorded as a ParseErrorStatement
// or an ErrNode and parsing resumes from there.
func Parse(source string) *Tree {
	p := &parser{
		lex: NewLexer(source),
		doc: document.New(source),
		src: source,
	}
	p.advance()
	return p.parseFile()
}

type parser struct {
	lex  *Lexer
	doc  *document.Document
	src  string
	tok  Token
	tree *Tree
}

func (p *parser) advance() {
	for {
		p.tok = p.lex.Next()
		if p.tok.Kind != TokLineComment {
			return
		}
	}
}

func (p *parser) rangeOf(start, end int) document.Range {
	return document.Range{Start: p.doc.OffsetToPosition(start), End: p.doc.OffsetToPosition(end)}
}

func (p *parser) base(start, end int) baseStatement {
	return baseStatement{Span: p.rangeOf(start, end), ByteStart: start, ByteEnd: end}
}

func (p *parser) baseNode(start, end int) baseNode {
	return baseNode{Span: p.rangeOf(start, end)}
}

func (p *parser) errAt(start int, msg string) *ParseErrorStatement {
	end := p.tok.End
	if end <= start {
		end = start + 1
	}
	return &ParseErrorStatement{baseStatement: p.base(start, end), Message: msg}
}

func (p *parser) diag(start, end int, msg string) {
	p.tree.Diagnostics = append(p.tree.Diagnostics, Diagnostic{
		Range:    p.rangeOf(start, end),
		Message:  msg,
		Severity: SeverityError,
	})
}

// synchronize skips tokens until a likely statement boundary: an opening or
// closing brace, or the start of a new top-level keyword, or EOF. This is what
// keeps one malformed statement from swallowing the rest of the file.
func (p *parser) synchronize() {
	for p.tok.Kind != TokEOF {
		if p.tok.Kind == TokPunct && (p.tok.Text == "}" || p.tok.Text == "{") {
			return
		}
		if p.tok.Kind == TokIdent && isTopLevelKeyword(p.tok.Text) {
			return
		}
		p.advance()
	}
}

func isTopLevelKeyword(s string) bool {
	if s == "metadata" || s == "apply" || s == "use" || s == "namespace" {
		return true
	}
	return simpleShapeTypes[s] || aggregateShapeTypes[s]
}

func (p *parser) parseFile() *Tree {
	p.tree = &Tree{}
	p.parsePreamble()
	for p.tok.Kind != TokEOF {
		before := p.tok.Start
		stmt := p.parseTopLevelStatement()
		if stmt != nil {
			p.tree.Statements = append(p.tree.Statements, stmt)
		}
		if p.tok.Start == before {
			// Guard against a statement parser that made no progress.
			p.advance()
		}
	}
	return p.tree
}

func (p *parser) parsePreamble() {
	for (p.tok.Kind == TokPunct && p.tok.Text == "$") ||
		(p.tok.Kind == TokIdent && strings.HasPrefix(p.tok.Text, "$")) {
		ctrl := p.parseControl()
		p.tree.Statements = append(p.tree.Statements, ctrl)
		if ctrl.Key == "version" {
			p.tree.Preamble.Version = ctrl
		}
	}

	if p.tok.Kind == TokIdent && p.tok.Text == "namespace" {
		start := p.tok.Start
		p.advance()
		name := p.expectIdent("namespace name")
		p.tree.Preamble.Namespace = &NamespaceDecl{Name: name, Range: p.rangeOf(start, p.tok.Start)}
	} else if p.tok.Kind != TokEOF {
		p.diag(p.tok.Start, p.tok.End, "expected a namespace statement")
	}

	for p.tok.Kind == TokIdent && p.tok.Text == "use" {
		start := p.tok.Start
		p.advance()
		id := p.expectIdent("import shape or namespace id")
		use := &UseStatement{baseStatement: p.base(start, p.tok.Start), ImportID: id}
		p.tree.Statements = append(p.tree.Statements, use)
		p.tree.Preamble.Uses = append(p.tree.Preamble.Uses, use)
	}
}

func (p *parser) parseControl() *ControlStatement {
	start := p.tok.Start
	var key string
	if p.tok.Kind == TokIdent {
		// The lexer reads `$version` as a single identifier token.
		key = strings.TrimPrefix(p.tok.Text, "$")
		p.advance()
	} else {
		p.advance() // consume '$'
		key = p.expectIdent("control statement key")
	}
	p.expectPunct(":")
	value := p.parseValue()
	return &ControlStatement{baseStatement: p.base(start, p.tok.Start), Key: key, Value: value}
}

func (p *parser) parseTopLevelStatement() Statement {
	traits := p.parseLeadingTraits()

	if p.tok.Kind != TokIdent {
		stmt := p.errAt(p.tok.Start, "expected a shape, metadata, or apply statement")
		p.synchronize()
		return stmt
	}

	switch p.tok.Text {
	case "metadata":
		return p.parseMetadata()
	case "apply":
		return p.parseApply()
	default:
		return p.parseShapeDef(traits)
	}
}

func (p *parser) parseLeadingTraits() []*TraitApplicationStatement {
	var traits []*TraitApplicationStatement
	for p.tok.Kind == TokPunct && p.tok.Text == "@" {
		traits = append(traits, p.parseTrait())
	}
	return traits
}

func (p *parser) parseTrait() *TraitApplicationStatement {
	start := p.tok.Start
	p.advance() // '@'
	idStart := p.tok.Start
	id := p.expectIdent("trait name")
	var value Node
	if p.tok.Kind == TokPunct && p.tok.Text == "(" {
		value = p.parseValue()
	}
	return &TraitApplicationStatement{
		baseStatement: p.base(start, p.tok.Start),
		TraitID:       id,
		TraitIDRange:  p.rangeOf(idStart, idStart+len(id)),
		Value:         value,
	}
}

func (p *parser) parseMetadata() Statement {
	start := p.tok.Start
	p.advance() // 'metadata'
	key := p.expectString("metadata key")
	p.expectPunct("=")
	value := p.parseValue()
	return &MetadataDefStatement{baseStatement: p.base(start, p.tok.Start), Key: key, Value: value}
}

func (p *parser) parseApply() Statement {
	start := p.tok.Start
	p.advance() // 'apply'
	target := p.expectIdent("apply target shape id")
	if p.tok.Kind != TokPunct || p.tok.Text != "@" {
		stmt := p.errAt(p.tok.Start, "expected a trait application after apply target")
		p.synchronize()
		return stmt
	}
	trait := p.parseTrait()
	trait.AppliedTo = target
	trait.Span = p.rangeOf(start, p.tok.Start)
	trait.ByteStart, trait.ByteEnd = start, p.tok.Start
	return trait
}

func (p *parser) parseShapeDef(traits []*TraitApplicationStatement) Statement {
	start := p.tok.Start
	if traits == nil {
		start = p.tok.Start
	} else {
		start = traits[0].ByteStart
	}

	shapeType := p.tok.Text
	known := simpleShapeTypes[shapeType] || aggregateShapeTypes[shapeType]
	p.advance()

	name := p.expectIdent("shape name")
	def := &ShapeDefStatement{ShapeType: shapeType, Name: name, Traits: traits}

	if !known {
		p.diag(start, p.tok.Start, "unrecognized shape type: "+shapeType)
	}

	if name == "" {
		// No usable shape name; don't guess at a member list that likely
		// belongs to the next statement. Resume at the next recognizable
		// top-level keyword instead.
		p.synchronize()
		def.baseStatement = p.base(start, p.tok.Start)
		return def
	}

	for {
		if p.tok.Kind == TokIdent && p.tok.Text == "for" {
			fstart := p.tok.Start
			p.advance()
			resource := p.expectIdent("resource shape id")
			def.ForResource = &ForResourceStatement{baseStatement: p.base(fstart, p.tok.Start), ResourceID: resource}
			continue
		}
		if p.tok.Kind == TokIdent && p.tok.Text == "with" {
			def.Mixins = p.parseMixins()
			continue
		}
		break
	}

	if p.tok.Kind == TokPunct && p.tok.Text == "{" {
		def.Members = p.parseMemberList()
	}

	def.baseStatement = p.base(start, p.tok.Start)
	return def
}

func (p *parser) parseMixins() *MixinsStatement {
	start := p.tok.Start
	p.advance() // 'with'
	p.expectPunct("[")
	var names []string
	for p.tok.Kind != TokPunct || p.tok.Text != "]" {
		if p.tok.Kind == TokEOF {
			break
		}
		if p.tok.Kind == TokIdent {
			names = append(names, p.tok.Text)
			p.advance()
		} else if p.tok.Kind == TokPunct && p.tok.Text == "," {
			p.advance()
		} else {
			p.advance()
		}
	}
	if p.tok.Kind == TokPunct && p.tok.Text == "]" {
		p.advance()
	}
	return &MixinsStatement{baseStatement: p.base(start, p.tok.Start), Names: names}
}

func (p *parser) parseMemberList() []Statement {
	p.advance() // '{'
	var members []Statement
	for {
		if p.tok.Kind == TokEOF {
			break
		}
		if p.tok.Kind == TokPunct && p.tok.Text == "}" {
			p.advance()
			break
		}
		if p.tok.Kind == TokPunct && p.tok.Text == "," {
			p.advance()
			continue
		}
		before := p.tok.Start
		members = append(members, p.parseMember())
		if p.tok.Start == before {
			p.advance()
		}
	}
	return members
}

func (p *parser) parseMember() Statement {
	traits := p.parseLeadingTraits()
	start := p.tok.Start
	if len(traits) > 0 {
		start = traits[0].ByteStart
	}

	switch {
	case p.tok.Kind == TokIdent && strings.HasPrefix(p.tok.Text, "$"):
		name := strings.TrimPrefix(p.tok.Text, "$")
		p.advance()
		return &MemberDefStatement{
			baseStatement: p.base(start, p.tok.Start),
			Name:          name,
			TargetForm:    TargetElided,
			Traits:        traits,
		}

	case p.tok.Kind == TokIdent:
		name := p.tok.Text
		nameStart := p.tok.Start
		p.advance()
		if p.tok.Kind == TokPunct && p.tok.Text == ":" {
			p.advance()
			targetStart := p.tok.Start
			target := p.expectIdent("member target shape id")
			return &MemberDefStatement{
				baseStatement: p.base(start, p.tok.Start),
				Name:          name,
				NameRange:     p.rangeOf(nameStart, nameStart+len(name)),
				TargetForm:    TargetExplicit,
				Target:        target,
				TargetRange:   p.rangeOf(targetStart, targetStart+len(target)),
				Traits:        traits,
			}
		}
		if p.tok.Kind == TokPunct && p.tok.Text == "=" {
			p.advance()
			value := p.parseValue()
			return &NodeMemberDefStatement{baseStatement: p.base(start, p.tok.Start), Key: name, Value: value}
		}
		// Bare enum/intEnum member name with no explicit value.
		return &NodeMemberDefStatement{baseStatement: p.base(start, p.tok.Start), Key: name}

	case p.tok.Kind == TokString:
		key := unquote(p.tok.Text)
		p.advance()
		p.expectPunct(":")
		value := p.parseValue()
		return &NodeMemberDefStatement{baseStatement: p.base(start, p.tok.Start), Key: key, Value: value}

	default:
		stmt := p.errAt(p.tok.Start, "expected a member definition")
		p.advance()
		return stmt
	}
}

// parseValue parses one Node-tree value: object, array, string, number,
// boolean, null, or shape-id-like bare word (used for trait arguments that
// reference another shape).
func (p *parser) parseValue() Node {
	switch {
	case p.tok.Kind == TokPunct && p.tok.Text == "(":
		return p.parseParenValue()
	case p.tok.Kind == TokPunct && p.tok.Text == "{":
		return p.parseObj()
	case p.tok.Kind == TokPunct && p.tok.Text == "[":
		return p.parseArr()
	case p.tok.Kind == TokString:
		return p.parseStr()
	case p.tok.Kind == TokTextBlock:
		return p.parseStr()
	case p.tok.Kind == TokNumber:
		return p.parseNum()
	case p.tok.Kind == TokIdent && (p.tok.Text == "true" || p.tok.Text == "false"):
		start := p.tok.Start
		v := p.tok.Text == "true"
		end := p.tok.End
		p.advance()
		return &BoolNode{baseNode: p.baseNode(start, end), Value: v}
	case p.tok.Kind == TokIdent && p.tok.Text == "null":
		start, end := p.tok.Start, p.tok.End
		p.advance()
		return &NullNode{baseNode: p.baseNode(start, end)}
	case p.tok.Kind == TokIdent:
		// A bare shape id, as in a trait argument or enum default value.
		start, end := p.tok.Start, p.tok.End
		text := p.tok.Text
		p.advance()
		return &StrNode{baseNode: p.baseNode(start, end), Value: text, Raw: text}
	default:
		start := p.tok.Start
		msg := "expected a value"
		p.advance()
		return &ErrNode{baseNode: p.baseNode(start, p.tok.Start), Message: msg}
	}
}

// parseParenValue handles a trait's `( ... )` argument list, which is either
// a bare value (shorthand for a single-member trait) or a set of named
// key/value members, represented uniformly as an ObjNode.
func (p *parser) parseParenValue() Node {
	start := p.tok.Start
	p.advance() // '('
	var items []*KvpNode
	for {
		if p.tok.Kind == TokEOF {
			break
		}
		if p.tok.Kind == TokPunct && p.tok.Text == ")" {
			p.advance()
			break
		}
		if p.tok.Kind == TokPunct && p.tok.Text == "," {
			p.advance()
			continue
		}
		if p.tok.Kind == TokIdent {
			keyStart := p.tok.Start
			key := p.tok.Text
			p.advance()
			if p.tok.Kind == TokPunct && p.tok.Text == ":" {
				p.advance()
				value := p.parseValue()
				items = append(items, &KvpNode{
					baseNode: p.baseNode(keyStart, p.tok.Start),
					Key:      &StrNode{baseNode: p.baseNode(keyStart, keyStart+len(key)), Value: key},
					Value:    value,
				})
				continue
			}
			// Shorthand single value, e.g. @length(1) or @pattern("^a$").
			items = append(items, &KvpNode{
				baseNode: p.baseNode(keyStart, p.tok.Start),
				Key:      &StrNode{Value: ""},
				Value:    &StrNode{baseNode: p.baseNode(keyStart, keyStart+len(key)), Value: key, Raw: key},
			})
			continue
		}
		value := p.parseValue()
		items = append(items, &KvpNode{Key: &StrNode{Value: ""}, Value: value})
	}
	kvps := &KvpsNode{baseNode: p.baseNode(start, p.tok.Start), Items: items}
	return &ObjNode{baseNode: p.baseNode(start, p.tok.Start), Pairs: kvps}
}

func (p *parser) parseObj() Node {
	start := p.tok.Start
	p.advance() // '{'
	var items []*KvpNode
	for {
		if p.tok.Kind == TokEOF {
			break
		}
		if p.tok.Kind == TokPunct && p.tok.Text == "}" {
			p.advance()
			break
		}
		if p.tok.Kind == TokPunct && p.tok.Text == "," {
			p.advance()
			continue
		}
		kvStart := p.tok.Start
		var key *StrNode
		if p.tok.Kind == TokString {
			key = p.parseStr()
		} else if p.tok.Kind == TokIdent {
			txt := p.tok.Text
			key = &StrNode{baseNode: p.baseNode(p.tok.Start, p.tok.End), Value: txt, Raw: txt}
			p.advance()
		} else {
			p.advance()
			continue
		}
		p.expectPunct(":")
		value := p.parseValue()
		items = append(items, &KvpNode{baseNode: p.baseNode(kvStart, p.tok.Start), Key: key, Value: value})
	}
	kvps := &KvpsNode{baseNode: p.baseNode(start, p.tok.Start), Items: items}
	return &ObjNode{baseNode: p.baseNode(start, p.tok.Start), Pairs: kvps}
}

func (p *parser) parseArr() Node {
	start := p.tok.Start
	p.advance() // '['
	var items []Node
	for {
		if p.tok.Kind == TokEOF {
			break
		}
		if p.tok.Kind == TokPunct && p.tok.Text == "]" {
			p.advance()
			break
		}
		if p.tok.Kind == TokPunct && p.tok.Text == "," {
			p.advance()
			continue
		}
		items = append(items, p.parseValue())
	}
	return &ArrNode{baseNode: p.baseNode(start, p.tok.Start), Items: items}
}

func (p *parser) parseStr() *StrNode {
	raw := p.tok.Text
	start, end := p.tok.Start, p.tok.End
	p.advance()
	return &StrNode{baseNode: p.baseNode(start, end), Value: unquote(raw), Raw: raw}
}

func (p *parser) parseNum() Node {
	raw := p.tok.Text
	start, end := p.tok.Start, p.tok.End
	p.advance()
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return &ErrNode{baseNode: p.baseNode(start, end), Message: "invalid number literal: " + raw}
	}
	return &NumNode{baseNode: p.baseNode(start, end), Value: f, Raw: raw}
}

func (p *parser) expectIdent(what string) string {
	if p.tok.Kind == TokIdent {
		text := p.tok.Text
		p.advance()
		return text
	}
	p.diag(p.tok.Start, p.tok.End, "expected "+what)
	return ""
}

func (p *parser) expectString(what string) string {
	if p.tok.Kind == TokString || p.tok.Kind == TokTextBlock {
		text := unquote(p.tok.Text)
		p.advance()
		return text
	}
	if p.tok.Kind == TokIdent {
		text := p.tok.Text
		p.advance()
		return text
	}
	p.diag(p.tok.Start, p.tok.End, "expected "+what)
	return ""
}

func (p *parser) expectPunct(s string) {
	if p.tok.Kind == TokPunct && p.tok.Text == s {
		p.advance()
		return
	}
	p.diag(p.tok.Start, p.tok.End, "expected '"+s+"'")
}

// unquote strips surrounding quotes (single `"..."` or triple `"""..."""`)
// and resolves the small set of backslash escapes Smithy strings support.
// Malformed escapes pass through verbatim rather than erroring, matching
// the tolerant posture of the rest of the parser.
func unquote(raw string) string {
	s := raw
	if strings.HasPrefix(s, `"""`) {
		s = strings.TrimPrefix(s, `"""`)
		s = strings.TrimSuffix(s, `"""`)
		return s
	}
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\', '/':
				b.WriteByte(s[i])
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
