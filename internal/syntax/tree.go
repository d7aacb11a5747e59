package syntax

import "github.com/smithy-lang/smithy-language-server/internal/document"

// StatementKind tags the variant of a Statement.
type StatementKind int

const (
	KindShapeDef StatementKind = iota
	KindMemberDef
	KindTraitApplication
	KindUse
	KindMixins
	KindForResource
	KindNodeMemberDef
	KindMetadataDef
	KindControl
	KindParseError
)

func (k StatementKind) String() string {
	switch k {
	case KindShapeDef:
		return "ShapeDef"
	case KindMemberDef:
		return "MemberDef"
	case KindTraitApplication:
		return "TraitApplication"
	case KindUse:
		return "Use"
	case KindMixins:
		return "Mixins"
	case KindForResource:
		return "ForResource"
	case KindNodeMemberDef:
		return "NodeMemberDef"
	case KindMetadataDef:
		return "MetadataDef"
	case KindControl:
		return "Control"
	case KindParseError:
		return "ParseError"
	default:
		return "Unknown"
	}
}

// Statement is any top-level or nested syntax statement. Concrete types are
// ShapeDefStatement, MemberDefStatement, TraitApplicationStatement,
// UseStatement, MixinsStatement, ForResourceStatement,
// NodeMemberDefStatement, MetadataDefStatement, ControlStatement, and
// ParseErrorStatement.
//
// This mirrors the go/ast style of a narrow interface implemented by many
// concrete node types, rather than one flat struct with a discriminant
// field: callers type-switch on the concrete type the way protocompile's
// ast.Node consumers do.
type Statement interface {
	statementVariant()
	Kind() StatementKind
	Range() document.Range
}

type baseStatement struct {
	Span             document.Range
	ByteStart, ByteEnd int
}

func (b baseStatement) Range() document.Range { return b.Span }
func (baseStatement) statementVariant()       {}

// ShapeDefStatement declares a shape: `structure Foo { ... }`,
// `list Foo { member: Bar }`, `string Foo`, `service Foo { ... }`, etc.
type ShapeDefStatement struct {
	baseStatement
	ShapeType   string // "structure", "union", "list", "map", "set", "service", "resource", "operation", "enum", "intEnum", or a simple-type keyword
	Name        string
	NameRange   document.Range
	Mixins      *MixinsStatement      // nil if no `with [...]` clause
	ForResource *ForResourceStatement // nil if no `for Resource` clause
	Traits      []*TraitApplicationStatement
	Members     []Statement // MemberDefStatement or NodeMemberDefStatement children
}

func (ShapeDefStatement) Kind() StatementKind { return KindShapeDef }

// MemberTargetForm records how a member's target shape was spelled.
type MemberTargetForm int

const (
	// TargetExplicit is `name: Target`.
	TargetExplicit MemberTargetForm = iota
	// TargetElided is `$name`, inheriting the target from a mixin.
	TargetElided
	// TargetMixinInlined is a member introduced purely by mixin
	// application, with no corresponding source token of its own.
	TargetMixinInlined
)

// MemberDefStatement is a single member of an aggregate shape.
type MemberDefStatement struct {
	baseStatement
	Name        string
	NameRange   document.Range
	TargetForm  MemberTargetForm
	Target      string // empty when TargetForm == TargetMixinInlined
	TargetRange document.Range
	Traits      []*TraitApplicationStatement
}

func (MemberDefStatement) Kind() StatementKind { return KindMemberDef }

// TraitApplicationStatement is a `@traitName(...)` or bare `@traitName`
// applied to the following shape or member.
type TraitApplicationStatement struct {
	baseStatement
	TraitID      string
	TraitIDRange document.Range
	Value        Node   // nil for a bare trait with no argument list
	AppliedTo    string // shape id this trait targets, set only when parsed from a top-level `apply` statement
}

func (TraitApplicationStatement) Kind() StatementKind { return KindTraitApplication }

// UseStatement is a `use namespace#shapeOrNamespace` import.
type UseStatement struct {
	baseStatement
	ImportID string
}

func (UseStatement) Kind() StatementKind { return KindUse }

// MixinsStatement is the `with [Mixin1, Mixin2]` clause on a shape.
type MixinsStatement struct {
	baseStatement
	Names []string
}

func (MixinsStatement) Kind() StatementKind { return KindMixins }

// ForResourceStatement is the `for ResourceShape` clause on a resource
// lifecycle operation or a structure bound to a resource.
type ForResourceStatement struct {
	baseStatement
	ResourceID string
}

func (ForResourceStatement) Kind() StatementKind { return KindForResource }

// NodeMemberDefStatement is a keyed entry in a shape body that is not a
// `name: Target` member: a bare or `NAME = value` enum member, or a
// `"key": value` entry with a quoted key.
type NodeMemberDefStatement struct {
	baseStatement
	Key   string
	Value Node
}

func (NodeMemberDefStatement) Kind() StatementKind { return KindNodeMemberDef }

// MetadataDefStatement is a top-level `metadata key = value` statement.
type MetadataDefStatement struct {
	baseStatement
	Key   string
	Value Node
}

func (MetadataDefStatement) Kind() StatementKind { return KindMetadataDef }

// ControlStatement is a top-level `$key: value` control statement, the most
// important of which is `$version`.
type ControlStatement struct {
	baseStatement
	Key   string
	Value Node
}

func (ControlStatement) Kind() StatementKind { return KindControl }

// ParseErrorStatement marks a span of input the parser could not assign to
// any other statement form. The parser always resumes after one of these
// rather than aborting.
type ParseErrorStatement struct {
	baseStatement
	Message string
}

func (ParseErrorStatement) Kind() StatementKind { return KindParseError }

// NamespaceDecl is the single `namespace com.example` declaration a Smithy
// file must have exactly one of.
type NamespaceDecl struct {
	Name  string
	Range document.Range
}

// Preamble summarizes the control statements, namespace declaration, and use
// imports that must precede every shape statement in a Smithy file.
type Preamble struct {
	Version   *ControlStatement // the `$version` control statement, if present
	Namespace *NamespaceDecl
	Uses      []*UseStatement
}

// Diagnostic is a parse-time error or warning, independent of any LSP wire
// type so internal/syntax has no dependency on go.lsp.dev/protocol.
type Diagnostic struct {
	Range    document.Range
	Message  string
	Severity Severity
}

// Severity mirrors the subset of LSP diagnostic severities a parser can
// produce.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Tree is the result of parsing one Smithy IDL source file: every top-level
// statement plus the preamble summary and any diagnostics raised along the
// way.
type Tree struct {
	Statements  []Statement // top-level statements only, in source order
	Preamble    Preamble
	Diagnostics []Diagnostic
}

// StatementView pairs a Statement with the chain of ancestors that contain
// it, closest first, for callers (hover, completion) that need to know
// "which shape is this member inside of" without re-walking the tree.
type StatementView struct {
	Statement Statement
	Ancestors []Statement
}

// StatementAt returns the most specific statement containing the given byte
// offset, along with its ancestor chain (closest first). ok is false if the
// offset falls outside every top-level statement's range.
func (t *Tree) StatementAt(offset int) (view StatementView, ok bool) {
	for _, s := range t.Statements {
		if !byteRangeContains(s, offset) {
			continue
		}
		stmt, ancestors := descend(s, offset, nil)
		return StatementView{Statement: stmt, Ancestors: ancestors}, true
	}
	return StatementView{}, false
}

func byteRangeContains(stmt Statement, offset int) bool {
	b := baseOf(stmt)
	return offset >= b.ByteStart && offset <= b.ByteEnd
}

func baseOf(stmt Statement) baseStatement {
	switch s := stmt.(type) {
	case *ShapeDefStatement:
		return s.baseStatement
	case *MemberDefStatement:
		return s.baseStatement
	case *TraitApplicationStatement:
		return s.baseStatement
	case *UseStatement:
		return s.baseStatement
	case *MixinsStatement:
		return s.baseStatement
	case *ForResourceStatement:
		return s.baseStatement
	case *NodeMemberDefStatement:
		return s.baseStatement
	case *MetadataDefStatement:
		return s.baseStatement
	case *ControlStatement:
		return s.baseStatement
	case *ParseErrorStatement:
		return s.baseStatement
	default:
		return baseStatement{}
	}
}

func descend(stmt Statement, offset int, ancestors []Statement) (Statement, []Statement) {
	for _, c := range childStatements(stmt) {
		if byteRangeContains(c, offset) {
			next := append([]Statement{stmt}, ancestors...)
			return descend(c, offset, next)
		}
	}
	return stmt, ancestors
}

func childStatements(stmt Statement) []Statement {
	switch s := stmt.(type) {
	case *ShapeDefStatement:
		children := make([]Statement, 0, len(s.Members)+len(s.Traits)+2)
		for _, tr := range s.Traits {
			children = append(children, tr)
		}
		if s.Mixins != nil {
			children = append(children, s.Mixins)
		}
		if s.ForResource != nil {
			children = append(children, s.ForResource)
		}
		children = append(children, s.Members...)
		return children
	case *MemberDefStatement:
		children := make([]Statement, 0, len(s.Traits))
		for _, tr := range s.Traits {
			children = append(children, tr)
		}
		return children
	default:
		return nil
	}
}
