package syntax

import "github.com/smithy-lang/smithy-language-server/internal/document"

// NodeKind tags the variant of a Node: the shared JSON-like value tree used
// for trait values, metadata values, node member values, and entire build
// files (smithy-build.json, .smithy-project.json).
type NodeKind int

const (
	NodeKindObj NodeKind = iota
	NodeKindKvps
	NodeKindKvp
	NodeKindArr
	NodeKindStr
	NodeKindNum
	NodeKindBool
	NodeKindNull
	NodeKindErr
)

// Node is any node in the value tree. Concrete types are ObjNode, KvpsNode,
// KvpNode, ArrNode, StrNode, NumNode, BoolNode, NullNode, and ErrNode.
type Node interface {
	nodeVariant()
	Kind() NodeKind
	Range() document.Range
}

type baseNode struct {
	Span document.Range
}

func (b baseNode) Range() document.Range { return b.Span }
func (baseNode) nodeVariant()            {}

// ObjNode is a `{ ... }` object literal.
type ObjNode struct {
	baseNode
	Pairs *KvpsNode // nil for an empty object
}

func (ObjNode) Kind() NodeKind { return NodeKindObj }

// KvpsNode is the comma-separated list of key-value pairs inside an object.
type KvpsNode struct {
	baseNode
	Items []*KvpNode
}

func (KvpsNode) Kind() NodeKind { return NodeKindKvps }

// KvpNode is a single `"key": value` pair.
type KvpNode struct {
	baseNode
	Key   *StrNode
	Value Node
}

func (KvpNode) Kind() NodeKind { return NodeKindKvp }

// ArrNode is a `[ ... ]` array literal.
type ArrNode struct {
	baseNode
	Items []Node
}

func (ArrNode) Kind() NodeKind { return NodeKindArr }

// StrNode is a quoted string or text-block literal. Value holds the
// unescaped contents; Raw holds the literal source text including quotes.
type StrNode struct {
	baseNode
	Value string
	Raw   string
}

func (StrNode) Kind() NodeKind { return NodeKindStr }

// NumNode is a numeric literal.
type NumNode struct {
	baseNode
	Value float64
	Raw   string
}

func (NumNode) Kind() NodeKind { return NodeKindNum }

// BoolNode is the `true`/`false` literal.
type BoolNode struct {
	baseNode
	Value bool
}

func (BoolNode) Kind() NodeKind { return NodeKindBool }

// NullNode is the `null` literal.
type NullNode struct {
	baseNode
}

func (NullNode) Kind() NodeKind { return NodeKindNull }

// ErrNode marks a position where a value was expected but the parser could
// not make sense of the input. It carries the recovery message and lets
// every consumer (hover, completion, document symbols) skip over malformed
// values without special-casing nil.
type ErrNode struct {
	baseNode
	Message string
}

func (ErrNode) Kind() NodeKind { return NodeKindErr }
