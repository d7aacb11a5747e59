package project

import (
	"strings"

	"github.com/smithy-lang/smithy-language-server/internal/document"
	"github.com/smithy-lang/smithy-language-server/internal/syntax"
)

// Kind distinguishes the two ProjectFile variants.
type Kind int

const (
	KindIdl Kind = iota
	KindBuild
)

// BuildFileKind distinguishes the two build-config file shapes a BuildFile
// can hold.
type BuildFileKind int

const (
	BuildKindSmithyBuild BuildFileKind = iota
	BuildKindSmithyProject
	BuildKindOther
)

// DocumentShapeKind tags why a token in a file corresponds to a shape
// identity.
type DocumentShapeKind int

const (
	// DefinedShape is a shape's own name at its definition site.
	DefinedShape DocumentShapeKind = iota
	// DefinedMember is a member's own name at its definition site.
	DefinedMember
	// Elided is a `$name` member target inherited from a mixin.
	Elided
	// Targeted is a reference to another shape: a member's explicit
	// target, a trait id, a `for` clause id, an `apply` target, or a `use`
	// import. Mixin names in a `with` clause are not recorded.
	Targeted
	// Inline marks a shape id appearing inside a node value (for example
	// a default value that happens to look like a shape id).
	Inline
)

// DocumentShape bridges a textual token to a shape identity before the
// semantic model is available (or when it's stale). One entry exists per
// shape-name or member-name token occurrence.
type DocumentShape struct {
	Token     string
	Range     document.Range
	Kind      DocumentShapeKind
	Statement syntax.Statement // the statement the token was found in
}

// File is a ProjectFile: either an IdlFile (Smithy IDL source, Kind ==
// KindIdl) or a BuildFile (JSON build config, Kind == KindBuild).
type File struct {
	Path string // absolute filesystem path, used as the map key in Project
	Doc  *document.Document
	Kind Kind

	// IdlFile fields.
	Tree   *syntax.Tree
	Shapes []DocumentShape

	// BuildFile fields.
	BuildKind BuildFileKind
	Node      syntax.Node
}

// NewIdlFile creates an IdlFile and parses it immediately.
func NewIdlFile(path, text string) *File {
	f := &File{Path: path, Kind: KindIdl, Doc: document.New(text)}
	f.reparse()
	return f
}

// NewBuildFile creates a BuildFile and parses it immediately.
func NewBuildFile(path, text string, kind BuildFileKind) *File {
	f := &File{Path: path, Kind: KindBuild, BuildKind: kind, Doc: document.New(text)}
	f.reparse()
	return f
}

// BuildFileKindForPath classifies a path by its base name.
func BuildFileKindForPath(path string) BuildFileKind {
	base := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		base = path[i+1:]
	}
	switch base {
	case "smithy-build.json":
		return BuildKindSmithyBuild
	case ".smithy-project.json":
		return BuildKindSmithyProject
	default:
		return BuildKindOther
	}
}

// ApplyEdit applies a text edit to the file's Document and reparses it.
// Reparsing the whole file on every edit is a known scaling gap, explicitly
// permitted until incremental parsing is added (spec §4.2: "initial
// implementation may reparse the whole file; the interface must not
// prevent incremental parsing later") — Tree and the Lexer are restartable
// by construction, so adding a re-lex-from-changed-statement fast path
// later doesn't change this type's public surface.
func (f *File) ApplyEdit(rangeSet bool, start, end document.Position, text string) {
	f.Doc.ApplyEdit(rangeSet, start, end, text)
	f.reparse()
}

func (f *File) reparse() {
	switch f.Kind {
	case KindIdl:
		f.Tree = syntax.Parse(f.Doc.Text())
		f.Shapes = ExtractDocumentShapes(f.Tree)
	case KindBuild:
		node, _ := syntax.ParseNode(f.Doc.Text())
		f.Node = node
	}
}

// ExtractDocumentShapes walks a parsed IDL tree's statements and records one
// DocumentShape per shape-name or member-name token occurrence.
func ExtractDocumentShapes(tree *syntax.Tree) []DocumentShape {
	var shapes []DocumentShape
	for _, stmt := range tree.Statements {
		switch s := stmt.(type) {
		case *syntax.ShapeDefStatement:
			shapes = append(shapes, DocumentShape{Token: s.Name, Range: s.NameRange, Kind: DefinedShape, Statement: s})
			if s.ForResource != nil {
				shapes = append(shapes, DocumentShape{Token: s.ForResource.ResourceID, Range: s.ForResource.Range(), Kind: Targeted, Statement: s.ForResource})
			}
			for _, tr := range s.Traits {
				shapes = append(shapes, traitShape(tr))
			}
			shapes = append(shapes, memberShapes(s.Members)...)
		case *syntax.UseStatement:
			shapes = append(shapes, DocumentShape{Token: s.ImportID, Range: s.Range(), Kind: Targeted, Statement: s})
		case *syntax.TraitApplicationStatement:
			// Top-level trait applications come from `apply` statements.
			shapes = append(shapes, traitShape(s))
			if s.AppliedTo != "" {
				shapes = append(shapes, DocumentShape{Token: s.AppliedTo, Range: s.Range(), Kind: Targeted, Statement: s})
			}
		}
	}
	return shapes
}

func memberShapes(members []syntax.Statement) []DocumentShape {
	var shapes []DocumentShape
	for _, m := range members {
		switch mem := m.(type) {
		case *syntax.MemberDefStatement:
			shapes = append(shapes, DocumentShape{Token: mem.Name, Range: mem.NameRange, Kind: DefinedMember, Statement: mem})
			switch mem.TargetForm {
			case syntax.TargetExplicit:
				shapes = append(shapes, DocumentShape{Token: mem.Target, Range: mem.TargetRange, Kind: Targeted, Statement: mem})
			case syntax.TargetElided:
				shapes = append(shapes, DocumentShape{Token: mem.Name, Range: mem.NameRange, Kind: Elided, Statement: mem})
			}
			for _, tr := range mem.Traits {
				shapes = append(shapes, traitShape(tr))
			}
		case *syntax.NodeMemberDefStatement:
			// Node members (enum values, service/resource properties) name
			// a key but don't themselves reference a shape; nothing to
			// record beyond what node-value walking (for completion)
			// handles separately.
		}
	}
	return shapes
}

func traitShape(tr *syntax.TraitApplicationStatement) DocumentShape {
	return DocumentShape{Token: tr.TraitID, Range: tr.TraitIDRange, Kind: Targeted, Statement: tr}
}
