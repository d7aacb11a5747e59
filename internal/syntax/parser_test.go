package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreamble(t *testing.T) {
	tree := Parse("$version: \"2.0\"\n\nnamespace com.example\n\nuse com.other#Thing\n")
	require.NotNil(t, tree.Preamble.Version)
	require.NotNil(t, tree.Preamble.Namespace)
	assert.Equal(t, "com.example", tree.Preamble.Namespace.Name)
	require.Len(t, tree.Preamble.Uses, 1)
	assert.Equal(t, "com.other#Thing", tree.Preamble.Uses[0].ImportID)
}

func TestParseSimpleShape(t *testing.T) {
	tree := Parse("namespace com.example\n\nstring MyString\n")
	require.Len(t, tree.Statements, 1)
	shape, ok := tree.Statements[0].(*ShapeDefStatement)
	require.True(t, ok)
	assert.Equal(t, "string", shape.ShapeType)
	assert.Equal(t, "MyString", shape.Name)
	assert.Nil(t, shape.Members)
}

func TestParseStructureWithMembersAndTraits(t *testing.T) {
	src := `namespace com.example

@documentation("a thing")
structure Thing {
    @required
    name: String

    $inherited
}
`
	tree := Parse(src)
	require.Len(t, tree.Statements, 1)
	shape := tree.Statements[0].(*ShapeDefStatement)
	require.Len(t, shape.Traits, 1)
	assert.Equal(t, "documentation", shape.Traits[0].TraitID)

	require.Len(t, shape.Members, 2)
	name := shape.Members[0].(*MemberDefStatement)
	assert.Equal(t, "name", name.Name)
	assert.Equal(t, TargetExplicit, name.TargetForm)
	assert.Equal(t, "String", name.Target)
	require.Len(t, name.Traits, 1)
	assert.Equal(t, "required", name.Traits[0].TraitID)

	elided := shape.Members[1].(*MemberDefStatement)
	assert.Equal(t, "inherited", elided.Name)
	assert.Equal(t, TargetElided, elided.TargetForm)
}

func TestParseMixins(t *testing.T) {
	tree := Parse("namespace com.example\n\nstructure Foo with [Bar, Baz] {\n}\n\noperation Get {\n}\n")
	shape := tree.Statements[0].(*ShapeDefStatement)
	require.NotNil(t, shape.Mixins)
	assert.Equal(t, []string{"Bar", "Baz"}, shape.Mixins.Names)
}

func TestParseEnumMembers(t *testing.T) {
	src := "namespace com.example\n\nenum Suit {\n    DIAMOND\n    CLUB = \"club\"\n}\n"
	tree := Parse(src)
	shape := tree.Statements[0].(*ShapeDefStatement)
	require.Len(t, shape.Members, 2)
	d := shape.Members[0].(*NodeMemberDefStatement)
	assert.Equal(t, "DIAMOND", d.Key)
	assert.Nil(t, d.Value)
	c := shape.Members[1].(*NodeMemberDefStatement)
	assert.Equal(t, "CLUB", c.Key)
	str, ok := c.Value.(*StrNode)
	require.True(t, ok)
	assert.Equal(t, "club", str.Value)
}

func TestParseMetadataAndControl(t *testing.T) {
	tree := Parse("$version: \"2.0\"\nnamespace com.example\nmetadata validators = []\n")
	var md *MetadataDefStatement
	for _, s := range tree.Statements {
		if m, ok := s.(*MetadataDefStatement); ok {
			md = m
		}
	}
	require.NotNil(t, md)
	assert.Equal(t, "validators", md.Key)
	_, isArr := md.Value.(*ArrNode)
	assert.True(t, isArr)
}

func TestParseApply(t *testing.T) {
	tree := Parse("namespace com.example\n\napply Foo$bar @documentation(\"hi\")\n")
	require.Len(t, tree.Statements, 1)
	trait := tree.Statements[0].(*TraitApplicationStatement)
	assert.Equal(t, "Foo$bar", trait.AppliedTo)
	assert.Equal(t, "documentation", trait.TraitID)
}

func TestParseMalformedShapeRecovers(t *testing.T) {
	src := "namespace com.example\n\nstructure {\n\nstructure Good {\n}\n"
	tree := Parse(src)
	// The parser should still find the well-formed "Good" shape after the
	// malformed one, rather than aborting.
	var found bool
	for _, s := range tree.Statements {
		if sd, ok := s.(*ShapeDefStatement); ok && sd.Name == "Good" {
			found = true
		}
	}
	assert.True(t, found, "parser should recover and find the Good shape")
}

func TestStatementAtFindsNestedMember(t *testing.T) {
	src := "namespace com.example\n\nstructure Foo {\n    bar: String\n}\n"
	tree := Parse(src)
	offset := len(src) - len("    bar: String\n}\n") + len("    ba")
	view, ok := tree.StatementAt(offset)
	require.True(t, ok)
	member, isMember := view.Statement.(*MemberDefStatement)
	require.True(t, isMember)
	assert.Equal(t, "bar", member.Name)
	require.Len(t, view.Ancestors, 1)
	shape, isShape := view.Ancestors[0].(*ShapeDefStatement)
	require.True(t, isShape)
	assert.Equal(t, "Foo", shape.Name)
}

func TestParseNodeForBuildFile(t *testing.T) {
	node, diags := ParseNode(`{"version": "1.0", "sources": ["model"]}`)
	assert.Empty(t, diags)
	obj, ok := node.(*ObjNode)
	require.True(t, ok)
	require.NotNil(t, obj.Pairs)
	require.Len(t, obj.Pairs.Items, 2)
	assert.Equal(t, "version", obj.Pairs.Items[0].Key.Value)
}

func TestParseNodeMalformedProducesErrNode(t *testing.T) {
	node, _ := ParseNode(`{"version": }`)
	obj, ok := node.(*ObjNode)
	require.True(t, ok)
	require.Len(t, obj.Pairs.Items, 1)
	_, isErr := obj.Pairs.Items[0].Value.(*ErrNode)
	assert.True(t, isErr)
}
