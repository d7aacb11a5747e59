package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionOffsetRoundTrip(t *testing.T) {
	doc := New("namespace demo\n\nstructure Foo {\n    bar: String\n}\n")
	for offset := 0; offset <= len(doc.Text()); offset++ {
		pos := doc.OffsetToPosition(offset)
		got := doc.PositionToOffset(pos)
		assert.Equal(t, offset, got, "offset %d round-trips through position %+v", offset, pos)
	}
}

func TestApplyEditFullReplace(t *testing.T) {
	doc := New("namespace demo\n")
	doc.ApplyEdit(false, Position{}, Position{}, "namespace other\n")
	assert.Equal(t, "namespace other\n", doc.Text())
}

func TestApplyEditRange(t *testing.T) {
	doc := New("structure Foo {\n    bar: Bar\n}\n")
	// Replace "Bar" on line 1 with "Baz".
	doc.ApplyEdit(true, Position{Line: 1, Character: 9}, Position{Line: 1, Character: 12}, "Baz")
	assert.Equal(t, "structure Foo {\n    bar: Baz\n}\n", doc.Text())
}

func TestApplyEditClampsOutOfRange(t *testing.T) {
	doc := New("short\n")
	require.NotPanics(t, func() {
		doc.ApplyEdit(true, Position{Line: 50, Character: 0}, Position{Line: 99, Character: 99}, "x")
	})
}

func TestCopyDocumentID(t *testing.T) {
	doc := New("structure Foo {\n    bar: demo.namespace#Shape$member\n}\n")
	token, _, ok := doc.CopyDocumentID(Position{Line: 1, Character: 20})
	require.True(t, ok)
	assert.Equal(t, "demo.namespace#Shape$member", token)
}

func TestCopyDocumentIDNoToken(t *testing.T) {
	doc := New("structure Foo {}\n")
	_, _, ok := doc.CopyDocumentID(Position{Line: 0, Character: 14})
	assert.False(t, ok)
}

func TestCopyRange(t *testing.T) {
	doc := New("abc\ndef\nghi\n")
	got := doc.CopyRange(Range{Start: Position{Line: 1, Character: 0}, End: Position{Line: 1, Character: 3}})
	assert.Equal(t, "def", got)
}

func TestFullRange(t *testing.T) {
	doc := New("ab\ncd\n")
	r := doc.FullRange()
	assert.Equal(t, Position{}, r.Start)
	assert.Equal(t, doc.OffsetToPosition(len(doc.Text())), r.End)
}

func TestUTF16Position(t *testing.T) {
	// U+1F600 (grinning face) is a surrogate pair in UTF-16 (2 code units),
	// 4 bytes in UTF-8.
	doc := New("x := \"\U0001F600\"\n")
	pos := doc.OffsetToPosition(len(doc.Text()) - 2) // just before closing quote
	back := doc.PositionToOffset(pos)
	assert.Equal(t, len(doc.Text())-2, back)
}
