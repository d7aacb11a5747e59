// Package syntax implements the Smithy IDL lexer, recursive-descent parser,
// and the JSON node tree shared by build-file parsing and trait/metadata
// value walking.
//
// Parsing is error-tolerant: malformed input never aborts a parse. Instead
// the parser records a ParseErrorStatement (or an ErrNode, for the JSON node
// tree) with a range and message, and resumes at the next recognizable
// boundary. This mirrors how protocompile's parser.Parse keeps going past
// syntax errors by recording them on a reporter.Handler rather than
// returning early.
package syntax

import (
	"strings"
	"unicode/utf8"

	"github.com/smithy-lang/smithy-language-server/internal/document"
)

// TokenKind tags the lexical category of a Token.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdent
	TokString     // "quoted"
	TokTextBlock  // """triple quoted"""
	TokNumber
	TokPunct      // {}[]()<>,:@$.# and other single-char punctuation
	TokLineComment
	TokDocComment // ///
	TokInvalid
)

// Token is a single lexical token with its source range.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int // byte offset
	End   int // byte offset
}

// Range converts the token's byte offsets into a document.Range using doc's
// line index.
func (t Token) Range(doc *document.Document) document.Range {
	return document.Range{
		Start: doc.OffsetToPosition(t.Start),
		End:   doc.OffsetToPosition(t.End),
	}
}

// Lexer is a forward, restartable tokenizer over Smithy IDL source.
//
// Restartable means a Lexer can be constructed at any byte offset that is a
// valid token boundary, which is what lets a future incremental parser
// re-lex only the statements that changed instead of the whole file. The
// current Parser always starts a Lexer at offset 0 and consumes it to EOF,
// but nothing in this type prevents calling NewLexerAt with a non-zero
// offset later.
type Lexer struct {
	src string
	pos int
}

// NewLexer creates a Lexer over the given source, starting at offset 0.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// NewLexerAt creates a Lexer starting at the given byte offset.
func NewLexerAt(src string, offset int) *Lexer {
	return &Lexer{src: src, pos: offset}
}

// Pos returns the lexer's current byte offset.
func (l *Lexer) Pos() int { return l.pos }

// Next returns the next significant token, skipping plain whitespace and
// line comments that are not documentation comments. EOF is signaled with a
// TokEOF token whose Start == End == len(src).
func (l *Lexer) Next() Token {
	for {
		l.skipInsignificantWhitespace()
		if l.pos >= len(l.src) {
			return Token{Kind: TokEOF, Start: l.pos, End: l.pos}
		}

		start := l.pos
		r := l.peekRune()

		switch {
		case r == '/' && l.peekAt(1) == '/':
			tok := l.lexComment(start)
			return tok
		case r == '"':
			return l.lexString(start)
		case isIdentStart(r):
			return l.lexIdent(start)
		case r == '$' && isIdentStart(l.peekAt(1)):
			// $version, $Elided member targets, and control/node-member
			// statements all start with an identifier-like token; the
			// parser disambiguates by context.
			return l.lexIdent(start)
		case isDigit(r) || (r == '-' && isDigit(l.peekAt(1))):
			return l.lexNumber(start)
		case strings.ContainsRune("{}[]()<>,:@.#=", r):
			l.advance()
			return Token{Kind: TokPunct, Text: l.src[start:l.pos], Start: start, End: l.pos}
		case r == '$':
			l.advance()
			return Token{Kind: TokPunct, Text: "$", Start: start, End: l.pos}
		default:
			l.advance()
			return Token{Kind: TokInvalid, Text: l.src[start:l.pos], Start: start, End: l.pos}
		}
	}
}

// skipInsignificantWhitespace advances over runs of whitespace and
// non-documentation line comments.
func (l *Lexer) skipInsignificantWhitespace() {
	for l.pos < len(l.src) {
		r := l.peekRune()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			l.advance()
		case r == '/' && l.peekAt(1) == '/' && l.peekAt(2) != '/':
			// Ordinary line comment: skip to end of line.
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *Lexer) lexComment(start int) Token {
	isDoc := l.peekAt(2) == '/'
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	kind := TokLineComment
	if isDoc {
		kind = TokDocComment
	}
	return Token{Kind: kind, Text: l.src[start:l.pos], Start: start, End: l.pos}
}

func (l *Lexer) lexString(start int) Token {
	// Check for a text-block delimiter: """
	if l.peekAt(1) == '"' && l.peekAt(2) == '"' {
		l.pos += 3
		for l.pos < len(l.src) {
			if l.src[l.pos] == '"' && l.peekAt(1) == '"' && l.peekAt(2) == '"' {
				l.pos += 3
				return Token{Kind: TokTextBlock, Text: l.src[start:l.pos], Start: start, End: l.pos}
			}
			l.advance()
		}
		// Unterminated text block; consume to EOF.
		return Token{Kind: TokTextBlock, Text: l.src[start:l.pos], Start: start, End: l.pos}
	}

	l.advance() // opening quote
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' {
			l.advance()
			if l.pos < len(l.src) {
				l.advance()
			}
			continue
		}
		if c == '"' {
			l.advance()
			return Token{Kind: TokString, Text: l.src[start:l.pos], Start: start, End: l.pos}
		}
		if c == '\n' {
			// Unterminated string; stop at end of line.
			break
		}
		l.advance()
	}
	return Token{Kind: TokString, Text: l.src[start:l.pos], Start: start, End: l.pos}
}

func (l *Lexer) lexIdent(start int) Token {
	if l.peekRune() == '$' {
		l.advance()
	}
	for l.pos < len(l.src) {
		r := l.peekRune()
		if !isIdentPart(r) {
			break
		}
		l.advance()
	}
	return Token{Kind: TokIdent, Text: l.src[start:l.pos], Start: start, End: l.pos}
}

func (l *Lexer) lexNumber(start int) Token {
	if l.peekRune() == '-' {
		l.advance()
	}
	for l.pos < len(l.src) && (isDigit(rune(l.src[l.pos])) || l.src[l.pos] == '.' ||
		l.src[l.pos] == 'e' || l.src[l.pos] == 'E' || l.src[l.pos] == '+' || l.src[l.pos] == '-') {
		l.advance()
	}
	return Token{Kind: TokNumber, Text: l.src[start:l.pos], Start: start, End: l.pos}
}

func (l *Lexer) advance() {
	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	if size == 0 {
		size = 1
	}
	l.pos += size
}

func (l *Lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *Lexer) peekAt(n int) rune {
	pos := l.pos
	for i := 0; i < n && pos < len(l.src); i++ {
		_, size := utf8.DecodeRuneInString(l.src[pos:])
		if size == 0 {
			size = 1
		}
		pos += size
	}
	if pos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[pos:])
	return r
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '#' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '.' || r == '#' || r == '$'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
