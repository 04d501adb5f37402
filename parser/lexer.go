package parser

import (
	"strings"
)

// tokenKind enumerates the lexical classes recognized by the scanner.
// Keywords are returned as tokIdent with their literal text; the parser
// recognizes them by that text (see curIsKeyword).
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIllegal
	tokIdent
	tokInt
	tokDot
	tokComma
	tokSemi
	tokEquals
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokLAngle
	tokRAngle
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "EOF"
	case tokIdent:
		return "identifier"
	case tokInt:
		return "integer"
	case tokDot:
		return "'.'"
	case tokComma:
		return "','"
	case tokSemi:
		return "';'"
	case tokEquals:
		return "'='"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokLAngle:
		return "'<'"
	case tokRAngle:
		return "'>'"
	default:
		return "illegal token"
	}
}

// token is one lexical unit with its source line, for diagnostics, plus
// any "// ..." comment lines that appeared immediately before it with no
// intervening non-comment token.
type token struct {
	kind     tokenKind
	text     string
	line     int
	comments []string
}

// lexer is a rune-at-a-time scanner over the whole source buffer. It
// threads all state through the value (no package-level or global scanner
// state), matching the reimplementation note in spec.md §9 ("Global
// process state").
type lexer struct {
	src     []rune
	pos     int
	line    int
	pending []string // comment lines accumulated since the last token
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1}
}

func (l *lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekRuneAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		r := l.peekRune()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			l.advance()
		case r == '/' && l.peekRuneAt(1) == '/':
			start := l.pos
			for l.pos < len(l.src) && l.peekRune() != '\n' {
				l.advance()
			}
			l.pending = append(l.pending, strings.TrimSpace(string(l.src[start:l.pos])))
		case r == '/' && l.peekRuneAt(1) == '*':
			l.advance()
			l.advance()
			for l.pos < len(l.src) {
				if l.peekRune() == '*' && l.peekRuneAt(1) == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// next scans and returns the next token, attaching any comment lines
// gathered since the previous token.
func (l *lexer) next() token {
	l.skipWhitespaceAndComments()
	comments := l.pending
	l.pending = nil

	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line, comments: comments}
	}

	line := l.line
	r := l.peekRune()

	switch {
	case isIdentStart(r):
		start := l.pos
		for l.pos < len(l.src) && isIdentPart(l.peekRune()) {
			l.advance()
		}
		return token{kind: tokIdent, text: string(l.src[start:l.pos]), line: line, comments: comments}
	case isDigit(r):
		start := l.pos
		for l.pos < len(l.src) && isDigit(l.peekRune()) {
			l.advance()
		}
		return token{kind: tokInt, text: string(l.src[start:l.pos]), line: line, comments: comments}
	}

	l.advance()
	switch r {
	case '.':
		return token{kind: tokDot, text: ".", line: line, comments: comments}
	case ',':
		return token{kind: tokComma, text: ",", line: line, comments: comments}
	case ';':
		return token{kind: tokSemi, text: ";", line: line, comments: comments}
	case '=':
		return token{kind: tokEquals, text: "=", line: line, comments: comments}
	case '{':
		return token{kind: tokLBrace, text: "{", line: line, comments: comments}
	case '}':
		return token{kind: tokRBrace, text: "}", line: line, comments: comments}
	case '(':
		return token{kind: tokLParen, text: "(", line: line, comments: comments}
	case ')':
		return token{kind: tokRParen, text: ")", line: line, comments: comments}
	case '[':
		return token{kind: tokLBracket, text: "[", line: line, comments: comments}
	case ']':
		return token{kind: tokRBracket, text: "]", line: line, comments: comments}
	case '<':
		return token{kind: tokLAngle, text: "<", line: line, comments: comments}
	case '>':
		return token{kind: tokRAngle, text: ">", line: line, comments: comments}
	default:
		return token{kind: tokIllegal, text: string(r), line: line, comments: comments}
	}
}
