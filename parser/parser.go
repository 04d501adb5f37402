// Package parser turns the bytes of one AIDL-style source file into an
// ast.Document plus its package declaration and import list (spec.md
// §4.2, C2). It is a small hand-written recursive-descent parser: a
// rune-at-a-time lexer (lexer.go) feeding a curToken/peekToken parser in
// the shape of btouchard/gmx's compiler parser, reporting errors through
// a reporter.Handler the way the teacher funnels parser and linker
// diagnostics through one sink.
package parser

import (
	"strconv"

	"github.com/marvinyane/aidl-upstream/ast"
	"github.com/marvinyane/aidl-upstream/reporter"
)

const directionIn, directionOut, directionInOut = "in", "out", "inout"

// Result is everything a parse of one file produces: its declared
// package, its Document (an interface or one-or-more parcelables), and
// its import statements (not yet resolved to file paths).
type Result struct {
	Package  string
	Document *ast.Document
	Imports  []*ast.Import
}

// Parse parses the given source, attributing diagnostics to filename and
// reporting them through h. The returned Result is always non-nil and
// best-effort populated, even when h.Error() is non-nil afterward —
// callers must check the error and not act on a failed parse, per
// spec.md §4.2 ("the Document is still returned best-effort but the
// driver treats parse failure as fatal").
func Parse(filename string, src []byte, h *reporter.Handler) (*Result, error) {
	p := &parser{
		filename: filename,
		lex:      newLexer(string(src)),
		h:        h,
	}
	p.next()
	p.next()
	return p.parseFile(), h.Error()
}

type parser struct {
	filename string
	lex      *lexer
	h        *reporter.Handler
	cur      token
	peek     token
}

func (p *parser) pos(line int) reporter.Pos { return reporter.Pos{File: p.filename, Line: line} }

func (p *parser) next() {
	p.cur = p.peek
	p.peek = p.lex.next()
}

func (p *parser) errorf(line int, format string, args ...interface{}) {
	_ = p.h.HandleErrorf(p.pos(line), format, args...)
}

func (p *parser) curIs(kind tokenKind) bool { return p.cur.kind == kind }

func (p *parser) curIsKeyword(word string) bool {
	return p.cur.kind == tokIdent && p.cur.text == word
}

// expect consumes the current token if it has the given kind, reporting a
// syntax error and returning the zero token otherwise.
func (p *parser) expect(kind tokenKind) token {
	if p.cur.kind != kind {
		p.errorf(p.cur.line, "expected %s, found %q", kind, p.cur.text)
		return token{}
	}
	t := p.cur
	p.next()
	return t
}

func (p *parser) parseFile() *Result {
	var pkg string
	if p.curIsKeyword("package") {
		p.next()
		pkg = p.parseDottedName()
		p.expect(tokSemi)
	}

	var imports []*ast.Import
	for p.curIsKeyword("import") {
		line := p.cur.line
		p.next()
		name := p.parseDottedName()
		p.expect(tokSemi)
		imports = append(imports, &ast.Import{FromFile: p.filename, NeededClass: name, Line: line})
	}

	doc := &ast.Document{}
	oneway := false
	if p.curIsKeyword("oneway") {
		oneway = true
		p.next()
	}
	switch {
	case p.curIsKeyword("interface"):
		doc.Interface = p.parseInterface(pkg, oneway)
	case p.curIsKeyword("parcelable"):
		for p.curIsKeyword("parcelable") {
			doc.Parcelables = append(doc.Parcelables, p.parseParcelable(pkg))
		}
	case p.curIs(tokEOF):
		p.errorf(p.cur.line, "file contains no interface or parcelable declaration")
	default:
		p.errorf(p.cur.line, "expected \"interface\" or \"parcelable\", found %q", p.cur.text)
	}

	if !p.curIs(tokEOF) {
		p.errorf(p.cur.line, "unexpected content after top-level declaration: %q", p.cur.text)
	}

	// pkg is also attached to the Interface/Parcelables themselves.
	return &Result{Package: pkg, Document: doc, Imports: imports}
}

func (p *parser) parseDottedName() string {
	if !p.curIs(tokIdent) {
		p.errorf(p.cur.line, "expected identifier, found %q", p.cur.text)
		return ""
	}
	name := p.cur.text
	p.next()
	for p.curIs(tokDot) {
		p.next()
		if !p.curIs(tokIdent) {
			p.errorf(p.cur.line, "expected identifier after '.', found %q", p.cur.text)
			break
		}
		name += "." + p.cur.text
		p.next()
	}
	return name
}

func (p *parser) parseParcelable(pkg string) ast.Parcelable {
	line := p.cur.line
	p.next() // 'parcelable'
	name := ""
	if p.curIs(tokIdent) {
		name = p.cur.text
		p.next()
	} else {
		p.errorf(p.cur.line, "expected parcelable name, found %q", p.cur.text)
	}
	p.expect(tokSemi)
	return ast.Parcelable{Name: name, Package: pkg, Line: line}
}

func (p *parser) parseInterface(pkg string, oneway bool) *ast.Interface {
	line := p.cur.line
	comments := p.cur.comments
	p.next() // 'interface'
	name := ""
	if p.curIs(tokIdent) {
		name = p.cur.text
		p.next()
	} else {
		p.errorf(p.cur.line, "expected interface name, found %q", p.cur.text)
	}

	iface := &ast.Interface{Name: name, Package: pkg, OneWay: oneway, Line: line, Comments: comments}

	p.expect(tokLBrace)
	for !p.curIs(tokRBrace) && !p.curIs(tokEOF) {
		iface.Methods = append(iface.Methods, p.parseMethod())
	}
	p.expect(tokRBrace)
	return iface
}

func (p *parser) parseMethod() ast.Method {
	comments := p.cur.comments
	line := p.cur.line

	oneway := false
	if p.curIsKeyword("oneway") {
		oneway = true
		p.next()
	}

	ret := p.parseTypeRef()
	name := ""
	if p.curIs(tokIdent) {
		name = p.cur.text
		p.next()
	} else {
		p.errorf(p.cur.line, "expected method name, found %q", p.cur.text)
	}

	p.expect(tokLParen)
	var args []ast.Argument
	if !p.curIs(tokRParen) {
		args = append(args, p.parseArgument())
		for p.curIs(tokComma) {
			p.next()
			args = append(args, p.parseArgument())
		}
	}
	p.expect(tokRParen)

	m := ast.Method{
		OneWay:    oneway,
		Return:    ret,
		Name:      name,
		Arguments: args,
		Line:      line,
		Comments:  comments,
	}

	if p.curIs(tokEquals) {
		p.next()
		idTok := p.expect(tokInt)
		id, err := strconv.Atoi(idTok.text)
		if err != nil {
			p.errorf(line, "invalid transaction id %q", idTok.text)
		} else {
			m.HasID = true
			m.ID = id
		}
	}

	p.expect(tokSemi)
	return m
}

func (p *parser) parseArgument() ast.Argument {
	line := p.cur.line
	dir := ast.DirIn
	explicit := false
	if p.curIsKeyword(directionIn) || p.curIsKeyword(directionOut) || p.curIsKeyword(directionInOut) {
		switch p.cur.text {
		case directionOut:
			dir = ast.DirOut
		case directionInOut:
			dir = ast.DirInOut
		}
		explicit = true
		p.next()
	}

	typ := p.parseTypeRef()
	name := ""
	if p.curIs(tokIdent) {
		name = p.cur.text
		p.next()
	} else {
		p.errorf(p.cur.line, "expected argument name, found %q", p.cur.text)
	}

	return ast.Argument{Direction: dir, Type: typ, Name: name, Line: line, DirectionExplicit: explicit}
}

// parseTypeRef parses a type reference: a dotted name, optionally followed
// by a single level of generic type parameters (List<Foo>, Map<K,V>) and
// an array suffix. The textual form, including any <...>, is kept
// verbatim in TypeRef.Name; typespace.AddContainer parses that text to
// recognize container shapes (spec.md §4.5).
func (p *parser) parseTypeRef() ast.TypeRef {
	line := p.cur.line
	comments := p.cur.comments
	name := p.parseDottedName()

	if p.curIs(tokLAngle) {
		p.next()
		name += "<" + p.parseDottedName()
		for p.curIs(tokComma) {
			p.next()
			name += "," + p.parseDottedName()
		}
		p.expect(tokRAngle)
		name += ">"
	}

	isArray := false
	if p.curIs(tokLBracket) {
		p.next()
		p.expect(tokRBracket)
		isArray = true
	}

	return ast.TypeRef{Name: name, Line: line, IsArray: isArray, Comments: comments}
}
