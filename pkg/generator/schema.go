package generator

import (
	"go/parser"
	"strings"
	"text/scanner"
)

const schemaFileExt = ".httperr"

/*
The schema reader. A schema file holds one or more sum type declarations:

	error CustomError {
		From(@from error)                          [status(400), reason("reason {0}")]
		NamedWithSource{count uint64, @source cause error}
		                                           [status(400), reason("reason {count}")]
		NotFound                                   [status(404)]
		Transparent(@source error)                 [transparent]
	}

Field types and embedded expressions are plain Go syntax. Anything that is not
an error sum type declaration is rejected.
*/

type lexer struct {
	scan scanner.Scanner
	src  string

	tok rune
	lit string
	pos scanner.Position
}

func newLexer(filename, src string, diags *DiagnosticList) *lexer {
	l := &lexer{src: src}
	l.scan.Init(strings.NewReader(src))
	l.scan.Filename = filename
	l.scan.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanRawStrings | scanner.ScanComments | scanner.SkipComments
	l.scan.Error = func(s *scanner.Scanner, msg string) {
		diags.Add(s.Position, KindSyntax, "%s", msg)
	}
	l.next()
	return l
}

func (l *lexer) next() {
	l.tok = l.scan.Scan()
	l.pos = l.scan.Position
	l.lit = l.scan.TokenText()
}

/* offset returns the byte offset of the current token, or the end of input at
EOF. */
func (l *lexer) offset() int {
	if l.tok == scanner.EOF {
		return len(l.src)
	}
	return l.pos.Offset
}

type schemaParser struct {
	l     *lexer
	diags *DiagnosticList
}

/*
parseSchema reads every declaration of a schema file. Diagnostics are
accumulated rather than aborting at the first failure; the returned
declarations are only meaningful when the list is empty.
*/
func parseSchema(filename, src string) ([]*Decl, DiagnosticList) {
	var diags DiagnosticList
	p := &schemaParser{l: newLexer(filename, src, &diags), diags: &diags}
	var decls []*Decl
	for p.l.tok != scanner.EOF {
		if p.l.tok == scanner.Ident && p.l.lit == "error" {
			if decl := p.parseDecl(); decl != nil {
				decls = append(decls, decl)
			}
			continue
		}
		if p.l.tok == scanner.Ident && p.l.lit == "struct" {
			p.diags.Add(p.l.pos, KindUnsupportedDeclaration,
				"struct declarations are unsupported; only error sum types can be generated")
		} else {
			p.diags.Add(p.l.pos, KindUnsupportedDeclaration, "unsupported declaration starting at %q", p.l.lit)
		}
		p.skipDecl()
	}
	return decls, diags
}

/* skipDecl advances past the current malformed declaration: over one balanced
brace block, or to the next top-level `error` keyword. */
func (p *schemaParser) skipDecl() {
	depth := 0
	for {
		p.l.next()
		switch p.l.tok {
		case scanner.EOF:
			return
		case '{':
			depth++
		case '}':
			depth--
			if depth <= 0 {
				p.l.next()
				return
			}
		case scanner.Ident:
			if depth == 0 && p.l.lit == "error" {
				return
			}
		}
	}
}

func (p *schemaParser) parseDecl() *Decl {
	pos := p.l.pos
	p.l.next() // error
	if p.l.tok != scanner.Ident {
		p.diags.Add(p.l.pos, KindSyntax, "expected declaration name, found %q", p.l.lit)
		p.skipDecl()
		return nil
	}
	decl := &Decl{Name: p.l.lit, Pos: pos}
	p.l.next()
	if !p.expect('{') {
		p.skipDecl()
		return nil
	}
	for p.l.tok != '}' && p.l.tok != scanner.EOF {
		if v := p.parseVariant(); v != nil {
			decl.Variants = append(decl.Variants, v)
		}
	}
	p.expect('}')
	return decl
}

func (p *schemaParser) parseVariant() *Variant {
	if p.l.tok != scanner.Ident {
		p.diags.Add(p.l.pos, KindSyntax, "expected variant name, found %q", p.l.lit)
		p.resyncVariant()
		return nil
	}
	v := &Variant{Name: p.l.lit, Pos: p.l.pos, Shape: ShapeUnit}
	p.l.next()
	switch p.l.tok {
	case '(':
		v.Shape = ShapePositional
		p.parsePositionalFields(v)
	case '{':
		v.Shape = ShapeNamed
		p.parseNamedFields(v)
	}
	if p.l.tok != '[' {
		p.diags.Add(v.Pos, KindMissingStatus, "variant %s has no attribute block; status(..) is required", v.Name)
		return v
	}
	p.parseAttributes(v)
	return v
}

/* resyncVariant skips to a plausible start of the next variant: past the end
of an attribute block, or to the closing brace of the declaration. */
func (p *schemaParser) resyncVariant() {
	depth := 0
	for {
		switch p.l.tok {
		case scanner.EOF:
			return
		case '}':
			if depth == 0 {
				return
			}
			depth--
		case '{', '(', '[':
			depth++
		case ')':
			depth--
		case ']':
			depth--
			if depth <= 0 {
				p.l.next()
				return
			}
		}
		p.l.next()
	}
}

func (p *schemaParser) parsePositionalFields(v *Variant) {
	p.l.next() // (
	for p.l.tok != ')' && p.l.tok != scanner.EOF {
		f := &Field{Index: len(v.Fields)}
		p.parseMarkers(f)
		f.Pos = p.l.pos
		f.Type = p.captureType(',', ')')
		p.checkGoExpr(f.Type, f.Pos, "field type")
		v.Fields = append(v.Fields, f)
		if p.l.tok == ',' {
			p.l.next()
		}
	}
	p.expect(')')
}

func (p *schemaParser) parseNamedFields(v *Variant) {
	p.l.next() // {
	for p.l.tok != '}' && p.l.tok != scanner.EOF {
		f := &Field{Index: len(v.Fields)}
		p.parseMarkers(f)
		f.Pos = p.l.pos
		if p.l.tok != scanner.Ident {
			p.diags.Add(p.l.pos, KindSyntax, "expected field name, found %q", p.l.lit)
			p.resyncVariant()
			return
		}
		f.Name = p.l.lit
		p.l.next()
		f.Type = p.captureType(',', '}')
		p.checkGoExpr(f.Type, f.Pos, "field type")
		v.Fields = append(v.Fields, f)
		if p.l.tok == ',' {
			p.l.next()
		}
	}
	p.expect('}')
}

func (p *schemaParser) parseMarkers(f *Field) {
	for p.l.tok == '@' {
		pos := p.l.pos
		p.l.next()
		if p.l.tok != scanner.Ident {
			p.diags.Add(pos, KindSyntax, "expected marker name after '@'")
			return
		}
		switch p.l.lit {
		case "from":
			f.AutoWrap = true
		case "source":
			f.Source = true
		default:
			p.diags.Add(pos, KindUnrecognizedArgument, "unrecognized field marker @%s", p.l.lit)
		}
		p.l.next()
	}
}

/*
captureType consumes a Go type expression up to, but not including, the next
stop token at nesting depth zero, and returns its raw source text.
*/
func (p *schemaParser) captureType(stop1, stop2 rune) string {
	start := p.l.offset()
	depth := 0
	for p.l.tok != scanner.EOF {
		if depth == 0 && (p.l.tok == stop1 || p.l.tok == stop2) {
			break
		}
		switch p.l.tok {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
		p.l.next()
	}
	return strings.TrimSpace(p.l.src[start:p.l.offset()])
}

/* checkGoExpr validates an embedded Go payload with the Go parser. */
func (p *schemaParser) checkGoExpr(src string, pos scanner.Position, what string) {
	if src == "" {
		p.diags.Add(pos, KindSyntax, "missing %s", what)
		return
	}
	if _, err := parser.ParseExpr(src); err != nil {
		p.diags.Add(pos, KindSyntax, "invalid %s %q: %v", what, src, err)
	}
}

func (p *schemaParser) expect(tok rune) bool {
	if p.l.tok != tok {
		p.diags.Add(p.l.pos, KindSyntax, "expected %q, found %q", string(tok), p.l.lit)
		return false
	}
	p.l.next()
	return true
}
