package generator

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/heat1q/httperrgen/pkg/httperr"
)

/*
The attribute parser. Each variant carries a bracketed attribute block with
the recognized keys status(<uint>), reason(<template>), data(<key> = <value>,
...) and the bare transparent flag.
*/

func (p *schemaParser) parseAttributes(v *Variant) {
	p.l.next() // [
	var (
		status      int
		reason      *Template
		data        []DataEntry
		transparent bool
	)
	seen := make(map[string]scanner.Position)
	for p.l.tok != ']' && p.l.tok != scanner.EOF {
		if p.l.tok != scanner.Ident {
			p.diags.Add(p.l.pos, KindSyntax, "expected attribute name, found %q", p.l.lit)
			p.resyncVariant()
			return
		}
		key, pos := p.l.lit, p.l.pos
		if first, dup := seen[key]; dup {
			p.diags.Add(pos, KindDuplicateArgument, "duplicate attribute %q (first at %s)", key, first)
		}
		seen[key] = pos
		p.l.next()
		switch key {
		case "status":
			if code, ok := p.parseStatus(pos); ok {
				status = code
			}
		case "reason":
			reason = p.parseReason()
		case "data":
			data = p.parseData()
		case "transparent":
			transparent = true
		default:
			p.diags.Add(pos, KindUnrecognizedArgument, "unrecognized attribute %q", key)
			p.skipAttributePayload()
		}
		if p.l.tok == ',' {
			p.l.next()
		}
	}
	p.expect(']')

	/* A declared-but-invalid status has already been reported; only a status
	that never appeared is missing. */
	_, statusDeclared := seen["status"]
	if transparent {
		if statusDeclared || reason != nil || data != nil {
			p.diags.Add(v.Pos, KindTransparentConflict,
				"variant %s: `transparent` may not be combined with status, reason or data", v.Name)
		}
		v.Class = Classification{Kind: ClassTransparent}
		return
	}
	if !statusDeclared {
		p.diags.Add(v.Pos, KindMissingStatus, "variant %s: missing status(..) attribute", v.Name)
	}
	v.Class = Classification{Kind: ClassExplicit, Status: status, Reason: reason, Data: data}
}

func (p *schemaParser) parseStatus(pos scanner.Position) (int, bool) {
	if !p.expect('(') {
		return 0, false
	}
	if p.l.tok != scanner.Int {
		p.diags.Add(p.l.pos, KindSyntax, "expected status code integer, found %q", p.l.lit)
		p.resyncVariant()
		return 0, false
	}
	code, err := strconv.ParseUint(p.l.lit, 10, 16)
	if err != nil || !httperr.ValidStatus(int(code)) {
		p.diags.Add(p.l.pos, KindInvalidStatusCode, "invalid status code %s", p.l.lit)
		p.l.next()
		p.expect(')')
		return 0, false
	}
	p.l.next()
	if !p.expect(')') {
		return 0, false
	}
	return int(code), true
}

func (p *schemaParser) parseReason() *Template {
	if !p.expect('(') {
		return nil
	}
	if p.l.tok != scanner.String && p.l.tok != scanner.RawString {
		p.diags.Add(p.l.pos, KindSyntax, "reason requires a string literal, found %q", p.l.lit)
		p.resyncVariant()
		return nil
	}
	pos := p.l.pos
	text, err := strconv.Unquote(p.l.lit)
	if err != nil {
		p.diags.Add(pos, KindSyntax, "malformed string literal %s", p.l.lit)
		text = ""
	}
	p.l.next()
	p.expect(')')
	return newTemplate(text, pos)
}

func (p *schemaParser) parseData() []DataEntry {
	if !p.expect('(') {
		return nil
	}
	var entries []DataEntry
	seen := make(map[string]scanner.Position)
	for p.l.tok != ')' && p.l.tok != scanner.EOF {
		entry, ok := p.parseDataEntry()
		if !ok {
			p.resyncVariant()
			return entries
		}
		if !entry.Key.Expr {
			if first, dup := seen[entry.Key.Text]; dup {
				p.diags.Add(entry.Pos, KindDuplicateArgument, "duplicate data key %q (first at %s)", entry.Key.Text, first)
			}
			seen[entry.Key.Text] = entry.Pos
		}
		entries = append(entries, entry)
		if p.l.tok == ',' {
			p.l.next()
		}
	}
	p.expect(')')
	return entries
}

func (p *schemaParser) parseDataEntry() (DataEntry, bool) {
	entry := DataEntry{Pos: p.l.pos}
	switch p.l.tok {
	case scanner.Ident:
		entry.Key = DataKey{Text: p.l.lit}
		p.l.next()
	case '[':
		/* A bracketed single expression becomes a dynamic key evaluated at
		the generation site. */
		p.l.next()
		raw := p.captureType(']', ']')
		p.checkGoExpr(raw, entry.Pos, "data key expression")
		entry.Key = DataKey{Expr: true, Text: raw}
		if !p.expect(']') {
			return entry, false
		}
	default:
		p.diags.Add(p.l.pos, KindSyntax, "expected data key, found %q", p.l.lit)
		return entry, false
	}
	if !p.expect('=') {
		return entry, false
	}
	pos := p.l.pos
	raw := p.captureType(',', ')')
	value, ok := p.classifyDataValue(raw, pos)
	if !ok {
		return entry, false
	}
	entry.Value = value
	return entry, true
}

/*
classifyDataValue sorts a raw data value into one of three kinds: string
literals become templates, other literals are forwarded verbatim, anything
else is forwarded unevaluated as an expression.
*/
func (p *schemaParser) classifyDataValue(raw string, pos scanner.Position) (DataValue, bool) {
	if raw == "" {
		p.diags.Add(pos, KindSyntax, "missing data value")
		return DataValue{}, false
	}
	if raw[0] == '"' || raw[0] == '`' {
		if text, err := strconv.Unquote(raw); err == nil {
			return DataValue{Kind: ValueTemplate, Template: newTemplate(text, pos)}, true
		}
	}
	expr, err := parser.ParseExpr(raw)
	if err != nil {
		p.diags.Add(pos, KindSyntax, "invalid data value %q: %v", raw, err)
		return DataValue{}, false
	}
	switch e := expr.(type) {
	case *ast.BasicLit:
		return DataValue{Kind: ValueLiteral, Text: raw}, true
	case *ast.Ident:
		if e.Name == "true" || e.Name == "false" {
			return DataValue{Kind: ValueLiteral, Text: raw}, true
		}
	case *ast.UnaryExpr:
		if _, lit := e.X.(*ast.BasicLit); lit && (e.Op == token.SUB || e.Op == token.ADD) {
			return DataValue{Kind: ValueLiteral, Text: raw}, true
		}
	}
	return DataValue{Kind: ValueExpr, Text: strings.TrimSpace(raw)}, true
}

/* skipAttributePayload discards the optional parenthesized payload of an
unrecognized attribute so parsing can continue at the next one. */
func (p *schemaParser) skipAttributePayload() {
	if p.l.tok != '(' {
		return
	}
	depth := 0
	for p.l.tok != scanner.EOF {
		switch p.l.tok {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				p.l.next()
				return
			}
		}
		p.l.next()
	}
}
