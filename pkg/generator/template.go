package generator

import (
	"strings"
	"text/scanner"
)

/* Placeholders are rewritten at parse time to carry this prefix so they can
never collide with a user-declared identifier in emitted code. */
const aliasPrefix = "__f_"

/*
Template is a reason or data string with placeholders over the fields of a
variant: {name} for named fields, {0}, {1}, ... for positional ones. Raw holds
the rewritten text in which every placeholder opens with the private alias
prefix. {{ and }} escape literal braces.
*/
type Template struct {
	Raw string
	Pos scanner.Position
}

func newTemplate(text string, pos scanner.Position) *Template {
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if runes[i] == '{' {
			if i+1 < len(runes) && runes[i+1] == '{' {
				b.WriteRune('{')
				i++
				continue
			}
			b.WriteString(aliasPrefix)
		}
	}
	return &Template{Raw: b.String(), Pos: pos}
}

/* refs returns the placeholder names, alias prefix stripped, in order of
appearance. Malformed placeholders are returned as-is so that validation can
flag them. */
func (t *Template) refs() []string {
	var refs []string
	runes := []rune(t.Raw)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				i++
				continue
			}
			j := i + 1
			for j < len(runes) && runes[j] != '}' {
				j++
			}
			refs = append(refs, strings.TrimPrefix(string(runes[i+1:j]), aliasPrefix))
			i = j
		case '}':
			if i+1 < len(runes) && runes[i+1] == '}' {
				i++
			}
		}
	}
	return refs
}

/* unterminated reports whether the template opens a placeholder that never
closes. */
func (t *Template) unterminated() bool {
	runes := []rune(t.Raw)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				i++
				continue
			}
			j := i + 1
			for j < len(runes) && runes[j] != '}' {
				j++
			}
			if j == len(runes) {
				return true
			}
			i = j
		case '}':
			if i+1 < len(runes) && runes[i+1] == '}' {
				i++
			}
		}
	}
	return false
}

/*
fmtArgs lowers the template to a fmt format string plus the accessor
expressions for its placeholders, resolved through the variant's binding
table. Unresolvable placeholders are skipped; the validator reports them
before emission is ever reached.
*/
func (t *Template) fmtArgs(bt bindingTable) (format string, args []string) {
	var b strings.Builder
	runes := []rune(t.Raw)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				b.WriteRune('{')
				i++
				continue
			}
			j := i + 1
			for j < len(runes) && runes[j] != '}' {
				j++
			}
			name := strings.TrimPrefix(string(runes[i+1:j]), aliasPrefix)
			if bind, ok := bt.byName(name); ok {
				b.WriteString("%v")
				args = append(args, bind.accessor)
			}
			i = j
		case '}':
			b.WriteRune('}')
			if i+1 < len(runes) && runes[i+1] == '}' {
				i++
			}
		case '%':
			b.WriteString("%%")
		default:
			b.WriteRune(runes[i])
		}
	}
	return b.String(), args
}

/* literal returns the plain text of a template without placeholders, brace
escapes resolved. */
func (t *Template) literal() string {
	format, _ := t.fmtArgs(nil)
	return strings.ReplaceAll(format, "%%", "%")
}
