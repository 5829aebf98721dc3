package generator

import (
	"testing"
	"text/scanner"

	"github.com/stretchr/testify/assert"
)

func tmpl(text string) *Template {
	return newTemplate(text, scanner.Position{})
}

func TestTemplateRewrite(t *testing.T) {
	assert.Equal(t, "reason {"+aliasPrefix+"0}", tmpl("reason {0}").Raw)
	assert.Equal(t, "a {{b}} {"+aliasPrefix+"x}", tmpl("a {{b}} {x}").Raw)
	assert.Equal(t, "plain", tmpl("plain").Raw)
}

func TestTemplateRefs(t *testing.T) {
	assert.Equal(t, []string{"field", "0"}, tmpl("{field} and {0}").refs())
	assert.Empty(t, tmpl("no placeholders, {{escaped}}").refs())
}

func TestTemplateFmtArgs(t *testing.T) {
	bt := bindingTable{
		{name: "0", accessor: "e.F0"},
		{name: "count", accessor: "e.count"},
	}

	format, args := tmpl("limit {count} hit {0}").fmtArgs(bt)
	assert.Equal(t, "limit %v hit %v", format)
	assert.Equal(t, []string{"e.count", "e.F0"}, args)

	format, args = tmpl("100% of {{all}} {0}").fmtArgs(bt)
	assert.Equal(t, "100%% of {all} %v", format)
	assert.Equal(t, []string{"e.F0"}, args)
}

func TestTemplateUnterminated(t *testing.T) {
	assert.True(t, tmpl("reason {0").unterminated())
	assert.True(t, tmpl("trailing {").unterminated())
	assert.False(t, tmpl("reason {0}").unterminated())
	assert.False(t, tmpl("escaped {{").unterminated())
	assert.False(t, tmpl("plain").unterminated())
}

func TestTemplateLiteral(t *testing.T) {
	assert.Equal(t, "deadline 100%", tmpl("deadline 100%").literal())
	assert.Equal(t, "{kept}", tmpl("{{kept}}").literal())
}
