package generator

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

/*
The code generator. Four emitters share every variant's binding table so the
rendering, the canonical conversion, the error bridge and the auto-wrap
constructors all address fields identically:

  - Error() string         renders the variant, delegating to the cause where
    one is declared and entirely so for transparent variants.
  - HTTPError() *Error     builds the canonical structured error.
  - Unwrap() error         bridges a bare variant value into the generic error
    chain by delegating to the canonical conversion.
  - New<Variant>(cause)    wraps a cause value directly into the sum type for
    every @from variant.
*/

/* binding ties one field to the alias used by template placeholders and to
the accessor expression emitted for it. */
type binding struct {
	name     string // placeholder name: field name, or index digits
	alias    string
	accessor string
	field    *Field
}

type bindingTable []binding

func variantBindings(v *Variant) bindingTable {
	bt := make(bindingTable, 0, len(v.Fields))
	for i, f := range v.Fields {
		name := f.Name
		if v.Shape == ShapePositional {
			name = strconv.Itoa(i)
		}
		bt = append(bt, binding{
			name:     name,
			alias:    aliasPrefix + name,
			accessor: "e." + structFieldName(v, f),
			field:    f,
		})
	}
	return bt
}

func (bt bindingTable) byName(name string) (binding, bool) {
	for _, b := range bt {
		if b.name == name {
			return b, true
		}
	}
	return binding{}, false
}

func (bt bindingTable) forField(f *Field) binding {
	for _, b := range bt {
		if b.field == f {
			return b
		}
	}
	return binding{}
}

/* Positional fields become F0, F1, ...; named fields keep their declared
name. */
func structFieldName(v *Variant, f *Field) string {
	if v.Shape == ShapePositional {
		return "F" + strconv.Itoa(f.Index)
	}
	return f.Name
}

type fileView struct {
	Package     string
	ImportBlock string
	Decls       []*declView
}

type declView struct {
	Name     string
	Variants []*variantView
}

type fieldView struct {
	Name, Type string
}

type ctorView struct {
	ParamType string
	FieldName string
}

type variantView struct {
	GroupName  string
	StructName string
	Fields     []fieldView
	RenderExpr string
	ConvExpr   string
	Ctor       *ctorView
}

/* emitState tracks which imports the emitted expressions require. */
type emitState struct {
	needsFmt    bool
	needsErrors bool
}

func buildFileView(pkg, runtimeImport string, decls []*Decl) *fileView {
	state := &emitState{}
	view := &fileView{Package: pkg}
	for _, decl := range decls {
		dv := &declView{Name: decl.Name}
		for _, v := range decl.Variants {
			dv.Variants = append(dv.Variants, buildVariantView(decl, v, state))
		}
		view.Decls = append(view.Decls, dv)
	}
	view.ImportBlock = importBlock(runtimeImport, state)
	return view
}

func buildVariantView(decl *Decl, v *Variant, state *emitState) *variantView {
	bt := variantBindings(v)
	vv := &variantView{
		GroupName:  decl.Name,
		StructName: decl.Name + v.Name,
	}
	for _, f := range v.Fields {
		vv.Fields = append(vv.Fields, fieldView{Name: structFieldName(v, f), Type: f.Type})
	}
	vv.RenderExpr = renderExpr(decl, v, bt, state)
	vv.ConvExpr = convExpr(v, bt, state)
	if v.Cause.Kind == CauseAutoWrap {
		vv.Ctor = &ctorView{
			ParamType: v.Cause.Field.Type,
			FieldName: structFieldName(v, v.Cause.Field),
		}
	}
	return vv
}

/* Render emitter. */
func renderExpr(decl *Decl, v *Variant, bt bindingTable, state *emitState) string {
	path := decl.Name + "." + v.Name
	if v.Class.Kind == ClassTransparent {
		if v.Cause.Field == nil {
			return strconv.Quote(path)
		}
		state.needsFmt = true
		return fmt.Sprintf("fmt.Sprint(%s)", bt.forField(v.Cause.Field).accessor)
	}
	if v.Cause.Kind == CauseNone {
		return strconv.Quote(path)
	}
	state.needsFmt = true
	return fmt.Sprintf("fmt.Sprintf(%q, %s)", path+": %v", bt.forField(v.Cause.Field).accessor)
}

/* Canonical-conversion emitter. */
func convExpr(v *Variant, bt bindingTable, state *emitState) string {
	if v.Class.Kind == ClassTransparent {
		if v.Cause.Field == nil {
			return "httperr.New()"
		}
		return fmt.Sprintf("httperr.FromError(%s)", bt.forField(v.Cause.Field).accessor)
	}
	calls := []string{
		"httperr.New()",
		fmt.Sprintf("WithStatusCode(%d)", v.Class.Status),
	}
	if v.Class.Reason != nil {
		calls = append(calls, fmt.Sprintf("WithReason(%s)", templateExpr(v.Class.Reason, bt, state)))
	}
	for _, entry := range v.Class.Data {
		calls = append(calls, fmt.Sprintf("WithKeyValue(%s, %s)",
			keyExpr(entry.Key), valueExpr(entry.Value, bt, state)))
	}
	if v.Cause.Kind == CauseNone {
		/* A synthetic cause built from the rendered variant, so the canonical
		error always carries one. */
		state.needsErrors = true
		calls = append(calls, "WithCause(errors.New(e.Error()))")
	} else {
		calls = append(calls, fmt.Sprintf("WithCause(%s)", bt.forField(v.Cause.Field).accessor))
	}
	return strings.Join(calls, ".\n\t\t")
}

func templateExpr(t *Template, bt bindingTable, state *emitState) string {
	format, args := t.fmtArgs(bt)
	if len(args) == 0 {
		return strconv.Quote(t.literal())
	}
	state.needsFmt = true
	return fmt.Sprintf("fmt.Sprintf(%s, %s)", strconv.Quote(format), strings.Join(args, ", "))
}

func keyExpr(key DataKey) string {
	if key.Expr {
		return key.Text
	}
	return strconv.Quote(key.Text)
}

func valueExpr(value DataValue, bt bindingTable, state *emitState) string {
	if value.Kind == ValueTemplate {
		return templateExpr(value.Template, bt, state)
	}
	return value.Text
}

func importBlock(runtimeImport string, state *emitState) string {
	var std []string
	if state.needsErrors {
		std = append(std, "errors")
	}
	if state.needsFmt {
		std = append(std, "fmt")
	}
	sort.Strings(std)
	var b strings.Builder
	b.WriteString("import (\n")
	for _, path := range std {
		fmt.Fprintf(&b, "\t%q\n", path)
	}
	if len(std) > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\t%q\n)", runtimeImport)
	return b.String()
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by httperrgen. DO NOT EDIT.

package {{.Package}}

{{.ImportBlock}}
{{range .Decls}}
type {{.Name}} interface {
	error

	HTTPError() *httperr.Error

	is{{.Name}}()
}
{{range .Variants}}
{{if .Fields}}type {{.StructName}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}
{{- end}}
}{{else}}type {{.StructName}} struct{}{{end}}

var _ {{.GroupName}} = (*{{.StructName}})(nil)

func (e *{{.StructName}}) is{{.GroupName}}() {}

func (e *{{.StructName}}) Error() string {
	return {{.RenderExpr}}
}

func (e *{{.StructName}}) HTTPError() *httperr.Error {
	return {{.ConvExpr}}
}

func (e *{{.StructName}}) Unwrap() error {
	return e.HTTPError()
}
{{if .Ctor}}
func New{{.StructName}}(cause {{.Ctor.ParamType}}) *{{.StructName}} {
	return &{{.StructName}}{{"{"}}{{.Ctor.FieldName}}: cause}
}
{{end}}{{end}}{{end}}`))

/* renderFile emits the full artifact for one schema file. The caller runs the
result through the imports formatter before writing it out. */
func renderFile(pkg, runtimeImport string, decls []*Decl) ([]byte, error) {
	const errPrefix = `generator.renderFile: `
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, buildFileView(pkg, runtimeImport, decls)); err != nil {
		return nil, fmt.Errorf(errPrefix+`template execution error: %w`, err)
	}
	return buf.Bytes(), nil
}
