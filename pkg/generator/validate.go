package generator

/*
The validator. It combines each variant's Classification with its resolved
CauseRole and enforces the cross-field invariants the parser and resolver
cannot see on their own. Any diagnostic aborts emission for the file.
*/

/* check resolves cause roles and validates every declaration, accumulating
diagnostics across all variants. */
func check(decls []*Decl, diags *DiagnosticList) {
	for _, decl := range decls {
		for _, v := range decl.Variants {
			resolveCause(v, diags)
		}
		validateDecl(decl, diags)
	}
}

func validateDecl(decl *Decl, diags *DiagnosticList) {
	for _, v := range decl.Variants {
		if v.Class.Kind == ClassTransparent && v.Cause.Kind == CauseNone {
			diags.Add(v.Pos, KindTransparentMissingCause,
				"variant %s: `transparent` requires a @from or @source field", v.Name)
		}
		bt := variantBindings(v)
		if v.Class.Reason != nil {
			checkPlaceholders(v, v.Class.Reason, bt, diags)
		}
		for _, entry := range v.Class.Data {
			if entry.Value.Kind == ValueTemplate {
				checkPlaceholders(v, entry.Value.Template, bt, diags)
			}
		}
	}
}

/* Every placeholder must close and bind to a field of the variant; malformed
or dangling references are reported instead of being emitted unchecked. */
func checkPlaceholders(v *Variant, t *Template, bt bindingTable, diags *DiagnosticList) {
	if t.unterminated() {
		diags.Add(t.Pos, KindSyntax, "variant %s: unterminated placeholder in template", v.Name)
	}
	for _, ref := range t.refs() {
		if _, ok := bt.byName(ref); !ok {
			diags.Add(t.Pos, KindDanglingPlaceholder,
				"variant %s: placeholder {%s} does not reference a field", v.Name, ref)
		}
	}
}
