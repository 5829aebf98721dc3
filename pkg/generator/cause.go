package generator

/*
The cross-reference resolver. It scans a variant's fields for the @from and
@source cause markers and settles on at most one CauseRole. @from additionally
promises an auto-wrap constructor, which is only coherent for a variant whose
sole positional field is the cause.
*/

func resolveCause(v *Variant, diags *DiagnosticList) {
	var marked []*Field
	for _, f := range v.Fields {
		if f.AutoWrap && f.Source {
			diags.Add(f.Pos, KindConflictingRoleMarkers,
				"variant %s: a field may not carry both @from and @source", v.Name)
		}
		if f.AutoWrap || f.Source {
			marked = append(marked, f)
		}
	}
	if len(marked) == 0 {
		v.Cause = CauseRole{Kind: CauseNone}
		return
	}
	if len(marked) > 1 {
		diags.Add(marked[1].Pos, KindConflictingRoleMarkers,
			"variant %s: at most one field may carry a cause marker", v.Name)
	}
	f := marked[0]
	if f.AutoWrap {
		if v.Shape != ShapePositional || len(v.Fields) != 1 {
			diags.Add(f.Pos, KindInvalidFromArity,
				"variant %s: @from requires exactly one positional field", v.Name)
		}
		v.Cause = CauseRole{Kind: CauseAutoWrap, Field: f}
		return
	}
	v.Cause = CauseRole{Kind: CauseSource, Field: f}
}
