package generator

import "text/scanner"

/* The schema model. All of it is constructed once by the parser and read-only
afterwards; nothing here survives into the generated program. */

type FieldShape int

const (
	ShapeUnit FieldShape = iota
	ShapeNamed
	ShapePositional
)

/* Decl is a single error sum type declaration read from a schema file. */
type Decl struct {
	Name     string
	Pos      scanner.Position
	Variants []*Variant
}

type Variant struct {
	Name   string
	Pos    scanner.Position
	Shape  FieldShape
	Fields []*Field
	Class  Classification
	Cause  CauseRole
}

/* Field is one field of a variant. Name is empty for positional fields, which
are addressed by Index instead. */
type Field struct {
	Name  string
	Index int
	Type  string
	Pos   scanner.Position

	/* Cause markers, at most one of which may be set per variant. */
	AutoWrap bool // @from
	Source   bool // @source
}

type ClassKind int

const (
	ClassExplicit ClassKind = iota
	ClassTransparent
)

/* Classification captures the attribute block of a variant. Status, Reason and
Data are only meaningful for ClassExplicit. */
type Classification struct {
	Kind   ClassKind
	Status int
	Reason *Template
	Data   []DataEntry
}

type CauseKind int

const (
	CauseNone CauseKind = iota
	CauseAutoWrap
	CauseSource
)

/* CauseRole names the field that carries the wrapped cause of a variant, if
any. */
type CauseRole struct {
	Kind  CauseKind
	Field *Field
}

type DataEntry struct {
	Key   DataKey
	Value DataValue
	Pos   scanner.Position
}

/* DataKey is either a literal string key or a bracketed Go expression
evaluated at the generation site. */
type DataKey struct {
	Expr bool
	Text string
}

type DataValueKind int

const (
	/* String literal values become templates over the variant's fields. */
	ValueTemplate DataValueKind = iota
	/* Non-string literals are forwarded verbatim. */
	ValueLiteral
	/* Anything else is forwarded unevaluated as a Go expression. */
	ValueExpr
)

type DataValue struct {
	Kind     DataValueKind
	Template *Template // ValueTemplate only
	Text     string    // raw Go source for ValueLiteral and ValueExpr
}
