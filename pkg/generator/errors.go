package generator

import (
	"errors"
	"fmt"
	"strings"
	"text/scanner"
)

/* Diagnostics reported by the generator. All of them indicate a malformed
schema and abort emission for the offending file; none can occur at run time
of the generated code. */

type DiagnosticKind int

const (
	KindSyntax DiagnosticKind = iota
	KindUnsupportedDeclaration
	KindMissingStatus
	KindUnrecognizedArgument
	KindDuplicateArgument
	KindConflictingRoleMarkers
	KindInvalidFromArity
	KindTransparentConflict
	KindInvalidStatusCode
	KindTransparentMissingCause
	KindDanglingPlaceholder
)

var kindNames = map[DiagnosticKind]string{
	KindSyntax:                  "syntax error",
	KindUnsupportedDeclaration:  "unsupported declaration",
	KindMissingStatus:           "missing status",
	KindUnrecognizedArgument:    "unrecognized argument",
	KindDuplicateArgument:       "duplicate argument",
	KindConflictingRoleMarkers:  "conflicting role markers",
	KindInvalidFromArity:        "invalid @from arity",
	KindTransparentConflict:     "transparent conflict",
	KindInvalidStatusCode:       "invalid status code",
	KindTransparentMissingCause: "transparent without cause",
	KindDanglingPlaceholder:     "dangling placeholder",
}

func (k DiagnosticKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("diagnostic(%d)", int(k))
}

/* Diagnostic is a single located schema error. */
type Diagnostic struct {
	Pos  scanner.Position
	Kind DiagnosticKind
	Msg  string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Msg)
}

/*
DiagnosticList accumulates diagnostics across all variants of a file rather
than stopping at the first failure, so a single run reports everything there
is to fix.
*/
type DiagnosticList []*Diagnostic

func (l *DiagnosticList) Add(pos scanner.Position, kind DiagnosticKind, format string, args ...any) {
	*l = append(*l, &Diagnostic{Pos: pos, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

/* Err returns the list as an error, or nil if it is empty. */
func (l DiagnosticList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l DiagnosticList) Error() string {
	msgs := make([]string, len(l))
	for i, d := range l {
		msgs[i] = d.Error()
	}
	return strings.Join(msgs, "\n")
}

/* Error type used when processing a single schema file fails, wrapping the
underlying diagnostics or I/O error. */
type ErrFileProcessing struct {
	embedded              error
	inputFile, outputFile string
}

func (e *ErrFileProcessing) Unwrap() error { return e.embedded }
func (e *ErrFileProcessing) Error() string {
	return fmt.Sprintf("failed to process schema %q to %q:\n%v", e.inputFile, e.outputFile, e.embedded)
}

func ErrNoSchemaFiles(dir string) error {
	return fmt.Errorf(`generator: no schema files (*%s) found in %q`, schemaFileExt, dir)
}

/* HasKind reports whether err carries a diagnostic of the given kind anywhere
in its chain. */
func HasKind(err error, kind DiagnosticKind) bool {
	for err != nil {
		var list DiagnosticList
		if errors.As(err, &list) {
			for _, d := range list {
				if d.Kind == kind {
					return true
				}
			}
			return false
		}
		err = errors.Unwrap(err)
	}
	return false
}
