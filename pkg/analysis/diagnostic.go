package analysis

import (
	"fmt"
	"strings"

	"github.com/stackb/sigh-scope/pkg/ast"
	"github.com/stackb/sigh-scope/pkg/scope"
)

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String implements fmt.Stringer
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a problem found during analysis.
type Diagnostic struct {
	Severity Severity
	Pos      ast.Position
	Err      error
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%v: %v: %v", d.Pos, d.Severity, d.Err)
}

// Unwrap returns the underlying error.
func (d Diagnostic) Unwrap() error { return d.Err }

// Reporter receives diagnostics as soon as they are produced.
type Reporter interface {
	Report(Diagnostic)
}

// DuplicateDeclarationError is reported when a key is declared twice in the
// same scope.  The later declaration replaces the earlier one.
type DuplicateDeclarationError struct {
	Key         scope.Identifier
	Previous    ast.DeclarationNode
	Declaration ast.DeclarationNode
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("%s %s redeclared in this scope (previous %s at %v)",
		e.Declaration.DeclaredThing(), e.Key, e.Previous.DeclaredThing(), e.Previous.Pos())
}

// ShadowWarning is reported when a variable hides a declaration of an
// enclosing scope.
type ShadowWarning struct {
	Key      scope.Identifier
	Shadowed ast.DeclarationNode
}

func (e *ShadowWarning) Error() string {
	return fmt.Sprintf("declaration of %s shadows %s declared at %v", e.Key, e.Shadowed.DeclaredThing(), e.Shadowed.Pos())
}

// UnresolvedError is reported when a key is not bound in any enclosing
// scope.  For calls, Candidates lists the visible overloads of the name.
type UnresolvedError struct {
	Key        scope.Identifier
	Candidates []scope.Identifier
}

func (e *UnresolvedError) Error() string {
	msg := fmt.Sprintf("could not resolve: %s", e.Key)
	if len(e.Candidates) == 0 {
		return msg
	}
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.String()
	}
	return msg + " (candidates: " + strings.Join(names, ", ") + ")"
}

// NotATypeError is reported when a type reference resolves to a declaration
// that does not name a type.
type NotATypeError struct {
	Name        string
	Declaration ast.DeclarationNode
}

func (e *NotATypeError) Error() string {
	return fmt.Sprintf("%s is a %s, not a type", e.Name, e.Declaration.DeclaredThing())
}
