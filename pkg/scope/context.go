package scope

import (
	"fmt"

	"github.com/stackb/sigh-scope/pkg/ast"
)

// DeclarationContext is the result of a successful lookup: the declaration
// and the scope in which it was found.
type DeclarationContext struct {
	Scope       *Scope
	Declaration ast.DeclarationNode
	// Hops is the number of parent links climbed from the scope where the
	// lookup started.  Zero means the binding is local.
	Hops int
}

// String implements fmt.Stringer
func (c DeclarationContext) String() string {
	if c.Scope == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s %s (scope %d, %d hops)", c.Declaration.DeclaredThing(), c.Declaration.Name(), c.Scope.ID(), c.Hops)
}
