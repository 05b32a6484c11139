package analysis

import (
	"github.com/stackb/sigh-scope/pkg/ast"
	"github.com/stackb/sigh-scope/pkg/scope"
	"github.com/stackb/sigh-scope/pkg/types"
)

// printable are the parameter types of the print overloads.
var printable = []types.Type{types.Int, types.Float, types.Bool, types.String}

// declareBuiltins populates the root scope with the builtin types, constants
// and functions.
func declareBuiltins(root *scope.Scope) {
	for _, t := range types.Primitives() {
		root.Declare(scope.Simple(t.Name()), &ast.Synthetic{Identifier: t.Name(), Kind: ast.SyntheticType})
	}
	for _, name := range []string{"true", "false", "null"} {
		root.Declare(scope.Simple(name), &ast.Synthetic{Identifier: name, Kind: ast.SyntheticVariable})
	}
	for _, t := range printable {
		root.Declare(scope.Function("print", t), &ast.Synthetic{Identifier: "print", Kind: ast.SyntheticFunction})
	}
}
