package program

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/stackb/sigh-scope/pkg/ast"
)

// node is the Starlark value of a syntax tree node.
type node struct {
	ast.Node
}

var _ starlark.Value = (*node)(nil)

func (n *node) String() string        { return n.Contents() }
func (n *node) Freeze()               {}
func (n *node) Truth() starlark.Bool  { return starlark.True }
func (n *node) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", n.Type()) }

func (n *node) Type() string {
	switch n.Node.(type) {
	case *ast.FunDeclaration:
		return "fun"
	case *ast.Parameter:
		return "param"
	case *ast.VarDeclaration:
		return "var"
	case *ast.StructDeclaration:
		return "struct"
	case *ast.FieldDeclaration:
		return "field"
	case *ast.Block:
		return "block"
	case *ast.Reference:
		return "ref"
	case *ast.Call:
		return "call"
	default:
		return "node"
	}
}

// nodes converts a list of node values.
func nodes(fn, what string, list *starlark.List) ([]ast.Node, error) {
	if list == nil {
		return nil, nil
	}
	out := make([]ast.Node, 0, list.Len())
	for idx := 0; idx < list.Len(); idx++ {
		v, ok := list.Index(idx).(*node)
		if !ok {
			return nil, fmt.Errorf("%s: %s[%d]: got %s, want a declaration or statement", fn, what, idx, list.Index(idx).Type())
		}
		out = append(out, v.Node)
	}
	return out, nil
}

// statement checks that n can appear in a statement list.
func statement(fn string, n ast.Node) error {
	switch n.(type) {
	case *ast.FunDeclaration, *ast.VarDeclaration, *ast.StructDeclaration, *ast.Block, *ast.Reference, *ast.Call:
		return nil
	}
	return fmt.Errorf("%s: %s is not a statement", fn, n.Contents())
}

// typeRef parses type syntax for builtin fn.
func typeRef(fn string, pos ast.Position, spelling string) (*ast.TypeRef, error) {
	ref, err := ast.ParseTypeRef(pos, spelling)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return ref, nil
}

// identifier checks that name can be declared or referenced by builtin fn.
func identifier(fn, name string) error {
	if !ast.IsIdentifier(name) {
		return fmt.Errorf("%s: invalid name %q", fn, name)
	}
	return nil
}
