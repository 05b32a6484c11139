package scope_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackb/sigh-scope/pkg/ast"
	"github.com/stackb/sigh-scope/pkg/scope"
	"github.com/stackb/sigh-scope/pkg/testutil"
	"github.com/stackb/sigh-scope/pkg/types"
)

func newTree(t *testing.T) *scope.Tree {
	return scope.NewTree(&ast.Root{}, scope.WithLogger(testutil.Logger(t)))
}

func variable(name string) *ast.VarDeclaration {
	return &ast.VarDeclaration{Identifier: name, Type: &ast.TypeRef{TypeName: "Int"}}
}

func TestDeclareThenLookup(t *testing.T) {
	tree := newTree(t)
	root := tree.Root()
	d := variable("x")

	root.Declare(scope.Simple("x"), d)

	got, ok := root.Lookup(scope.Simple("x"))
	require.True(t, ok)
	assert.Same(t, root, got.Scope)
	assert.Same(t, d, got.Declaration)
	assert.Equal(t, 0, got.Hops)
}

func TestShadowing(t *testing.T) {
	tree := newTree(t)
	parent := tree.Root()
	child := parent.NewChild(&ast.Block{})
	d1, d2 := variable("x"), variable("x")

	parent.Declare(scope.Simple("x"), d1)
	child.Declare(scope.Simple("x"), d2)

	got, ok := child.Lookup(scope.Simple("x"))
	require.True(t, ok)
	assert.Same(t, child, got.Scope)
	assert.Same(t, d2, got.Declaration)

	got, ok = parent.Lookup(scope.Simple("x"))
	require.True(t, ok)
	assert.Same(t, parent, got.Scope)
	assert.Same(t, d1, got.Declaration)
}

func TestRedeclarationOverwrites(t *testing.T) {
	tree := newTree(t)
	s := tree.Root()
	d1, d2 := variable("x"), variable("x")

	s.Declare(scope.Simple("x"), d1)
	s.Declare(scope.Simple("x"), d2)

	got, ok := s.Lookup(scope.Simple("x"))
	require.True(t, ok)
	assert.Same(t, s, got.Scope)
	assert.Same(t, d2, got.Declaration)
	assert.Equal(t, 1, s.Len())

	bindings := s.Bindings()
	require.Len(t, bindings, 1)
	assert.Same(t, d2, bindings[0].Declaration)
}

func TestOverloadsAreDistinct(t *testing.T) {
	tree := newTree(t)
	s := tree.Root()
	fInt := &ast.FunDeclaration{Identifier: "f"}
	fString := &ast.FunDeclaration{Identifier: "f"}

	s.Declare(scope.Function("f", types.Int), fInt)
	s.Declare(scope.Function("f", types.String), fString)

	got, ok := s.Lookup(scope.Function("f", types.Int))
	require.True(t, ok)
	assert.Same(t, fInt, got.Declaration)

	got, ok = s.Lookup(scope.Function("f", types.String))
	require.True(t, ok)
	assert.Same(t, fString, got.Declaration)

	_, ok = s.Lookup(scope.Simple("f"))
	assert.False(t, ok, "simple key must not match a function key")

	_, ok = s.Lookup(scope.Function("f"))
	assert.False(t, ok, "nullary key must not match a unary overload")

	_, ok = s.Lookup(scope.Function("f", types.Float))
	assert.False(t, ok)
}

func TestSimpleBindingNotFoundByFunctionKey(t *testing.T) {
	tree := newTree(t)
	s := tree.Root()
	s.Declare(scope.Simple("f"), variable("f"))

	_, ok := s.Lookup(scope.Function("f"))
	assert.False(t, ok)
	_, ok = s.LookupLocal(scope.Function("f"))
	assert.False(t, ok)
}

func TestDeepChain(t *testing.T) {
	tree := newTree(t)
	root := tree.Root()
	d := variable("x")
	root.Declare(scope.Simple("x"), d)

	chain := []*scope.Scope{root}
	for i := 0; i < 4; i++ {
		next := chain[len(chain)-1].NewChild(&ast.Block{})
		next.Declare(scope.Simple("other"), variable("other"))
		chain = append(chain, next)
	}
	deepest := chain[len(chain)-1]
	require.Equal(t, 4, deepest.Depth())

	got, ok := deepest.Lookup(scope.Simple("x"))
	require.True(t, ok)
	assert.Same(t, root, got.Scope)
	assert.Same(t, d, got.Declaration)
	assert.Equal(t, 4, got.Hops)

	// the nearest "other" is the deepest scope's own
	got, ok = deepest.Lookup(scope.Simple("other"))
	require.True(t, ok)
	assert.Same(t, deepest, got.Scope)
}

func TestVeryDeepChain(t *testing.T) {
	tree := scope.NewTree(&ast.Root{})
	root := tree.Root()
	d := variable("x")
	root.Declare(scope.Simple("x"), d)

	s := root
	for i := 0; i < 100000; i++ {
		s = s.NewChild(&ast.Block{})
	}

	got, ok := s.Lookup(scope.Simple("x"))
	require.True(t, ok)
	assert.Same(t, d, got.Declaration)
	assert.Equal(t, 100000, got.Hops)
}

func TestLookupMiss(t *testing.T) {
	tree := newTree(t)
	_, ok := tree.Root().Lookup(scope.Simple("nope"))
	assert.False(t, ok)
}

func TestLookupLocalIgnoresAncestors(t *testing.T) {
	tree := newTree(t)
	root := tree.Root()
	child := root.NewChild(&ast.Block{})
	root.Declare(scope.Simple("x"), variable("x"))

	_, ok := child.Lookup(scope.Simple("x"))
	require.True(t, ok)

	_, ok = child.LookupLocal(scope.Simple("x"))
	assert.False(t, ok)
}

func TestLookupLocalFunctionKey(t *testing.T) {
	tree := newTree(t)
	s := tree.Root()
	f := &ast.FunDeclaration{Identifier: "f"}
	s.Declare(scope.Function("f", types.Int, types.Bool), f)

	got, ok := s.LookupLocal(scope.Function("f", types.Int, types.Bool))
	require.True(t, ok)
	assert.Same(t, f, got)
}

func TestConcreteScenario(t *testing.T) {
	tree := newTree(t)
	root := tree.Root()
	child := root.NewChild(&ast.Block{})
	d1, d2 := variable("x"), variable("x")

	root.Declare(scope.Simple("x"), d1)
	child.Declare(scope.Simple("x"), d2)

	got, ok := child.Lookup(scope.Simple("x"))
	require.True(t, ok, spew.Sdump(child.Bindings()))
	assert.Same(t, child, got.Scope)
	assert.Same(t, d2, got.Declaration)

	local, ok := root.LookupLocal(scope.Simple("x"))
	require.True(t, ok)
	assert.Same(t, d1, local)

	_, ok = child.Lookup(scope.Simple("y"))
	assert.False(t, ok)
}

func TestBindingsOrder(t *testing.T) {
	tree := newTree(t)
	s := tree.Root()
	s.Declare(scope.Simple("b"), variable("b"))
	s.Declare(scope.Function("a", types.Int), &ast.FunDeclaration{Identifier: "a"})
	s.Declare(scope.Simple("c"), variable("c"))
	s.Declare(scope.Simple("b"), variable("b"))

	var got []string
	for _, b := range s.Bindings() {
		got = append(got, b.Identifier.String())
	}
	if diff := cmp.Diff([]string{"b", "a(Int)", "c"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("Scope {b, a(Int), c}", s.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
