package analysis

import (
	"fmt"

	"github.com/stackb/sigh-scope/pkg/ast"
	"github.com/stackb/sigh-scope/pkg/scope"
	"github.com/stackb/sigh-scope/pkg/types"
)

// Analyze builds the scope tree of a program and resolves every reference,
// call and type reference in it.  Problems are recorded as diagnostics on the
// returned session; analysis never stops early.
func Analyze(root *ast.Root, options ...Option) *Session {
	s := newSession(root, options...)

	rootScope := s.tree.Root()
	s.register(root, rootScope, RootPath)
	s.pushScope(rootScope)
	if s.builtins {
		declareBuiltins(rootScope)
	}
	s.statements(root.Declarations)
	s.popScope()

	s.logger.Info().
		Int("scopes", s.tree.Len()).
		Int("resolutions", len(s.resolutions)).
		Int("diagnostics", len(s.diagnostics)).
		Msg("analysis complete")

	return s
}

func (s *Session) currentScope() *scope.Scope {
	sc, _ := s.current.Peek()
	return sc
}

func (s *Session) pushScope(sc *scope.Scope) {
	s.current.Push(sc)
}

func (s *Session) popScope() {
	s.current.Pop()
}

// enter allocates a scope for node nested in the current one and makes it
// current.
func (s *Session) enter(node ast.Node, segment string) *scope.Scope {
	parent := s.currentScope()
	sc := parent.NewChild(node)
	s.register(node, sc, s.paths[parent.ID()]+"/"+segment)
	s.pushScope(sc)
	return sc
}

func (s *Session) register(node ast.Node, sc *scope.Scope, path string) {
	if s.index.Get(path) != nil {
		path = fmt.Sprintf("%s#%d", path, sc.ID())
	}
	s.scopes[node] = sc
	s.paths[sc.ID()] = path
	s.index.Put(path, sc)
}

// statements hoists the struct and function declarations of a statement list
// into the current scope, then analyzes each statement in order.
func (s *Session) statements(nodes []ast.Node) {
	for _, node := range nodes {
		if n, ok := node.(*ast.StructDeclaration); ok {
			s.declare(scope.Simple(n.Identifier), n)
		}
	}
	for _, node := range nodes {
		if n, ok := node.(*ast.FunDeclaration); ok {
			key := s.funKey(n)
			s.funKeys[n] = key
			s.declare(key, n)
		}
	}
	for _, node := range nodes {
		s.statement(node)
	}
}

func (s *Session) statement(node ast.Node) {
	switch n := node.(type) {
	case *ast.StructDeclaration:
		for _, field := range n.Fields {
			s.typeOf(field.Type)
		}
	case *ast.FunDeclaration:
		s.function(n)
	case *ast.VarDeclaration:
		s.variable(n)
	case *ast.Block:
		s.block(n, s.blockName())
	default:
		s.expression(n)
	}
}

func (s *Session) function(n *ast.FunDeclaration) {
	key, ok := s.funKeys[n]
	if !ok {
		key = s.funKey(n)
	}
	s.enter(n, key.String())
	for _, param := range n.Parameters {
		s.declare(scope.Simple(param.Identifier), param)
	}
	if n.Body != nil {
		s.block(n.Body, "body")
	}
	s.popScope()
}

func (s *Session) block(n *ast.Block, name string) {
	s.enter(n, name)
	s.statements(n.Statements)
	s.popScope()
}

func (s *Session) blockName() string {
	id := s.currentScope().ID()
	name := fmt.Sprintf("block%d", s.blocks[id])
	s.blocks[id]++
	return name
}

// variable resolves the initializer before declaring the variable, so an
// initializer that names the variable refers to an outer binding.
func (s *Session) variable(n *ast.VarDeclaration) {
	s.typeOf(n.Type)
	if n.Initializer != nil {
		s.expression(n.Initializer)
	}
	key := scope.Simple(n.Identifier)
	if ctx, ok := s.currentScope().Lookup(key); ok && ctx.Hops > 0 {
		if _, builtin := ctx.Declaration.(*ast.Synthetic); !builtin {
			s.report(SeverityWarning, n.Pos(), &ShadowWarning{Key: key, Shadowed: ctx.Declaration})
		}
	}
	s.declare(key, n)
}

func (s *Session) expression(node ast.Node) {
	switch n := node.(type) {
	case *ast.Reference:
		s.resolve(n, scope.Simple(n.Target))
	case *ast.Call:
		s.call(n)
	}
}

// call resolves a call site by the exact overload key built from its
// argument types.
func (s *Session) call(n *ast.Call) {
	params := make([]types.Type, 0, len(n.ArgTypes))
	for _, arg := range n.ArgTypes {
		t, ok := s.typeOf(arg)
		if !ok {
			return
		}
		params = append(params, t)
	}
	key := scope.Function(n.Callee, params...)
	from := s.currentScope()
	ctx, ok := from.Lookup(key)
	if !ok {
		s.report(SeverityError, n.Pos(), &UnresolvedError{
			Key:        key,
			Candidates: overloads(from, n.Callee),
		})
		return
	}
	s.resolved(&Resolution{Node: n, Key: key, From: from, Context: ctx})
}

// declare binds key in the current scope, reporting an existing local binding
// of the same key first.
func (s *Session) declare(key scope.Identifier, decl ast.DeclarationNode) {
	sc := s.currentScope()
	if prev, ok := sc.LookupLocal(key); ok {
		s.report(SeverityError, decl.Pos(), &DuplicateDeclarationError{
			Key:         key,
			Previous:    prev,
			Declaration: decl,
		})
	}
	sc.Declare(key, decl)
	s.logger.Debug().
		Str("scope", s.paths[sc.ID()]).
		Str("key", key.String()).
		Str("thing", decl.DeclaredThing()).
		Msg("declared")
}

// resolve looks key up from the current scope and records the outcome.
func (s *Session) resolve(node ast.Node, key scope.Identifier) (scope.DeclarationContext, bool) {
	from := s.currentScope()
	ctx, ok := from.Lookup(key)
	if !ok {
		s.report(SeverityError, node.Pos(), &UnresolvedError{Key: key})
		return ctx, false
	}
	s.resolved(&Resolution{Node: node, Key: key, From: from, Context: ctx})
	return ctx, true
}

// funKey computes the overload key of a function from its parameter types,
// resolving them in the current scope.
func (s *Session) funKey(n *ast.FunDeclaration) scope.Identifier {
	params := make([]types.Type, len(n.Parameters))
	for i, param := range n.Parameters {
		t, ok := s.typeOf(param.Type)
		if !ok {
			t = unknownType(param.Type)
		}
		params[i] = t
	}
	if n.ReturnType != nil {
		s.typeOf(n.ReturnType)
	}
	return scope.Function(n.Identifier, params...)
}

// typeOf resolves a type reference to a type.
func (s *Session) typeOf(ref *ast.TypeRef) (types.Type, bool) {
	if ref == nil {
		return types.Void, true
	}
	from := s.currentScope()
	key := scope.Simple(ref.TypeName)
	ctx, ok := from.Lookup(key)
	if !ok {
		s.report(SeverityError, ref.Pos(), &UnresolvedError{Key: key})
		return nil, false
	}
	t := declaredType(ctx.Declaration, ref.Dimensions)
	if t == nil {
		s.report(SeverityError, ref.Pos(), &NotATypeError{Name: ref.TypeName, Declaration: ctx.Declaration})
		return nil, false
	}
	s.resolved(&Resolution{
		Node:    ref,
		Key:     key,
		From:    from,
		Context: ctx,
		Type:    t,
	})
	return t, true
}

// declaredType returns the type named by decl with dims array dimensions, or
// nil if decl does not declare a type.
func declaredType(decl ast.DeclarationNode, dims int) types.Type {
	var t types.Type
	switch decl := decl.(type) {
	case *ast.StructDeclaration:
		t = types.Struct{StructName: decl.Identifier}
	case *ast.Synthetic:
		if decl.Kind == ast.SyntheticType {
			t, _ = types.Primitive(decl.Identifier)
		}
	}
	if t == nil {
		return nil
	}
	for i := 0; i < dims; i++ {
		t = types.Array{Component: t}
	}
	return t
}

// unknownType stands in for a parameter type that failed to resolve, so the
// function is still declared under a key no call site can build by accident.
func unknownType(ref *ast.TypeRef) types.Type {
	return types.Struct{StructName: "?" + ref.Contents()}
}

// overloads lists the function keys named name visible from sc, nearest
// first.  A key hidden by a nearer binding is listed once.
func overloads(sc *scope.Scope, name string) []scope.Identifier {
	var out []scope.Identifier
	seen := make(map[scope.Key]bool)
	for ; sc != nil; sc = sc.Parent() {
		for _, b := range sc.Bindings() {
			id := b.Identifier
			if id.Kind() != scope.KindFunction || id.Name() != name || seen[id.Key()] {
				continue
			}
			seen[id.Key()] = true
			out = append(out, id)
		}
	}
	return out
}
