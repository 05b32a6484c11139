package scope

import (
	"strings"

	"github.com/stackb/sigh-scope/pkg/ast"
)

// Scope holds the name bindings of one lexical level.
type Scope struct {
	tree   *Tree
	id     ScopeID
	parent ScopeID
	depth  int
	// node is the AST node that introduced the scope.  Identity only.
	node ast.Node

	bindings map[Key]binding
	// order records keys in first-declaration order.
	order []Key
}

type binding struct {
	id   Identifier
	decl ast.DeclarationNode
}

// Binding is a single entry of a scope.
type Binding struct {
	Identifier  Identifier
	Declaration ast.DeclarationNode
}

// ID returns the id of the scope in its tree.
func (s *Scope) ID() ScopeID { return s.id }

// Node returns the AST node that introduced the scope.
func (s *Scope) Node() ast.Node { return s.node }

// ParentID returns the id of the enclosing scope, NoScopeID for the root.
func (s *Scope) ParentID() ScopeID { return s.parent }

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope {
	if !s.parent.IsValid() {
		return nil
	}
	return s.tree.scopes[s.parent]
}

// Depth returns the number of ancestors of the scope.
func (s *Scope) Depth() int { return s.depth }

// Tree returns the tree that owns the scope.
func (s *Scope) Tree() *Tree { return s.tree }

// NewChild allocates a scope nested in s.
func (s *Scope) NewChild(node ast.Node) *Scope {
	return s.tree.alloc(node, s)
}

// Declare binds key to decl in this scope, replacing any binding of an equal
// key in this scope.  Enclosing scopes are never modified.
func (s *Scope) Declare(key Identifier, decl ast.DeclarationNode) {
	k := key.Key()
	if prev, ok := s.bindings[k]; ok {
		s.tree.logger.Debug().
			Uint32("scope", uint32(s.id)).
			Str("key", key.String()).
			Str("previous", contents(prev.decl)).
			Msg("overwriting binding")
	} else {
		s.order = append(s.order, k)
	}
	s.bindings[k] = binding{id: key, decl: decl}
}

// Lookup searches this scope and then each enclosing scope in order,
// returning the first binding of key.  The walk is iterative, so scope nesting
// depth is unbounded.
func (s *Scope) Lookup(key Identifier) (DeclarationContext, bool) {
	k := key.Key()
	hops := 0
	for scope := s; scope != nil; scope = scope.Parent() {
		if b, ok := scope.bindings[k]; ok {
			return DeclarationContext{
				Scope:       scope,
				Declaration: b.decl,
				Hops:        hops,
			}, true
		}
		hops++
	}
	return DeclarationContext{}, false
}

// LookupLocal returns the binding of key in this scope only.
func (s *Scope) LookupLocal(key Identifier) (ast.DeclarationNode, bool) {
	b, ok := s.bindings[key.Key()]
	if !ok {
		return nil, false
	}
	return b.decl, true
}

// Len returns the number of local bindings.
func (s *Scope) Len() int { return len(s.bindings) }

// Bindings returns the local bindings in first-declaration order.  A key that
// was redeclared keeps its first position and reports the latest
// declaration.
func (s *Scope) Bindings() []Binding {
	out := make([]Binding, len(s.order))
	for i, k := range s.order {
		b := s.bindings[k]
		out[i] = Binding{Identifier: b.id, Declaration: b.decl}
	}
	return out
}

// String implements fmt.Stringer
func (s *Scope) String() string {
	var buf strings.Builder
	buf.WriteString("Scope {")
	for i, k := range s.order {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(s.bindings[k].id.String())
	}
	buf.WriteString("}")
	return buf.String()
}
