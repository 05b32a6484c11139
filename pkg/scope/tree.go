package scope

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stackb/sigh-scope/pkg/ast"
)

// ScopeID identifies a scope in its tree.
type ScopeID uint32

// NoScopeID marks the absence of a scope, e.g. the parent of the root.
const NoScopeID ScopeID = 0

// IsValid reports whether the id can refer to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// ErrUnknownScope is returned when a ScopeID was not allocated by the tree.
var ErrUnknownScope = errors.New("unknown scope")

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) TreeOption {
	return func(t *Tree) {
		t.logger = logger
	}
}

// Tree owns every scope of an analysis.  Scopes are allocated in the tree and
// addressed by ScopeID; a child only records the id of its parent.  Since a
// parent must exist before a child can name it, the parent relation is always
// a tree rooted at the scope created by NewTree.
//
// A Tree is not safe for concurrent mutation.
type Tree struct {
	// scopes is indexed by ScopeID; index 0 is NoScopeID and stays nil.
	scopes []*Scope
	logger zerolog.Logger
}

// NewTree creates a tree whose root scope is introduced by the given node.
func NewTree(root ast.Node, options ...TreeOption) *Tree {
	t := &Tree{
		scopes: []*Scope{nil},
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(t)
	}
	t.alloc(root, nil)
	return t
}

// Root returns the scope without parent.
func (t *Tree) Root() *Scope {
	return t.scopes[1]
}

// NewScope allocates a scope nested in the given parent.
func (t *Tree) NewScope(node ast.Node, parent ScopeID) (*Scope, error) {
	p, ok := t.Scope(parent)
	if !ok {
		return nil, fmt.Errorf("new scope for %q: parent %d: %w", contents(node), parent, ErrUnknownScope)
	}
	return t.alloc(node, p), nil
}

// Scope returns the scope with the given id.
func (t *Tree) Scope(id ScopeID) (*Scope, bool) {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil, false
	}
	return t.scopes[id], true
}

// Len returns the number of scopes in the tree.
func (t *Tree) Len() int {
	return len(t.scopes) - 1
}

// Scopes returns all scopes in allocation order.  A parent always precedes
// its children.
func (t *Tree) Scopes() []*Scope {
	out := make([]*Scope, len(t.scopes)-1)
	copy(out, t.scopes[1:])
	return out
}

func (t *Tree) alloc(node ast.Node, parent *Scope) *Scope {
	s := &Scope{
		tree:     t,
		id:       ScopeID(len(t.scopes)),
		node:     node,
		bindings: make(map[Key]binding),
	}
	if parent != nil {
		s.parent = parent.id
		s.depth = parent.depth + 1
	}
	t.scopes = append(t.scopes, s)

	t.logger.Debug().
		Uint32("scope", uint32(s.id)).
		Uint32("parent", uint32(s.parent)).
		Str("node", contents(node)).
		Msg("new scope")

	return s
}

func contents(node ast.Node) string {
	if node == nil {
		return "<nil>"
	}
	return node.Contents()
}
