package analysis

import (
	"errors"
	"fmt"

	"github.com/dghubble/trie"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stackb/sigh-scope/pkg/ast"
	"github.com/stackb/sigh-scope/pkg/collections"
	"github.com/stackb/sigh-scope/pkg/scope"
	"github.com/stackb/sigh-scope/pkg/types"
)

// RootPath is the path of the root scope.
const RootPath = "root"

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.  The scope tree logs through it too.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithReporter registers a reporter that is handed each diagnostic.
func WithReporter(reporter Reporter) Option {
	return func(s *Session) {
		s.reporter = reporter
	}
}

// WithoutBuiltins leaves the root scope empty.
func WithoutBuiltins() Option {
	return func(s *Session) {
		s.builtins = false
	}
}

// WithWarningsAsErrors makes Err report warnings as well.
func WithWarningsAsErrors(enabled bool) Option {
	return func(s *Session) {
		s.warningsAsErrors = enabled
	}
}

// Resolution records what a name use in the program resolved to.
type Resolution struct {
	// Node is the reference, call or type reference.
	Node ast.Node
	// Key is the identifier that was looked up.
	Key scope.Identifier
	// From is the scope in which the lookup started.
	From *scope.Scope
	// Context is where the binding was found.
	Context scope.DeclarationContext
	// Type is set for type references.
	Type types.Type
}

// Session owns the scope tree built for one program and everything derived
// from it.  Drop the session to release the tree.
type Session struct {
	id               uuid.UUID
	root             *ast.Root
	tree             *scope.Tree
	logger           zerolog.Logger
	reporter         Reporter
	builtins         bool
	warningsAsErrors bool

	// current is the stack of scopes enclosing the node being analyzed.
	current collections.Stack[*scope.Scope]
	// scopes maps a scope-introducing node to its scope.
	scopes map[ast.Node]*scope.Scope
	// paths maps a scope to its slash-separated path.
	paths map[scope.ScopeID]string
	// index maps paths to scopes.
	index *trie.PathTrie
	// blocks counts anonymous blocks per parent scope, for naming.
	blocks map[scope.ScopeID]int
	// funKeys caches the keys computed while hoisting functions.
	funKeys map[*ast.FunDeclaration]scope.Identifier

	resolutions []*Resolution
	byNode      map[ast.Node]*Resolution
	diagnostics []Diagnostic
}

func newSession(root *ast.Root, options ...Option) *Session {
	s := &Session{
		id:       uuid.New(),
		root:     root,
		logger:   zerolog.Nop(),
		builtins: true,
		scopes:   make(map[ast.Node]*scope.Scope),
		paths:    make(map[scope.ScopeID]string),
		index:    trie.NewPathTrie(),
		blocks:   make(map[scope.ScopeID]int),
		funKeys:  make(map[*ast.FunDeclaration]scope.Identifier),
		byNode:   make(map[ast.Node]*Resolution),
	}
	for _, opt := range options {
		opt(s)
	}
	s.logger = s.logger.With().Str("session", s.id.String()).Logger()
	s.tree = scope.NewTree(root, scope.WithLogger(s.logger))
	return s
}

// ID returns the unique id of the session.
func (s *Session) ID() uuid.UUID { return s.id }

// Program returns the analyzed program.
func (s *Session) Program() *ast.Root { return s.root }

// Tree returns the scope tree.
func (s *Session) Tree() *scope.Tree { return s.tree }

// ScopeOf returns the scope introduced by the given node.
func (s *Session) ScopeOf(node ast.Node) (*scope.Scope, bool) {
	sc, ok := s.scopes[node]
	return sc, ok
}

// PathOf returns the path of a scope, e.g. "root/main(Int)/body".
func (s *Session) PathOf(sc *scope.Scope) string {
	return s.paths[sc.ID()]
}

// ScopeAt returns the scope with exactly the given path.
func (s *Session) ScopeAt(path string) (*scope.Scope, bool) {
	if v := s.index.Get(path); v != nil {
		return v.(*scope.Scope), true
	}
	return nil, false
}

// Enclosing returns the deepest scope whose path is a prefix of path.
func (s *Session) Enclosing(path string) (*scope.Scope, bool) {
	var last interface{}
	s.index.WalkPath(path, func(key string, value interface{}) error {
		last = value
		return nil
	})
	if last == nil {
		return nil, false
	}
	return last.(*scope.Scope), true
}

// Lookup resolves key starting at the scope with the given path.
func (s *Session) Lookup(path string, key scope.Identifier) (scope.DeclarationContext, error) {
	sc, ok := s.ScopeAt(path)
	if !ok {
		return scope.DeclarationContext{}, fmt.Errorf("no scope at %q: %w", path, scope.ErrUnknownScope)
	}
	ctx, ok := sc.Lookup(key)
	if !ok {
		return scope.DeclarationContext{}, &UnresolvedError{Key: key}
	}
	return ctx, nil
}

// ResolveType resolves type syntax at the scope with the given path.  Unlike
// analysis it records nothing on the session.
func (s *Session) ResolveType(path string, ref *ast.TypeRef) (types.Type, error) {
	ctx, err := s.Lookup(path, scope.Simple(ref.TypeName))
	if err != nil {
		return nil, err
	}
	t := declaredType(ctx.Declaration, ref.Dimensions)
	if t == nil {
		return nil, &NotATypeError{Name: ref.TypeName, Declaration: ctx.Declaration}
	}
	return t, nil
}

// Resolution returns what the given reference, call or type reference
// resolved to.
func (s *Session) Resolution(node ast.Node) (*Resolution, bool) {
	r, ok := s.byNode[node]
	return r, ok
}

// Resolutions returns all successful resolutions in program order.
func (s *Session) Resolutions() []*Resolution {
	return s.resolutions
}

// Diagnostics returns all diagnostics in the order they were found.
func (s *Session) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// Err returns the error diagnostics joined, or nil.  Warnings count when the
// session was created WithWarningsAsErrors.
func (s *Session) Err() error {
	var errs []error
	for _, d := range s.diagnostics {
		if d.Severity == SeverityError || s.warningsAsErrors {
			errs = append(errs, d)
		}
	}
	return errors.Join(errs...)
}

func (s *Session) report(severity Severity, pos ast.Position, err error) {
	d := Diagnostic{Severity: severity, Pos: pos, Err: err}
	s.diagnostics = append(s.diagnostics, d)
	if s.reporter != nil {
		s.reporter.Report(d)
	}
	s.logger.Debug().Str("pos", pos.String()).Str("severity", severity.String()).Err(err).Msg("diagnostic")
}

func (s *Session) resolved(r *Resolution) {
	s.resolutions = append(s.resolutions, r)
	s.byNode[r.Node] = r
	s.logger.Debug().
		Str("pos", r.Node.Pos().String()).
		Str("key", r.Key.String()).
		Str("found", s.PathOf(r.Context.Scope)).
		Int("hops", r.Context.Hops).
		Msg("resolved")
}
