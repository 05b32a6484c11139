package ast

import (
	"fmt"
	"strings"
	"unicode"
)

// Position locates a node in its source file.
type Position struct {
	Filename string
	Line     int
	Col      int
}

// String implements fmt.Stringer
func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Col)
}

// Node is an element of the program tree.
type Node interface {
	// Pos returns where the node starts.
	Pos() Position
	// Contents returns a short source-like rendering of the node.
	Contents() string
}

// DeclarationNode is a node that introduces a name.  Scopes store and return
// declaration nodes by identity and never look inside them.
type DeclarationNode interface {
	Node
	// Name is the declared name.
	Name() string
	// DeclaredThing is a human description of what kind of thing is declared
	// ("function", "variable", ...).
	DeclaredThing() string
}

// Root is the top of a program.
type Root struct {
	Position     Position
	Declarations []Node
}

// Block is a brace-delimited list of statements.
type Block struct {
	Position   Position
	Statements []Node
}

// FunDeclaration declares a function.
type FunDeclaration struct {
	Position   Position
	Identifier string
	Parameters []*Parameter
	ReturnType *TypeRef
	Body       *Block
}

// Parameter is a function parameter.
type Parameter struct {
	Position   Position
	Identifier string
	Type       *TypeRef
}

// VarDeclaration declares a variable with an optional initializer.
type VarDeclaration struct {
	Position    Position
	Identifier  string
	Type        *TypeRef
	Initializer Node
}

// StructDeclaration declares a nominal struct type.
type StructDeclaration struct {
	Position   Position
	Identifier string
	Fields     []*FieldDeclaration
}

// FieldDeclaration is a struct field.  Fields are not entered into any scope.
type FieldDeclaration struct {
	Position   Position
	Identifier string
	Type       *TypeRef
}

// Reference is a use of a name as a value.
type Reference struct {
	Position Position
	Target   string
}

// Call is a call site.  ArgTypes are the argument types as computed by type
// inference, spelled as type references.
type Call struct {
	Position Position
	Callee   string
	ArgTypes []*TypeRef
}

// TypeRef is type syntax: a type name followed by zero or more "[]".
type TypeRef struct {
	Position   Position
	TypeName   string
	Dimensions int
}

// SyntheticKind is the kind of a builtin declaration.
type SyntheticKind int

const (
	SyntheticType SyntheticKind = iota
	SyntheticVariable
	SyntheticFunction
)

// Synthetic is a builtin declaration that does not appear in source.
type Synthetic struct {
	Identifier string
	Kind       SyntheticKind
}

func (n *Root) Pos() Position              { return n.Position }
func (n *Block) Pos() Position             { return n.Position }
func (n *FunDeclaration) Pos() Position    { return n.Position }
func (n *Parameter) Pos() Position         { return n.Position }
func (n *VarDeclaration) Pos() Position    { return n.Position }
func (n *StructDeclaration) Pos() Position { return n.Position }
func (n *FieldDeclaration) Pos() Position  { return n.Position }
func (n *Reference) Pos() Position         { return n.Position }
func (n *Call) Pos() Position              { return n.Position }
func (n *TypeRef) Pos() Position           { return n.Position }
func (n *Synthetic) Pos() Position         { return Position{Filename: "<builtin>"} }

func (n *Root) Contents() string  { return "program" }
func (n *Block) Contents() string { return "{...}" }
func (n *FunDeclaration) Contents() string {
	params := make([]string, len(n.Parameters))
	for i, p := range n.Parameters {
		params[i] = p.Contents()
	}
	ret := "Void"
	if n.ReturnType != nil {
		ret = n.ReturnType.Contents()
	}
	return fmt.Sprintf("fun %s(%s): %s", n.Identifier, strings.Join(params, ", "), ret)
}
func (n *Parameter) Contents() string { return n.Identifier + ": " + n.Type.Contents() }
func (n *VarDeclaration) Contents() string {
	return "var " + n.Identifier + ": " + n.Type.Contents()
}
func (n *StructDeclaration) Contents() string { return "struct " + n.Identifier }
func (n *FieldDeclaration) Contents() string {
	return "var " + n.Identifier + ": " + n.Type.Contents()
}
func (n *Reference) Contents() string { return n.Target }
func (n *Call) Contents() string {
	args := make([]string, len(n.ArgTypes))
	for i, a := range n.ArgTypes {
		args[i] = a.Contents()
	}
	return n.Callee + "(" + strings.Join(args, ", ") + ")"
}
func (n *TypeRef) Contents() string {
	if n == nil {
		return "?"
	}
	return n.TypeName + strings.Repeat("[]", n.Dimensions)
}
func (n *Synthetic) Contents() string { return n.Identifier }

func (n *FunDeclaration) Name() string    { return n.Identifier }
func (n *Parameter) Name() string         { return n.Identifier }
func (n *VarDeclaration) Name() string    { return n.Identifier }
func (n *StructDeclaration) Name() string { return n.Identifier }
func (n *FieldDeclaration) Name() string  { return n.Identifier }
func (n *Synthetic) Name() string         { return n.Identifier }

func (n *FunDeclaration) DeclaredThing() string    { return "function" }
func (n *Parameter) DeclaredThing() string         { return "parameter" }
func (n *VarDeclaration) DeclaredThing() string    { return "variable" }
func (n *StructDeclaration) DeclaredThing() string { return "struct" }
func (n *FieldDeclaration) DeclaredThing() string  { return "field" }
func (n *Synthetic) DeclaredThing() string {
	switch n.Kind {
	case SyntheticType:
		return "built-in type"
	case SyntheticFunction:
		return "built-in function"
	default:
		return "built-in variable"
	}
}

// IsType reports whether decl names a type.
func IsType(decl DeclarationNode) bool {
	switch t := decl.(type) {
	case *StructDeclaration:
		return true
	case *Synthetic:
		return t.Kind == SyntheticType
	}
	return false
}

// ParseTypeRef parses type syntax: a name followed by zero or more "[]".
func ParseTypeRef(pos Position, spelling string) (*TypeRef, error) {
	name := spelling
	dims := 0
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSuffix(name, "[]")
		dims++
	}
	name = strings.TrimSpace(name)
	if !IsIdentifier(name) {
		return nil, fmt.Errorf("invalid type %q", spelling)
	}
	return &TypeRef{Position: pos, TypeName: name, Dimensions: dims}, nil
}

// IsIdentifier reports whether name is a letter or underscore followed by
// letters, digits and underscores.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
