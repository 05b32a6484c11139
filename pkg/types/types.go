package types

import (
	"strconv"
	"strings"
)

// Type describes the type of a value.  Two types are the same type if and
// only if their identities are equal; scope keys rely on this.
type Type interface {
	// Name returns the source spelling of the type.  Names are for display:
	// a struct may be named like a primitive.
	Name() string
	// Identity returns an encoding of the type that is unique per type.  It
	// records the kind of every component, and each name is quoted, so no
	// two distinct types share an identity and identities can be
	// concatenated without ambiguity.
	Identity() string
	String() string
}

// primitive is a builtin type that has no components.
type primitive string

func (p primitive) Name() string     { return string(p) }
func (p primitive) Identity() string { return "P" + strconv.Quote(string(p)) }
func (p primitive) String() string   { return string(p) }

const (
	Int      = primitive("Int")
	Float    = primitive("Float")
	Bool     = primitive("Bool")
	String   = primitive("String")
	Void     = primitive("Void")
	Null     = primitive("Null")
	TypeType = primitive("Type")
)

var primitives = map[string]Type{
	Int.Name():      Int,
	Float.Name():    Float,
	Bool.Name():     Bool,
	String.Name():   String,
	Void.Name():     Void,
	Null.Name():     Null,
	TypeType.Name(): TypeType,
}

// Primitive returns the builtin type with the given name.
func Primitive(name string) (Type, bool) {
	t, ok := primitives[name]
	return t, ok
}

// Primitives returns the builtin types in a stable order.
func Primitives() []Type {
	return []Type{Bool, Int, Float, String, Void, TypeType}
}

// Array is the type of arrays whose elements have the Component type.
type Array struct {
	Component Type
}

func (a Array) Name() string     { return a.Component.Name() + "[]" }
func (a Array) Identity() string { return "A" + Identity(a.Component) }
func (a Array) String() string   { return a.Name() }

// Struct is a nominal type introduced by a struct declaration.
type Struct struct {
	StructName string
}

func (s Struct) Name() string     { return s.StructName }
func (s Struct) Identity() string { return "S" + strconv.Quote(s.StructName) }
func (s Struct) String() string   { return s.StructName }

// Fun is the type of a function value.
type Fun struct {
	Return Type
	Params []Type
}

func (f Fun) Name() string {
	return "(" + Join(f.Params, ",") + ")->" + f.Return.Name()
}

// Identity is the parameter count, each parameter identity, then the return
// type identity.
func (f Fun) Identity() string {
	var buf strings.Builder
	buf.WriteString("F")
	buf.WriteString(strconv.Itoa(len(f.Params)))
	for _, p := range f.Params {
		buf.WriteString(Identity(p))
	}
	buf.WriteString(Identity(f.Return))
	return buf.String()
}

func (f Fun) String() string { return f.Name() }

// Identity returns t.Identity(), or "N" for a nil type.
func Identity(t Type) string {
	if t == nil {
		return "N"
	}
	return t.Identity()
}

// Equal reports whether a and b denote the same type.  Nil only equals nil.
func Equal(a, b Type) bool {
	return Identity(a) == Identity(b)
}

// Join concatenates the canonical names of the given types using sep.
func Join(list []Type, sep string) string {
	var buf strings.Builder
	for i, t := range list {
		if i > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(t.Name())
	}
	return buf.String()
}
