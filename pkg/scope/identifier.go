package scope

import (
	"slices"
	"strings"

	"github.com/stackb/sigh-scope/pkg/types"
)

// Kind discriminates the identifier variants.
type Kind int

const (
	// KindSimple identifies a declaration by name alone.
	KindSimple Kind = iota
	// KindFunction identifies a declaration by name and parameter types.
	KindFunction
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindFunction:
		return "function"
	default:
		return "invalid"
	}
}

// Key is the canonical comparable form of an Identifier.  Every scope map is
// keyed by Key, so two identifiers address the same binding if and only if
// their keys are equal.
type Key struct {
	Kind Kind
	Name string
	// Arity is the number of parameter types.  Always zero for simple keys.
	Arity int
	// Signature is the concatenated type identities of the parameters, see
	// types.Identity.  Always empty for simple keys.
	Signature string
}

// Identifier addresses a declaration inside a scope.  It is either a simple
// name or a function name qualified by an ordered parameter type signature.
// Identifiers are immutable values.
type Identifier struct {
	key    Key
	params []types.Type
}

// Simple returns the identifier for an unqualified name.
func Simple(name string) Identifier {
	return Identifier{key: Key{Kind: KindSimple, Name: name}}
}

// Function returns the identifier of the overload of name whose parameters
// have exactly the given types, in order.
func Function(name string, params ...types.Type) Identifier {
	params = slices.Clone(params)
	return Identifier{
		key: Key{
			Kind:      KindFunction,
			Name:      name,
			Arity:     len(params),
			Signature: signature(params),
		},
		params: params,
	}
}

// Kind returns the variant of the identifier.
func (id Identifier) Kind() Kind { return id.key.Kind }

// Name returns the identifier name.
func (id Identifier) Name() string { return id.key.Name }

// ParamTypes returns a copy of the parameter types of a function identifier.
func (id Identifier) ParamTypes() []types.Type { return slices.Clone(id.params) }

// Key returns the canonical map key of the identifier.
func (id Identifier) Key() Key { return id.key }

// Equal reports whether id and other address the same binding.
func (id Identifier) Equal(other Identifier) bool { return id.key == other.key }

// String implements fmt.Stringer
func (id Identifier) String() string {
	if id.key.Kind != KindFunction {
		return id.key.Name
	}
	names := make([]string, len(id.params))
	for i, t := range id.params {
		if t == nil {
			names[i] = "<nil>"
			continue
		}
		names[i] = t.Name()
	}
	return id.key.Name + "(" + strings.Join(names, ", ") + ")"
}

// signature concatenates the parameter identities.  Each identity is
// self-delimiting, so the result decodes to exactly one parameter list.
func signature(params []types.Type) string {
	var buf strings.Builder
	for _, t := range params {
		buf.WriteString(types.Identity(t))
	}
	return buf.String()
}
