package scope

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stackb/sigh-scope/pkg/types"
)

func TestIdentifierEqual(t *testing.T) {
	for name, tc := range map[string]struct {
		a, b Identifier
		want bool
	}{
		"degenerate": {
			want: true,
		},
		"same simple name": {
			a:    Simple("x"),
			b:    Simple("x"),
			want: true,
		},
		"different simple names": {
			a: Simple("x"),
			b: Simple("y"),
		},
		"same signature": {
			a:    Function("f", types.Int, types.String),
			b:    Function("f", types.Int, types.String),
			want: true,
		},
		"separately built composite params": {
			a:    Function("f", types.Array{Component: types.Int}),
			b:    Function("f", types.Array{Component: types.Int}),
			want: true,
		},
		"different param type": {
			a: Function("f", types.Int),
			b: Function("f", types.String),
		},
		"param order matters": {
			a: Function("f", types.Int, types.String),
			b: Function("f", types.String, types.Int),
		},
		"param count matters": {
			a: Function("f", types.Int),
			b: Function("f", types.Int, types.Int),
		},
		"different function names": {
			a: Function("f", types.Int),
			b: Function("g", types.Int),
		},
		"simple vs function": {
			a: Simple("f"),
			b: Function("f"),
		},
		"no conversion from array to component": {
			a: Function("f", types.Array{Component: types.Int}),
			b: Function("f", types.Int),
		},
		"comma in struct name is not two params": {
			a: Function("f", types.Struct{StructName: "A,B"}),
			b: Function("f", types.Struct{StructName: "A"}, types.Struct{StructName: "B"}),
		},
		"empty struct name is not nullary": {
			a: Function("f", types.Struct{StructName: ""}),
			b: Function("f"),
		},
		"nil param is not a struct named <nil>": {
			a: Function("f", nil),
			b: Function("f", types.Struct{StructName: "<nil>"}),
		},
		"struct named like a primitive": {
			a: Function("f", types.Struct{StructName: "Int"}),
			b: Function("f", types.Int),
		},
		"array of struct named like an array": {
			a: Function("f", types.Array{Component: types.Struct{StructName: "A"}}),
			b: Function("f", types.Struct{StructName: "A[]"}),
		},
		"function param boundaries": {
			a: Function("f", types.Fun{Return: types.Int, Params: []types.Type{types.Int}}, types.Int),
			b: Function("f", types.Fun{Return: types.Int, Params: []types.Type{types.Int, types.Int}}),
		},
	} {
		t.Run(name, func(t *testing.T) {
			got := tc.a.Equal(tc.b)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if got != (tc.a.Key() == tc.b.Key()) {
				t.Errorf("Equal and Key disagree for %v and %v", tc.a, tc.b)
			}
		})
	}
}

func TestIdentifierKey(t *testing.T) {
	for name, tc := range map[string]struct {
		id   Identifier
		want Key
	}{
		"degenerate": {},
		"simple": {
			id:   Simple("x"),
			want: Key{Kind: KindSimple, Name: "x"},
		},
		"nullary function": {
			id:   Function("f"),
			want: Key{Kind: KindFunction, Name: "f"},
		},
		"function": {
			id:   Function("f", types.Int, types.Array{Component: types.Struct{StructName: "Pair"}}),
			want: Key{Kind: KindFunction, Name: "f", Arity: 2, Signature: `P"Int"AS"Pair"`},
		},
		"function typed param": {
			id:   Function("apply", types.Fun{Return: types.Bool, Params: []types.Type{types.Int, types.Int}}),
			want: Key{Kind: KindFunction, Name: "apply", Arity: 1, Signature: `F2P"Int"P"Int"P"Bool"`},
		},
		"quoted struct name": {
			id:   Function("f", types.Struct{StructName: `A"B`}, nil),
			want: Key{Kind: KindFunction, Name: "f", Arity: 2, Signature: `S"A\"B"N`},
		},
	} {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.id.Key()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestIdentifierString(t *testing.T) {
	for name, tc := range map[string]struct {
		id   Identifier
		want string
	}{
		"simple": {
			id:   Simple("x"),
			want: "x",
		},
		"nullary function": {
			id:   Function("f"),
			want: "f()",
		},
		"function": {
			id:   Function("f", types.Int, types.String),
			want: "f(Int, String)",
		},
	} {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.id.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestIdentifierIsImmutable(t *testing.T) {
	params := []types.Type{types.Int, types.String}
	id := Function("f", params...)

	params[0] = types.Bool
	got := id.ParamTypes()
	got[1] = types.Float

	if !id.Equal(Function("f", types.Int, types.String)) {
		t.Errorf("identifier changed after construction: %v", id)
	}
	if diff := cmp.Diff("f(Int, String)", id.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestIdentifierAsMapKey(t *testing.T) {
	m := map[Key]int{
		Simple("f").Key():                         1,
		Function("f", types.Int).Key():            2,
		Function("f", types.String).Key():         3,
		Function("f", types.Int, types.Int).Key(): 4,
	}
	for want, id := range map[int]Identifier{
		1: Simple("f"),
		2: Function("f", types.Int),
		3: Function("f", types.String),
		4: Function("f", types.Int, types.Int),
	} {
		if got := m[id.Key()]; got != want {
			t.Errorf("m[%v]: want %d, got %d", id, want, got)
		}
	}
}
