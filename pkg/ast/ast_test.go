package ast

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stackb/sigh-scope/pkg/testutil"
)

func TestWalk(t *testing.T) {
	root := &Root{
		Declarations: []Node{
			&StructDeclaration{
				Identifier: "Pair",
				Fields: []*FieldDeclaration{
					{Identifier: "a", Type: &TypeRef{TypeName: "Int"}},
				},
			},
			&FunDeclaration{
				Identifier: "f",
				Parameters: []*Parameter{
					{Identifier: "p", Type: &TypeRef{TypeName: "Pair", Dimensions: 1}},
				},
				Body: &Block{
					Statements: []Node{
						&VarDeclaration{Identifier: "x", Type: &TypeRef{TypeName: "Int"}, Initializer: &Reference{Target: "p"}},
						&Call{Callee: "print", ArgTypes: []*TypeRef{{TypeName: "Int"}}},
					},
				},
			},
		},
	}

	var got []string
	Walk(root, func(n Node) bool {
		got = append(got, n.Contents())
		return true
	})

	want := []string{
		"program",
		"struct Pair",
		"var a: Int",
		"Int",
		"fun f(p: Pair[]): Void",
		"p: Pair[]",
		"Pair[]",
		"{...}",
		"var x: Int",
		"Int",
		"p",
		"print(Int)",
		"Int",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	root := &Root{
		Declarations: []Node{
			&FunDeclaration{
				Identifier: "f",
				Body:       &Block{Statements: []Node{&Reference{Target: "x"}}},
			},
		},
	}

	var got []string
	Walk(root, func(n Node) bool {
		got = append(got, n.Contents())
		_, isFun := n.(*FunDeclaration)
		return !isFun
	})

	if diff := cmp.Diff([]string{"program", "fun f(): Void"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestIsType(t *testing.T) {
	for name, tc := range map[string]struct {
		decl DeclarationNode
		want bool
	}{
		"struct":           {decl: &StructDeclaration{Identifier: "S"}, want: true},
		"builtin type":     {decl: &Synthetic{Identifier: "Int", Kind: SyntheticType}, want: true},
		"builtin variable": {decl: &Synthetic{Identifier: "true", Kind: SyntheticVariable}},
		"variable":         {decl: &VarDeclaration{Identifier: "v"}},
		"function":         {decl: &FunDeclaration{Identifier: "f"}},
		"builtin function": {decl: &Synthetic{Identifier: "print", Kind: SyntheticFunction}},
	} {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, IsType(tc.decl)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	for name, tc := range map[string]struct {
		name string
		want bool
	}{
		"degenerate":  {},
		"letters":     {name: "Pair", want: true},
		"underscore":  {name: "_x1", want: true},
		"unicode":     {name: "größe", want: true},
		"digit first": {name: "1x"},
		"comma":       {name: "A,B"},
		"space":       {name: "a b"},
		"brackets":    {name: "Int[]"},
		"question":    {name: "?Nope"},
		"angle":       {name: "<nil>"},
	} {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, IsIdentifier(tc.name)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTypeRef(t *testing.T) {
	for name, tc := range map[string]struct {
		spelling string
		want     *TypeRef
		wantErr  error
	}{
		"degenerate": {
			wantErr: errors.New(`invalid type ""`),
		},
		"name": {
			spelling: "Int",
			want:     &TypeRef{TypeName: "Int"},
		},
		"array": {
			spelling: "Pair[]",
			want:     &TypeRef{TypeName: "Pair", Dimensions: 1},
		},
		"matrix": {
			spelling: "Float[][]",
			want:     &TypeRef{TypeName: "Float", Dimensions: 2},
		},
		"dimensions only": {
			spelling: "[]",
			wantErr:  errors.New(`invalid type "[]"`),
		},
		"bracket inside": {
			spelling: "Int[]x",
			wantErr:  errors.New(`invalid type "Int[]x"`),
		},
		"comma": {
			spelling: "A,B",
			wantErr:  errors.New(`invalid type "A,B"`),
		},
		"comma array": {
			spelling: "A,B[]",
			wantErr:  errors.New(`invalid type "A,B[]"`),
		},
		"leading digit": {
			spelling: "2D",
			wantErr:  errors.New(`invalid type "2D"`),
		},
		"padded": {
			spelling: " Int[]",
			want:     &TypeRef{TypeName: "Int", Dimensions: 1},
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := ParseTypeRef(Position{}, tc.spelling)
			if testutil.ExpectError(t, tc.wantErr, err) {
				return
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}
