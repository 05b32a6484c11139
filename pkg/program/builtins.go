package program

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/stackb/sigh-scope/pkg/ast"
)

func (i *interpreter) program(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	if i.root != nil {
		return nil, fmt.Errorf("%s: called more than once", b.Name())
	}
	decls, err := statements(b.Name(), args)
	if err != nil {
		return nil, err
	}
	i.root = &ast.Root{Position: i.pos(thread), Declarations: decls}
	return starlark.None, nil
}

func (i *interpreter) fun(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, returns string
	var params, body *starlark.List
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name,
		"params?", &params,
		"returns?", &returns,
		"body?", &body,
	); err != nil {
		return nil, err
	}
	if err := identifier(b.Name(), name); err != nil {
		return nil, err
	}
	pos := i.pos(thread)
	decl := &ast.FunDeclaration{
		Position:   pos,
		Identifier: name,
		Body:       &ast.Block{Position: pos},
	}

	paramNodes, err := nodes(b.Name(), "params", params)
	if err != nil {
		return nil, err
	}
	for _, n := range paramNodes {
		param, ok := n.(*ast.Parameter)
		if !ok {
			return nil, fmt.Errorf("%s: params: %s is not a param", b.Name(), n.Contents())
		}
		decl.Parameters = append(decl.Parameters, param)
	}

	if returns != "" {
		if decl.ReturnType, err = typeRef(b.Name(), pos, returns); err != nil {
			return nil, err
		}
	}

	if decl.Body.Statements, err = nodes(b.Name(), "body", body); err != nil {
		return nil, err
	}
	for _, n := range decl.Body.Statements {
		if err := statement(b.Name(), n); err != nil {
			return nil, err
		}
	}

	return &node{decl}, nil
}

func (i *interpreter) param(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, typ string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "type", &typ); err != nil {
		return nil, err
	}
	if err := identifier(b.Name(), name); err != nil {
		return nil, err
	}
	pos := i.pos(thread)
	ref, err := typeRef(b.Name(), pos, typ)
	if err != nil {
		return nil, err
	}
	return &node{&ast.Parameter{Position: pos, Identifier: name, Type: ref}}, nil
}

func (i *interpreter) variable(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, typ string
	var init starlark.Value = starlark.None
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "type", &typ, "init?", &init); err != nil {
		return nil, err
	}
	if err := identifier(b.Name(), name); err != nil {
		return nil, err
	}
	pos := i.pos(thread)
	ref, err := typeRef(b.Name(), pos, typ)
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDeclaration{Position: pos, Identifier: name, Type: ref}
	if init != starlark.None {
		v, ok := init.(*node)
		if !ok {
			return nil, fmt.Errorf("%s: init: got %s, want ref or call", b.Name(), init.Type())
		}
		switch v.Node.(type) {
		case *ast.Reference, *ast.Call:
			decl.Initializer = v.Node
		default:
			return nil, fmt.Errorf("%s: init: got %s, want ref or call", b.Name(), v.Type())
		}
	}
	return &node{decl}, nil
}

func (i *interpreter) structure(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var fields *starlark.List
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "fields?", &fields); err != nil {
		return nil, err
	}
	if err := identifier(b.Name(), name); err != nil {
		return nil, err
	}
	decl := &ast.StructDeclaration{Position: i.pos(thread), Identifier: name}
	fieldNodes, err := nodes(b.Name(), "fields", fields)
	if err != nil {
		return nil, err
	}
	for _, n := range fieldNodes {
		field, ok := n.(*ast.FieldDeclaration)
		if !ok {
			return nil, fmt.Errorf("%s: fields: %s is not a field", b.Name(), n.Contents())
		}
		decl.Fields = append(decl.Fields, field)
	}
	return &node{decl}, nil
}

func (i *interpreter) field(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, typ string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "type", &typ); err != nil {
		return nil, err
	}
	if err := identifier(b.Name(), name); err != nil {
		return nil, err
	}
	pos := i.pos(thread)
	ref, err := typeRef(b.Name(), pos, typ)
	if err != nil {
		return nil, err
	}
	return &node{&ast.FieldDeclaration{Position: pos, Identifier: name, Type: ref}}, nil
}

func (i *interpreter) block(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	stmts, err := statements(b.Name(), args)
	if err != nil {
		return nil, err
	}
	return &node{&ast.Block{Position: i.pos(thread), Statements: stmts}}, nil
}

func (i *interpreter) ref(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	if err := identifier(b.Name(), name); err != nil {
		return nil, err
	}
	return &node{&ast.Reference{Position: i.pos(thread), Target: name}}, nil
}

func (i *interpreter) call(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: missing callee name", b.Name())
	}
	pos := i.pos(thread)
	callee, ok := starlark.AsString(args[0])
	if !ok {
		return nil, fmt.Errorf("%s: callee: got %s, want string", b.Name(), args[0].Type())
	}
	if err := identifier(b.Name(), callee); err != nil {
		return nil, err
	}
	n := &ast.Call{Position: pos, Callee: callee}
	for idx, arg := range args[1:] {
		spelling, ok := starlark.AsString(arg)
		if !ok {
			return nil, fmt.Errorf("%s: argument type %d: got %s, want string", b.Name(), idx, arg.Type())
		}
		ref, err := typeRef(b.Name(), pos, spelling)
		if err != nil {
			return nil, err
		}
		n.ArgTypes = append(n.ArgTypes, ref)
	}
	return &node{n}, nil
}

// statements converts positional arguments to a statement list.
func statements(fn string, args starlark.Tuple) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(args))
	for idx, arg := range args {
		v, ok := arg.(*node)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d: got %s, want a declaration or statement", fn, idx, arg.Type())
		}
		if err := statement(fn, v.Node); err != nil {
			return nil, err
		}
		out = append(out, v.Node)
	}
	return out, nil
}
