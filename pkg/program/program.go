// Package program loads program descriptions written in Starlark.  A
// description calls program() once with the top-level declarations:
//
//	program(
//	    struct("Pair", fields = [field("a", "Int"), field("b", "Int")]),
//	    fun("sum", params = [param("p", "Pair")], returns = "Int", body = [
//	        var("x", "Int", init = ref("p")),
//	        call("print", "Int"),
//	    ]),
//	)
package program

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"go.starlark.net/starlark"

	"github.com/stackb/sigh-scope/pkg/ast"
)

// Option configures a load.
type Option func(*interpreter)

// WithLogger routes Starlark print() output to the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(i *interpreter) {
		i.logger = logger
	}
}

// LoadFile reads and evaluates the named description.
func LoadFile(filename string, options ...Option) (*ast.Root, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", filename, err)
	}
	defer f.Close()
	return Load(filename, f, options...)
}

// Load evaluates a program description and returns its syntax tree.
func Load(filename string, src io.Reader, options ...Option) (*ast.Root, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", filename, err)
	}

	i := &interpreter{
		filename: filename,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(i)
	}

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			i.logger.Info().Str("file", filename).Msg(msg)
		},
	}
	if _, err := starlark.ExecFile(thread, filename, bytes.NewReader(data), i.builtins()); err != nil {
		if evalErr, ok := err.(*starlark.EvalError); ok {
			return nil, fmt.Errorf("eval %q: %s", filename, evalErr.Backtrace())
		}
		return nil, fmt.Errorf("eval %q: %w", filename, err)
	}
	if i.root == nil {
		return nil, fmt.Errorf("eval %q: program() was never called", filename)
	}
	return i.root, nil
}

type interpreter struct {
	filename string
	logger   zerolog.Logger
	root     *ast.Root
}

func (i *interpreter) builtins() starlark.StringDict {
	return starlark.StringDict{
		"program": starlark.NewBuiltin("program", i.program),
		"fun":     starlark.NewBuiltin("fun", i.fun),
		"param":   starlark.NewBuiltin("param", i.param),
		"var":     starlark.NewBuiltin("var", i.variable),
		"struct":  starlark.NewBuiltin("struct", i.structure),
		"field":   starlark.NewBuiltin("field", i.field),
		"block":   starlark.NewBuiltin("block", i.block),
		"ref":     starlark.NewBuiltin("ref", i.ref),
		"call":    starlark.NewBuiltin("call", i.call),
	}
}

// pos returns the position of the Starlark call to the current builtin.
func (i *interpreter) pos(thread *starlark.Thread) ast.Position {
	frame := thread.CallFrame(1)
	return ast.Position{
		Filename: i.filename,
		Line:     int(frame.Pos.Line),
		Col:      int(frame.Pos.Col),
	}
}
