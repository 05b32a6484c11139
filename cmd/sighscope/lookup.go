package main

import (
	"flag"
	"fmt"

	"github.com/stackb/sigh-scope/pkg/analysis"
	"github.com/stackb/sigh-scope/pkg/ast"
	"github.com/stackb/sigh-scope/pkg/scope"
	"github.com/stackb/sigh-scope/pkg/types"
)

func (a *app) lookup(args []string) error {
	var at string
	var function bool

	flags := flag.NewFlagSet("lookup", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	flags.StringVar(&at, "at", analysis.RootPath, "the path of the scope to start from")
	flags.BoolVar(&function, "func", false, "look up a function key even when no parameter types are given")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 2 {
		return fmt.Errorf("lookup: want NAME [TYPE...] FILE, got %q", flags.Args())
	}
	rest := flags.Args()
	name, typeNames, filename := rest[0], rest[1:len(rest)-1], rest[len(rest)-1]

	session, err := a.analyze(filename)
	if err != nil {
		return err
	}

	key, err := lookupKey(session, at, name, typeNames, function)
	if err != nil {
		return err
	}
	ctx, err := session.Lookup(at, key)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%s -> %s at %s (%d hops), declared at %v\n",
		key,
		ctx.Declaration.DeclaredThing(),
		session.PathOf(ctx.Scope),
		ctx.Hops,
		ctx.Declaration.Pos(),
	)
	return nil
}

// lookupKey builds the identifier to look up.  Parameter types are resolved
// at the starting scope, as a call site there would resolve them.
func lookupKey(session *analysis.Session, at, name string, typeNames []string, function bool) (scope.Identifier, error) {
	if len(typeNames) == 0 && !function {
		return scope.Simple(name), nil
	}
	params := make([]types.Type, len(typeNames))
	for i, spelling := range typeNames {
		ref, err := ast.ParseTypeRef(ast.Position{}, spelling)
		if err != nil {
			return scope.Identifier{}, err
		}
		if params[i], err = session.ResolveType(at, ref); err != nil {
			return scope.Identifier{}, fmt.Errorf("parameter type %q: %w", spelling, err)
		}
	}
	return scope.Function(name, params...), nil
}
