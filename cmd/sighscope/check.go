package main

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/davecgh/go-spew/spew"

	"github.com/stackb/sigh-scope/pkg/analysis"
	"github.com/stackb/sigh-scope/pkg/program"
	"github.com/stackb/sigh-scope/pkg/progress"
	"github.com/stackb/sigh-scope/pkg/scopeindex"
)

func (a *app) check(patterns []string) error {
	if len(patterns) == 0 {
		patterns = a.cfg.Include
	}
	if len(patterns) == 0 {
		return fmt.Errorf("check: no file patterns given and no include patterns configured")
	}
	files, err := expand(a.fsys, patterns)
	if err != nil {
		return err
	}
	if a.cfg.IndexFile != "" && len(files) != 1 {
		return fmt.Errorf("check: an index file needs exactly one program, got %d", len(files))
	}

	out := progress.NewProgressOutput(a.stderr)
	failed := false
	for i, filename := range files {
		progress.Step(out, "check", "analyzing", i+1, len(files), "files")

		session, err := a.analyze(filename)
		if err != nil {
			fmt.Fprintln(a.stdout, err)
			failed = true
			continue
		}
		for _, r := range session.Resolutions() {
			fmt.Fprintln(a.stdout, formatResolution(session, r))
		}
		for _, d := range session.Diagnostics() {
			fmt.Fprintln(a.stdout, d.Error())
		}
		if session.Err() != nil {
			failed = true
		}

		if a.dump {
			index, err := scopeindex.Build(session)
			if err != nil {
				return err
			}
			spew.Fdump(a.stdout, index.AsMap())
		}
		if a.cfg.IndexFile != "" {
			if err := scopeindex.WriteFile(a.cfg.IndexFile, session); err != nil {
				return err
			}
			a.logger.Info().Str("file", a.cfg.IndexFile).Msg("wrote scope index")
		}
	}

	if failed {
		return errFailed
	}
	return nil
}

// analyze loads and analyzes one program with the configured options.
func (a *app) analyze(filename string) (*analysis.Session, error) {
	f, err := a.fsys.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", filename, err)
	}
	defer f.Close()

	root, err := program.Load(filename, f, program.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}

	options := []analysis.Option{
		analysis.WithLogger(a.logger),
		analysis.WithWarningsAsErrors(a.cfg.WarningsAsErrors),
	}
	if !a.cfg.DeclareBuiltins() {
		options = append(options, analysis.WithoutBuiltins())
	}
	return analysis.Analyze(root, options...), nil
}

// expand returns the sorted, de-duplicated files matching any of the
// doublestar patterns.  A pattern that matches nothing is an error.
func expand(fsys fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}
	sort.Strings(files)
	return files, nil
}

// formatResolution renders one resolution as
// "file:line:col key -> thing at scope-path (N hops)".
func formatResolution(session *analysis.Session, r *analysis.Resolution) string {
	return fmt.Sprintf("%v: %s -> %s at %s (%d hops)",
		r.Node.Pos(),
		r.Key,
		r.Context.Declaration.DeclaredThing(),
		session.PathOf(r.Context.Scope),
		r.Context.Hops,
	)
}
