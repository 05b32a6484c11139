// Package scopeindex exports the scope tree of an analysis session as a
// protobuf Struct, so it can be inspected with ordinary JSON tools or read
// back by other programs.
package scopeindex

import (
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/stackb/sigh-scope/pkg/analysis"
	"github.com/stackb/sigh-scope/pkg/scope"
)

// Build returns the index of the session:
//
//	{
//	  "session": "<uuid>",
//	  "program": "file.star",
//	  "scopes": [{"id": 1, "parent": 0, "depth": 0, "path": "root",
//	              "node": "program", "bindings": [...]}, ...],
//	  "diagnostics": ["file.star:3:1: error: ..."]
//	}
func Build(session *analysis.Session) (*structpb.Struct, error) {
	scopes := make([]interface{}, 0, session.Tree().Len())
	for _, sc := range session.Tree().Scopes() {
		scopes = append(scopes, scopeEntry(session, sc))
	}

	diagnostics := make([]interface{}, 0, len(session.Diagnostics()))
	for _, d := range session.Diagnostics() {
		diagnostics = append(diagnostics, d.Error())
	}

	program := ""
	if root := session.Program(); root != nil {
		program = root.Position.Filename
	}

	index, err := structpb.NewStruct(map[string]interface{}{
		"session":     session.ID().String(),
		"program":     program,
		"scopes":      scopes,
		"diagnostics": diagnostics,
	})
	if err != nil {
		return nil, fmt.Errorf("build scope index: %w", err)
	}
	return index, nil
}

func scopeEntry(session *analysis.Session, sc *scope.Scope) map[string]interface{} {
	bindings := make([]interface{}, 0, sc.Len())
	for _, b := range sc.Bindings() {
		bindings = append(bindings, map[string]interface{}{
			"key":      b.Identifier.String(),
			"kind":     b.Identifier.Kind().String(),
			"name":     b.Identifier.Name(),
			"declared": b.Declaration.DeclaredThing(),
			"pos":      b.Declaration.Pos().String(),
		})
	}
	node := ""
	if sc.Node() != nil {
		node = sc.Node().Contents()
	}
	return map[string]interface{}{
		"id":       int64(sc.ID()),
		"parent":   int64(sc.ParentID()),
		"depth":    int64(sc.Depth()),
		"path":     session.PathOf(sc),
		"node":     node,
		"bindings": bindings,
	}
}

// FindScope returns the scope entry with the given path.
func FindScope(index *structpb.Struct, path string) (*structpb.Struct, bool) {
	for _, v := range index.GetFields()["scopes"].GetListValue().GetValues() {
		entry := v.GetStructValue()
		if entry.GetFields()["path"].GetStringValue() == path {
			return entry, true
		}
	}
	return nil, false
}

// ReadFile reads an index file.  Files with a .json extension are protojson,
// anything else is binary protobuf.
func ReadFile(filename string) (*structpb.Struct, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read scope index file %q: %w", filename, err)
	}
	index := &structpb.Struct{}
	if filepath.Ext(filename) == ".json" {
		if err := protojson.Unmarshal(data, index); err != nil {
			return nil, fmt.Errorf("unmarshal scope index json: %w", err)
		}
	} else {
		if err := proto.Unmarshal(data, index); err != nil {
			return nil, fmt.Errorf("unmarshal scope index proto: %w", err)
		}
	}
	return index, nil
}

// WriteFile builds the index of the session and writes it to filename,
// choosing the encoding by extension like ReadFile.
func WriteFile(filename string, session *analysis.Session) error {
	index, err := Build(session)
	if err != nil {
		return err
	}

	var data []byte
	if filepath.Ext(filename) == ".json" {
		data, err = protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(index)
		if err != nil {
			return fmt.Errorf("marshal scope index json: %w", err)
		}
	} else {
		data, err = proto.Marshal(index)
		if err != nil {
			return fmt.Errorf("marshal scope index proto: %w", err)
		}
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write scope index: %w", err)
	}
	return nil
}
