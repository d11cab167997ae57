// Package fixture loads scope layouts from TOML. A fixture declares classes,
// nested layers, symbols and the expressions and calls to check against them:
//
//	root = "global"
//
//	[[class]]
//	name = "Job"
//	[[class.method]]
//	name = "run"
//	ret = "int"
//	args = [{ name = "a", type = "int" }]
//
//	[[layer]]
//	path = "Job"
//	class = "Job"
//
//	[[decl]]
//	layer = "Job"
//	name = "done"
//	kind = "field"
//	type = "bool"
//
//	[[check]]
//	layer = "Job"
//	expr = { op = "and", lhs = { ident = "done" }, rhs = { int = 1 } }
package fixture

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

const defaultRoot = "global"

// File is the decoded form of a fixture.
type File struct {
	Root    string      `toml:"root"`
	Classes []ClassSpec `toml:"class"`
	Layers  []LayerSpec `toml:"layer"`
	Decls   []DeclSpec  `toml:"decl"`
	Checks  []CheckSpec `toml:"check"`
	Calls   []CallSpec  `toml:"call"`
}

type ClassSpec struct {
	Name    string       `toml:"name"`
	Base    string       `toml:"base"`
	Fields  []ArgSpec    `toml:"field"`
	Methods []MethodSpec `toml:"method"`
}

// ArgSpec is a named, typed slot: a class field or a method argument.
type ArgSpec struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

type MethodSpec struct {
	Name string    `toml:"name"`
	Ret  string    `toml:"ret"`
	Args []ArgSpec `toml:"args"`
}

// LayerSpec adds one layer. The last path segment names the new layer and the
// rest must already exist. Class layers take the name of their class.
type LayerSpec struct {
	Path  string `toml:"path"`
	Class string `toml:"class"`
}

// DeclSpec declares a symbol. Functions and methods use Ret and Args instead
// of Type.
type DeclSpec struct {
	Layer string    `toml:"layer"`
	Name  string    `toml:"name"`
	Kind  string    `toml:"kind"`
	Type  string    `toml:"type"`
	Ret   string    `toml:"ret"`
	Args  []ArgSpec `toml:"args"`
}

// CheckSpec is an expression to analyze from a layer. Expressions are inline
// tables: {op, lhs, rhs}, {ident}, {int} or {bool}.
type CheckSpec struct {
	Layer string         `toml:"layer"`
	Expr  map[string]any `toml:"expr"`
}

// CallSpec checks a call of Method with arguments of the given types.
type CallSpec struct {
	Layer  string   `toml:"layer"`
	Method string   `toml:"method"`
	Args   []string `toml:"args"`
}

// Parse decodes fixture content. path is used in error messages only.
func Parse(path string, content []byte) (*File, error) {
	var f File
	if _, err := toml.Decode(string(content), &f); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if f.Root == "" {
		f.Root = defaultRoot
	}
	for i, c := range f.Classes {
		if c.Name == "" {
			return nil, fmt.Errorf("%s: class #%d: missing name", path, i+1)
		}
	}
	for i, d := range f.Decls {
		if d.Name == "" || d.Kind == "" {
			return nil, fmt.Errorf("%s: decl #%d: name and kind are required", path, i+1)
		}
	}
	return &f, nil
}
