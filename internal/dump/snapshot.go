// Package dump renders scope trees as aligned text, JSON or msgpack.
package dump

import (
	"stratum/internal/symbols"
	"stratum/internal/types"
)

// Options control how types are rendered into a snapshot.
type Options struct {
	// TrailingComma keeps the separator after the last method argument,
	// "int (int a, )", as the golden signature form does.
	TrailingComma bool
}

// Snapshot is a detached, serializable copy of a scope tree.
type Snapshot struct {
	Path   string      `json:"path,omitempty" msgpack:"path,omitempty"`
	Layers []LayerView `json:"layers" msgpack:"layers"`
}

// LayerView is one layer in pre-order. Depth 0 is the root.
type LayerView struct {
	Path    string       `json:"path" msgpack:"path"`
	Name    string       `json:"name" msgpack:"name"`
	Depth   int          `json:"depth" msgpack:"depth"`
	Class   string       `json:"class,omitempty" msgpack:"class,omitempty"`
	Base    string       `json:"base,omitempty" msgpack:"base,omitempty"`
	Symbols []SymbolView `json:"symbols,omitempty" msgpack:"symbols,omitempty"`
}

// SymbolView is a declared symbol. Value and Storage are empty for symbols
// without an IR object.
type SymbolView struct {
	Name    string `json:"name" msgpack:"name"`
	Kind    string `json:"kind" msgpack:"kind"`
	Type    string `json:"type" msgpack:"type"`
	Value   string `json:"value,omitempty" msgpack:"value,omitempty"`
	Storage string `json:"storage,omitempty" msgpack:"storage,omitempty"`
}

// Take copies tree into a snapshot, visiting layers with a cursor.
func Take(tree *symbols.Tree, opts Options) *Snapshot {
	snap := &Snapshot{}
	snap.Layers = append(snap.Layers, layerView(tree, tree.Root(), 0, opts))
	c := tree.Begin()
	for !c.Done() {
		snap.Layers = append(snap.Layers, layerView(tree, c.Layer(), c.Depth()+1, opts))
		if !c.GoDown() {
			c.Next()
		}
	}
	return snap
}

func layerView(tree *symbols.Tree, id symbols.LayerID, depth int, opts Options) LayerView {
	l := tree.Layer(id)
	v := LayerView{
		Path:  tree.Path(id),
		Name:  tree.Name(id),
		Depth: depth,
	}
	if l.IsClass() {
		v.Class = l.Class.Name()
		if base := l.Class.Base(); base != nil {
			v.Base = base.Name()
		}
	}
	for _, sid := range l.Symbols {
		sym := tree.Symbol(sid)
		sv := SymbolView{
			Name: tree.SymbolName(sid),
			Kind: sym.Kind.String(),
			Type: typeString(sym.Type, opts),
		}
		if sym.Value != nil {
			sv.Value = sym.Value.String()
			sv.Storage = sym.Value.Scope().String()
		}
		v.Symbols = append(v.Symbols, sv)
	}
	return v
}

func typeString(t types.Type, opts Options) string {
	if m, ok := t.(*types.MethodType); ok && !opts.TrailingComma {
		return m.Signature()
	}
	return t.String()
}
