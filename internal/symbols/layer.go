package symbols

import (
	"stratum/internal/source"
	"stratum/internal/types"
)

// LayerKind distinguishes plain lexical scopes from class bodies.
type LayerKind uint8

const (
	LayerInvalid LayerKind = iota
	LayerPlain
	LayerClass
)

func (k LayerKind) String() string {
	switch k {
	case LayerPlain:
		return "plain"
	case LayerClass:
		return "class"
	default:
		return "invalid"
	}
}

// Layer is one lexical scope: its symbol table plus the ordered list of
// child layers it owns. Parent is a non-owning back-link (NoLayerID at root).
type Layer struct {
	Kind      LayerKind
	Parent    LayerID
	Name      source.StringID
	Class     *types.ClassType // set for LayerClass only
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID
	Children  []LayerID
}

// IsClass reports whether the layer holds a class body.
func (l *Layer) IsClass() bool { return l.Kind == LayerClass }

// ChildNum returns the number of owned children.
func (l *Layer) ChildNum() int { return len(l.Children) }
