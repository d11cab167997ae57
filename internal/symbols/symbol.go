package symbols

import (
	"stratum/internal/ir"
	"stratum/internal/source"
	"stratum/internal/types"
)

// SymbolKind classifies what a name is bound to.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVar
	SymbolParam
	SymbolFunction
	SymbolField
	SymbolMethod
	SymbolClass
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "var"
	case SymbolParam:
		return "param"
	case SymbolFunction:
		return "function"
	case SymbolField:
		return "field"
	case SymbolMethod:
		return "method"
	case SymbolClass:
		return "class"
	default:
		return "invalid"
	}
}

// ParseSymbolKind is the inverse of SymbolKind.String.
func ParseSymbolKind(s string) (SymbolKind, bool) {
	for k := SymbolVar; k <= SymbolClass; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return SymbolInvalid, false
}

// Symbol is a declared entity. Value is the bare IR object for declarations
// that have one (ints and bools); it starts zeroed and tagged with the
// storage class implied by the declaring layer.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Layer LayerID
	Type  types.Type
	Value ir.Object
}
