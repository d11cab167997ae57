package symbols

// LayerID identifies a scope layer in the tree arena.
type LayerID uint32

const (
	// NoLayerID marks the absence of a layer reference.
	NoLayerID LayerID = 0
)

// IsValid reports whether the ID could refer to an allocated layer.
func (id LayerID) IsValid() bool { return id != NoLayerID }

// SymbolID identifies a declared symbol inside the tree arena.
type SymbolID uint32

const (
	// NoSymbolID marks the absence of a symbol reference.
	NoSymbolID SymbolID = 0
)

// IsValid reports whether the ID could refer to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
