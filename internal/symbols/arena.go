package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"stratum/internal/source"
	"stratum/internal/types"
)

// Layers stores all allocated layers in a compact slice-based arena.
type Layers struct {
	data []Layer
}

// NewLayers creates an arena with optional capacity hint.
func NewLayers(capacity uint32) *Layers {
	if capacity == 0 {
		capacity = 32
	}
	return &Layers{
		data: make([]Layer, 1, capacity+1), // index 0 reserved for NoLayerID
	}
}

// New allocates a layer and links it as the last child of parent.
func (l *Layers) New(kind LayerKind, parent LayerID, name source.StringID, class *types.ClassType) LayerID {
	value, err := safecast.Conv[uint32](len(l.data))
	if err != nil {
		panic(fmt.Errorf("layers arena overflow: %w", err))
	}
	id := LayerID(value)
	l.data = append(l.data, Layer{
		Kind:      kind,
		Parent:    parent,
		Name:      name,
		Class:     class,
		NameIndex: make(map[source.StringID]SymbolID),
	})
	if parentLayer := l.Get(parent); parentLayer != nil {
		parentLayer.Children = append(parentLayer.Children, id)
	}
	return id
}

// Get returns the layer pointer or nil if ID is invalid.
func (l *Layers) Get(id LayerID) *Layer {
	if !id.IsValid() || int(id) >= len(l.data) {
		return nil
	}
	return &l.data[id]
}

// Len reports total number of layers excluding the sentinel.
func (l *Layers) Len() int { return len(l.data) - 1 }

// Symbols stores declared symbols in a compact arena.
type Symbols struct {
	data []Symbol
}

// NewSymbols creates a symbol arena with optional capacity hint.
func NewSymbols(capacity uint32) *Symbols {
	if capacity == 0 {
		capacity = 64
	}
	return &Symbols{
		data: make([]Symbol, 1, capacity+1), // index 0 reserved for NoSymbolID
	}
}

// New allocates a symbol in the arena and returns its ID.
func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("symbols arena overflow: %w", err))
	}
	id := SymbolID(value)
	s.data = append(s.data, *sym)
	return id
}

// Get returns a symbol pointer or nil for invalid ID.
func (s *Symbols) Get(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports number of stored symbols excluding sentinel.
func (s *Symbols) Len() int { return len(s.data) - 1 }
