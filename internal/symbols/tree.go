package symbols

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"stratum/internal/ir"
	"stratum/internal/source"
	"stratum/internal/trace"
	"stratum/internal/types"
)

// Hints provide optional capacity suggestions for the tree arenas.
type Hints struct{ Layers, Symbols uint }

// Options configure a Tree.
type Options struct {
	Hints Hints
	// Strings is shared with other passes; a fresh interner is used when nil.
	Strings *source.Interner
	// Tracer receives node-level events for layer creation and release.
	Tracer trace.Tracer
	// OnRelease is called once for every layer freed by Release.
	OnRelease func(id LayerID, layer *Layer)
}

// Tree owns a hierarchy of scope layers rooted at a single layer. Children
// are owned by their parent; Release frees the whole hierarchy once.
type Tree struct {
	Strings *source.Interner

	layers   *Layers
	symbols  *Symbols
	root     LayerID
	released bool
	tracer   trace.Tracer
	onFree   func(LayerID, *Layer)
}

// NewTree creates a tree whose root layer is labeled rootName.
func NewTree(rootName string, opts Options) *Tree {
	layerCap, err := safecast.Conv[uint32](opts.Hints.Layers)
	if err != nil {
		panic(fmt.Errorf("layer capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](opts.Hints.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	strs := opts.Strings
	if strs == nil {
		strs = source.NewInterner()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	t := &Tree{
		Strings: strs,
		layers:  NewLayers(layerCap),
		symbols: NewSymbols(symCap),
		tracer:  tracer,
		onFree:  opts.OnRelease,
	}
	t.root = t.layers.New(LayerPlain, NoLayerID, strs.Intern(rootName), nil)
	return t
}

// Root returns the root layer ID. It is valid for the lifetime of the tree.
func (t *Tree) Root() LayerID { return t.root }

// Len reports the number of live layers including the root.
func (t *Tree) Len() int {
	if t.released {
		return 0
	}
	return t.layers.Len()
}

// Released reports whether Release has run.
func (t *Tree) Released() bool { return t.released }

// Layer returns the layer for id, or nil if id does not belong to the tree.
func (t *Tree) Layer(id LayerID) *Layer {
	if t.released {
		return nil
	}
	return t.layers.Get(id)
}

// Name returns the label of a layer.
func (t *Tree) Name(id LayerID) string {
	l := t.Layer(id)
	if l == nil {
		return ""
	}
	s, _ := t.Strings.Lookup(l.Name)
	return s
}

// Symbol returns the symbol for id, or nil.
func (t *Tree) Symbol(id SymbolID) *Symbol {
	if t.released {
		return nil
	}
	return t.symbols.Get(id)
}

// SymbolName returns the text of a symbol's name.
func (t *Tree) SymbolName(id SymbolID) string {
	sym := t.Symbol(id)
	if sym == nil {
		return ""
	}
	s, _ := t.Strings.Lookup(sym.Name)
	return s
}

// SymbolCount reports the number of declared symbols.
func (t *Tree) SymbolCount() int { return t.symbols.Len() }

func (t *Tree) mustOwn(op string, id LayerID) *Layer {
	if t.released {
		structural(op, id, "tree already released")
	}
	l := t.layers.Get(id)
	if l == nil {
		structural(op, id, "layer does not belong to this tree")
	}
	return l
}

// AddLayer appends a plain layer labeled name as the last child of parent.
func (t *Tree) AddLayer(parent LayerID, name string) LayerID {
	t.mustOwn("AddLayer", parent)
	id := t.layers.New(LayerPlain, parent, t.Strings.Intern(name), nil)
	trace.Point(t.tracer, trace.ScopeNode, "layer", name)
	return id
}

// AddClassLayer appends a class body layer for class under parent. The layer
// is labeled with the class name and holds a reference to class until Release.
func (t *Tree) AddClassLayer(parent LayerID, class *types.ClassType) LayerID {
	t.mustOwn("AddClassLayer", parent)
	if class == nil {
		structural("AddClassLayer", parent, "nil class type")
	}
	class.Retain()
	id := t.layers.New(LayerClass, parent, t.Strings.Intern(class.Name()), class)
	trace.Point(t.tracer, trace.ScopeNode, "class-layer", class.Name())
	return id
}

// Release frees the hierarchy children-first, dropping each class layer's
// hold on its class exactly once. It returns the number of freed layers;
// later calls free nothing and return 0.
func (t *Tree) Release() int {
	if t.released {
		return 0
	}
	freed := t.releaseLayer(t.root)
	t.released = true
	t.layers = NewLayers(0)
	t.symbols = NewSymbols(0)
	trace.Point(t.tracer, trace.ScopeNode, "release", fmt.Sprintf("%d layers", freed))
	return freed
}

func (t *Tree) releaseLayer(id LayerID) int {
	l := t.layers.Get(id)
	freed := 0
	for _, child := range l.Children {
		freed += t.releaseLayer(child)
	}
	if l.Class != nil {
		l.Class.Release()
	}
	if t.onFree != nil {
		t.onFree(id, l)
	}
	*l = Layer{}
	return freed + 1
}

// Declare binds name in layer. Declaring into a class layer also records the
// name as a member of the layer's class so the two stay resolvable; an existing
// member with a different shape is rejected.
func (t *Tree) Declare(layer LayerID, name string, kind SymbolKind, typ types.Type) (SymbolID, error) {
	l := t.mustOwn("Declare", layer)
	if typ == nil {
		return NoSymbolID, fmt.Errorf("declare %q: %w", name, ErrNoType)
	}
	key := t.Strings.Intern(name)
	if prev, ok := l.NameIndex[key]; ok {
		return prev, fmt.Errorf("declare %q in %s: %w", name, t.Name(layer), ErrDuplicate)
	}
	if l.IsClass() {
		if err := bindMember(l.Class, name, kind, typ); err != nil {
			return NoSymbolID, err
		}
	}
	id := t.symbols.New(&Symbol{
		Name:  key,
		Kind:  kind,
		Layer: layer,
		Type:  typ,
		Value: ir.Zero(typ, t.storageFor(layer, l, kind)),
	})
	l.NameIndex[key] = id
	l.Symbols = append(l.Symbols, id)
	return id, nil
}

func bindMember(class *types.ClassType, name string, kind SymbolKind, typ types.Type) error {
	if m, ok := class.OwnMember(name); ok {
		if !types.Identical(m.Type, typ) || (m.Kind == types.MemberMethod) != (kind == SymbolMethod) {
			return fmt.Errorf("declare %q in class %s: %w (member is %s %s)", name, class.Name(), ErrMemberMismatch, m.Kind, m.Type)
		}
		return nil
	}
	if kind == SymbolMethod {
		mt, ok := typ.(*types.MethodType)
		if !ok {
			return fmt.Errorf("declare method %q in class %s: %w: %s is not a method type", name, class.Name(), ErrMemberMismatch, typ)
		}
		return class.AddMethod(name, mt)
	}
	return class.AddField(name, typ)
}

// storageFor derives the IR provenance tag of a declaration.
func (t *Tree) storageFor(id LayerID, l *Layer, kind SymbolKind) ir.ScopeType {
	switch {
	case kind == SymbolParam:
		return ir.ScopeParam
	case l.IsClass():
		return ir.ScopeMember
	case id == t.root:
		return ir.ScopeGlobal
	default:
		return ir.ScopeLocal
	}
}

// LookupLocal finds name declared directly in layer.
func (t *Tree) LookupLocal(layer LayerID, name string) (SymbolID, bool) {
	l := t.mustOwn("LookupLocal", layer)
	key, ok := t.Strings.Find(name)
	if !ok {
		return NoSymbolID, false
	}
	id, ok := l.NameIndex[key]
	return id, ok
}

// Lookup finds name in layer or the nearest enclosing layer declaring it.
func (t *Tree) Lookup(layer LayerID, name string) (SymbolID, bool) {
	t.mustOwn("Lookup", layer)
	key, ok := t.Strings.Find(name)
	if !ok {
		return NoSymbolID, false
	}
	for id := layer; id.IsValid(); {
		l := t.layers.Get(id)
		if sym, ok := l.NameIndex[key]; ok {
			return sym, true
		}
		id = l.Parent
	}
	return NoSymbolID, false
}

// Resolution is what a name denotes from some layer: either a declared symbol
// or a class member without a symbol of its own (an inherited one).
type Resolution struct {
	Symbol SymbolID
	Member types.Member
	Class  *types.ClassType
	Layer  LayerID
}

// IsSymbol reports whether the name resolved to a declared symbol.
func (r Resolution) IsSymbol() bool { return r.Symbol.IsValid() }

// Resolve walks from layer toward the root. Each layer's own declarations are
// consulted first; a class layer then consults its class members, base chain
// included, before the walk moves on to the enclosing layer.
func (t *Tree) Resolve(layer LayerID, name string) (Resolution, bool) {
	t.mustOwn("Resolve", layer)
	key, interned := t.Strings.Find(name)
	for id := layer; id.IsValid(); {
		l := t.layers.Get(id)
		if interned {
			if sym, ok := l.NameIndex[key]; ok {
				return Resolution{Symbol: sym, Class: l.Class, Layer: id}, true
			}
		}
		if l.IsClass() {
			if m, ok := l.Class.Member(name); ok {
				return Resolution{Member: m, Class: l.Class, Layer: id}, true
			}
		}
		id = l.Parent
	}
	return Resolution{}, false
}

// LookupMember resolves name against the nearest enclosing class layer,
// following the class's base chain. It finds inherited members that have no
// symbol of their own.
func (t *Tree) LookupMember(layer LayerID, name string) (types.Member, *types.ClassType, bool) {
	t.mustOwn("LookupMember", layer)
	for id := layer; id.IsValid(); {
		l := t.layers.Get(id)
		if l.IsClass() {
			m, ok := l.Class.Member(name)
			return m, l.Class, ok
		}
		id = l.Parent
	}
	return types.Member{}, nil, false
}

// EnclosingClass returns the class of the nearest class layer around layer.
func (t *Tree) EnclosingClass(layer LayerID) (*types.ClassType, LayerID) {
	t.mustOwn("EnclosingClass", layer)
	for id := layer; id.IsValid(); {
		l := t.layers.Get(id)
		if l.IsClass() {
			return l.Class, id
		}
		id = l.Parent
	}
	return nil, NoLayerID
}

// FindPath resolves a slash-separated path of layer names starting below the
// root, e.g. "Shape/area". Each segment picks the first child with that name.
func (t *Tree) FindPath(path string) (LayerID, bool) {
	cur := t.mustOwn("FindPath", t.root)
	id := t.root
	for _, seg := range splitPath(path) {
		key, ok := t.Strings.Find(seg)
		if !ok {
			return NoLayerID, false
		}
		next := NoLayerID
		for _, child := range cur.Children {
			if t.layers.Get(child).Name == key {
				next = child
				break
			}
		}
		if !next.IsValid() {
			return NoLayerID, false
		}
		id, cur = next, t.layers.Get(next)
	}
	return id, true
}

// Path returns the slash-separated names from below the root down to id.
func (t *Tree) Path(id LayerID) string {
	t.mustOwn("Path", id)
	var segs []string
	for cur := id; cur.IsValid() && cur != t.root; cur = t.layers.Get(cur).Parent {
		segs = append(segs, t.Name(cur))
	}
	slices.Reverse(segs)
	return strings.Join(segs, "/")
}

func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
}
