package symbols

import "iter"

// Walk visits every layer below the root in pre-order. Returning false from fn
// skips the children of that layer.
func (t *Tree) Walk(fn func(id LayerID, depth int) bool) {
	root := t.mustOwn("Walk", t.root)
	for _, child := range root.Children {
		t.walk(child, 0, fn)
	}
}

func (t *Tree) walk(id LayerID, depth int, fn func(LayerID, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, child := range t.layers.Get(id).Children {
		t.walk(child, depth+1, fn)
	}
}

// All yields every layer below the root in pre-order.
func (t *Tree) All() iter.Seq[LayerID] {
	return func(yield func(LayerID) bool) {
		for c := t.Begin(); !c.Done(); {
			if !yield(c.Layer()) {
				return
			}
			if !c.GoDown() {
				c.Next()
			}
		}
	}
}

// Children returns the owned children of id in insertion order. Read-only.
func (t *Tree) Children(id LayerID) []LayerID {
	return t.mustOwn("Children", id).Children
}
