package symbols

// Cursor walks the tree in pre-order without recursion. It points at the
// idx-th child of parent; the indexes of the ancestors it descended through
// are kept on an explicit stack so traversal can be paused and resumed.
//
// A full walk dereferences the cursor, calls GoDown when the layer has
// children and Next otherwise, until Done:
//
//	for c := tree.Begin(); !c.Done(); {
//		visit(c.Layer())
//		if !c.GoDown() {
//			c.Next()
//		}
//	}
type Cursor struct {
	tree   *Tree
	parent LayerID
	idx    int
	stack  []int
}

// Begin returns a cursor on the first child of the root.
func (t *Tree) Begin() Cursor {
	t.mustOwn("Begin", t.root)
	return Cursor{tree: t, parent: t.root}
}

// End returns the position one past the last child of the root.
func (t *Tree) End() Cursor {
	root := t.mustOwn("End", t.root)
	return Cursor{tree: t, parent: t.root, idx: len(root.Children)}
}

func (c *Cursor) children() []LayerID {
	return c.tree.mustOwn("Cursor", c.parent).Children
}

// Done reports whether the cursor reached End.
func (c *Cursor) Done() bool {
	return len(c.stack) == 0 && c.idx >= len(c.children())
}

// Equal reports whether both cursors point at the same position.
func (c Cursor) Equal(other Cursor) bool {
	return c.tree == other.tree && c.parent == other.parent && c.idx == other.idx
}

// Layer dereferences the cursor: the current child of the current parent.
func (c *Cursor) Layer() LayerID {
	kids := c.children()
	if c.idx >= len(kids) {
		structural("Cursor.Layer", c.parent, "dereference past the last child")
	}
	return kids[c.idx]
}

// Parent returns the layer whose children the cursor is iterating.
func (c *Cursor) Parent() LayerID { return c.parent }

// Index returns the position among the parent's children.
func (c *Cursor) Index() int { return c.idx }

// Depth is 0 for children of the root and grows by one per GoDown.
func (c *Cursor) Depth() int { return len(c.stack) }

// GoDown enters the children of the current layer. It reports false and does
// not move when the current layer has no children. A GoUp must only pair with
// a GoDown that returned true; after a false GoDown the cursor is still at the
// same depth and GoUp would leave the current parent instead.
func (c *Cursor) GoDown() bool {
	cur := c.Layer()
	if len(c.tree.mustOwn("Cursor.GoDown", cur).Children) == 0 {
		return false
	}
	c.stack = append(c.stack, c.idx)
	c.parent = cur
	c.idx = 0
	return true
}

// GoUp returns to the position held before the matching GoDown.
func (c *Cursor) GoUp() {
	if len(c.stack) == 0 {
		structural("Cursor.GoUp", c.parent, "already at the root")
	}
	c.parent = c.tree.mustOwn("Cursor.GoUp", c.parent).Parent
	last := len(c.stack) - 1
	c.idx = c.stack[last]
	c.stack = c.stack[:last]
}

// Next advances to the following sibling. When the parent's children are
// exhausted it climbs back up and continues after the finished subtree, so
// every position except End can be dereferenced.
func (c *Cursor) Next() {
	if c.Done() {
		structural("Cursor.Next", c.parent, "advance past end")
	}
	c.idx++
	for len(c.stack) > 0 && c.idx >= len(c.children()) {
		c.GoUp()
		c.idx++
	}
}
