package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"stratum/internal/types"
)

// Validate walks the arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Tree) Validate() error {
	if t.released {
		return nil
	}
	var errs []error

	// Every layer except the root has a parent listing it exactly once.
	for idx := 1; idx < len(t.layers.data); idx++ {
		id, err := toLayerID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		l := &t.layers.data[idx]
		if l.Kind == LayerInvalid {
			errs = append(errs, fmt.Errorf("layer %d has invalid kind", id))
		}
		if id == t.root {
			if l.Parent.IsValid() {
				errs = append(errs, fmt.Errorf("root layer %d has parent %d", id, l.Parent))
			}
			continue
		}
		parent := t.layers.Get(l.Parent)
		if parent == nil || l.Parent == id {
			errs = append(errs, fmt.Errorf("layer %d has invalid parent %d", id, l.Parent))
			continue
		}
		if n := countOf(parent.Children, id); n != 1 {
			errs = append(errs, fmt.Errorf("layer %d listed %d times by parent %d", id, n, l.Parent))
		}
		for _, child := range l.Children {
			if c := t.layers.Get(child); c == nil || c.Parent != id {
				errs = append(errs, fmt.Errorf("layer %d child %d missing parent backlink", id, child))
			}
		}
	}

	// Name index and symbol list agree, class layers resolve as members.
	for idx := 1; idx < len(t.layers.data); idx++ {
		id, err := toLayerID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		l := &t.layers.data[idx]
		if len(l.NameIndex) != len(l.Symbols) {
			errs = append(errs, fmt.Errorf("layer %d indexes %d names for %d symbols", id, len(l.NameIndex), len(l.Symbols)))
		}
		if l.IsClass() && (l.Class == nil || l.Class.Holders() == 0) {
			errs = append(errs, fmt.Errorf("class layer %d does not hold its class", id))
			continue
		}
		for _, symID := range l.Symbols {
			sym := t.symbols.Get(symID)
			if sym == nil {
				errs = append(errs, fmt.Errorf("layer %d references missing symbol %d", id, symID))
				continue
			}
			if sym.Layer != id {
				errs = append(errs, fmt.Errorf("symbol %d claims layer %d but is listed by %d", symID, sym.Layer, id))
			}
			if l.NameIndex[sym.Name] != symID {
				errs = append(errs, fmt.Errorf("layer %d symbol %d missing in name index", id, symID))
			}
			if l.IsClass() {
				name := t.Strings.MustLookup(sym.Name)
				m, ok := l.Class.OwnMember(name)
				if !ok || !types.Identical(m.Type, sym.Type) {
					errs = append(errs, fmt.Errorf("class layer %d symbol %q is not a member of %s", id, name, l.Class.Name()))
				}
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func countOf(ids []LayerID, id LayerID) int {
	n := 0
	for _, v := range ids {
		if v == id {
			n++
		}
	}
	return n
}

func toLayerID(idx int) (LayerID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoLayerID, fmt.Errorf("layer index %d overflow: %w", idx, err)
	}
	return LayerID(value), nil
}
