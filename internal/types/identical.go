package types

// Identical reports whether a and b describe the same type by shape.
// Mismatched variants compare unequal; nil only equals nil.
func Identical(a, b Type) bool {
	return identical(a, b, nil)
}

type typePair struct{ a, b Type }

func identical(a, b Type, seen map[typePair]bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.ID() != b.ID() {
		return false
	}
	switch at := a.(type) {
	case *Primitive:
		// same ID is enough for primitives
		return true
	case *MethodType:
		bt, ok := b.(*MethodType)
		if !ok || len(at.args) != len(bt.args) {
			return false
		}
		if !identical(at.ret, bt.ret, seen) {
			return false
		}
		for i := range at.args {
			if !identical(at.args[i].Type, bt.args[i].Type, seen) {
				return false
			}
		}
		return true
	case *ClassType:
		bt, ok := b.(*ClassType)
		if !ok {
			return false
		}
		return identicalClass(at, bt, seen)
	default:
		return false
	}
}

// identicalClass compares name, base chain and member tables. Self-referential
// members are handled by assuming pairs under comparison are equal.
func identicalClass(a, b *ClassType, seen map[typePair]bool) bool {
	if a.name != b.name || len(a.members) != len(b.members) {
		return false
	}
	if (a.base == nil) != (b.base == nil) {
		return false
	}
	key := typePair{a, b}
	if seen[key] {
		return true
	}
	if seen == nil {
		seen = make(map[typePair]bool)
	}
	seen[key] = true
	if a.base != nil && !identicalClass(a.base, b.base, seen) {
		return false
	}
	for i := range a.members {
		ma, mb := a.members[i], b.members[i]
		if ma.Name != mb.Name || ma.Kind != mb.Kind {
			return false
		}
		if !identical(ma.Type, mb.Type, seen) {
			return false
		}
	}
	return true
}

// AssignableTo reports whether a value of type src may be stored where dst is
// expected: identical types, or a class converting to one of its bases.
func AssignableTo(src, dst Type) bool {
	if Identical(src, dst) {
		return true
	}
	sc, ok := src.(*ClassType)
	if !ok {
		return false
	}
	dc, ok := dst.(*ClassType)
	if !ok {
		return false
	}
	for cls := sc.base; cls != nil; cls = cls.base {
		if Identical(cls, dc) {
			return true
		}
	}
	return false
}
