package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Universe maps type names to shared descriptors. Primitives are pre-seeded;
// classes are registered as declarations are encountered.
type Universe struct {
	byName  map[string]Type
	classes []*ClassType
}

// NewUniverse returns a registry seeded with the canonical primitives.
func NewUniverse() *Universe {
	u := &Universe{
		byName:  make(map[string]Type, 16),
		classes: make([]*ClassType, 1, 16), // slot 0 reserved
	}
	for _, p := range []Type{Void, Int, Bool, String} {
		u.byName[p.String()] = p
	}
	return u
}

// RegisterClass creates a class named name deriving from base (may be nil).
func (u *Universe) RegisterClass(name string, base *ClassType) (*ClassType, error) {
	if name == "" {
		return nil, fmt.Errorf("register class: empty name")
	}
	if _, ok := u.byName[name]; ok {
		return nil, fmt.Errorf("register class: %w: %q", ErrDuplicateType, name)
	}
	ordinal, err := safecast.Conv[uint32](len(u.classes))
	if err != nil {
		panic(fmt.Errorf("class registry overflow: %w", err))
	}
	c := NewClassType(name, base)
	c.ordinal = ordinal
	u.classes = append(u.classes, c)
	u.byName[name] = c
	return c, nil
}

// Lookup returns the type registered under name.
func (u *Universe) Lookup(name string) (Type, bool) {
	t, ok := u.byName[name]
	return t, ok
}

// Resolve is Lookup with an error for unknown names.
func (u *Universe) Resolve(name string) (Type, error) {
	t, ok := u.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// Class returns the class registered under name.
func (u *Universe) Class(name string) (*ClassType, bool) {
	c, ok := u.byName[name].(*ClassType)
	return c, ok
}

// ClassByOrdinal returns the class with the given registration ordinal.
func (u *Universe) ClassByOrdinal(ord uint32) *ClassType {
	if ord == 0 || int(ord) >= len(u.classes) {
		return nil
	}
	return u.classes[ord]
}

// Classes returns registered classes in registration order.
func (u *Universe) Classes() []*ClassType {
	if len(u.classes) <= 1 {
		return nil
	}
	return u.classes[1:]
}
