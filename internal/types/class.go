package types

import "fmt"

// MemberKind separates data members from methods.
type MemberKind uint8

const (
	MemberField MemberKind = iota + 1
	MemberMethod
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberMethod:
		return "method"
	default:
		return "invalid"
	}
}

// Member is one entry of a class member table.
type Member struct {
	Name string
	Kind MemberKind
	Type Type
}

// ClassType is a named class with an ordered member table and an optional base.
// Scope layers hold a shared reference to it; Retain/Release count those holds.
type ClassType struct {
	name    string
	ordinal uint32
	base    *ClassType
	members []Member
	index   map[string]int
	holds   int
}

// NewClassType creates an unregistered class. Prefer Universe.RegisterClass.
func NewClassType(name string, base *ClassType) *ClassType {
	return &ClassType{
		name:  name,
		base:  base,
		index: make(map[string]int),
	}
}

func (c *ClassType) ID() TypeID     { return ClassTy }
func (c *ClassType) String() string { return c.name }
func (c *ClassType) Name() string   { return c.name }

// Ordinal is the registration index inside the owning Universe (0 if unregistered).
func (c *ClassType) Ordinal() uint32 { return c.ordinal }

func (c *ClassType) Base() *ClassType { return c.base }

// AddField declares a data member.
func (c *ClassType) AddField(name string, t Type) error {
	return c.addMember(Member{Name: name, Kind: MemberField, Type: t})
}

// AddMethod declares a method member.
func (c *ClassType) AddMethod(name string, m *MethodType) error {
	if m == nil {
		return fmt.Errorf("class %s: method %q has no signature", c.name, name)
	}
	return c.addMember(Member{Name: name, Kind: MemberMethod, Type: m})
}

func (c *ClassType) addMember(m Member) error {
	if m.Type == nil {
		return fmt.Errorf("class %s: member %q has no type", c.name, m.Name)
	}
	if _, ok := c.index[m.Name]; ok {
		return fmt.Errorf("class %s: %w: %q", c.name, ErrDuplicateMember, m.Name)
	}
	c.index[m.Name] = len(c.members)
	c.members = append(c.members, m)
	return nil
}

// OwnMember looks a member up without consulting base classes.
func (c *ClassType) OwnMember(name string) (Member, bool) {
	i, ok := c.index[name]
	if !ok {
		return Member{}, false
	}
	return c.members[i], true
}

// Member looks a member up in c and then along the base chain.
func (c *ClassType) Member(name string) (Member, bool) {
	for cls := c; cls != nil; cls = cls.base {
		if m, ok := cls.OwnMember(name); ok {
			return m, true
		}
	}
	return Member{}, false
}

// Members returns the own member table in declaration order. Read-only.
func (c *ClassType) Members() []Member { return c.members }

// IsSubclassOf reports whether other is c or one of its bases.
func (c *ClassType) IsSubclassOf(other *ClassType) bool {
	for cls := c; cls != nil; cls = cls.base {
		if cls == other {
			return true
		}
	}
	return false
}

// Retain records one more holder of the class.
func (c *ClassType) Retain() { c.holds++ }

// Release drops one hold. Releasing an unheld class panics.
func (c *ClassType) Release() {
	if c.holds == 0 {
		panic("types: release of unheld class " + c.name)
	}
	c.holds--
}

// Holders reports the number of outstanding holds.
func (c *ClassType) Holders() int { return c.holds }
