package types

import (
	"strings"

	"stratum/internal/source"
)

// ArgSymbol names a parameter and remembers where it was declared.
type ArgSymbol struct {
	Name string
	Span source.Span
}

// ArgEntry is one parameter of a method signature.
type ArgEntry struct {
	Symbol ArgSymbol
	Type   Type
}

// Arg is a shorthand for building an ArgEntry without a span.
func Arg(name string, t Type) ArgEntry {
	return ArgEntry{Symbol: ArgSymbol{Name: name}, Type: t}
}

// MethodType is a callable signature: ordered arguments and one return type.
type MethodType struct {
	args   []ArgEntry
	ret    Type
	sealed bool
}

// NewMethodType builds a finalized signature. The argument slice is copied.
func NewMethodType(args []ArgEntry, ret Type) *MethodType {
	m := NewEmptyMethodType(ret)
	m.args = append(m.args, args...)
	m.sealed = true
	return m
}

// NewEmptyMethodType starts a signature whose arguments are appended with
// AddArg while it is being parsed. Call Seal once the argument list is complete.
func NewEmptyMethodType(ret Type) *MethodType {
	if ret == nil {
		panic("types: method type without return type")
	}
	return &MethodType{ret: ret}
}

// AddArg appends one argument. Appending to a sealed signature panics.
func (m *MethodType) AddArg(entry ArgEntry) {
	if m.sealed {
		panic("types: AddArg on sealed method type " + m.String())
	}
	m.args = append(m.args, entry)
}

// Seal freezes the argument list.
func (m *MethodType) Seal() *MethodType {
	m.sealed = true
	return m
}

func (m *MethodType) Sealed() bool { return m.sealed }

func (m *MethodType) ID() TypeID { return MethodTy }

// Args returns the owned argument slice. Callers must not modify it.
func (m *MethodType) Args() []ArgEntry { return m.args }

func (m *MethodType) ArgsNum() int { return len(m.args) }

func (m *MethodType) ReturnType() Type { return m.ret }

// String renders "ret (type name, type name, )". Every argument is followed by
// ", " including the last one; golden dumps depend on this exact form.
func (m *MethodType) String() string {
	var sb strings.Builder
	sb.WriteString(m.ret.String())
	sb.WriteString(" (")
	for _, a := range m.args {
		sb.WriteString(a.Type.String())
		sb.WriteByte(' ')
		sb.WriteString(a.Symbol.Name)
		sb.WriteString(", ")
	}
	sb.WriteByte(')')
	return sb.String()
}

// Signature renders the signature without the trailing separator.
func (m *MethodType) Signature() string {
	parts := make([]string, len(m.args))
	for i, a := range m.args {
		parts[i] = a.Type.String() + " " + a.Symbol.Name
	}
	return m.ret.String() + " (" + strings.Join(parts, ", ") + ")"
}
