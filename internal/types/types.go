package types

import "fmt"

// TypeID discriminates the shape of a Type.
type TypeID uint8

const (
	Invalid TypeID = iota
	VoidTy
	IntTy
	BoolTy
	StringTy
	ClassTy
	MethodTy
)

func (id TypeID) String() string {
	switch id {
	case Invalid:
		return "invalid"
	case VoidTy:
		return "void"
	case IntTy:
		return "int"
	case BoolTy:
		return "bool"
	case StringTy:
		return "string"
	case ClassTy:
		return "class"
	case MethodTy:
		return "method"
	default:
		return fmt.Sprintf("TypeID(%d)", id)
	}
}

// Type is a shared, immutable type descriptor. Two descriptors describe the
// same type when Identical reports true; pointer identity is irrelevant.
type Type interface {
	ID() TypeID
	String() string
}

// Primitive is a type without constituents.
type Primitive struct {
	id TypeID
}

func (p *Primitive) ID() TypeID     { return p.id }
func (p *Primitive) String() string { return p.id.String() }

// Canonical primitive instances shared by every user.
var (
	Void   Type = &Primitive{id: VoidTy}
	Int    Type = &Primitive{id: IntTy}
	Bool   Type = &Primitive{id: BoolTy}
	String Type = &Primitive{id: StringTy}
)

// IsPrimitive reports whether t has no constituent types.
func IsPrimitive(t Type) bool {
	_, ok := t.(*Primitive)
	return ok
}
