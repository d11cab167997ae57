// Package ir holds the typed values produced while lowering expressions.
package ir

import "stratum/internal/types"

// ScopeType tells later passes where a value conceptually lives. It drives
// storage decisions only; type checking ignores it.
type ScopeType uint8

const (
	// ScopeValue marks temporaries produced by expression evaluation.
	ScopeValue ScopeType = iota
	ScopeLocal
	ScopeParam
	ScopeGlobal
	ScopeMember
)

func (s ScopeType) String() string {
	switch s {
	case ScopeValue:
		return "value"
	case ScopeLocal:
		return "local"
	case ScopeParam:
		return "param"
	case ScopeGlobal:
		return "global"
	case ScopeMember:
		return "member"
	default:
		return "invalid"
	}
}

// ParseScopeType is the inverse of ScopeType.String.
func ParseScopeType(s string) (ScopeType, bool) {
	switch s {
	case "value", "":
		return ScopeValue, true
	case "local":
		return ScopeLocal, true
	case "param":
		return ScopeParam, true
	case "global":
		return ScopeGlobal, true
	case "member":
		return ScopeMember, true
	}
	return ScopeValue, false
}

// Object is a typed IR value. Equal compares current payloads and must return
// false for a different concrete variant.
type Object interface {
	Type() types.Type
	Scope() ScopeType
	Equal(other Object) bool
	String() string
}

// Truthy reports the boolean reading of o and whether o has one.
// Integers are true when non-zero.
func Truthy(o Object) (value, ok bool) {
	switch v := o.(type) {
	case *Bool:
		return v.value, true
	case *Integer:
		return v.value != 0, true
	default:
		return false, false
	}
}

// Zero returns an uninitialized object of type t tagged with scope, or nil
// when t has no IR representation.
func Zero(t types.Type, scope ScopeType) Object {
	switch t.ID() {
	case types.IntTy:
		return NewInteger(scope)
	case types.BoolTy:
		return NewBool(scope)
	default:
		return nil
	}
}
