package ir

import (
	"strconv"

	"stratum/internal/types"
)

// Integer is a 32-bit signed IR value.
type Integer struct {
	scope ScopeType
	value int32
}

// NewInteger declares an integer living in scope with a zero payload.
func NewInteger(scope ScopeType) *Integer {
	return &Integer{scope: scope}
}

// IntegerOf wraps a literal as an expression result.
func IntegerOf(v int32) *Integer {
	return &Integer{scope: ScopeValue, value: v}
}

func (i *Integer) Value() int32     { return i.value }
func (i *Integer) SetValue(v int32) { i.value = v }
func (i *Integer) Scope() ScopeType { return i.scope }
func (i *Integer) Type() types.Type { return types.Int }

func (i *Integer) Equal(other Object) bool {
	o, ok := other.(*Integer)
	if !ok || i == nil || o == nil {
		return false
	}
	return i.value == o.value
}

func (i *Integer) String() string {
	return strconv.FormatInt(int64(i.value), 10)
}
