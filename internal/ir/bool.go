package ir

import (
	"strconv"

	"stratum/internal/types"
)

// Bool is the result of logic operations.
type Bool struct {
	scope ScopeType
	value bool
}

func NewBool(scope ScopeType) *Bool {
	return &Bool{scope: scope}
}

func BoolOf(v bool) *Bool {
	return &Bool{scope: ScopeValue, value: v}
}

func (b *Bool) Value() bool      { return b.value }
func (b *Bool) SetValue(v bool)  { b.value = v }
func (b *Bool) Scope() ScopeType { return b.scope }
func (b *Bool) Type() types.Type { return types.Bool }

func (b *Bool) Equal(other Object) bool {
	o, ok := other.(*Bool)
	if !ok || b == nil || o == nil {
		return false
	}
	return b.value == o.value
}

func (b *Bool) String() string { return strconv.FormatBool(b.value) }
