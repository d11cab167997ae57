package ir

import (
	"math"
	"testing"

	"stratum/internal/types"
)

func TestIntegerEqualMatchesValue(t *testing.T) {
	values := []int32{0, 1, -1, 5, -5, math.MaxInt32, math.MinInt32}
	for _, x := range values {
		for _, y := range values {
			a, b := IntegerOf(x), NewInteger(ScopeLocal)
			b.SetValue(y)
			if got, want := a.Equal(b), x == y; got != want {
				t.Fatalf("Equal(%d,%d)=%v want %v", x, y, got, want)
			}
			if a.Equal(b) != b.Equal(a) {
				t.Fatalf("Equal must be symmetric for %d,%d", x, y)
			}
		}
	}
	if !IntegerOf(5).Equal(IntegerOf(5)) {
		t.Fatalf("5 == 5")
	}
	if IntegerOf(5).Equal(IntegerOf(-5)) {
		t.Fatalf("5 != -5")
	}
}

func TestIntegerEqualTracksMutation(t *testing.T) {
	a, b := IntegerOf(3), IntegerOf(4)
	if a.Equal(b) {
		t.Fatalf("3 != 4")
	}
	b.SetValue(3)
	if !a.Equal(b) {
		t.Fatalf("equality is over current state")
	}
}

func TestEqualAcrossVariants(t *testing.T) {
	var nilInt *Integer
	cases := []struct {
		a, b Object
	}{
		{IntegerOf(1), BoolOf(true)},
		{BoolOf(false), IntegerOf(0)},
		{IntegerOf(0), nil},
		{IntegerOf(0), nilInt},
	}
	for _, tc := range cases {
		if tc.a.Equal(tc.b) {
			t.Fatalf("%v must not equal %v", tc.a, tc.b)
		}
	}
}

func TestIntegerString(t *testing.T) {
	cases := map[int32]string{
		-7:            "-7",
		0:             "0",
		42:            "42",
		math.MinInt32: "-2147483648",
	}
	for v, want := range cases {
		if got := IntegerOf(v).String(); got != want {
			t.Fatalf("String(%d)=%q want %q", v, got, want)
		}
	}
}

func TestConstructorsAndTypes(t *testing.T) {
	decl := NewInteger(ScopeParam)
	if decl.Value() != 0 || decl.Scope() != ScopeParam {
		t.Fatalf("bare integer: value=%d scope=%v", decl.Value(), decl.Scope())
	}
	if IntegerOf(9).Scope() != ScopeValue {
		t.Fatalf("value-constructed integers default to ScopeValue")
	}
	if decl.Type() != types.Int || BoolOf(true).Type() != types.Bool {
		t.Fatalf("objects must report canonical types")
	}
	if z := Zero(types.Int, ScopeGlobal); z == nil || z.Scope() != ScopeGlobal {
		t.Fatalf("Zero(int) = %v", z)
	}
	if Zero(types.Void, ScopeLocal) != nil {
		t.Fatalf("void has no IR value")
	}
}

func TestTruthy(t *testing.T) {
	if v, ok := Truthy(IntegerOf(-3)); !ok || !v {
		t.Fatalf("non-zero integer is true")
	}
	if v, ok := Truthy(BoolOf(false)); !ok || v {
		t.Fatalf("false is false")
	}
	if _, ok := Truthy(nil); ok {
		t.Fatalf("nil has no truth value")
	}
}

func TestParseScopeTypeRoundTrip(t *testing.T) {
	for _, s := range []ScopeType{ScopeValue, ScopeLocal, ScopeParam, ScopeGlobal, ScopeMember} {
		got, ok := ParseScopeType(s.String())
		if !ok || got != s {
			t.Fatalf("round trip %v -> %v (%v)", s, got, ok)
		}
	}
}
