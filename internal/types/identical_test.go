package types

import (
	"errors"
	"testing"
)

func TestIdenticalMethodsByShape(t *testing.T) {
	a := NewMethodType([]ArgEntry{Arg("a", Int), Arg("b", Bool)}, Int)
	b := NewMethodType([]ArgEntry{Arg("x", Int), Arg("y", Bool)}, Int)
	if !Identical(a, b) {
		t.Fatalf("argument names must not affect identity")
	}
	swapped := NewMethodType([]ArgEntry{Arg("b", Bool), Arg("a", Int)}, Int)
	if Identical(a, swapped) {
		t.Fatalf("argument order is significant")
	}
	otherRet := NewMethodType([]ArgEntry{Arg("a", Int), Arg("b", Bool)}, Bool)
	if Identical(a, otherRet) {
		t.Fatalf("return type is significant")
	}
}

func TestIdenticalMismatchedVariants(t *testing.T) {
	m := NewMethodType(nil, Int)
	cases := []struct {
		a, b Type
	}{
		{Int, Bool},
		{Int, m},
		{m, NewClassType("C", nil)},
		{Int, nil},
	}
	for _, tc := range cases {
		if Identical(tc.a, tc.b) || Identical(tc.b, tc.a) {
			t.Fatalf("%v vs %v must not be identical", tc.a, tc.b)
		}
	}
	if !Identical(nil, nil) {
		t.Fatalf("nil equals nil")
	}
}

func TestIdenticalSelfReferentialClasses(t *testing.T) {
	build := func() *ClassType {
		c := NewClassType("Node", nil)
		if err := c.AddField("next", c); err != nil {
			t.Fatal(err)
		}
		if err := c.AddMethod("len", NewMethodType(nil, Int)); err != nil {
			t.Fatal(err)
		}
		return c
	}
	if !Identical(build(), build()) {
		t.Fatalf("structurally equal recursive classes must be identical")
	}
}

func TestClassMembersAndBase(t *testing.T) {
	u := NewUniverse()
	base, err := u.RegisterClass("Shape", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := base.AddMethod("area", NewMethodType(nil, Int)); err != nil {
		t.Fatal(err)
	}
	sq, err := u.RegisterClass("Square", base)
	if err != nil {
		t.Fatal(err)
	}
	if err := sq.AddField("side", Int); err != nil {
		t.Fatal(err)
	}
	if m, ok := sq.Member("area"); !ok || m.Kind != MemberMethod {
		t.Fatalf("inherited member lookup failed: %+v %v", m, ok)
	}
	if _, ok := sq.OwnMember("area"); ok {
		t.Fatalf("OwnMember must not consult base")
	}
	if err := sq.AddField("side", Bool); !errors.Is(err, ErrDuplicateMember) {
		t.Fatalf("expected duplicate member error, got %v", err)
	}
	if !AssignableTo(sq, base) || AssignableTo(base, sq) {
		t.Fatalf("subclass assignability is one-way")
	}
	if !sq.IsSubclassOf(base) {
		t.Fatalf("expected Square to derive from Shape")
	}
}

func TestClassHolds(t *testing.T) {
	c := NewClassType("C", nil)
	c.Retain()
	c.Retain()
	c.Release()
	if c.Holders() != 1 {
		t.Fatalf("holders: %d", c.Holders())
	}
	c.Release()
	defer func() {
		if recover() == nil {
			t.Fatalf("release below zero must panic")
		}
	}()
	c.Release()
}
