package ast

import "stratum/internal/source"

// IntLitExpr is an integer literal.
type IntLitExpr struct {
	Value int32
	Sp    source.Span
}

func (e *IntLitExpr) Accept(v Visitor)  { v.VisitIntLit(e) }
func (e *IntLitExpr) Span() source.Span { return e.Sp }
func (e *IntLitExpr) Release()          {}

// BoolLitExpr is true or false.
type BoolLitExpr struct {
	Value bool
	Sp    source.Span
}

func (e *BoolLitExpr) Accept(v Visitor)  { v.VisitBoolLit(e) }
func (e *BoolLitExpr) Span() source.Span { return e.Sp }
func (e *BoolLitExpr) Release()          {}

// IdentExpr names a declared symbol or class member.
type IdentExpr struct {
	Name string
	Sp   source.Span
}

func (e *IdentExpr) Accept(v Visitor)  { v.VisitIdent(e) }
func (e *IdentExpr) Span() source.Span { return e.Sp }
func (e *IdentExpr) Release()          {}
