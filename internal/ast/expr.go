// Package ast holds the expression nodes analysis passes walk.
//
// Nodes dispatch to a Visitor through Accept. The node set is small and
// stable while analysis passes come and go, so adding a pass means writing a
// new Visitor; adding a node kind means one new Visit method on the interface.
package ast

import "stratum/internal/source"

// Expr is an owning expression node.
type Expr interface {
	// Accept calls the visitor method for the concrete node type.
	Accept(v Visitor)
	Span() source.Span
	// Release drops the node and every subtree it owns. Releasing twice is a no-op.
	Release()
}

// Visitor has one handler per concrete node type.
type Visitor interface {
	VisitLogicOp(e *LogicOpExpr)
	VisitIntLit(e *IntLitExpr)
	VisitBoolLit(e *BoolLitExpr)
	VisitIdent(e *IdentExpr)
}

// Walk calls fn for e and then, when fn returns true, for each operand in order.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	if op, ok := e.(*LogicOpExpr); ok {
		Walk(op.LHS, fn)
		Walk(op.RHS, fn)
	}
}
