package ast

import (
	"fmt"

	"stratum/internal/source"
)

// LogicOp enumerates logical binary operators.
type LogicOp uint8

const (
	// LogicAnd represents the logical AND operator (&&).
	LogicAnd LogicOp = iota + 1
	// LogicOr represents the logical OR operator (||).
	LogicOr
)

func (op LogicOp) String() string {
	switch op {
	case LogicAnd:
		return "&&"
	case LogicOr:
		return "||"
	default:
		return fmt.Sprintf("LogicOp(%d)", op)
	}
}

// ParseLogicOp accepts "&&"/"and" and "||"/"or".
func ParseLogicOp(s string) (LogicOp, bool) {
	switch s {
	case "&&", "and":
		return LogicAnd, true
	case "||", "or":
		return LogicOr, true
	}
	return 0, false
}

// LogicOpExpr is "LHS op RHS". It owns both operands.
type LogicOpExpr struct {
	Op  LogicOp
	LHS Expr
	RHS Expr
	Sp  source.Span
}

// NewLogicOp takes ownership of lhs and rhs.
func NewLogicOp(lhs Expr, op LogicOp, rhs Expr) *LogicOpExpr {
	e := &LogicOpExpr{Op: op, LHS: lhs, RHS: rhs}
	if lhs != nil && rhs != nil {
		e.Sp = lhs.Span().Cover(rhs.Span())
	}
	return e
}

func (e *LogicOpExpr) Accept(v Visitor)  { v.VisitLogicOp(e) }
func (e *LogicOpExpr) Span() source.Span { return e.Sp }

func (e *LogicOpExpr) Release() {
	if e.LHS != nil {
		e.LHS.Release()
		e.LHS = nil
	}
	if e.RHS != nil {
		e.RHS.Release()
		e.RHS = nil
	}
}
