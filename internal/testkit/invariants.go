// Package testkit holds invariant checks shared by package tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"stratum/internal/ast"
	"stratum/internal/fixture"
	"stratum/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a built fixture:
// 1) every check and call span is non-empty, points at sf and lies within its content
// 2) every expression node span is contained in the span of its check
// 3) a logic node covers the union of its operand spans
func CheckSpanInvariants(p *fixture.Program, sf *source.File) error {
	if p == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	inFile := func(what string, sp source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("%s span is empty: %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span points to different file id: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, lenContent)
		}
		return nil
	}

	for i, c := range p.Checks {
		if err := inFile(fmt.Sprintf("check #%d", i+1), c.Span); err != nil {
			return err
		}
		var walkErr error
		ast.Walk(c.Expr, func(e ast.Expr) bool {
			sp := e.Span()
			if sp.File != c.Span.File || sp.Start < c.Span.Start || sp.End > c.Span.End {
				walkErr = fmt.Errorf("check #%d: node span %v is outside check span %v", i+1, sp, c.Span)
				return false
			}
			op, ok := e.(*ast.LogicOpExpr)
			if !ok || op.LHS == nil || op.RHS == nil {
				return true
			}
			union := op.LHS.Span().Cover(op.RHS.Span())
			if union.Start < sp.Start || union.End > sp.End {
				walkErr = fmt.Errorf("check #%d: %s span %v does not cover operands %v", i+1, op.Op, sp, union)
				return false
			}
			return true
		})
		if walkErr != nil {
			return walkErr
		}
	}
	for i, c := range p.Calls {
		if err := inFile(fmt.Sprintf("call #%d", i+1), c.Span); err != nil {
			return err
		}
	}
	return nil
}
