// Package sema is the reference analysis pass over expressions: it resolves
// identifiers through the scope tree, types logical operators and folds
// constant operands into IR objects.
package sema

import (
	"fmt"

	"stratum/internal/ast"
	"stratum/internal/diag"
	"stratum/internal/ir"
	"stratum/internal/source"
	"stratum/internal/symbols"
	"stratum/internal/types"
)

// Result describes one checked expression. Type is nil when the expression
// is erroneous; Value is nil unless the expression is constant.
type Result struct {
	Type  types.Type
	Value ir.Object
	// Symbol is set for identifiers bound to a declared symbol.
	Symbol symbols.SymbolID
}

// Checker implements ast.Visitor. It is bound to the layer the checked
// expressions appear in.
type Checker struct {
	tree     *symbols.Tree
	layer    symbols.LayerID
	reporter diag.Reporter
	results  map[ast.Expr]Result
}

// NewChecker returns a checker resolving names from layer.
func NewChecker(tree *symbols.Tree, layer symbols.LayerID, reporter diag.Reporter) *Checker {
	return &Checker{
		tree:     tree,
		layer:    layer,
		reporter: reporter,
		results:  make(map[ast.Expr]Result),
	}
}

// Enter moves the checker to another layer of the same tree.
func (c *Checker) Enter(layer symbols.LayerID) { c.layer = layer }

// Layer is the layer names are currently resolved from.
func (c *Checker) Layer() symbols.LayerID { return c.layer }

// Check visits e and returns its result.
func (c *Checker) Check(e ast.Expr) Result {
	if e == nil {
		return Result{}
	}
	e.Accept(c)
	return c.results[e]
}

// ResultOf returns the result recorded for an already checked expression.
func (c *Checker) ResultOf(e ast.Expr) (Result, bool) {
	r, ok := c.results[e]
	return r, ok
}

func (c *Checker) VisitIntLit(e *ast.IntLitExpr) {
	c.results[e] = Result{Type: types.Int, Value: ir.IntegerOf(e.Value)}
}

func (c *Checker) VisitBoolLit(e *ast.BoolLitExpr) {
	c.results[e] = Result{Type: types.Bool, Value: ir.BoolOf(e.Value)}
}

func (c *Checker) VisitIdent(e *ast.IdentExpr) {
	res, ok := c.tree.Resolve(c.layer, e.Name)
	switch {
	case !ok:
		c.errorf(diag.SemUndeclared, e.Sp, "undeclared identifier %q", e.Name)
		c.results[e] = Result{}
	case res.IsSymbol():
		sym := c.tree.Symbol(res.Symbol)
		if !isValueKind(sym.Kind) {
			c.errorf(diag.SemNotValue, e.Sp, "%s %q is not a value", sym.Kind, e.Name)
			c.results[e] = Result{Symbol: res.Symbol}
			return
		}
		c.results[e] = Result{Type: sym.Type, Symbol: res.Symbol}
	case res.Member.Kind != types.MemberField:
		c.errorf(diag.SemNotValue, e.Sp, "method %s.%s is not a value", res.Class.Name(), e.Name)
		c.results[e] = Result{}
	default:
		c.results[e] = Result{Type: res.Member.Type}
	}
}

func (c *Checker) VisitLogicOp(e *ast.LogicOpExpr) {
	lhs := c.Check(e.LHS)
	rhs := c.Check(e.RHS)
	okL := c.checkLogicOperand(e, e.LHS, lhs)
	okR := c.checkLogicOperand(e, e.RHS, rhs)
	if !okL || !okR {
		c.results[e] = Result{}
		return
	}
	res := Result{Type: types.Bool}
	l, lconst := ir.Truthy(lhs.Value)
	r, rconst := ir.Truthy(rhs.Value)
	if lconst && rconst {
		switch e.Op {
		case ast.LogicAnd:
			res.Value = ir.BoolOf(l && r)
		case ast.LogicOr:
			res.Value = ir.BoolOf(l || r)
		}
	}
	c.results[e] = res
}

// checkLogicOperand accepts bool and int operands. Operands that already
// failed are not reported again.
func (c *Checker) checkLogicOperand(op *ast.LogicOpExpr, operand ast.Expr, r Result) bool {
	if operand == nil {
		c.errorf(diag.SemLogicOperand, op.Sp, "operator %s is missing an operand", op.Op)
		return false
	}
	if r.Type == nil {
		return false
	}
	switch r.Type.ID() {
	case types.BoolTy, types.IntTy:
		return true
	}
	diag.ReportError(c.reporter, diag.SemLogicOperand, operand.Span(),
		fmt.Sprintf("operand of %s has type %s, want bool or int", op.Op, r.Type)).
		WithNote(op.Sp, "in this logical expression").
		Emit()
	return false
}

// CheckCall compares call-site argument types against a method signature.
func (c *Checker) CheckCall(method *types.MethodType, args []types.Type, span source.Span) bool {
	if method.ArgsNum() != len(args) {
		c.errorf(diag.SemArity, span, "call of %s: want %d arguments, got %d", method.Signature(), method.ArgsNum(), len(args))
		return false
	}
	ok := true
	for i, param := range method.Args() {
		if args[i] == nil {
			ok = false
			continue
		}
		if !types.AssignableTo(args[i], param.Type) {
			c.errorf(diag.SemArgType, span, "argument %d (%s): want %s, got %s", i+1, param.Symbol.Name, param.Type, args[i])
			ok = false
		}
	}
	return ok
}

// CallNamed resolves name from the current layer, with inherited members
// taking part at their class layer, and checks the call against the method it
// names.
func (c *Checker) CallNamed(name string, args []types.Type, span source.Span) bool {
	res, ok := c.tree.Resolve(c.layer, name)
	if !ok {
		c.errorf(diag.SemUndeclared, span, "undeclared method %q", name)
		return false
	}
	typ, what := res.Member.Type, "field"
	if res.IsSymbol() {
		typ, what = c.tree.Symbol(res.Symbol).Type, "symbol"
	}
	m, isMethod := typ.(*types.MethodType)
	if !isMethod {
		c.errorf(diag.SemNotCallable, span, "%s %q is not a method", what, name)
		return false
	}
	return c.CheckCall(m, args, span)
}

func (c *Checker) errorf(code diag.Code, span source.Span, format string, args ...any) {
	diag.ReportError(c.reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}

func isValueKind(k symbols.SymbolKind) bool {
	switch k {
	case symbols.SymbolVar, symbols.SymbolParam, symbols.SymbolField:
		return true
	}
	return false
}
