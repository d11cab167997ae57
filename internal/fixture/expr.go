package fixture

import (
	"errors"
	"fmt"
	"math"

	"stratum/internal/ast"
	"stratum/internal/source"
)

var errBadExpr = errors.New("malformed expression")

// decodeExpr turns an inline expression table into an AST. Every node carries
// sp since the TOML decoder does not report positions.
func decodeExpr(tbl map[string]any, sp source.Span) (ast.Expr, error) {
	if len(tbl) == 0 {
		return nil, fmt.Errorf("%w: empty table", errBadExpr)
	}
	if raw, ok := tbl["op"]; ok {
		return decodeLogic(tbl, raw, sp)
	}
	if len(tbl) != 1 {
		return nil, fmt.Errorf("%w: leaf needs exactly one of ident, int, bool", errBadExpr)
	}
	for key, raw := range tbl {
		switch key {
		case "ident":
			name, ok := raw.(string)
			if !ok || name == "" {
				return nil, fmt.Errorf("%w: ident must be a non-empty string", errBadExpr)
			}
			return &ast.IdentExpr{Name: name, Sp: sp}, nil
		case "int":
			v, ok := raw.(int64)
			if !ok || v < math.MinInt32 || v > math.MaxInt32 {
				return nil, fmt.Errorf("%w: int must be a 32-bit integer, got %v", errBadExpr, raw)
			}
			return &ast.IntLitExpr{Value: int32(v), Sp: sp}, nil
		case "bool":
			v, ok := raw.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: bool must be true or false", errBadExpr)
			}
			return &ast.BoolLitExpr{Value: v, Sp: sp}, nil
		default:
			return nil, fmt.Errorf("%w: unknown key %q", errBadExpr, key)
		}
	}
	return nil, errBadExpr
}

func decodeLogic(tbl map[string]any, raw any, sp source.Span) (ast.Expr, error) {
	name, _ := raw.(string)
	op, ok := ast.ParseLogicOp(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown operator %v", errBadExpr, raw)
	}
	for key := range tbl {
		if key != "op" && key != "lhs" && key != "rhs" {
			return nil, fmt.Errorf("%w: unknown key %q in %s", errBadExpr, key, op)
		}
	}
	lhs, err := decodeOperand(tbl, "lhs", sp)
	if err != nil {
		return nil, err
	}
	rhs, err := decodeOperand(tbl, "rhs", sp)
	if err != nil {
		lhs.Release()
		return nil, err
	}
	return ast.NewLogicOp(lhs, op, rhs), nil
}

func decodeOperand(tbl map[string]any, key string, sp source.Span) (ast.Expr, error) {
	sub, ok := tbl[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a table", errBadExpr, key)
	}
	return decodeExpr(sub, sp)
}
