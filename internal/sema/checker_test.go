package sema

import (
	"slices"
	"testing"

	"stratum/internal/ast"
	"stratum/internal/diag"
	"stratum/internal/ir"
	"stratum/internal/source"
	"stratum/internal/symbols"
	"stratum/internal/types"
)

type fixture struct {
	tree  *symbols.Tree
	body  symbols.LayerID
	block symbols.LayerID
	bag   *diag.Bag
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	u := types.NewUniverse()
	base, _ := u.RegisterClass("Base", nil)
	if err := base.AddField("ready", types.Bool); err != nil {
		t.Fatal(err)
	}
	cls, _ := u.RegisterClass("Job", base)

	tree := symbols.NewTree("root", symbols.Options{})
	mustDeclare(t, tree, tree.Root(), "flag", symbols.SymbolVar, types.Bool)
	mustDeclare(t, tree, tree.Root(), "name", symbols.SymbolVar, types.String)
	body := tree.AddClassLayer(tree.Root(), cls)
	mustDeclare(t, tree, body, "run", symbols.SymbolMethod, types.NewMethodType(nil, types.Void))
	block := tree.AddLayer(body, "run")
	mustDeclare(t, tree, block, "n", symbols.SymbolParam, types.Int)
	return &fixture{tree: tree, body: body, block: block, bag: diag.NewBag(20)}
}

func mustDeclare(t *testing.T, tree *symbols.Tree, layer symbols.LayerID, name string, kind symbols.SymbolKind, typ types.Type) {
	t.Helper()
	if _, err := tree.Declare(layer, name, kind, typ); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) checker() *Checker {
	return NewChecker(f.tree, f.block, diag.BagReporter{Bag: f.bag})
}

func TestLogicOpOverResolvedNames(t *testing.T) {
	f := newFixture(t)
	e := ast.NewLogicOp(&ast.IdentExpr{Name: "flag"}, ast.LogicAnd,
		ast.NewLogicOp(&ast.IdentExpr{Name: "n"}, ast.LogicOr, &ast.IdentExpr{Name: "ready"}))
	res := f.checker().Check(e)
	if f.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", f.bag.Items())
	}
	if res.Type != types.Bool || res.Value != nil {
		t.Fatalf("want non-constant bool, got %+v", res)
	}
}

func TestLogicOpFoldsConstants(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		expr ast.Expr
		want bool
	}{
		{ast.NewLogicOp(&ast.BoolLitExpr{Value: true}, ast.LogicAnd, &ast.IntLitExpr{Value: 0}), false},
		{ast.NewLogicOp(&ast.IntLitExpr{Value: -2}, ast.LogicAnd, &ast.BoolLitExpr{Value: true}), true},
		{ast.NewLogicOp(&ast.BoolLitExpr{Value: false}, ast.LogicOr, &ast.IntLitExpr{Value: 0}), false},
	}
	for i, tc := range cases {
		res := f.checker().Check(tc.expr)
		if res.Value == nil || !res.Value.Equal(ir.BoolOf(tc.want)) {
			t.Fatalf("case %d: want %v, got %+v", i, tc.want, res)
		}
	}
}

func TestLiteralResults(t *testing.T) {
	f := newFixture(t)
	res := f.checker().Check(&ast.IntLitExpr{Value: -7})
	if res.Type != types.Int || res.Value.String() != "-7" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestDiagnostics(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Expr
		code diag.Code
	}{
		{"undeclared", &ast.IdentExpr{Name: "ghost"}, diag.SemUndeclared},
		{"string operand", ast.NewLogicOp(&ast.IdentExpr{Name: "name"}, ast.LogicOr, &ast.BoolLitExpr{}), diag.SemLogicOperand},
		{"method as value", &ast.IdentExpr{Name: "run"}, diag.SemNotValue},
		{"missing operand", &ast.LogicOpExpr{Op: ast.LogicAnd, LHS: &ast.BoolLitExpr{}}, diag.SemLogicOperand},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			res := f.checker().Check(tc.expr)
			if res.Type != nil {
				t.Fatalf("erroneous expression must have no type, got %v", res.Type)
			}
			if f.bag.Len() != 1 || f.bag.Items()[0].Code != tc.code {
				t.Fatalf("want one %s, got %+v", tc.code.ID(), f.bag.Items())
			}
		})
	}
}

func TestErrorsDoNotCascade(t *testing.T) {
	f := newFixture(t)
	e := ast.NewLogicOp(&ast.IdentExpr{Name: "ghost"}, ast.LogicAnd, &ast.BoolLitExpr{Value: true})
	f.checker().Check(e)
	if f.bag.Len() != 1 {
		t.Fatalf("undeclared operand must be reported once, got %d", f.bag.Len())
	}
}

func TestCheckCall(t *testing.T) {
	f := newFixture(t)
	c := f.checker()
	m := types.NewMethodType([]types.ArgEntry{types.Arg("a", types.Int), types.Arg("b", types.Bool)}, types.Int)

	if !c.CheckCall(m, []types.Type{types.Int, types.Bool}, source.Span{}) {
		t.Fatalf("matching call rejected: %+v", f.bag.Items())
	}
	if c.CheckCall(m, []types.Type{types.Int}, source.Span{}) {
		t.Fatalf("short call accepted")
	}
	if c.CheckCall(m, []types.Type{types.Bool, types.Bool}, source.Span{}) {
		t.Fatalf("mistyped call accepted")
	}
	items := f.bag.Items()
	if len(items) != 2 || items[0].Code != diag.SemArity || items[1].Code != diag.SemArgType {
		t.Fatalf("unexpected diagnostics: %+v", items)
	}
	if want := "argument 1 (a): want int, got bool"; items[1].Message != want {
		t.Fatalf("message = %q, want %q", items[1].Message, want)
	}
}

func TestCallNamed(t *testing.T) {
	f := newFixture(t)
	c := f.checker()
	if !c.CallNamed("run", nil, source.Span{}) {
		t.Fatalf("call of run rejected: %+v", f.bag.Items())
	}
	c.CallNamed("ready", nil, source.Span{})
	c.CallNamed("flag", nil, source.Span{})
	c.CallNamed("ghost", nil, source.Span{})
	var got []diag.Code
	for _, d := range f.bag.Items() {
		got = append(got, d.Code)
	}
	want := []diag.Code{diag.SemNotCallable, diag.SemNotCallable, diag.SemUndeclared}
	if !slices.Equal(got, want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
}

func TestInheritedMemberHidesGlobal(t *testing.T) {
	u := types.NewUniverse()
	shape, _ := u.RegisterClass("Shape", nil)
	if err := shape.AddField("sides", types.Int); err != nil {
		t.Fatal(err)
	}
	grow := types.NewMethodType([]types.ArgEntry{{Symbol: types.ArgSymbol{Name: "by"}, Type: types.Int}}, types.Void)
	if err := shape.AddMethod("grow", grow); err != nil {
		t.Fatal(err)
	}
	square, _ := u.RegisterClass("Square", shape)

	tree := symbols.NewTree("root", symbols.Options{})
	mustDeclare(t, tree, tree.Root(), "sides", symbols.SymbolVar, types.Bool)
	mustDeclare(t, tree, tree.Root(), "grow", symbols.SymbolVar, types.Bool)
	body := tree.AddClassLayer(tree.Root(), square)
	area := tree.AddLayer(body, "area")

	bag := diag.NewBag(10)
	c := NewChecker(tree, area, diag.BagReporter{Bag: bag})
	if res := c.Check(&ast.IdentExpr{Name: "sides"}); res.Type != types.Int {
		t.Fatalf("sides resolved to %v, want inherited int", res.Type)
	}
	if !c.CallNamed("grow", []types.Type{types.Int}, source.Span{}) {
		t.Fatalf("inherited grow not callable: %+v", bag.Items())
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	c.Enter(tree.Root())
	if res := c.Check(&ast.IdentExpr{Name: "sides"}); res.Type != types.Bool {
		t.Fatalf("sides at root = %v, want bool", res.Type)
	}
}
