package fixture

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"stratum/internal/ast"
	"stratum/internal/diag"
	"stratum/internal/source"
	"stratum/internal/symbols"
	"stratum/internal/types"
)

// Program is a fixture built into a universe and a scope tree.
type Program struct {
	File     source.FileID
	Universe *types.Universe
	Tree     *symbols.Tree
	Checks   []Check
	Calls    []Call
}

// Check is an expression to analyze from Layer. The program owns Expr.
type Check struct {
	Layer symbols.LayerID
	Expr  ast.Expr
	Span  source.Span
}

// Call is a call of the method named Method from Layer.
type Call struct {
	Layer  symbols.LayerID
	Method string
	Args   []types.Type
	Span   source.Span
}

// Release frees every expression and then the tree. It returns the number of
// layers freed.
func (p *Program) Release() int {
	for i := range p.Checks {
		if p.Checks[i].Expr != nil {
			p.Checks[i].Expr.Release()
			p.Checks[i].Expr = nil
		}
	}
	return p.Tree.Release()
}

type builder struct {
	file     *source.File
	loc      *locator
	reporter diag.Reporter
	universe *types.Universe
	tree     *symbols.Tree
}

// Build turns a decoded fixture into a program. Problems in individual
// entries are reported and the entry is skipped, so one bad line does not hide
// the rest of the layout.
func Build(f *File, file *source.File, reporter diag.Reporter, opts symbols.Options) *Program {
	b := &builder{
		file:     file,
		loc:      newLocator(file.ID, file.Content),
		reporter: reporter,
		universe: types.NewUniverse(),
		tree:     symbols.NewTree(f.Root, opts),
	}
	for i := range f.Classes {
		b.class(&f.Classes[i], b.loc.at("class", i))
	}
	for i, l := range f.Layers {
		b.layer(l, b.loc.at("layer", i))
	}
	for i, d := range f.Decls {
		b.decl(d, b.loc.at("decl", i))
	}
	p := &Program{File: file.ID, Universe: b.universe, Tree: b.tree}
	for i, c := range f.Checks {
		sp := b.loc.at("check", i)
		layer, ok := b.findLayer(c.Layer, sp)
		if !ok {
			continue
		}
		e, err := decodeExpr(c.Expr, sp)
		if err != nil {
			b.errorf(diag.FixBadExpression, sp, "check #%d: %v", i+1, err)
			continue
		}
		p.Checks = append(p.Checks, Check{Layer: layer, Expr: e, Span: sp})
	}
	for i, c := range f.Calls {
		sp := b.loc.at("call", i)
		layer, ok := b.findLayer(c.Layer, sp)
		if !ok {
			continue
		}
		args := make([]types.Type, 0, len(c.Args))
		for _, name := range c.Args {
			t, ok := b.resolve(name, sp)
			if !ok {
				break
			}
			args = append(args, t)
		}
		if len(args) != len(c.Args) {
			continue
		}
		p.Calls = append(p.Calls, Call{Layer: layer, Method: c.Method, Args: args, Span: sp})
	}
	return p
}

func (b *builder) class(c *ClassSpec, sp source.Span) {
	var base *types.ClassType
	if c.Base != "" {
		var ok bool
		if base, ok = b.universe.Class(c.Base); !ok {
			b.errorf(diag.FixUnknownType, sp, "class %s: unknown base class %q", c.Name, c.Base)
			return
		}
	}
	cls, err := b.universe.RegisterClass(c.Name, base)
	if err != nil {
		b.errorf(diag.SemDuplicate, sp, "%v", err)
		return
	}
	for _, fld := range c.Fields {
		t, ok := b.resolve(fld.Type, sp)
		if !ok {
			continue
		}
		if err := cls.AddField(fld.Name, t); err != nil {
			b.errorf(diag.SemDuplicate, sp, "%v", err)
		}
	}
	for _, m := range c.Methods {
		mt, ok := b.method(m.Ret, m.Args, sp)
		if !ok {
			continue
		}
		if err := cls.AddMethod(m.Name, mt); err != nil {
			b.errorf(diag.SemDuplicate, sp, "%v", err)
		}
	}
}

func (b *builder) method(ret string, args []ArgSpec, sp source.Span) (*types.MethodType, bool) {
	if ret == "" {
		ret = types.Void.String()
	}
	rt, ok := b.resolve(ret, sp)
	if !ok {
		return nil, false
	}
	mt := types.NewEmptyMethodType(rt)
	for _, a := range args {
		t, ok := b.resolve(a.Type, sp)
		if !ok {
			return nil, false
		}
		mt.AddArg(types.ArgEntry{
			Symbol: types.ArgSymbol{Name: a.Name, Span: sp},
			Type:   t,
		})
	}
	mt.Seal()
	return mt, true
}

func (b *builder) layer(l LayerSpec, sp source.Span) {
	dir, name := path.Split(strings.Trim(l.Path, "/"))
	if name == "" {
		b.errorf(diag.FixBadLayer, sp, "layer path %q is empty", l.Path)
		return
	}
	parent, ok := b.findLayer(dir, sp)
	if !ok {
		return
	}
	if l.Class == "" {
		b.tree.AddLayer(parent, name)
		return
	}
	cls, ok := b.universe.Class(l.Class)
	if !ok {
		b.errorf(diag.FixUnknownType, sp, "unknown class %q", l.Class)
		return
	}
	if cls.Name() != name {
		b.errorf(diag.FixBadLayer, sp, "class layer %q must be named %s", l.Path, cls.Name())
		return
	}
	b.tree.AddClassLayer(parent, cls)
}

func (b *builder) decl(d DeclSpec, sp source.Span) {
	layer, ok := b.findLayer(d.Layer, sp)
	if !ok {
		return
	}
	kind, ok := symbols.ParseSymbolKind(d.Kind)
	if !ok {
		b.errorf(diag.FixBadDecl, sp, "%s: unknown kind %q", d.Name, d.Kind)
		return
	}
	var typ types.Type
	switch kind {
	case symbols.SymbolFunction, symbols.SymbolMethod:
		mt, ok := b.method(d.Ret, d.Args, sp)
		if !ok {
			return
		}
		typ = mt
	default:
		if typ, ok = b.resolve(d.Type, sp); !ok {
			return
		}
	}
	if _, err := b.tree.Declare(layer, d.Name, kind, typ); err != nil {
		switch {
		case errors.Is(err, symbols.ErrDuplicate):
			b.errorf(diag.SemDuplicate, sp, "%v", err)
		case errors.Is(err, symbols.ErrMemberMismatch):
			b.errorf(diag.SemMemberShape, sp, "%v", err)
		default:
			b.errorf(diag.FixBadDecl, sp, "%v", err)
		}
	}
}

// findLayer resolves a slash-separated layer path; the empty path is the root.
func (b *builder) findLayer(p string, sp source.Span) (symbols.LayerID, bool) {
	id, ok := b.tree.FindPath(p)
	if !ok {
		b.errorf(diag.FixBadLayer, sp, "no layer at path %q", p)
	}
	return id, ok
}

func (b *builder) resolve(name string, sp source.Span) (types.Type, bool) {
	t, err := b.universe.Resolve(name)
	if err != nil {
		b.errorf(diag.FixUnknownType, sp, "%v", err)
		return nil, false
	}
	return t, true
}

func (b *builder) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportError(b.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}
