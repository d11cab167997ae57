// Package driver runs the analysis pipeline over fixture files: build the
// scope tree, check expressions and calls, snapshot the tree and release it.
package driver

import (
	"context"
	"fmt"

	"stratum/internal/diag"
	"stratum/internal/dump"
	"stratum/internal/fixture"
	"stratum/internal/observ"
	"stratum/internal/sema"
	"stratum/internal/source"
	"stratum/internal/symbols"
	"stratum/internal/trace"
)

// Options configure an analysis run.
type Options struct {
	MaxDiagnostics int
	Jobs           int
	Dump           dump.Options
	// Cache is optional; nil disables caching.
	Cache *SnapshotCache
}

// CheckOutcome is the rendered result of one fixture check. Type is empty for
// erroneous expressions and Value for non-constant ones.
type CheckOutcome struct {
	Span  source.Span
	Layer string
	Type  string
	Value string
}

// FileResult holds everything produced for one fixture file.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Bag      *diag.Bag
	Snapshot *dump.Snapshot
	Checks   []CheckOutcome
	Freed    int
	Cached   bool
	Timing   *observ.Timer
}

// AnalyzeFile runs the pipeline over a file already loaded into fs. Problems
// in the fixture are reported into the result's bag; the error is reserved
// for cancellation and broken tree invariants.
func AnalyzeFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	file := fs.Get(id)
	res := &FileResult{
		Path:   file.Path,
		FileID: id,
		Bag:    diag.NewBag(opts.MaxDiagnostics),
		Timing: observ.NewTimer(),
	}

	fileSpan := trace.Begin(tracer, trace.ScopeFile, "analyze", trace.Parent(ctx)).
		WithExtra("path", file.Path)
	defer func() { fileSpan.End(fmt.Sprintf("%d diagnostics", res.Bag.Len())) }()

	var key Digest
	if opts.Cache != nil {
		key = CacheKey(file.Content, opts.Dump, opts.MaxDiagnostics)
		end := res.Timing.Track("cache")
		var payload CachePayload
		ok, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			trace.Point(tracer, trace.ScopeFile, "cache_error", err.Error())
			end("unreadable")
		case ok:
			res.restore(&payload)
			if res.Snapshot != nil {
				res.Snapshot.Path = fs.DisplayPath(id)
			}
			trace.Point(tracer, trace.ScopeFile, "cache_hit", file.Path)
			end("hit")
			return res, nil
		default:
			end("miss")
		}
	}

	reporter := diag.BagReporter{Bag: res.Bag}
	f, err := fixture.Parse(file.Path, file.Content)
	if err != nil {
		diag.ReportError(reporter, diag.FixParse, source.Span{File: id}, err.Error()).Emit()
		return res, nil
	}

	end := res.beginPass(tracer, fileSpan.ID(), "build")
	prog := fixture.Build(f, file, reporter, symbols.Options{Tracer: tracer})
	end(fmt.Sprintf("%d layers", prog.Tree.Len()))

	end = res.beginPass(tracer, fileSpan.ID(), "sema")
	res.Checks = runChecks(prog, reporter)
	end(fmt.Sprintf("%d checks, %d calls", len(prog.Checks), len(prog.Calls)))

	if err := prog.Tree.Validate(); err != nil {
		prog.Release()
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}

	end = res.beginPass(tracer, fileSpan.ID(), "dump")
	res.Snapshot = dump.Take(prog.Tree, opts.Dump)
	res.Snapshot.Path = fs.DisplayPath(id)
	res.Freed = prog.Release()
	end(fmt.Sprintf("%d layers freed", res.Freed))

	if opts.Cache != nil {
		payload := &CachePayload{
			Snapshot:    res.Snapshot,
			Diagnostics: res.Bag.Items(),
			Checks:      res.Checks,
			Freed:       res.Freed,
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache_error", err.Error())
		}
	}
	return res, nil
}

// beginPass opens a trace span and a timer phase for one pass and returns
// the function closing both.
func (res *FileResult) beginPass(tracer trace.Tracer, parent uint64, name string) func(detail string) {
	span := trace.Begin(tracer, trace.ScopePass, name, parent)
	stop := res.Timing.Track(name)
	return func(detail string) {
		span.End(detail)
		stop(detail)
	}
}

func runChecks(prog *fixture.Program, reporter diag.Reporter) []CheckOutcome {
	c := sema.NewChecker(prog.Tree, prog.Tree.Root(), reporter)
	out := make([]CheckOutcome, 0, len(prog.Checks))
	for _, chk := range prog.Checks {
		c.Enter(chk.Layer)
		r := c.Check(chk.Expr)
		o := CheckOutcome{Span: chk.Span, Layer: prog.Tree.Path(chk.Layer)}
		if r.Type != nil {
			o.Type = r.Type.String()
		}
		if r.Value != nil {
			o.Value = r.Value.String()
		}
		out = append(out, o)
	}
	for _, call := range prog.Calls {
		c.Enter(call.Layer)
		c.CallNamed(call.Method, call.Args, call.Span)
	}
	return out
}

// restore fills res from a cache entry, rebinding spans to the current file.
func (res *FileResult) restore(p *CachePayload) {
	res.Cached = true
	res.Snapshot = p.Snapshot
	res.Freed = p.Freed
	for _, d := range p.Diagnostics {
		d.Primary.File = res.FileID
		for i := range d.Notes {
			d.Notes[i].Span.File = res.FileID
		}
		res.Bag.Add(d)
	}
	for _, c := range p.Checks {
		c.Span.File = res.FileID
		res.Checks = append(res.Checks, c)
	}
}
