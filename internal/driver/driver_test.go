package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"stratum/internal/diag"
	"stratum/internal/dump"
	"stratum/internal/fixture"
	"stratum/internal/observ"
	"stratum/internal/source"
	"stratum/internal/symbols"
	"stratum/internal/testkit"
	"stratum/internal/trace"
)

const shapesFixture = `root = "global"

[[class]]
name = "Shape"
field = [{ name = "visible", type = "bool" }]

[[class.method]]
name = "scale"
ret = "void"
args = [{ name = "by", type = "int" }]

[[layer]]
path = "Shape"
class = "Shape"

[[layer]]
path = "Shape/scale"

[[decl]]
layer = "Shape/scale"
name = "by"
kind = "param"
type = "int"

[[check]]
layer = "Shape/scale"
expr = { op = "and", lhs = { ident = "visible" }, rhs = { ident = "by" } }

[[check]]
expr = { op = "or", lhs = { bool = false }, rhs = { int = 3 } }

[[call]]
layer = "Shape/scale"
method = "scale"
args = ["int"]
`

const brokenFixture = `[[decl]]
name = "label"
kind = "var"
type = "string"

[[check]]
expr = { op = "and", lhs = { ident = "label" }, rhs = { ident = "missing" } }

[[call]]
method = "label"
args = []
`

func writeFixtures(t *testing.T) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"shapes.toml":  shapesFixture,
		"broken.toml":  brokenFixture,
		"stratum.toml": "[dump]\nformat = \"text\"\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	paths, err := ListFixtures(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, paths
}

func TestListFixtures(t *testing.T) {
	dir, paths := writeFixtures(t)
	want := []string{filepath.Join(dir, "broken.toml"), filepath.Join(dir, "shapes.toml")}
	if !slices.Equal(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
}

func TestAnalyzeFiles(t *testing.T) {
	dir, paths := writeFixtures(t)
	paths = append(paths, filepath.Join(dir, "absent.toml"))

	fs, results, err := AnalyzeFiles(context.Background(), paths, dir, Options{MaxDiagnostics: 20, Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("want 3 results, got %d", len(results))
	}

	broken, shapes, absent := results[0], results[1], results[2]
	if shapes.Bag.Len() != 0 {
		t.Fatalf("shapes: unexpected diagnostics:\n%s", diag.FormatShort(shapes.Bag.Items(), fs, true))
	}
	wantChecks := []CheckOutcome{
		{Layer: "Shape/scale", Type: "bool"},
		{Layer: "", Type: "bool", Value: "true"},
	}
	if diff := cmp.Diff(wantChecks, shapes.Checks, cmpopts.IgnoreFields(CheckOutcome{}, "Span")); diff != "" {
		t.Fatalf("checks mismatch (-want +got):\n%s", diff)
	}
	if shapes.Freed != 3 || len(shapes.Snapshot.Layers) != 3 {
		t.Fatalf("freed=%d layers=%d", shapes.Freed, len(shapes.Snapshot.Layers))
	}
	if shapes.Snapshot.Path != "shapes.toml" {
		t.Fatalf("snapshot path = %q", shapes.Snapshot.Path)
	}

	var got []diag.Code
	for _, d := range broken.Bag.Items() {
		got = append(got, d.Code)
	}
	want := []diag.Code{diag.SemUndeclared, diag.SemLogicOperand, diag.SemNotCallable}
	if !slices.Equal(got, want) {
		t.Fatalf("broken codes = %v, want %v", got, want)
	}

	if !absent.Bag.HasErrors() || absent.Bag.Items()[0].Code != diag.IOLoadFileError {
		t.Fatalf("missing file not reported: %+v", absent.Bag.Items())
	}
}

func TestAnalyzeFilesTraces(t *testing.T) {
	dir, paths := writeFixtures(t)
	ring := trace.NewRingTracer(256, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, _, err := AnalyzeFiles(ctx, paths, dir, Options{Jobs: 1}); err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]int)
	var root uint64
	parents := make(map[uint64]bool)
	for _, ev := range ring.Snapshot() {
		if ev.Kind != trace.KindSpanEnd {
			continue
		}
		seen[ev.Name]++
		switch ev.Name {
		case "analyze_files":
			root = ev.SpanID
		case "analyze":
			parents[ev.ParentID] = true
		}
	}
	if len(parents) != 1 || !parents[root] {
		t.Fatalf("file spans must hang under analyze_files %d: %v", root, parents)
	}
	for _, name := range []string{"analyze_files", "load", "build", "sema", "dump", "analyze"} {
		if seen[name] == 0 {
			t.Fatalf("no %q span in trace: %v", name, seen)
		}
	}
	if seen["analyze"] != 2 {
		t.Fatalf("want one analyze span per file, got %d", seen["analyze"])
	}
}

func TestSnapshotCache(t *testing.T) {
	dir, paths := writeFixtures(t)
	cache, err := NewSnapshotCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{MaxDiagnostics: 20, Dump: dump.Options{TrailingComma: true}, Cache: cache}

	_, first, err := AnalyzeFiles(context.Background(), paths, dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := AnalyzeFiles(context.Background(), paths, dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i].Cached || !second[i].Cached {
			t.Fatalf("%s: cached first=%v second=%v", first[i].Path, first[i].Cached, second[i].Cached)
		}
		if diff := cmp.Diff(first[i].Snapshot, second[i].Snapshot, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("%s: snapshot mismatch (-fresh +cached):\n%s", first[i].Path, diff)
		}
		if diff := cmp.Diff(first[i].Bag.Items(), second[i].Bag.Items(), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("%s: diagnostics mismatch (-fresh +cached):\n%s", first[i].Path, diff)
		}
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	_, third, err := AnalyzeFiles(context.Background(), paths, dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third[0].Cached {
		t.Fatalf("cache hit after DropAll")
	}
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	content := []byte(shapesFixture)
	a := CacheKey(content, dump.Options{}, 10)
	if a != CacheKey(content, dump.Options{}, 10) {
		t.Fatalf("key is not stable")
	}
	if a == CacheKey(content, dump.Options{TrailingComma: true}, 10) || a == CacheKey(content, dump.Options{}, 11) {
		t.Fatalf("key ignores options")
	}
}

func TestTimingsCoverEveryPass(t *testing.T) {
	dir, paths := writeFixtures(t)
	_, results, err := AnalyzeFiles(context.Background(), paths, dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	timers := make([]*observ.Timer, 0, len(results))
	for _, res := range results {
		timers = append(timers, res.Timing)
	}
	report := observ.Merge(timers...)
	var names []string
	for _, p := range report.Phases {
		names = append(names, p.Name)
		if p.Count != len(results) {
			t.Fatalf("%s ran %d times, want %d", p.Name, p.Count, len(results))
		}
	}
	if !slices.Equal(names, []string{"build", "sema", "dump"}) {
		t.Fatalf("phases = %v", names)
	}
}

func TestFixtureSpanInvariants(t *testing.T) {
	_, paths := writeFixtures(t)
	fs := source.NewFileSet()
	for _, path := range paths {
		p, err := fixture.Load(fs, path, diag.BagReporter{Bag: diag.NewBag(10)}, symbols.Options{})
		if err != nil {
			t.Fatal(err)
		}
		if err := testkit.CheckSpanInvariants(p, fs.Get(p.File)); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		p.Release()
	}
}
