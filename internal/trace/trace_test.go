package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if lvl.String() != s {
			t.Fatalf("round trip %q -> %q", s, lvl)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeNode) {
		t.Fatalf("phase level must drop node events")
	}
	if !LevelDebug.ShouldEmit(ScopeNode) {
		t.Fatalf("debug level emits node events")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) {
		t.Fatalf("detail level emits file events")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	span := Begin(tr, ScopePass, "sema", 0)
	Point(tr, ScopeNode, "layer", "block")
	span.WithExtra("layers", "3").End("ok")

	out := buf.String()
	for _, want := range []string{"→ sema", "• layer (block)", "← sema (ok) {layers=3}"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Point(tr, ScopeDriver, "start", "")
	Point(tr, ScopeNode, "dropped", "")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 event, got %d: %q", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if ev["name"] != "start" || ev["kind"] != "point" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(tr, ScopeDriver, name, "")
	}
	got := tr.Snapshot()
	if len(got) != 2 || got[0].Name != "b" || got[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", got)
	}
}

func TestContextFallsBackToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop tracer")
	}
	tr := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatalf("tracer not propagated")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("expected Nop, got %v %v", tr, err)
	}
	if Begin(tr, ScopePass, "x", 0).End("") != 0 {
		t.Fatalf("disabled spans have zero duration")
	}
}

func TestFindRing(t *testing.T) {
	ring := NewRingTracer(4, LevelDebug)
	multi := NewMultiTracer(LevelDebug, NewStreamTracer(&bytes.Buffer{}, LevelDebug, FormatText), ring)
	if FindRing(multi) != ring || FindRing(ring) != ring {
		t.Fatalf("ring not found")
	}
	if FindRing(Nop) != nil {
		t.Fatalf("nop has no ring")
	}
}

func TestBeginContextNestsSpans(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), ring)
	outer, ctx := BeginContext(ctx, ScopeDriver, "outer")
	if Parent(ctx) != outer.ID() || outer.ID() == 0 {
		t.Fatalf("parent = %d, want %d", Parent(ctx), outer.ID())
	}
	inner, innerCtx := BeginContext(ctx, ScopeFile, "inner")
	inner.End("")
	outer.End("")

	hidden, sameCtx := BeginContext(innerCtx, ScopeNode, "node")
	if hidden.ID() != 0 || Parent(sameCtx) != inner.ID() {
		t.Fatalf("filtered span must keep the parent")
	}
	if FromContext(sameCtx) != Tracer(ring) {
		t.Fatalf("tracer lost while nesting")
	}

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("want 4 events, got %+v", events)
	}
	if events[1].Name != "inner" || events[1].ParentID != outer.ID() {
		t.Fatalf("inner span parent = %d, want %d", events[1].ParentID, outer.ID())
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"stream", "RING", "Both"} {
		m, err := ParseMode(s)
		if err != nil || !strings.EqualFold(m.String(), s) {
			t.Fatalf("ParseMode(%q) = %v, %v", s, m, err)
		}
	}
	if _, err := ParseMode(""); err == nil {
		t.Fatalf("empty mode accepted")
	}
}

func TestNewBuildsSinksPerMode(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if FindRing(tr) == nil {
		t.Fatalf("both mode has a ring")
	}
	Point(tr, ScopeDriver, "hello", "")
	if !strings.Contains(buf.String(), "• hello") || len(FindRing(tr).Snapshot()) != 1 {
		t.Fatalf("event not fanned out: %q", buf.String())
	}
	if tr, _ := New(Config{Level: LevelPhase, Mode: ModeRing}); FindRing(tr) != tr.(*RingTracer) {
		t.Fatalf("ring mode yields the ring itself")
	}
	if _, err := New(Config{Level: LevelPhase}); err == nil {
		t.Fatalf("missing mode accepted")
	}
}
