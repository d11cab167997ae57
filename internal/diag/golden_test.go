package diag

import (
	"testing"

	"stratum/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	file := fs.Add("/workspace/testdata/sample.toml", []byte("a\nb\n"))

	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	ReportWarning(r, SemArgType, source.Span{File: file, Start: 2, End: 3}, "another").Emit()
	ReportError(r, SemUndeclared, source.Span{File: file, Start: 0, End: 1}, "first line\nsecond").
		WithNote(source.Span{File: file, Start: 2, End: 3}, "note line").
		Emit()

	expected := "error SEM3001 testdata/sample.toml:1:1 first line second\n" +
		"note SEM3001 testdata/sample.toml:2:1 note line\n" +
		"warning SEM3005 testdata/sample.toml:2:1 another"

	if got := FormatShort(bag.Items(), fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("bag must report both severities")
	}
}

func TestBagLimitAndEmitOnce(t *testing.T) {
	bag := NewBag(1)
	b := ReportError(BagReporter{Bag: bag}, SemArity, source.Span{}, "x")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("builder must emit once, got %d", bag.Len())
	}
	if bag.Add(Diagnostic{}) {
		t.Fatalf("bag over its limit must drop diagnostics")
	}
	other := NewBag(5)
	other.Add(Diagnostic{Code: SemDuplicate})
	bag.Merge(other)
	if bag.Len() != 2 || bag.Cap() != 2 {
		t.Fatalf("merge must grow limit: len=%d cap=%d", bag.Len(), bag.Cap())
	}
}

func TestCodeIDs(t *testing.T) {
	if SemUndeclared.ID() != "SEM3001" || FixBadLayer.ID() != "FIX4001" || UnknownCode.ID() != "E0000" {
		t.Fatalf("unexpected ids %s %s %s", SemUndeclared.ID(), FixBadLayer.ID(), UnknownCode.ID())
	}
	if Code(3999).Title() != "Unknown error" {
		t.Fatalf("unknown code title")
	}
}
