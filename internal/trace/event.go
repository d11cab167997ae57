package trace

import "time"

// Kind is what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindCrash // written by the panic handler before the ring is dumped
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindCrash:     "crash",
}

// kindMarks prefix the event name in text output.
var kindMarks = [...]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
	KindCrash:     "! ",
}

func (k Kind) String() string { return lookupName(kindNames[:], int(k)) }

// Scope is the granularity of an event; smaller values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // a whole scopes/check run
	ScopePass                    // load, build, sema, dump
	ScopeFile                    // one fixture file
	ScopeNode                    // layers created and released in a tree
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeNode:   "node",
}

func (s Scope) String() string { return lookupName(scopeNames[:], int(s)) }

func lookupName(names []string, i int) string {
	if i > 0 && i < len(names) {
		return names[i]
	}
	return "unknown"
}

// Event is one trace record. SpanID and ParentID are zero for point events
// outside any span.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned on emit when zero
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string // "analyze", "sema", "layer", ...
	Detail   string
	Extra    map[string]string
}
