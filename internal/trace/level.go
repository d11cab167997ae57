package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity. Each level admits every scope up to its
// ceiling.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // crash dumps only
	LevelPhase        // driver and pass boundaries
	LevelDetail       // plus one span per fixture file
	LevelDebug        // plus scope-layer events
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

// ceiling is the finest scope a level lets through; 0 admits nothing.
var ceiling = [...]Scope{
	LevelPhase:  ScopePass,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeNode,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the level names case-insensitively.
func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass this level. Crash events
// bypass the check in the tracers themselves.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(ceiling) {
		return false
	}
	return scope != 0 && scope <= ceiling[l]
}
