package fixture

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"stratum/internal/source"
)

// locator maps the nth array-of-tables entry back to its header line.
type locator struct {
	file    source.FileID
	headers map[string][]source.Span
}

func newLocator(file source.FileID, content []byte) *locator {
	loc := &locator{file: file, headers: make(map[string][]source.Span)}
	off := 0
	for line := range bytes.Lines(content) {
		if header, name, ok := tableHeader(line); ok {
			start := off + bytes.Index(line, header)
			loc.headers[name] = append(loc.headers[name], loc.span(start, start+len(header)))
		}
		off += len(line)
	}
	return loc
}

// tableHeader recognizes an array-of-tables header line, allowing a trailing
// comment after the closing brackets.
func tableHeader(line []byte) (header []byte, name string, ok bool) {
	trimmed := bytes.TrimSpace(line)
	if !bytes.HasPrefix(trimmed, []byte("[[")) {
		return nil, "", false
	}
	end := bytes.Index(trimmed, []byte("]]"))
	if end < 0 {
		return nil, "", false
	}
	if rest := bytes.TrimSpace(trimmed[end+2:]); len(rest) > 0 && rest[0] != '#' {
		return nil, "", false
	}
	return trimmed[:end+2], string(bytes.TrimSpace(trimmed[2:end])), true
}

func (l *locator) span(start, end int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("fixture offset overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("fixture offset overflow: %w", err))
	}
	return source.Span{File: l.file, Start: s, End: e}
}

// at returns the span of the i-th [[table]] header, or an empty span at the
// start of the file when the entry was written inline.
func (l *locator) at(table string, i int) source.Span {
	if spans := l.headers[table]; i < len(spans) {
		return spans[i]
	}
	return source.Span{File: l.file}
}
