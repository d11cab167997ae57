package dump

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Format names an output encoding.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("unknown dump format %q (want text, json or msgpack)", s)
}

// Write encodes snap in format f.
func Write(w io.Writer, snap *Snapshot, f Format, style TextStyle) error {
	switch f {
	case FormatText:
		return WriteText(w, snap, style)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode json dump: %w", err)
		}
		return nil
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(snap); err != nil {
			return fmt.Errorf("encode msgpack dump: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown dump format %q", f)
}

// ReadMsgpack decodes a snapshot written with FormatMsgpack.
func ReadMsgpack(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode msgpack dump: %w", err)
	}
	return &snap, nil
}
