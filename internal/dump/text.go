package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

const indentUnit = "  "

// TextStyle selects colors for the text renderer.
type TextStyle struct {
	layer *color.Color
	class *color.Color
	kind  *color.Color
	value *color.Color
}

// NewTextStyle returns a style that colors output only when enabled is true.
func NewTextStyle(enabled bool) TextStyle {
	s := TextStyle{
		layer: color.New(color.Bold),
		class: color.New(color.FgCyan, color.Bold),
		kind:  color.New(color.FgYellow),
		value: color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{s.layer, s.class, s.kind, s.value} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// WriteText renders snap as an indented tree. Symbol columns are aligned per
// layer by display width.
func WriteText(w io.Writer, snap *Snapshot, style TextStyle) error {
	if style.layer == nil {
		style = NewTextStyle(false)
	}
	var b strings.Builder
	for _, l := range snap.Layers {
		indent := strings.Repeat(indentUnit, l.Depth)
		b.WriteString(indent)
		if l.Class != "" {
			b.WriteString(style.class.Sprint(l.Name))
			if l.Base != "" {
				b.WriteString(" : " + l.Base)
			}
			b.WriteString(" [class]")
		} else {
			b.WriteString(style.layer.Sprint(l.Name))
		}
		b.WriteByte('\n')

		nameW, kindW := 0, 0
		for _, s := range l.Symbols {
			nameW = max(nameW, runewidth.StringWidth(s.Name))
			kindW = max(kindW, runewidth.StringWidth(s.Kind))
		}
		for _, s := range l.Symbols {
			b.WriteString(indent + indentUnit)
			b.WriteString(padRight(s.Name, nameW) + " ")
			b.WriteString(style.kind.Sprint(padRight(s.Kind, kindW)) + " ")
			b.WriteString(s.Type)
			if s.Value != "" {
				b.WriteString(" = " + style.value.Sprint(s.Value))
				b.WriteString(" (" + s.Storage + ")")
			}
			b.WriteByte('\n')
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write text dump: %w", err)
	}
	return nil
}

func padRight(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
