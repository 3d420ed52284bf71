// Package diff renders line diffs for dry-run previews.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
)

// Tag classifies a diff line.
type Tag int

const (
	Equal Tag = iota
	Delete
	Insert
)

// Sign returns the prefix printed before a line with this tag.
func (t Tag) Sign() string {
	switch t {
	case Delete:
		return "-"
	case Insert:
		return "+"
	default:
		return " "
	}
}

// NoNewlineMarker follows a line that has no terminator at end of file.
const NoNewlineMarker = `\ No newline at end of file`

// Line is one line of a diff, without its line terminator.
type Line struct {
	Tag       Tag
	Text      string
	NoNewline bool // Last line of its file, with no "\n"
}

func (l Line) String() string {
	return l.Tag.Sign() + l.Text
}

// Lines computes a line diff from original to rewritten. Lines are compared
// with their terminators, so "x" and "x\n" differ. A replaced block is
// reported as all of its deletions followed by all of its insertions.
func Lines(original, rewritten string) []Line {
	a := splitLines(original)
	b := splitLines(rewritten)

	m := difflib.NewMatcherWithJunk(a, b, false, nil)

	var out []Line
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			out = appendTagged(out, Equal, a[op.I1:op.I2])
		case 'd':
			out = appendTagged(out, Delete, a[op.I1:op.I2])
		case 'i':
			out = appendTagged(out, Insert, b[op.J1:op.J2])
		case 'r':
			out = appendTagged(out, Delete, a[op.I1:op.I2])
			out = appendTagged(out, Insert, b[op.J1:op.J2])
		}
	}
	return out
}

// Stats counts inserted and deleted lines.
func Stats(lines []Line) (inserted, deleted int) {
	for _, l := range lines {
		switch l.Tag {
		case Insert:
			inserted++
		case Delete:
			deleted++
		}
	}
	return inserted, deleted
}

// Render writes one prefixed line per diff line. When r is nil the output is
// plain text; otherwise deletions and insertions are coloured by r.
func Render(w io.Writer, lines []Line, r *lipgloss.Renderer) error {
	styles := NewStyles(r)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, styles.Render(l)); err != nil {
			return err
		}
		if l.NoNewline {
			if _, err := fmt.Fprintln(w, NoNewlineMarker); err != nil {
				return err
			}
		}
	}
	return nil
}

// Styles colours diff lines.
type Styles struct {
	Delete lipgloss.Style
	Insert lipgloss.Style
	Equal  lipgloss.Style
	plain  bool
}

// NewStyles returns the diff styles for r. A nil r renders plain text.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		return Styles{plain: true}
	}
	return Styles{
		Delete: r.NewStyle().TabWidth(lipgloss.NoTabConversion).Foreground(lipgloss.Color("203")), // Red
		Insert: r.NewStyle().TabWidth(lipgloss.NoTabConversion).Foreground(lipgloss.Color("114")), // Green
		Equal:  r.NewStyle().TabWidth(lipgloss.NoTabConversion).Foreground(lipgloss.Color("245")), // Grey
	}
}

// Render returns l with its sign, styled by tag.
func (s Styles) Render(l Line) string {
	text := l.String()
	if s.plain {
		return text
	}
	switch l.Tag {
	case Delete:
		return s.Delete.Render(text)
	case Insert:
		return s.Insert.Render(text)
	default:
		return s.Equal.Render(text)
	}
}

// String renders lines into a single string, one line each.
func String(lines []Line, s Styles) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(s.Render(l))
		sb.WriteString("\n")
		if l.NoNewline {
			sb.WriteString(NoNewlineMarker + "\n")
		}
	}
	return sb.String()
}

// splitLines keeps each line's "\n"; only the last line may lack it.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func appendTagged(out []Line, tag Tag, raw []string) []Line {
	for _, r := range raw {
		text, terminated := strings.CutSuffix(r, "\n")
		out = append(out, Line{Tag: tag, Text: text, NoNewline: !terminated})
	}
	return out
}
