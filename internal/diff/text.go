package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/faneaatiku/cosmos-json/internal/formatter"
	"github.com/faneaatiku/cosmos-json/internal/models"
)

// Styles colours the text rendering. The zero value of a style renders text
// unchanged; PlainStyles skips styling entirely.
type Styles struct {
	Added   lipgloss.Style
	Removed lipgloss.Style
	Updated lipgloss.Style
	Moved   lipgloss.Style
	Context lipgloss.Style

	plain bool
}

// DefaultStyles returns the terminal colour scheme.
func DefaultStyles() Styles {
	return Styles{
		Added:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Removed: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Updated: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Moved:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Context: lipgloss.NewStyle().Faint(true),
	}
}

// PlainStyles returns styles that leave text untouched, for pipes and tests.
func PlainStyles() Styles {
	return Styles{plain: true}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}

// FormatText renders left annotated with delta, one line per node. The gutter
// shows "+" for added, "-" for removed, "~" for updated and ">" for moved
// elements; unchanged containers are collapsed onto one line.
func FormatText(left models.Value, delta *Delta, styles Styles) string {
	var lines []string
	writeTextRow(&lines, annotate(left, delta), 0, styles)
	return strings.Join(lines, "\n") + "\n"
}

func writeTextRow(lines *[]string, r *row, depth int, styles Styles) {
	indent := strings.Repeat("  ", depth)
	label := textLabel(r)
	suffix := ""
	gutter, style := "  ", styles.Context
	if r.moved {
		gutter, style = "> ", styles.Moved
		suffix = fmt.Sprintf("  (moved from %d)", r.movedFrom)
	}

	switch r.status {
	case statusNode:
		open, closing := "{", "}"
		if r.container == models.KindArray {
			open, closing = "[", "]"
		}
		*lines = append(*lines, styles.render(style, gutter+indent+label+open+suffix))
		for _, child := range r.children {
			writeTextRow(lines, child, depth+1, styles)
		}
		*lines = append(*lines, styles.render(styles.Context, "  "+indent+closing))
	case statusAdded:
		*lines = append(*lines, styles.render(styles.Added, "+ "+indent+label+formatter.Compact(r.value)))
	case statusDeleted:
		*lines = append(*lines, styles.render(styles.Removed, "- "+indent+label+formatter.Compact(r.value)))
	case statusModified:
		if r.moved {
			gutter = "~>"
		} else {
			gutter = "~ "
		}
		text := gutter + indent + label + formatter.Compact(r.oldValue) + " => " + formatter.Compact(r.newValue) + suffix
		*lines = append(*lines, styles.render(styles.Updated, text))
	default:
		*lines = append(*lines, styles.render(style, gutter+indent+label+formatter.Compact(r.value)+suffix))
	}
}

func textLabel(r *row) string {
	if !r.hasKey {
		return ""
	}
	if r.inArray {
		return "[" + r.key + "] "
	}
	return formatter.QuoteString(r.key) + ": "
}
