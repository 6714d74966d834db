package formatter

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/faneaatiku/cosmos-json/internal/models"
)

// Formatter writes models.Value trees back out as JSON text, keeping object
// members in the order they are stored.
type Formatter struct {
	// Indent is repeated once per nesting level. Empty means compact output.
	Indent string
}

// NewFormatter creates a Formatter that indents with two spaces.
func NewFormatter() *Formatter {
	return &Formatter{Indent: "  "}
}

// NewCompactFormatter creates a Formatter that writes everything on one line.
func NewCompactFormatter() *Formatter {
	return &Formatter{}
}

// Format renders v. A nil value renders as null.
func (f *Formatter) Format(v models.Value) string {
	var sb strings.Builder
	f.writeValue(&sb, v, 0)
	return sb.String()
}

// Compact renders v on a single line.
func Compact(v models.Value) string {
	return NewCompactFormatter().Format(v)
}

func (f *Formatter) writeValue(sb *strings.Builder, v models.Value, level int) {
	switch t := v.(type) {
	case models.Bool:
		if t {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case models.Number:
		sb.WriteString(string(t))
	case models.String:
		sb.WriteString(QuoteString(string(t)))
	case models.Array:
		f.writeArray(sb, t, level)
	case *models.Object:
		f.writeObject(sb, t, level)
	default:
		sb.WriteString("null")
	}
}

func (f *Formatter) writeArray(sb *strings.Builder, arr models.Array, level int) {
	if len(arr) == 0 {
		sb.WriteString("[]")
		return
	}
	sb.WriteByte('[')
	for i, item := range arr {
		if i > 0 {
			sb.WriteByte(',')
		}
		f.newline(sb, level+1)
		f.writeValue(sb, item, level+1)
	}
	f.newline(sb, level)
	sb.WriteByte(']')
}

func (f *Formatter) writeObject(sb *strings.Builder, obj *models.Object, level int) {
	if obj.Len() == 0 {
		sb.WriteString("{}")
		return
	}
	sb.WriteByte('{')
	for i, m := range obj.Members {
		if i > 0 {
			sb.WriteByte(',')
		}
		f.newline(sb, level+1)
		sb.WriteString(QuoteString(m.Key))
		sb.WriteByte(':')
		if f.Indent != "" {
			sb.WriteByte(' ')
		}
		f.writeValue(sb, m.Value, level+1)
	}
	f.newline(sb, level)
	sb.WriteByte('}')
}

func (f *Formatter) newline(sb *strings.Builder, level int) {
	if f.Indent == "" {
		return
	}
	sb.WriteByte('\n')
	for i := 0; i < level; i++ {
		sb.WriteString(f.Indent)
	}
}

// QuoteString returns s as a JSON string literal. HTML characters are left
// alone; callers that embed output in HTML escape it themselves.
func QuoteString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// Encoding a Go string cannot fail; keep a usable fallback anyway.
		return `"` + s + `"`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
