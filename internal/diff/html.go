package diff

import (
	"fmt"
	"html"
	"strings"

	"github.com/faneaatiku/cosmos-json/internal/formatter"
	"github.com/faneaatiku/cosmos-json/internal/models"
)

const htmlClassPrefix = "jsondiffpatch-"

// FormatHTML renders left annotated with delta as an HTML fragment. Class
// names follow the jsondiffpatch HTML formatter (jsondiffpatch-added,
// -deleted, -modified, -moved, -unchanged, -node) so existing stylesheets
// apply. A nil delta renders an "unchanged" block holding left.
func FormatHTML(left models.Value, delta *Delta) string {
	var sb strings.Builder
	root := annotate(left, delta)

	sb.WriteString(`<div class="` + htmlClassPrefix + `delta"><ul class="` + htmlClassPrefix + `root">`)
	writeHTMLRow(&sb, root)
	sb.WriteString(`</ul></div>`)
	return sb.String()
}

func writeHTMLRow(sb *strings.Builder, r *row) {
	classes := []string{htmlClassPrefix + htmlStatusClass(r.status)}
	if r.moved {
		classes = append(classes, htmlClassPrefix+"moved")
	}

	sb.WriteString(`<li class="` + strings.Join(classes, " ") + `"`)
	if r.hasKey {
		sb.WriteString(` data-key="` + html.EscapeString(r.key) + `"`)
	}
	sb.WriteString(`>`)

	if r.hasKey {
		sb.WriteString(`<div class="` + htmlClassPrefix + `property-name">` + html.EscapeString(r.key) + `</div>`)
	}

	switch r.status {
	case statusNode:
		kind := "object"
		if r.container == models.KindArray {
			kind = "array"
		}
		fmt.Fprintf(sb, `<ul class="%snode %snode-type-%s">`, htmlClassPrefix, htmlClassPrefix, kind)
		for _, child := range r.children {
			writeHTMLRow(sb, child)
		}
		sb.WriteString(`</ul>`)
	case statusModified:
		writeHTMLValue(sb, "left-value", r.oldValue)
		writeHTMLValue(sb, "right-value", r.newValue)
	default:
		writeHTMLValue(sb, "", r.value)
	}

	if r.moved {
		fmt.Fprintf(sb, `<div class="%smoved-destination">%d</div>`, htmlClassPrefix, r.movedTo)
	}
	sb.WriteString(`</li>`)
}

func writeHTMLValue(sb *strings.Builder, side string, v models.Value) {
	class := htmlClassPrefix + "value"
	if side != "" {
		class += " " + htmlClassPrefix + side
	}
	sb.WriteString(`<div class="` + class + `"><pre>`)
	sb.WriteString(html.EscapeString(formatter.NewFormatter().Format(v)))
	sb.WriteString(`</pre></div>`)
}

func htmlStatusClass(s status) string {
	switch s {
	case statusAdded:
		return "added"
	case statusDeleted:
		return "deleted"
	case statusModified:
		return "modified"
	case statusNode:
		return "node"
	default:
		return "unchanged"
	}
}
