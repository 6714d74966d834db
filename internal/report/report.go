// Package report renders analysis results, parsed coins and diff changes for
// people (go-pretty tables) and for tools (JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/faneaatiku/cosmos-json/internal/diff"
	"github.com/faneaatiku/cosmos-json/internal/formatter"
	"github.com/faneaatiku/cosmos-json/internal/models"
)

// maxCellWidth truncates long JSON values in table cells.
const maxCellWidth = 60

// Reporter writes reports to an io.Writer.
type Reporter struct {
	Style table.Style
}

// NewReporter creates a Reporter using the light box-drawing table style.
func NewReporter() *Reporter {
	return &Reporter{Style: table.StyleLight}
}

func (r *Reporter) newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(r.Style)
	return t
}

// AnalysisTable lists every marker with its line, minimap position, type and
// path, followed by a one-line summary.
func (r *Reporter) AnalysisTable(w io.Writer, result models.AnalysisResult) error {
	if len(result.Markers) == 0 {
		_, err := fmt.Fprintf(w, "No coins or labels found (%d lines, max depth %d)\n", result.TotalLines, result.MaxDepth)
		return err
	}

	t := r.newTable(w)
	t.AppendHeader(table.Row{"#", "Line", "Position", "Type", "Path"})
	for i, m := range result.Markers {
		t.AppendRow(table.Row{i + 1, markerLine(m, result.TotalLines), fmt.Sprintf("%.1f%%", m.Fraction*100), string(m.Type), string(m.Path)})
	}
	t.Render()

	_, err := fmt.Fprintf(w, "%d markers, %d interesting paths, %d ancestors, %d lines, max depth %d\n",
		len(result.Markers), len(result.InterestingPaths), len(result.AncestorPaths), result.TotalLines, result.MaxDepth)
	return err
}

// CoinRow is one input of the coin command and the coins found in it.
type CoinRow struct {
	Input string
	Coins []models.ParsedCoin
}

// CoinTable prints the coins found in each input. Inputs without coins get a
// single row saying so.
func (r *Reporter) CoinTable(w io.Writer, rows []CoinRow) error {
	t := r.newTable(w)
	t.AppendHeader(table.Row{"Input", "Amount", "Denom", "Display"})
	for _, row := range rows {
		input := truncate(row.Input)
		if len(row.Coins) == 0 {
			t.AppendRow(table.Row{input, "-", "-", "not a coin"})
			continue
		}
		for _, c := range row.Coins {
			t.AppendRow(table.Row{input, c.Amount, c.Denom, c.String()})
		}
	}
	t.Render()
	return nil
}

// ChangesTable lists diff changes and a summary line. No changes prints
// "identical".
func (r *Reporter) ChangesTable(w io.Writer, changes []diff.Change) error {
	if len(changes) == 0 {
		_, err := fmt.Fprintln(w, "identical")
		return err
	}

	t := r.newTable(w)
	t.AppendHeader(table.Row{"Path", "Change", "Old", "New"})
	for _, c := range changes {
		t.AppendRow(table.Row{string(c.Path), c.Kind.String(), changeOld(c), changeNew(c)})
	}
	t.Render()

	return r.Summary(w, diff.Count(changes))
}

// Summary prints change counts on one line.
func (r *Reporter) Summary(w io.Writer, s diff.Summary) error {
	if s.Total() == 0 {
		_, err := fmt.Fprintln(w, "identical")
		return err
	}
	_, err := fmt.Fprintf(w, "%d added, %d removed, %d updated, %d moved\n", s.Added, s.Removed, s.Updated, s.Moved)
	return err
}

type markerJSON struct {
	Path     models.Path       `json:"path"`
	Type     models.MarkerType `json:"type"`
	Fraction float64           `json:"fraction"`
	Line     int               `json:"line"`
}

type analysisJSON struct {
	TotalLines       int           `json:"totalLines"`
	MaxDepth         int           `json:"maxDepth"`
	Markers          []markerJSON  `json:"markers"`
	InterestingPaths []models.Path `json:"interestingPaths"`
	AncestorPaths    []models.Path `json:"ancestorPaths"`
}

// AnalysisJSON writes result as indented JSON with path sets in sorted order.
func AnalysisJSON(w io.Writer, result models.AnalysisResult) error {
	out := analysisJSON{
		TotalLines:       result.TotalLines,
		MaxDepth:         result.MaxDepth,
		Markers:          make([]markerJSON, 0, len(result.Markers)),
		InterestingPaths: result.InterestingPaths.Sorted(),
		AncestorPaths:    result.AncestorPaths.Sorted(),
	}
	for _, m := range result.Markers {
		out.Markers = append(out.Markers, markerJSON{Path: m.Path, Type: m.Type, Fraction: m.Fraction, Line: markerLine(m, result.TotalLines)})
	}
	return encodeJSON(w, out)
}

type changeJSON struct {
	Path models.Path     `json:"path"`
	Kind string          `json:"kind"`
	Old  json.RawMessage `json:"old,omitempty"`
	New  json.RawMessage `json:"new,omitempty"`
	From *int            `json:"from,omitempty"`
	To   *int            `json:"to,omitempty"`
}

type diffJSON struct {
	Identical bool         `json:"identical"`
	Summary   diff.Summary `json:"summary"`
	Changes   []changeJSON `json:"changes"`
}

// ChangesJSON writes changes and their summary as indented JSON. Values keep
// their original member order and number literals.
func ChangesJSON(w io.Writer, changes []diff.Change) error {
	out := diffJSON{
		Identical: len(changes) == 0,
		Summary:   diff.Count(changes),
		Changes:   make([]changeJSON, 0, len(changes)),
	}
	for _, c := range changes {
		cj := changeJSON{Path: c.Path, Kind: c.Kind.String(), Old: rawValue(c.Old), New: rawValue(c.New)}
		if c.Kind == diff.KindMoved {
			from, to := c.From, c.To
			cj.From, cj.To = &from, &to
		}
		out.Changes = append(out.Changes, cj)
	}
	return encodeJSON(w, out)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func rawValue(v models.Value) json.RawMessage {
	if v == nil {
		return nil
	}
	return json.RawMessage(formatter.Compact(v))
}

func markerLine(m models.Marker, totalLines int) int {
	return int(math.Round(m.Fraction * float64(totalLines)))
}

func changeOld(c diff.Change) string {
	switch c.Kind {
	case diff.KindMoved:
		return fmt.Sprintf("[%d]", c.From)
	case diff.KindAdded:
		return ""
	}
	return truncate(formatter.Compact(c.Old))
}

func changeNew(c diff.Change) string {
	switch c.Kind {
	case diff.KindMoved:
		return fmt.Sprintf("[%d]", c.To)
	case diff.KindRemoved:
		return ""
	}
	return truncate(formatter.Compact(c.New))
}

func truncate(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= maxCellWidth {
		return s
	}
	return string(runes[:maxCellWidth-3]) + "..."
}
