package analyzer

import (
	"github.com/faneaatiku/cosmos-json/internal/coin"
	"github.com/faneaatiku/cosmos-json/internal/labeler"
	"github.com/faneaatiku/cosmos-json/internal/models"
)

// Options controls what the analyzer considers interesting.
type Options struct {
	ParseCoins bool
	Labels     []models.Label
	CoinDenoms []models.CoinDenomConfig
}

// CountLines returns how many lines v occupies when every container is
// expanded: one per scalar, and an opening plus a closing line per container.
func CountLines(v models.Value) int {
	switch t := v.(type) {
	case models.Array:
		n := 2
		for _, item := range t {
			n += CountLines(item)
		}
		return n
	case *models.Object:
		n := 2
		for _, m := range t.Members {
			n += CountLines(m.Value)
		}
		return n
	default:
		return 1
	}
}

// walker carries the running state of one analysis pass. It is created per
// call, so concurrent Analyze calls share nothing.
type walker struct {
	opts     Options
	registry *coin.Registry
	labels   labeler.Index

	totalLines  int
	currentLine int
	// ancestors holds the container paths above the node being visited,
	// outermost first, excluding the root.
	ancestors []models.Path

	result models.AnalysisResult
}

// Analyze walks root once and reports where coins and labelled values sit,
// which containers must be expanded to reveal them, and how deep the document
// nests.
func Analyze(root models.Value, opts Options) models.AnalysisResult {
	w := &walker{
		opts:       opts,
		registry:   coin.NewRegistry(opts.CoinDenoms),
		labels:     labeler.NewIndex(opts.Labels),
		totalLines: CountLines(root),
		result: models.AnalysisResult{
			InterestingPaths: make(models.PathSet),
			AncestorPaths:    make(models.PathSet),
			Markers:          make([]models.Marker, 0),
		},
	}
	w.result.TotalLines = w.totalLines

	w.analyzeNode(root, models.RootPath, 0)
	return w.result
}

func (w *walker) analyzeNode(node models.Value, path models.Path, depth int) {
	switch v := node.(type) {
	case models.String:
		w.analyzeString(string(v), path)
	case models.Array:
		w.analyzeArray(v, path, depth)
	case *models.Object:
		w.analyzeObject(v, path, depth)
	default:
		// null, booleans and numbers take one line and are never interesting.
		w.currentLine++
	}
}

func (w *walker) analyzeString(s string, path models.Path) {
	w.currentLine++

	if w.opts.ParseCoins {
		if _, ok := coin.ParseCoinString(s, w.registry); ok {
			w.mark(path, models.MarkerCoin)
			return
		}
		if len(coin.ParseStringifiedCoins(s, w.registry)) > 0 {
			w.mark(path, models.MarkerCoin)
			return
		}
	}

	if _, ok := labeler.GetLabel(s, w.labels); ok {
		w.mark(path, models.MarkerLabel)
	}
}

func (w *walker) analyzeArray(arr models.Array, path models.Path, depth int) {
	w.observeDepth(depth)
	w.currentLine++ // opening bracket

	w.enter(path)
	for i, item := range arr {
		w.analyzeNode(item, path.Index(i), depth+1)
	}
	w.leave(path)

	w.currentLine++ // closing bracket
}

func (w *walker) analyzeObject(obj *models.Object, path models.Path, depth int) {
	w.observeDepth(depth)
	w.currentLine++ // opening brace

	if w.opts.ParseCoins && coin.IsCoinObject(obj) {
		w.mark(path, models.MarkerCoin)
	}

	w.enter(path)
	for _, m := range obj.Members {
		w.analyzeNode(m.Value, path.Key(m.Key), depth+1)
	}
	w.leave(path)

	w.currentLine++ // closing brace
}

func (w *walker) observeDepth(depth int) {
	if depth > w.result.MaxDepth {
		w.result.MaxDepth = depth
	}
}

func (w *walker) enter(path models.Path) {
	if path == models.RootPath {
		return
	}
	w.ancestors = append(w.ancestors, path)
}

func (w *walker) leave(path models.Path) {
	if path == models.RootPath {
		return
	}
	w.ancestors = w.ancestors[:len(w.ancestors)-1]
}

// mark records path as interesting at the current line and makes all of its
// non-root ancestors reachable.
func (w *walker) mark(path models.Path, kind models.MarkerType) {
	w.result.InterestingPaths.Add(path)
	for _, a := range w.ancestors {
		w.result.AncestorPaths.Add(a)
	}
	w.result.Markers = append(w.result.Markers, models.Marker{
		Fraction: float64(w.currentLine) / float64(w.totalLines),
		Type:     kind,
		Path:     path,
	})
}
