package models

import (
	"sort"
	"strconv"
)

// RootPath is the path of the document root.
const RootPath Path = "$"

// Path locates a node inside one document: "$" followed by ".key" or ".index"
// segments. A path has no meaning outside the tree it was computed for.
type Path string

// Key returns the path of the child stored under an object key.
func (p Path) Key(key string) Path {
	return p + "." + Path(key)
}

// Index returns the path of the child at an array index.
func (p Path) Index(i int) Path {
	return p + "." + Path(strconv.Itoa(i))
}

// PathSet is an unordered set of paths.
type PathSet map[Path]struct{}

// Add inserts p.
func (s PathSet) Add(p Path) {
	s[p] = struct{}{}
}

// Has reports whether p is in the set.
func (s PathSet) Has(p Path) bool {
	_, ok := s[p]
	return ok
}

// Sorted returns the members in lexical order.
func (s PathSet) Sorted() []Path {
	out := make([]Path, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CoinDenomConfig describes how to display one denom.
type CoinDenomConfig struct {
	Denom        string `yaml:"denom" json:"denom"`
	Decimals     int    `yaml:"decimals" json:"decimals"`
	DisplayDenom string `yaml:"display_denom" json:"displayDenom"`
}

// Label annotates an exact string value with a human readable name.
type Label struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// ParsedCoin is a coin found in a document together with its display form.
type ParsedCoin struct {
	Amount        string `json:"amount"`
	Denom         string `json:"denom"`
	DisplayAmount string `json:"displayAmount"`
	DisplayDenom  string `json:"displayDenom"`
}

// String renders the coin as "<displayAmount> <displayDenom>".
func (c ParsedCoin) String() string {
	return c.DisplayAmount + " " + c.DisplayDenom
}

// MarkerType categorizes a marker.
type MarkerType string

const (
	MarkerCoin  MarkerType = "coin"
	MarkerLabel MarkerType = "label"
)

// Marker projects an interesting node onto the 0..1 range of the fully
// expanded document.
type Marker struct {
	Fraction float64    `json:"fraction"`
	Type     MarkerType `json:"type"`
	Path     Path       `json:"path"`
}

// AnalysisResult holds everything one analysis pass discovers.
type AnalysisResult struct {
	InterestingPaths PathSet
	AncestorPaths    PathSet
	// Markers are in discovery (document) order.
	Markers    []Marker
	MaxDepth   int
	TotalLines int
}
