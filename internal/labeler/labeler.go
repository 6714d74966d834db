// Package labeler attaches user-defined names to exact string values.
package labeler

import "github.com/faneaatiku/cosmos-json/internal/models"

// Index maps label values to their names.
type Index map[string]string

// NewIndex builds a lookup table from labels. If a value is labelled twice the
// first label wins.
func NewIndex(labels []models.Label) Index {
	idx := make(Index, len(labels))
	for _, l := range labels {
		if _, exists := idx[l.Value]; exists {
			continue
		}
		idx[l.Value] = l.Label
	}
	return idx
}

// GetLabel returns the label registered for value. Matching is exact: no
// trimming and no case folding.
func GetLabel(value string, index Index) (string, bool) {
	label, ok := index[value]
	return label, ok
}
