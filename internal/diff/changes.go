package diff

import (
	"github.com/faneaatiku/cosmos-json/internal/models"
)

// Change is one leaf-level difference, flattened out of a Delta.
type Change struct {
	// Path points into the left document, except for added elements, which
	// only exist on the right and use their right-hand location.
	Path models.Path
	Kind Kind
	Old  models.Value
	New  models.Value
	// From and To are array positions for moves; both are -1 otherwise.
	From int
	To   int
}

// Summary counts changes by kind.
type Summary struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Updated int `json:"updated"`
	Moved   int `json:"moved"`
}

// Total returns the number of changes.
func (s Summary) Total() int {
	return s.Added + s.Removed + s.Updated + s.Moved
}

// Changes lists every change in delta in document order.
func Changes(delta *Delta) []Change {
	var out []Change
	collectChanges(delta, models.RootPath, &out)
	return out
}

// Summarize counts the changes in delta.
func Summarize(delta *Delta) Summary {
	return Count(Changes(delta))
}

// Count tallies changes by kind.
func Count(changes []Change) Summary {
	var s Summary
	for _, c := range changes {
		switch c.Kind {
		case KindAdded:
			s.Added++
		case KindRemoved:
			s.Removed++
		case KindUpdated:
			s.Updated++
		case KindMoved:
			s.Moved++
		}
	}
	return s
}

func collectChanges(delta *Delta, path models.Path, out *[]Change) {
	if delta == nil {
		return
	}
	switch delta.Kind {
	case KindAdded, KindRemoved, KindUpdated:
		*out = append(*out, Change{Path: path, Kind: delta.Kind, Old: delta.Old, New: delta.New, From: -1, To: -1})
	case KindObject:
		for _, f := range delta.Fields {
			collectChanges(f.Delta, path.Key(f.Key), out)
		}
	case KindArray:
		for _, it := range delta.Items {
			if it.From < 0 {
				collectChanges(it.Delta, path.Index(it.To), out)
				continue
			}
			itemPath := path.Index(it.From)
			if it.Moved {
				*out = append(*out, Change{Path: itemPath, Kind: KindMoved, New: it.Value, From: it.From, To: it.To})
			}
			collectChanges(it.Delta, itemPath, out)
		}
	}
}
