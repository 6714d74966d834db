// Package diff computes structural differences between two JSON documents,
// including detection of array elements that were moved rather than changed.
package diff

import (
	"sort"

	"github.com/faneaatiku/cosmos-json/internal/models"
)

// Kind says what happened to a node.
type Kind int

const (
	KindAdded Kind = iota + 1
	KindRemoved
	KindUpdated
	// KindMoved only appears in Change; a Delta never has it because moves are
	// recorded on ItemDelta.
	KindMoved
	KindObject
	KindArray
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAdded:
		return "added"
	case KindRemoved:
		return "removed"
	case KindUpdated:
		return "updated"
	case KindMoved:
		return "moved"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Delta describes how a value on the left turned into the value on the right.
// A nil *Delta means no change.
type Delta struct {
	Kind Kind
	// Old is set for KindRemoved and KindUpdated.
	Old models.Value
	// New is set for KindAdded and KindUpdated.
	New models.Value
	// Fields holds per-member changes of an object (KindObject): changed and
	// removed members in left order, then added members in right order.
	Fields []FieldDelta
	// Items holds per-element changes of an array (KindArray): entries that
	// exist on the left ordered by From, then insertions ordered by To.
	Items []ItemDelta
}

// FieldDelta is the change of one object member.
type FieldDelta struct {
	Key   string
	Delta *Delta
}

// ItemDelta is the change of one array element.
type ItemDelta struct {
	// From is the element's index in the left array, -1 for insertions.
	From int
	// To is the element's index in the right array, -1 for removals.
	To int
	// Moved is set when the element's position among the elements present on
	// both sides changed.
	Moved bool
	// Value carries a moved element only when Config.IncludeValueOnMove is set.
	Value models.Value
	// Delta is nil for an element that moved without changing.
	Delta *Delta
}

// Config controls array matching. Diff keeps no state between calls; pass the
// same Config to get the same behaviour.
type Config struct {
	// IdentityKeys are object members that identify an array element across
	// positions, tried in order. Only string and number members count.
	// Elements without one are matched by position.
	IdentityKeys []string
	// DetectMove pairs removed and inserted elements with the same identity
	// (or equal scalar value) into moves.
	DetectMove bool
	// IncludeValueOnMove copies the moved value into ItemDelta.Value.
	IncludeValueOnMove bool
}

// DefaultConfig matches array objects on "_id" then "id" and detects moves
// without repeating moved values.
func DefaultConfig() Config {
	return Config{
		IdentityKeys:       []string{"_id", "id"},
		DetectMove:         true,
		IncludeValueOnMove: false,
	}
}

// Diff returns the delta that turns left into right, or nil when the two are
// structurally equal (see models.Equal).
func Diff(left, right models.Value, cfg Config) *Delta {
	d := &differ{cfg: cfg}
	return d.diff(left, right)
}

type differ struct {
	cfg Config
}

func (d *differ) diff(left, right models.Value) *Delta {
	switch l := left.(type) {
	case *models.Object:
		if r, ok := right.(*models.Object); ok {
			return d.diffObjects(l, r)
		}
	case models.Array:
		if r, ok := right.(models.Array); ok {
			return d.diffArrays(l, r)
		}
	}
	if models.Equal(left, right) {
		return nil
	}
	return &Delta{Kind: KindUpdated, Old: left, New: right}
}

func (d *differ) diffObjects(left, right *models.Object) *Delta {
	var fields []FieldDelta
	for _, m := range left.Members {
		other, ok := right.Get(m.Key)
		if !ok {
			fields = append(fields, FieldDelta{Key: m.Key, Delta: &Delta{Kind: KindRemoved, Old: m.Value}})
			continue
		}
		if child := d.diff(m.Value, other); child != nil {
			fields = append(fields, FieldDelta{Key: m.Key, Delta: child})
		}
	}
	for _, m := range right.Members {
		if _, ok := left.Get(m.Key); !ok {
			fields = append(fields, FieldDelta{Key: m.Key, Delta: &Delta{Kind: KindAdded, New: m.Value}})
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &Delta{Kind: KindObject, Fields: fields}
}

func (d *differ) diffArrays(left, right models.Array) *Delta {
	pairs := d.pairElements(left, right)

	pairedLeft := make([]bool, len(left))
	pairedRight := make([]bool, len(right))
	for _, p := range pairs {
		pairedLeft[p.from] = true
		pairedRight[p.to] = true
	}

	// Rank of each surviving element among the survivors of its side.
	leftRank := survivorRanks(pairedLeft)
	rightRank := survivorRanks(pairedRight)

	var items []ItemDelta
	for _, p := range pairs {
		moved := leftRank[p.from] != rightRank[p.to]
		child := d.diff(left[p.from], right[p.to])
		if !moved && child == nil {
			continue
		}
		item := ItemDelta{From: p.from, To: p.to, Moved: moved, Delta: child}
		if moved && d.cfg.IncludeValueOnMove {
			item.Value = left[p.from]
		}
		items = append(items, item)
	}
	for i, ok := range pairedLeft {
		if !ok {
			items = append(items, ItemDelta{From: i, To: -1, Delta: &Delta{Kind: KindRemoved, Old: left[i]}})
		}
	}
	for j, ok := range pairedRight {
		if !ok {
			items = append(items, ItemDelta{From: -1, To: j, Delta: &Delta{Kind: KindAdded, New: right[j]}})
		}
	}

	if len(items) == 0 {
		return nil
	}
	sortItems(items)
	return &Delta{Kind: KindArray, Items: items}
}

// survivorRanks maps each kept index to its position among kept indexes.
func survivorRanks(kept []bool) []int {
	ranks := make([]int, len(kept))
	rank := 0
	for i, ok := range kept {
		if ok {
			ranks[i] = rank
			rank++
		} else {
			ranks[i] = -1
		}
	}
	return ranks
}

func sortItems(items []ItemDelta) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.From >= 0 && b.From >= 0:
			return a.From < b.From
		case a.From >= 0:
			return true
		case b.From >= 0:
			return false
		default:
			return a.To < b.To
		}
	})
}
