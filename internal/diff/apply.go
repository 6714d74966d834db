package diff

import (
	"github.com/faneaatiku/cosmos-json/internal/models"
)

// Apply returns the result of applying delta to left. For a delta produced by
// Diff(left, right, cfg), the result is structurally equal to right. left is
// not modified.
func Apply(left models.Value, delta *Delta) models.Value {
	if delta == nil {
		return left
	}
	switch delta.Kind {
	case KindAdded, KindUpdated:
		return delta.New
	case KindRemoved:
		return nil
	case KindObject:
		obj, ok := left.(*models.Object)
		if !ok {
			return left
		}
		return applyObject(obj, delta)
	case KindArray:
		arr, ok := left.(models.Array)
		if !ok {
			return left
		}
		return applyArray(arr, delta)
	default:
		return left
	}
}

func applyObject(left *models.Object, delta *Delta) models.Value {
	byKey := make(map[string]*Delta, len(delta.Fields))
	for _, f := range delta.Fields {
		byKey[f.Key] = f.Delta
	}

	members := make([]models.Member, 0, left.Len()+len(delta.Fields))
	for _, m := range left.Members {
		fd, changed := byKey[m.Key]
		switch {
		case !changed:
			members = append(members, m)
		case fd.Kind == KindRemoved:
		default:
			members = append(members, models.Member{Key: m.Key, Value: Apply(m.Value, fd)})
		}
	}
	for _, f := range delta.Fields {
		if f.Delta.Kind == KindAdded {
			members = append(members, models.Member{Key: f.Key, Value: f.Delta.New})
		}
	}
	return models.NewObject(members...)
}

func applyArray(left models.Array, delta *Delta) models.Value {
	slots := align(len(left), delta.Items)
	out := make(models.Array, len(slots))
	for j, s := range slots {
		switch {
		case s.item != nil && s.item.From < 0:
			out[j] = s.item.Delta.New
		case s.item != nil:
			out[j] = Apply(left[s.item.From], s.item.Delta)
		default:
			out[j] = left[s.from]
		}
	}
	return out
}

// slot describes what ends up at one index of the right array.
type slot struct {
	// from is the left index the element came from, -1 for insertions.
	from int
	// item is the recorded change for this position, nil for an element that
	// kept its relative position unchanged.
	item *ItemDelta
}

// align reconstructs the right-hand layout of an array from the left length
// and its item deltas. Elements without an entry survived untouched and keep
// their relative order, so they fill the free right positions in left order.
func align(leftLen int, items []ItemDelta) []slot {
	removed, inserted := 0, 0
	for _, it := range items {
		if it.To < 0 {
			removed++
		}
		if it.From < 0 {
			inserted++
		}
	}
	rightLen := leftLen - removed + inserted
	if rightLen < 0 {
		rightLen = 0
	}

	slots := make([]slot, rightLen)
	filled := make([]bool, rightLen)
	usedLeft := make([]bool, leftLen)
	for i := range items {
		it := &items[i]
		if it.From >= 0 && it.From < leftLen {
			usedLeft[it.From] = true
		}
		if it.To >= 0 && it.To < rightLen {
			slots[it.To] = slot{from: it.From, item: it}
			filled[it.To] = true
		}
	}

	next := 0
	for i := 0; i < leftLen; i++ {
		if usedLeft[i] {
			continue
		}
		for next < rightLen && filled[next] {
			next++
		}
		if next == rightLen {
			break
		}
		slots[next] = slot{from: i}
		filled[next] = true
	}
	return slots
}
