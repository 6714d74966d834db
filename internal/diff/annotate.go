package diff

import (
	"strconv"

	"github.com/faneaatiku/cosmos-json/internal/models"
)

type status int

const (
	statusUnchanged status = iota
	statusAdded
	statusDeleted
	statusModified
	statusNode
)

// row is one entry of the annotated view that both renderers walk.
type row struct {
	key    string
	hasKey bool
	// inArray marks keys that are array indexes rather than member names.
	inArray bool
	status  status
	// value is the displayed value for unchanged, added and deleted rows.
	value models.Value
	// oldValue and newValue are set for modified rows.
	oldValue, newValue models.Value
	// container and children describe a statusNode row.
	container models.Kind
	children  []*row
	// moved rows carry their left and right array positions.
	moved              bool
	movedFrom, movedTo int
}

// annotate merges left with delta into a tree of rows: unchanged context plus
// markers for every insertion, removal, update and move.
func annotate(left models.Value, delta *Delta) *row {
	if delta == nil {
		return &row{status: statusUnchanged, value: left}
	}
	switch delta.Kind {
	case KindAdded:
		return &row{status: statusAdded, value: delta.New}
	case KindRemoved:
		return &row{status: statusDeleted, value: delta.Old}
	case KindUpdated:
		return &row{status: statusModified, oldValue: delta.Old, newValue: delta.New}
	case KindObject:
		if obj, ok := left.(*models.Object); ok {
			return annotateObject(obj, delta)
		}
	case KindArray:
		if arr, ok := left.(models.Array); ok {
			return annotateArray(arr, delta)
		}
	}
	return &row{status: statusUnchanged, value: left}
}

func annotateObject(left *models.Object, delta *Delta) *row {
	byKey := make(map[string]*Delta, len(delta.Fields))
	for _, f := range delta.Fields {
		byKey[f.Key] = f.Delta
	}

	node := &row{status: statusNode, container: models.KindObject}
	for _, m := range left.Members {
		child := annotate(m.Value, byKey[m.Key])
		child.key, child.hasKey = m.Key, true
		node.children = append(node.children, child)
	}
	for _, f := range delta.Fields {
		if f.Delta.Kind == KindAdded {
			child := annotate(nil, f.Delta)
			child.key, child.hasKey = f.Key, true
			node.children = append(node.children, child)
		}
	}
	return node
}

// annotateArray lists elements in right-hand order. Removed elements are
// shown just before the first element that followed them on the left and
// kept its relative position.
func annotateArray(left models.Array, delta *Delta) *row {
	var removed []*ItemDelta
	for i := range delta.Items {
		if delta.Items[i].To < 0 {
			removed = append(removed, &delta.Items[i])
		}
	}

	node := &row{status: statusNode, container: models.KindArray}
	emitRemovedBefore := func(limit int) {
		for len(removed) > 0 && removed[0].From < limit {
			child := annotate(left[removed[0].From], removed[0].Delta)
			child.key, child.hasKey, child.inArray = strconv.Itoa(removed[0].From), true, true
			node.children = append(node.children, child)
			removed = removed[1:]
		}
	}

	for j, s := range align(len(left), delta.Items) {
		var child *row
		switch {
		case s.item != nil && s.item.From < 0:
			child = annotate(nil, s.item.Delta)
		case s.item != nil:
			if !s.item.Moved {
				emitRemovedBefore(s.item.From)
			}
			child = annotate(left[s.item.From], s.item.Delta)
			if s.item.Moved {
				child.moved = true
				child.movedFrom, child.movedTo = s.item.From, s.item.To
			}
		default:
			emitRemovedBefore(s.from)
			child = annotate(left[s.from], nil)
		}
		child.key, child.hasKey, child.inArray = strconv.Itoa(j), true, true
		node.children = append(node.children, child)
	}
	emitRemovedBefore(len(left))
	return node
}
