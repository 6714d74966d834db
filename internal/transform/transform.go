// Package transform normalizes JSON trees for stable comparison.
package transform

import (
	"sort"

	"github.com/faneaatiku/cosmos-json/internal/models"
)

// SortKeys returns a copy of v in which every object's members are ordered by
// byte-wise key comparison. Array order is preserved and scalars are returned
// as they are. The input is not modified.
func SortKeys(v models.Value) models.Value {
	switch t := v.(type) {
	case models.Array:
		out := make(models.Array, len(t))
		for i, item := range t {
			out[i] = SortKeys(item)
		}
		return out
	case *models.Object:
		members := make([]models.Member, len(t.Members))
		for i, m := range t.Members {
			members[i] = models.Member{Key: m.Key, Value: SortKeys(m.Value)}
		}
		sort.Slice(members, func(i, j int) bool { return members[i].Key < members[j].Key })
		return &models.Object{Members: members}
	default:
		return v
	}
}

// Apply returns SortKeys(v) when enabled and v unchanged otherwise, so callers
// can normalize every input the same way from a single setting.
func Apply(v models.Value, enabled bool) models.Value {
	if !enabled {
		return v
	}
	return SortKeys(v)
}
