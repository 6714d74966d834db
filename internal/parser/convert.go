package parser

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/theory/jsonpath"

	"github.com/faneaatiku/cosmos-json/internal/errors"
	"github.com/faneaatiku/cosmos-json/internal/models"
)

// ToAny converts a value into the generic encoding/json representation
// (map[string]any, []any, json.Number, string, bool, nil).
func ToAny(v models.Value) any {
	switch t := v.(type) {
	case models.Null, nil:
		return nil
	case models.Bool:
		return bool(t)
	case models.Number:
		return json.Number(t)
	case models.String:
		return string(t)
	case models.Array:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = ToAny(item)
		}
		return out
	case *models.Object:
		out := make(map[string]any, t.Len())
		for _, m := range t.Members {
			out[m.Key] = ToAny(m.Value)
		}
		return out
	default:
		return nil
	}
}

// FromAny converts a generic encoding/json value into a models.Value. Go maps
// carry no order, so object keys come out sorted.
func FromAny(raw any) (models.Value, error) {
	switch t := raw.(type) {
	case nil:
		return models.Null{}, nil
	case bool:
		return models.Bool(t), nil
	case json.Number:
		return models.Number(t), nil
	case float64:
		return models.Number(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case int:
		return models.Number(strconv.Itoa(t)), nil
	case int64:
		return models.Number(strconv.FormatInt(t, 10)), nil
	case string:
		return models.String(t), nil
	case []any:
		arr := make(models.Array, len(t))
		for i, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]models.Member, 0, len(keys))
		for _, k := range keys {
			v, err := FromAny(t[k])
			if err != nil {
				return nil, err
			}
			members = append(members, models.Member{Key: k, Value: v})
		}
		return models.NewObject(members...), nil
	default:
		return nil, fmt.Errorf("unsupported JSON value type %T", raw)
	}
}

// Select evaluates a JSONPath expression against root and returns the first
// selected node. Objects inside the selection come back with sorted keys.
func Select(root models.Value, expr string) (models.Value, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, errors.NewAnalysisError(fmt.Sprintf("invalid JSONPath %q", expr), err)
	}

	results := path.Select(ToAny(root))
	if len(results) == 0 {
		return nil, errors.NewAnalysisError(fmt.Sprintf("JSONPath %q matched no node", expr), errors.ErrNoSelection)
	}

	selected, err := FromAny(results[0])
	if err != nil {
		return nil, errors.NewAnalysisError("failed to convert selected node", err)
	}
	return selected, nil
}
