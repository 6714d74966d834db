package transform

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/faneaatiku/cosmos-json/internal/models"
	"github.com/faneaatiku/cosmos-json/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
	"zeta": 1,
	"Alpha": {"b": [ {"y": 1, "x": 2}, "s" ], "a": null},
	"alpha": true,
	"_id": "x",
	"10": "ten",
	"9": "nine"
}`

func mustParse(t *testing.T, s string) models.Value {
	t.Helper()
	v, err := parser.ParseString(s)
	require.NoError(t, err)
	return v
}

// shuffleKeys returns a deep copy of v with every object's members in random order.
func shuffleKeys(v models.Value, rng *rand.Rand) models.Value {
	switch t := v.(type) {
	case models.Array:
		out := make(models.Array, len(t))
		for i, item := range t {
			out[i] = shuffleKeys(item, rng)
		}
		return out
	case *models.Object:
		members := make([]models.Member, len(t.Members))
		for i, m := range t.Members {
			members[i] = models.Member{Key: m.Key, Value: shuffleKeys(m.Value, rng)}
		}
		rng.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
		return &models.Object{Members: members}
	default:
		return v
	}
}

func TestSortKeys(t *testing.T) {
	sorted := SortKeys(mustParse(t, sample)).(*models.Object)

	// Ordinal comparison: digits < upper case < underscore < lower case.
	assert.Equal(t, []string{"10", "9", "Alpha", "_id", "alpha", "zeta"}, sorted.Keys())

	alpha, _ := sorted.Get("Alpha")
	assert.Equal(t, []string{"a", "b"}, alpha.(*models.Object).Keys())

	b, _ := alpha.(*models.Object).Get("b")
	arr := b.(models.Array)
	require.Len(t, arr, 2)
	assert.Equal(t, []string{"x", "y"}, arr[0].(*models.Object).Keys(), "objects inside arrays are sorted")
	assert.Equal(t, models.String("s"), arr[1], "array order is preserved")
}

func TestSortKeys_DoesNotMutateInput(t *testing.T) {
	original := mustParse(t, sample)
	before := original.(*models.Object).Keys()

	_ = SortKeys(original)

	assert.Equal(t, before, original.(*models.Object).Keys())
}

func TestSortKeys_Scalars(t *testing.T) {
	for _, v := range []models.Value{models.Null{}, models.Bool(true), models.Number("1.50"), models.String("b")} {
		assert.Equal(t, v, SortKeys(v))
	}
}

func TestSortKeys_Idempotent(t *testing.T) {
	once := SortKeys(mustParse(t, sample))
	twice := SortKeys(once)
	assert.True(t, reflect.DeepEqual(once, twice))
}

func TestSortKeys_IndependentOfInputOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	doc := mustParse(t, sample)
	expected := SortKeys(doc)

	for i := 0; i < 20; i++ {
		shuffled := shuffleKeys(doc, rng)
		assert.True(t, models.Equal(doc, shuffled))
		assert.True(t, reflect.DeepEqual(expected, SortKeys(shuffled)), "iteration %d", i)
	}
}

func TestApply(t *testing.T) {
	doc := mustParse(t, `{"b": 1, "a": 2}`)

	assert.Equal(t, []string{"b", "a"}, Apply(doc, false).(*models.Object).Keys())
	assert.Equal(t, []string{"a", "b"}, Apply(doc, true).(*models.Object).Keys())
}
