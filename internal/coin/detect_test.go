package coin

import (
	"strings"
	"testing"

	"github.com/faneaatiku/cosmos-json/internal/models"
	"github.com/faneaatiku/cosmos-json/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) models.Value {
	t.Helper()
	v, err := parser.ParseString(s)
	require.NoError(t, err)
	return v
}

func TestIsCoinDenom(t *testing.T) {
	tests := []struct {
		denom    string
		expected bool
	}{
		{"uatom", true},
		{"ubze", true},
		{"stake", true},
		{"u1", true},
		{"a", false},
		{"", false},
		{"Uatom", false},
		{"1atom", false},
		{"u-atom", false},
		{"ibc/27394FB092D2ECCD", false},
	}

	for _, tt := range tests {
		t.Run(tt.denom, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsCoinDenom(tt.denom))
		})
	}
}

func TestParseCoinString(t *testing.T) {
	t.Run("default decimals", func(t *testing.T) {
		coin, ok := ParseCoinString("123231ubze", NewRegistry(nil))
		require.True(t, ok)
		assert.Equal(t, models.ParsedCoin{
			Amount:        "123231",
			Denom:         "ubze",
			DisplayAmount: "0.123231",
			DisplayDenom:  "BZE",
		}, coin)
	})

	t.Run("configured decimals", func(t *testing.T) {
		registry := NewRegistry([]models.CoinDenomConfig{{Denom: "ubze", Decimals: 0, DisplayDenom: "BZE"}})
		coin, ok := ParseCoinString("123231ubze", registry)
		require.True(t, ok)
		assert.Equal(t, "123231", coin.DisplayAmount)
		assert.Equal(t, "BZE", coin.DisplayDenom)
	})

	t.Run("configured display denom", func(t *testing.T) {
		registry := NewRegistry([]models.CoinDenomConfig{{Denom: "aevmos", Decimals: 18, DisplayDenom: "EVMOS"}})
		coin, ok := ParseCoinString("2500000000000000000aevmos", registry)
		require.True(t, ok)
		assert.Equal(t, "2.5", coin.DisplayAmount)
		assert.Equal(t, "EVMOS", coin.DisplayDenom)
	})

	t.Run("non-u denom upper-cased as is", func(t *testing.T) {
		coin, ok := ParseCoinString("100stake", nil)
		require.True(t, ok)
		assert.Equal(t, "STAKE", coin.DisplayDenom)
		assert.Equal(t, "0.0001", coin.DisplayAmount)
	})

	for _, s := range []string{"", "ubze", "123", "123 ubze", "-5uatom", "12.5uatom", "123UATOM", "123u", "abc123uatom", "123uatom "} {
		t.Run("no match "+s, func(t *testing.T) {
			_, ok := ParseCoinString(s, nil)
			assert.False(t, ok)
		})
	}
}

func TestResolve(t *testing.T) {
	registry := NewRegistry([]models.CoinDenomConfig{
		{Denom: "uatom", Decimals: 6, DisplayDenom: "ATOM"},
		{Denom: "uatom", Decimals: 2, DisplayDenom: "DUP"},
		{Denom: "ujuno", Decimals: 3},
	})

	assert.Equal(t, Resolution{Decimals: 6, DisplayDenom: "ATOM"}, Resolve("uatom", registry), "first config wins")
	assert.Equal(t, Resolution{Decimals: 3, DisplayDenom: "JUNO"}, Resolve("ujuno", registry), "empty display denom is derived")
	assert.Equal(t, Resolution{Decimals: 6, DisplayDenom: "OSMO"}, Resolve("uosmo", registry), "unknown denom")
	assert.Equal(t, Resolution{Decimals: 6, DisplayDenom: "STAKE"}, Resolve("stake", nil), "nil registry")
}

func TestIsCoinObject(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected bool
	}{
		{"valid", `{"amount": "10", "denom": "uatom"}`, true},
		{"key order irrelevant", `{"denom": "uatom", "amount": "10"}`, true},
		{"extra key", `{"amount": "10", "denom": "uatom", "extra": 1}`, false},
		{"numeric amount", `{"amount": 10, "denom": "uatom"}`, false},
		{"decimal amount", `{"amount": "1.5", "denom": "uatom"}`, false},
		{"empty amount", `{"amount": "", "denom": "uatom"}`, false},
		{"invalid denom", `{"amount": "10", "denom": "IBC/ABC"}`, false},
		{"missing denom", `{"amount": "10", "other": "uatom"}`, false},
		{"array", `["10", "uatom"]`, false},
		{"string", `"10uatom"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsCoinObject(mustParse(t, tt.json)))
		})
	}

	assert.False(t, IsCoinObject(nil))
}

func TestParseCoinObject(t *testing.T) {
	obj := mustParse(t, `{"amount": "2500000", "denom": "uosmo"}`).(*models.Object)
	coin := ParseCoinObject(obj, NewRegistry(nil))
	assert.Equal(t, models.ParsedCoin{Amount: "2500000", Denom: "uosmo", DisplayAmount: "2.5", DisplayDenom: "OSMO"}, coin)
}

func TestParseStringifiedCoins(t *testing.T) {
	t.Run("single coin object", func(t *testing.T) {
		coins := ParseStringifiedCoins(`{"amount":"5","denom":"uatom"}`, nil)
		require.Len(t, coins, 1)
		assert.Equal(t, "0.000005", coins[0].DisplayAmount)
		assert.Equal(t, "ATOM", coins[0].DisplayDenom)
	})

	t.Run("nested array with surrounding whitespace", func(t *testing.T) {
		coins := ParseStringifiedCoins(`  [{"amount":"1000000","denom":"uatom"},{"fee":{"amount":"2","denom":"ubze"}}] `, nil)
		require.Len(t, coins, 2)
		assert.Equal(t, "uatom", coins[0].Denom)
		assert.Equal(t, "ubze", coins[1].Denom)
	})

	t.Run("not json", func(t *testing.T) {
		assert.Empty(t, ParseStringifiedCoins("not json", nil))
	})

	t.Run("broken json", func(t *testing.T) {
		assert.Empty(t, ParseStringifiedCoins(`{"amount": "5", "denom":`, nil))
	})

	t.Run("json without coins", func(t *testing.T) {
		assert.Empty(t, ParseStringifiedCoins(`{"a": [1, 2, {"b": "c"}]}`, nil))
	})

	t.Run("scalar json is skipped", func(t *testing.T) {
		assert.Empty(t, ParseStringifiedCoins(`"{}"`, nil))
	})

	t.Run("depth limit", func(t *testing.T) {
		coin := `{"amount":"1","denom":"uatom"}`
		atDepth := func(depth int) string {
			return strings.Repeat("[", depth) + coin + strings.Repeat("]", depth)
		}
		assert.Len(t, ParseStringifiedCoins(atDepth(MaxStringifiedDepth), nil), 1)
		assert.Empty(t, ParseStringifiedCoins(atDepth(MaxStringifiedDepth+1), nil))
	})

	t.Run("deeply nested input does not fail", func(t *testing.T) {
		deep := strings.Repeat("[", 500) + strings.Repeat("]", 500)
		assert.Empty(t, ParseStringifiedCoins(deep, nil))
	})

	t.Run("nesting beyond the parser limit yields no coins", func(t *testing.T) {
		const n = 5_000_000
		deep := strings.Repeat("[", n) + `{"amount":"1","denom":"uatom"}` + strings.Repeat("]", n)
		assert.Empty(t, ParseStringifiedCoins(deep, nil))
	})
}
