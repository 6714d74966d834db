package coin

import (
	"regexp"
	"strings"

	"github.com/faneaatiku/cosmos-json/internal/models"
	"github.com/faneaatiku/cosmos-json/internal/parser"
)

// MaxStringifiedDepth bounds how deep ParseStringifiedCoins looks into JSON
// embedded in a string. The embedded document's root is depth 0.
const MaxStringifiedDepth = 10

var (
	denomRegex      = regexp.MustCompile(`^[a-z][a-z0-9]+$`)
	coinStringRegex = regexp.MustCompile(`^(\d+)([a-z][a-z0-9]+)$`)
	digitsRegex     = regexp.MustCompile(`^\d+$`)
)

// IsCoinDenom reports whether s is a valid denom: a lowercase letter followed
// by at least one lowercase letter or digit.
func IsCoinDenom(s string) bool {
	return denomRegex.MatchString(s)
}

// ParseCoinString parses strings such as "123231ubze" where the amount digits
// are immediately followed by the denom.
func ParseCoinString(s string, registry *Registry) (models.ParsedCoin, bool) {
	match := coinStringRegex.FindStringSubmatch(s)
	if match == nil {
		return models.ParsedCoin{}, false
	}
	return newParsedCoin(match[1], match[2], registry), true
}

// IsCoinObject reports whether v has the Cosmos SDK coin shape: an object with
// exactly the keys "amount" (a digits-only string) and "denom" (a valid denom).
func IsCoinObject(v models.Value) bool {
	obj, ok := v.(*models.Object)
	if !ok || obj.Len() != 2 {
		return false
	}
	amount, ok := stringMember(obj, "amount")
	if !ok || !digitsRegex.MatchString(amount) {
		return false
	}
	denom, ok := stringMember(obj, "denom")
	return ok && IsCoinDenom(denom)
}

// ParseCoinObject converts a coin object. Callers check IsCoinObject first;
// missing members yield empty fields rather than a panic.
func ParseCoinObject(obj *models.Object, registry *Registry) models.ParsedCoin {
	amount, _ := stringMember(obj, "amount")
	denom, _ := stringMember(obj, "denom")
	return newParsedCoin(amount, denom, registry)
}

// ParseStringifiedCoins looks for coin objects inside a string that itself
// holds JSON, as Cosmos event attributes often do. Strings that do not start
// with '{' or '[' are skipped; unparsable JSON yields no coins.
func ParseStringifiedCoins(s string, registry *Registry) []models.ParsedCoin {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return nil
	}

	root, err := parser.ParseString(trimmed)
	if err != nil {
		return nil
	}

	var coins []models.ParsedCoin
	collectCoins(root, 0, registry, &coins)
	return coins
}

func collectCoins(v models.Value, depth int, registry *Registry, coins *[]models.ParsedCoin) {
	if depth > MaxStringifiedDepth {
		return
	}
	switch t := v.(type) {
	case *models.Object:
		if IsCoinObject(t) {
			*coins = append(*coins, ParseCoinObject(t, registry))
		}
		for _, m := range t.Members {
			collectCoins(m.Value, depth+1, registry, coins)
		}
	case models.Array:
		for _, item := range t {
			collectCoins(item, depth+1, registry, coins)
		}
	}
}

func newParsedCoin(amount, denom string, registry *Registry) models.ParsedCoin {
	res := Resolve(denom, registry)
	return models.ParsedCoin{
		Amount:        amount,
		Denom:         denom,
		DisplayAmount: FormatAmount(amount, res.Decimals),
		DisplayDenom:  res.DisplayDenom,
	}
}

func stringMember(obj *models.Object, key string) (string, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(models.String)
	return string(s), ok
}
