package coin

import (
	"strings"

	"github.com/faneaatiku/cosmos-json/internal/models"
)

// Resolution is the display configuration that applies to one denom after
// defaults have been filled in.
type Resolution struct {
	Decimals     int
	DisplayDenom string
}

// Registry indexes denom configurations by denom. Build one per analysis call;
// it is never mutated after construction.
type Registry struct {
	byDenom map[string]models.CoinDenomConfig
}

// NewRegistry indexes configs. When a denom is configured more than once the
// first entry wins.
func NewRegistry(configs []models.CoinDenomConfig) *Registry {
	r := &Registry{byDenom: make(map[string]models.CoinDenomConfig, len(configs))}
	for _, cfg := range configs {
		if _, exists := r.byDenom[cfg.Denom]; exists {
			continue
		}
		r.byDenom[cfg.Denom] = cfg
	}
	return r
}

// Lookup returns the configuration registered for denom.
func (r *Registry) Lookup(denom string) (models.CoinDenomConfig, bool) {
	if r == nil {
		return models.CoinDenomConfig{}, false
	}
	cfg, ok := r.byDenom[denom]
	return cfg, ok
}

// Resolve returns the decimals and display symbol for denom. Configured denoms
// use their settings; an empty configured display symbol, like an unknown
// denom, falls back to DeriveDisplayDenom. Unknown denoms get DefaultDecimals.
func Resolve(denom string, registry *Registry) Resolution {
	cfg, ok := registry.Lookup(denom)
	if !ok {
		return Resolution{Decimals: DefaultDecimals, DisplayDenom: DeriveDisplayDenom(denom)}
	}

	res := Resolution{Decimals: cfg.Decimals, DisplayDenom: cfg.DisplayDenom}
	if res.Decimals < 0 {
		res.Decimals = 0
	}
	if res.DisplayDenom == "" {
		res.DisplayDenom = DeriveDisplayDenom(denom)
	}
	return res
}

// DeriveDisplayDenom strips the micro-unit "u" prefix and upper-cases the
// rest: "uatom" becomes "ATOM", "stake" becomes "STAKE".
func DeriveDisplayDenom(denom string) string {
	if len(denom) > 1 && denom[0] == 'u' {
		return strings.ToUpper(denom[1:])
	}
	return strings.ToUpper(denom)
}
