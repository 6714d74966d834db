// Package coin recognizes fixed-point coin amounts in JSON documents and
// renders them without going through floating point.
package coin

import "strings"

// DefaultDecimals is used for denoms that have no configuration.
const DefaultDecimals = 6

// FormatAmount places a decimal point decimals digits from the right of raw,
// which must be a string of ASCII digits. Trailing fractional zeros are
// dropped, and the point too when nothing is left after it. The integer part
// is kept exactly as given.
func FormatAmount(raw string, decimals int) string {
	if decimals <= 0 {
		if raw == "" {
			return "0"
		}
		return raw
	}

	padded := raw
	if len(padded) < decimals+1 {
		padded = strings.Repeat("0", decimals+1-len(padded)) + padded
	}

	split := len(padded) - decimals
	intPart := padded[:split]
	fracPart := strings.TrimRight(padded[split:], "0")

	if fracPart == "" {
		return intPart
	}
	return intPart + "." + fracPart
}
