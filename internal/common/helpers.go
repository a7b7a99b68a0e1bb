package common

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// TokenDecimals is the number of decimals of the DUMMY token.
const TokenDecimals = 0

// FormatUnits converts raw token units to a display string without float precision loss.
// The result always carries a fractional part: FormatUnits(100, 0) = "100.0",
// FormatUnits(1500000, 6) = "1.5".
func FormatUnits(raw *big.Int, decimals int32) string {
	if raw == nil {
		raw = new(big.Int)
	}
	s := decimal.NewFromBigInt(raw, -decimals).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ParseUnits converts a decimal string to raw token units.
// Fails if the amount has more fractional digits than decimals allows.
func ParseUnits(amount string, decimals int32) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("empty string")
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal format: %w", err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("negative amount")
	}

	shifted := d.Shift(decimals)
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, fmt.Errorf("too many decimal places: max %d", decimals)
	}
	return shifted.BigInt(), nil
}

// PrettyBalance renders raw units with the token symbol, e.g. "100.0 DUMMY".
func PrettyBalance(raw *big.Int, decimals int32, symbol string) string {
	return FormatUnits(raw, decimals) + " " + symbol
}

// ShortAddress abbreviates an address as 0x1234...abcd
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// CompareAmounts compares two integer amount strings without float precision loss.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails
func CompareAmounts(a, b string, decimals int32) (int, error) {
	aVal, err := ParseUnits(a, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := ParseUnits(b, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	return aVal.Cmp(bVal), nil
}
