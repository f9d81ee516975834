package token

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// NativeDecimals is the smallest-unit exponent of the chain's native asset
// (1 ether = 10^18 wei).
const NativeDecimals uint8 = 18

// ToBaseUnits converts a human readable amount into the asset's smallest
// integer unit. The shift is exact for decimal inputs; anything below one
// base unit after shifting is truncated.
func ToBaseUnits(amount decimal.Decimal, decimals uint8) *big.Int {
	return amount.Shift(int32(decimals)).Truncate(0).BigInt()
}
