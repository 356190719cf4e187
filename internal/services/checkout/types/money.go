package types

import "math"

// PriceToAmount converts a decimal price into minor currency units. Every
// amount handed to the payment sheet or the intent API goes through here.
func PriceToAmount(price float64) int64 {
	return int64(math.Round(price * 100))
}
