package types

import "github.com/shopspring/decimal"

// Money is a currency amount. Stored exact; rendered with two decimals
// only at presentation time.
type Money = decimal.Decimal

// MoneyFromFloat converts a backend-provided float price.
func MoneyFromFloat(value float64) Money {
	return decimal.NewFromFloat(value)
}

// DisplayAmount renders the amount with the two-decimal convention.
func DisplayAmount(amount Money) string {
	return amount.StringFixed(2)
}
