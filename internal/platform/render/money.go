package render

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats amount in currency with its symbol and grouping (e.g. "₺2,985.00").
// Unknown currency codes fall back to the plain amount followed by the code.
func Money(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0)
	return money.New(minor.IntPart(), currency).Display()
}

// MoneyFromFloat is Money for a provider price.
func MoneyFromFloat(amount float64, currency string) string {
	return Money(decimal.NewFromFloat(amount), currency)
}
