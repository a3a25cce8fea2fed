package entity

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places stored for every amount column.
const MoneyScale = 2

// IsWholeCents reports whether amount can be stored without rounding.
func IsWholeCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(MoneyScale))
}

// IsValidAmount reports whether amount is a positive value in whole cents.
func IsValidAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && IsWholeCents(amount)
}
