// Package convert turns raw asset amounts and price quotes into values
// denominated in the pair's quote asset.
package convert

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuote marks a data integrity fault from upstream: a negative
// amount or non-positive price must never produce a persisted sample.
var ErrInvalidQuote = errors.New("invalid quote")

// Value returns amount*price. Pure; the product is exact decimal arithmetic.
func Value(amount, price decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative amount %s", ErrInvalidQuote, amount)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive price %s", ErrInvalidQuote, price)
	}
	return amount.Mul(price), nil
}
