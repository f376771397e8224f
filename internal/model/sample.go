package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sample is one timestamped observation of an account's holdings, valued in
// the pair's quote asset. Immutable once written; samples for an account are
// totally ordered by time.
type Sample struct {
	Account string
	Time    time.Time
	Value   decimal.Decimal
}
