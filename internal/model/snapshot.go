package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnMetric holds an account's derived returns, anchored at its first
// recorded sample. Available is false when no baseline exists, no time has
// elapsed, or the baseline value is zero; both returns are then undefined
// and consumers must report "not available" rather than zero.
type ReturnMetric struct {
	Account    string
	AsOf       time.Time
	Actual     float64 // fractional change from baseline to latest
	Annualized float64 // baseline-to-latest change compounded to one year
	Available  bool
}

// Point is one entry of a published time series.
type Point struct {
	Time  time.Time
	Value decimal.Decimal
}

// Snapshot is the read-only view handed to display collaborators.
type Snapshot struct {
	Account string
	Series  []Point
	Returns ReturnMetric
}
