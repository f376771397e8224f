// Package venue wraps the capability the core consumes from a trading
// venue: one account's base-asset balance and the current price of a pair.
package venue

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrSourceUnavailable marks a network/auth failure reaching the venue.
	// Recoverable: the account is retried on the next scheduled tick.
	ErrSourceUnavailable = errors.New("venue source unavailable")

	// ErrRateLimited marks venue throttling. Recoverable like
	// ErrSourceUnavailable, but kept distinguishable so a backoff policy
	// can treat it differently.
	ErrRateLimited = errors.New("venue rate limited")
)

// Client fetches balance and price data for a single account. Calls are
// bounded by the caller's context; implementations do not retry — retry
// policy belongs to the scheduler.
type Client interface {
	BaseAssetBalance(ctx context.Context, asset string) (decimal.Decimal, error)
	PairPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	Name() string
}
