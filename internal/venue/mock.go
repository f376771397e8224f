package venue

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Mock returns controllable fixed data for development and testing.
type Mock struct {
	Balance    decimal.Decimal
	Price      decimal.Decimal
	BalanceErr error
	PriceErr   error
	Delay      time.Duration // per-call latency, honours ctx cancellation
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) BaseAssetBalance(ctx context.Context, _ string) (decimal.Decimal, error) {
	if err := m.wait(ctx); err != nil {
		return decimal.Zero, err
	}
	if m.BalanceErr != nil {
		return decimal.Zero, m.BalanceErr
	}
	return m.Balance, nil
}

func (m *Mock) PairPrice(ctx context.Context, _ string) (decimal.Decimal, error) {
	if err := m.wait(ctx); err != nil {
		return decimal.Zero, err
	}
	if m.PriceErr != nil {
		return decimal.Zero, m.PriceErr
	}
	return m.Price, nil
}

func (m *Mock) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, ctx.Err())
	case <-time.After(m.Delay):
		return nil
	}
}
