package venue

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/adshao/go-binance/v2/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRateLimit(t *testing.T) {
	t.Parallel()

	err := classify(&common.APIError{Code: codeTooManyRequests, Message: "slow down"})
	assert.ErrorIs(t, err, ErrRateLimited)

	err = classify(fmt.Errorf("request: %w", &common.APIError{Code: codeTooManyOrders}))
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestClassifyDefaultsToSourceUnavailable(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, classify(errors.New("connection refused")), ErrSourceUnavailable)
	// Non-throttling API errors are wire faults too, e.g. bad credentials.
	assert.ErrorIs(t, classify(&common.APIError{Code: -2015, Message: "invalid api-key"}), ErrSourceUnavailable)
}

func TestMockHonoursContext(t *testing.T) {
	t.Parallel()

	m := &Mock{Balance: decimal.NewFromInt(1), Price: decimal.NewFromInt(1), Delay: time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.BaseAssetBalance(ctx, "USDC")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestMockReturnsConfiguredData(t *testing.T) {
	t.Parallel()

	m := &Mock{Balance: decimal.RequireFromString("12.5"), Price: decimal.RequireFromString("0.9998")}

	bal, err := m.BaseAssetBalance(context.Background(), "USDC")
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.RequireFromString("12.5")))

	price, err := m.PairPrice(context.Background(), "USDCUSDT")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("0.9998")))
}
