package venue

import (
	"context"
	"errors"
	"fmt"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/shopspring/decimal"

	"github.com/paulo-zhang/AccountMonitor/internal/model"
)

// BinanceClient implements Client for one account's Binance credentials.
type BinanceClient struct {
	client  *binance.Client
	account string
}

// NewBinanceClient creates a client bound to the account's API keys.
func NewBinanceClient(acct model.Account) *BinanceClient {
	return &BinanceClient{
		client:  binance.NewClient(acct.APIKey, acct.SecretKey),
		account: acct.Name,
	}
}

func (b *BinanceClient) Name() string { return "binance" }

// BaseAssetBalance returns the account's free+locked holdings of asset.
func (b *BinanceClient) BaseAssetBalance(ctx context.Context, asset string) (decimal.Decimal, error) {
	acct, err := b.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get account %s: %w", b.account, classify(err))
	}
	for _, bal := range acct.Balances {
		if bal.Asset != asset {
			continue
		}
		free, err := decimal.NewFromString(bal.Free)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse free balance %q: %w", bal.Free, ErrSourceUnavailable)
		}
		locked, err := decimal.NewFromString(bal.Locked)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse locked balance %q: %w", bal.Locked, ErrSourceUnavailable)
		}
		return free.Add(locked), nil
	}
	// The asset simply isn't held; a zero balance is a valid observation.
	return decimal.Zero, nil
}

// PairPrice returns the current ticker price for symbol, in quote units.
func (b *BinanceClient) PairPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := b.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list prices %s: %w", symbol, classify(err))
	}
	if len(prices) == 0 {
		return decimal.Zero, fmt.Errorf("no price data for %s: %w", symbol, ErrSourceUnavailable)
	}
	price, err := decimal.NewFromString(prices[0].Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", prices[0].Price, ErrSourceUnavailable)
	}
	return price, nil
}

// Binance error codes signalling throttling.
const (
	codeTooManyRequests = -1003
	codeTooManyOrders   = -1015
)

// classify maps a transport error onto the sentinel taxonomy.
func classify(err error) error {
	var api *common.APIError
	if errors.As(err, &api) {
		if api.Code == codeTooManyRequests || api.Code == codeTooManyOrders {
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
}
