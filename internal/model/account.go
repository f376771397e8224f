package model

// Account identifies one monitored venue account. Credentials are opaque to
// the core and consumed only by the venue adapter. Immutable after config load.
type Account struct {
	Name      string
	APIKey    string
	SecretKey string
}

// TradingPair is the single pair monitored by a process instance, shared
// read-only by all accounts.
type TradingPair struct {
	BaseAsset  string
	QuoteAsset string
}

// Symbol returns the venue symbol for the pair, e.g. "USDCUSDT".
func (p TradingPair) Symbol() string { return p.BaseAsset + p.QuoteAsset }
