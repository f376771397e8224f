// Package monitor drives periodic balance collection across all configured
// accounts. It is the sole writer to the sample store.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/paulo-zhang/AccountMonitor/internal/convert"
	"github.com/paulo-zhang/AccountMonitor/internal/model"
	"github.com/paulo-zhang/AccountMonitor/internal/snapshot"
	"github.com/paulo-zhang/AccountMonitor/internal/store"
	"github.com/paulo-zhang/AccountMonitor/internal/venue"
)

const defaultCallTimeout = 30 * time.Second

// Runner pairs an account with the venue client built from its credentials.
type Runner struct {
	Account model.Account
	Client  venue.Client
}

// Monitor samples every account's balance on a fixed wall-clock interval.
type Monitor struct {
	cron      *cron.Cron
	runners   []Runner
	pair      model.TradingPair
	store     *store.Store
	publisher *snapshot.Publisher
	interval  time.Duration

	callTimeout time.Duration

	mu       sync.Mutex
	inFlight map[string]bool

	ctx context.Context
}

// New creates a Monitor. ctx bounds all venue calls and is the shutdown
// signal for in-flight pipelines.
func New(ctx context.Context, runners []Runner, pair model.TradingPair, st *store.Store, pub *snapshot.Publisher, interval time.Duration) *Monitor {
	return &Monitor{
		cron:        cron.New(),
		runners:     runners,
		pair:        pair,
		store:       st,
		publisher:   pub,
		interval:    interval,
		callTimeout: defaultCallTimeout,
		inFlight:    make(map[string]bool),
		ctx:         ctx,
	}
}

// Register installs the collection tick on the cron schedule.
func (m *Monitor) Register() error {
	spec := fmt.Sprintf("@every %s", m.interval)
	if _, err := m.cron.AddFunc(spec, m.tick); err != nil {
		return fmt.Errorf("register collection tick: %w", err)
	}
	return nil
}

// Start starts the collection schedule.
func (m *Monitor) Start() {
	m.cron.Start()
	log.Printf("[INFO] monitor started, sampling every %s", m.interval)
}

// Stop stops the schedule and waits for in-flight pipelines to finish, so
// no append is cut off mid-write.
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
	log.Println("[INFO] monitor stopped")
}

// RunNow executes one collection tick immediately (manual trigger /
// RUN_ON_START).
func (m *Monitor) RunNow() {
	m.tick()
}

// tick runs every account's pipeline concurrently and returns when all have
// finished. Accounts are isolated: one account's failure never blocks
// another's sample. An account whose previous run is still in flight is
// skipped until the next tick.
func (m *Monitor) tick() {
	var wg sync.WaitGroup
	for _, r := range m.runners {
		if !m.begin(r.Account.Name) {
			log.Printf("[WARN] %s: previous collection still in flight, skipping tick", r.Account.Name)
			continue
		}
		wg.Add(1)
		go func(r Runner) {
			defer wg.Done()
			defer m.end(r.Account.Name)
			if err := m.collect(r); err != nil {
				if errors.Is(err, convert.ErrInvalidQuote) {
					// Data fault, not a wire fault: the sample is dropped.
					log.Printf("[ERROR] %s: sample dropped: %v", r.Account.Name, err)
				} else {
					log.Printf("[WARN] %s: collection skipped: %v", r.Account.Name, err)
				}
			}
		}(r)
	}
	wg.Wait()
}

// collect runs one account's fetch → convert → persist pass.
func (m *Monitor) collect(r Runner) error {
	bctx, cancel := context.WithTimeout(m.ctx, m.callTimeout)
	amount, err := r.Client.BaseAssetBalance(bctx, m.pair.BaseAsset)
	cancel()
	if err != nil {
		return fmt.Errorf("fetch balance: %w", err)
	}

	pctx, cancel := context.WithTimeout(m.ctx, m.callTimeout)
	price, err := r.Client.PairPrice(pctx, m.pair.Symbol())
	cancel()
	if err != nil {
		return fmt.Errorf("fetch price: %w", err)
	}

	value, err := convert.Value(amount, price)
	if err != nil {
		return err
	}

	sample := model.Sample{Account: r.Account.Name, Time: time.Now().UTC(), Value: value}
	if err := m.store.Append(sample); err != nil {
		return fmt.Errorf("append sample: %w", err)
	}

	log.Printf("[INFO] %s: %s %s @ %s = %s %s",
		r.Account.Name, amount, m.pair.BaseAsset, price, value, m.pair.QuoteAsset)

	// New sample landed: recompute this account's metrics only.
	m.publisher.RefreshAccount(r.Account.Name)
	return nil
}

func (m *Monitor) begin(account string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight[account] {
		return false
	}
	m.inFlight[account] = true
	return true
}

func (m *Monitor) end(account string) {
	m.mu.Lock()
	delete(m.inFlight, account)
	m.mu.Unlock()
}
