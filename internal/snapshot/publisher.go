// Package snapshot owns the authoritative in-memory view read by display
// collaborators. It only re-reads already-persisted data; it never triggers
// a venue fetch, so display cadence is decoupled from collection cost and
// rate-limit risk.
package snapshot

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/paulo-zhang/AccountMonitor/internal/metrics"
	"github.com/paulo-zhang/AccountMonitor/internal/model"
	"github.com/paulo-zhang/AccountMonitor/internal/store"
)

// Publisher exposes the latest computed series and returns per account.
// Written by refreshes, read-only for consumers.
type Publisher struct {
	store      *store.Store
	configured []string
	interval   time.Duration

	mu        sync.RWMutex
	snapshots map[string]model.Snapshot
}

// New creates a Publisher for the configured accounts.
func New(st *store.Store, accounts []model.Account, interval time.Duration) *Publisher {
	names := make([]string, len(accounts))
	for i, a := range accounts {
		names[i] = a.Name
	}
	return &Publisher{
		store:      st,
		configured: names,
		interval:   interval,
		snapshots:  make(map[string]model.Snapshot),
	}
}

// Run refreshes all accounts on the configured cadence until ctx is
// cancelled. The first refresh happens immediately so history from prior
// runs is visible without waiting a full interval.
func (p *Publisher) Run(ctx context.Context) {
	p.RefreshAll()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] snapshot publisher stopped")
			return
		case <-ticker.C:
			p.RefreshAll()
		}
	}
}

// RefreshAll re-reads every known account's persisted history.
func (p *Publisher) RefreshAll() {
	for _, name := range p.knownAccounts() {
		p.RefreshAccount(name)
	}
}

// RefreshAccount rebuilds one account's snapshot from the store. Other
// accounts' snapshots are untouched.
func (p *Publisher) RefreshAccount(account string) {
	samples, err := p.store.ReadAll(account)
	if err != nil {
		log.Printf("[WARN] refresh %s: %v", account, err)
		return
	}
	first, err := p.store.ReadFirst(account)
	if err != nil {
		log.Printf("[WARN] refresh %s: read baseline: %v", account, err)
		return
	}

	series := make([]model.Point, len(samples))
	for i, s := range samples {
		series[i] = model.Point{Time: s.Time, Value: s.Value}
	}
	var latest *model.Sample
	if len(samples) > 0 {
		latest = &samples[len(samples)-1]
	}

	snap := model.Snapshot{
		Account: account,
		Series:  series,
		Returns: metrics.Compute(account, first, latest),
	}

	p.mu.Lock()
	p.snapshots[account] = snap
	p.mu.Unlock()
}

// GetSnapshot returns a copy of the account's latest snapshot. The series
// is copied so callers cannot alias the published view.
func (p *Publisher) GetSnapshot(account string) (model.Snapshot, bool) {
	p.mu.RLock()
	snap, ok := p.snapshots[account]
	p.mu.RUnlock()
	if !ok {
		return model.Snapshot{}, false
	}
	series := make([]model.Point, len(snap.Series))
	copy(series, snap.Series)
	snap.Series = series
	return snap, true
}

// ListAccounts returns every account the publisher tracks.
func (p *Publisher) ListAccounts() []string {
	return p.knownAccounts()
}

// knownAccounts is the configured set plus any account already present in
// durable history, so charts keep showing accounts removed from config.
func (p *Publisher) knownAccounts() []string {
	names := append([]string(nil), p.configured...)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	stored, err := p.store.Accounts()
	if err != nil {
		log.Printf("[WARN] list stored accounts: %v", err)
		return names
	}
	for _, n := range stored {
		if !seen[n] {
			names = append(names, n)
		}
	}
	return names
}
