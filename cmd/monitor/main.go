package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/paulo-zhang/AccountMonitor/internal/config"
	"github.com/paulo-zhang/AccountMonitor/internal/monitor"
	"github.com/paulo-zhang/AccountMonitor/internal/snapshot"
	"github.com/paulo-zhang/AccountMonitor/internal/store"
	"github.com/paulo-zhang/AccountMonitor/internal/venue"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] AccountMonitor starting...")

	// .env is optional; deployments can rely on the config file alone.
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Open sample store
	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] open sample store: %v", err)
	}
	defer st.Close()

	// One venue client per account
	runners := make([]monitor.Runner, 0, len(cfg.Accounts))
	for _, acct := range cfg.AccountList() {
		var client venue.Client
		if os.Getenv("VENUE") == "mock" {
			client = &venue.Mock{Balance: decimal.NewFromInt(1), Price: decimal.NewFromInt(1)}
		} else {
			client = venue.NewBinanceClient(acct)
		}
		runners = append(runners, monitor.Runner{Account: acct, Client: client})
	}
	log.Printf("[INFO] monitoring %d account(s) on %s via %s",
		len(runners), cfg.TradingPair().Symbol(), runners[0].Client.Name())

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Snapshot publisher on its own refresh cadence
	pub := snapshot.New(st, cfg.AccountList(), cfg.RefreshInterval())
	go pub.Run(ctx)

	// Collection scheduler
	mon := monitor.New(ctx, runners, cfg.TradingPair(), st, pub, cfg.CollectionInterval())
	if err := mon.Register(); err != nil {
		log.Fatalf("[FATAL] register collection tick: %v", err)
	}
	mon.Start()
	defer mon.Stop()

	// Optional: collect immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, collecting now")
		go mon.RunNow()
	}

	log.Println("[INFO] AccountMonitor is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] AccountMonitor stopped")
}
