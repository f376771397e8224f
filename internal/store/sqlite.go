// Package store persists the balance time series as an append-only log in
// SQLite. Timestamps are stored as unix seconds (UTC), values as decimal
// strings; new columns may be added but existing columns never change
// meaning, so history written by old builds stays readable.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/paulo-zhang/AccountMonitor/internal/model"
)

// ErrPersistence marks a durable-write failure. Recoverable: the caller logs
// it and the sample is re-collected on a later tick.
var ErrPersistence = errors.New("persistence failure")

// Store is an append-only sample log backed by SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL keeps readers concurrent with the single writer; FULL sync means a
	// returned Append is on disk before the caller sees success.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=FULL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set synchronous mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sample store opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS samples (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			account   TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			value     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_account_ts ON samples(account, timestamp)`,
	}
	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

// Append durably persists one sample. Writes are serialized; a sample is
// either fully on disk or not written at all.
func (s *Store) Append(sample model.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO samples (account, timestamp, value) VALUES (?,?,?)`,
		sample.Account, sample.Time.UTC().Unix(), sample.Value.String(),
	)
	if err != nil {
		return fmt.Errorf("%w: append %s: %v", ErrPersistence, sample.Account, err)
	}
	return nil
}

// ReadAll returns the account's samples in ascending timestamp order,
// including rows written by prior process runs.
func (s *Store) ReadAll(account string) ([]model.Sample, error) {
	rows, err := s.db.Query(
		`SELECT timestamp, value FROM samples WHERE account = ? ORDER BY timestamp ASC, id ASC`,
		account,
	)
	if err != nil {
		return nil, fmt.Errorf("read samples for %s: %w", account, err)
	}
	defer rows.Close()

	var samples []model.Sample
	for rows.Next() {
		sample, err := scanSample(account, rows.Scan)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read samples for %s: %w", account, err)
	}
	return samples, nil
}

// ReadFirst returns the earliest sample, or nil when the account has no
// history. If older rows were rotated away externally, the earliest
// surviving row becomes the return baseline and elapsed time is measured
// from it, not from the true first observation.
func (s *Store) ReadFirst(account string) (*model.Sample, error) {
	row := s.db.QueryRow(
		`SELECT timestamp, value FROM samples WHERE account = ? ORDER BY timestamp ASC, id ASC LIMIT 1`,
		account,
	)
	sample, err := scanSample(account, row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

// Accounts lists the distinct accounts present in history.
func (s *Store) Accounts() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT account FROM samples ORDER BY account`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (s *Store) Close() error {
	log.Println("[INFO] closing sample store")
	return s.db.Close()
}

func scanSample(account string, scan func(...any) error) (model.Sample, error) {
	var (
		ts  int64
		val string
	)
	if err := scan(&ts, &val); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Sample{}, err
		}
		return model.Sample{}, fmt.Errorf("scan sample for %s: %w", account, err)
	}
	value, err := decimal.NewFromString(val)
	if err != nil {
		return model.Sample{}, fmt.Errorf("parse stored value %q: %w", val, err)
	}
	return model.Sample{Account: account, Time: time.Unix(ts, 0).UTC(), Value: value}, nil
}
