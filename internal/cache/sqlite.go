package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockCharts/internal/model"
)

// SQLiteCache persists fetched daily history to a SQLite database, one row
// per symbol with its fetch time.
type SQLiteCache struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteCache opens (or creates) the SQLite database and runs migrations.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the web handlers can read while the refresh job writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &SQLiteCache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite cache opened: %s", dbPath)
	return c, nil
}

func (c *SQLiteCache) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS history_cache (
			symbol     TEXT PRIMARY KEY,
			fetched_at INTEGER NOT NULL,
			bars       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_fetched ON history_cache(fetched_at)`,
	}
	for _, s := range stmts {
		if _, err := c.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// Get returns the cached history for symbol if it was fetched within ttl.
func (c *SQLiteCache) Get(symbol string, ttl time.Duration) ([]model.OHLCV, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var fetchedAt int64
	var blob string
	err := c.db.QueryRow(
		`SELECT fetched_at, bars FROM history_cache WHERE symbol = ?`, symbol,
	).Scan(&fetchedAt, &blob)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("[WARN] cache read %s: %v", symbol, err)
		}
		return nil, false
	}
	if time.Since(time.Unix(fetchedAt, 0)) > ttl {
		return nil, false
	}

	var bars []model.OHLCV
	if err := json.Unmarshal([]byte(blob), &bars); err != nil {
		log.Printf("[WARN] cache decode %s: %v", symbol, err)
		return nil, false
	}
	return bars, true
}

// Put stores (or replaces) the history for symbol with the current time.
func (c *SQLiteCache) Put(symbol string, bars []model.OHLCV) error {
	blob, err := json.Marshal(bars)
	if err != nil {
		return fmt.Errorf("encode bars: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO history_cache (symbol, fetched_at, bars) VALUES (?,?,?)`,
		symbol, time.Now().Unix(), string(blob),
	)
	return err
}

// Prune deletes entries fetched longer than ttl ago and returns the count.
func (c *SQLiteCache) Prune(ttl time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-ttl).Unix()
	res, err := c.db.Exec(`DELETE FROM history_cache WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c *SQLiteCache) Close() error {
	log.Println("[INFO] closing sqlite cache")
	return c.db.Close()
}
