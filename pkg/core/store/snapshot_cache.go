package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"stock_analyzer/pkg/core/snapshot"
)

// =============================================================================
// SNAPSHOT CACHE - Hybrid Vault: DB (Primary) + File System (Fallback/Local)
// =============================================================================

// DefaultTTL bounds how long a cached fetch stays valid. Quotes go stale
// fast; statement tables do not, but the whole bundle is cached as one unit.
const DefaultTTL = 5 * time.Minute

// SnapshotCache stores fetched snapshots keyed by symbol.
// If pool is nil, it falls back to a file-based cache in the given
// directory. An empty dir with a nil pool defaults to .cache/snapshots.
type SnapshotCache struct {
	pool    *pgxpool.Pool
	fileDir string
	ttl     time.Duration
}

// NewSnapshotCache creates a cache with the default TTL.
func NewSnapshotCache(pool *pgxpool.Pool, dir string) *SnapshotCache {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "snapshots")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check SnapshotCache dir: %v\n", err)
		}
	}
	return &SnapshotCache{pool: pool, fileDir: dir, ttl: DefaultTTL}
}

// WithTTL overrides the freshness window.
func (c *SnapshotCache) WithTTL(ttl time.Duration) *SnapshotCache {
	c.ttl = ttl
	return c
}

// CacheEntry wraps one cached fetch.
type CacheEntry struct {
	ID        string                      `json:"id"`
	Symbol    string                      `json:"symbol"`
	Snapshot  *snapshot.FinancialSnapshot `json:"snapshot"`
	History   []snapshot.Bar              `json:"history"`
	FetchedAt time.Time                   `json:"fetched_at"`
}

// Get retrieves a fresh cached snapshot for the symbol, or nil on a miss.
// Stale entries count as misses.
func (c *SnapshotCache) Get(ctx context.Context, symbol string) (*CacheEntry, error) {
	if c.pool != nil {
		query := `
			SELECT id, data, fetched_at
			FROM symbol_snapshots
			WHERE symbol = $1
			ORDER BY fetched_at DESC
			LIMIT 1
		`
		var (
			id        string
			dataJSON  []byte
			fetchedAt time.Time
		)
		err := c.pool.QueryRow(ctx, query, symbol).Scan(&id, &dataJSON, &fetchedAt)
		if err != nil {
			return nil, nil // Cache miss
		}
		if time.Since(fetchedAt) > c.ttl {
			return nil, nil
		}
		var entry CacheEntry
		if err := json.Unmarshal(dataJSON, &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal db cached snapshot: %w", err)
		}
		entry.ID = id
		entry.FetchedAt = fetchedAt
		entry.Snapshot.Normalize()
		return &entry, nil
	}

	if c.fileDir != "" {
		return c.loadFromFile(c.symbolPath(symbol))
	}

	return nil, nil
}

// Save stores a fetched snapshot under its symbol. DB writes upsert on
// symbol; the file copy is written whenever a directory is configured.
func (c *SnapshotCache) Save(ctx context.Context, snap *snapshot.FinancialSnapshot, history []snapshot.Bar) error {
	if snap == nil || snap.Symbol == "" {
		return fmt.Errorf("cannot cache a snapshot without a symbol")
	}

	entry := CacheEntry{
		ID:        uuid.New().String(),
		Symbol:    snap.Symbol,
		Snapshot:  snap,
		History:   history,
		FetchedAt: time.Now(),
	}

	dataJSON, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if c.pool != nil {
		query := `
			INSERT INTO symbol_snapshots (id, symbol, data, fetched_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (symbol)
			DO UPDATE SET
				data = EXCLUDED.data,
				fetched_at = EXCLUDED.fetched_at
		`
		if _, err := c.pool.Exec(ctx, query, entry.ID, entry.Symbol, dataJSON, entry.FetchedAt); err != nil {
			return fmt.Errorf("failed to save to db cache: %w", err)
		}
	}

	if c.fileDir != "" {
		if err := os.WriteFile(c.symbolPath(entry.Symbol), dataJSON, 0644); err != nil {
			return fmt.Errorf("failed to save to file cache: %w", err)
		}
	}

	return nil
}

// Exists reports whether a fresh entry is cached for the symbol.
func (c *SnapshotCache) Exists(ctx context.Context, symbol string) bool {
	entry, err := c.Get(ctx, symbol)
	return err == nil && entry != nil
}

func (c *SnapshotCache) symbolPath(symbol string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(symbol)
	return filepath.Join(c.fileDir, safe+".json")
}

func (c *SnapshotCache) loadFromFile(path string) (*CacheEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil // Not found
	}
	var entry CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal file cached snapshot: %w", err)
	}
	if time.Since(entry.FetchedAt) > c.ttl {
		return nil, nil
	}
	entry.Snapshot.Normalize()
	return &entry, nil
}
