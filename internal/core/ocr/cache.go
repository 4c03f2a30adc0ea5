package ocr

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const cacheSchema = `CREATE TABLE IF NOT EXISTS ocr_cache (
	image_hash TEXT PRIMARY KEY,
	provider   TEXT NOT NULL,
	text       TEXT NOT NULL,
	confidence REAL NOT NULL,
	created_at INTEGER NOT NULL
)`

// CachedProvider keeps OCR results in a local SQLite file keyed by the
// SHA-256 of the image, so re-importing the same photo only re-parses.
type CachedProvider struct {
	inner Provider
	db    *sql.DB
	now   func() time.Time
}

// NewCachedProvider opens (or creates) the cache at path. ":memory:" keeps
// the cache in process.
func NewCachedProvider(inner Provider, path string) (*CachedProvider, error) {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// One connection: an in-memory database is per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ocr_cache table: %w", err)
	}

	log.Info().Str("path", path).Str("provider", inner.GetProviderName()).Msg("💾 OCR cache ready")
	return &CachedProvider{inner: inner, db: db, now: time.Now}, nil
}

func (c *CachedProvider) GetProviderName() string {
	return c.inner.GetProviderName()
}

func (c *CachedProvider) ExtractText(ctx context.Context, imageData []byte) (*Result, error) {
	key := imageHash(imageData)

	var res Result
	err := c.db.QueryRowContext(ctx,
		`SELECT provider, text, confidence FROM ocr_cache WHERE image_hash = ?`, key,
	).Scan(&res.Provider, &res.Text, &res.Confidence)
	switch {
	case err == nil:
		res.Cached = true
		return &res, nil
	case !errors.Is(err, sql.ErrNoRows):
		log.Warn().Err(err).Msg("⚠️ OCR cache lookup failed, calling provider")
	}

	fresh, err := c.inner.ExtractText(ctx, imageData)
	if err != nil {
		return nil, err
	}
	if fresh.Provider == "" {
		fresh.Provider = c.inner.GetProviderName()
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO ocr_cache (image_hash, provider, text, confidence, created_at) VALUES (?, ?, ?, ?, ?)`,
		key, fresh.Provider, fresh.Text, fresh.Confidence, c.now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Failed to store OCR result in cache")
	}
	return fresh, nil
}

// Prune removes entries older than maxAge and returns how many were removed.
func (c *CachedProvider) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := c.now().Add(-maxAge).Unix()
	res, err := c.db.ExecContext(ctx, `DELETE FROM ocr_cache WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune ocr cache: %w", err)
	}
	return res.RowsAffected()
}

func (c *CachedProvider) Close() error {
	return c.db.Close()
}

func imageHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
