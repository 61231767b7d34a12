// Package repository holds the Postgres-backed geocode cache used by
// server deployments in place of the file cache.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/sassil1/petmap/internal/models"
)

// GeocodeCache implements the geocode store interface over PostgreSQL.
// Like every cache store it fails open: query and insert errors are logged
// and surface to the caller as a miss or a no-op, never as an error.
type GeocodeCache struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

// NewGeocodeCache creates a Postgres geocode cache over the given pool.
func NewGeocodeCache(db *pgxpool.Pool, logger zerolog.Logger) *GeocodeCache {
	return &GeocodeCache{db: db, logger: logger}
}

// Init creates the cache table if it does not exist.
func (c *GeocodeCache) Init(ctx context.Context) error {
	sql := `
		CREATE TABLE IF NOT EXISTS geocode_cache (
			address    TEXT PRIMARY KEY,
			latitude   DOUBLE PRECISION NOT NULL,
			longitude  DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	_, err := c.db.Exec(ctx, sql)
	return err
}

// Get returns the cached coordinate for address, if present. Lookup
// failures degrade to a cache miss.
func (c *GeocodeCache) Get(ctx context.Context, address string) (models.Coordinate, bool) {
	sql := `SELECT latitude, longitude FROM geocode_cache WHERE address = $1`

	var coord models.Coordinate
	err := c.db.QueryRow(ctx, sql, address).Scan(&coord.Latitude, &coord.Longitude)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			c.logger.Warn().Err(err).Str("address", address).Msg("Geocode cache read failed")
		}
		return models.Coordinate{}, false
	}
	return coord, true
}

// Put records a coordinate for address. ON CONFLICT DO NOTHING keeps the
// first stored value authoritative; insert failures degrade to a no-op.
func (c *GeocodeCache) Put(ctx context.Context, address string, coord models.Coordinate) {
	sql := `
		INSERT INTO geocode_cache (address, latitude, longitude)
		VALUES ($1, $2, $3)
		ON CONFLICT (address) DO NOTHING
	`
	if _, err := c.db.Exec(ctx, sql, address, coord.Latitude, coord.Longitude); err != nil {
		c.logger.Warn().Err(err).Str("address", address).Msg("Geocode cache write failed")
	}
}

// Len reports the number of cached entries, for startup logging.
func (c *GeocodeCache) Len(ctx context.Context) int {
	var n int
	if err := c.db.QueryRow(ctx, `SELECT count(*) FROM geocode_cache`).Scan(&n); err != nil {
		return 0
	}
	return n
}
