// Package cache stores reference-data snapshots (holiday lists, cohort
// tracks) behind a TTL key/value interface with in-memory and Redis
// backends.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCacheMiss is returned when the requested key is absent or expired.
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrCacheKeyEmpty is returned when an empty key is provided.
	ErrCacheKeyEmpty = errors.New("cache: key cannot be empty")
)

// Key prefixes for the two kinds of reference data.
const (
	PrefixHolidays = "holidays:"
	PrefixTracks   = "tracks:"
)

// Store is a TTL key/value store for serialized payloads.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// HolidaysKey builds the cache key for a holiday lookup by period and location.
func HolidaysKey(from, to time.Time, city, state string) string {
	return fmt.Sprintf("%s%s:%s:%s:%s", PrefixHolidays,
		from.Format("2006-01-02"), to.Format("2006-01-02"), city, state)
}

// TracksKey builds the cache key for a cohort's tracks.
func TracksKey(cohortID string) string {
	return PrefixTracks + cohortID
}

// GetJSON loads key and decodes it into dest.
func GetJSON(ctx context.Context, s Store, key string, dest interface{}) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data, ttl)
}
