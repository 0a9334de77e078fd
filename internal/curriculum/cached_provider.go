package curriculum

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/username/apprentice-calendar/internal/cache"
)

// CachedProvider memoizes another Provider's tracks per cohort
type CachedProvider struct {
	inner  Provider
	store  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProvider wraps inner with a TTL cache
func NewCachedProvider(inner Provider, store cache.Store, ttl time.Duration, logger *zap.Logger) *CachedProvider {
	return &CachedProvider{
		inner:  inner,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// TracksForCohort returns the cached tracks when present
func (cp *CachedProvider) TracksForCohort(ctx context.Context, cohortID string) ([]Track, error) {
	key := cache.TracksKey(cohortID)

	var cached []Track
	err := cache.GetJSON(ctx, cp.store, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		cp.logger.Warn("Track cache read failed", zap.String("key", key), zap.Error(err))
	}

	tracks, err := cp.inner.TracksForCohort(ctx, cohortID)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, cp.store, key, tracks, cp.ttl); err != nil {
		cp.logger.Warn("Track cache write failed", zap.String("key", key), zap.Error(err))
	}

	return tracks, nil
}

// Invalidate drops the cached tracks of one cohort, or of all cohorts
// when cohortID is empty.
func (cp *CachedProvider) Invalidate(ctx context.Context, cohortID string) error {
	if cohortID == "" {
		return cp.store.DeletePrefix(ctx, cache.PrefixTracks)
	}
	return cp.store.DeletePrefix(ctx, cache.TracksKey(cohortID))
}
