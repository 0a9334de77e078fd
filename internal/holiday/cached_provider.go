package holiday

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/username/apprentice-calendar/internal/cache"
)

// CachedProvider memoizes another Provider's answers in a cache.Store
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

// Holidays returns the cached list when present, otherwise asks the inner provider
func (cp *CachedProvider) Holidays(ctx context.Context, from, to time.Time, region Location) ([]Holiday, error) {
	key := cache.HolidaysKey(from, to, region.City, region.State)

	var cached []Holiday
	err := cache.GetJSON(ctx, cp.store, key, &cached)
	if err == nil {
		cp.logger.Debug("Using cached holidays", zap.String("key", key))
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		cp.logger.Warn("Holiday cache read failed", zap.String("key", key), zap.Error(err))
	}

	holidays, err := cp.inner.Holidays(ctx, from, to, region)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, cp.store, key, holidays, cp.ttl); err != nil {
		cp.logger.Warn("Holiday cache write failed", zap.String("key", key), zap.Error(err))
	}

	return holidays, nil
}

// Invalidate drops every cached holiday list. Call it after the holiday
// table or file changes.
func (cp *CachedProvider) Invalidate(ctx context.Context) error {
	return cp.store.DeletePrefix(ctx, cache.PrefixHolidays)
}
