package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/username/apprentice-calendar/internal/cache"
	"github.com/username/apprentice-calendar/internal/config"
	"github.com/username/apprentice-calendar/internal/curriculum"
	"github.com/username/apprentice-calendar/internal/database"
	"github.com/username/apprentice-calendar/internal/generator"
	"github.com/username/apprentice-calendar/internal/holiday"
	"github.com/username/apprentice-calendar/internal/roster"
)

// app wires the configured reference data sources
type app struct {
	cfg       *config.Config
	holidays  holiday.Provider
	tracks    curriculum.Provider
	generator *generator.Generator
	logger    *zap.Logger

	holidayCache *holiday.CachedProvider
	trackCache   *curriculum.CachedProvider

	closers []func()
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{
		cfg:       cfg,
		generator: generator.New(cfg.Policy, logger),
		logger:    logger,
	}

	// 1. Reference data sources
	switch cfg.Data.Source {
	case "postgres":
		pool, err := database.Connect(ctx, cfg.Data.PostgresDSN, logger)
		if err != nil {
			if !cfg.Data.FallbackToFile {
				return nil, err
			}
			logger.Warn("Postgres unavailable, using files", zap.Error(err))
			if err := a.useFiles(logger); err != nil {
				return nil, err
			}
			break
		}
		a.closers = append(a.closers, pool.Close)

		a.holidays = holiday.NewPostgresProvider(pool, logger)
		a.tracks = curriculum.NewPostgresProvider(pool, logger)

		if cfg.Data.FallbackToFile {
			fileHolidays, fileTracks, err := loadFiles(cfg.Data, logger)
			if err != nil {
				return nil, err
			}
			a.holidays = holiday.NewCompositeProvider(a.holidays, fileHolidays, logger)
			a.tracks = curriculum.NewCompositeProvider(a.tracks, fileTracks, logger)
		}
	default:
		if err := a.useFiles(logger); err != nil {
			return nil, err
		}
	}

	// 2. Cache
	var store cache.Store
	switch cfg.Cache.Backend {
	case "redis":
		rs, err := cache.NewRedisStore(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPass,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rs.Close() })
		store = rs
	case "memory":
		store = cache.NewMemoryStore()
	}

	if store != nil {
		ttl := cfg.Cache.GetTTL()
		a.holidayCache = holiday.NewCachedProvider(a.holidays, store, ttl, logger)
		a.trackCache = curriculum.NewCachedProvider(a.tracks, store, ttl, logger)
		a.holidays = a.holidayCache
		a.tracks = a.trackCache
	}

	logger.Info("Reference data configured",
		zap.String("source", cfg.Data.Source),
		zap.String("cache", cfg.Cache.Backend))

	return a, nil
}

func (a *app) useFiles(logger *zap.Logger) error {
	h, t, err := loadFiles(a.cfg.Data, logger)
	if err != nil {
		return err
	}
	a.holidays = h
	a.tracks = t
	return nil
}

func loadFiles(data config.DataConfig, logger *zap.Logger) (*holiday.FileProvider, *curriculum.FileProvider, error) {
	h := holiday.NewFileProvider(data.HolidaysFile, logger)
	if err := h.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	t := curriculum.NewFileProvider(data.TracksFile, logger)
	if err := t.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load tracks: %w", err)
	}
	return h, t, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// roster loads the students file
func (a *app) roster() (*roster.Roster, error) {
	return roster.Load(a.cfg.Data.StudentsFile, a.logger)
}

// reference fetches the holidays and tracks one student's calendar needs
func (a *app) reference(ctx context.Context, s roster.Student, from, to time.Time) (generator.Reference, error) {
	holidays, err := a.holidays.Holidays(ctx, from, to, s.HolidayLocation())
	if err != nil {
		return generator.Reference{}, fmt.Errorf("failed to get holidays: %w", err)
	}
	if holidays == nil {
		holidays = []holiday.Holiday{}
	}

	tracks, err := a.tracks.TracksForCohort(ctx, s.CohortID)
	if err != nil {
		return generator.Reference{}, fmt.Errorf("failed to get tracks: %w", err)
	}
	if tracks == nil {
		tracks = []curriculum.Track{}
	}

	return generator.Reference{Holidays: holidays, Tracks: tracks}, nil
}
