package curriculum

import (
	"context"

	"go.uber.org/zap"
)

// CompositeProvider reads tracks from primary and falls back on error
type CompositeProvider struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewCompositeProvider creates a new CompositeProvider
func NewCompositeProvider(primary, fallback Provider, logger *zap.Logger) *CompositeProvider {
	return &CompositeProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// TracksForCohort tries the primary provider first. An empty result from
// the primary also falls through, so an unseeded database still serves
// the file tracks.
func (cp *CompositeProvider) TracksForCohort(ctx context.Context, cohortID string) ([]Track, error) {
	tracks, err := cp.primary.TracksForCohort(ctx, cohortID)
	if err == nil && len(tracks) > 0 {
		return tracks, nil
	}

	if err != nil {
		cp.logger.Warn("Primary track provider failed, falling back",
			zap.String("cohort", cohortID),
			zap.Error(err))
	} else {
		cp.logger.Info("Primary track provider has no tracks, falling back",
			zap.String("cohort", cohortID))
	}

	return cp.fallback.TracksForCohort(ctx, cohortID)
}
