package holiday

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CompositeProvider implements Provider with fallback strategy
// Primary: PostgresProvider
// Fallback: FileProvider
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

// Holidays tries the primary provider and falls back on error
func (cp *CompositeProvider) Holidays(ctx context.Context, from, to time.Time, region Location) ([]Holiday, error) {
	holidays, err := cp.primary.Holidays(ctx, from, to, region)
	if err == nil {
		return holidays, nil
	}

	cp.logger.Warn("Primary holiday provider failed, falling back",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Error(err))

	return cp.fallback.Holidays(ctx, from, to, region)
}
