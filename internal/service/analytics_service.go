package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/models"
	"backoffice/internal/redisclient"
	"backoffice/internal/store"
	"backoffice/internal/util"

	"go.uber.org/zap"
)

const overviewCacheKey = "analytics:overview"

// AnalyticsService assembles the dashboard overview from the
// reporting views and fronts it with a Redis cache. All aggregation
// lives in the view definitions; this layer only reads and caches.
type AnalyticsService struct {
	store    *store.Store
	redis    *redisclient.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAnalyticsService creates a new analytics service. redis may be
// nil, in which case every read goes to the database.
func NewAnalyticsService(store *store.Store, redis *redisclient.Client, cacheTTL time.Duration) *AnalyticsService {
	return &AnalyticsService{
		store:    store,
		redis:    redis,
		cacheTTL: cacheTTL,
		logger:   util.GetLogger(),
	}
}

// Overview returns the cached dashboard overview, loading it from
// the reporting views on a miss
func (s *AnalyticsService) Overview(ctx context.Context) (*models.Overview, error) {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.Overview")
	defer span.End()

	if s.redis != nil {
		var cached models.Overview
		err := s.redis.GetJSON(ctx, overviewCacheKey, &cached)
		if err == nil {
			util.AnalyticsCacheHits.Inc()
			return &cached, nil
		}
		if !errors.Is(err, redisclient.ErrCacheMiss) {
			s.logger.Warn("Analytics cache read failed, falling back to DB", zap.Error(err))
		}
		util.AnalyticsCacheMisses.Inc()
	}

	overview, err := s.loadOverview(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		// After a miss only one loader repopulates the cache, the rest
		// serve their freshly loaded copy without writing.
		if locked, lockErr := s.redis.AcquireLock(ctx, overviewCacheKey, 10*time.Second); lockErr == nil && locked {
			if err := s.redis.SetJSON(ctx, overviewCacheKey, overview, s.cacheTTL); err != nil {
				s.logger.Warn("Failed to cache analytics overview", zap.Error(err))
			}
			if err := s.redis.ReleaseLock(ctx, overviewCacheKey); err != nil {
				s.logger.Warn("Failed to release analytics cache lock", zap.Error(err))
			}
		}
	}

	return overview, nil
}

// InvalidateOverview drops the cached overview
func (s *AnalyticsService) InvalidateOverview(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Invalidate(ctx, overviewCacheKey)
}

func (s *AnalyticsService) loadOverview(ctx context.Context) (*models.Overview, error) {
	overview := &models.Overview{}
	var err error

	if overview.TopProducts, err = s.store.TopSellingProducts(ctx, 5); err != nil {
		return nil, fmt.Errorf("top products query failed: %w", err)
	}
	if overview.RevenueByType, err = s.store.RevenueByType(ctx); err != nil {
		return nil, fmt.Errorf("revenue by type query failed: %w", err)
	}
	if overview.SalesPerMonth, err = s.store.SalesPerMonth(ctx); err != nil {
		return nil, fmt.Errorf("sales per month query failed: %w", err)
	}
	if overview.DailySales, err = s.store.DailySalesCurrentMonth(ctx); err != nil {
		return nil, fmt.Errorf("daily sales query failed: %w", err)
	}
	if overview.MonthlyGrowth, err = s.store.MonthlyGrowth(ctx); err != nil {
		return nil, fmt.Errorf("monthly growth query failed: %w", err)
	}
	if overview.TopCustomers, err = s.store.TopCustomers(ctx, 5); err != nil {
		return nil, fmt.Errorf("top customers query failed: %w", err)
	}

	return overview, nil
}
