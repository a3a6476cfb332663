package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"go-storefront-backend/internal/domain"
	"go-storefront-backend/pkg/redis"
)

const pageViewKeyPrefix = "pv:"

// pageViewTTL keeps stale counters from accumulating if a flush never
// runs for a given day.
const pageViewTTL = 72 * time.Hour

type analyticsUsecase struct {
	statsRepo domain.StatsRepository
}

func NewAnalyticsUsecase(statsRepo domain.StatsRepository) domain.AnalyticsUsecase {
	return &analyticsUsecase{statsRepo: statsRepo}
}

// TrackPageView counts a view in redis under a per-day key. Without a
// redis backend the call is a no-op: analytics never fails a request.
func (u *analyticsUsecase) TrackPageView(ctx context.Context, path string) error {
	rdb := redis.Client()
	if rdb == nil {
		return nil
	}
	key := pageViewKeyPrefix + time.Now().UTC().Format("2006-01-02")
	pipe := rdb.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, pageViewTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("failed to track page view", "path", path, "error", err)
	}
	return nil
}

func (u *analyticsUsecase) RecordOrder(ctx context.Context, total float64) error {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	return u.statsRepo.BumpDay(ctx, day, 0, 1, total)
}

// FlushPageViews drains today's and yesterday's redis counters into
// daily_stats. GETDEL makes the drain atomic so concurrent flushers
// never double-count.
func (u *analyticsUsecase) FlushPageViews(ctx context.Context) error {
	rdb := redis.Client()
	if rdb == nil {
		return nil
	}

	now := time.Now().UTC()
	for _, day := range []time.Time{now.Truncate(24 * time.Hour), now.Add(-24 * time.Hour).Truncate(24 * time.Hour)} {
		key := pageViewKeyPrefix + day.Format("2006-01-02")
		val, err := rdb.GetDel(ctx, key).Result()
		if err != nil {
			continue // missing key or redis hiccup; nothing to flush
		}
		views, err := strconv.ParseInt(val, 10, 64)
		if err != nil || views == 0 {
			continue
		}
		if err := u.statsRepo.BumpDay(ctx, day, views, 0, 0); err != nil {
			// Put the count back so the next flush picks it up.
			rdb.IncrBy(ctx, key, views)
			return err
		}
	}
	return nil
}

func (u *analyticsUsecase) GetStats(ctx context.Context, from, to time.Time) ([]domain.DailyStat, error) {
	return u.statsRepo.FetchRange(ctx, from, to)
}
