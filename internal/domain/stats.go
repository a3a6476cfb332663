package domain

import (
	"context"
	"time"
)

// DailyStat is one row of the admin dashboard's daily rollup.
type DailyStat struct {
	Day         time.Time `json:"day"`
	PageViews   int64     `json:"page_views"`
	OrdersCount int64     `json:"orders_count"`
	Revenue     float64   `json:"revenue"`
}

type StatsRepository interface {
	// BumpDay upserts the day's row, adding the deltas to whatever is
	// already there.
	BumpDay(ctx context.Context, day time.Time, pageViews, orders int64, revenue float64) error
	FetchRange(ctx context.Context, from, to time.Time) ([]DailyStat, error)
}

type AnalyticsUsecase interface {
	// TrackPageView counts a view; a missing redis backend degrades
	// to a no-op rather than failing the request.
	TrackPageView(ctx context.Context, path string) error
	// RecordOrder bumps the day's order count and revenue.
	RecordOrder(ctx context.Context, total float64) error
	// FlushPageViews drains redis counters into daily_stats.
	FlushPageViews(ctx context.Context) error
	GetStats(ctx context.Context, from, to time.Time) ([]DailyStat, error)
}
