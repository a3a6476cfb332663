package postgres

import (
	"context"
	"time"

	"go-storefront-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type statsRepo struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) domain.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) BumpDay(ctx context.Context, day time.Time, pageViews, orders int64, revenue float64) error {
	query := `INSERT INTO daily_stats (day, page_views, orders_count, revenue)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (day) DO UPDATE SET
	            page_views = daily_stats.page_views + EXCLUDED.page_views,
	            orders_count = daily_stats.orders_count + EXCLUDED.orders_count,
	            revenue = daily_stats.revenue + EXCLUDED.revenue`
	_, err := r.db.Exec(ctx, query, day.Truncate(24*time.Hour), pageViews, orders, revenue)
	return err
}

func (r *statsRepo) FetchRange(ctx context.Context, from, to time.Time) ([]domain.DailyStat, error) {
	query := `SELECT day, page_views, orders_count, revenue FROM daily_stats
	          WHERE day >= $1 AND day <= $2 ORDER BY day`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.DailyStat
	for rows.Next() {
		var s domain.DailyStat
		if err := rows.Scan(&s.Day, &s.PageViews, &s.OrdersCount, &s.Revenue); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
