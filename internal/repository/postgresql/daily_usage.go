package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
	"github.com/fleetops/attendance-backend-go/internal/pkg/database"
)

type dailyUsageRepository struct {
	db *database.DB
}

func NewDailyUsageRepository(db *database.DB) attendance.UsageRepository {
	return &dailyUsageRepository{db: db}
}

// GetDay implements attendance.UsageRepository.
func (r *dailyUsageRepository) GetDay(ctx context.Context, date time.Time) ([]attendance.UsageRow, error) {
	query := `
		SELECT asset_label, driver, company, job_site, raw_date,
			   time_start, time_stop, duration, status
		FROM daily_usage_rows
		WHERE date = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage rows: %w", err)
	}
	defer rows.Close()

	var result []attendance.UsageRow
	for rows.Next() {
		var row attendance.UsageRow
		if err := rows.Scan(
			&row.AssetLabel, &row.Driver, &row.Company, &row.JobSite, &row.Date,
			&row.TimeStart, &row.TimeStop, &row.Duration, &row.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read usage rows: %w", err)
	}

	return result, nil
}

// StoreDay implements attendance.UsageRepository. The day's rows are
// replaced wholesale; re-importing the same export is idempotent.
func (r *dailyUsageRepository) StoreDay(ctx context.Context, date time.Time, usageRows []attendance.UsageRow) (int, error) {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM daily_usage_rows WHERE date = $1`, date); err != nil {
		return 0, fmt.Errorf("failed to clear existing rows: %w", err)
	}

	query := `
		INSERT INTO daily_usage_rows (
			date, asset_label, driver, company, job_site, raw_date,
			time_start, time_stop, duration, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	stored := 0
	for _, row := range usageRows {
		if _, err := tx.Exec(ctx, query,
			date, row.AssetLabel, row.Driver, row.Company, row.JobSite, row.Date,
			row.TimeStart, row.TimeStop, row.Duration, row.Status,
		); err != nil {
			return 0, fmt.Errorf("failed to insert usage row: %w", err)
		}
		stored++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit usage rows: %w", err)
	}

	return stored, nil
}

// ListDates implements attendance.UsageRepository.
func (r *dailyUsageRepository) ListDates(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	query := `
		SELECT DISTINCT date
		FROM daily_usage_rows
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`

	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query recorded dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recorded dates: %w", err)
	}

	return dates, nil
}
