package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fleetops/attendance-backend-go/internal/domain/attendance"
	"github.com/fleetops/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) attendance.ReportRepository {
	return &reportRepository{db: db}
}

// SaveDailyReport implements attendance.ReportRepository. One report per
// date; regenerating replaces the stored document.
func (r *reportRepository) SaveDailyReport(ctx context.Context, report attendance.DailyReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal daily report: %w", err)
	}

	query := `
		INSERT INTO daily_reports (date, report, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (date) DO UPDATE
		SET report = EXCLUDED.report, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, report.Date, payload); err != nil {
		return fmt.Errorf("failed to save daily report: %w", err)
	}

	return nil
}

// GetDailyReport implements attendance.ReportRepository.
func (r *reportRepository) GetDailyReport(ctx context.Context, date string) (attendance.DailyReport, error) {
	raw, err := r.GetDailyReportRaw(ctx, date)
	if err != nil {
		return attendance.DailyReport{}, err
	}

	var report attendance.DailyReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return attendance.DailyReport{}, fmt.Errorf("failed to unmarshal daily report: %w", err)
	}

	return report, nil
}

// GetDailyReportRaw implements attendance.ReportRepository.
func (r *reportRepository) GetDailyReportRaw(ctx context.Context, date string) ([]byte, error) {
	query := `SELECT report FROM daily_reports WHERE date = $1`

	var raw []byte
	err := r.db.QueryRow(ctx, query, date).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get daily report: %w", err)
	}

	return raw, nil
}
