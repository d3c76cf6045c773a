package dashboard

import (
	"context"
	"database/sql"
	"time"

	"github.com/Harshdeep9881/hospitalos/pkg/interfaces"
	"github.com/Harshdeep9881/hospitalos/pkg/logger"
	"github.com/Harshdeep9881/hospitalos/pkg/monitoring"
	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

// Repository implements the DashboardRepository interface
type Repository struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewRepository creates a new dashboard repository
func NewRepository(db *sql.DB, log *logger.Logger) interfaces.DashboardRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// Summary aggregates the headline numbers in a single round trip. Available
// doctors is derived, never negative.
func (r *Repository) Summary(ctx context.Context) (*types.DashboardSummary, error) {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("dashboard_summary", time.Since(start)) }()

	query := `
		SELECT
			(SELECT COUNT(*) FROM appointments WHERE appointment_date = CURRENT_DATE) AS todays_appointments,
			(SELECT COUNT(*) FROM appointments WHERE appointment_date = CURRENT_DATE - 1) AS yesterdays_appointments,
			(SELECT COUNT(*) FROM doctors) AS total_doctors,
			(SELECT COUNT(DISTINCT doctor_id) FROM appointments WHERE appointment_date = CURRENT_DATE) AS scheduled_doctors`

	summary := &types.DashboardSummary{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&summary.TodaysAppointments,
		&summary.YesterdaysAppointments,
		&summary.TotalDoctors,
		&summary.ScheduledDoctors,
	)
	if err != nil {
		r.logger.WithError(err).Error("Failed to aggregate dashboard summary")
		return nil, types.NewStoreError("unable to fetch dashboard summary", err)
	}

	summary.AvailableDoctors = summary.TotalDoctors - summary.ScheduledDoctors
	if summary.AvailableDoctors < 0 {
		summary.AvailableDoctors = 0
	}

	return summary, nil
}
