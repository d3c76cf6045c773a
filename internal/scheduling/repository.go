package scheduling

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Harshdeep9881/hospitalos/pkg/database"
	"github.com/Harshdeep9881/hospitalos/pkg/interfaces"
	"github.com/Harshdeep9881/hospitalos/pkg/logger"
	"github.com/Harshdeep9881/hospitalos/pkg/monitoring"
	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

// Repository implements the SchedulingRepository interface
type Repository struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewRepository creates a new scheduling repository
func NewRepository(db *sql.DB, log *logger.Logger) interfaces.SchedulingRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// ListAppointments returns all appointments joined with patient, doctor and
// department names. The department prefers the normalized departments row
// over the legacy free-text column on the doctor.
func (r *Repository) ListAppointments(ctx context.Context) ([]*types.AppointmentView, error) {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("list_appointments", time.Since(start)) }()

	query := `
		SELECT
			a.id,
			a.patient_id,
			a.doctor_id,
			p.name AS patient,
			d.name AS doctor,
			COALESCE(dep.name, d.department, '') AS department,
			to_char(a.appointment_date, 'YYYY-MM-DD') AS appointment_date,
			to_char(a.appointment_time, 'HH24:MI') AS appointment_time
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		JOIN doctors d ON a.doctor_id = d.id
		LEFT JOIN departments dep ON dep.id = d.department_id
		ORDER BY a.appointment_date DESC, a.appointment_time ASC, a.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("Failed to list appointments")
		return nil, types.NewStoreError("unable to fetch appointments", err)
	}
	defer rows.Close()

	var appointments []*types.AppointmentView
	for rows.Next() {
		view := &types.AppointmentView{}
		err := rows.Scan(
			&view.ID,
			&view.PatientID,
			&view.DoctorID,
			&view.Patient,
			&view.Doctor,
			&view.Department,
			&view.Date,
			&view.Time,
		)
		if err != nil {
			r.logger.WithError(err).Error("Failed to scan appointment row")
			return nil, types.NewStoreError("unable to fetch appointments", err)
		}
		appointments = append(appointments, view)
	}

	if err = rows.Err(); err != nil {
		return nil, types.NewStoreError("unable to fetch appointments", err)
	}

	return appointments, nil
}

// HasSlotConflict reports whether another appointment occupies the exact
// (doctor, date, time) slot. excludeID 0 means no row is excluded.
func (r *Repository) HasSlotConflict(ctx context.Context, slot types.Slot, excludeID int) (bool, error) {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("slot_conflict", time.Since(start)) }()

	query := `
		SELECT id
		FROM appointments
		WHERE doctor_id = $1
		  AND appointment_date = $2
		  AND appointment_time = $3`
	args := []interface{}{slot.DoctorID, slot.Date, slot.Time}

	if excludeID > 0 {
		query += " AND id <> $4"
		args = append(args, excludeID)
	}

	query += " LIMIT 1"

	var id int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		r.logger.WithError(err).Error("Failed to check slot conflict")
		return false, types.NewStoreError("unable to validate appointment slot", err)
	}

	return true, nil
}

// CreateAppointment inserts a new appointment and returns its assigned id.
// A unique-index violation on the slot is reported as a conflict so the
// invariant holds even when two bookings race past the conflict check.
func (r *Repository) CreateAppointment(ctx context.Context, apt *types.Appointment) (int, error) {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("create_appointment", time.Since(start)) }()

	query := `
		INSERT INTO appointments (patient_id, doctor_id, appointment_date, appointment_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query, apt.PatientID, apt.DoctorID, apt.Date, apt.Time).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			monitoring.RecordBookingConflict()
			return 0, types.NewConflictError("Doctor already has an appointment at this date and time")
		}
		if database.IsForeignKeyViolation(err) {
			return 0, types.NewValidationError("patient_id or doctor_id does not reference an existing row")
		}
		r.logger.WithError(err).Error("Failed to create appointment")
		return 0, types.NewStoreError("unable to create appointment", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"appointment_id": id,
		"patient_id":     apt.PatientID,
		"doctor_id":      apt.DoctorID,
	}).Info("Created appointment")
	return id, nil
}

// UpdateAppointment rewrites the mutable fields of an appointment in place
func (r *Repository) UpdateAppointment(ctx context.Context, apt *types.Appointment) error {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("update_appointment", time.Since(start)) }()

	query := `
		UPDATE appointments
		SET patient_id = $1, doctor_id = $2, appointment_date = $3, appointment_time = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, apt.PatientID, apt.DoctorID, apt.Date, apt.Time, apt.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			monitoring.RecordBookingConflict()
			return types.NewConflictError("Doctor already has an appointment at this date and time")
		}
		if database.IsForeignKeyViolation(err) {
			return types.NewValidationError("patient_id or doctor_id does not reference an existing row")
		}
		r.logger.WithError(err).Error("Failed to update appointment")
		return types.NewStoreError("unable to update appointment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return types.NewStoreError("unable to update appointment", fmt.Errorf("failed to get rows affected: %w", err))
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError("Appointment not found")
	}

	r.logger.WithField("appointment_id", apt.ID).Info("Updated appointment")
	return nil
}

// DeleteAppointment removes an appointment row
func (r *Repository) DeleteAppointment(ctx context.Context, id int) error {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("delete_appointment", time.Since(start)) }()

	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		r.logger.WithError(err).Error("Failed to delete appointment")
		return types.NewStoreError("unable to delete appointment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return types.NewStoreError("unable to delete appointment", fmt.Errorf("failed to get rows affected: %w", err))
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError("Appointment not found")
	}

	r.logger.WithField("appointment_id", id).Info("Deleted appointment")
	return nil
}
