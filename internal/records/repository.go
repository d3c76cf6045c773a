package records

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

// Repository implements the RecordsRepository interface
type Repository struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewRepository creates a new medical records repository
func NewRepository(db *sql.DB, log *logger.Logger) interfaces.RecordsRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

const recordViewQuery = `
	SELECT
		mr.id,
		mr.patient_id,
		mr.doctor_id,
		p.name AS patient_name,
		d.name AS doctor_name,
		COALESCE(dep.name, d.department, '') AS doctor_department,
		to_char(mr.visit_date, 'YYYY-MM-DD') AS visit_date,
		mr.diagnosis,
		mr.notes,
		mr.created_at,
		mr.updated_at
	FROM medical_records mr
	JOIN patients p ON mr.patient_id = p.id
	JOIN doctors d ON mr.doctor_id = d.id
	LEFT JOIN departments dep ON dep.id = d.department_id`

// ListRecords returns all medical records joined with patient and doctor
// names, newest visit first.
func (r *Repository) ListRecords(ctx context.Context) ([]*types.MedicalRecordView, error) {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("list_records", time.Since(start)) }()

	query := recordViewQuery + `
	ORDER BY mr.visit_date DESC, mr.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("Failed to list medical records")
		return nil, types.NewStoreError("unable to fetch medical records", err)
	}
	defer rows.Close()

	return scanRecordViews(rows)
}

// ListPatientRecords returns the visit history of one patient, newest first
func (r *Repository) ListPatientRecords(ctx context.Context, patientID int) ([]*types.MedicalRecordView, error) {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("list_patient_records", time.Since(start)) }()

	query := recordViewQuery + `
	WHERE mr.patient_id = $1
	ORDER BY mr.visit_date DESC, mr.id DESC`

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		r.logger.WithError(err).Error("Failed to list patient medical records")
		return nil, types.NewStoreError("unable to fetch medical records", err)
	}
	defer rows.Close()

	return scanRecordViews(rows)
}

func scanRecordViews(rows *sql.Rows) ([]*types.MedicalRecordView, error) {
	var records []*types.MedicalRecordView
	for rows.Next() {
		view := &types.MedicalRecordView{}
		err := rows.Scan(
			&view.ID,
			&view.PatientID,
			&view.DoctorID,
			&view.PatientName,
			&view.DoctorName,
			&view.DoctorDepartment,
			&view.VisitDate,
			&view.Diagnosis,
			&view.Notes,
			&view.CreatedAt,
			&view.UpdatedAt,
		)
		if err != nil {
			return nil, types.NewStoreError("unable to fetch medical records", err)
		}
		records = append(records, view)
	}

	if err := rows.Err(); err != nil {
		return nil, types.NewStoreError("unable to fetch medical records", err)
	}

	return records, nil
}

// CreateRecord inserts a new medical record and returns its assigned id
func (r *Repository) CreateRecord(ctx context.Context, rec *types.MedicalRecord) (int, error) {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("create_record", time.Since(start)) }()

	query := `
		INSERT INTO medical_records (patient_id, doctor_id, visit_date, diagnosis, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query, rec.PatientID, rec.DoctorID, rec.VisitDate, rec.Diagnosis, rec.Notes).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, types.NewValidationError("patient_id or doctor_id does not reference an existing row")
		}
		r.logger.WithError(err).Error("Failed to create medical record")
		return 0, types.NewStoreError("unable to create medical record", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"record_id":  id,
		"patient_id": rec.PatientID,
		"doctor_id":  rec.DoctorID,
	}).Info("Created medical record")
	return id, nil
}

// UpdateRecord rewrites the mutable fields of a medical record in place
func (r *Repository) UpdateRecord(ctx context.Context, rec *types.MedicalRecord) error {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("update_record", time.Since(start)) }()

	query := `
		UPDATE medical_records
		SET patient_id = $1, doctor_id = $2, visit_date = $3, diagnosis = $4, notes = $5, updated_at = NOW()
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query, rec.PatientID, rec.DoctorID, rec.VisitDate, rec.Diagnosis, rec.Notes, rec.ID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return types.NewValidationError("patient_id or doctor_id does not reference an existing row")
		}
		r.logger.WithError(err).Error("Failed to update medical record")
		return types.NewStoreError("unable to update medical record", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return types.NewStoreError("unable to update medical record", fmt.Errorf("failed to get rows affected: %w", err))
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError("Medical record not found")
	}

	r.logger.WithField("record_id", rec.ID).Info("Updated medical record")
	return nil
}

// DeleteRecord removes a medical record row
func (r *Repository) DeleteRecord(ctx context.Context, id int) error {
	start := time.Now()
	defer func() { monitoring.RecordDBQuery("delete_record", time.Since(start)) }()

	result, err := r.db.ExecContext(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		r.logger.WithError(err).Error("Failed to delete medical record")
		return types.NewStoreError("unable to delete medical record", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return types.NewStoreError("unable to delete medical record", fmt.Errorf("failed to get rows affected: %w", err))
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError("Medical record not found")
	}

	r.logger.WithField("record_id", id).Info("Deleted medical record")
	return nil
}
