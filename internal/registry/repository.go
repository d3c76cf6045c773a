package registry

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Harshdeep9881/hospitalos/pkg/interfaces"
	"github.com/Harshdeep9881/hospitalos/pkg/logger"
	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

// Repository implements the RegistryRepository interface
type Repository struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewRepository creates a new registry repository
func NewRepository(db *sql.DB, log *logger.Logger) interfaces.RegistryRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// ListPatients returns all patients, newest first
func (r *Repository) ListPatients(ctx context.Context) ([]*types.Patient, error) {
	query := `SELECT id, name, age, gender, phone FROM patients ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("Failed to list patients")
		return nil, types.NewStoreError("unable to fetch patients", err)
	}
	defer rows.Close()

	var patients []*types.Patient
	for rows.Next() {
		p := &types.Patient{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Phone); err != nil {
			return nil, types.NewStoreError("unable to fetch patients", err)
		}
		patients = append(patients, p)
	}

	if err = rows.Err(); err != nil {
		return nil, types.NewStoreError("unable to fetch patients", err)
	}

	return patients, nil
}

// CreatePatient inserts a new patient and returns its assigned id
func (r *Repository) CreatePatient(ctx context.Context, p *types.Patient) (int, error) {
	query := `INSERT INTO patients (name, age, gender, phone) VALUES ($1, $2, $3, $4) RETURNING id`

	var id int
	if err := r.db.QueryRowContext(ctx, query, p.Name, p.Age, p.Gender, p.Phone).Scan(&id); err != nil {
		r.logger.WithError(err).Error("Failed to create patient")
		return 0, types.NewStoreError("unable to add patient", err)
	}

	r.logger.WithField("patient_id", id).Info("Created patient")
	return id, nil
}

// UpdatePatient rewrites a patient row in place
func (r *Repository) UpdatePatient(ctx context.Context, p *types.Patient) error {
	query := `UPDATE patients SET name = $1, age = $2, gender = $3, phone = $4 WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.Age, p.Gender, p.Phone, p.ID)
	if err != nil {
		r.logger.WithError(err).Error("Failed to update patient")
		return types.NewStoreError("unable to update patient", err)
	}

	return requireRow(result, "Patient not found")
}

// DeletePatient removes a patient row
func (r *Repository) DeletePatient(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		r.logger.WithError(err).Error("Failed to delete patient")
		return types.NewStoreError("unable to delete patient", err)
	}

	return requireRow(result, "Patient not found")
}

// ListDoctors returns all doctors with their resolved department name
func (r *Repository) ListDoctors(ctx context.Context) ([]*types.Doctor, error) {
	query := `
		SELECT
			d.id,
			d.name,
			COALESCE(d.department_id, 0),
			COALESCE(dep.name, d.department, '') AS department
		FROM doctors d
		LEFT JOIN departments dep ON dep.id = d.department_id
		ORDER BY d.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("Failed to list doctors")
		return nil, types.NewStoreError("unable to fetch doctors", err)
	}
	defer rows.Close()

	var doctors []*types.Doctor
	for rows.Next() {
		d := &types.Doctor{}
		if err := rows.Scan(&d.ID, &d.Name, &d.DepartmentID, &d.Department); err != nil {
			return nil, types.NewStoreError("unable to fetch doctors", err)
		}
		doctors = append(doctors, d)
	}

	if err = rows.Err(); err != nil {
		return nil, types.NewStoreError("unable to fetch doctors", err)
	}

	return doctors, nil
}

// CreateDoctor inserts a doctor, copying the department name from the
// referenced departments row. Inserting against a missing department
// inserts nothing.
func (r *Repository) CreateDoctor(ctx context.Context, name string, departmentID int) (int, error) {
	query := `
		INSERT INTO doctors (name, department, department_id)
		SELECT $1, dep.name, dep.id
		FROM departments dep
		WHERE dep.id = $2
		RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query, name, departmentID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, types.NewNotFoundError("Department not found")
	}
	if err != nil {
		r.logger.WithError(err).Error("Failed to create doctor")
		return 0, types.NewStoreError("unable to add doctor", err)
	}

	r.logger.WithField("doctor_id", id).Info("Created doctor")
	return id, nil
}

// UpdateDoctor rewrites a doctor row, re-resolving the department name
func (r *Repository) UpdateDoctor(ctx context.Context, id int, name string, departmentID int) error {
	query := `
		UPDATE doctors d
		SET name = $2, department = dep.name, department_id = dep.id
		FROM departments dep
		WHERE dep.id = $3 AND d.id = $1`

	result, err := r.db.ExecContext(ctx, query, id, name, departmentID)
	if err != nil {
		r.logger.WithError(err).Error("Failed to update doctor")
		return types.NewStoreError("unable to update doctor", err)
	}

	return requireRow(result, "Doctor or department not found")
}

// DeleteDoctorCascade removes a doctor together with all dependent
// appointments and medical records in one transaction. Either everything
// is deleted or nothing is.
func (r *Repository) DeleteDoctorCascade(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.NewStoreError("unable to delete doctor", err)
	}
	defer tx.Rollback()

	var doctorID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM doctors WHERE id = $1`, id).Scan(&doctorID)
	if err == sql.ErrNoRows {
		return types.NewNotFoundError("Doctor not found")
	}
	if err != nil {
		r.logger.WithError(err).Error("Failed to look up doctor for cascade delete")
		return types.NewStoreError("unable to delete doctor", err)
	}

	// Dependency order: appointments and records reference the doctor row
	steps := []struct {
		query string
		table string
	}{
		{`DELETE FROM appointments WHERE doctor_id = $1`, "appointments"},
		{`DELETE FROM medical_records WHERE doctor_id = $1`, "medical_records"},
		{`DELETE FROM doctors WHERE id = $1`, "doctors"},
	}

	for _, step := range steps {
		result, err := tx.ExecContext(ctx, step.query, id)
		if err != nil {
			r.logger.WithError(err).WithField("table", step.table).Error("Cascade delete step failed, rolling back")
			return types.NewStoreError("unable to delete doctor", err)
		}

		rows, _ := result.RowsAffected()
		r.logger.DatabaseOperation("cascade_delete", step.table, rows, true)
	}

	if err := tx.Commit(); err != nil {
		r.logger.WithError(err).Error("Failed to commit cascade delete")
		return types.NewStoreError("unable to delete doctor", err)
	}

	r.logger.WithField("doctor_id", id).Info("Deleted doctor and dependent rows")
	return nil
}

// ListDepartments returns all departments ordered by name
func (r *Repository) ListDepartments(ctx context.Context) ([]*types.Department, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM departments ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("Failed to list departments")
		return nil, types.NewStoreError("unable to fetch departments", err)
	}
	defer rows.Close()

	var departments []*types.Department
	for rows.Next() {
		d := &types.Department{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, types.NewStoreError("unable to fetch departments", err)
		}
		departments = append(departments, d)
	}

	if err = rows.Err(); err != nil {
		return nil, types.NewStoreError("unable to fetch departments", err)
	}

	return departments, nil
}

// CreateDepartment inserts a department and returns its assigned id
func (r *Repository) CreateDepartment(ctx context.Context, name string, description *string) (int, error) {
	query := `INSERT INTO departments (name, description) VALUES ($1, $2) RETURNING id`

	var id int
	if err := r.db.QueryRowContext(ctx, query, name, description).Scan(&id); err != nil {
		r.logger.WithError(err).Error("Failed to create department")
		return 0, types.NewStoreError("unable to add department", err)
	}

	r.logger.WithField("department_id", id).Info("Created department")
	return id, nil
}

// UpdateDepartment rewrites a department row in place
func (r *Repository) UpdateDepartment(ctx context.Context, id int, name string, description *string) error {
	query := `UPDATE departments SET name = $1, description = $2, updated_at = NOW() WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, name, description, id)
	if err != nil {
		r.logger.WithError(err).Error("Failed to update department")
		return types.NewStoreError("unable to update department", err)
	}

	return requireRow(result, "Department not found")
}

// CountDoctorsInDepartment counts doctors assigned to a department
func (r *Repository) CountDoctorsInDepartment(ctx context.Context, id int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM doctors WHERE department_id = $1`, id).Scan(&count)
	if err != nil {
		r.logger.WithError(err).Error("Failed to count doctors in department")
		return 0, types.NewStoreError("unable to delete department", err)
	}

	return count, nil
}

// DeleteDepartment removes a department row
func (r *Repository) DeleteDepartment(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		r.logger.WithError(err).Error("Failed to delete department")
		return types.NewStoreError("unable to delete department", err)
	}

	return requireRow(result, "Department not found")
}

// requireRow turns a zero-rows-affected result into a not-found error
func requireRow(result sql.Result, notFoundMsg string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return types.NewStoreError("unable to read result", fmt.Errorf("failed to get rows affected: %w", err))
	}

	if rowsAffected == 0 {
		return types.NewNotFoundError(notFoundMsg)
	}

	return nil
}
