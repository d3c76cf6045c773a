package database

import (
	"context"
	"fmt"
)

// CreateSchema creates the database schema for the hospital backend
func (db *DB) CreateSchema(ctx context.Context) error {
	db.logger.Info("Creating database schema...")

	tables := []string{
		createPatientsTable,
		createDepartmentsTable,
		createDoctorsTable,
		createAppointmentsTable,
		createMedicalRecordsTable,
	}

	for _, table := range tables {
		if _, err := db.ExecContext(ctx, table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		createAppointmentsIndexes,
		createMedicalRecordsIndexes,
	}

	for _, index := range indexes {
		if _, err := db.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	db.logger.Info("Database schema created successfully")
	return nil
}

// SQL DDL statements for table creation
const (
	createPatientsTable = `
		CREATE TABLE IF NOT EXISTS patients (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			age INTEGER NOT NULL CHECK (age >= 0 AND age <= 120),
			gender VARCHAR(20) NOT NULL,
			phone VARCHAR(30) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	createDepartmentsTable = `
		CREATE TABLE IF NOT EXISTS departments (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			description VARCHAR(255),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	// doctors keeps the legacy free-text department column alongside the
	// normalized department_id; reads COALESCE the normalized name over it.
	createDoctorsTable = `
		CREATE TABLE IF NOT EXISTS doctors (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			department VARCHAR(100),
			department_id INTEGER REFERENCES departments(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	createAppointmentsTable = `
		CREATE TABLE IF NOT EXISTS appointments (
			id SERIAL PRIMARY KEY,
			patient_id INTEGER NOT NULL REFERENCES patients(id),
			doctor_id INTEGER NOT NULL REFERENCES doctors(id),
			appointment_date DATE NOT NULL,
			appointment_time TIME NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	createMedicalRecordsTable = `
		CREATE TABLE IF NOT EXISTS medical_records (
			id SERIAL PRIMARY KEY,
			patient_id INTEGER NOT NULL REFERENCES patients(id) ON DELETE CASCADE,
			doctor_id INTEGER NOT NULL REFERENCES doctors(id),
			visit_date DATE NOT NULL,
			diagnosis VARCHAR(255) NOT NULL,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`

	// The unique slot index is what makes the book/update conflict check
	// safe under concurrency: two racing inserts for the same
	// (doctor, date, time) cannot both commit.
	createAppointmentsIndexes = `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_doctor_slot
			ON appointments (doctor_id, appointment_date, appointment_time);
		CREATE INDEX IF NOT EXISTS idx_appointments_patient
			ON appointments (patient_id);
		CREATE INDEX IF NOT EXISTS idx_appointments_date
			ON appointments (appointment_date);`

	createMedicalRecordsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_medical_records_patient_date
			ON medical_records (patient_id, visit_date);
		CREATE INDEX IF NOT EXISTS idx_medical_records_doctor_date
			ON medical_records (doctor_id, visit_date);
		CREATE INDEX IF NOT EXISTS idx_medical_records_visit_date
			ON medical_records (visit_date);`
)
