package interfaces

import (
	"context"

	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

// SchedulingRepository defines the interface for appointment persistence
type SchedulingRepository interface {
	// ListAppointments returns every appointment joined with patient,
	// doctor and department names, ordered by date descending, then time
	// ascending, then id descending.
	ListAppointments(ctx context.Context) ([]*types.AppointmentView, error)

	// HasSlotConflict reports whether any appointment other than excludeID
	// occupies the exact slot. Pass excludeID 0 when booking.
	HasSlotConflict(ctx context.Context, slot types.Slot, excludeID int) (bool, error)

	// CreateAppointment inserts a new appointment and returns its assigned id
	CreateAppointment(ctx context.Context, apt *types.Appointment) (int, error)

	// UpdateAppointment rewrites all mutable fields of the row in place
	UpdateAppointment(ctx context.Context, apt *types.Appointment) error

	// DeleteAppointment removes the row
	DeleteAppointment(ctx context.Context, id int) error
}

// RegistryRepository defines the interface for patient, doctor and
// department persistence
type RegistryRepository interface {
	// Patients
	ListPatients(ctx context.Context) ([]*types.Patient, error)
	CreatePatient(ctx context.Context, p *types.Patient) (int, error)
	UpdatePatient(ctx context.Context, p *types.Patient) error
	DeletePatient(ctx context.Context, id int) error

	// Doctors
	ListDoctors(ctx context.Context) ([]*types.Doctor, error)
	CreateDoctor(ctx context.Context, name string, departmentID int) (int, error)
	UpdateDoctor(ctx context.Context, id int, name string, departmentID int) error

	// DeleteDoctorCascade removes the doctor together with all dependent
	// appointments and medical records in a single transaction.
	DeleteDoctorCascade(ctx context.Context, id int) error

	// Departments
	ListDepartments(ctx context.Context) ([]*types.Department, error)
	CreateDepartment(ctx context.Context, name string, description *string) (int, error)
	UpdateDepartment(ctx context.Context, id int, name string, description *string) error
	CountDoctorsInDepartment(ctx context.Context, id int) (int, error)
	DeleteDepartment(ctx context.Context, id int) error
}

// RecordsRepository defines the interface for medical record persistence
type RecordsRepository interface {
	ListRecords(ctx context.Context) ([]*types.MedicalRecordView, error)
	ListPatientRecords(ctx context.Context, patientID int) ([]*types.MedicalRecordView, error)
	CreateRecord(ctx context.Context, rec *types.MedicalRecord) (int, error)
	UpdateRecord(ctx context.Context, rec *types.MedicalRecord) error
	DeleteRecord(ctx context.Context, id int) error
}

// DashboardRepository defines the interface for dashboard aggregation
type DashboardRepository interface {
	Summary(ctx context.Context) (*types.DashboardSummary, error)
}
