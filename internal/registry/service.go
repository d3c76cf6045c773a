package registry

import (
	"context"
	"strings"

	"github.com/Harshdeep9881/hospitalos/pkg/interfaces"
	"github.com/Harshdeep9881/hospitalos/pkg/logger"
	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

// Service manages patients, doctors and departments
type Service struct {
	repository interfaces.RegistryRepository
	logger     *logger.Logger
}

// New creates a new registry service
func New(repo interfaces.RegistryRepository, log *logger.Logger) *Service {
	return &Service{
		repository: repo,
		logger:     log,
	}
}

// ListPatients returns all patients
func (s *Service) ListPatients(ctx context.Context) ([]*types.Patient, error) {
	return s.repository.ListPatients(ctx)
}

// AddPatient validates and inserts a patient, returning the assigned id
func (s *Service) AddPatient(ctx context.Context, req *types.PatientRequest) (int, error) {
	p, err := validatePatientRequest(req)
	if err != nil {
		return 0, err
	}

	return s.repository.CreatePatient(ctx, p)
}

// UpdatePatient validates and rewrites a patient
func (s *Service) UpdatePatient(ctx context.Context, id int, req *types.PatientRequest) error {
	if id <= 0 {
		return types.NewValidationError("Valid id is required")
	}

	p, err := validatePatientRequest(req)
	if err != nil {
		return err
	}
	p.ID = id

	return s.repository.UpdatePatient(ctx, p)
}

// DeletePatient removes a patient by id
func (s *Service) DeletePatient(ctx context.Context, id int) error {
	if id <= 0 {
		return types.NewValidationError("Valid id is required")
	}

	return s.repository.DeletePatient(ctx, id)
}

// ListDoctors returns all doctors with resolved department names
func (s *Service) ListDoctors(ctx context.Context) ([]*types.Doctor, error) {
	return s.repository.ListDoctors(ctx)
}

// AddDoctor validates and inserts a doctor, returning the assigned id
func (s *Service) AddDoctor(ctx context.Context, req *types.DoctorRequest) (int, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		return 0, types.NewValidationError("Name must be at least 2 characters")
	}
	if req.DepartmentID <= 0 {
		return 0, types.NewValidationError("Valid department_id is required")
	}

	return s.repository.CreateDoctor(ctx, name, req.DepartmentID)
}

// UpdateDoctor validates and rewrites a doctor
func (s *Service) UpdateDoctor(ctx context.Context, id int, req *types.DoctorRequest) error {
	if id <= 0 {
		return types.NewValidationError("Valid id is required")
	}

	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		return types.NewValidationError("Name must be at least 2 characters")
	}
	if req.DepartmentID <= 0 {
		return types.NewValidationError("Valid department_id is required")
	}

	return s.repository.UpdateDoctor(ctx, id, name, req.DepartmentID)
}

// DeleteDoctor removes a doctor and everything that references it. The
// cascade runs in one transaction so a failure partway leaves the store
// untouched.
func (s *Service) DeleteDoctor(ctx context.Context, id int) error {
	if id <= 0 {
		return types.NewValidationError("Valid id is required")
	}

	return s.repository.DeleteDoctorCascade(ctx, id)
}

// ListDepartments returns all departments
func (s *Service) ListDepartments(ctx context.Context) ([]*types.Department, error) {
	return s.repository.ListDepartments(ctx)
}

// AddDepartment validates and inserts a department, returning the assigned id
func (s *Service) AddDepartment(ctx context.Context, req *types.DepartmentRequest) (int, error) {
	name, description, err := validateDepartmentRequest(req)
	if err != nil {
		return 0, err
	}

	return s.repository.CreateDepartment(ctx, name, description)
}

// UpdateDepartment validates and rewrites a department
func (s *Service) UpdateDepartment(ctx context.Context, id int, req *types.DepartmentRequest) error {
	if id <= 0 {
		return types.NewValidationError("Valid id is required")
	}

	name, description, err := validateDepartmentRequest(req)
	if err != nil {
		return err
	}

	return s.repository.UpdateDepartment(ctx, id, name, description)
}

// DeleteDepartment removes a department unless any doctor still references it
func (s *Service) DeleteDepartment(ctx context.Context, id int) error {
	if id <= 0 {
		return types.NewValidationError("Valid id is required")
	}

	count, err := s.repository.CountDoctorsInDepartment(ctx, id)
	if err != nil {
		return err
	}

	if count > 0 {
		return types.NewConflictError("Department is assigned to doctors and cannot be deleted")
	}

	return s.repository.DeleteDepartment(ctx, id)
}

// validatePatientRequest rejects malformed patient input before any store
// interaction
func validatePatientRequest(req *types.PatientRequest) (*types.Patient, error) {
	name := strings.TrimSpace(req.Name)
	gender := strings.TrimSpace(req.Gender)
	phone := strings.TrimSpace(req.Phone)

	if len(name) < 2 {
		return nil, types.NewValidationError("Name must be at least 2 characters")
	}
	if req.Age == nil || *req.Age < 0 || *req.Age > 120 {
		return nil, types.NewValidationError("Age must be between 0 and 120")
	}
	if len(gender) < 2 {
		return nil, types.NewValidationError("Gender must be at least 2 characters")
	}
	if len(phone) < 7 {
		return nil, types.NewValidationError("Phone must be at least 7 characters")
	}

	return &types.Patient{
		Name:   name,
		Age:    *req.Age,
		Gender: gender,
		Phone:  phone,
	}, nil
}

func validateDepartmentRequest(req *types.DepartmentRequest) (string, *string, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		return "", nil, types.NewValidationError("Department name must be at least 2 characters")
	}

	description := req.Description
	if description != nil {
		trimmed := strings.TrimSpace(*description)
		description = &trimmed
	}

	return name, description, nil
}
