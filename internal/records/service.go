package records

import (
	"context"
	"regexp"
	"strings"

	"github.com/Harshdeep9881/hospitalos/pkg/interfaces"
	"github.com/Harshdeep9881/hospitalos/pkg/logger"
	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

var visitDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Service implements the medical records business logic
type Service struct {
	repository interfaces.RecordsRepository
	logger     *logger.Logger
}

// New creates a new medical records service
func New(repo interfaces.RecordsRepository, log *logger.Logger) *Service {
	return &Service{
		repository: repo,
		logger:     log,
	}
}

// ListRecords returns all medical records with patient and doctor names
func (s *Service) ListRecords(ctx context.Context) ([]*types.MedicalRecordView, error) {
	return s.repository.ListRecords(ctx)
}

// ListPatientRecords returns the visit history of one patient
func (s *Service) ListPatientRecords(ctx context.Context, patientID int) ([]*types.MedicalRecordView, error) {
	if patientID <= 0 {
		return nil, types.NewValidationError("Valid patient id is required")
	}
	return s.repository.ListPatientRecords(ctx, patientID)
}

// AddRecord validates and creates a new medical record
func (s *Service) AddRecord(ctx context.Context, req *types.MedicalRecordRequest) (int, error) {
	rec, err := s.validateRecordRequest(req)
	if err != nil {
		return 0, err
	}
	return s.repository.CreateRecord(ctx, rec)
}

// UpdateRecord validates and rewrites an existing medical record
func (s *Service) UpdateRecord(ctx context.Context, id int, req *types.MedicalRecordRequest) error {
	if id <= 0 {
		return types.NewValidationError("Valid id is required")
	}

	rec, err := s.validateRecordRequest(req)
	if err != nil {
		return err
	}

	rec.ID = id
	return s.repository.UpdateRecord(ctx, rec)
}

// DeleteRecord removes a medical record
func (s *Service) DeleteRecord(ctx context.Context, id int) error {
	if id <= 0 {
		return types.NewValidationError("Valid id is required")
	}
	return s.repository.DeleteRecord(ctx, id)
}

func (s *Service) validateRecordRequest(req *types.MedicalRecordRequest) (*types.MedicalRecord, error) {
	if req.PatientID <= 0 {
		return nil, types.NewValidationError("Valid patient_id is required")
	}
	if req.DoctorID <= 0 {
		return nil, types.NewValidationError("Valid doctor_id is required")
	}

	visitDate := strings.TrimSpace(req.VisitDate)
	if !visitDateRe.MatchString(visitDate) {
		return nil, types.NewValidationError("Valid visit_date is required (YYYY-MM-DD)")
	}

	diagnosis := strings.TrimSpace(req.Diagnosis)
	if len(diagnosis) < 2 {
		return nil, types.NewValidationError("Diagnosis must be at least 2 characters")
	}

	var notes *string
	if req.Notes != nil {
		trimmed := strings.TrimSpace(*req.Notes)
		if trimmed != "" {
			notes = &trimmed
		}
	}

	return &types.MedicalRecord{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		VisitDate: visitDate,
		Diagnosis: diagnosis,
		Notes:     notes,
	}, nil
}
