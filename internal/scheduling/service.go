package scheduling

import (
	"context"
	"regexp"
	"strings"

	"github.com/Harshdeep9881/hospitalos/pkg/interfaces"
	"github.com/Harshdeep9881/hospitalos/pkg/logger"
	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

// Service enforces the one-doctor-one-slot invariant and orchestrates the
// appointment state transitions against the store.
type Service struct {
	repository interfaces.SchedulingRepository
	logger     *logger.Logger
}

// New creates a new scheduling service
func New(repo interfaces.SchedulingRepository, log *logger.Logger) *Service {
	return &Service{
		repository: repo,
		logger:     log,
	}
}

// ListAppointments returns all appointments as joined view rows
func (s *Service) ListAppointments(ctx context.Context) ([]*types.AppointmentView, error) {
	return s.repository.ListAppointments(ctx)
}

// BookAppointment validates the request, checks the doctor's slot for a
// conflict and inserts the appointment. Returns the assigned id.
func (s *Service) BookAppointment(ctx context.Context, req *types.AppointmentRequest) (int, error) {
	apt, err := validateAppointmentRequest(req)
	if err != nil {
		return 0, err
	}

	conflict, err := s.repository.HasSlotConflict(ctx, types.Slot{
		DoctorID: apt.DoctorID,
		Date:     apt.Date,
		Time:     apt.Time,
	}, 0)
	if err != nil {
		return 0, err
	}

	if conflict {
		return 0, types.NewConflictError("Doctor already has an appointment at this date and time")
	}

	id, err := s.repository.CreateAppointment(ctx, apt)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// UpdateAppointment validates the request and rewrites the appointment in
// place. The conflict check excludes the appointment itself, so updating
// an appointment to its own unchanged slot never trips the rule.
func (s *Service) UpdateAppointment(ctx context.Context, id int, req *types.AppointmentRequest) error {
	if id <= 0 {
		return types.NewValidationError("Valid id is required")
	}

	apt, err := validateAppointmentRequest(req)
	if err != nil {
		return err
	}
	apt.ID = id

	conflict, err := s.repository.HasSlotConflict(ctx, types.Slot{
		DoctorID: apt.DoctorID,
		Date:     apt.Date,
		Time:     apt.Time,
	}, id)
	if err != nil {
		return err
	}

	if conflict {
		return types.NewConflictError("Doctor already has an appointment at this date and time")
	}

	return s.repository.UpdateAppointment(ctx, apt)
}

// DeleteAppointment removes an appointment by id
func (s *Service) DeleteAppointment(ctx context.Context, id int) error {
	if id <= 0 {
		return types.NewValidationError("Valid id is required")
	}

	return s.repository.DeleteAppointment(ctx, id)
}

// validateAppointmentRequest rejects malformed input before any store
// interaction. Date must be YYYY-MM-DD; time HH:MM with optional seconds.
func validateAppointmentRequest(req *types.AppointmentRequest) (*types.Appointment, error) {
	date := strings.TrimSpace(req.Date)
	timeOfDay := strings.TrimSpace(req.Time)

	if req.PatientID <= 0 {
		return nil, types.NewValidationError("Valid patient_id is required")
	}
	if req.DoctorID <= 0 {
		return nil, types.NewValidationError("Valid doctor_id is required")
	}
	if !dateRe.MatchString(date) {
		return nil, types.NewValidationError("Valid appointment_date is required (YYYY-MM-DD)")
	}
	if !timeRe.MatchString(timeOfDay) {
		return nil, types.NewValidationError("Valid appointment_time is required (HH:MM)")
	}

	return &types.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      normalizeTime(timeOfDay),
	}, nil
}

// normalizeTime drops the optional seconds so the slot comparison and the
// unique index always see HH:MM.
func normalizeTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
