package records

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Harshdeep9881/hospitalos/pkg/logger"
	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

// MockRecordsRepository is a mock implementation of RecordsRepository
type MockRecordsRepository struct {
	mock.Mock
}

func (m *MockRecordsRepository) ListRecords(ctx context.Context) ([]*types.MedicalRecordView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.MedicalRecordView), args.Error(1)
}

func (m *MockRecordsRepository) ListPatientRecords(ctx context.Context, patientID int) ([]*types.MedicalRecordView, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.MedicalRecordView), args.Error(1)
}

func (m *MockRecordsRepository) CreateRecord(ctx context.Context, rec *types.MedicalRecord) (int, error) {
	args := m.Called(ctx, rec)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordsRepository) UpdateRecord(ctx context.Context, rec *types.MedicalRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecordsRepository) DeleteRecord(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupTestService() (*Service, *MockRecordsRepository) {
	mockRepo := &MockRecordsRepository{}
	service := New(mockRepo, logger.New("error"))
	return service, mockRepo
}

func TestAddRecord_Success(t *testing.T) {
	service, mockRepo := setupTestService()

	mockRepo.On("CreateRecord", mock.Anything, mock.MatchedBy(func(rec *types.MedicalRecord) bool {
		return rec.PatientID == 1 && rec.Diagnosis == "Hypertension"
	})).Return(5, nil)

	id, err := service.AddRecord(context.Background(), &types.MedicalRecordRequest{
		PatientID: 1,
		DoctorID:  5,
		VisitDate: "2024-06-01",
		Diagnosis: " Hypertension ",
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, id)
	mockRepo.AssertExpectations(t)
}

func TestAddRecord_ValidationError(t *testing.T) {
	tests := []struct {
		name    string
		req     *types.MedicalRecordRequest
		message string
	}{
		{
			name:    "missing patient",
			req:     &types.MedicalRecordRequest{DoctorID: 5, VisitDate: "2024-06-01", Diagnosis: "Flu"},
			message: "Valid patient_id is required",
		},
		{
			name:    "missing doctor",
			req:     &types.MedicalRecordRequest{PatientID: 1, VisitDate: "2024-06-01", Diagnosis: "Flu"},
			message: "Valid doctor_id is required",
		},
		{
			name:    "bad visit date",
			req:     &types.MedicalRecordRequest{PatientID: 1, DoctorID: 5, VisitDate: "June 1", Diagnosis: "Flu"},
			message: "Valid visit_date is required (YYYY-MM-DD)",
		},
		{
			name:    "blank diagnosis",
			req:     &types.MedicalRecordRequest{PatientID: 1, DoctorID: 5, VisitDate: "2024-06-01", Diagnosis: "  "},
			message: "Diagnosis must be at least 2 characters",
		},
		{
			name:    "one-character diagnosis",
			req:     &types.MedicalRecordRequest{PatientID: 1, DoctorID: 5, VisitDate: "2024-06-01", Diagnosis: "F"},
			message: "Diagnosis must be at least 2 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo := setupTestService()

			_, err := service.AddRecord(context.Background(), tt.req)

			var herr *types.HospitalError
			require.True(t, errors.As(err, &herr))
			assert.Equal(t, types.ErrorTypeValidation, herr.Type)
			assert.Equal(t, tt.message, herr.Message)
			mockRepo.AssertNotCalled(t, "CreateRecord", mock.Anything, mock.Anything)
		})
	}
}

func TestAddRecord_BlankNotesDropped(t *testing.T) {
	service, mockRepo := setupTestService()

	blank := "   "
	mockRepo.On("CreateRecord", mock.Anything, mock.MatchedBy(func(rec *types.MedicalRecord) bool {
		return rec.Notes == nil
	})).Return(6, nil)

	_, err := service.AddRecord(context.Background(), &types.MedicalRecordRequest{
		PatientID: 1,
		DoctorID:  5,
		VisitDate: "2024-06-01",
		Diagnosis: "Flu",
		Notes:     &blank,
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestListPatientRecords_InvalidID(t *testing.T) {
	service, mockRepo := setupTestService()

	_, err := service.ListPatientRecords(context.Background(), 0)

	var herr *types.HospitalError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, types.ErrorTypeValidation, herr.Type)
	mockRepo.AssertNotCalled(t, "ListPatientRecords", mock.Anything, mock.Anything)
}

func TestUpdateRecord_NotFound(t *testing.T) {
	service, mockRepo := setupTestService()

	mockRepo.On("UpdateRecord", mock.Anything, mock.AnythingOfType("*types.MedicalRecord")).
		Return(types.NewNotFoundError("Medical record not found"))

	err := service.UpdateRecord(context.Background(), 99, &types.MedicalRecordRequest{
		PatientID: 1,
		DoctorID:  5,
		VisitDate: "2024-06-01",
		Diagnosis: "Flu",
	})

	var herr *types.HospitalError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, types.ErrorTypeNotFound, herr.Type)
	mockRepo.AssertExpectations(t)
}
