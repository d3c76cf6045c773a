package registry

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

// MockRegistryRepository is a mock implementation of RegistryRepository
type MockRegistryRepository struct {
	mock.Mock
}

func (m *MockRegistryRepository) ListPatients(ctx context.Context) ([]*types.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Patient), args.Error(1)
}

func (m *MockRegistryRepository) CreatePatient(ctx context.Context, p *types.Patient) (int, error) {
	args := m.Called(ctx, p)
	return args.Int(0), args.Error(1)
}

func (m *MockRegistryRepository) UpdatePatient(ctx context.Context, p *types.Patient) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRegistryRepository) DeletePatient(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRegistryRepository) ListDoctors(ctx context.Context) ([]*types.Doctor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Doctor), args.Error(1)
}

func (m *MockRegistryRepository) CreateDoctor(ctx context.Context, name string, departmentID int) (int, error) {
	args := m.Called(ctx, name, departmentID)
	return args.Int(0), args.Error(1)
}

func (m *MockRegistryRepository) UpdateDoctor(ctx context.Context, id int, name string, departmentID int) error {
	args := m.Called(ctx, id, name, departmentID)
	return args.Error(0)
}

func (m *MockRegistryRepository) DeleteDoctorCascade(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRegistryRepository) ListDepartments(ctx context.Context) ([]*types.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Department), args.Error(1)
}

func (m *MockRegistryRepository) CreateDepartment(ctx context.Context, name string, description *string) (int, error) {
	args := m.Called(ctx, name, description)
	return args.Int(0), args.Error(1)
}

func (m *MockRegistryRepository) UpdateDepartment(ctx context.Context, id int, name string, description *string) error {
	args := m.Called(ctx, id, name, description)
	return args.Error(0)
}

func (m *MockRegistryRepository) CountDoctorsInDepartment(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockRegistryRepository) DeleteDepartment(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupTestService() (*Service, *MockRegistryRepository) {
	mockRepo := &MockRegistryRepository{}
	service := New(mockRepo, logger.New("error"))
	return service, mockRepo
}

func intPtr(v int) *int { return &v }

func TestAddPatient_Success(t *testing.T) {
	service, mockRepo := setupTestService()

	mockRepo.On("CreatePatient", mock.Anything, mock.MatchedBy(func(p *types.Patient) bool {
		return p.Name == "Jane Roe" && p.Age == 34
	})).Return(8, nil)

	id, err := service.AddPatient(context.Background(), &types.PatientRequest{
		Name:   " Jane Roe ",
		Age:    intPtr(34),
		Gender: "female",
		Phone:  "5551234",
	})

	assert.NoError(t, err)
	assert.Equal(t, 8, id)
	mockRepo.AssertExpectations(t)
}

func TestAddPatient_ValidationError(t *testing.T) {
	tests := []struct {
		name    string
		req     *types.PatientRequest
		message string
	}{
		{
			name:    "short name",
			req:     &types.PatientRequest{Name: "J", Age: intPtr(34), Gender: "female", Phone: "5551234"},
			message: "Name must be at least 2 characters",
		},
		{
			name:    "missing age",
			req:     &types.PatientRequest{Name: "Jane Roe", Gender: "female", Phone: "5551234"},
			message: "Age must be between 0 and 120",
		},
		{
			name:    "age out of range",
			req:     &types.PatientRequest{Name: "Jane Roe", Age: intPtr(130), Gender: "female", Phone: "5551234"},
			message: "Age must be between 0 and 120",
		},
		{
			name:    "short phone",
			req:     &types.PatientRequest{Name: "Jane Roe", Age: intPtr(34), Gender: "female", Phone: "555"},
			message: "Phone must be at least 7 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo := setupTestService()

			_, err := service.AddPatient(context.Background(), tt.req)

			var herr *types.HospitalError
			require.True(t, errors.As(err, &herr))
			assert.Equal(t, types.ErrorTypeValidation, herr.Type)
			assert.Equal(t, tt.message, herr.Message)
			mockRepo.AssertNotCalled(t, "CreatePatient", mock.Anything, mock.Anything)
		})
	}
}

func TestAddDoctor_MissingDepartment(t *testing.T) {
	service, mockRepo := setupTestService()

	mockRepo.On("CreateDoctor", mock.Anything, "Dr. Smith", 99).
		Return(0, types.NewNotFoundError("Department not found"))

	_, err := service.AddDoctor(context.Background(), &types.DoctorRequest{
		Name:         "Dr. Smith",
		DepartmentID: 99,
	})

	var herr *types.HospitalError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, types.ErrorTypeNotFound, herr.Type)
	mockRepo.AssertExpectations(t)
}

func TestAddDoctor_InvalidDepartmentID(t *testing.T) {
	service, mockRepo := setupTestService()

	_, err := service.AddDoctor(context.Background(), &types.DoctorRequest{Name: "Dr. Smith"})

	var herr *types.HospitalError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, "Valid department_id is required", herr.Message)
	mockRepo.AssertNotCalled(t, "CreateDoctor", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteDoctor_Cascades(t *testing.T) {
	service, mockRepo := setupTestService()

	mockRepo.On("DeleteDoctorCascade", mock.Anything, 7).Return(nil)

	err := service.DeleteDoctor(context.Background(), 7)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestDeleteDepartment_StillAssigned(t *testing.T) {
	service, mockRepo := setupTestService()

	mockRepo.On("CountDoctorsInDepartment", mock.Anything, 3).Return(2, nil)

	err := service.DeleteDepartment(context.Background(), 3)

	var herr *types.HospitalError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, types.ErrorTypeConflict, herr.Type)
	assert.Equal(t, "Department is assigned to doctors and cannot be deleted", herr.Message)
	mockRepo.AssertNotCalled(t, "DeleteDepartment", mock.Anything, mock.Anything)
}

func TestDeleteDepartment_Unassigned(t *testing.T) {
	service, mockRepo := setupTestService()

	mockRepo.On("CountDoctorsInDepartment", mock.Anything, 3).Return(0, nil)
	mockRepo.On("DeleteDepartment", mock.Anything, 3).Return(nil)

	err := service.DeleteDepartment(context.Background(), 3)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
