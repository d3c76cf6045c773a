package scheduling

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshdeep9881/hospitalos/pkg/logger"
	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

func setupTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := &Repository{
		db:     db,
		logger: logger.New("error"),
	}

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestRepository_HasSlotConflict_Occupied(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id").
		WithArgs(5, "2024-06-01", "09:00").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	conflict, err := repo.HasSlotConflict(context.Background(), types.Slot{
		DoctorID: 5,
		Date:     "2024-06-01",
		Time:     "09:00",
	}, 0)

	assert.NoError(t, err)
	assert.True(t, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_HasSlotConflict_Free(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id").
		WithArgs(5, "2024-06-01", "09:30").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	conflict, err := repo.HasSlotConflict(context.Background(), types.Slot{
		DoctorID: 5,
		Date:     "2024-06-01",
		Time:     "09:30",
	}, 0)

	assert.NoError(t, err)
	assert.False(t, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_HasSlotConflict_ExcludesSelf(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id").
		WithArgs(5, "2024-06-01", "09:00", 17).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	conflict, err := repo.HasSlotConflict(context.Background(), types.Slot{
		DoctorID: 5,
		Date:     "2024-06-01",
		Time:     "09:00",
	}, 17)

	assert.NoError(t, err)
	assert.False(t, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateAppointment(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(1, 5, "2024-06-01", "09:00").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := repo.CreateAppointment(context.Background(), &types.Appointment{
		PatientID: 1,
		DoctorID:  5,
		Date:      "2024-06-01",
		Time:      "09:00",
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateAppointment_UniqueViolation(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	// Two bookings racing past the conflict check: the slot index catches
	// the loser and it surfaces as a conflict, not a store error.
	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(1, 5, "2024-06-01", "09:00").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateAppointment(context.Background(), &types.Appointment{
		PatientID: 1,
		DoctorID:  5,
		Date:      "2024-06-01",
		Time:      "09:00",
	})

	var herr *types.HospitalError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, types.ErrorTypeConflict, herr.Type)
	assert.Equal(t, "Doctor already has an appointment at this date and time", herr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateAppointment_ForeignKeyViolation(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(999, 5, "2024-06-01", "09:00").
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.CreateAppointment(context.Background(), &types.Appointment{
		PatientID: 999,
		DoctorID:  5,
		Date:      "2024-06-01",
		Time:      "09:00",
	})

	var herr *types.HospitalError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, types.ErrorTypeValidation, herr.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateAppointment_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectExec("UPDATE appointments").
		WithArgs(1, 5, "2024-06-01", "09:00", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateAppointment(context.Background(), &types.Appointment{
		ID:        99,
		PatientID: 1,
		DoctorID:  5,
		Date:      "2024-06-01",
		Time:      "09:00",
	})

	var herr *types.HospitalError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, types.ErrorTypeNotFound, herr.Type)
	assert.Equal(t, "Appointment not found", herr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteAppointment(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM appointments").
		WithArgs(12).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteAppointment(context.Background(), 12)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteAppointment_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM appointments").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteAppointment(context.Background(), 99)

	var herr *types.HospitalError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, types.ErrorTypeNotFound, herr.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListAppointments(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{
		"id", "patient_id", "doctor_id", "patient", "doctor", "department",
		"appointment_date", "appointment_time",
	}).
		AddRow(3, 1, 5, "Jane Roe", "Dr. Smith", "Cardiology", "2024-06-02", "10:00").
		AddRow(2, 2, 5, "John Doe", "Dr. Smith", "Cardiology", "2024-06-01", "09:00")

	mock.ExpectQuery("FROM appointments a").WillReturnRows(rows)

	appointments, err := repo.ListAppointments(context.Background())

	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, "Jane Roe", appointments[0].Patient)
	assert.Equal(t, "Cardiology", appointments[0].Department)
	assert.Equal(t, "2024-06-01", appointments[1].Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}
