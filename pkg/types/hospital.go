package types

import "time"

// Patient represents a registered patient
type Patient struct {
	ID     int    `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Age    int    `json:"age" db:"age"`
	Gender string `json:"gender" db:"gender"`
	Phone  string `json:"phone" db:"phone"`
}

// Doctor represents a doctor with a resolved department name. Department
// prefers the normalized departments row over the legacy free-text column.
type Doctor struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	DepartmentID int    `json:"department_id" db:"department_id"`
	Department   string `json:"department" db:"department"`
}

// Department represents a hospital department
type Department struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Appointment represents a scheduled consultation. Date is a calendar date
// (YYYY-MM-DD, no timezone) and Time a time of day (HH:MM).
type Appointment struct {
	ID        int    `json:"id" db:"id"`
	PatientID int    `json:"patient_id" db:"patient_id"`
	DoctorID  int    `json:"doctor_id" db:"doctor_id"`
	Date      string `json:"appointment_date" db:"appointment_date"`
	Time      string `json:"appointment_time" db:"appointment_time"`
}

// AppointmentView is an appointment row joined with patient, doctor and
// department names for listing.
type AppointmentView struct {
	ID         int    `json:"id" db:"id"`
	PatientID  int    `json:"patient_id" db:"patient_id"`
	DoctorID   int    `json:"doctor_id" db:"doctor_id"`
	Patient    string `json:"patient" db:"patient"`
	Doctor     string `json:"doctor" db:"doctor"`
	Department string `json:"department" db:"department"`
	Date       string `json:"appointment_date" db:"appointment_date"`
	Time       string `json:"appointment_time" db:"appointment_time"`
}

// Slot identifies the unit of conflict detection: one doctor at one
// date-and-time. A doctor holds at most one appointment per slot.
type Slot struct {
	DoctorID int
	Date     string
	Time     string
}

// MedicalRecord represents a single patient visit record
type MedicalRecord struct {
	ID        int     `json:"id" db:"id"`
	PatientID int     `json:"patient_id" db:"patient_id"`
	DoctorID  int     `json:"doctor_id" db:"doctor_id"`
	VisitDate string  `json:"visit_date" db:"visit_date"`
	Diagnosis string  `json:"diagnosis" db:"diagnosis"`
	Notes     *string `json:"notes" db:"notes"`
}

// MedicalRecordView is a medical record joined with patient and doctor names
type MedicalRecordView struct {
	ID               int       `json:"id" db:"id"`
	PatientID        int       `json:"patient_id" db:"patient_id"`
	DoctorID         int       `json:"doctor_id" db:"doctor_id"`
	PatientName      string    `json:"patient_name" db:"patient_name"`
	DoctorName       string    `json:"doctor_name" db:"doctor_name"`
	DoctorDepartment string    `json:"doctor_department" db:"doctor_department"`
	VisitDate        string    `json:"visit_date" db:"visit_date"`
	Diagnosis        string    `json:"diagnosis" db:"diagnosis"`
	Notes            *string   `json:"notes" db:"notes"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// DashboardSummary aggregates headline numbers for the admin dashboard
type DashboardSummary struct {
	TodaysAppointments     int `json:"todaysAppointments"`
	YesterdaysAppointments int `json:"yesterdaysAppointments"`
	TotalDoctors           int `json:"totalDoctors"`
	ScheduledDoctors       int `json:"scheduledDoctors"`
	AvailableDoctors       int `json:"availableDoctors"`
}
